// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobportal_backend/database"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/models"
)

// NewDB returns a migrated private in-memory SQLite database closed at test end.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a bcrypt hash of password.
func CreateUser(t *testing.T, db *gorm.DB, name, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:              name,
		Email:             fmt.Sprintf("%s_%s@test.com", strings.ToLower(strings.ReplaceAll(name, " ", "_")), uuid.NewString()[:8]),
		PasswordHash:      hash,
		Role:              role,
		ProfileCompletion: 20,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

// CompleteEmployer fills every scored company field and marks the employer verified.
func CompleteEmployer(t *testing.T, db *gorm.DB, user *models.User) {
	t.Helper()

	user.CompanyName = "Acme Corp"
	user.CompanyWebsite = "https://acme.example"
	user.Industry = "Software"
	user.CompanySize = "11-50"
	user.CompanyDescription = "We build things."
	user.ProfileCompletion = 100
	user.IsVerified = true
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("complete employer: %v", err)
	}
}

// CreateJob inserts a job owned by poster with the given status.
func CreateJob(t *testing.T, db *gorm.DB, poster *models.User, title string, status models.JobStatus) *models.Job {
	t.Helper()

	openings := 1
	job := &models.Job{
		Title:       title,
		Description: "Build and run services",
		Company:     "Acme Corp",
		Location:    "Remote",
		Category:    "Engineering",
		Type:        models.JobTypeFullTime,
		Openings:    &openings,
		Status:      status,
		PostedBy:    poster.ID,
	}
	if err := db.Create(job).Error; err != nil {
		t.Fatalf("create job %s: %v", title, err)
	}
	return job
}
