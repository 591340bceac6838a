package app

import (
	"errors"
	"fmt"
	"strings"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services"

	"gorm.io/gorm"
)

var ErrAdminExists = errors.New("a user with this email already exists")

// CreateAdmin inserts an admin account in a transaction.
// It returns ErrAdminExists when the email is already taken.
func CreateAdmin(db *gorm.DB, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}
	if len(password) < 6 {
		return nil, errors.New("admin password must be at least 6 characters")
	}
	if name == "" {
		name = "Administrator"
	}

	users := repositories.NewUserRepository()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	_, err := users.FindByEmail(tx, email)
	if err == nil {
		return nil, ErrAdminExists
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check for admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsVerified:   true,
	}
	admin.ProfileCompletion = services.Completion(admin)

	if err := users.Create(tx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit admin user: %w", err)
	}
	return admin, nil
}

// seedFirstAdmin creates the bootstrap admin from FIRST_ADMIN_* when it does not exist yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	admin, err := CreateAdmin(db, cfg.FirstAdminName, cfg.FirstAdminEmail, cfg.FirstAdminPassword)
	if errors.Is(err, ErrAdminExists) {
		logger.Info("Admin user already exists. Skipping creation.", "email", cfg.FirstAdminEmail)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("Created first admin user", "email", admin.Email, "id", admin.ID)
	return nil
}
