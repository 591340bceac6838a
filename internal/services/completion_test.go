package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobportal_backend/internal/models"
)

func TestCompletion_SeekerIsMonotonicAndCapped(t *testing.T) {
	u := &models.User{Role: models.UserRoleJobSeeker}
	steps := []func(){
		func() { u.Phone = "+1 555" },
		func() { u.Location = "Berlin" },
		func() { u.Resume = "resumes/u/cv.pdf" },
		func() { u.Skills = []string{"go"} },
		func() { u.Education = []models.EducationEntry{{Degree: "BSc"}} },
		func() { u.Experience = []models.ExperienceEntry{{Title: "Dev"}} },
	}

	prev := Completion(u)
	assert.Equal(t, 20, prev)
	for _, step := range steps {
		step()
		got := Completion(u)
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, 100)
		prev = got
	}
	assert.Equal(t, 100, prev)
}

func TestCompletion_Employer(t *testing.T) {
	u := &models.User{Role: models.UserRoleEmployer, CompanyLogo: "logo.png", GSTNumber: "GST1"}
	assert.Equal(t, 20, Completion(u), "logo and tax id are not scored")

	u.CompanyName = "Acme"
	u.CompanyWebsite = "https://acme.example"
	u.Industry = "Software"
	u.CompanySize = "10-50"
	assert.Equal(t, 85, Completion(u))
	assert.False(t, EmployerReady(u))

	u.CompanyDescription = "   "
	assert.Equal(t, 85, Completion(u), "blank text is not present")

	u.CompanyDescription = "We build things"
	assert.Equal(t, 100, Completion(u))
	assert.True(t, EmployerReady(u))
}

func TestCompletion_AdminStaysAtBase(t *testing.T) {
	u := &models.User{Role: models.UserRoleAdmin, Phone: "1", CompanyName: "x"}
	assert.Equal(t, 20, Completion(u))
	assert.False(t, EmployerReady(u))
}

func TestRefreshCompletion(t *testing.T) {
	u := &models.User{Role: models.UserRoleJobSeeker, ProfileCompletion: 20}
	assert.False(t, refreshCompletion(u))
	u.Resume = "r.pdf"
	assert.True(t, refreshCompletion(u))
	assert.Equal(t, 40, u.ProfileCompletion)
}
