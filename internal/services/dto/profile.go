package dto

import "jobportal_backend/internal/models"

// UpdateProfileRequest carries only the fields a user may change; nil means untouched.
type UpdateProfileRequest struct {
	Name              *string                   `json:"name" validate:"omitempty,min=2,max=100"`
	Phone             *string                   `json:"phone" validate:"omitempty,max=30"`
	Location          *string                   `json:"location" validate:"omitempty,max=200"`
	Skills            *[]string                 `json:"skills" validate:"omitempty,max=100,dive,max=100"`
	Experience        *[]models.ExperienceEntry `json:"experience" validate:"omitempty,max=50"`
	Education         *[]models.EducationEntry  `json:"education" validate:"omitempty,max=50"`
	PreferredLocation *[]string                 `json:"preferredLocation" validate:"omitempty,max=20,dive,max=200"`
	ExpectedSalary    *string                   `json:"expectedSalary" validate:"omitempty,max=100"`

	CompanyName        *string `json:"companyName" validate:"omitempty,max=200"`
	CompanyWebsite     *string `json:"companyWebsite" validate:"omitempty,max=255"`
	Industry           *string `json:"industry" validate:"omitempty,max=100"`
	CompanySize        *string `json:"companySize" validate:"omitempty,max=50"`
	CompanyDescription *string `json:"companyDescription" validate:"omitempty,max=5000"`
	GSTNumber          *string `json:"gstNumber" validate:"omitempty,max=50"`
}

type UpdateProfileResponse struct {
	Message             string       `json:"message"`
	User                *models.User `json:"user"`
	RequiresAdminReview bool         `json:"requiresAdminReview"`
}

type ResumeUploadResponse struct {
	Message           string `json:"message"`
	Resume            string `json:"resume"`
	ProfileCompletion int    `json:"profileCompletion"`
}

type LogoUploadResponse struct {
	Message           string `json:"message"`
	Logo              string `json:"logo"`
	ProfileCompletion int    `json:"profileCompletion"`
}

type ResumeURLResponse struct {
	URL string `json:"url"`
}
