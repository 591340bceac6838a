package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,is-user-role"`
}

type jobInput struct {
	ExperienceLevel string `json:"experienceLevel" validate:"omitempty,is-experience-level"`
}

type reviewInput struct {
	Status string `json:"status" validate:"required,is-review-status"`
	Action string `json:"action" validate:"omitempty,is-report-action"`
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&registerInput{Email: "nope", Password: "123"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Contains(t, vErr.Errors["password"], "at least 6")
}

func TestCustomRules(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   interface{}
		wantErr string
	}{
		{"seeker role", &registerInput{Name: "a", Email: "a@b.co", Password: "123456", Role: "jobseeker"}, ""},
		{"empty role defaults later", &registerInput{Name: "a", Email: "a@b.co", Password: "123456"}, ""},
		{"admin role rejected", &registerInput{Name: "a", Email: "a@b.co", Password: "123456", Role: "admin"}, "role"},
		{"approve", &reviewInput{Status: "approved"}, ""},
		{"pending is not a review outcome", &reviewInput{Status: "pending"}, "status"},
		{"block job action", &reviewInput{Status: "approved", Action: "block_job"}, ""},
		{"unknown action", &reviewInput{Status: "approved", Action: "nuke"}, "action"},
		{"entry level", &jobInput{ExperienceLevel: "Entry"}, ""},
		{"lead level", &jobInput{ExperienceLevel: "Lead"}, ""},
		{"unknown level", &jobInput{ExperienceLevel: "Wizard"}, "experienceLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.(*ValidationError).Errors, tt.wantErr)
		})
	}
}

func TestEnumMessagesListAllowedValues(t *testing.T) {
	err := New().Validate(&reviewInput{Status: "pending"})
	require.Error(t, err)
	assert.Equal(t, "Must be one of: approved, rejected", err.(*ValidationError).Errors["status"])
	assert.Equal(t, "validation failed: status: Must be one of: approved, rejected", err.Error())
}
