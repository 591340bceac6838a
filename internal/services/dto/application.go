package dto

import "jobportal_backend/internal/models"

type ApplyRequest struct {
	JobID       string `json:"jobId" validate:"required,max=36"`
	CoverLetter string `json:"coverLetter" validate:"omitempty,max=5000"`
}

type UpdateApplicationStatusRequest struct {
	Status        models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	EmployerNotes string                   `json:"employerNotes" validate:"omitempty,max=2000"`
}

type ApplicationResponse struct {
	Message     string              `json:"message"`
	Application *models.Application `json:"application"`
}
