package dto

import "jobportal_backend/internal/models"

type CreateReportRequest struct {
	Reason      string `json:"reason" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type ReviewReportRequest struct {
	Status models.ReportStatus `json:"status" validate:"required,is-report-status"`
	Action string              `json:"action" validate:"omitempty,is-report-action"`
}

type ReportResponse struct {
	Message string         `json:"message"`
	Report  *models.Report `json:"report"`
}
