package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

type CreateJobRequest struct {
	Title               string   `json:"title" validate:"required,max=200"`
	Description         string   `json:"description" validate:"required,max=20000"`
	Company             string   `json:"company" validate:"required,max=200"`
	Location            string   `json:"location" validate:"required,max=200"`
	Category            string   `json:"category" validate:"required,max=100"`
	Salary              string   `json:"salary" validate:"omitempty,max=100"`
	Type                string   `json:"type" validate:"omitempty,is-job-type"`
	RequiredSkills      []string `json:"requiredSkills" validate:"omitempty,max=50,dive,max=100"`
	ExperienceLevel     string   `json:"experienceLevel" validate:"omitempty,is-experience-level"`
	Openings            *int     `json:"openings" validate:"omitempty,min=1,max=10000"`
	WorkMode            string   `json:"workMode" validate:"omitempty,is-work-mode"`
	ApplicationDeadline string   `json:"applicationDeadline" validate:"omitempty"`
}

type JobListQuery struct {
	Category string `form:"category"`
	Type     string `form:"type"`
	Location string `form:"location"`
	Search   string `form:"search" validate:"omitempty,max=200"`
}

type ReviewJobRequest struct {
	Status          models.JobStatus `json:"status" validate:"required,is-review-status"`
	RejectionReason string           `json:"rejectionReason" validate:"omitempty,max=1000"`
}

// JobView is a job decorated with its capacity.
type JobView struct {
	models.Job
	FilledPositions int64 `json:"filledPositions"`
	// AvailablePositions is a number, or "Unlimited" when openings are not bounded.
	AvailablePositions any `json:"availablePositions"`
}

// EmployerJobView adds the dashboard badges shown to the owning employer.
type EmployerJobView struct {
	JobView
	NewApplicationsCount int64   `json:"newApplicationsCount"`
	HasNewApplications   bool    `json:"hasNewApplications"`
	DeadlineStatus       *string `json:"deadlineStatus"`
	OpeningStatus        *string `json:"openingStatus"`
}

// AppliedJobView is a job seen through the caller's application.
type AppliedJobView struct {
	JobView
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus"`
	AppliedAt         time.Time                `json:"appliedAt"`
}

type JobResponse struct {
	Message string      `json:"message"`
	Job     *models.Job `json:"job"`
}

func NewJobView(job *models.Job, filled int64) JobView {
	return JobView{
		Job:                *job,
		FilledPositions:    filled,
		AvailablePositions: job.AvailablePositions(filled),
	}
}
