package dto

import "jobportal_backend/internal/models"

type UserListQuery struct {
	Role   models.UserRole `form:"role"`
	Search string          `form:"search" validate:"omitempty,max=200"`
}

type BlockUserRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

type UserResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type PlatformStats struct {
	TotalUsers              int64 `json:"totalUsers"`
	JobSeekers              int64 `json:"jobSeekers"`
	Employers               int64 `json:"employers"`
	VerifiedEmployers       int64 `json:"verifiedEmployers"`
	UnverifiedEmployers     int64 `json:"unverifiedEmployers"`
	BlockedUsers            int64 `json:"blockedUsers"`
	TotalJobs               int64 `json:"totalJobs"`
	PendingJobs             int64 `json:"pendingJobs"`
	ApprovedJobs            int64 `json:"approvedJobs"`
	RejectedJobs            int64 `json:"rejectedJobs"`
	TotalApplications       int64 `json:"totalApplications"`
	PendingApplications     int64 `json:"pendingApplications"`
	ShortlistedApplications int64 `json:"shortlistedApplications"`
	AcceptedApplications    int64 `json:"acceptedApplications"`
	RejectedApplications    int64 `json:"rejectedApplications"`
	PendingReports          int64 `json:"pendingReports"`
}
