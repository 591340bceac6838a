package models

type UserRole string
type JobStatus string
type ApplicationStatus string
type ReportStatus string
type NotificationType string

const (
	UserRoleJobSeeker UserRole = "jobseeker"
	UserRoleEmployer  UserRole = "employer"
	UserRoleAdmin     UserRole = "admin"

	JobStatusPending  JobStatus = "pending"
	JobStatusApproved JobStatus = "approved"
	JobStatusRejected JobStatus = "rejected"
	JobStatusClosed   JobStatus = "closed"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"

	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"

	NotificationTypeJob         NotificationType = "job"
	NotificationTypeApplication NotificationType = "application"
	NotificationTypeSystem      NotificationType = "system"
)

const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeInternship = "Internship"
	JobTypeContract   = "Contract"

	ExperienceLevelEntry  = "Entry"
	ExperienceLevelMid    = "Mid"
	ExperienceLevelSenior = "Senior"
	ExperienceLevelLead   = "Lead"

	WorkModeRemote = "Remote"
	WorkModeOnSite = "On-site"
	WorkModeHybrid = "Hybrid"
)

// Roles lists every role; it is the closed set the capability table is keyed on.
var Roles = []UserRole{UserRoleJobSeeker, UserRoleEmployer, UserRoleAdmin}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleJobSeeker, UserRoleEmployer, UserRoleAdmin:
		return true
	}
	return false
}

// FilledStatuses are the application states that consume an opening.
var FilledStatuses = []ApplicationStatus{ApplicationStatusShortlisted, ApplicationStatusAccepted}

func (s ApplicationStatus) Fills() bool {
	return s == ApplicationStatusShortlisted || s == ApplicationStatusAccepted
}

// IsDecision reports whether s is a state an employer can move a pending application to.
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationStatusShortlisted || s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}
