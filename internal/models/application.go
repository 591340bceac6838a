package models

import "time"

type Application struct {
	BaseModel
	JobID           string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_user" json:"jobId"`
	UserID          string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_application_job_user;index" json:"userId"`
	Status          ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CoverLetter     string            `gorm:"type:text" json:"coverLetter,omitempty"`
	ResumeUsed      string            `json:"resumeUsed,omitempty"`
	AppliedAt       time.Time         `gorm:"not null" json:"appliedAt"`
	StatusUpdatedAt time.Time         `json:"statusUpdatedAt"`
	EmployerNotes   string            `gorm:"type:text" json:"employerNotes,omitempty"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *User `gorm:"foreignKey:UserID" json:"applicant,omitempty"`
}
