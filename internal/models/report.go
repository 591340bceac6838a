package models

import "time"

type Report struct {
	BaseModel
	JobID       string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_report_job_reporter" json:"jobId"`
	ReportedBy  string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_report_job_reporter;index" json:"reportedBy"`
	Reason      string       `gorm:"not null" json:"reason"`
	Description string       `gorm:"type:text" json:"description"`
	Status      ReportStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewedBy  *string      `gorm:"type:varchar(36)" json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewedAt,omitempty"`

	Job      *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Reporter *User `gorm:"foreignKey:ReportedBy" json:"reporter,omitempty"`
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Job{},
		&Application{},
		&Notification{},
		&Report{},
	}
}
