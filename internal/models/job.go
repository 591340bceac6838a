package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title               string                      `gorm:"not null" json:"title"`
	Description         string                      `gorm:"type:text;not null" json:"description"`
	Company             string                      `gorm:"not null" json:"company"`
	Location            string                      `gorm:"not null;index" json:"location"`
	Salary              string                      `json:"salary,omitempty"`
	Type                string                      `gorm:"default:'Full-time'" json:"type"`
	Category            string                      `gorm:"not null;index" json:"category"`
	RequiredSkills      datatypes.JSONSlice[string] `json:"requiredSkills"`
	ExperienceLevel     string                      `gorm:"default:'Entry'" json:"experienceLevel"`
	Openings            *int                        `gorm:"default:1" json:"openings"`
	WorkMode            string                      `gorm:"default:'On-site'" json:"workMode"`
	ApplicationDeadline *time.Time                  `json:"applicationDeadline,omitempty"`

	Status          JobStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy      *string    `gorm:"type:varchar(36)" json:"approvedBy,omitempty"`

	PostedBy          string     `gorm:"type:varchar(36);not null;index" json:"postedBy"`
	Poster            *User      `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
	Views             int        `gorm:"default:0" json:"views"`
	ApplicationsCount int        `gorm:"default:0" json:"applicationsCount"`
	LastEmployerView  *time.Time `json:"lastEmployerView,omitempty"`
}

// EndOfDeadlineDay is the last instant at which the job still accepts applications.
func (j *Job) EndOfDeadlineDay() *time.Time {
	if j.ApplicationDeadline == nil {
		return nil
	}
	d := *j.ApplicationDeadline
	end := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_000_000, d.Location())
	return &end
}

// DeadlinePassed reports whether now is strictly after the end of the deadline day.
func (j *Job) DeadlinePassed(now time.Time) bool {
	end := j.EndOfDeadlineDay()
	return end != nil && now.After(*end)
}

// HasCapacityLimit reports whether openings bound the job; zero or unset means unlimited.
func (j *Job) HasCapacityLimit() bool {
	return j.Openings != nil && *j.Openings > 0
}

// IsFull reports whether filled has reached the opening capacity.
func (j *Job) IsFull(filled int64) bool {
	return j.HasCapacityLimit() && filled >= int64(*j.Openings)
}

// AvailablePositions returns the remaining openings, or "Unlimited".
func (j *Job) AvailablePositions(filled int64) any {
	if !j.HasCapacityLimit() {
		return "Unlimited"
	}
	left := int64(*j.Openings) - filled
	if left < 0 {
		left = 0
	}
	return left
}
