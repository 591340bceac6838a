package models

import (
	"time"

	"gorm.io/datatypes"
)

type ExperienceEntry struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type EducationEntry struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Grade       string     `json:"grade"`
}

type User struct {
	BaseModel
	Name              string   `gorm:"not null" json:"name"`
	Email             string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string   `gorm:"not null" json:"-"`
	Role              UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	Phone             string   `json:"phone,omitempty"`
	Location          string   `json:"location,omitempty"`
	IsVerified        bool     `gorm:"default:false" json:"isVerified"`
	IsBlocked         bool     `gorm:"default:false" json:"isBlocked"`
	ProfileCompletion int      `gorm:"default:20" json:"profileCompletion"`

	ResetToken    string     `json:"-"`
	ResetTokenExp *time.Time `json:"-"`

	// Job seeker
	Resume            string                               `json:"resume,omitempty"`
	Skills            datatypes.JSONSlice[string]          `json:"skills"`
	Experience        datatypes.JSONSlice[ExperienceEntry] `json:"experience"`
	Education         datatypes.JSONSlice[EducationEntry]  `json:"education"`
	PreferredLocation datatypes.JSONSlice[string]          `json:"preferredLocation"`
	ExpectedSalary    string                               `json:"expectedSalary,omitempty"`

	// Employer
	CompanyName        string `json:"companyName,omitempty"`
	CompanyWebsite     string `json:"companyWebsite,omitempty"`
	CompanyLogo        string `json:"companyLogo,omitempty"`
	Industry           string `json:"industry,omitempty"`
	CompanySize        string `json:"companySize,omitempty"`
	CompanyDescription string `json:"companyDescription,omitempty"`
	GSTNumber          string `json:"gstNumber,omitempty"`
}

func (u *User) IsJobSeeker() bool { return u.Role == UserRoleJobSeeker }
func (u *User) IsEmployer() bool  { return u.Role == UserRoleEmployer }
func (u *User) IsAdmin() bool     { return u.Role == UserRoleAdmin }

// RefreshToken is the single active refresh token of a user.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex;size:512"`
	ExpiresAt time.Time `gorm:"not null;index"`
}
