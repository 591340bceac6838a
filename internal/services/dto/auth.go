package dto

import "jobportal_backend/internal/models"

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=6,max=128"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=jobseeker employer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128"`
}

// UserBrief is the public identity returned by register.
type UserBrief struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type LoginUser struct {
	UserBrief
	IsVerified        bool `json:"isVerified"`
	ProfileCompletion int  `json:"profileCompletion"`
}

type RegisterResponse struct {
	Message string    `json:"message"`
	User    UserBrief `json:"user"`
}

type LoginResponse struct {
	Message      string    `json:"message"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	User         LoginUser `json:"user"`
}

type RefreshResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserBrief(u *models.User) UserBrief {
	return UserBrief{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
