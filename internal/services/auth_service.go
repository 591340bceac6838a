package services

import (
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const forgotPasswordMessage = "If an account exists, a password reset link has been sent."

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.RefreshResponse, error)
	Logout(db *gorm.DB, userID string) error
	ForgotPassword(db *gorm.DB, emailAddr string) (*dto.MessageResponse, error)
	ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error

	// PurgeExpiredTokens drops expired refresh tokens and password reset tokens.
	PurgeExpiredTokens(db *gorm.DB, now time.Time) (refresh int64, reset int64, err error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           *auth.TokenService
	mailer           *email.Mailer
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens *auth.TokenService,
	mailer *email.Mailer,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		mailer:           mailer,
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := req.Role
	if role == "" {
		role = models.UserRoleJobSeeker
	}
	if role == models.UserRoleAdmin {
		return nil, apperrors.ErrAdminSelfRegistration
	}
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid role")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         role,
	}
	user.ProfileCompletion = Completion(user)

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.mailer.Welcome(user.Email, user.Name, string(user.Role))

	return &dto.RegisterResponse{
		Message: "User registered successfully",
		User:    dto.NewUserBrief(user),
	}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	// Blocked accounts are refused before the password is looked at.
	if user.IsBlocked {
		return nil, apperrors.ErrAccountBlocked
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refreshToken, expiresAt, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.refreshTokenRepo.ReplaceForUser(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(db.Statement.Context, "user logged in", "user_id", user.ID, "role", user.Role)

	return &dto.LoginResponse{
		Message:      "Login successful",
		Token:        accessToken,
		RefreshToken: refreshToken,
		User: dto.LoginUser{
			UserBrief:         dto.NewUserBrief(user),
			IsVerified:        user.IsVerified,
			ProfileCompletion: user.ProfileCompletion,
		},
	}, nil
}

func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	stored, err := s.refreshTokenRepo.FindByToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if stored.UserID != claims.UserID || time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if user.IsBlocked {
		return nil, apperrors.ErrAccountBlocked
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RefreshResponse{Token: accessToken}, nil
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, userID string) error {
	if err := s.refreshTokenRepo.DeleteByUserID(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, emailAddr string) (*dto.MessageResponse, error) {
	resp := &dto.MessageResponse{Message: forgotPasswordMessage}

	user, err := s.userRepo.FindByEmail(db, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return resp, nil
		}
		return nil, apperrors.InternalError(err)
	}

	token, expiresAt, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"reset_token":     token,
		"reset_token_exp": expiresAt,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.mailer.PasswordReset(user.Email, user.Name, token, time.Until(expiresAt))
	return resp, nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, req *dto.ResetPasswordRequest) error {
	claims, err := s.tokens.ParseResetToken(req.Token)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}
	if user.ResetToken == "" || user.ResetToken != req.Token ||
		user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(tx, user.ID, map[string]interface{}{
		"password_hash":   hash,
		"reset_token":     "",
		"reset_token_exp": nil,
	}); err != nil {
		return apperrors.InternalError(err)
	}
	// A new password signs out every other session.
	if err := s.refreshTokenRepo.DeleteByUserID(tx, user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	s.mailer.PasswordChanged(user.Email, user.Name)
	return nil
}

func (s *AuthServiceImpl) PurgeExpiredTokens(db *gorm.DB, now time.Time) (int64, int64, error) {
	refresh, err := s.refreshTokenRepo.DeleteExpired(db, now)
	if err != nil {
		return 0, 0, err
	}
	reset, err := s.userRepo.ClearExpiredResetTokens(db, now)
	if err != nil {
		return refresh, 0, err
	}
	return refresh, reset, nil
}
