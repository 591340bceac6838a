package services

import (
	"errors"
	"fmt"
	"strings"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/security"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	// GetProfile returns the caller's record with a freshly computed completion score.
	GetProfile(db *gorm.DB, userID string) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
	GetPublicProfile(db *gorm.DB, viewer *models.User, targetID string) (*models.User, error)
	RequestVerification(db *gorm.DB, userID string) (*dto.MessageResponse, error)
}

type ProfileServiceImpl struct {
	userRepo            repositories.UserRepository
	notificationService NotificationService
	sanitizer           security.TextSanitizer
	mailer              *email.Mailer
}

func NewProfileService(
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	sanitizer security.TextSanitizer,
	mailer *email.Mailer,
) ProfileService {
	return &ProfileServiceImpl{
		userRepo:            userRepo,
		notificationService: notificationService,
		sanitizer:           sanitizer,
		mailer:              mailer,
	}
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if refreshCompletion(user) {
		if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
			"profile_completion": user.ProfileCompletion,
		}); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	return user, nil
}

func (s *ProfileServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	before := Completion(user)
	s.applyProfileUpdate(user, req)
	refreshCompletion(user)

	// Reaching 100% puts an employer back in the verification queue.
	reachedFull := user.IsEmployer() && before < completionMax && user.ProfileCompletion == completionMax
	if reachedFull {
		user.IsVerified = false
	}

	if err := s.userRepo.Update(tx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	if reachedFull {
		s.notificationService.NotifyAdmins(db, NotificationInput{
			Title:   "Employer Profile Completed",
			Message: fmt.Sprintf("%s has completed their profile and is ready for review.", displayName(user)),
			Type:    models.NotificationTypeSystem,
			Link:    "/admin/employers/unverified",
		})
	}

	return &dto.UpdateProfileResponse{
		Message:             "Profile updated successfully",
		User:                user,
		RequiresAdminReview: user.IsEmployer() && user.ProfileCompletion == completionMax && !user.IsVerified,
	}, nil
}

func (s *ProfileServiceImpl) applyProfileUpdate(u *models.User, req *dto.UpdateProfileRequest) {
	setTrimmed(&u.Name, req.Name)
	setTrimmed(&u.Phone, req.Phone)
	setTrimmed(&u.Location, req.Location)
	setTrimmed(&u.ExpectedSalary, req.ExpectedSalary)
	if req.Skills != nil {
		u.Skills = compactStrings(*req.Skills)
	}
	if req.Experience != nil {
		u.Experience = *req.Experience
	}
	if req.Education != nil {
		u.Education = *req.Education
	}
	if req.PreferredLocation != nil {
		u.PreferredLocation = compactStrings(*req.PreferredLocation)
	}

	setTrimmed(&u.CompanyName, req.CompanyName)
	setTrimmed(&u.CompanyWebsite, req.CompanyWebsite)
	setTrimmed(&u.Industry, req.Industry)
	setTrimmed(&u.CompanySize, req.CompanySize)
	setTrimmed(&u.GSTNumber, req.GSTNumber)
	if req.CompanyDescription != nil {
		u.CompanyDescription = s.sanitizer.Sanitize(*req.CompanyDescription)
	}
}

func (s *ProfileServiceImpl) GetPublicProfile(db *gorm.DB, viewer *models.User, targetID string) (*models.User, error) {
	target, err := s.userRepo.FindByID(db, targetID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if target.IsJobSeeker() && viewer.ID != target.ID && !viewer.IsEmployer() && !viewer.IsAdmin() {
		return nil, apperrors.ErrProfileNotVisible
	}
	return target, nil
}

func (s *ProfileServiceImpl) RequestVerification(db *gorm.DB, userID string) (*dto.MessageResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !user.IsEmployer() {
		return nil, apperrors.ErrNotAnEmployer
	}
	if user.IsVerified {
		return &dto.MessageResponse{Message: "Your account is already verified"}, nil
	}

	completion := Completion(user)
	if completion < completionMax {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf(
			"Please complete your profile (100%%) before requesting verification. Current completion: %d%%", completion,
		)).WithDetails(map[string]interface{}{"profileCompletion": completion})
	}

	name := displayName(user)
	s.notificationService.NotifyAdmins(db, NotificationInput{
		Title:   "Employer Verification Requested",
		Message: fmt.Sprintf("%s has requested account verification.", name),
		Type:    models.NotificationTypeSystem,
		Link:    "/admin/employers/unverified",
	})

	admins, err := s.userRepo.FindByRole(db, models.UserRoleAdmin)
	if err != nil {
		logger.CtxWarn(db.Statement.Context, "failed to load admins for verification email", "error", err.Error())
	}
	for _, a := range admins {
		s.mailer.VerificationRequested(a.Email, name, user.Email)
	}

	return &dto.MessageResponse{
		Message: "Verification request sent to admins. You will be notified once verified.",
	}, nil
}

// displayName prefers the company name for employers.
func displayName(u *models.User) string {
	if u.CompanyName != "" {
		return u.CompanyName
	}
	return u.Name
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}
