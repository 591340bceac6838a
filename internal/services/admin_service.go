package services

import (
	"context"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/storage"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const userListLimit = 100

type AdminService interface {
	GetUnverifiedEmployers(db *gorm.DB) ([]models.User, error)
	VerifyEmployer(db *gorm.DB, employerID string) (*dto.UserResponse, error)
	GetStats(db *gorm.DB) (*dto.PlatformStats, error)
	ListUsers(db *gorm.DB, q *dto.UserListQuery) ([]models.User, error)
	SetBlocked(db *gorm.DB, userID string, blocked bool) (*dto.UserResponse, error)
	// DeleteUser removes the account with its jobs, applications, reports and notifications.
	DeleteUser(ctx context.Context, db *gorm.DB, userID string) error
}

type AdminServiceImpl struct {
	userRepo            repositories.UserRepository
	jobRepo             repositories.JobRepository
	applicationRepo     repositories.ApplicationRepository
	reportRepo          repositories.ReportRepository
	refreshTokenRepo    repositories.RefreshTokenRepository
	notificationService NotificationService
	storage             storage.Storage
	mailer              *email.Mailer
}

func NewAdminService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	reportRepo repositories.ReportRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	notificationService NotificationService,
	store storage.Storage,
	mailer *email.Mailer,
) AdminService {
	return &AdminServiceImpl{
		userRepo:            userRepo,
		jobRepo:             jobRepo,
		applicationRepo:     applicationRepo,
		reportRepo:          reportRepo,
		refreshTokenRepo:    refreshTokenRepo,
		notificationService: notificationService,
		storage:             store,
		mailer:              mailer,
	}
}

func (s *AdminServiceImpl) GetUnverifiedEmployers(db *gorm.DB) ([]models.User, error) {
	users, err := s.userRepo.FindUnverifiedEmployers(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

func (s *AdminServiceImpl) VerifyEmployer(db *gorm.DB, employerID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, employerID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !user.IsEmployer() {
		return nil, apperrors.ErrNotAnEmployer
	}

	if err := s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{"is_verified": true}); err != nil {
		return nil, handleUserError(err)
	}
	user.IsVerified = true

	s.notificationService.Notify(db, user.ID, NotificationInput{
		Title:   "Account Verified",
		Message: "Your employer account has been verified! You can now post jobs.",
		Type:    models.NotificationTypeSystem,
		Link:    "/employer/dashboard",
	})
	s.mailer.EmployerVerified(user.Email)

	return &dto.UserResponse{Message: "Employer verified successfully", User: user}, nil
}

func (s *AdminServiceImpl) GetStats(db *gorm.DB) (*dto.PlatformStats, error) {
	var (
		st  dto.PlatformStats
		err error
	)
	count := func(dst *int64, f func() (int64, error)) {
		if err != nil {
			return
		}
		*dst, err = f()
	}

	count(&st.TotalUsers, func() (int64, error) { return s.userRepo.CountAll(db) })
	count(&st.JobSeekers, func() (int64, error) { return s.userRepo.CountByRole(db, models.UserRoleJobSeeker) })
	count(&st.Employers, func() (int64, error) { return s.userRepo.CountByRole(db, models.UserRoleEmployer) })
	count(&st.VerifiedEmployers, func() (int64, error) { return s.userRepo.CountEmployersByVerification(db, true) })
	count(&st.UnverifiedEmployers, func() (int64, error) { return s.userRepo.CountEmployersByVerification(db, false) })
	count(&st.BlockedUsers, func() (int64, error) { return s.userRepo.CountBlocked(db) })

	count(&st.TotalJobs, func() (int64, error) { return s.jobRepo.CountAll(db) })
	count(&st.PendingJobs, func() (int64, error) { return s.jobRepo.CountByStatus(db, models.JobStatusPending) })
	count(&st.ApprovedJobs, func() (int64, error) { return s.jobRepo.CountByStatus(db, models.JobStatusApproved) })
	count(&st.RejectedJobs, func() (int64, error) { return s.jobRepo.CountByStatus(db, models.JobStatusRejected) })

	count(&st.TotalApplications, func() (int64, error) { return s.applicationRepo.CountAll(db) })
	count(&st.PendingApplications, func() (int64, error) {
		return s.applicationRepo.CountByStatus(db, models.ApplicationStatusPending)
	})
	count(&st.ShortlistedApplications, func() (int64, error) {
		return s.applicationRepo.CountByStatus(db, models.ApplicationStatusShortlisted)
	})
	count(&st.AcceptedApplications, func() (int64, error) {
		return s.applicationRepo.CountByStatus(db, models.ApplicationStatusAccepted)
	})
	count(&st.RejectedApplications, func() (int64, error) {
		return s.applicationRepo.CountByStatus(db, models.ApplicationStatusRejected)
	})

	count(&st.PendingReports, func() (int64, error) { return s.reportRepo.CountByStatus(db, models.ReportStatusPending) })

	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &st, nil
}

func (s *AdminServiceImpl) ListUsers(db *gorm.DB, q *dto.UserListQuery) ([]models.User, error) {
	users, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Role:   q.Role,
		Search: q.Search,
		Limit:  userListLimit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

func (s *AdminServiceImpl) SetBlocked(db *gorm.DB, userID string, blocked bool) (*dto.UserResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if user.IsAdmin() {
		return nil, apperrors.ErrCannotModifyAdmin
	}

	if err := s.userRepo.UpdateFields(tx, user.ID, map[string]interface{}{"is_blocked": blocked}); err != nil {
		return nil, handleUserError(err)
	}
	if blocked {
		if err := s.refreshTokenRepo.DeleteByUserID(tx, user.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.IsBlocked = blocked

	in := NotificationInput{
		Title:   "Account Unblocked",
		Message: "Your account has been unblocked. You can now use the platform.",
		Type:    models.NotificationTypeSystem,
		Link:    "/",
	}
	action := "unblocked"
	if blocked {
		in.Title = "Account Blocked"
		in.Message = "Your account has been blocked by an administrator. Please contact support."
		action = "blocked"
	}
	s.notificationService.Notify(db, user.ID, in)

	return &dto.UserResponse{Message: "User " + action + " successfully", User: user}, nil
}

func (s *AdminServiceImpl) DeleteUser(ctx context.Context, db *gorm.DB, userID string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleUserError(err)
	}
	if user.IsAdmin() {
		return apperrors.ErrCannotModifyAdmin
	}

	if err := s.userRepo.DeleteCascade(db, user.ID); err != nil {
		return handleUserError(err)
	}

	for _, key := range []string{user.Resume, user.CompanyLogo} {
		if key == "" || s.storage == nil {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.CtxWarn(ctx, "failed to delete file of removed user", "user_id", user.ID, "key", key, "error", err.Error())
		}
	}
	logger.CtxInfo(ctx, "user deleted", "user_id", user.ID, "role", user.Role)
	return nil
}
