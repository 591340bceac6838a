package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/security"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	ReportActionNone          = "none"
	ReportActionBlockJob      = "block_job"
	ReportActionBlockEmployer = "block_employer"

	reportedJobReason = "Reported as fake/inappropriate"
)

type ReportService interface {
	ReportJob(db *gorm.DB, reporterID, jobID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetPendingReports(db *gorm.DB) ([]models.Report, error)
	ReviewReport(db *gorm.DB, adminID, reportID string, req *dto.ReviewReportRequest) (*dto.ReportResponse, error)
}

type ReportServiceImpl struct {
	reportRepo          repositories.ReportRepository
	jobRepo             repositories.JobRepository
	userRepo            repositories.UserRepository
	refreshTokenRepo    repositories.RefreshTokenRepository
	notificationService NotificationService
	sanitizer           security.TextSanitizer
}

func NewReportService(
	reportRepo repositories.ReportRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	notificationService NotificationService,
	sanitizer security.TextSanitizer,
) ReportService {
	return &ReportServiceImpl{
		reportRepo:          reportRepo,
		jobRepo:             jobRepo,
		userRepo:            userRepo,
		refreshTokenRepo:    refreshTokenRepo,
		notificationService: notificationService,
		sanitizer:           sanitizer,
	}
}

func (s *ReportServiceImpl) ReportJob(db *gorm.DB, reporterID, jobID string, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	report := &models.Report{
		JobID:       job.ID,
		ReportedBy:  reporterID,
		Reason:      strings.TrimSpace(req.Reason),
		Description: s.sanitizer.Sanitize(req.Description),
		Status:      models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(db, report); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReport) {
			return nil, apperrors.ErrAlreadyReported
		}
		return nil, apperrors.InternalError(err)
	}

	s.notificationService.NotifyAdmins(db, NotificationInput{
		Title:   "Job Reported",
		Message: fmt.Sprintf("A job \"%s\" has been reported for: %s", job.Title, report.Reason),
		Type:    models.NotificationTypeSystem,
		Link:    "/admin/reports/" + report.ID,
	})

	return &dto.ReportResponse{
		Message: "Job reported successfully. Our team will review it.",
		Report:  report,
	}, nil
}

func (s *ReportServiceImpl) GetPendingReports(db *gorm.DB) ([]models.Report, error) {
	reports, err := s.reportRepo.FindByStatus(db, models.ReportStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reports, nil
}

func (s *ReportServiceImpl) ReviewReport(db *gorm.DB, adminID, reportID string, req *dto.ReviewReportRequest) (*dto.ReportResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	report, err := s.reportRepo.FindByID(tx, reportID)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	report.Status = req.Status
	report.ReviewedBy = &adminID
	report.ReviewedAt = &now
	if err := s.reportRepo.Update(tx, report); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if report.Job != nil {
		switch req.Action {
		case ReportActionBlockJob:
			if err := s.jobRepo.UpdateFields(tx, report.JobID, map[string]interface{}{
				"status":           models.JobStatusRejected,
				"rejection_reason": reportedJobReason,
			}); err != nil {
				return nil, handleJobError(err)
			}
			report.Job.Status = models.JobStatusRejected
			report.Job.RejectionReason = reportedJobReason
		case ReportActionBlockEmployer:
			if err := s.blockOwner(tx, report.Job.PostedBy); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ReportResponse{Message: "Report reviewed successfully", Report: report}, nil
}

func (s *ReportServiceImpl) blockOwner(tx *gorm.DB, ownerID string) error {
	owner, err := s.userRepo.FindByID(tx, ownerID)
	if err != nil {
		return handleUserError(err)
	}
	if owner.IsAdmin() {
		return apperrors.ErrCannotModifyAdmin
	}
	if err := s.userRepo.UpdateFields(tx, owner.ID, map[string]interface{}{"is_blocked": true}); err != nil {
		return handleUserError(err)
	}
	if err := s.refreshTokenRepo.DeleteByUserID(tx, owner.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
