package services

import (
	"errors"
	"fmt"
	"time"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/metrics"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/security"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(db *gorm.DB, userID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	GetMyApplications(db *gorm.DB, userID string) ([]models.Application, error)
	// GetJobApplications also stamps the job's lastEmployerView.
	GetJobApplications(db *gorm.DB, employerID, jobID string) ([]models.Application, error)
	UpdateStatus(db *gorm.DB, employerID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error)
	GetAppliedJobDetails(db *gorm.DB, userID, jobID string) (*dto.AppliedJobView, error)
}

type ApplicationServiceImpl struct {
	applicationRepo     repositories.ApplicationRepository
	jobRepo             repositories.JobRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	sanitizer           security.TextSanitizer
	mailer              *email.Mailer
	metrics             metrics.Recorder
	now                 func() time.Time
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	sanitizer security.TextSanitizer,
	mailer *email.Mailer,
	rec metrics.Recorder,
) ApplicationService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &ApplicationServiceImpl{
		applicationRepo:     applicationRepo,
		jobRepo:             jobRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		sanitizer:           sanitizer,
		mailer:              mailer,
		metrics:             rec,
		now:                 time.Now,
	}
}

func (s *ApplicationServiceImpl) Apply(db *gorm.DB, userID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	applicant, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !applicant.IsJobSeeker() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	job, err := s.jobRepo.FindByIDWithPoster(tx, req.JobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if job.Status != models.JobStatusApproved {
		return nil, apperrors.ErrJobNotAvailable
	}
	now := s.now()
	if job.DeadlinePassed(now) {
		return nil, apperrors.ErrJobNotAvailable
	}
	filled, err := s.jobRepo.FilledCount(tx, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if job.IsFull(filled) {
		return nil, apperrors.ErrJobNotAvailable
	}

	if _, err := s.applicationRepo.FindByJobAndUser(tx, job.ID, applicant.ID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if applicant.Resume == "" {
		return nil, apperrors.ErrResumeRequired
	}

	app := &models.Application{
		JobID:           job.ID,
		UserID:          applicant.ID,
		Status:          models.ApplicationStatusPending,
		CoverLetter:     s.sanitizer.Sanitize(req.CoverLetter),
		ResumeUsed:      applicant.Resume,
		AppliedAt:       now,
		StatusUpdatedAt: now,
	}
	if err := s.applicationRepo.Create(tx, app); err != nil {
		if errors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}
	if err := s.jobRepo.IncrementApplicationsCount(tx, job.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.metrics.RecordApplication()
	s.notificationService.Notify(db, job.PostedBy, NotificationInput{
		Title:   "New Application",
		Message: fmt.Sprintf("%s applied for your job: %s", applicant.Name, job.Title),
		Type:    models.NotificationTypeApplication,
		Link:    "/employer/jobs/" + job.ID,
	})
	if job.Poster != nil {
		s.mailer.ApplicationReceived(job.Poster.Email, job.Poster.Name, applicant.Name, job.Title)
	}
	s.mailer.ApplicationSubmitted(applicant.Email, applicant.Name, job.Title, job.Company)

	return &dto.ApplicationResponse{Message: "Application submitted successfully", Application: app}, nil
}

func (s *ApplicationServiceImpl) GetMyApplications(db *gorm.DB, userID string) ([]models.Application, error) {
	apps, err := s.applicationRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) GetJobApplications(db *gorm.DB, employerID, jobID string) ([]models.Application, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	if job.PostedBy != employerID {
		return nil, apperrors.ErrNotJobOwner
	}

	filled, err := s.jobRepo.FilledCount(db, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	// A full job only shows the candidates occupying its openings.
	apps, err := s.applicationRepo.FindByJob(db, job.ID, job.IsFull(filled))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.jobRepo.UpdateFields(db, job.ID, map[string]interface{}{
		"last_employer_view": s.now(),
	}); err != nil {
		logger.CtxWarn(db.Statement.Context, "failed to stamp last employer view", "job_id", job.ID, "error", err.Error())
	}
	return apps, nil
}

func (s *ApplicationServiceImpl) UpdateStatus(db *gorm.DB, employerID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	if !req.Status.IsDecision() {
		return nil, apperrors.NewBadRequestError("Status must be shortlisted, accepted or rejected")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	app, err := s.applicationRepo.FindByID(tx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if app.Job == nil || app.Job.PostedBy != employerID {
		return nil, apperrors.ErrNotJobOwner
	}

	if req.Status.Fills() && !app.Status.Fills() {
		filled, err := s.jobRepo.FilledCount(tx, app.JobID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if app.Job.IsFull(filled) {
			return nil, apperrors.ErrNoOpeningsLeft
		}
	}

	app.Status = req.Status
	app.StatusUpdatedAt = s.now()
	if req.EmployerNotes != "" {
		app.EmployerNotes = s.sanitizer.Sanitize(req.EmployerNotes)
	}
	if err := s.applicationRepo.Update(tx, app); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	status := string(app.Status)
	s.metrics.RecordApplicationDecision(status)
	s.notificationService.Notify(db, app.UserID, NotificationInput{
		Title:   "Application " + status,
		Message: fmt.Sprintf("Your application for \"%s\" has been %s.", app.Job.Title, status),
		Type:    models.NotificationTypeApplication,
		Link:    "/jobseeker/applications",
	})
	if app.Applicant != nil {
		s.mailer.ApplicationStatus(app.Applicant.Email, app.Applicant.Name, app.Job.Title, app.Job.Company, status, app.EmployerNotes)
	}

	return &dto.ApplicationResponse{Message: "Application status updated successfully", Application: app}, nil
}

func (s *ApplicationServiceImpl) GetAppliedJobDetails(db *gorm.DB, userID, jobID string) (*dto.AppliedJobView, error) {
	app, err := s.applicationRepo.FindByJobAndUser(db, jobID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotApplicant
		}
		return nil, apperrors.InternalError(err)
	}

	job, err := s.jobRepo.FindByIDWithPoster(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	filled, err := s.jobRepo.FilledCount(db, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AppliedJobView{
		JobView:           dto.NewJobView(job, filled),
		ApplicationStatus: app.Status,
		AppliedAt:         app.AppliedAt,
	}, nil
}
