package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
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

const (
	deadlineExpired = "expired"
	deadlineActive  = "active"
	openingFilled   = "filled"
	openingOpen     = "open"
)

type JobService interface {
	// ListJobs returns approved jobs that still accept applications.
	ListJobs(db *gorm.DB, q *dto.JobListQuery) ([]dto.JobView, error)
	// GetJob resolves a single job for viewer, which is nil for anonymous callers.
	GetJob(db *gorm.DB, viewer *models.User, jobID string) (*dto.JobView, error)
	CreateJob(db *gorm.DB, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	DeleteJob(db *gorm.DB, employerID, jobID string) error
	GetEmployerJobs(db *gorm.DB, employerID string) ([]dto.EmployerJobView, error)

	GetPendingJobs(db *gorm.DB) ([]models.Job, error)
	ReviewJob(db *gorm.DB, adminID, jobID string, req *dto.ReviewJobRequest) (*dto.JobResponse, error)
}

type JobServiceImpl struct {
	jobRepo             repositories.JobRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	sanitizer           security.TextSanitizer
	mailer              *email.Mailer
	metrics             metrics.Recorder
	now                 func() time.Time
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	sanitizer security.TextSanitizer,
	mailer *email.Mailer,
	rec metrics.Recorder,
) JobService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &JobServiceImpl{
		jobRepo:             jobRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		sanitizer:           sanitizer,
		mailer:              mailer,
		metrics:             rec,
		now:                 time.Now,
	}
}

func (s *JobServiceImpl) ListJobs(db *gorm.DB, q *dto.JobListQuery) ([]dto.JobView, error) {
	jobs, err := s.jobRepo.FindApproved(db, repositories.JobFilter{
		Category: q.Category,
		Type:     q.Type,
		Location: q.Location,
		Search:   q.Search,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	open := jobs[:0]
	for _, j := range jobs {
		if !j.DeadlinePassed(now) {
			open = append(open, j)
		}
	}

	filled, err := s.jobRepo.FilledCounts(db, jobIDs(open))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.JobView, 0, len(open))
	for i := range open {
		n := filled[open[i].ID]
		if open[i].IsFull(n) {
			continue
		}
		views = append(views, dto.NewJobView(&open[i], n))
	}
	return views, nil
}

func (s *JobServiceImpl) GetJob(db *gorm.DB, viewer *models.User, jobID string) (*dto.JobView, error) {
	job, err := s.jobRepo.FindByIDWithPoster(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	privileged := viewer != nil && (viewer.IsAdmin() || viewer.ID == job.PostedBy)
	if !privileged && job.Status != models.JobStatusApproved {
		return nil, apperrors.ErrJobNotFound
	}

	filled, err := s.jobRepo.FilledCount(db, job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !privileged {
		if job.DeadlinePassed(s.now()) {
			return nil, apperrors.ErrJobDeadlinePassed
		}
		if job.IsFull(filled) {
			return nil, apperrors.ErrJobPositionsFilled
		}
	}

	// Lost updates under concurrent reads are tolerated.
	if err := s.jobRepo.IncrementViews(db, job); err != nil {
		logger.CtxWarn(db.Statement.Context, "failed to count job view", "job_id", job.ID, "error", err.Error())
	}

	view := dto.NewJobView(job, filled)
	return &view, nil
}

func (s *JobServiceImpl) CreateJob(db *gorm.DB, employerID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	deadline, err := parseDeadline(req.ApplicationDeadline)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	employer, err := s.userRepo.FindByID(tx, employerID)
	if err != nil {
		return nil, handleUserError(err)
	}
	if !employer.IsEmployer() {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if !EmployerReady(employer) {
		completion := Completion(employer)
		return nil, apperrors.New(apperrors.CodeProfileIncomplete, "job", fmt.Sprintf(
			"Please complete your profile (100%%) before posting jobs. Current completion: %d%%", completion,
		), http.StatusForbidden).WithDetails(map[string]interface{}{"profileCompletion": completion})
	}
	if !employer.IsVerified {
		return nil, apperrors.ErrEmployerPendingReview
	}

	openings := 1
	if req.Openings != nil {
		openings = *req.Openings
	}
	job := &models.Job{
		Title:               strings.TrimSpace(req.Title),
		Description:         s.sanitizer.Sanitize(req.Description),
		Company:             strings.TrimSpace(req.Company),
		Location:            strings.TrimSpace(req.Location),
		Category:            strings.TrimSpace(req.Category),
		Salary:              strings.TrimSpace(req.Salary),
		Type:                valueOr(req.Type, models.JobTypeFullTime),
		RequiredSkills:      compactStrings(req.RequiredSkills),
		ExperienceLevel:     valueOr(req.ExperienceLevel, models.ExperienceLevelEntry),
		Openings:            &openings,
		WorkMode:            valueOr(req.WorkMode, models.WorkModeOnSite),
		ApplicationDeadline: deadline,
		Status:              models.JobStatusPending,
		PostedBy:            employer.ID,
	}
	if job.Description == "" {
		return nil, apperrors.NewBadRequestError("Job description is required")
	}

	if err := s.jobRepo.Create(tx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.metrics.RecordJobCreated()
	s.notificationService.NotifyAdmins(db, NotificationInput{
		Title:   "New Job Posted",
		Message: fmt.Sprintf("%s posted a new job: %s", job.Company, job.Title),
		Type:    models.NotificationTypeJob,
		Link:    "/admin/jobs/" + job.ID,
	})

	return &dto.JobResponse{Message: "Job submitted for admin approval", Job: job}, nil
}

func (s *JobServiceImpl) DeleteJob(db *gorm.DB, employerID, jobID string) error {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return handleJobError(err)
	}
	if job.PostedBy != employerID {
		return apperrors.ErrNotJobOwner
	}
	if err := s.jobRepo.DeleteCascade(db, job.ID); err != nil {
		return handleJobError(err)
	}
	return nil
}

func (s *JobServiceImpl) GetEmployerJobs(db *gorm.DB, employerID string) ([]dto.EmployerJobView, error) {
	jobs, err := s.jobRepo.FindByPoster(db, employerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	filled, err := s.jobRepo.FilledCounts(db, jobIDs(jobs))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	views := make([]dto.EmployerJobView, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		n := filled[job.ID]

		var since time.Time
		if job.LastEmployerView != nil {
			since = *job.LastEmployerView
		}
		newCount, err := s.jobRepo.CountNewApplications(db, job.ID, since)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		view := dto.EmployerJobView{
			JobView:              dto.NewJobView(job, n),
			NewApplicationsCount: newCount,
			HasNewApplications:   newCount > 0,
		}
		if job.ApplicationDeadline != nil {
			status := deadlineActive
			if job.DeadlinePassed(now) {
				status = deadlineExpired
			}
			view.DeadlineStatus = &status
		}
		if job.HasCapacityLimit() {
			status := openingOpen
			if job.IsFull(n) {
				status = openingFilled
			}
			view.OpeningStatus = &status
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *JobServiceImpl) GetPendingJobs(db *gorm.DB) ([]models.Job, error) {
	jobs, err := s.jobRepo.FindPending(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *JobServiceImpl) ReviewJob(db *gorm.DB, adminID, jobID string, req *dto.ReviewJobRequest) (*dto.JobResponse, error) {
	if req.Status != models.JobStatusApproved && req.Status != models.JobStatusRejected {
		return nil, apperrors.NewBadRequestError("Status must be approved or rejected")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	job, err := s.jobRepo.FindByIDWithPoster(tx, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}

	job.Status = req.Status
	if req.Status == models.JobStatusApproved {
		now := s.now()
		job.ApprovedAt = &now
		job.ApprovedBy = &adminID
		job.RejectionReason = ""
	} else {
		job.RejectionReason = s.sanitizer.Sanitize(req.RejectionReason)
	}

	if err := s.jobRepo.Update(tx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	status := string(job.Status)
	s.metrics.RecordJobReviewed(status)
	s.notificationService.Notify(db, job.PostedBy, NotificationInput{
		Title:   "Job " + status,
		Message: fmt.Sprintf("Your job posting \"%s\" has been %s.", job.Title, status),
		Type:    models.NotificationTypeJob,
		Link:    "/employer/jobs",
	})
	if job.Poster != nil {
		s.mailer.JobReviewed(job.Poster.Email, job.Title, status, job.RejectionReason)
	}

	return &dto.JobResponse{Message: fmt.Sprintf("Job %s successfully", status), Job: job}, nil
}

// parseDeadline accepts RFC3339 or a bare date.
func parseDeadline(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.NewBadRequestError("applicationDeadline must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
}

func valueOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func jobIDs(jobs []models.Job) []string {
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	return ids
}

func handleJobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrJobNotFound
	}
	return apperrors.InternalError(err)
}
