package repositories

import (
	"errors"
	"strings"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobFilter struct {
	Category string
	Type     string
	Location string // substring, case-insensitive
	Search   string // title, description or company, case-insensitive
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindByIDWithPoster(db *gorm.DB, id string) (*models.Job, error)
	Update(db *gorm.DB, job *models.Job) error
	UpdateFields(db *gorm.DB, jobID string, fields map[string]interface{}) error

	// FindApproved returns approved jobs matching filter, newest first.
	FindApproved(db *gorm.DB, filter JobFilter) ([]models.Job, error)
	FindByPoster(db *gorm.DB, userID string) ([]models.Job, error)
	FindPending(db *gorm.DB) ([]models.Job, error)

	// IncrementViews and IncrementApplicationsCount are read-modify-write.
	IncrementViews(db *gorm.DB, job *models.Job) error
	IncrementApplicationsCount(db *gorm.DB, jobID string) error

	// FilledCount counts shortlisted and accepted applications of the job.
	FilledCount(db *gorm.DB, jobID string) (int64, error)
	FilledCounts(db *gorm.DB, jobIDs []string) (map[string]int64, error)
	CountNewApplications(db *gorm.DB, jobID string, since time.Time) (int64, error)

	// DeleteCascade removes the job, its applications and its reports.
	DeleteCascade(db *gorm.DB, jobID string) error

	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status models.JobStatus) (int64, error)
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func posterColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "role", "company_name", "company_logo", "is_verified")
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDWithPoster(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.Preload("Poster", posterColumns).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	return db.Omit(clause.Associations).Save(job).Error
}

func (r *JobRepositoryImpl) UpdateFields(db *gorm.DB, jobID string, fields map[string]interface{}) error {
	result := db.Model(&models.Job{}).Where("id = ?", jobID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) FindApproved(db *gorm.DB, filter JobFilter) ([]models.Job, error) {
	query := db.Model(&models.Job{}).Where("status = ?", models.JobStatusApproved)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		query = query.Where("LOWER(location) LIKE ? ESCAPE '!'", containsPattern(location))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		query = query.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!' OR LOWER(company) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern)
	}

	var jobs []models.Job
	err := query.Preload("Poster", posterColumns).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindByPoster(db *gorm.DB, userID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("posted_by = ?", userID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindPending(db *gorm.DB) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("status = ?", models.JobStatusPending).
		Preload("Poster", posterColumns).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) IncrementViews(db *gorm.DB, job *models.Job) error {
	job.Views++
	return db.Model(&models.Job{}).Where("id = ?", job.ID).Update("views", job.Views).Error
}

func (r *JobRepositoryImpl) IncrementApplicationsCount(db *gorm.DB, jobID string) error {
	var job models.Job
	if err := db.Select("id", "applications_count").First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	return db.Model(&models.Job{}).Where("id = ?", jobID).
		Update("applications_count", job.ApplicationsCount+1).Error
}

func (r *JobRepositoryImpl) FilledCount(db *gorm.DB, jobID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id = ? AND status IN ?", jobID, models.FilledStatuses).
		Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) FilledCounts(db *gorm.DB, jobIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		JobID string
		Count int64
	}
	err := db.Model(&models.Application{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id IN ? AND status IN ?", jobIDs, models.FilledStatuses).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.JobID] = row.Count
	}
	return counts, nil
}

func (r *JobRepositoryImpl) CountNewApplications(db *gorm.DB, jobID string, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id = ? AND status = ? AND applied_at > ?", jobID, models.ApplicationStatusPending, since).
		Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) DeleteCascade(db *gorm.DB, jobID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Job{}).Where("id = ?", jobID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrJobNotFound
		}
		return deleteJobTree(tx, jobID)
	})
}

// deleteJobTree deletes children before the job; tx must already be a transaction.
func deleteJobTree(tx *gorm.DB, jobID string) error {
	if err := tx.Where("job_id = ?", jobID).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	if err := tx.Where("job_id = ?", jobID).Delete(&models.Report{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Job{}, "id = ?", jobID).Error
}

func (r *JobRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CountByStatus(db *gorm.DB, status models.JobStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
