package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

type ApplicationRepository interface {
	// Create fails with ErrDuplicateApplication when the seeker already applied to the job.
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByJobAndUser(db *gorm.DB, jobID, userID string) (*models.Application, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Application, error)

	// FindByJob lists applications with their applicant; onlyFilled restricts to shortlisted and accepted.
	FindByJob(db *gorm.DB, jobID string, onlyFilled bool) ([]models.Application, error)
	Update(db *gorm.DB, app *models.Application) error

	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status models.ApplicationStatus) (int64, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	var count int64
	if err := db.Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", app.JobID, app.UserID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateApplication
	}
	if err := db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	if err := db.Preload("Job").Preload("Applicant").First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByJobAndUser(db *gorm.DB, jobID, userID string) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, "job_id = ? AND user_id = ?", jobID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("user_id = ?", userID).
		Preload("Job").
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByJob(db *gorm.DB, jobID string, onlyFilled bool) ([]models.Application, error) {
	query := db.Where("job_id = ?", jobID)
	if onlyFilled {
		query = query.Where("status IN ?", models.FilledStatuses)
	}

	var apps []models.Application
	err := query.Preload("Applicant").Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, app *models.Application) error {
	return db.Omit(clause.Associations).Save(app).Error
}

func (r *ApplicationRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountByStatus(db *gorm.DB, status models.ApplicationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
