package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrDuplicateReport = errors.New("report already exists")
)

type ReportRepository interface {
	// Create fails with ErrDuplicateReport when the reporter already flagged the job.
	Create(db *gorm.DB, report *models.Report) error
	FindByID(db *gorm.DB, id string) (*models.Report, error)
	FindByStatus(db *gorm.DB, status models.ReportStatus) ([]models.Report, error)
	Update(db *gorm.DB, report *models.Report) error
	CountByStatus(db *gorm.DB, status models.ReportStatus) (int64, error)
}

type ReportRepositoryImpl struct{}

func NewReportRepository() ReportRepository {
	return &ReportRepositoryImpl{}
}

func (r *ReportRepositoryImpl) Create(db *gorm.DB, report *models.Report) error {
	var count int64
	if err := db.Model(&models.Report{}).
		Where("job_id = ? AND reported_by = ?", report.JobID, report.ReportedBy).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateReport
	}
	if err := db.Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReport
		}
		return err
	}
	return nil
}

func (r *ReportRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Report, error) {
	var report models.Report
	if err := db.Preload("Job").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) FindByStatus(db *gorm.DB, status models.ReportStatus) ([]models.Report, error) {
	query := db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []models.Report
	err := query.
		Preload("Job", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title", "company", "status", "posted_by") }).
		Preload("Reporter", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "email") }).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepositoryImpl) Update(db *gorm.DB, report *models.Report) error {
	return db.Omit(clause.Associations).Save(report).Error
}

func (r *ReportRepositoryImpl) CountByStatus(db *gorm.DB, status models.ReportStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
