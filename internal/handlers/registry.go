package handlers

import (
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	JobHandler          *JobHandler
	ApplicationHandler  *ApplicationHandler
	NotificationHandler *NotificationHandler
	ReportHandler       *ReportHandler
	AdminHandler        *AdminHandler
	FileHandler         *FileHandler
	HealthHandler       *HealthHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, svc.AuthService),
		ProfileHandler:      NewProfileHandler(base, svc.ProfileService, svc.UploadService),
		JobHandler:          NewJobHandler(base, svc.JobService),
		ApplicationHandler:  NewApplicationHandler(base, svc.ApplicationService),
		NotificationHandler: NewNotificationHandler(base, svc.NotificationService),
		ReportHandler:       NewReportHandler(base, svc.ReportService),
		AdminHandler:        NewAdminHandler(base, svc.AdminService, svc.JobService, svc.ReportService),
		FileHandler:         NewFileHandler(base, svc.UploadService),
		HealthHandler:       NewHealthHandler(),
	}
}
