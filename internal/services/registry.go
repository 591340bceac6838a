package services

import (
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/metrics"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/security"
	"jobportal_backend/internal/storage"
)

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	UploadService       UploadService
	JobService          JobService
	ApplicationService  ApplicationService
	NotificationService NotificationService
	AdminService        AdminService
	ReportService       ReportService

	Tokens  *auth.TokenService
	Mailer  *email.Mailer
	Storage storage.Storage
}

// Dependencies are the collaborators built outside the service layer.
type Dependencies struct {
	Tokens  *auth.TokenService
	Mailer  *email.Mailer
	Storage storage.Storage
	Pusher  NotificationPusher
	Metrics metrics.Recorder
	Upload  UploadConfig
}

func NewServiceContainer(d Dependencies) *ServiceContainer {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}

	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	notificationRepo := repositories.NewNotificationRepository()
	reportRepo := repositories.NewReportRepository()

	sanitizer := security.NewTextSanitizer()
	notificationService := NewNotificationService(notificationRepo, userRepo, d.Pusher, d.Metrics)

	applicationService := NewApplicationService(
		applicationRepo, jobRepo, userRepo, notificationService, sanitizer, d.Mailer, d.Metrics,
	)
	adminService := NewAdminService(
		userRepo, jobRepo, applicationRepo, reportRepo, refreshTokenRepo, notificationService, d.Storage, d.Mailer,
	)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, refreshTokenRepo, d.Tokens, d.Mailer),
		ProfileService:      NewProfileService(userRepo, notificationService, sanitizer, d.Mailer),
		UploadService:       NewUploadService(userRepo, d.Storage, d.Upload),
		JobService:          NewJobService(jobRepo, userRepo, notificationService, sanitizer, d.Mailer, d.Metrics),
		ApplicationService:  applicationService,
		NotificationService: notificationService,
		AdminService:        adminService,
		ReportService:       NewReportService(reportRepo, jobRepo, userRepo, refreshTokenRepo, notificationService, sanitizer),

		Tokens:  d.Tokens,
		Mailer:  d.Mailer,
		Storage: d.Storage,
	}
}
