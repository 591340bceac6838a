package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobportal_backend/database"
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/email"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/metrics"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/routes"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/storage"
	"jobportal_backend/internal/validator"
	"jobportal_backend/internal/workers"
	"jobportal_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Components are the long-lived collaborators behind the router.
type Components struct {
	Services  *services.ServiceContainer
	Handlers  *handlers.AppHandlers
	Authn     *middleware.Authenticator
	Limiter   *middleware.RateLimiter
	WSManager *ws.Manager
	WSHandler *ws.WebSocketHandler
	Metrics   metrics.Recorder
	Gatherer  prometheus.Gatherer
}

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	provider, err := newEmailProvider(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	comps := NewComponents(cfg, store, provider, collector, registry)
	router := SetupRouter(cfg, db, comps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go comps.WSManager.Run(ctx)

	worker := workers.NewMaintenanceWorker(db, comps.Services.AuthService, time.Hour)
	worker.Start(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server stopped unexpectedly", "error", err)
		}
		stop()
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}

	comps.Limiter.Stop()
	worker.Wait()
	comps.Services.Mailer.Wait()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("Server stopped")
}

// NewComponents builds services, handlers and middleware from already opened infrastructure.
func NewComponents(
	cfg *config.Config,
	store storage.Storage,
	provider email.Provider,
	rec metrics.Recorder,
	gatherer prometheus.Gatherer,
) *Components {
	if rec == nil {
		rec = metrics.Nop{}
	}

	tokens := auth.NewTokenService(auth.TokenConfig{
		AccessSecret:  cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.AccessTTL(),
		RefreshTTL:    cfg.RefreshTTL(),
		ResetTTL:      cfg.ResetTTL(),
	})
	mailer := email.NewMailer(provider, rec, cfg.Server.FrontendURL)
	wsManager := ws.NewManager()

	svc := services.NewServiceContainer(services.Dependencies{
		Tokens:  tokens,
		Mailer:  mailer,
		Storage: store,
		Pusher:  wsManager,
		Metrics: rec,
		Upload:  services.UploadConfig{MaxFileSize: cfg.Upload.MaxSize},
	})

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.RateLimit.AuthPerMinute,
		Burst:     cfg.RateLimit.AuthBurst,
	})

	return &Components{
		Services:  svc,
		Handlers:  handlers.NewAppHandlers(svc, validator.New()),
		Authn:     middleware.NewAuthenticator(tokens, repositories.NewUserRepository()),
		Limiter:   limiter,
		WSManager: wsManager,
		WSHandler: ws.NewWebSocketHandler(wsManager, cfg.CORS.AllowedOrigins),
		Metrics:   rec,
		Gatherer:  gatherer,
	}
}

func SetupRouter(cfg *config.Config, db *gorm.DB, comps *Components) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.MetricsMiddleware(comps.Metrics))
	router.Use(middleware.DBMiddleware(db))

	if comps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(comps.Gatherer)))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.RegisterRoutes(router, comps.Handlers, comps.Authn, comps.Limiter, comps.WSHandler)
	return router
}

// newEmailProvider returns the SMTP provider, or an in-memory recorder when SMTP is not configured.
func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	templates, err := email.NewTemplates(cfg.Email.TemplatesDir)
	if err != nil {
		return nil, err
	}

	smtpConfig := email.ConfigFrom(cfg)
	if !smtpConfig.Configured() {
		logger.Warn("SMTP is not configured. Emails will be logged and dropped.")
		return email.NewRecordingProvider(templates), nil
	}
	return email.NewSMTPProvider(smtpConfig, templates), nil
}
