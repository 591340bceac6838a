package routes

import (
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes registers the routes reachable without an account.
// Credential endpoints sit behind the per-client rate limiter.
func SetupPublicRoutes(
	r *gin.RouterGroup,
	h *handlers.AppHandlers,
	authn *middleware.Authenticator,
	limiter *middleware.RateLimiter,
) {
	r.GET("/health", h.HealthHandler.Health)

	auth := r.Group("/auth")
	{
		limited := auth.Group("", limiter.Middleware())
		limited.POST("/register", h.AuthHandler.Register)
		limited.POST("/login", h.AuthHandler.Login)
		limited.POST("/forgot-password", h.AuthHandler.ForgotPassword)
		limited.POST("/reset-password", h.AuthHandler.ResetPassword)

		auth.POST("/refresh", h.AuthHandler.RefreshToken)
		auth.POST("/logout", authn.Required(), h.AuthHandler.Logout)
	}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.JobHandler.ListJobs)
		jobs.GET("/:id", authn.Optional(), h.JobHandler.GetJob)
	}

	r.GET("/uploads/logos/*name", h.FileHandler.ServeLogo)
}
