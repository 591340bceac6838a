package routes

import (
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(r *gin.RouterGroup, h *handlers.AdminHandler, authn *middleware.Authenticator) {
	admin := r.Group("/admin", authn.Required())

	jobs := admin.Group("/jobs", middleware.RequireCapability(auth.CapModerateJobs))
	{
		jobs.GET("/pending", h.GetPendingJobs)
		jobs.PUT("/:id/review", h.ReviewJob)
	}

	employers := admin.Group("/employers", middleware.RequireCapability(auth.CapVerifyEmployers))
	{
		employers.GET("/unverified", h.GetUnverifiedEmployers)
		employers.PUT("/:id/verify", h.VerifyEmployer)
	}

	admin.GET("/stats", middleware.RequireCapability(auth.CapViewStats), h.GetStats)

	users := admin.Group("/users", middleware.RequireCapability(auth.CapManageUsers))
	{
		users.GET("", h.ListUsers)
		users.PUT("/:id/block", h.SetBlocked)
		users.DELETE("/:id", h.DeleteUser)
	}

	reports := admin.Group("/reports", middleware.RequireCapability(auth.CapModerateReports))
	{
		reports.GET("", h.GetPendingReports)
		reports.PUT("/:id/review", h.ReviewReport)
	}
}
