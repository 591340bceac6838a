package routes

import (
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCommonRoutes registers the routes shared by every signed-in role.
func SetupCommonRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, authn *middleware.Authenticator) {
	profile := r.Group("/profile", authn.Required())
	{
		profile.GET("", middleware.RequireCapability(auth.CapViewOwnProfile), h.ProfileHandler.GetProfile)
		profile.PUT("", middleware.RequireCapability(auth.CapEditOwnProfile), h.ProfileHandler.UpdateProfile)
		profile.POST("/resume", middleware.RequireCapability(auth.CapUploadResume), h.ProfileHandler.UploadResume)
		profile.POST("/logo", middleware.RequireCapability(auth.CapUploadLogo), h.ProfileHandler.UploadLogo)
	}

	r.GET("/users/:id/profile", authn.Required(),
		middleware.RequireCapability(auth.CapViewUserProfile), h.ProfileHandler.GetUserProfile)

	notifications := r.Group("/notifications", authn.Required(), middleware.RequireCapability(auth.CapReadNotifications))
	{
		notifications.GET("", h.NotificationHandler.GetNotifications)
		notifications.GET("/unread-count", h.NotificationHandler.GetUnreadCount)
		notifications.PUT("/read-all", h.NotificationHandler.MarkAllAsRead)
		notifications.PUT("/:id/read", h.NotificationHandler.MarkAsRead)
	}

	r.POST("/jobs/:id/report", authn.Required(),
		middleware.RequireCapability(auth.CapReportJob), h.ReportHandler.ReportJob)

	// Resume links are opened straight from the browser, so the token may come as ?token=.
	resume := r.Group("/resume", authn.RequiredWithQuery())
	{
		resume.GET("/:userId", h.FileHandler.DownloadResume)
		resume.GET("/:userId/url", h.FileHandler.ResumeURL)
	}
}
