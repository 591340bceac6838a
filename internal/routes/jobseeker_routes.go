package routes

import (
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupJobSeekerRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, authn *middleware.Authenticator) {
	applications := r.Group("/applications", authn.Required())
	{
		applications.POST("", middleware.RequireCapability(auth.CapApply), h.ApplicationHandler.Apply)
		applications.GET("/my", middleware.RequireCapability(auth.CapListOwnApplications), h.ApplicationHandler.GetMyApplications)
		applications.GET("/job/:jobId/details", middleware.RequireCapability(auth.CapViewAppliedJob), h.ApplicationHandler.GetAppliedJobDetails)
	}
}
