package routes

import (
	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/handlers"
	"jobportal_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEmployerRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, authn *middleware.Authenticator) {
	employer := r.Group("/employer", authn.Required())
	{
		employer.GET("/jobs", middleware.RequireCapability(auth.CapListOwnJobs), h.JobHandler.GetEmployerJobs)
		employer.POST("/request-verification", middleware.RequireCapability(auth.CapRequestVerification), h.ProfileHandler.RequestVerification)
	}

	jobs := r.Group("/jobs", authn.Required())
	{
		jobs.POST("", middleware.RequireCapability(auth.CapPostJob), h.JobHandler.CreateJob)
		jobs.DELETE("/:id", middleware.RequireCapability(auth.CapDeleteOwnJob), h.JobHandler.DeleteJob)
		jobs.GET("/:id/applications", middleware.RequireCapability(auth.CapListJobApplications), h.ApplicationHandler.GetJobApplications)
	}

	r.PUT("/applications/:id", authn.Required(),
		middleware.RequireCapability(auth.CapDecideApplication), h.ApplicationHandler.UpdateStatus)
}
