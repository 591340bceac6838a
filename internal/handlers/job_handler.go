package handlers

import (
	"net/http"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

// ListJobs godoc
// @Summary Browse open jobs
// @Description Only approved jobs with open positions and a future deadline are listed.
// @Tags jobs
// @Produce json
// @Param category query string false "Category"
// @Param type query string false "Full-time, Part-time, Internship or Contract"
// @Param location query string false "Location"
// @Param search query string false "Case-insensitive match on title, description and company"
// @Success 200 {array} dto.JobView
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	jobs, err := h.jobService.ListJobs(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJob godoc
// @Summary Job detail
// @Description Anonymous callers only see approved jobs. The owner and admins see any status.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobView
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(h.GetDB(c), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob godoc
// @Summary Post a job for moderation
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job"
// @Success 201 {object} dto.JobResponse
// @Failure 403 {object} apperrors.ErrorResponse "Profile incomplete or pending review"
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.jobService.CreateJob(h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// DeleteJob godoc
// @Summary Delete one of the caller's jobs
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(h.GetDB(c), user.ID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Job deleted successfully"})
}

// GetEmployerJobs godoc
// @Summary The caller's jobs with dashboard badges
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EmployerJobView
// @Router /employer/jobs [get]
func (h *JobHandler) GetEmployerJobs(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.GetEmployerJobs(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}
