package handlers

import (
	"net/http"

	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

// Apply godoc
// @Summary Apply to a job
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ApplyRequest true "Application"
// @Success 201 {object} dto.ApplicationResponse
// @Failure 400 {object} apperrors.ErrorResponse "Resume missing or job not available"
// @Failure 409 {object} apperrors.ErrorResponse "Already applied"
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.applicationService.Apply(h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetMyApplications godoc
// @Summary The caller's applications, newest first
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Application
// @Router /applications/my [get]
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.GetMyApplications(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetJobApplications godoc
// @Summary Applications received for one of the caller's jobs
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {array} models.Application
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /jobs/{id}/applications [get]
func (h *ApplicationHandler) GetJobApplications(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.GetJobApplications(h.GetDB(c), user.ID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// UpdateStatus godoc
// @Summary Shortlist, accept or reject an application
// @Tags applications
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "Decision"
// @Success 200 {object} dto.ApplicationResponse
// @Failure 400 {object} apperrors.ErrorResponse "No openings left"
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /applications/{id} [put]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.applicationService.UpdateStatus(h.GetDB(c), user.ID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAppliedJobDetails godoc
// @Summary Full detail of a job the caller applied to
// @Tags applications
// @Security BearerAuth
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} dto.AppliedJobView
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /applications/job/{jobId}/details [get]
func (h *ApplicationHandler) GetAppliedJobDetails(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	details, err := h.applicationService.GetAppliedJobDetails(h.GetDB(c), user.ID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
