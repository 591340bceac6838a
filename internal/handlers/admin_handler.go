package handlers

import (
	"net/http"

	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the moderation panel: employers, jobs, users and reports.
type AdminHandler struct {
	*BaseHandler
	adminService  services.AdminService
	jobService    services.JobService
	reportService services.ReportService
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	jobService services.JobService,
	reportService services.ReportService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		adminService:  adminService,
		jobService:    jobService,
		reportService: reportService,
	}
}

// GetPendingJobs godoc
// @Summary Jobs waiting for moderation
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Job
// @Router /admin/jobs/pending [get]
func (h *AdminHandler) GetPendingJobs(c *gin.Context) {
	jobs, err := h.jobService.GetPendingJobs(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// ReviewJob godoc
// @Summary Approve or reject a job
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.ReviewJobRequest true "Decision"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/jobs/{id}/review [put]
func (h *AdminHandler) ReviewJob(c *gin.Context) {
	admin, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.ReviewJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.jobService.ReviewJob(h.GetDB(c), admin.ID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUnverifiedEmployers godoc
// @Summary Employers awaiting verification
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Router /admin/employers/unverified [get]
func (h *AdminHandler) GetUnverifiedEmployers(c *gin.Context) {
	employers, err := h.adminService.GetUnverifiedEmployers(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employers)
}

// VerifyEmployer godoc
// @Summary Verify an employer
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Employer ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/employers/{id}/verify [put]
func (h *AdminHandler) VerifyEmployer(c *gin.Context) {
	response, err := h.adminService.VerifyEmployer(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetStats godoc
// @Summary Platform counters
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PlatformStats
// @Router /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListUsers godoc
// @Summary Search accounts
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "jobseeker, employer or admin"
// @Param search query string false "Matches name, email or company name"
// @Success 200 {array} models.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	users, err := h.adminService.ListUsers(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// SetBlocked godoc
// @Summary Block or unblock an account
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.BlockUserRequest true "Blocked flag"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} apperrors.ErrorResponse "Target is an admin"
// @Router /admin/users/{id}/block [put]
func (h *AdminHandler) SetBlocked(c *gin.Context) {
	var req dto.BlockUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.adminService.SetBlocked(h.GetDB(c), c.Param("id"), *req.Blocked)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteUser godoc
// @Summary Delete an account and everything it owns
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} apperrors.ErrorResponse "Target is an admin"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

// GetPendingReports godoc
// @Summary Reports waiting for review
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Report
// @Router /admin/reports [get]
func (h *AdminHandler) GetPendingReports(c *gin.Context) {
	reports, err := h.reportService.GetPendingReports(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// ReviewReport godoc
// @Summary Resolve a report, optionally blocking the job or its employer
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param request body dto.ReviewReportRequest true "Decision"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/reports/{id}/review [put]
func (h *AdminHandler) ReviewReport(c *gin.Context) {
	admin, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.ReviewReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.reportService.ReviewReport(h.GetDB(c), admin.ID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
