package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	uploadService  services.UploadService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, uploadService services.UploadService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		uploadService:  uploadService,
	}
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Description An employer reaching 100% completion goes back to admin review.
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.UpdateProfileResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.profileService.UpdateProfile(h.GetDB(c), user.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UploadResume godoc
// @Summary Upload the job seeker's resume
// @Tags profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "PDF, DOC or DOCX, at most 5 MiB"
// @Success 200 {object} dto.ResumeUploadResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Router /profile/resume [post]
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	file, ok := h.formFile(c, "resume")
	if !ok {
		return
	}

	response, err := h.uploadService.UploadResume(c.Request.Context(), h.GetDB(c), user.ID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UploadLogo godoc
// @Summary Upload the employer's company logo
// @Tags profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "JPEG, PNG, GIF or WEBP, at most 5 MiB"
// @Success 200 {object} dto.LogoUploadResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 413 {object} apperrors.ErrorResponse
// @Router /profile/logo [post]
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	file, ok := h.formFile(c, "logo")
	if !ok {
		return
	}

	response, err := h.uploadService.UploadLogo(c.Request.Context(), h.GetDB(c), user.ID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// multipartOverhead leaves room for boundaries and part headers around the file.
const multipartOverhead = 64 * 1024

// formFile caps the request body before the multipart form is parsed.
func (h *ProfileHandler) formFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	limit := h.uploadService.MaxFileSize() + multipartOverhead
	if c.Request.ContentLength > limit {
		apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		return nil, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	file, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apperrors.HandleError(c, apperrors.ErrFileTooLarge)
		} else {
			apperrors.HandleError(c, apperrors.ErrFileRequired)
		}
		return nil, false
	}
	return file, true
}

// GetUserProfile godoc
// @Summary Public profile of another user
// @Description Job seeker profiles are visible to employers and admins only.
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /users/{id}/profile [get]
func (h *ProfileHandler) GetUserProfile(c *gin.Context) {
	viewer, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetPublicProfile(h.GetDB(c), viewer, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RequestVerification godoc
// @Summary Ask the admins to verify a complete employer profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse "Profile incomplete"
// @Router /employer/request-verification [post]
func (h *ProfileHandler) RequestVerification(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	response, err := h.profileService.RequestVerification(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
