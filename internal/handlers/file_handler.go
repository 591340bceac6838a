package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// FileHandler streams stored uploads back to clients.
type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

// DownloadResume godoc
// @Summary Download a job seeker's resume
// @Description Allowed for the owner, employers and admins. The token may be passed as ?token= for plain links.
// @Tags files
// @Security BearerAuth
// @Produce application/octet-stream
// @Param userId path string true "Owner ID"
// @Param token query string false "Access token"
// @Success 200 {file} file
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /resume/{userId} [get]
func (h *FileHandler) DownloadResume(c *gin.Context) {
	viewer, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	file, err := h.uploadService.OpenResume(c.Request.Context(), h.GetDB(c), viewer, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, file.FileName))
	c.Header("Cache-Control", "no-store")
	h.stream(c, file)
}

// ResumeURL godoc
// @Summary Time-limited link to a resume
// @Tags files
// @Security BearerAuth
// @Produce json
// @Param userId path string true "Owner ID"
// @Success 200 {object} dto.ResumeURLResponse
// @Router /resume/{userId}/url [get]
func (h *FileHandler) ResumeURL(c *gin.Context) {
	viewer, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	response, err := h.uploadService.ResumeURL(c.Request.Context(), h.GetDB(c), viewer, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ServeLogo godoc
// @Summary Company logo
// @Tags files
// @Produce image/png
// @Param name path string true "Stored logo name"
// @Success 200 {file} file
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /uploads/logos/{name} [get]
func (h *FileHandler) ServeLogo(c *gin.Context) {
	file, err := h.uploadService.OpenLogo(c.Request.Context(), "logos"+c.Param("name"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline")
	c.Header("Cache-Control", "public, max-age=86400")
	h.stream(c, file)
}

func (h *FileHandler) stream(c *gin.Context, file *services.StoredFile) {
	defer file.Content.Close()

	c.Header("Content-Type", file.ContentType)
	if file.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(file.Size, 10))
	}
	c.Status(http.StatusOK)

	// Headers are already sent, so a copy failure can only be logged.
	if _, err := io.Copy(c.Writer, file.Content); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to stream file", err, "path", c.Request.URL.Path)
		_ = c.Error(err)
	}
}
