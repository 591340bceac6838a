package handlers

import (
	"errors"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/validator"
	"jobportal_backend/pkg/apperrors"
	"jobportal_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"
)

// BaseHandler carries what every handler needs: request binding, validation and error rendering.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB returns the request-scoped *gorm.DB. A missing value means DBMiddleware
// is not installed, which is a wiring bug rather than a request error.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	val, _ := c.Get(string(contextkeys.DBContextKey))
	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "no database bound to request", "path", c.Request.URL.Path)
		panic("handlers: DBMiddleware is not installed")
	}
	return db
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, binding.JSON, "Invalid request body: ")
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, binding.Query, "Invalid query parameters: ")
}

func (h *BaseHandler) bind(c *gin.Context, obj interface{}, b binding.Binding, prefix string) bool {
	if err := c.ShouldBindWith(obj, b); err != nil {
		logger.CtxWarn(c.Request.Context(), "request binding failed", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError(prefix+err.Error()))
		return false
	}

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		logger.CtxWarn(c.Request.Context(), "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		return false
	}
	h.HandleServiceError(c, err)
	return false
}

// HandleServiceError logs err at a level matching its status and renders it.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	var appErr *apperrors.AppError
	switch {
	case !errors.As(err, &appErr):
		logger.CtxWithError(ctx, "unhandled service error", err, "path", c.Request.URL.Path)
	case appErr.HTTPCode >= 500:
		logger.CtxWithError(ctx, "service failure", err, "path", c.Request.URL.Path)
	default:
		logger.CtxInfo(ctx, "request refused",
			"code", appErr.Code,
			"message", appErr.Message,
			"path", c.Request.URL.Path,
		)
	}
	apperrors.HandleError(c, err)
}

// GetCurrentUser returns the authenticated caller or answers 401.
func (h *BaseHandler) GetCurrentUser(c *gin.Context) (*models.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return nil, false
	}
	return user, true
}
