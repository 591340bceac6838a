package apperrors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every failed request is answered with.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError aborts the chain with err rendered as an ErrorResponse.
// Errors that are not *AppError become a 500 whose cause stays in the logs.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = InternalError(err)
	}
	if appErr.HTTPCode >= 500 && gin.Mode() != gin.DebugMode {
		appErr = appErr.WithDetails(nil)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
