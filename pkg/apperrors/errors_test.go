package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetails_StillMatchesSentinel(t *testing.T) {
	detailed := ErrInvalidToken.WithDetails(map[string]string{"reason": "expired"})

	assert.ErrorIs(t, fmt.Errorf("refresh: %w", detailed), ErrInvalidToken)
	assert.NotErrorIs(t, detailed, ErrInvalidCredentials)
	assert.Nil(t, ErrInvalidToken.Details)
}

func TestHandleError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, NewNotFoundError("job", "Job not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["error"]["code"])
	assert.Equal(t, "job", body["error"]["domain"])
	assert.Equal(t, "Job not found", body["error"]["message"])
}

func TestHandleError_HidesUnknownCauses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}
