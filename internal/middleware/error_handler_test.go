package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithErrorHandler(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.POST("/api/shipping/simulate", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/shipping/simulate", nil))
	return w
}

func TestErrorHandler_UnansweredError(t *testing.T) {
	w := serveWithErrorHandler(t, func(c *gin.Context) {
		_ = c.Error(errors.New("matcher exploded"))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"internal_error"`)
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
	assert.NotContains(t, w.Body.String(), "matcher exploded")
}

func TestErrorHandler_WrappedDeadline(t *testing.T) {
	w := serveWithErrorHandler(t, func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("load catalog: %w", context.DeadlineExceeded))
	})

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"timeout"`)
}

func TestErrorHandler_LastErrorDecides(t *testing.T) {
	w := serveWithErrorHandler(t, func(c *gin.Context) {
		_ = c.Error(errors.New("first"))
		_ = c.Error(context.DeadlineExceeded)
	})

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestErrorHandler_CanceledWritesNothing(t *testing.T) {
	w := serveWithErrorHandler(t, func(c *gin.Context) {
		_ = c.Error(fmt.Errorf("load catalog: %w", context.Canceled))
	})

	assert.Empty(t, w.Body.String())
}

func TestErrorHandler_KeepsHandlerResponse(t *testing.T) {
	w := serveWithErrorHandler(t, func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_group"})
		_ = c.Error(errors.New("group 7 has no required products"))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid_group"}`, w.Body.String())
}

func TestErrorHandler_NoErrors(t *testing.T) {
	w := serveWithErrorHandler(t, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
}
