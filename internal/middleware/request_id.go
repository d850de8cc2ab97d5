// Package middleware holds the gin middleware of the stacking service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/stacking-service/internal/logger"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

// ContextKey names values stored on the gin context.
type ContextKey string

// RequestIDKey holds the request id on the gin context.
const RequestIDKey ContextKey = "request_id"

// RequestID tags each request with an id, echoed in X-Request-ID. A client
// id is kept when it is short printable ASCII, otherwise a UUID v4 replaces
// it. The request context gets a zerolog logger carrying the id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)

		reqLog := logger.WithContext(map[string]interface{}{"request_id": id})
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '!' || id[i] > '~' {
			return false
		}
	}
	return true
}
