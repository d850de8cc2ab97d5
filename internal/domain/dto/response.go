package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/stacking-service/internal/domain/model"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidGroup   = "invalid_group"
	ErrCodeInternal       = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeNotFound       = "not_found"
	ErrCodeRateLimit      = "rate_limit_exceeded"
	ErrCodeConflict       = "conflict"
	ErrCodeTimeout        = "timeout"
	ErrCodeUnavailable    = "service_unavailable"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:         ErrCodeInvalidRequest,
	http.StatusUnauthorized:       ErrCodeUnauthorized,
	http.StatusNotFound:           ErrCodeNotFound,
	http.StatusRequestTimeout:     ErrCodeTimeout,
	http.StatusConflict:           ErrCodeConflict,
	http.StatusTooManyRequests:    ErrCodeRateLimit,
	http.StatusServiceUnavailable: ErrCodeUnavailable,
	http.StatusGatewayTimeout:     ErrCodeTimeout,
}

// SuccessResponse is the envelope of every 2xx body.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data is the payload, a Shipment for the simulate endpoint
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the envelope of every error body.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_group"`
	Message string `json:"message,omitempty" example:"stacking group definition is invalid"`
	// Details maps a field to what is wrong with it, e.g. {"field": "base_height", "reason": "must be positive"}
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name ErrorResponse

// GroupListResponse lists the catalog in evaluation order.
// @Description Stacking groups in catalog order
type GroupListResponse struct {
	Groups []model.GroupDefinition `json:"groups"`
	Count  int                     `json:"count" example:"2"`
} // @name GroupListResponse

// NewError stamps an ErrorResponse with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now().UTC()}
}

// WithRequestID returns a copy carrying requestID.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails returns a copy carrying details.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	e.Details = details
	return e
}

// ErrCodeFromStatus picks the error code for an HTTP status. Unlisted
// statuses map to internal_error.
func ErrCodeFromStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return ErrCodeInternal
}
