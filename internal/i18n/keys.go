// Package i18n translates user-facing messages of the stacking service.
package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest      = "error.invalid_request"
	ErrKeyInvalidRequestBody  = "error.invalid_request_body"
	ErrKeyInternalError       = "error.internal_error"
	ErrKeyAPIKeyRequired      = "error.api_key_required"
	ErrKeyInvalidAPIKey       = "error.invalid_api_key"
	ErrKeyNotFound            = "error.not_found"
	ErrKeyRateLimitExceeded   = "error.rate_limit_exceeded"
	ErrKeyTimeout             = "error.timeout"
	ErrKeyGroupNotFound       = "error.group_not_found"
	ErrKeyInvalidGroup        = "error.invalid_group"
	ErrKeyInvalidCart         = "error.invalid_cart"
	ErrKeyCartTooLarge        = "error.cart_too_large"
	ErrKeyUnknownStrategy     = "error.unknown_strategy"
	ErrKeyCatalogUnavailable  = "error.catalog_unavailable"
	ErrKeyIdempotencyConflict = "error.idempotency_conflict"
	ErrKeyIdempotencyInFlight = "error.idempotency_in_flight"
)
