package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/i18n"
)

const (
	// APIKeyHeader carries the caller's API key.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is accepted when the header is absent.
	APIKeyQuery = "api_key"

	apiKeyContextKey = "api_key"
)

// APIKeyAuth rejects requests without one of the enabled keys in validKeys.
// Keys mapped to false are revoked. With no enabled keys every request is
// rejected. Keys are compared as SHA-256 digests in constant time.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	digests := make([][sha256.Size]byte, 0, len(validKeys))
	for k, enabled := range validKeys {
		if enabled && k != "" {
			digests = append(digests, sha256.Sum256([]byte(k)))
		}
	}

	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}

		sum := sha256.Sum256([]byte(key))
		match := 0
		for i := range digests {
			match |= subtle.ConstantTimeCompare(digests[i][:], sum[:])
		}
		if match != 1 {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		c.Set(apiKeyContextKey, key)
		c.Next()
	}
}

// GetAPIKey returns the authenticated API key, or "" when auth is disabled.
func GetAPIKey(c *gin.Context) string {
	return c.GetString(apiKeyContextKey)
}

func abortUnauthorized(c *gin.Context, messageKey string) {
	c.Header("WWW-Authenticate", `ApiKey header="`+APIKeyHeader+`"`)
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
