package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/i18n"
)

const (
	// IdempotencyKeyHeader names the client supplied idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader is set to "true" on replayed responses.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long a 2xx response stays replayable.
	IdempotencyKeyTTL = 24 * time.Hour

	maxIdempotencyKeyLength = 255
)

// Idempotency makes POST, PUT and PATCH requests carrying an
// Idempotency-Key safe to retry. The first 2xx answer per key, caller,
// method and path is stored and replayed. Reusing a key with another body,
// or while the first request still runs, is answered with 409.
// A nil cache disables the middleware.
func Idempotency(cache *IdempotencyCache) gin.HandlerFunc {
	if cache == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if !idempotentMethod(c.Request.Method) || key == "" || len(key) > maxIdempotencyKeyLength {
			c.Next()
			return
		}

		scoped := scopedIdempotencyKey(key, GetAPIKey(c), c.Request)
		requestHash := hashRequestBody(c.Request)
		stored, res := cache.Begin(scoped, requestHash)

		switch res {
		case reservedReplay:
			if stored.Location != "" {
				c.Header("Location", stored.Location)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(stored.StatusCode, stored.ContentType, stored.Body)
			c.Abort()
			return
		case reservedMismatch:
			abortIdempotencyConflict(c, i18n.ErrKeyIdempotencyConflict)
			return
		case reservedInFlight:
			abortIdempotencyConflict(c, i18n.ErrKeyIdempotencyInFlight)
			return
		}

		completed := false
		defer func() {
			if !completed {
				cache.Release(scoped)
			}
		}()

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		status := recorder.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}
		cache.Complete(scoped, &cachedResponse{
			StatusCode:  status,
			ContentType: recorder.Header().Get("Content-Type"),
			Location:    recorder.Header().Get("Location"),
			Body:        recorder.body.Bytes(),
			RequestHash: requestHash,
		})
		completed = true
	}
}

func idempotentMethod(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func abortIdempotencyConflict(c *gin.Context, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusConflict,
		dto.NewError(dto.ErrCodeConflict, message).WithRequestID(GetRequestID(c)))
}

// scopedIdempotencyKey binds the client key to the caller, method and path.
func scopedIdempotencyKey(idempotencyKey, apiKey string, req *http.Request) string {
	h := sha256.New()
	for _, part := range []string{idempotencyKey, apiKey, req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// hashRequestBody fingerprints the body and puts it back for the handler.
func hashRequestBody(req *http.Request) string {
	if req.Body == nil {
		return hashOf(nil)
	}
	body, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))
	return hashOf(body)
}

func hashOf(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// bodyRecorder copies the response body while it is written.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
