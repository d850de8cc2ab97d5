package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/i18n"
	"github.com/guttosm/stacking-service/internal/logger"
)

// Timeout bounds the request context by d. Handlers see the deadline through
// c.Request.Context(); when it passes and the handler wrote nothing, the
// request is answered with 504. A non-positive d disables the middleware.
//
// An inbound context that already expires sooner is left alone.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		parent := c.Request.Context()
		if dl, ok := parent.Deadline(); ok && time.Until(dl) <= d {
			c.Next()
			writeTimeout(c, parent)
			return
		}

		ctx, cancel := context.WithTimeout(parent, d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
		writeTimeout(c, ctx)
	}
}

func writeTimeout(c *gin.Context, ctx context.Context) {
	if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return
	}

	log := logger.Component("timeout")
	log.Warn().
		Str("request_id", GetRequestID(c)).
		Str("path", c.Request.URL.Path).
		Msg("request deadline exceeded")

	message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusGatewayTimeout,
		dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c)))
}
