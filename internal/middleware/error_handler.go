package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/stacking-service/internal/domain/dto"
	"github.com/guttosm/stacking-service/internal/i18n"
	"github.com/guttosm/stacking-service/internal/logger"
)

// ErrorHandler answers errors that handlers attached with c.Error but did
// not respond to. A passed deadline becomes 504 and any other error 500.
// Nothing is written for a canceled request, since the client is gone.
func ErrorHandler() gin.HandlerFunc {
	log := logger.Component("http_errors")

	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		written := c.Writer.Written()
		canceled := errors.Is(last.Err, context.Canceled)
		requestID := GetRequestID(c)

		level := zerolog.ErrorLevel
		switch {
		case canceled:
			level = zerolog.InfoLevel
		case written && c.Writer.Status() < http.StatusInternalServerError:
			level = zerolog.DebugLevel
		}
		log.WithLevel(level).
			Err(last.Err).
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("errors", len(c.Errors)).
			Msg("unhandled request error")

		if written || canceled {
			return
		}

		status, messageKey := http.StatusInternalServerError, i18n.ErrKeyInternalError
		if errors.Is(last.Err, context.DeadlineExceeded) {
			status, messageKey = http.StatusGatewayTimeout, i18n.ErrKeyTimeout
		}

		message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
		c.JSON(status, dto.NewError(dto.ErrCodeFromStatus(status), message).WithRequestID(requestID))
	}
}
