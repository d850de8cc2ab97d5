package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stacking-service/internal/logger"
	"github.com/rs/zerolog"
)

// quietPaths are probe and scrape endpoints logged at debug only.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger returns a middleware that logs HTTP request details in JSON format.
// It logs: request ID, method, path, route, status code, latency, IP, and user agent.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		statusCode := c.Writer.Status()
		path := c.Request.URL.Path

		level := getLogLevel(statusCode)
		if quietPaths[path] && level == zerolog.InfoLevel {
			level = zerolog.DebugLevel
		}

		log := logger.Logger()
		if ctxLog := zerolog.Ctx(c.Request.Context()); ctxLog.GetLevel() != zerolog.Disabled {
			log = *ctxLog
		}

		event := log.WithLevel(level).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status_code", statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Int("response_bytes", c.Writer.Size()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent())
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.Msg("HTTP request")
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
