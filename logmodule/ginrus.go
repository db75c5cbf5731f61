package logmodule

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestIDKey - gin context key of the request id
const RequestIDKey = "request_id"

// Ginrus - request logger for a route group, client errors are logged as
// warnings and server errors as errors
func Ginrus(prefix string) gin.HandlerFunc {
	logger := log.WithField("prefix", prefix)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(log.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency":    time.Since(start).String(),
			"user-agent": c.Request.UserAgent(),
		})
		if id := c.GetString(RequestIDKey); id != "" {
			entry = entry.WithField(RequestIDKey, id)
		}

		msg := ""
		if len(c.Errors) > 0 {
			msg = c.Errors.ByType(gin.ErrorTypeAny).String()
		}

		switch {
		case status >= 500:
			entry.Error(msg)
		case status >= 400:
			entry.Warn(msg)
		default:
			entry.Info(msg)
		}
	}
}
