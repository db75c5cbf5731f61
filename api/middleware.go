package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"

	"github.com/antioquia-open-data/mortality-api/logmodule"
	"github.com/antioquia-open-data/mortality-api/utils"
)

const (
	requestIDHeader = "X-Request-ID"
	localizerKey    = "localizer"
)

// requestIDMiddleware - keep the caller's request id or assign a new one
func requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}

	c.Set(logmodule.RequestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// localizerMiddleware - pick the label language from `lang` or Accept-Language
func localizerMiddleware(c *gin.Context) {
	l := utils.NewLocalizer(c.Query("lang"), c.GetHeader("Accept-Language"), viper.GetString("i18n.default"))
	c.Set(localizerKey, l)
	c.Next()
}

func localizer(c *gin.Context) *i18n.Localizer {
	if l, ok := c.Get(localizerKey); ok {
		if localizer, ok := l.(*i18n.Localizer); ok {
			return localizer
		}
	}
	return utils.NewLocalizer()
}

// metricsMiddleware - request counter and latency timer per route and status
func metricsMiddleware(scope tally.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		tagged := scope.Tagged(map[string]string{
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		tagged.Counter("requests").Inc(1)
		tagged.Timer("latency").Record(time.Since(start))
	}
}
