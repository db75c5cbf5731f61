package api

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"

	"github.com/antioquia-open-data/mortality-api/logmodule"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

const pingTimeout = 5 * time.Second

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// read only view of the loaded dataset
	dashboard Dashboard

	// optional backing store probed by the health check
	store Pinger

	metrics tally.Scope
}

// NewServer new instance of server, store may be nil when the dataset comes
// from files
func NewServer(d Dashboard, store Pinger, metrics tally.Scope) *Server {
	if metrics == nil {
		metrics = tally.NoopScope
	}

	return &Server{
		dashboard: d,
		store:     store,
		metrics:   metrics,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(requestIDMiddleware)
	r.Use(metricsMiddleware(s.metrics))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:    []string{"GET"},
		AllowHeaders:    []string{"Origin", "Accept-Language", requestIDHeader},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition", requestIDHeader},
		AllowAllOrigins: true,
		MaxAge:          12 * time.Hour,
	}))
	apiRoute.Use(localizerMiddleware)
	{
		apiRoute.GET("/information", s.information)
		apiRoute.GET("/years", s.years)
		apiRoute.GET("/dashboard", s.render)
		apiRoute.GET("/map", s.mapLayer)
		apiRoute.GET("/rankings", s.ranking)
		apiRoute.GET("/rankings/chart.png", s.rankingChart)
		apiRoute.GET("/summary", s.summary)
		apiRoute.GET("/records", s.records)
		apiRoute.GET("/records.xlsx", s.workbook)
		apiRoute.GET("/municipalities/:key", s.municipality)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			log.WithError(err).Error("store ping failed")
			abortWithEncoding(c, http.StatusServiceUnavailable, errorServiceUnavailable, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "OK",
		"version":    viper.GetString("server.version"),
		"dataset_id": s.dashboard.DatasetID(),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"dataset": s.dashboard.Information(),
			"source":  viper.GetString("data.source"),
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
