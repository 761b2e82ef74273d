// Package api is the thin serving layer over a completed pipeline run. It
// holds no business logic: every handler is a query against the run's
// Artifacts, and a core failure translates to a JSON error status.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/help-intl/aidcluster/internal/pipeline"
)

// Server exposes cluster prediction and artifact retrieval over HTTP.
type Server struct {
	arts   *pipeline.Artifacts
	logger zerolog.Logger
	engine *gin.Engine
}

// New builds a server around the artifacts of a completed run.
func New(arts *pipeline.Artifacts, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{arts: arts, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/predict", s.handlePredict)
	s.engine.GET("/clusters", s.handleClusters)
	s.engine.GET("/countries", s.handleCountries)
	s.engine.GET("/priority", s.handlePriority)
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("api listening")
	return s.engine.Run(addr)
}

// Handler exposes the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "country aid clustering API",
		"version": "1.0",
		"endpoints": gin.H{
			"/predict":   "POST - predict cluster for country indicators",
			"/clusters":  "GET - cluster profiles (standardized units)",
			"/countries": "GET - all countries with their cluster labels",
			"/priority":  "GET - aid priority list",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "run_id": s.arts.RunID})
}
