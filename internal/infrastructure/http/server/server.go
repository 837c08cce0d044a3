// Package server provides the HTTP server implementation
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutrino/kitchen/internal/infrastructure/config"
	"github.com/nutrino/kitchen/internal/infrastructure/http/handlers"
	"github.com/nutrino/kitchen/internal/infrastructure/http/middleware"
	"github.com/nutrino/kitchen/internal/infrastructure/monitoring"
	"github.com/nutrino/kitchen/pkg/errors"
	"github.com/nutrino/kitchen/pkg/healthcheck"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	mw *middleware.Middleware,
	api *handlers.APIHandlers,
	health *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger.Named("server"),
	}

	s.router = s.setupRouter(mw, api, health, metrics)

	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures the gin engine with middleware and routes
func (s *Server) setupRouter(
	mw *middleware.Middleware,
	api *handlers.APIHandlers,
	health *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
) *gin.Engine {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(s.config.Server.TrustedProxies); err != nil {
		s.logger.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	// ErrorHandler stays innermost so Logger sees the rendered status
	r.Use(
		mw.RequestID(),
		mw.Recovery(),
		mw.Logger(),
		mw.Tracing(),
		mw.Metrics(),
		mw.Security(),
		mw.CORS(),
		mw.RateLimit(),
		mw.ErrorHandler(),
	)

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(errors.NewNotFoundError("Route"))
	})

	mon := s.config.Monitoring
	r.GET(mon.HealthCheckPath, health.Handler())
	r.GET(mon.LivenessPath, health.LivenessHandler())
	r.GET(mon.ReadinessPath, health.ReadinessHandler())
	if mon.EnableMetrics && metrics != nil {
		r.GET(mon.MetricsPath, gin.WrapH(metrics.Handler()))
	}

	api.RegisterRoutes(r)

	return r
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	if err := s.server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
