package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aescanero/listservice/internal/liststore"
	"github.com/aescanero/listservice/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	store   *liststore.Store
	info    ServiceInfo
	metrics *prometheus.Collector
	logger  *zap.Logger
}

// ServiceInfo describes the service in the discovery payload
type ServiceInfo struct {
	Title       string
	Description string
	Version     string
	Environment string
}

// Config holds HTTP server configuration
type Config struct {
	Addr              string
	Debug             bool
	CORSAllowOrigin   string
	ReadHeaderTimeout time.Duration
	Info              ServiceInfo
	Store             *liststore.Store

	// Metrics and MetricsHandler are optional; /metrics is mounted only
	// when MetricsHandler is set.
	Metrics        *prometheus.Collector
	MetricsHandler http.Handler

	Logger *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if cfg.Metrics != nil {
		router.Use(requestMetrics(cfg.Metrics))
	}
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(cfg.Logger))
	router.Use(corsMiddleware(cfg.CORSAllowOrigin))

	s := &Server{
		router:  router,
		store:   cfg.Store,
		info:    cfg.Info,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}

	s.setupRoutes(cfg.MetricsHandler)

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(metricsHandler http.Handler) {
	s.router.GET("/", s.handleRoot)

	// Health check
	s.router.GET("/health", s.handleHealth)

	// Metrics
	if metricsHandler != nil {
		s.router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	list := s.router.Group("/list")
	{
		list.GET("/head", s.handleHead)
		list.GET("/tail", s.handleTail)
	}
}

// Handler returns the routed handler including all middleware
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
