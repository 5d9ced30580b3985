package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/listservice/internal/config"
	"github.com/aescanero/listservice/internal/liststore"
	"github.com/aescanero/listservice/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/listservice/pkg/adapters/secrets/awssm"
	"github.com/aescanero/listservice/pkg/api/grpc"
	"github.com/aescanero/listservice/pkg/api/http"
	"github.com/aescanero/listservice/pkg/api/lambda"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Local development settings; never overrides the process environment
	if _, err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
	}

	rt, err := config.DetectRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to detect runtime: %v\n", err)
		os.Exit(1)
	}

	// The secret overlay runs before the real logger exists because it may
	// change LOG_LEVEL itself.
	bootLogger := initLogger(os.Getenv("LOG_LEVEL"))
	overlayOutcome, overlayKeys := overlaySecrets(rt, bootLogger)
	_ = bootLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting ListService",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("environment", cfg.Environment),
		zap.Bool("managed", rt.Managed()))

	store := liststore.NewSample()

	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsCollector := prometheus.NewCollector(registry)
	metricsCollector.RecordSecretOverlay(overlayOutcome, overlayKeys)

	httpCfg := &http.Config{
		Addr:              cfg.GetHTTPAddr(),
		Debug:             bool(cfg.Debug),
		CORSAllowOrigin:   cfg.HTTP.CORSAllowOrigin,
		ReadHeaderTimeout: cfg.Timeouts.ReadHeaderTimeout,
		Info: http.ServiceInfo{
			Title:       cfg.APITitle,
			Description: cfg.APIDescription,
			Version:     cfg.APIVersion,
			Environment: cfg.Environment,
		},
		Store:   store,
		Metrics: metricsCollector,
		Logger:  logger,
	}
	if cfg.MetricsEnabled {
		httpCfg.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}
	httpServer := http.NewServer(httpCfg)

	if rt.Managed() {
		lambda.NewAdapter(httpServer.Handler(), logger).Start()
		return
	}

	var grpcServer *grpc.Server
	if cfg.GRPC.Enabled {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Addr:   cfg.GetGRPCAddr(),
			Logger: logger,
		})
		if err != nil {
			logger.Fatal("failed to create gRPC server", zap.Error(err))
		}
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Fatal("gRPC server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("ListService started",
		zap.String("http_addr", cfg.GetHTTPAddr()),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
		zap.Int("items", store.Len()))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	logger.Info("ListService shut down complete")
}

// overlaySecrets applies the environment's secret to the process
// environment. Failures are logged and never stop the boot.
func overlaySecrets(rt *config.Runtime, logger *zap.Logger) (string, int) {
	if !rt.Managed() {
		return prometheus.OutcomeSkipped, 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), rt.FetchTimeout)
	defer cancel()

	secretID := rt.SecretName()

	store, err := awssm.New(ctx, rt.Region, logger)
	if err != nil {
		logger.Warn("could not load secrets", zap.String("secret_id", secretID), zap.Error(err))
		return prometheus.OutcomeFailure, 0
	}

	n, err := config.OverlaySecrets(ctx, store, secretID, os.Setenv)
	if err != nil {
		logger.Warn("could not load secrets", zap.String("secret_id", secretID), zap.Error(err))
		return prometheus.OutcomeFailure, n
	}

	logger.Info("applied secret overlay",
		zap.String("secret_id", secretID),
		zap.Int("keys", n))
	return prometheus.OutcomeSuccess, n
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch config.NormalizeLogLevel(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
