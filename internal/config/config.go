package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for ListService
type Config struct {
	// Service identity
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	APITitle       string `env:"API_TITLE" envDefault:"ListService"`
	APIDescription string `env:"API_DESCRIPTION" envDefault:"HTTP REST API for list operations with head and tail functionality"`
	APIVersion     string `env:"API_VERSION" envDefault:"0.1.0"`

	Debug    Flag   `env:"DEBUG" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Server configuration
	HTTP HTTPConfig
	GRPC GRPCConfig

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// Timeouts
	Timeouts TimeoutConfig
}

// HTTPConfig holds the local HTTP listener configuration
type HTTPConfig struct {
	Host            string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            int    `env:"HTTP_PORT" envDefault:"8000"`
	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
}

// GRPCConfig holds the gRPC health listener configuration
type GRPCConfig struct {
	Enabled bool `env:"GRPC_ENABLED" envDefault:"true"`
	Port    int  `env:"GRPC_PORT" envDefault:"9090"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout   time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
	ReadHeaderTimeout time.Duration `env:"TIMEOUT_READ_HEADER" envDefault:"10s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.LogLevel = NormalizeLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Flag is a boolean that only "true", "1" and "t" (any case) switch on.
// Every other value, including garbage, reads as false instead of failing.
type Flag bool

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Flag) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "true", "1", "t":
		*f = true
	default:
		*f = false
	}
	return nil
}

// NormalizeLogLevel lower-cases level and folds the aliases accepted by
// LOG_LEVEL onto debug, info, warn and error.
func NormalizeLogLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "warning":
		return "warn"
	case "critical", "fatal":
		return "error"
	case "notset":
		return "debug"
	}
	return level
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTP.Port)
	}
	if c.GRPC.Enabled && (c.GRPC.Port < 1 || c.GRPC.Port > 65535) {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPC.Port)
	}
	if c.GRPC.Enabled && c.GRPC.Port == c.HTTP.Port {
		return fmt.Errorf("gRPC port %d collides with HTTP port", c.GRPC.Port)
	}

	if c.APITitle == "" {
		return fmt.Errorf("API title is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.Timeouts.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return net.JoinHostPort(c.HTTP.Host, strconv.Itoa(c.HTTP.Port))
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPC.Port)
}
