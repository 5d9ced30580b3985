package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENVIRONMENT", "API_TITLE", "API_DESCRIPTION", "API_VERSION", "DEBUG", "LOG_LEVEL",
	"HTTP_HOST", "HTTP_PORT", "CORS_ALLOW_ORIGIN", "GRPC_ENABLED", "GRPC_PORT",
	"METRICS_ENABLED", "TIMEOUT_SHUTDOWN", "TIMEOUT_READ_HEADER",
	"AWS_LAMBDA_FUNCTION_NAME", "AWS_REGION", "SECRET_FETCH_TIMEOUT",
}

// clearEnv unsets keys for the duration of the test
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, configKeys...)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "ListService", cfg.APITitle)
	assert.Equal(t, "HTTP REST API for list operations with head and tail functionality", cfg.APIDescription)
	assert.Equal(t, "0.1.0", cfg.APIVersion)
	assert.False(t, bool(cfg.Debug))
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:8000", cfg.GetHTTPAddr())
	assert.Equal(t, ":9090", cfg.GetGRPCAddr())
	assert.True(t, cfg.GRPC.Enabled)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "*", cfg.HTTP.CORSAllowOrigin)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t, configKeys...)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("API_TITLE", "List API Test")
	t.Setenv("API_VERSION", "test")
	t.Setenv("DEBUG", "TRUE")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("GRPC_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "List API Test", cfg.APITitle)
	assert.Equal(t, "test", cfg.APIVersion)
	assert.True(t, bool(cfg.Debug))
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:8081", cfg.GetHTTPAddr())
	assert.False(t, cfg.GRPC.Enabled)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "port out of range", env: map[string]string{"HTTP_PORT": "70000"}},
		{name: "port not a number", env: map[string]string{"HTTP_PORT": "http"}},
		{name: "grpc port collides", env: map[string]string{"HTTP_PORT": "9000", "GRPC_PORT": "9000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, configKeys...)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadLenientDebug(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "True", want: true},
		{value: "1", want: true},
		{value: "t", want: true},
		{value: "T", want: true},
		{value: "False", want: false},
		{value: "0", want: false},
		{value: "yes", want: false},
		{value: "on", want: false},
		{value: "maybe", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t, configKeys...)
			t.Setenv("DEBUG", tt.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, bool(cfg.Debug))
		})
	}
}

func TestLoadLogLevelAliases(t *testing.T) {
	tests := map[string]string{
		"DEBUG":    "debug",
		"INFO":     "info",
		"WARNING":  "warn",
		"CRITICAL": "error",
		"fatal":    "error",
		"NOTSET":   "debug",
	}

	for value, want := range tests {
		t.Run(value, func(t *testing.T) {
			clearEnv(t, configKeys...)
			t.Setenv("LOG_LEVEL", value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, want, cfg.LogLevel)
		})
	}
}

func TestDetectRuntime(t *testing.T) {
	clearEnv(t, configKeys...)

	rt, err := DetectRuntime()
	require.NoError(t, err)
	assert.False(t, rt.Managed())
	assert.Equal(t, "us-east-2", rt.Region)
	assert.Equal(t, "development-list-service-api-config", rt.SecretName())
	assert.Equal(t, 10*time.Second, rt.FetchTimeout)

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "list-service")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("ENVIRONMENT", "prod")

	rt, err = DetectRuntime()
	require.NoError(t, err)
	assert.True(t, rt.Managed())
	assert.Equal(t, "eu-west-1", rt.Region)
	assert.Equal(t, "prod-list-service-api-config", rt.SecretName())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t, "API_TITLE", "API_VERSION")
	t.Setenv("API_VERSION", "from-process")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_TITLE=FromDotEnv\nAPI_VERSION=from-file\n"), 0o600))

	loaded, err := LoadDotEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.Equal(t, "FromDotEnv", os.Getenv("API_TITLE"))
	assert.Equal(t, "from-process", os.Getenv("API_VERSION"), "process environment wins over .env")
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}
