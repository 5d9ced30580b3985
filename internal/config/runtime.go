package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const secretNameSuffix = "list-service-api-config"

// Runtime describes the execution environment detected at boot, before the
// secret overlay runs and before Config is loaded.
type Runtime struct {
	// FunctionName is set by the Lambda runtime and marks a managed environment
	FunctionName string        `env:"AWS_LAMBDA_FUNCTION_NAME"`
	Region       string        `env:"AWS_REGION" envDefault:"us-east-2"`
	Environment  string        `env:"ENVIRONMENT" envDefault:"development"`
	FetchTimeout time.Duration `env:"SECRET_FETCH_TIMEOUT" envDefault:"10s"`
}

// DetectRuntime reads the runtime marker variables
func DetectRuntime() (*Runtime, error) {
	rt := &Runtime{}
	if err := env.Parse(rt); err != nil {
		return nil, fmt.Errorf("failed to parse runtime: %w", err)
	}
	return rt, nil
}

// Managed reports whether the process runs inside a managed invocation environment
func (r *Runtime) Managed() bool {
	return r.FunctionName != ""
}

// SecretName returns the id of the configuration secret for this environment
func (r *Runtime) SecretName() string {
	return fmt.Sprintf("%s-%s", r.Environment, secretNameSuffix)
}

// LoadDotEnv loads variables from path when the file exists.
// Variables already present in the process environment are kept.
func LoadDotEnv(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return true, nil
}
