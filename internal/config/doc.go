// Package config provides configuration management for ListService.
//
// Configuration is loaded from environment variables using the env package.
// All configuration values have sensible defaults for development use.
//
// Boot happens in three steps: an optional .env file is loaded, then, when
// running inside a managed environment, key/value pairs from the secret
// store are overlaid onto the process environment, and finally Load reads
// the result into an immutable Config.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
