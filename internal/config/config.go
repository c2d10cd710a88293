// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New returns a Config filled with defaults.
//   - Load layers a YAML file and SKILLRATE_* environment variables on top.
//   - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of batch conversion workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// MaxBatchSize caps the number of items in one batch request.
	MaxBatchSize int `koanf:"max_batch_size"`

	// CORSAllowOrigins lists allowed origins. Comma separated in env.
	CORSAllowOrigins []string `koanf:"cors_allow_origins"`

	// Per-IP rate limiting of the HTTP API.
	RateLimitEnabled   bool `koanf:"rate_limit_enabled"`
	RateLimitRequests  int  `koanf:"rate_limit_requests"`
	RateLimitWindowSec int  `koanf:"rate_limit_window_sec"`

	// MetricsNamespace prefixes every Prometheus metric.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		WorkerCount:        runtime.NumCPU() * 2,
		QueueSize:          10_000,
		MaxBatchSize:       1_000,
		CORSAllowOrigins:   []string{"*"},
		RateLimitEnabled:   true,
		RateLimitRequests:  600,
		RateLimitWindowSec: 60,
		MetricsNamespace:   "skillrate",
	}
}

// Validate checks values that would make the service unusable.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	case c.MaxBatchSize > c.QueueSize:
		return fmt.Errorf("%w: max_batch_size must not exceed queue_size", ErrInvalidConfig)
	case c.RateLimitEnabled && (c.RateLimitRequests < 1 || c.RateLimitWindowSec < 1):
		return fmt.Errorf("%w: rate limit requests and window must be positive", ErrInvalidConfig)
	}
	return nil
}
