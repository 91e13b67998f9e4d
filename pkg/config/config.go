// Package config loads and validates the estadoc service configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/probatech/estadoc/pkg/logging"
	"github.com/probatech/estadoc/pkg/pipeline"
	"github.com/probatech/estadoc/pkg/telemetry"
)

// Config holds the full service configuration.
type Config struct {
	Server  ServerConfig             `yaml:"server" json:"server"`
	Logging logging.Config           `yaml:"logging" json:"logging"`
	Limits  pipeline.Limits          `yaml:"limits" json:"limits"`
	Metrics MetricsConfig            `yaml:"metrics" json:"metrics"`
	Tracing *telemetry.TracingConfig `yaml:"tracing,omitempty" json:"tracing,omitempty"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// ListenAddr is the address to listen on (e.g. ":8080")
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`

	// ShutdownTimeout is how long to wait for graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// Sanitize strips control characters from submitted content before
	// processing
	Sanitize bool `yaml:"sanitize" json:"sanitize"`
}

// MetricsConfig holds metrics exposure settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ShutdownTimeout: 10 * time.Second,
			Sanitize:        false,
		},
		Logging: logging.Config{
			Level:  "info",
			Pretty: false,
		},
		Limits: pipeline.DefaultLimits(),
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Tracing: &telemetry.TracingConfig{
			Enabled:     false,
			ServiceName: "estadoc",
		},
	}
}

// Load reads a YAML configuration file layered over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr is required")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("config: server.shutdown_timeout must not be negative")
	}
	if c.Limits.MinContentLength < 0 || c.Limits.MaxContentLength < 0 {
		return fmt.Errorf("config: limits must not be negative")
	}
	if c.Limits.MaxContentLength > 0 && c.Limits.MinContentLength > c.Limits.MaxContentLength {
		return fmt.Errorf("config: limits.min_content_length exceeds limits.max_content_length")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("config: metrics.path is required when metrics are enabled")
	}
	if c.Tracing != nil && c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("config: tracing.endpoint is required when tracing is enabled")
	}
	return nil
}
