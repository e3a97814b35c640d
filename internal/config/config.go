// Package config loads and validates the apisite YAML configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/render"
	"git.home.luguber.info/inful/apisite/internal/routes"
)

// CurrentVersion is the configuration format version this build reads.
const CurrentVersion = "1"

// Config is the apisite configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Model      ModelConfig      `yaml:"model"`
	Docs       DocsConfig       `yaml:"docs"`
	Routes     RoutesConfig     `yaml:"routes"`
	Render     RenderConfig     `yaml:"render"`
	Server     ServerConfig     `yaml:"server"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Output     OutputConfig     `yaml:"output"`
}

// ModelConfig locates the API model package descriptors.
type ModelConfig struct {
	Dir      string `yaml:"dir"`
	MaxDepth int    `yaml:"max_depth"`
	// Watch reloads the model when files in Dir change.
	Watch bool `yaml:"watch"`
	// RefreshInterval reloads the model periodically, e.g. "10m". Empty disables it.
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
}

// DocsConfig locates the long-form documents.
type DocsConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

// RoutesConfig shapes the navigable paths.
type RoutesConfig struct {
	APIPrefix  string           `yaml:"api_prefix"`
	DocsPrefix string           `yaml:"docs_prefix"`
	KindStyle  routes.KindStyle `yaml:"kind_style"`
}

// RenderConfig controls documentation rendering.
type RenderConfig struct {
	Mode render.Mode `yaml:"mode"`
	// Concurrency bounds per-member work; 0 means one worker per CPU.
	Concurrency int `yaml:"concurrency"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

// MonitoringConfig represents monitoring and observability configuration
type MonitoringConfig struct {
	Metrics MonitoringMetrics `yaml:"metrics"`
	Logging MonitoringLogging `yaml:"logging"`
}

// MonitoringMetrics represents metrics configuration
type MonitoringMetrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MonitoringLogging represents logging configuration
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// OutputConfig controls where `apisite generate` writes its JSON.
type OutputConfig struct {
	// File is the output path; empty or "-" means stdout.
	File string `yaml:"file"`
}

// Load reads, normalizes, defaults and validates the configuration at path.
// A .env file next to the working directory is loaded first without
// overriding the process environment, then ${VAR} references are expanded.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		slog.Debug("No .env file loaded", slog.String("reason", err.Error()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "configuration file not found").
				WithContext("path", path).
				UserAction().
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read configuration file").
			WithContext("path", path).
			Build()
	}
	return Parse(data)
}

// Parse is Load for in-memory YAML. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse configuration").
			UserAction().
			Build()
	}

	return finish(&cfg)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func finish(cfg *Config) (*Config, error) {
	res := NormalizeConfig(cfg)
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}
	applyDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RefreshEvery returns the periodic refresh interval, or 0 when disabled.
func (c *Config) RefreshEvery() time.Duration {
	d, _ := time.ParseDuration(c.Model.RefreshInterval)
	return d
}

// ReadTimeout returns the parsed server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ReadTimeout)
	return d
}

// WriteTimeout returns the parsed server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.WriteTimeout)
	return d
}

// RouteBuilder returns the member path builder described by the routes section.
func (c *Config) RouteBuilder() routes.Builder {
	return routes.NewBuilder(c.Routes.APIPrefix, c.Routes.KindStyle)
}
