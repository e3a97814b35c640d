package config

import (
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
)

// minRefreshInterval keeps periodic reloads from hammering the model directory.
const minRefreshInterval = time.Second

// ValidateConfig checks a normalized, defaulted configuration.
func ValidateConfig(c *Config) error {
	validators := []func(*Config) error{
		validateVersion,
		validateModel,
		validateDocs,
		validateRoutes,
		validateServer,
	}
	for _, v := range validators {
		if err := v(c); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, message string, value any) error {
	return ferrors.ValidationError(message).
		WithContext("field", field).
		WithContext("value", value).
		UserAction().
		Build()
}

func validateVersion(c *Config) error {
	if c.Version != CurrentVersion {
		return invalid("version", "unsupported configuration version (expected "+CurrentVersion+")", c.Version)
	}
	return nil
}

func validateModel(c *Config) error {
	if strings.TrimSpace(c.Model.Dir) == "" {
		return invalid("model.dir", "model directory is required", c.Model.Dir)
	}
	if c.Model.RefreshInterval != "" {
		d, err := time.ParseDuration(c.Model.RefreshInterval)
		if err != nil {
			return invalid("model.refresh_interval", "refresh interval is not a duration", c.Model.RefreshInterval)
		}
		if d < minRefreshInterval {
			return invalid("model.refresh_interval", "refresh interval must be at least 1s", c.Model.RefreshInterval)
		}
	}
	return nil
}

func validateDocs(c *Config) error {
	for _, ext := range c.Docs.Extensions {
		if ext == "" || ext == "." {
			return invalid("docs.extensions", "document extension must not be empty", ext)
		}
	}
	return nil
}

func validateRoutes(c *Config) error {
	if c.Routes.APIPrefix == c.Routes.DocsPrefix {
		return invalid("routes.docs_prefix", "API and docs prefixes must differ", c.Routes.DocsPrefix)
	}
	reserved := map[string]bool{"/health": true}
	if c.Monitoring.Metrics.Enabled {
		reserved[c.Monitoring.Metrics.Path] = true
	}
	for field, prefix := range map[string]string{
		"routes.api_prefix":  c.Routes.APIPrefix,
		"routes.docs_prefix": c.Routes.DocsPrefix,
	} {
		if reserved[prefix] {
			return invalid(field, "prefix collides with a reserved endpoint", prefix)
		}
	}
	return nil
}

func validateServer(c *Config) error {
	for field, value := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return invalid(field, "timeout must be a positive duration", value)
		}
	}
	return nil
}
