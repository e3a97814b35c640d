package config

import (
	"git.home.luguber.info/inful/apisite/internal/apimodel"
	"git.home.luguber.info/inful/apisite/internal/render"
	"git.home.luguber.info/inful/apisite/internal/routes"
)

// Default values applied to omitted settings.
const (
	DefaultModelDir     = "./api-model"
	DefaultDocsDir      = "./docs"
	DefaultDocsPrefix   = "/docs"
	DefaultAddr         = ":8080"
	DefaultTimeout      = "15s"
	DefaultMetricsPath  = "/metrics"
	DefaultOutputStdout = "-"
)

// DefaultDocExtensions are the long-form document extensions picked up by default.
var DefaultDocExtensions = []string{".md", ".mdx"}

// applyDefaults fills omitted settings. It runs after normalization so
// canonical values drive the defaults.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}

	if c.Model.Dir == "" {
		c.Model.Dir = DefaultModelDir
	}
	if c.Model.MaxDepth <= 0 {
		c.Model.MaxDepth = apimodel.DefaultMaxDepth
	}

	if c.Docs.Dir == "" {
		c.Docs.Dir = DefaultDocsDir
	}
	if len(c.Docs.Extensions) == 0 {
		c.Docs.Extensions = append([]string(nil), DefaultDocExtensions...)
	}

	if c.Routes.APIPrefix == "" {
		c.Routes.APIPrefix = routes.DefaultPrefix
	}
	if c.Routes.DocsPrefix == "" {
		c.Routes.DocsPrefix = DefaultDocsPrefix
	}
	if c.Routes.KindStyle == "" {
		c.Routes.KindStyle = routes.KindStyleVerbatim
	}

	if c.Render.Mode == "" {
		c.Render.Mode = render.ModeSequence
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultTimeout
	}

	if c.Monitoring.Metrics.Path == "" {
		c.Monitoring.Metrics.Path = DefaultMetricsPath
	}
	if c.Monitoring.Logging.Level == "" {
		c.Monitoring.Logging.Level = LogLevelInfo
	}
	if c.Monitoring.Logging.Format == "" {
		c.Monitoring.Logging.Format = LogFormatText
	}

	if c.Output.File == "" {
		c.Output.File = DefaultOutputStdout
	}
}
