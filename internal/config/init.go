package config

import (
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/render"
	"git.home.luguber.info/inful/apisite/internal/routes"
)

// Init writes an example configuration file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			UserAction().
			Build()
	}

	example := Config{
		Version: CurrentVersion,
		Model: ModelConfig{
			Dir:             "${APISITE_MODEL_DIR}",
			MaxDepth:        64,
			Watch:           true,
			RefreshInterval: "30m",
		},
		Docs: DocsConfig{
			Dir:        "./docs",
			Extensions: []string{".md", ".mdx"},
		},
		Routes: RoutesConfig{
			APIPrefix:  routes.DefaultPrefix,
			DocsPrefix: DefaultDocsPrefix,
			KindStyle:  routes.KindStyleVerbatim,
		},
		Render: RenderConfig{
			Mode:        render.ModeSequence,
			Concurrency: 4,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultTimeout,
			WriteTimeout: DefaultTimeout,
		},
		Monitoring: MonitoringConfig{
			Metrics: MonitoringMetrics{Enabled: true, Path: DefaultMetricsPath},
			Logging: MonitoringLogging{Level: LogLevelInfo, Format: LogFormatJSON},
		},
		Output: OutputConfig{File: "./site-data.json"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", path).
			Build()
	}
	return nil
}
