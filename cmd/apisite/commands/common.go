// Package commands implements the apisite CLI subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apisite/internal/config"
	"git.home.luguber.info/inful/apisite/internal/observability"
)

// Global is shared state handed to every subcommand.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (defaults apply when empty)" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format before configuration is loaded (text or json)" enum:"text,json" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	ModelDir string `name:"model-dir" help:"Override model.dir" type:"path"`
	DocsDir  string `name:"docs-dir" help:"Override docs.dir" type:"path"`

	Serve    ServeCmd    `cmd:"" help:"Generate the site and serve it over HTTP"`
	Generate GenerateCmd `cmd:"" help:"Generate the site once and write it as JSON"`
	Routes   RoutesCmd   `cmd:"" help:"List the navigable path of every API member"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`

	stdout io.Writer `kong:"-"`
	stderr io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing and sets up logging.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLogger(c.errOut(), level, c.LogFormat))
	return nil
}

// LoadConfig loads the configured file (or defaults), applies directory
// overrides and reconfigures logging from the monitoring section.
func (c *CLI) LoadConfig(g *Global) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Config == "" {
		cfg = config.Default()
	} else if cfg, err = config.Load(c.Config); err != nil {
		return nil, err
	}
	if c.ModelDir != "" {
		cfg.Model.Dir = c.ModelDir
	}
	if c.DocsDir != "" {
		cfg.Docs.Dir = c.DocsDir
	}

	level := slog.LevelInfo
	format := c.LogFormat
	if c.Config != "" {
		level = observability.ParseLevel(string(cfg.Monitoring.Logging.Level))
		format = string(cfg.Monitoring.Logging.Format)
	}
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := observability.NewLogger(c.errOut(), level, format)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return cfg, nil
}

func (c *CLI) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func (c *CLI) errOut() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}
