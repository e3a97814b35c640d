package commands

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/apisite/internal/aggregate"
	"git.home.luguber.info/inful/apisite/internal/config"
	"git.home.luguber.info/inful/apisite/internal/docs"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/site"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Output string `short:"o" help:"Output file ('-' for stdout); overrides output.file"`
	Indent bool   `help:"Indent the JSON output" default:"true" negatable:""`
}

// SiteData is the document written by 'generate'.
type SiteData struct {
	GenerationID string                     `json:"generationId"`
	GeneratedAt  time.Time                  `json:"generatedAt"`
	Packages     []aggregate.PackageSummary `json:"packages"`
	Docs         []docs.Bundle              `json:"docs"`
}

func (g *GenerateCmd) Run(globals *Global, root *CLI) error {
	cfg, err := root.LoadConfig(globals)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := site.New(cfg, nil, site.WithLogger(globals.Logger))
	snap, err := st.Refresh(ctx)
	if err != nil {
		return err
	}

	target := cfg.Output.File
	if g.Output != "" {
		target = g.Output
	}
	return writeSiteData(root.out(), target, g.Indent, SiteData{
		GenerationID: snap.GenerationID,
		GeneratedAt:  snap.GeneratedAt,
		Packages:     snap.Packages,
		Docs:         snap.Docs.List(),
	})
}

// createOutput opens the site data file for writing.
var createOutput = func(path string) (io.WriteCloser, error) { return os.Create(path) }

func writeSiteData(stdout io.Writer, target string, indent bool, data SiteData) (err error) {
	if target == "" || target == config.DefaultOutputStdout {
		return encodeSiteData(stdout, target, indent, data)
	}

	f, err := createOutput(target)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create output file").
			WithContext("path", target).
			Build()
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ferrors.WrapError(cerr, ferrors.CategoryFileSystem, "failed to close output file").
				WithContext("path", target).
				Build()
		}
	}()
	return encodeSiteData(f, target, indent, data)
}

func encodeSiteData(w io.Writer, target string, indent bool, data SiteData) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write site data").
			WithContext("path", target).
			Build()
	}
	return nil
}
