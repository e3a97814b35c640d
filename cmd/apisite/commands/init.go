package commands

import (
	"fmt"

	"git.home.luguber.info/inful/apisite/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite an existing configuration file"`
	Path  string `arg:"" optional:"" help:"Where to write the configuration" default:"apisite.yaml"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := i.Path
	if root.Config != "" && path == "apisite.yaml" {
		path = root.Config
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(root.out(), "Wrote configuration to %s\n", path)
	return nil
}
