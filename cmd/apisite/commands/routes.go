package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/apisite/internal/site"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct {
	Package string `short:"p" help:"Only list members of this package"`
}

func (r *RoutesCmd) Run(globals *Global, root *CLI) error {
	cfg, err := root.LoadConfig(globals)
	if err != nil {
		return err
	}
	snap, err := site.New(cfg, nil, site.WithLogger(globals.Logger)).Refresh(context.Background())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(root.out(), 0, 4, 2, ' ', 0)
	for _, pkg := range snap.Packages {
		if r.Package != "" && pkg.Name != r.Package {
			continue
		}
		for _, m := range pkg.Members {
			summary := strings.Join(strings.Fields(m.Summary.PlainText()), " ")
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Path, m.Kind, m.Name, summary)
		}
	}
	return tw.Flush()
}
