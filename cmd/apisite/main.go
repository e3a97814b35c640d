package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apisite/cmd/apisite/commands"
	ferrors "git.home.luguber.info/inful/apisite/internal/foundation/errors"
	"git.home.luguber.info/inful/apisite/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("apisite"),
		kong.Description("Serve API reference data and long-form documents for a documentation website."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	globals := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(globals, &cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
