package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/cmd/docsite/commands"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docsite"),
		kong.Description("Typed configuration for the Laravel Orion documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	// AfterApply has configured the default logger by now.
	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	err := parser.Run(global, cli)
	os.Exit(derrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err))
}
