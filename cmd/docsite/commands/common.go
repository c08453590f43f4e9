package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/observability"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docsite.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format" enum:"text,json" default:"text"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write the example configuration"`
	Validate ValidateCmd `cmd:"" help:"Validate the configuration and optionally the referenced documents"`
	Emit     EmitCmd     `cmd:"" help:"Write the configuration in the generator's format"`
	Resolve  ResolveCmd  `cmd:"" help:"Show how sidebar references resolve to documents"`
	Watch    WatchCmd    `cmd:"" help:"Re-check the configuration on change and on an interval"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(observability.NewLogger(os.Stderr, c.Verbose, c.LogFormat))
	return nil
}

// out returns the command output writer.
func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
