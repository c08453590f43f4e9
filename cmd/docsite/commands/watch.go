package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/check"
	"git.home.luguber.info/inful/docsite/internal/daemon"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Docs        string        `help:"Docs root (default: docsDir next to the configuration file)" type:"path"`
	Strict      bool          `help:"Treat missing documents as a failed check"`
	Interval    time.Duration `help:"Interval between scheduled checks (0 disables)" default:"5m"`
	EmitTo      string        `name:"emit-to" help:"Write the configuration here after each successful check" type:"path"`
	EmitFormat  string        `name:"emit-format" help:"Format for --emit-to (inferred from its extension when omitted)"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	opts := daemon.Options{
		Check: check.Options{
			ConfigPath: root.Config,
			DocsRoot:   w.Docs,
			Strict:     w.Strict,
			EmitTo:     w.EmitTo,
		},
		Interval:    w.Interval,
		MetricsAddr: w.MetricsAddr,
	}
	if w.EmitTo != "" {
		format, err := (&EmitCmd{Format: w.EmitFormat, Output: w.EmitTo}).format()
		if err != nil {
			return derrors.EmitFailed(w.EmitFormat, err)
		}
		opts.Check.EmitFormat = format
	}

	d, err := daemon.New(opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("Starting watch mode", slog.Duration("interval", w.Interval), slog.String("emit_format", string(opts.Check.EmitFormat)))
	if err := d.Run(ctx); err != nil {
		return err
	}
	slog.Info("Watch mode stopped")
	return nil
}
