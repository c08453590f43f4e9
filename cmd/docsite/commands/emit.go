package commands

import (
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// EmitCmd implements the 'emit' command.
type EmitCmd struct {
	Format string `short:"f" help:"Output format (js, json, yaml, head); inferred from --output when omitted"`
	Output string `short:"o" help:"Output file (stdout when omitted)" type:"path"`
}

func (e *EmitCmd) Run(g *Global, root *CLI) error {
	format, err := e.format()
	if err != nil {
		return derrors.EmitFailed(e.Format, err)
	}

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	out, err := emit.Render(cfg, format)
	if err != nil {
		return err
	}

	if e.Output == "" {
		if _, err := g.out().Write(out.Bytes()); err != nil {
			return derrors.FileSystemError("write", "stdout", err)
		}
		return nil
	}

	written, err := emit.WriteFile(e.Output, out)
	if err != nil {
		return err
	}
	if written {
		slog.Info("Wrote configuration", logfields.Path(e.Output), logfields.Format(string(format)))
	} else {
		slog.Info("Configuration unchanged", logfields.Path(e.Output), slog.String("fingerprint", out.Fingerprint))
	}
	return nil
}

func (e *EmitCmd) format() (emit.Format, error) {
	if e.Format != "" {
		return emit.ParseFormat(e.Format)
	}
	if ext := filepath.Ext(e.Output); ext != "" {
		if f, err := emit.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return emit.FormatJS, nil
}
