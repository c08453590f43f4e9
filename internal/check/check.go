// Package check runs the configuration pipeline shared by the CLI and watch
// mode: load, resolve sidebar documents and optionally emit.
package check

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/docs"
	"git.home.luguber.info/inful/docsite/internal/emit"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/observability"
)

// Options configures a check.
type Options struct {
	ConfigPath string
	// DocsRoot overrides the docs root. When empty the root is derived from
	// the loaded configuration on every run, see DefaultDocsRoot.
	DocsRoot string
	// Strict turns missing documents into a validation failure.
	Strict bool
	// EmitTo writes the configuration after a successful check when set.
	EmitTo     string
	EmitFormat emit.Format
}

// Result describes one completed check.
type Result struct {
	RunID    string
	Config   *config.SiteConfig
	Site     *docs.Site
	Missing  []docs.Page
	Written  bool
	Outcome  metrics.Outcome
	Duration time.Duration
}

// Checker runs checks one at a time.
type Checker struct {
	opts     Options
	recorder metrics.Recorder

	mu   sync.Mutex
	last *Result
}

// NewChecker returns a Checker. A nil recorder disables metrics.
func NewChecker(opts Options, recorder metrics.Recorder) *Checker {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if opts.EmitTo != "" && opts.EmitFormat == "" {
		opts.EmitFormat = emit.FormatJS
	}
	return &Checker{opts: opts, recorder: recorder}
}

// Last returns the most recent result, or nil before the first check.
func (c *Checker) Last() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Run performs a check. Concurrent calls wait for the running check.
func (c *Checker) Run(ctx context.Context, trigger metrics.Trigger) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := &Result{RunID: uuid.NewString()}
	ctx = observability.WithRunID(ctx, res.RunID)
	ctx = observability.WithConfigPath(ctx, c.opts.ConfigPath)
	c.recorder.IncCheckTrigger(trigger)
	observability.DebugContext(ctx, "Starting check", slog.String("trigger", string(trigger)))

	start := time.Now()
	err := c.run(ctx, res)
	res.Duration = time.Since(start)
	c.recorder.ObserveCheckDuration(res.Duration)

	switch {
	case err != nil:
		res.Outcome = metrics.OutcomeFailed
	case len(res.Missing) > 0:
		res.Outcome = metrics.OutcomeWarning
	default:
		res.Outcome = metrics.OutcomeSuccess
	}
	c.recorder.IncCheckOutcome(res.Outcome)
	c.last = res

	if err != nil {
		observability.ErrorContext(ctx, "Check failed",
			logfields.DurationMS(float64(res.Duration.Milliseconds())), logfields.Error(err))
		return res, err
	}
	observability.InfoContext(ctx, "Check completed",
		slog.String("outcome", string(res.Outcome)),
		logfields.Count(len(res.Missing)),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, nil
}

func (c *Checker) run(ctx context.Context, res *Result) error {
	cfg, err := stage(ctx, c.recorder, "load", func(context.Context) (*config.SiteConfig, error) {
		return config.Load(c.opts.ConfigPath)
	})
	if err != nil {
		return err
	}
	res.Config = cfg

	if docsRoot, ok := c.docsRoot(ctx, cfg); ok {
		site, err := stage(ctx, c.recorder, "resolve", func(ctx context.Context) (*docs.Site, error) {
			return docs.Resolve(ctx, cfg, docsRoot)
		})
		if err != nil {
			return err
		}
		res.Site = site
		res.Missing = site.Missing()
		c.recorder.SetMissingDocuments(len(res.Missing))
		for _, p := range res.Missing {
			observability.WarnContext(ctx, "Missing document", logfields.Document(p.Ref), logfields.File(p.File))
		}
		if c.opts.Strict && len(res.Missing) > 0 {
			return derrors.MissingDocuments(len(res.Missing))
		}
	}

	if c.opts.EmitTo != "" {
		written, err := stage(ctx, c.recorder, "emit", func(context.Context) (bool, error) {
			out, err := emit.Render(cfg, c.opts.EmitFormat)
			if err != nil {
				return false, err
			}
			return emit.WriteFile(c.opts.EmitTo, out)
		})
		if err != nil {
			return err
		}
		res.Written = written
		c.recorder.IncEmitWrite(written)
		if written {
			observability.InfoContext(ctx, "Wrote configuration", logfields.Path(c.opts.EmitTo), logfields.Format(string(c.opts.EmitFormat)))
		}
	}
	return nil
}

// docsRoot picks the root to resolve documents against. An explicit root, or
// strict mode, always resolves so a missing directory fails the check; a
// derived root that does not exist only skips resolution.
func (c *Checker) docsRoot(ctx context.Context, cfg *config.SiteConfig) (string, bool) {
	if c.opts.DocsRoot != "" {
		return c.opts.DocsRoot, true
	}
	root := DefaultDocsRoot(c.opts.ConfigPath, cfg)
	if c.opts.Strict {
		return root, true
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		observability.DebugContext(ctx, "No docs root, skipping document resolution", logfields.Path(root))
		return "", false
	}
	return root, true
}

// DefaultDocsRoot is docsDir relative to the directory holding the
// configuration file.
func DefaultDocsRoot(configPath string, cfg *config.SiteConfig) string {
	return filepath.Join(filepath.Dir(configPath), filepath.FromSlash(cfg.ThemeConfig.DocsDir))
}

func stage[T any](ctx context.Context, rec metrics.Recorder, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx = observability.WithStage(ctx, name)
	start := time.Now()
	v, err := fn(ctx)
	rec.ObserveStageDuration(name, time.Since(start))
	return v, err
}
