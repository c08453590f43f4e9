// Package daemon implements watch mode: the configuration is re-checked
// whenever the file changes and on a fixed interval, with optional
// Prometheus metrics.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docsite/internal/check"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	shutdownTimeout = 10 * time.Second
)

// Options configures watch mode.
type Options struct {
	Check check.Options
	// Interval between scheduled checks; zero disables them.
	Interval time.Duration
	// Debounce delays a reload until writes to the config file settle.
	Debounce time.Duration
	// MetricsAddr serves /metrics when set.
	MetricsAddr string
}

// Daemon owns the watcher, the scheduler and the metrics server.
type Daemon struct {
	opts      Options
	checker   *check.Checker
	watcher   *ConfigWatcher
	scheduler *Scheduler
	registry  *prom.Registry
	server    *http.Server
	listener  net.Listener

	mu      sync.Mutex
	running bool
	// done is set once Run returns; the watcher and scheduler are single use.
	done bool
}

// New wires the daemon components without starting them.
func New(opts Options) (*Daemon, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	d := &Daemon{opts: opts}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if opts.MetricsAddr != "" {
		d.registry = prom.NewRegistry()
		d.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(d.registry)
	}
	d.checker = check.NewChecker(opts.Check, recorder)

	watcher, err := NewConfigWatcher(opts.Check.ConfigPath, opts.Debounce, func(ctx context.Context) {
		d.runCheck(ctx, metrics.TriggerConfig)
	})
	if err != nil {
		return nil, derrors.WatchError("failed to create config watcher", err)
	}
	d.watcher = watcher

	if opts.Interval > 0 {
		s, err := NewScheduler()
		if err != nil {
			_ = watcher.watcher.Close()
			return nil, derrors.WatchError("failed to create scheduler", err)
		}
		d.scheduler = s
	}
	return d, nil
}

// Checker exposes the checker, mainly for status reporting.
func (d *Daemon) Checker() *check.Checker { return d.checker }

// MetricsAddr returns the bound metrics address once Run has started, or "".
func (d *Daemon) MetricsAddr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// Run performs an initial check, starts watching and blocks until ctx is
// canceled. A failing initial check is logged, not returned: the operator
// fixes the file and the watcher picks it up. A Daemon runs once.
func (d *Daemon) Run(ctx context.Context) error {
	d.mu.Lock()
	switch {
	case d.running:
		d.mu.Unlock()
		return derrors.WatchError("daemon already running", nil)
	case d.done:
		d.mu.Unlock()
		return derrors.WatchError("daemon already stopped", nil)
	}
	d.running = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running, d.done = false, true
		d.mu.Unlock()
	}()
	// Stop closes the fsnotify watcher whether or not Start succeeded.
	defer d.watcher.Stop()
	if d.scheduler != nil {
		defer func() {
			if err := d.scheduler.Stop(); err != nil {
				slog.Error("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	if err := d.startMetrics(); err != nil {
		return err
	}
	defer d.stopMetrics()

	if err := d.watcher.Start(ctx); err != nil {
		return derrors.WatchError("failed to start config watcher", err)
	}

	d.runCheck(ctx, metrics.TriggerStartup)

	if d.scheduler != nil {
		if _, err := d.scheduler.ScheduleEvery("docsite-check", d.opts.Interval, func() {
			d.runCheck(ctx, metrics.TriggerSchedule)
		}); err != nil {
			return derrors.WatchError("failed to schedule periodic check", err)
		}
		d.scheduler.Start()
	}

	slog.Info("Watching configuration", logfields.Path(d.opts.Check.ConfigPath), slog.Duration("interval", d.opts.Interval))
	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping watch mode")
	return nil
}

func (d *Daemon) runCheck(ctx context.Context, trigger metrics.Trigger) {
	if ctx.Err() != nil {
		return
	}
	// failures are logged and recorded by the checker
	_, _ = d.checker.Run(ctx, trigger)
}

func (d *Daemon) startMetrics() error {
	if d.registry == nil {
		return nil
	}
	ln, err := net.Listen("tcp", d.opts.MetricsAddr)
	if err != nil {
		return derrors.WatchError("failed to listen for metrics", err).WithContext("addr", d.opts.MetricsAddr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(d.registry))
	mux.HandleFunc("/healthz", d.handleHealth)

	d.mu.Lock()
	d.listener = ln
	d.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	srv := d.server
	d.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", logfields.URL(fmt.Sprintf("http://%s/metrics", ln.Addr())))
	return nil
}

func (d *Daemon) stopMetrics() {
	d.mu.Lock()
	srv := d.server
	d.mu.Unlock()
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Failed to stop metrics server", logfields.Error(err))
	}
}

// handleHealth reports 200 when the last check did not fail.
func (d *Daemon) handleHealth(w http.ResponseWriter, _ *http.Request) {
	last := d.checker.Last()
	switch {
	case last == nil:
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("starting\n"))
	case last.Outcome == metrics.OutcomeFailed:
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("last check failed\n"))
	default:
		_, _ = w.Write([]byte(string(last.Outcome) + "\n"))
	}
}
