package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// ConfigWatcher monitors the configuration file and calls onChange after
// writes settle.
type ConfigWatcher struct {
	configPath   string
	onChange     func(ctx context.Context)
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	stopped      bool
	reloadChan   chan struct{}
	debounceTime time.Duration
	wg           sync.WaitGroup
}

// NewConfigWatcher creates a new configuration file watcher.
func NewConfigWatcher(configPath string, debounce time.Duration, onChange func(ctx context.Context)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Resolve absolute path for consistent watching
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	return &ConfigWatcher{
		configPath:   absPath,
		onChange:     onChange,
		watcher:      watcher,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start begins monitoring the configuration file.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	// Editors replace files on save; watching the directory survives that.
	configDir := filepath.Dir(cw.configPath)
	if err := cw.watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}

	slog.Info("Starting configuration watcher", logfields.Path(cw.configPath))

	cw.wg.Add(2)
	go cw.watchLoop(ctx)
	go cw.reloadLoop(ctx)

	return nil
}

// Stop stops the watcher and waits for its goroutines.
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	if cw.stopped {
		cw.mu.Unlock()
		return
	}
	cw.stopped = true
	close(cw.stopChan)
	if err := cw.watcher.Close(); err != nil {
		slog.Error("Error closing file watcher", logfields.Error(err))
	}
	cw.mu.Unlock()

	cw.wg.Wait()
}

func (cw *ConfigWatcher) watchLoop(ctx context.Context) {
	defer cw.wg.Done()
	configFile := filepath.Base(cw.configPath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != configFile {
				continue
			}

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Config file change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
				cw.triggerReload()
			case event.Has(fsnotify.Remove):
				slog.Warn("Config file removed", logfields.File(event.Name))
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop restarts the debounce timer on every change.
func (cw *ConfigWatcher) reloadLoop(ctx context.Context) {
	defer cw.wg.Done()
	timer := time.NewTimer(cw.debounceTime)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopChan:
			return
		case <-cw.reloadChan:
			timer.Reset(cw.debounceTime)
		case <-timer.C:
			slog.Info("Configuration changed", logfields.Path(cw.configPath))
			cw.onChange(ctx)
		}
	}
}

func (cw *ConfigWatcher) triggerReload() {
	select {
	case cw.reloadChan <- struct{}{}:
	default:
		// Reload already pending
	}
}
