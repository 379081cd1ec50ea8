package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/windex/internal/config"
)

// ConfigWatcher watches the config file for changes and validates new configs.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	path    string
	watcher *fsnotify.Watcher

	// Last config that passed validation
	current *config.Config

	onReload func(cfg *config.Config)
	onError  func(err error)

	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewConfigWatcher creates a watcher for the config file at path.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &ConfigWatcher{
		logger:  logger,
		path:    path,
		watcher: watcher,
	}, nil
}

// SetReloadCallback sets the callback to invoke when a changed config is valid.
func (w *ConfigWatcher) SetReloadCallback(callback func(cfg *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = callback
}

// SetErrorCallback sets the callback to invoke when a changed config is rejected.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = callback
}

// Start begins watching. The directory is watched rather than the file so
// atomic replace-by-rename is seen.
func (w *ConfigWatcher) Start(ctx context.Context, initial *config.Config) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.running = true
	w.current = initial
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.watch(ctx)

	w.logger.Debug("config watcher started", "path", w.path)
	return nil
}

// Stop stops watching and releases the underlying watcher.
func (w *ConfigWatcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	w.logger.Debug("config watcher stopped")
	return w.watcher.Close()
}

// Current returns the last valid configuration.
func (w *ConfigWatcher) Current() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *ConfigWatcher) watch(ctx context.Context) {
	defer close(w.doneCh)
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		}
	}
}

// reload loads and validates the file, keeping the previous config on failure.
func (w *ConfigWatcher) reload() {
	w.mu.RLock()
	reloadCallback := w.onReload
	errorCallback := w.onError
	w.mu.RUnlock()

	w.logger.Debug("config file changed", "path", w.path)

	cfg, err := config.LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "error", err)
		if errorCallback != nil {
			errorCallback(err)
		}
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.path)
	if reloadCallback != nil {
		reloadCallback(cfg)
	}
}
