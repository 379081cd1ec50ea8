// Package app holds the process-wide state shared by every window: the
// context stack, the notification scheduler and the active configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/windex/internal/config"
	"github.com/jmylchreest/windex/internal/lifecycle"
	"github.com/jmylchreest/windex/internal/notify"
	"github.com/jmylchreest/windex/internal/window"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTray gives activity windows access to the system tray.
func WithTray(t window.Tray) Option {
	return func(r *Runtime) {
		r.tray = t
	}
}

// WithErrorHandler installs the lifecycle failure handler of every window.
func WithErrorHandler(h lifecycle.ErrorHandler) Option {
	return func(r *Runtime) {
		r.onError = h
	}
}

// WithDispatcher runs scheduler layouts through d, typically the toolkit's
// UI thread.
func WithDispatcher(d notify.Dispatcher) Option {
	return func(r *Runtime) {
		r.dispatch = d
	}
}

// WithConfigListener calls fn after every configuration change applied
// through ApplyConfig or a watched file.
func WithConfigListener(fn func(cfg *config.Config)) Option {
	return func(r *Runtime) {
		r.onConfig = fn
	}
}

// Runtime owns the context stack and notification scheduler.
type Runtime struct {
	mu     sync.RWMutex
	cfg    *config.Config
	logger *slog.Logger

	tray     window.Tray
	onError  lifecycle.ErrorHandler
	dispatch notify.Dispatcher
	onConfig func(cfg *config.Config)

	stack     *window.Stack
	scheduler *window.Scheduler

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// New creates a runtime. A nil cfg selects the defaults. Windows created
// through the runtime are bound to ctx.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Runtime{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	var schedOpts []notify.Option
	if r.dispatch != nil {
		schedOpts = append(schedOpts, notify.WithDispatcher(r.dispatch))
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.stack = window.NewStack(r.logger)
	r.scheduler = window.NewScheduler(cfg.Scheduler(), r.logger, schedOpts...)
	return r, nil
}

// Start starts the notification scheduler.
func (r *Runtime) Start() error {
	if err := r.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	r.logger.Info("runtime started", "anchor", r.Config().Notifications.Anchor)
	return nil
}

// Shutdown stops accepting notifications, waits until the visible ones are
// gone and then closes the runtime. If ctx ends first, the runtime is closed
// anyway and ctx's error returned.
func (r *Runtime) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	r.scheduler.Shutdown(func() { close(done) })

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	r.Close()
	return err
}

// Close disposes every window on the stack and stops the scheduler.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() {
		for _, w := range r.stack.Windows() {
			if err := w.Dispose(); err != nil {
				r.logger.Warn("failed to dispose window", "window_id", w.ID(), "error", err)
			}
		}
		r.scheduler.Stop()
		r.cancel()
		r.logger.Info("runtime stopped")
	})
}

// Config returns the active configuration.
func (r *Runtime) Config() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// ApplyConfig validates cfg and makes it active. Stacking changes reach
// the scheduler immediately; screen and tray settings apply to windows
// created afterwards.
func (r *Runtime) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()

	r.scheduler.UpdateConfig(cfg.Scheduler())
	r.logger.Info("config applied",
		"gap", cfg.Notifications.Gap,
		"debounce", cfg.Notifications.Debounce.Duration(),
	)
	if r.onConfig != nil {
		r.onConfig(cfg)
	}
	return nil
}

// Stack returns the shared context stack.
func (r *Runtime) Stack() *window.Stack {
	return r.stack
}

// Scheduler returns the notification scheduler.
func (r *Runtime) Scheduler() *window.Scheduler {
	return r.scheduler
}

// NewWindow creates a window of kind k wired to the runtime. opts are
// applied after the runtime's own and may override them.
func (r *Runtime) NewWindow(k window.Kind, s window.Surface, opts ...window.Option) (*window.Window, error) {
	return window.New(k, s, append(r.windowOptions(k), opts...)...)
}

// ShowNotification creates a notification window and shows it for the
// configured default duration.
func (r *Runtime) ShowNotification(s window.Surface, opts ...window.Option) (*window.Window, error) {
	return r.ShowNotificationFor(s, r.Config().Notifications.DefaultDuration.Duration(), opts...)
}

// ShowNotificationFor creates a notification window and shows it for d.
// Zero keeps it until it is disposed.
func (r *Runtime) ShowNotificationFor(s window.Surface, d time.Duration, opts ...window.Option) (*window.Window, error) {
	w, err := r.NewWindow(window.KindNotification, s, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.scheduler.StartNotification(w, d); err != nil {
		_ = w.Dispose()
		return nil, err
	}
	return w, nil
}

// WatchConfig reloads the configuration whenever path changes. Invalid
// files are logged and ignored. Stop the returned watcher when done.
func (r *Runtime) WatchConfig(path string) (*ConfigWatcher, error) {
	cw, err := NewConfigWatcher(path, r.logger)
	if err != nil {
		return nil, err
	}
	cw.SetReloadCallback(func(cfg *config.Config) {
		if err := r.ApplyConfig(cfg); err != nil {
			r.logger.Warn("config reload rejected", "error", err)
		}
	})
	if err := cw.Start(r.ctx, r.Config()); err != nil {
		return nil, err
	}
	return cw, nil
}

func (r *Runtime) windowOptions(k window.Kind) []window.Option {
	cfg := r.Config()
	opts := []window.Option{
		window.WithLogger(r.logger),
		window.WithContext(r.ctx),
		window.WithStack(r.stack),
		window.WithErrorHandler(r.onError),
		window.WithScreen(cfg.Screen.Width, cfg.Screen.Height, cfg.Notifications.Padding),
		window.WithMaxBranches(cfg.Indexer.MaxBranches),
	}
	if k.Trayable() && r.tray != nil {
		opts = append(opts, window.WithTray(r.tray, window.TrayConfig{
			Enabled:         cfg.Tray.Enabled,
			RemoveOnRestore: cfg.Tray.RemoveOnRestore,
			AlwaysVisible:   cfg.Tray.AlwaysVisible,
			Icon:            cfg.Tray.Icon,
		}))
	}
	if k.Anchored() {
		opts = append(opts,
			window.WithAnchor(cfg.Anchor()),
			window.WithScheduler(r.scheduler),
		)
	}
	return opts
}
