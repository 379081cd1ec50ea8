package window

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/windex/internal/lifecycle"
	"github.com/jmylchreest/windex/internal/notify"
	"github.com/jmylchreest/windex/internal/winctx"
)

// Stack is the context stack windows register with.
type Stack = winctx.Stack[Window, *Window]

// Scheduler is the notification scheduler notification windows register with.
type Scheduler = notify.Scheduler[Window, *Window]

// NewStack creates an empty context stack.
func NewStack(logger *slog.Logger) *Stack {
	return winctx.NewStack[Window](logger)
}

// NewScheduler creates a notification scheduler for windows.
func NewScheduler(cfg notify.Config, logger *slog.Logger, opts ...notify.Option) *Scheduler {
	return notify.NewScheduler[Window](cfg, logger, opts...)
}

// Hooks are the overridable lifecycle callbacks of a window. Every hook
// runs through the window's funnel. Nil hooks do nothing, except OnClose
// (minimizes to the tray when it is available) and OnTray (left click
// restores from the tray).
type Hooks struct {
	OnDrawing   func(w *Window) error
	OnLoad      func(w *Window, e Event) error
	OnClose     func(w *Window, e Event) error
	OnFocus     func(w *Window, e Event) error
	OnLostFocus func(w *Window, e Event) error
	OnTray      func(w *Window, e TrayEvent) error
}

// Option configures a Window.
type Option func(*Window)

// WithTitle sets the window title, also used as the tray tooltip.
func WithTitle(title string) Option {
	return func(w *Window) {
		w.title = title
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Window) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithContext sets the parent of the window's background context.
func WithContext(ctx context.Context) Option {
	return func(w *Window) {
		if ctx != nil {
			w.parent = ctx
		}
	}
}

// WithStack pushes the window onto s at construction and removes it on
// dispose.
func WithStack(s *Stack) Option {
	return func(w *Window) {
		w.stack = s
	}
}

// WithScheduler deregisters the window from s on dispose.
func WithScheduler(s *Scheduler) Option {
	return func(w *Window) {
		w.scheduler = s
	}
}

// WithErrorHandler installs the failure handler for lifecycle actions.
func WithErrorHandler(h lifecycle.ErrorHandler) Option {
	return func(w *Window) {
		w.onError = h
	}
}

// WithHooks sets the lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(w *Window) {
		w.hooks = h
	}
}

// WithController builds a controller for the window with f.
func WithController(f ControllerFactory) Option {
	return func(w *Window) {
		w.controllerFactory = f
	}
}

// WithTray attaches the system tray. Only activity windows use it.
func WithTray(t Tray, cfg TrayConfig) Option {
	return func(w *Window) {
		w.tray = t
		w.trayCfg = cfg
	}
}

// WithAnchor sets the corner a notification window stacks from.
func WithAnchor(a notify.Anchor) Option {
	return func(w *Window) {
		w.anchor = a
	}
}

// WithScreen sets the screen size and edge padding used to place
// notification windows. The window size comes from the surface.
func WithScreen(width, height, padding int) Option {
	return func(w *Window) {
		w.screen = notify.Geometry{ScreenWidth: width, ScreenHeight: height, Padding: padding}
	}
}

// WithMaxBranches bounds concurrent branch walks while indexing.
func WithMaxBranches(n int) Option {
	return func(w *Window) {
		w.maxBranches = n
	}
}
