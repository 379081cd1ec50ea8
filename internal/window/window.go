// Package window provides the generic window every toolkit view is built on.
//
// A Window owns one component indexer and one lifecycle funnel. It
// registers with a context stack on construction and deregisters on
// dispose. The variants of the toolkit (activity, dialog, fragment,
// transient popup, notification) are all this one struct, configured by
// Kind and options.
package window

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/windex/internal/dom"
	"github.com/jmylchreest/windex/internal/lifecycle"
	"github.com/jmylchreest/windex/internal/notify"
	"github.com/jmylchreest/windex/internal/winctx"
)

// Window is a live view with an indexed component tree.
type Window struct {
	id      string
	title   string
	kind    Kind
	surface Surface
	logger  *slog.Logger

	exec    *lifecycle.Executor
	onError lifecycle.ErrorHandler
	indexer *dom.Indexer

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	hooks             Hooks
	controller        Controller
	controllerFactory ControllerFactory

	stack     *Stack
	scheduler *Scheduler

	tray     Tray
	trayCfg  TrayConfig
	trayIcon atomic.Bool

	anchor      notify.Anchor
	screen      notify.Geometry
	maxBranches int

	client sync.Map

	initialized atomic.Bool
	disposed    atomic.Bool
}

// New creates a window of kind k drawn by surface and pushes it onto the
// configured stack.
func New(k Kind, surface Surface, opts ...Option) (*Window, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}

	w := &Window{
		id:      newID(),
		kind:    k,
		surface: surface,
		logger:  slog.Default(),
		parent:  context.Background(),
		anchor:  notify.AnchorBottomRight,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.title == "" {
		w.title = k.String()
	}

	w.logger = w.logger.With("window_id", w.id, "kind", k.String())
	w.ctx, w.cancel = context.WithCancel(w.parent)
	w.exec = lifecycle.NewExecutor(w.String(), w.onError, w.logger)
	w.indexer = dom.NewIndexer(w.ctx, surface.Root(),
		dom.WithLogger(w.logger),
		dom.WithMaxBranches(w.maxBranches),
	)

	if w.controllerFactory != nil {
		w.controller = w.controllerFactory(w)
		if w.controller == nil {
			w.cancel()
			return nil, fmt.Errorf("failed to create controller for %s", w)
		}
	}

	if w.stack != nil {
		w.stack.Push(w)
	}

	w.logger.Debug("window created", "title", w.title)
	return w, nil
}

func newID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return ""
	}
	return id.String()
}

// ID returns the window's ULID.
func (w *Window) ID() string { return w.id }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// Kind returns the window kind.
func (w *Window) Kind() Kind { return w.kind }

// Surface returns the toolkit surface.
func (w *Window) Surface() Surface { return w.surface }

// Executor returns the window's lifecycle funnel.
func (w *Window) Executor() *lifecycle.Executor { return w.exec }

// Context is cancelled when the window is disposed.
func (w *Window) Context() context.Context { return w.ctx }

// String returns a short description for logs.
func (w *Window) String() string {
	return w.kind.String() + ":" + w.title
}

// Init draws the window, starts indexing its component tree and shows it.
// Only the first call has any effect.
func (w *Window) Init() error {
	if w.disposed.Load() {
		return ErrDisposed
	}
	return w.exec.ExecuteNamed("init", func() error {
		if !w.initialized.CompareAndSwap(false, true) {
			return nil
		}

		w.setupTray()
		if w.hooks.OnDrawing != nil {
			if err := w.hooks.OnDrawing(w); err != nil {
				return err
			}
		}
		if err := w.indexer.Load(); err != nil {
			return err
		}
		if err := w.surface.Show(); err != nil {
			return fmt.Errorf("failed to show window: %w", err)
		}
		if w.controller != nil {
			if err := w.controller.OnInit(w); err != nil {
				return err
			}
		}

		w.logger.Debug("window initialized")
		return nil
	})
}

// IsInitialized reports whether Init has run.
func (w *Window) IsInitialized() bool {
	return w.initialized.Load()
}

// Dispose stops background work, removes the tray icon, deregisters the
// window and closes the surface. Later calls do nothing.
func (w *Window) Dispose() error {
	return w.exec.ExecuteNamed("dispose", func() error {
		if !w.disposed.CompareAndSwap(false, true) {
			return nil
		}

		w.cancel()
		w.indexer.Close()
		w.removeTrayIcon()
		if w.stack != nil {
			w.stack.Remove(w)
		}
		if w.scheduler != nil {
			w.scheduler.Remove(w)
		}

		w.logger.Debug("window disposed")
		return w.surface.Close()
	})
}

// IsDisposed reports whether Dispose has run.
func (w *Window) IsDisposed() bool {
	return w.disposed.Load()
}

// IsDisplayable reports whether the window can still be shown.
func (w *Window) IsDisplayable() bool {
	return !w.disposed.Load() && w.surface.IsDisplayable()
}

// IsVisible reports whether the surface is currently shown.
func (w *Window) IsVisible() bool {
	return w.surface.IsVisible()
}

// Show makes the surface visible.
func (w *Window) Show() error {
	if w.disposed.Load() {
		return ErrDisposed
	}
	return w.surface.Show()
}

// Hide hides the surface.
func (w *Window) Hide() {
	w.surface.Hide()
}

// HandleEvent runs the hook for a toolkit event through the funnel, then
// the controller's callback if there is one. Events before Init or after
// Dispose are ignored.
func (w *Window) HandleEvent(e Event) error {
	if !w.initialized.Load() || w.disposed.Load() {
		return nil
	}
	return w.exec.ExecuteNamed(e.Kind.Action(), func() error {
		switch e.Kind {
		case EventOpened:
			if err := callHook(w.hooks.OnLoad, w, e); err != nil {
				return err
			}
			if w.controller != nil {
				return w.controller.OnLoad(w)
			}
		case EventClosing:
			if w.hooks.OnClose != nil {
				if err := w.hooks.OnClose(w, e); err != nil {
					return err
				}
			} else if w.TrayAvailable() {
				w.MinimizeToTray()
			}
			if w.controller != nil {
				return w.controller.OnClose(w)
			}
		case EventFocusGained:
			return callHook(w.hooks.OnFocus, w, e)
		case EventFocusLost:
			if err := callHook(w.hooks.OnLostFocus, w, e); err != nil {
				return err
			}
			if w.controller != nil {
				return w.controller.OnLostFocus(w)
			}
		}
		return nil
	})
}

func callHook(h func(*Window, Event) error, w *Window, e Event) error {
	if h == nil {
		return nil
	}
	return h(w, e)
}

// ReattachToContext puts a window back onto its stack at depth
// (0 = top). A window that is no longer displayable is rejected.
func (w *Window) ReattachToContext(depth int) error {
	if w.stack == nil {
		return ErrNoStack
	}
	if !w.stack.Reattach(w, depth) {
		return fmt.Errorf("failed to reattach %s: %w", w, winctx.ErrReattachRejected)
	}
	return nil
}

// Go runs fn on a new goroutine bound to the window's context, which is
// cancelled on dispose. The returned function waits for fn.
func (w *Window) Go(fn func(ctx context.Context) error) (wait func() error) {
	var g errgroup.Group
	g.Go(func() error {
		return fn(w.ctx)
	})
	return g.Wait
}
