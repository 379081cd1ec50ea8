package window

import "errors"

var (
	// ErrDisposed is returned by operations on a disposed window.
	ErrDisposed = errors.New("window disposed")
	// ErrNoSurface is returned by New without a surface.
	ErrNoSurface = errors.New("window requires a surface")
	// ErrNoController is returned by SendEvent on a window without a controller.
	ErrNoController = errors.New("window has no controller")
	// ErrNoStack is returned when a window is not attached to a context stack.
	ErrNoStack = errors.New("window has no context stack")
)
