// Package lifecycle funnels window lifecycle callbacks through a single
// error-handling boundary.
//
// Every callback a window receives (init, load, close, focus, tray
// interaction) runs through an Executor. A failure, whether returned or
// raised as a panic, is delivered to exactly one ErrorHandler. When no
// handler is registered the failure is re-raised to the caller: returned
// errors pass through unchanged, recovered panics are wrapped in an
// UnhandledError that names the action.
package lifecycle

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
)

// AnonymousAction labels actions executed without an explicit name.
const AnonymousAction = "anonymous"

// ErrorHandler receives the failure of a lifecycle action. Returning nil
// marks the failure as handled; returning an error re-raises it.
type ErrorHandler func(action string, err error) error

// DefaultErrorHandler re-raises err: recovered panics are wrapped in an
// UnhandledError, every other error is returned unchanged.
func DefaultErrorHandler(action string, err error) error {
	return reraise("", action, err)
}

// Executor runs lifecycle actions on the calling goroutine.
type Executor struct {
	owner   string
	handler atomic.Pointer[ErrorHandler]
	logger  *slog.Logger
}

// NewExecutor creates an executor for owner. A nil handler selects the
// re-raising default.
func NewExecutor(owner string, handler ErrorHandler, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Executor{owner: owner, logger: logger}
	e.SetHandler(handler)
	return e
}

// SetHandler replaces the error handler. Nil restores the default.
func (e *Executor) SetHandler(handler ErrorHandler) {
	if handler == nil {
		e.handler.Store(nil)
		return
	}
	e.handler.Store(&handler)
}

// Owner returns the label of the window that owns the executor.
func (e *Executor) Owner() string {
	return e.owner
}

// Execute runs action under the anonymous label.
func (e *Executor) Execute(action func() error) error {
	return e.ExecuteNamed(AnonymousAction, action)
}

// ExecuteNamed runs action and routes any failure to the handler once.
func (e *Executor) ExecuteNamed(name string, action func() error) error {
	err := protect(action)
	if err == nil {
		return nil
	}
	return e.fail(name, err)
}

// Call runs fn through e and returns its value. On a handled failure it
// returns the zero value of T and a nil error.
func Call[T any](e *Executor, name string, fn func() (T, error)) (T, error) {
	var out T
	err := e.ExecuteNamed(name, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

func (e *Executor) fail(name string, err error) error {
	e.logger.Debug("lifecycle action failed",
		"owner", e.owner,
		"action", name,
		"error", err,
	)

	h := e.handler.Load()
	if h == nil {
		return reraise(e.owner, name, err)
	}
	return (*h)(name, err)
}

// protect calls action and converts a panic into a *PanicError.
func protect(action func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return action()
}

func reraise(owner, action string, err error) error {
	if _, ok := err.(*PanicError); ok {
		return &UnhandledError{Action: action, Owner: owner, Cause: err}
	}
	return err
}

// PanicError is a panic recovered from a lifecycle action.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// UnhandledError is raised when a lifecycle action panicked and no handler
// consumed the failure.
type UnhandledError struct {
	Action string
	Owner  string
	Cause  error
}

func (e *UnhandledError) Error() string {
	msg := "unhandled error in action: " + e.Action
	if e.Owner != "" {
		msg += " (" + e.Owner + ")"
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *UnhandledError) Unwrap() error {
	return e.Cause
}
