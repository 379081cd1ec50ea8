// Package winctx tracks the live windows of a process as a LIFO stack of
// weak references. A window that becomes unreachable elsewhere silently
// drops out of the stack without an explicit Remove.
//
// Each operation is atomic on its own. Compound sequences (Len followed by
// Pop, say) may observe interleaved changes from other goroutines.
package winctx

import (
	"errors"
	"log/slog"

	"github.com/jmylchreest/windex/internal/weakref"
)

// ErrReattachRejected is returned when a window that is no longer
// displayable is reattached to the stack.
var ErrReattachRejected = errors.New("window is not displayable")

// Displayable is implemented by anything that can sit on the stack.
type Displayable interface {
	IsDisplayable() bool
}

// Stack is a weak-referenced LIFO of windows. T is the window struct and P
// its pointer type.
type Stack[T any, P interface {
	*T
	Displayable
}] struct {
	entries *weakref.Collection[T]
	logger  *slog.Logger
}

// NewStack creates an empty stack.
func NewStack[T any, P interface {
	*T
	Displayable
}](logger *slog.Logger) *Stack[T, P] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stack[T, P]{
		entries: weakref.New[T](),
		logger:  logger,
	}
}

// Push adds w on top. Duplicates are not rejected.
func (s *Stack[T, P]) Push(w P) {
	if s.entries.PushFront((*T)(w)) {
		s.logger.Debug("window pushed", "depth", s.entries.Len())
	}
}

// Remove deletes the first occurrence of w scanning from the top.
func (s *Stack[T, P]) Remove(w P) bool {
	return s.entries.Remove((*T)(w))
}

// Pop removes and returns the top live window, or nil.
func (s *Stack[T, P]) Pop() P {
	return P(s.entries.PopFront())
}

// Peek returns the top live window without removing it, or nil.
func (s *Stack[T, P]) Peek() P {
	return P(s.entries.PeekAt(0))
}

// PeekLast returns the live window just below the top, or nil when fewer
// than two live windows remain.
func (s *Stack[T, P]) PeekLast() P {
	return P(s.entries.PeekAt(1))
}

// Reattach reinserts w at depth (0 = new top). A depth beyond the bottom
// places it at the bottom. Windows that are not displayable are rejected
// and false is returned.
func (s *Stack[T, P]) Reattach(w P, depth int) bool {
	if w == nil || !w.IsDisplayable() {
		return false
	}
	if depth < 0 {
		depth = 0
	}
	return s.entries.InsertAt(depth, (*T)(w))
}

// ReattachStack pushes back windows obtained from PopUntil, restoring the
// order they had before they were popped.
func (s *Stack[T, P]) ReattachStack(windows []P) {
	for i := len(windows) - 1; i >= 0; i-- {
		if windows[i] != nil {
			s.entries.PushFront((*T)(windows[i]))
		}
	}
}

// PopUntil pops live windows from the top until one satisfies match
// (inclusive). Windows that are gone or no longer displayable are discarded
// on the way, whether or not anything matches. The popped windows are
// returned top first, so the match is last. If nothing matches the
// displayable windows stay in place and nil is returned.
//
// match is called without the stack locked, so it may inspect the stack.
func (s *Stack[T, P]) PopUntil(match func(P) bool) []P {
	popped := s.entries.PopUntil(
		func(v *T) bool { return match(P(v)) },
		func(v *T) bool { return P(v).IsDisplayable() },
	)
	if popped == nil {
		return nil
	}
	out := make([]P, len(popped))
	for i, v := range popped {
		out[i] = P(v)
	}
	return out
}

// Contains reports whether w is live on the stack.
func (s *Stack[T, P]) Contains(w P) bool {
	return s.entries.Contains((*T)(w))
}

// Windows returns the live windows, top first.
func (s *Stack[T, P]) Windows() []P {
	live := s.entries.Snapshot()
	out := make([]P, len(live))
	for i, v := range live {
		out[i] = P(v)
	}
	return out
}

// Len returns the number of live windows.
func (s *Stack[T, P]) Len() int {
	return s.entries.Len()
}

// IsEmpty reports whether no live window remains.
func (s *Stack[T, P]) IsEmpty() bool {
	return s.entries.IsEmpty()
}

// Clear forgets every window.
func (s *Stack[T, P]) Clear() {
	s.entries.Clear()
}
