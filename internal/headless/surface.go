// Package headless implements window surfaces and a system tray in memory,
// for the CLI and for tests.
package headless

import (
	"errors"
	"sync"

	"github.com/jmylchreest/windex/internal/dom"
)

// ErrClosed is returned when showing a closed surface.
var ErrClosed = errors.New("surface closed")

// Surface is an in-memory window.
type Surface struct {
	root dom.Node

	mu      sync.RWMutex
	width   int
	height  int
	x, y    int
	visible bool
	closed  bool
	shows   int
}

// NewSurface creates a hidden surface of the given size drawing root.
func NewSurface(root dom.Node, width, height int) *Surface {
	return &Surface{root: root, width: width, height: height}
}

// Root implements window.Surface.
func (s *Surface) Root() dom.Node {
	return s.root
}

// Show implements window.Surface.
func (s *Surface) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.visible = true
	s.shows++
	return nil
}

// Hide implements window.Surface.
func (s *Surface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
}

// Close implements window.Surface. Closing twice is a no-op.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.visible = false
	return nil
}

// IsDisplayable implements window.Surface.
func (s *Surface) IsDisplayable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

// IsVisible implements window.Surface.
func (s *Surface) IsVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visible
}

// Size implements window.Surface.
func (s *Surface) Size() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// SetSize resizes the surface.
func (s *Surface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// SetPosition implements window.Surface.
func (s *Surface) SetPosition(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
}

// Position returns the last position set.
func (s *Surface) Position() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.x, s.y
}

// Shows returns how many times Show succeeded.
func (s *Surface) Shows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shows
}
