package headless

import (
	"errors"
	"slices"
	"sync"
)

// ErrTrayFull is returned by Add when the tray rejects icons.
var ErrTrayFull = errors.New("tray rejected icon")

// Tray is an in-memory system tray.
type Tray struct {
	mu        sync.Mutex
	supported bool
	reject    bool
	icons     []string
	tooltips  map[string]string
}

// NewTray creates a tray. An unsupported tray is never used by windows.
func NewTray(supported bool) *Tray {
	return &Tray{supported: supported, tooltips: make(map[string]string)}
}

// Supported implements window.Tray.
func (t *Tray) Supported() bool {
	return t.supported
}

// Reject makes subsequent Add calls fail.
func (t *Tray) Reject(reject bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reject = reject
}

// Add implements window.Tray.
func (t *Tray) Add(icon, tooltip string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.reject {
		return ErrTrayFull
	}
	if !slices.Contains(t.icons, icon) {
		t.icons = append(t.icons, icon)
	}
	t.tooltips[icon] = tooltip
	return nil
}

// Remove implements window.Tray.
func (t *Tray) Remove(icon string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := slices.Index(t.icons, icon); i >= 0 {
		t.icons = slices.Delete(t.icons, i, i+1)
	}
	delete(t.tooltips, icon)
}

// Icons returns the icons currently in the tray.
func (t *Tray) Icons() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.icons)
}

// Tooltip returns the tooltip of icon.
func (t *Tray) Tooltip(icon string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tooltips[icon]
}
