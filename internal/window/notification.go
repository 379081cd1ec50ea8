package window

import "github.com/jmylchreest/windex/internal/notify"

// Anchor returns the corner the window stacks from.
func (w *Window) Anchor() notify.Anchor {
	return w.anchor
}

// Height returns the surface height.
func (w *Window) Height() int {
	_, h := w.surface.Size()
	return h
}

// PositionAt places the window offset pixels from its anchor corner along
// the stacking axis.
func (w *Window) PositionAt(offset int) {
	width, height := w.surface.Size()
	g := w.screen
	g.Width, g.Height = width, height
	x, y := notify.Place(w.anchor, g, offset)
	w.surface.SetPosition(x, y)
}
