package window

import "github.com/jmylchreest/windex/internal/dom"

// Surface is the toolkit side of a window: the widget tree and the native
// window that draws it.
type Surface interface {
	// Root returns the top of the component tree to index.
	Root() dom.Node
	Show() error
	Hide()
	// Close releases the native window. After Close, IsDisplayable is false.
	Close() error
	IsDisplayable() bool
	IsVisible() bool
	Size() (width, height int)
	SetPosition(x, y int)
}
