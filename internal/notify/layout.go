package notify

import (
	"fmt"
	"strings"
)

// Anchor is the screen corner a notification stacks from.
type Anchor int

const (
	AnchorBottomRight Anchor = iota
	AnchorBottomLeft
	AnchorTopRight
	AnchorTopLeft
)

// String returns the string representation of Anchor.
func (a Anchor) String() string {
	switch a {
	case AnchorBottomRight:
		return "bottom-right"
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorTopRight:
		return "top-right"
	case AnchorTopLeft:
		return "top-left"
	default:
		return "unknown"
	}
}

// ParseAnchor accepts "bottom-right", "bottom_right" or "BOTTOM_RIGHT" style
// names.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for _, a := range Anchors() {
		if a.String() == norm {
			return a, nil
		}
	}
	return AnchorBottomRight, fmt.Errorf("invalid anchor: %q", s)
}

// Anchors returns every valid anchor.
func Anchors() []Anchor {
	return []Anchor{AnchorBottomRight, AnchorBottomLeft, AnchorTopRight, AnchorTopLeft}
}

// IsBottom reports whether stacks grow upward from the bottom edge.
func (a Anchor) IsBottom() bool {
	return a == AnchorBottomRight || a == AnchorBottomLeft
}

// IsRight reports whether the anchor sits on the right edge.
func (a Anchor) IsRight() bool {
	return a == AnchorBottomRight || a == AnchorTopRight
}

// Geometry is the screen and window size used to place a notification.
type Geometry struct {
	ScreenWidth  int
	ScreenHeight int
	Width        int
	Height       int
	Padding      int
}

// Place converts a stack offset into absolute coordinates for a window
// anchored at a. Top anchors grow downward and bottom anchors grow upward.
func Place(a Anchor, g Geometry, offset int) (x, y int) {
	x = g.Padding
	if a.IsRight() {
		x = g.ScreenWidth - g.Width - g.Padding
	}

	if a.IsBottom() {
		y = g.ScreenHeight - g.Height - g.Padding - offset
	} else {
		y = g.Padding + offset
	}
	return x, y
}
