package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want Anchor
	}{
		{"bottom-right", AnchorBottomRight},
		{"BOTTOM_LEFT", AnchorBottomLeft},
		{" top_right ", AnchorTopRight},
		{"Top-Left", AnchorTopLeft},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAnchor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAnchor("center")
	assert.Error(t, err)
}

func TestAnchor_String(t *testing.T) {
	for _, a := range Anchors() {
		parsed, err := ParseAnchor(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	assert.Equal(t, "unknown", Anchor(99).String())
}

func TestPlace(t *testing.T) {
	g := Geometry{ScreenWidth: 1920, ScreenHeight: 1080, Width: 300, Height: 100, Padding: 20}

	tests := []struct {
		anchor Anchor
		offset int
		x, y   int
	}{
		{AnchorTopLeft, 0, 20, 20},
		{AnchorTopLeft, 110, 20, 130},
		{AnchorTopRight, 0, 1600, 20},
		{AnchorBottomLeft, 0, 20, 960},
		{AnchorBottomRight, 110, 1600, 850},
	}
	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			x, y := Place(tt.anchor, g, tt.offset)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}
