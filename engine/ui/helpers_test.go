package ui_test

import (
	"testing"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

type drawOp struct {
	Op    string
	Rect  ui.Rect
	Text  string
	Color colors.Color
}

type recordingCanvas struct {
	ops   []drawOp
	fonts []*text.Font
}

func (c *recordingCanvas) FillRect(r ui.Rect, col colors.Color) {
	c.ops = append(c.ops, drawOp{Op: "rect", Rect: r, Color: col})
}

func (c *recordingCanvas) DrawText(f *text.Font, s string, pos, _ ui.Vec2, col colors.Color, _ ui.Rect) {
	c.ops = append(c.ops, drawOp{Op: "text", Rect: ui.Rect{X: pos.X, Y: pos.Y}, Text: s, Color: col})
	c.fonts = append(c.fonts, f)
}

func must[T any](v T, err error) func(*testing.T) T {
	return func(t *testing.T) T {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
}

func newViewport() *ui.Viewport {
	return ui.NewViewport("root", ui.Rect{W: 800, H: 600}, nil)
}
