package ui

import (
	"sync/atomic"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

// DrawableRect is a filled rectangle.
type DrawableRect struct {
	Bounds Rect
	Color  colors.Color
}

func (d DrawableRect) Draw(c Canvas) {
	if d.Bounds.Empty() || !d.Color.Visible() {
		return
	}
	c.FillRect(d.Bounds, d.Color)
}

// DrawableText is a string placed relative to an anchor point. Align picks
// which point of the text box sits on Anchor.
type DrawableText struct {
	Text   string
	Font   *text.Font
	Anchor Vec2
	Align  text.Align
	Scale  Vec2
	Color  colors.Color
	Clip   Rect
}

func (d DrawableText) Draw(c Canvas) {
	if d.Text == "" || d.Font == nil || !d.Color.Visible() {
		return
	}
	w, h := d.Font.MeasureScaled(d.Text, d.Scale.X, d.Scale.Y)
	ox, oy := text.Origin(d.Align, w, h)
	c.DrawText(d.Font, d.Text, Vec2{X: d.Anchor.X + ox, Y: d.Anchor.Y + oy}, d.Scale, d.Color, d.Clip)
}

// place anchors the text inside bounds according to its alignment.
func (d *DrawableText) place(bounds Rect) {
	x, y := text.Anchor(d.Align, bounds.X, bounds.Y, bounds.W, bounds.H)
	d.Anchor = Vec2{X: x, Y: y}
	d.Clip = bounds
}

// resolved returns a copy with the font fallback applied.
func (d DrawableText) resolved(fallback *text.Font) DrawableText {
	if d.Font == nil {
		d.Font = fallback
	}
	return d
}

var defaultTextScale = Vec2{X: 1, Y: 1}

// snapshot holds the immutable draw state published by RefreshDrawables.
// Draw callbacks only ever read the latest published value.
type snapshot[T any] struct {
	p atomic.Pointer[T]
}

func (s *snapshot[T]) publish(v T) { s.p.Store(&v) }

func (s *snapshot[T]) load() (T, bool) {
	p := s.p.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
