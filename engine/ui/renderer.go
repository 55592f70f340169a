package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

// Canvas is the drawing surface widget drawables render to.
type Canvas interface {
	FillRect(r Rect, c colors.Color)
	// DrawText draws s with its top-left corner at pos. An empty clip
	// rectangle disables clipping.
	DrawText(f *text.Font, s string, pos, scale Vec2, c colors.Color, clip Rect)
}

type (
	DrawFunc    func(c Canvas)
	RefreshFunc func()
)

type drawable struct {
	widget  Widget
	draw    DrawFunc
	refresh RefreshFunc
}

// Renderer keeps the drawables of every widget attached to a viewport and
// draws them in registration order.
type Renderer struct {
	defaultFont *text.Font
	drawables   []drawable
}

// NewRenderer creates a renderer whose default font is handed to widgets
// as they register. A nil font selects text.Default.
func NewRenderer(defaultFont *text.Font) *Renderer {
	if defaultFont == nil {
		defaultFont = text.Default()
	}
	return &Renderer{defaultFont: defaultFont}
}

func (r *Renderer) DefaultFont() *text.Font { return r.defaultFont }
func (r *Renderer) Len() int                { return len(r.drawables) }

// Add registers a draw/refresh pair for w. refresh may be nil.
func (r *Renderer) Add(w Widget, draw DrawFunc, refresh RefreshFunc) {
	r.drawables = append(r.drawables, drawable{widget: w, draw: draw, refresh: refresh})
}

// Remove drops every pair registered for w and returns how many were
// removed. Removing an unknown widget is a no-op.
func (r *Renderer) Remove(w Widget) int {
	if w == nil {
		return 0
	}
	id := w.Node().ID()
	kept := r.drawables[:0]
	for _, d := range r.drawables {
		if d.widget.Node().ID() != id {
			kept = append(kept, d)
		}
	}
	n := len(r.drawables) - len(kept)
	for i := len(kept); i < len(r.drawables); i++ {
		r.drawables[i] = drawable{}
	}
	r.drawables = kept
	return n
}

// Registered counts the pairs registered for w.
func (r *Renderer) Registered(w Widget) int {
	if w == nil {
		return 0
	}
	id := w.Node().ID()
	n := 0
	for _, d := range r.drawables {
		if d.widget.Node().ID() == id {
			n++
		}
	}
	return n
}

// Refresh republishes every drawable snapshot.
func (r *Renderer) Refresh() {
	for _, d := range r.drawables {
		if d.refresh != nil {
			d.refresh()
		}
	}
}

func (r *Renderer) Draw(c Canvas) {
	for _, d := range r.drawables {
		if d.widget.Node().IsVisible() {
			d.draw(c)
		}
	}
}
