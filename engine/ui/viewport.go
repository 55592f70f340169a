package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/text"
)

// Viewport is the root of a widget tree. It owns the Renderer every
// descendant registers its drawables with and routes pointer input.
type Viewport struct {
	Base
	backColor colors.Color
	back      DrawableRect
	drawn     snapshot[DrawableRect]
	cursor    Vec2
}

// NewViewport creates a root widget covering rect. A nil font selects
// text.Default for widgets without their own.
func NewViewport(name string, rect Rect, defaultFont *text.Font) *Viewport {
	v := &Viewport{backColor: colors.Transparent}
	// A nil parent never fails.
	_ = v.init(v, nil, name, rect)
	v.geometryChanged()
	v.attach(NewRenderer(defaultFont))
	return v
}

func (v *Viewport) Kind() Kind                  { return KindViewport }
func (v *Viewport) BackColor() colors.Color     { return v.backColor }
func (v *Viewport) Cursor() Vec2                { return v.cursor }
func (v *Viewport) SetBackColor(c colors.Color) { v.backColor = c; v.geometryChanged() }

// Contains reports whether w is a live widget of this tree.
func (v *Viewport) Contains(w Widget) bool {
	if w == nil || w.Node().disposed {
		return false
	}
	return w.Node().Root() == Widget(v)
}

// HandleEvent feeds a window event into the tree. Pointer events go to
// every enabled widget, parents first; resizes resize the viewport. It
// reports whether a widget was under the pointer.
func (v *Viewport) HandleEvent(ev core.Event) bool {
	if v.disposed {
		return false
	}
	switch e := ev.(type) {
	case core.EventResize:
		v.SetDimensions(float32(e.W), float32(e.H))
		return false
	case core.EventMouseMove:
		v.cursor = Vec2{X: float32(e.X), Y: float32(e.Y)}
		me := MouseEvent{X: v.cursor.X, Y: v.cursor.Y}
		return v.dispatch(func(b *Base) { b.handleMouseMove(me) })
	case core.EventMouseButton:
		v.cursor = Vec2{X: float32(e.X), Y: float32(e.Y)}
		me := MouseEvent{X: v.cursor.X, Y: v.cursor.Y, Button: e.Button}
		return v.dispatch(func(b *Base) { b.handleMouseButton(me, e.Down) })
	}
	return false
}

func (v *Viewport) dispatch(fn func(b *Base)) bool {
	hovered := false
	for _, c := range v.Children() {
		walk(c, func(w Widget) {
			b := w.Node()
			if b.disposed {
				return
			}
			fn(b)
			hovered = hovered || b.mouseIn
		})
	}
	return hovered
}

// Draw renders every registered drawable of the tree.
func (v *Viewport) Draw(c Canvas) {
	if v.disposed {
		return
	}
	defer profiler.Start("ui.Viewport.Draw")()
	v.renderer.Draw(c)
}

func (v *Viewport) AddDrawables(r *Renderer) {
	v.RefreshDrawables()
	r.Add(v, func(c Canvas) {
		if d, ok := v.drawn.load(); ok {
			d.Draw(c)
		}
	}, v.RefreshDrawables)
}

func (v *Viewport) RemoveDrawables(r *Renderer) { r.Remove(v) }
func (v *Viewport) RefreshDrawables()           { v.drawn.publish(v.back) }

func (v *Viewport) geometryChanged() {
	v.back = DrawableRect{Bounds: v.Bounds(), Color: v.backColor}
	v.RefreshDrawables()
}
