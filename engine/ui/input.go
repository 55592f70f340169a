package ui

import "github.com/hubastard/canopy/engine/core"

// MouseEvent is a pointer event in viewport coordinates.
type MouseEvent struct {
	X, Y   float32
	Button core.MouseButton
}

// Event is an ordered list of handlers for one widget event.
type Event[T any] struct {
	handlers []func(w Widget, v T)
}

func (e *Event[T]) Add(h func(w Widget, v T)) { e.handlers = append(e.handlers, h) }
func (e *Event[T]) Len() int                  { return len(e.handlers) }
func (e *Event[T]) Clear()                    { e.handlers = nil }

func (e *Event[T]) emit(w Widget, v T) {
	for _, h := range e.handlers {
		h(w, v)
	}
}

// Optional hooks a widget kind implements to react to pointer input.
type (
	hoverAware interface{ hoverChanged() }
	clickAware interface{ clicked(e MouseEvent) }
	dragAware  interface {
		dragStart(e MouseEvent)
		dragMove(e MouseEvent)
		dragEnd(e MouseEvent)
	}
	hitTester interface{ hitTest(x, y float32) bool }
)

func (b *Base) hit(x, y float32) bool {
	if h, ok := b.self.(hitTester); ok {
		return h.hitTest(x, y)
	}
	return b.IsInBounds(x, y)
}

func (b *Base) handleMouseMove(e MouseEvent) {
	if !b.enabled || b.disposed {
		return
	}
	if b.pressed {
		if d, ok := b.self.(dragAware); ok {
			d.dragMove(e)
		}
	}
	if b.hit(e.X, e.Y) && b.IsVisible() {
		if !b.mouseIn {
			b.mouseIn = true
			b.MouseEnter.emit(b.self, e)
			b.notifyHover()
		}
		b.MouseMove.emit(b.self, e)
		return
	}
	if b.mouseIn {
		b.mouseIn = false
		b.MouseLeave.emit(b.self, e)
		b.notifyHover()
	}
}

func (b *Base) handleMouseButton(e MouseEvent, down bool) {
	if !b.enabled || b.disposed {
		return
	}
	if down {
		if b.mouseIn && e.Button == core.MouseLeft {
			b.pressed = true
			if d, ok := b.self.(dragAware); ok {
				d.dragStart(e)
			}
		}
		return
	}
	if !b.pressed {
		return
	}
	b.pressed = false
	if d, ok := b.self.(dragAware); ok {
		d.dragEnd(e)
	}
	if b.hit(e.X, e.Y) {
		b.MouseClick.emit(b.self, e)
		if c, ok := b.self.(clickAware); ok {
			c.clicked(e)
		}
	}
}

// walk visits w and its subtree, parents first. The child list is copied
// so handlers may restructure the tree.
func walk(w Widget, fn func(Widget)) {
	fn(w)
	for _, c := range w.Node().Children() {
		walk(c, fn)
	}
}
