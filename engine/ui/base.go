package ui

// Widget is a node of the retained UI tree. Concrete kinds embed Base and
// contribute their drawables to the Renderer of the viewport they are
// attached to.
type Widget interface {
	Node() *Base
	Kind() Kind
	AddDrawables(r *Renderer)
	RemoveDrawables(r *Renderer)
	RefreshDrawables()

	// geometryChanged runs after the absolute position or dimensions of the
	// widget have been recomputed.
	geometryChanged()
}

type Base struct {
	self     Widget
	id       WidgetID
	name     string
	parent   Widget
	children []Widget

	relPos   Vec2
	pos      Vec2
	dims     Vec2
	anchor   AnchorStyle
	dock     DockStyle
	clipping ClippingState

	enabled  bool
	mouseIn  bool
	pressed  bool
	disposed bool
	renderer *Renderer

	MouseClick Event[MouseEvent]
	MouseEnter Event[MouseEvent]
	MouseLeave Event[MouseEvent]
	MouseMove  Event[MouseEvent]
	Disposed   Event[struct{}]
}

// init wires the base to its concrete widget and attaches it to parent,
// which may be nil.
func (b *Base) init(self Widget, parent Widget, name string, rect Rect) error {
	b.self = self
	b.id = newWidgetID()
	b.name = name
	b.relPos = rect.Position()
	b.pos = b.relPos
	b.dims = rect.Dimensions()
	b.anchor = DefaultAnchor
	b.clipping = ClippingInherit
	b.enabled = true
	if parent == nil {
		return nil
	}
	return parent.Node().AddWidget(self)
}

func (b *Base) Node() *Base                  { return b }
func (b *Base) ID() WidgetID                 { return b.id }
func (b *Base) Name() string                 { return b.name }
func (b *Base) SetName(name string)          { b.name = name }
func (b *Base) Parent() Widget               { return b.parent }
func (b *Base) ChildCount() int              { return len(b.children) }
func (b *Base) Position() Vec2               { return b.pos }
func (b *Base) RelativePosition() Vec2       { return b.relPos }
func (b *Base) Dimensions() Vec2             { return b.dims }
func (b *Base) Width() float32               { return b.dims.X }
func (b *Base) Height() float32              { return b.dims.Y }
func (b *Base) DestRect() Rect               { return RectOf(b.relPos, b.dims) }
func (b *Base) Bounds() Rect                 { return RectOf(b.pos, b.dims) }
func (b *Base) Anchor() AnchorStyle          { return b.anchor }
func (b *Base) Dock() DockStyle              { return b.dock }
func (b *Base) ClippingState() ClippingState { return b.clipping }
func (b *Base) IsEnabled() bool              { return b.enabled }
func (b *Base) IsMouseIn() bool              { return b.mouseIn }
func (b *Base) IsDisposed() bool             { return b.disposed }
func (b *Base) Renderer() *Renderer          { return b.renderer }
func (b *Base) IsInBounds(x, y float32) bool { return b.Bounds().Contains(x, y) }
func (b *Base) SetClipping(c ClippingState)  { b.clipping = c }

// Children returns a copy of the child list in insertion order.
func (b *Base) Children() []Widget {
	out := make([]Widget, len(b.children))
	copy(out, b.children)
	return out
}

// Root walks the parent chain up to the top-level widget.
func (b *Base) Root() Widget {
	w := b.self
	for w.Node().parent != nil {
		w = w.Node().parent
	}
	return w
}

// IsVisible resolves the clipping state; Inherit follows the parent and a
// root with Inherit is visible.
func (b *Base) IsVisible() bool {
	if b.disposed {
		return false
	}
	switch b.clipping {
	case ClippingHidden:
		return false
	case ClippingVisible:
		return true
	}
	if b.parent == nil {
		return true
	}
	return b.parent.Node().IsVisible()
}

func (b *Base) Enable() { b.enabled = true }

// Disable stops pointer processing; a hovered widget gets its mouse-in
// state cleared.
func (b *Base) Disable() {
	b.enabled = false
	b.pressed = false
	if b.mouseIn {
		b.mouseIn = false
		b.notifyHover()
	}
}

func (b *Base) SetPosition(x, y float32) {
	b.relPos = Vec2{X: x, Y: y}
	b.UpdatePosition()
}

func (b *Base) SetX(x float32) { b.SetPosition(x, b.relPos.Y) }
func (b *Base) SetY(y float32) { b.SetPosition(b.relPos.X, y) }

func (b *Base) SetDimensions(w, h float32) {
	b.resize(Vec2{X: w, Y: h})
	b.UpdatePosition()
}

func (b *Base) SetWidth(w float32)  { b.SetDimensions(w, b.dims.Y) }
func (b *Base) SetHeight(h float32) { b.SetDimensions(b.dims.X, h) }

func (b *Base) SetDestRect(r Rect) {
	b.relPos = r.Position()
	b.resize(r.Dimensions())
	b.UpdatePosition()
}

func (b *Base) SetAnchor(a AnchorStyle) {
	b.anchor = a
	b.UpdatePosition()
}

// SetDock docks the widget inside its parent. Without a parent the style
// is only stored and applies once the widget is added somewhere.
func (b *Base) SetDock(d DockStyle) {
	if b.parent != nil {
		// b is always a child of its parent
		_ = b.parent.Node().SetChildDock(b.self, d)
		return
	}
	b.dock = d
	b.UpdatePosition()
}

// UpdatePosition recomputes the absolute position from the parent and
// then walks the subtree, parents before children.
func (b *Base) UpdatePosition() {
	b.pos = b.relPos
	if b.parent != nil {
		b.pos = b.pos.Add(b.parent.Node().pos)
	}
	b.self.geometryChanged()
	for _, c := range b.children {
		c.Node().UpdatePosition()
	}
}

// AddWidget appends child to the children of b. Adding a current child
// again leaves the order untouched; a child of another widget is moved.
func (b *Base) AddWidget(child Widget) error {
	if child == nil {
		return ErrNilWidget
	}
	cb := child.Node()
	if b.disposed || cb.disposed {
		return ErrDisposed
	}
	if cb.parent == b.self {
		return nil
	}
	for a := b.self; a != nil; a = a.Node().parent {
		if a == child {
			return ErrCycle
		}
	}
	if cb.parent != nil {
		cb.parent.Node().RemoveWidget(child)
	}

	b.children = append(b.children, child)
	cb.parent = b.self
	if cb.dock.State != DockNone {
		// docking the newcomer can move any sibling
		b.resolveDocks()
		for _, c := range b.children {
			c.Node().UpdatePosition()
		}
	} else {
		cb.UpdatePosition()
	}
	if b.renderer != nil {
		cb.attach(b.renderer)
	}
	return nil
}

// RemoveWidget detaches a direct child and unregisters its drawables. It
// reports whether child was found.
func (b *Base) RemoveWidget(child Widget) bool {
	if child == nil {
		return false
	}
	i := b.indexOf(child)
	if i < 0 {
		return false
	}
	b.children = append(b.children[:i], b.children[i+1:]...)

	cb := child.Node()
	cb.parent = nil
	cb.detach()
	if cb.dock.State != DockNone {
		b.resolveDocks()
		for _, c := range b.children {
			c.Node().UpdatePosition()
		}
	}
	if !cb.disposed {
		cb.UpdatePosition()
	}
	return true
}

// Dispose tears down the subtree: drawables are unregistered, children are
// disposed and the widget leaves its parent. Further calls do nothing.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.Disposed.emit(b.self, struct{}{})
	for _, c := range b.Children() {
		c.Node().Dispose()
	}
	b.detach()
	if b.parent != nil {
		b.parent.Node().RemoveWidget(b.self)
	}
	b.children = nil
	b.mouseIn = false
	b.pressed = false
	b.MouseClick.Clear()
	b.MouseEnter.Clear()
	b.MouseLeave.Clear()
	b.MouseMove.Clear()
	b.Disposed.Clear()
}

func (b *Base) indexOf(w Widget) int {
	for i, c := range b.children {
		if c == w {
			return i
		}
	}
	return -1
}

func (b *Base) attach(r *Renderer) {
	if b.disposed {
		return
	}
	if b.renderer == nil {
		b.renderer = r
		b.self.AddDrawables(r)
	}
	for _, c := range b.children {
		c.Node().attach(r)
	}
}

func (b *Base) detach() {
	if b.renderer != nil {
		b.self.RemoveDrawables(b.renderer)
		b.renderer = nil
	}
	for _, c := range b.children {
		c.Node().detach()
	}
}

// Default hooks; kinds that need them implement the optional interfaces in
// input.go and Base forwards to them.

func (b *Base) notifyHover() {
	if h, ok := b.self.(hoverAware); ok {
		h.hoverChanged()
	}
}
