package ui

import "github.com/hubastard/canopy/engine/colors"

// WidgetList stacks its items vertically from the top, separated by
// Spacing. Items are ordinary children whose position the list owns.
type WidgetList struct {
	Base
	items     []Widget
	spacing   float32
	backColor colors.Color

	back  DrawableRect
	drawn snapshot[DrawableRect]
}

func NewWidgetList(parent Widget, name string, rect Rect) (*WidgetList, error) {
	l := &WidgetList{spacing: 4, backColor: colors.Transparent}
	if err := l.init(l, parent, name, rect); err != nil {
		return nil, err
	}
	l.geometryChanged()
	return l, nil
}

func (l *WidgetList) Kind() Kind              { return KindWidgetList }
func (l *WidgetList) ItemCount() int          { return len(l.items) }
func (l *WidgetList) Spacing() float32        { return l.spacing }
func (l *WidgetList) BackColor() colors.Color { return l.backColor }

func (l *WidgetList) Items() []Widget {
	out := make([]Widget, len(l.items))
	copy(out, l.items)
	return out
}

func (l *WidgetList) SetSpacing(s float32) {
	l.spacing = s
	l.relayout()
}

func (l *WidgetList) SetBackColor(c colors.Color) {
	l.backColor = c
	l.geometryChanged()
}

// AddItem appends w to the list, adopting it as a child.
func (l *WidgetList) AddItem(w Widget) error {
	return l.InsertItem(len(l.items), w)
}

// InsertItem places w at index i of the list.
func (l *WidgetList) InsertItem(i int, w Widget) error {
	if i < 0 || i > len(l.items) {
		return ErrIndexOutOfRange
	}
	if w == nil {
		return ErrNilWidget
	}
	if j := l.itemIndex(w); j >= 0 {
		l.items = append(l.items[:j], l.items[j+1:]...)
		if i > len(l.items) {
			i = len(l.items)
		}
	} else if err := l.AddWidget(w); err != nil {
		return err
	}
	l.items = append(l.items, nil)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = w
	l.relayout()
	return nil
}

// RemoveItem takes w out of the list and out of the children.
func (l *WidgetList) RemoveItem(w Widget) bool {
	j := l.itemIndex(w)
	if j < 0 {
		return false
	}
	l.items = append(l.items[:j], l.items[j+1:]...)
	l.RemoveWidget(w)
	l.relayout()
	return true
}

func (l *WidgetList) itemIndex(w Widget) int {
	for i, it := range l.items {
		if it == w {
			return i
		}
	}
	return -1
}

// relayout stacks the items top down. Items that left the list through
// another path (disposal, reparenting) are dropped first.
func (l *WidgetList) relayout() {
	kept := l.items[:0]
	for _, it := range l.items {
		if it.Node().parent == l.self {
			kept = append(kept, it)
		}
	}
	l.items = kept

	var y float32
	for _, it := range l.items {
		n := it.Node()
		n.relPos = Vec2{X: n.relPos.X, Y: y}
		n.UpdatePosition()
		y += n.dims.Y + l.spacing
	}
}

// ContentHeight is the height of the stacked items including spacing.
func (l *WidgetList) ContentHeight() float32 {
	var h float32
	for i, it := range l.items {
		if i > 0 {
			h += l.spacing
		}
		h += it.Node().dims.Y
	}
	return h
}

func (l *WidgetList) AddDrawables(r *Renderer) {
	l.RefreshDrawables()
	r.Add(l, func(c Canvas) {
		if d, ok := l.drawn.load(); ok {
			d.Draw(c)
		}
	}, l.RefreshDrawables)
}

func (l *WidgetList) RemoveDrawables(r *Renderer) { r.Remove(l) }
func (l *WidgetList) RefreshDrawables()           { l.drawn.publish(l.back) }

func (l *WidgetList) geometryChanged() {
	l.back = DrawableRect{Bounds: l.Bounds(), Color: l.backColor}
	l.RefreshDrawables()
}
