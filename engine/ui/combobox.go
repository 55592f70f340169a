package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

type comboBoxSnapshot struct {
	main  DrawableRect
	label DrawableText
	items []DrawableRect
	texts []DrawableText
}

// ComboBox shows the selected item and drops down the item list below
// itself while open. Each item row is as tall as the widget.
type ComboBox struct {
	Base
	items    []string
	selected int
	open     bool

	mainColor  colors.Color
	hoverColor colors.Color
	itemColor  colors.Color
	textColor  colors.Color

	defaultFont *text.Font
	drawn       snapshot[comboBoxSnapshot]

	ValueChange Event[string]
}

func NewComboBox(parent Widget, name string, rect Rect) (*ComboBox, error) {
	c := &ComboBox{
		selected:   -1,
		mainColor:  colors.LightGray,
		hoverColor: colors.White,
		itemColor:  colors.Gray,
		textColor:  colors.Black,
	}
	if err := c.init(c, parent, name, rect); err != nil {
		return nil, err
	}
	c.geometryChanged()
	return c, nil
}

func (c *ComboBox) Kind() Kind                     { return KindComboBox }
func (c *ComboBox) ItemCount() int                 { return len(c.items) }
func (c *ComboBox) IsOpen() bool                   { return c.open }
func (c *ComboBox) SelectedIndex() int             { return c.selected }
func (c *ComboBox) MainColor() colors.Color        { return c.mainColor }
func (c *ComboBox) HoverColor() colors.Color       { return c.hoverColor }
func (c *ComboBox) ItemColor() colors.Color        { return c.itemColor }
func (c *ComboBox) TextColor() colors.Color        { return c.textColor }
func (c *ComboBox) SetOpen(open bool)              { c.open = open; c.RefreshDrawables() }
func (c *ComboBox) SetMainColor(col colors.Color)  { c.mainColor = col; c.RefreshDrawables() }
func (c *ComboBox) SetHoverColor(col colors.Color) { c.hoverColor = col; c.RefreshDrawables() }
func (c *ComboBox) SetItemColor(col colors.Color)  { c.itemColor = col; c.RefreshDrawables() }
func (c *ComboBox) SetTextColor(col colors.Color)  { c.textColor = col; c.RefreshDrawables() }

func (c *ComboBox) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// SelectedItem returns the selected string, or "" with ok false when no
// item is selected.
func (c *ComboBox) SelectedItem() (string, bool) {
	if c.selected < 0 {
		return "", false
	}
	return c.items[c.selected], true
}

func (c *ComboBox) AddItem(item string) {
	c.items = append(c.items, item)
	c.RefreshDrawables()
}

func (c *ComboBox) InsertItem(i int, item string) error {
	if i < 0 || i > len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items, "")
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = item
	if c.selected >= i {
		c.selected++
	}
	c.RefreshDrawables()
	return nil
}

// RemoveItem drops item i. Removing the selected item clears the selection.
func (c *ComboBox) RemoveItem(i int) error {
	if i < 0 || i >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	switch {
	case c.selected == i:
		c.selected = -1
	case c.selected > i:
		c.selected--
	}
	c.RefreshDrawables()
	return nil
}

// Select makes item i current and fires ValueChange when the selection
// moves. -1 clears the selection.
func (c *ComboBox) Select(i int) error {
	if i < -1 || i >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if i == c.selected {
		return nil
	}
	c.selected = i
	c.RefreshDrawables()
	item, _ := c.SelectedItem()
	c.ValueChange.emit(c, item)
	return nil
}

// SelectItem selects the first item equal to item.
func (c *ComboBox) SelectItem(item string) bool {
	for i, it := range c.items {
		if it == item {
			_ = c.Select(i)
			return true
		}
	}
	return false
}

func (c *ComboBox) AddDrawables(r *Renderer) {
	c.defaultFont = r.DefaultFont()
	c.RefreshDrawables()
	r.Add(c, func(cv Canvas) {
		d, ok := c.drawn.load()
		if !ok {
			return
		}
		d.main.Draw(cv)
		d.label.Draw(cv)
		for i := range d.items {
			d.items[i].Draw(cv)
			d.texts[i].Draw(cv)
		}
	}, c.RefreshDrawables)
}

func (c *ComboBox) RemoveDrawables(r *Renderer) { r.Remove(c) }

func (c *ComboBox) RefreshDrawables() {
	bounds := c.Bounds()
	s := comboBoxSnapshot{main: DrawableRect{Bounds: bounds, Color: c.mainColor}}
	if c.mouseIn && !c.open {
		s.main.Color = c.hoverColor
	}
	s.label = c.itemText(bounds, "")
	if item, ok := c.SelectedItem(); ok {
		s.label.Text = item
	}
	if c.open {
		for i, item := range c.items {
			row := c.itemRect(i)
			s.items = append(s.items, DrawableRect{Bounds: row, Color: c.itemColor})
			s.texts = append(s.texts, c.itemText(row, item))
		}
	}
	c.drawn.publish(s)
}

func (c *ComboBox) itemText(bounds Rect, s string) DrawableText {
	t := DrawableText{Text: s, Align: text.AlignLeft, Scale: defaultTextScale, Color: c.textColor}
	t.place(bounds)
	return t.resolved(c.defaultFont)
}

func (c *ComboBox) itemRect(i int) Rect {
	return Rect{X: c.pos.X, Y: c.pos.Y + c.dims.Y*float32(i+1), W: c.dims.X, H: c.dims.Y}
}

func (c *ComboBox) geometryChanged() { c.RefreshDrawables() }
func (c *ComboBox) hoverChanged()    { c.RefreshDrawables() }

// hitTest extends the widget bounds by the drop-down rows while open.
func (c *ComboBox) hitTest(x, y float32) bool {
	if c.IsInBounds(x, y) {
		return true
	}
	if !c.open {
		return false
	}
	list := Rect{X: c.pos.X, Y: c.pos.Y + c.dims.Y, W: c.dims.X, H: c.dims.Y * float32(len(c.items))}
	return list.Contains(x, y)
}

func (c *ComboBox) clicked(e MouseEvent) {
	if c.open && !c.IsInBounds(e.X, e.Y) && c.dims.Y > 0 {
		i := int((e.Y - c.pos.Y - c.dims.Y) / c.dims.Y)
		if i >= 0 && i < len(c.items) {
			_ = c.Select(i)
		}
	}
	c.SetOpen(!c.open)
}
