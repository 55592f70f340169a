package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

type checkBoxSnapshot struct {
	box   DrawableRect
	label DrawableText
}

// CheckBox toggles its checked state on click. The box is a square as tall
// as the widget; the caption sits to its right.
type CheckBox struct {
	Base
	checked         bool
	boxColor        colors.Color
	boxHoverColor   colors.Color
	boxCheckedColor colors.Color
	textColor       colors.Color

	box         DrawableRect
	label       DrawableText
	defaultFont *text.Font
	drawn       snapshot[checkBoxSnapshot]

	ValueChange Event[bool]
}

func NewCheckBox(parent Widget, name string, rect Rect) (*CheckBox, error) {
	c := &CheckBox{
		boxColor:        colors.LightGray,
		boxHoverColor:   colors.White,
		boxCheckedColor: colors.Green,
		textColor:       colors.White,
		label:           DrawableText{Align: text.AlignLeft, Scale: defaultTextScale},
	}
	if err := c.init(c, parent, name, rect); err != nil {
		return nil, err
	}
	c.geometryChanged()
	return c, nil
}

func (c *CheckBox) Kind() Kind                        { return KindCheckBox }
func (c *CheckBox) IsChecked() bool                   { return c.checked }
func (c *CheckBox) Text() string                      { return c.label.Text }
func (c *CheckBox) TextColor() colors.Color           { return c.textColor }
func (c *CheckBox) BoxColor() colors.Color            { return c.boxColor }
func (c *CheckBox) BoxHoverColor() colors.Color       { return c.boxHoverColor }
func (c *CheckBox) BoxCheckedColor() colors.Color     { return c.boxCheckedColor }
func (c *CheckBox) SetText(s string)                  { c.label.Text = s; c.RefreshDrawables() }
func (c *CheckBox) SetFont(f *text.Font)              { c.label.Font = f; c.RefreshDrawables() }
func (c *CheckBox) SetTextColor(col colors.Color)     { c.textColor = col; c.updateColor() }
func (c *CheckBox) SetBoxColor(col colors.Color)      { c.boxColor = col; c.updateColor() }
func (c *CheckBox) SetBoxHoverColor(col colors.Color) { c.boxHoverColor = col; c.updateColor() }
func (c *CheckBox) SetBoxCheckedColor(col colors.Color) {
	c.boxCheckedColor = col
	c.updateColor()
}

// SetChecked changes the state and fires ValueChange when it differs.
func (c *CheckBox) SetChecked(checked bool) {
	if c.checked == checked {
		return
	}
	c.checked = checked
	c.updateColor()
	c.ValueChange.emit(c, checked)
}

func (c *CheckBox) Toggle() { c.SetChecked(!c.checked) }

func (c *CheckBox) AddDrawables(r *Renderer) {
	c.defaultFont = r.DefaultFont()
	c.RefreshDrawables()
	r.Add(c, func(cv Canvas) {
		if d, ok := c.drawn.load(); ok {
			d.box.Draw(cv)
		}
	}, c.RefreshDrawables)
	r.Add(c, func(cv Canvas) {
		if d, ok := c.drawn.load(); ok {
			d.label.Draw(cv)
		}
	}, c.RefreshDrawables)
}

func (c *CheckBox) RemoveDrawables(r *Renderer) { r.Remove(c) }

func (c *CheckBox) RefreshDrawables() {
	c.drawn.publish(checkBoxSnapshot{box: c.box, label: c.label.resolved(c.defaultFont)})
}

func (c *CheckBox) geometryChanged() {
	side := c.dims.Y
	if c.dims.X < side {
		side = c.dims.X
	}
	c.box.Bounds = Rect{X: c.pos.X, Y: c.pos.Y, W: side, H: side}
	c.label.place(Rect{X: c.pos.X + side + 4, Y: c.pos.Y, W: maxf(c.dims.X-side-4, 0), H: c.dims.Y})
	c.updateColor()
}

func (c *CheckBox) hoverChanged()        { c.updateColor() }
func (c *CheckBox) clicked(_ MouseEvent) { c.Toggle() }

func (c *CheckBox) updateColor() {
	switch {
	case c.checked:
		c.box.Color = c.boxCheckedColor
	case c.mouseIn:
		c.box.Color = c.boxHoverColor
	default:
		c.box.Color = c.boxColor
	}
	c.label.Color = c.textColor
	c.RefreshDrawables()
}
