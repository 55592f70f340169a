package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

type buttonSnapshot struct {
	back  DrawableRect
	label DrawableText
}

// Button is a clickable rectangle with a caption. Colors switch to their
// hover variants while the pointer is over it.
type Button struct {
	Base
	backColor      colors.Color
	backHoverColor colors.Color
	textColor      colors.Color
	textHoverColor colors.Color

	back        DrawableRect
	label       DrawableText
	defaultFont *text.Font
	drawn       snapshot[buttonSnapshot]
}

func NewButton(parent Widget, name string, rect Rect) (*Button, error) {
	b := &Button{
		backColor:      colors.LightGray,
		backHoverColor: colors.White,
		textColor:      colors.Black,
		textHoverColor: colors.Black,
		label:          DrawableText{Align: text.AlignCenter, Scale: defaultTextScale},
	}
	if err := b.init(b, parent, name, rect); err != nil {
		return nil, err
	}
	b.geometryChanged()
	return b, nil
}

func (b *Button) Kind() Kind                       { return KindButton }
func (b *Button) Text() string                     { return b.label.Text }
func (b *Button) TextAlign() text.Align            { return b.label.Align }
func (b *Button) TextScale() Vec2                  { return b.label.Scale }
func (b *Button) Font() *text.Font                 { return b.label.Font }
func (b *Button) BackColor() colors.Color          { return b.backColor }
func (b *Button) BackHoverColor() colors.Color     { return b.backHoverColor }
func (b *Button) TextColor() colors.Color          { return b.textColor }
func (b *Button) TextHoverColor() colors.Color     { return b.textHoverColor }
func (b *Button) SetText(s string)                 { b.label.Text = s; b.RefreshDrawables() }
func (b *Button) SetTextScale(s Vec2)              { b.label.Scale = s; b.RefreshDrawables() }
func (b *Button) SetFont(f *text.Font)             { b.label.Font = f; b.RefreshDrawables() }
func (b *Button) SetBackColor(c colors.Color)      { b.backColor = c; b.updateColor() }
func (b *Button) SetBackHoverColor(c colors.Color) { b.backHoverColor = c; b.updateColor() }
func (b *Button) SetTextColor(c colors.Color)      { b.textColor = c; b.updateColor() }
func (b *Button) SetTextHoverColor(c colors.Color) { b.textHoverColor = c; b.updateColor() }

func (b *Button) SetTextAlign(a text.Align) {
	b.label.Align = a
	b.geometryChanged()
}

func (b *Button) AddDrawables(r *Renderer) {
	b.defaultFont = r.DefaultFont()
	b.RefreshDrawables()
	r.Add(b, func(c Canvas) {
		if d, ok := b.drawn.load(); ok {
			d.back.Draw(c)
		}
	}, b.RefreshDrawables)
	r.Add(b, func(c Canvas) {
		if d, ok := b.drawn.load(); ok {
			d.label.Draw(c)
		}
	}, b.RefreshDrawables)
}

func (b *Button) RemoveDrawables(r *Renderer) { r.Remove(b) }

func (b *Button) RefreshDrawables() {
	b.drawn.publish(buttonSnapshot{back: b.back, label: b.label.resolved(b.defaultFont)})
}

func (b *Button) geometryChanged() {
	b.back.Bounds = b.Bounds()
	b.label.place(b.Bounds())
	b.updateColor()
}

func (b *Button) hoverChanged() { b.updateColor() }

func (b *Button) updateColor() {
	if b.mouseIn {
		b.back.Color, b.label.Color = b.backHoverColor, b.textHoverColor
	} else {
		b.back.Color, b.label.Color = b.backColor, b.textColor
	}
	b.RefreshDrawables()
}
