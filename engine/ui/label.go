package ui

import (
	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
)

type labelSnapshot struct {
	back  DrawableRect
	label DrawableText
}

// Label draws a string inside its bounds, optionally over a background.
type Label struct {
	Base
	back        DrawableRect
	label       DrawableText
	wrap        bool
	defaultFont *text.Font
	drawn       snapshot[labelSnapshot]
}

func NewLabel(parent Widget, name string, rect Rect) (*Label, error) {
	l := &Label{
		back:  DrawableRect{Color: colors.Transparent},
		label: DrawableText{Align: text.AlignLeft, Scale: defaultTextScale, Color: colors.White},
	}
	if err := l.init(l, parent, name, rect); err != nil {
		return nil, err
	}
	l.geometryChanged()
	return l, nil
}

func (l *Label) Kind() Kind                  { return KindLabel }
func (l *Label) Text() string                { return l.label.Text }
func (l *Label) TextColor() colors.Color     { return l.label.Color }
func (l *Label) TextAlign() text.Align       { return l.label.Align }
func (l *Label) TextScale() Vec2             { return l.label.Scale }
func (l *Label) Font() *text.Font            { return l.label.Font }
func (l *Label) BackColor() colors.Color     { return l.back.Color }
func (l *Label) Wrap() bool                  { return l.wrap }
func (l *Label) SetText(s string)            { l.label.Text = s; l.RefreshDrawables() }
func (l *Label) SetTextColor(c colors.Color) { l.label.Color = c; l.RefreshDrawables() }
func (l *Label) SetTextScale(s Vec2)         { l.label.Scale = s; l.RefreshDrawables() }
func (l *Label) SetFont(f *text.Font)        { l.label.Font = f; l.RefreshDrawables() }
func (l *Label) SetBackColor(c colors.Color) { l.back.Color = c; l.RefreshDrawables() }
func (l *Label) SetWrap(wrap bool)           { l.wrap = wrap; l.RefreshDrawables() }

func (l *Label) SetTextAlign(a text.Align) {
	l.label.Align = a
	l.geometryChanged()
}

func (l *Label) AddDrawables(r *Renderer) {
	l.defaultFont = r.DefaultFont()
	l.RefreshDrawables()
	r.Add(l, func(c Canvas) {
		if d, ok := l.drawn.load(); ok {
			d.back.Draw(c)
		}
	}, l.RefreshDrawables)
	r.Add(l, func(c Canvas) {
		if d, ok := l.drawn.load(); ok {
			d.label.Draw(c)
		}
	}, l.RefreshDrawables)
}

func (l *Label) RemoveDrawables(r *Renderer) { r.Remove(l) }

func (l *Label) RefreshDrawables() {
	t := l.label.resolved(l.defaultFont)
	if l.wrap && t.Font != nil {
		t.Text = text.Wrap(t.Font, t.Text, l.dims.X, t.Scale.X)
	}
	l.drawn.publish(labelSnapshot{back: l.back, label: t})
}

func (l *Label) geometryChanged() {
	l.back.Bounds = l.Bounds()
	l.label.place(l.Bounds())
	l.RefreshDrawables()
}
