package ui

import "github.com/hubastard/canopy/engine/colors"

// Panel is a plain colored container.
type Panel struct {
	Base
	color      colors.Color
	hoverColor colors.Color
	rect       DrawableRect
	drawn      snapshot[DrawableRect]
}

func NewPanel(parent Widget, name string, rect Rect) (*Panel, error) {
	p := &Panel{color: colors.Transparent, hoverColor: colors.Transparent}
	if err := p.init(p, parent, name, rect); err != nil {
		return nil, err
	}
	p.geometryChanged()
	return p, nil
}

func (p *Panel) Kind() Kind                   { return KindPanel }
func (p *Panel) Color() colors.Color          { return p.color }
func (p *Panel) HoverColor() colors.Color     { return p.hoverColor }
func (p *Panel) SetColor(c colors.Color)      { p.color = c; p.updateColor() }
func (p *Panel) SetHoverColor(c colors.Color) { p.hoverColor = c; p.updateColor() }

func (p *Panel) AddDrawables(r *Renderer) {
	p.RefreshDrawables()
	r.Add(p, func(c Canvas) {
		if d, ok := p.drawn.load(); ok {
			d.Draw(c)
		}
	}, p.RefreshDrawables)
}

func (p *Panel) RemoveDrawables(r *Renderer) { r.Remove(p) }
func (p *Panel) RefreshDrawables()           { p.drawn.publish(p.rect) }

func (p *Panel) geometryChanged() {
	p.rect.Bounds = p.Bounds()
	p.updateColor()
}

func (p *Panel) hoverChanged() { p.updateColor() }

func (p *Panel) updateColor() {
	p.rect.Color = p.color
	if p.mouseIn && p.hoverColor.Visible() {
		p.rect.Color = p.hoverColor
	}
	p.RefreshDrawables()
}
