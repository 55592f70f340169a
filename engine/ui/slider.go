package ui

import (
	"math"

	"github.com/hubastard/canopy/engine/colors"
)

type sliderSnapshot struct {
	bar   DrawableRect
	slide DrawableRect
}

// Slider picks a value in [min, max] by dragging a slide along a bar. A
// positive step snaps values to min + k*step.
type Slider struct {
	Base
	min, max, value, step float32
	vertical              bool
	slideSize             Vec2

	barColor        colors.Color
	slideColor      colors.Color
	slideHoverColor colors.Color

	bar   DrawableRect
	slide DrawableRect
	drawn snapshot[sliderSnapshot]

	ValueChange Event[float32]
}

func NewSlider(parent Widget, name string, rect Rect) (*Slider, error) {
	s := &Slider{
		max:             1,
		slideSize:       Vec2{X: 10, Y: 10},
		barColor:        colors.Gray,
		slideColor:      colors.LightGray,
		slideHoverColor: colors.White,
	}
	if err := s.init(s, parent, name, rect); err != nil {
		return nil, err
	}
	s.geometryChanged()
	return s, nil
}

func (s *Slider) Kind() Kind                        { return KindSlider }
func (s *Slider) Min() float32                      { return s.min }
func (s *Slider) Max() float32                      { return s.max }
func (s *Slider) Value() float32                    { return s.value }
func (s *Slider) Step() float32                     { return s.step }
func (s *Slider) IsVertical() bool                  { return s.vertical }
func (s *Slider) SlideSize() Vec2                   { return s.slideSize }
func (s *Slider) BarColor() colors.Color            { return s.barColor }
func (s *Slider) SlideColor() colors.Color          { return s.slideColor }
func (s *Slider) SlideHoverColor() colors.Color     { return s.slideHoverColor }
func (s *Slider) SetVertical(v bool)                { s.vertical = v; s.geometryChanged() }
func (s *Slider) SetSlideSize(size Vec2)            { s.slideSize = size; s.geometryChanged() }
func (s *Slider) SetBarColor(c colors.Color)        { s.barColor = c; s.geometryChanged() }
func (s *Slider) SetSlideColor(c colors.Color)      { s.slideColor = c; s.geometryChanged() }
func (s *Slider) SetSlideHoverColor(c colors.Color) { s.slideHoverColor = c; s.geometryChanged() }

// SetRange changes the bounds and clamps the current value into them.
func (s *Slider) SetRange(min, max float32) error {
	if min > max {
		return ErrInvalidRange
	}
	s.min, s.max = min, max
	s.SetValue(s.value)
	return nil
}

func (s *Slider) SetStep(step float32) {
	s.step = maxf(step, 0)
	s.SetValue(s.value)
}

// SetValue clamps and snaps v, firing ValueChange when the stored value
// changes.
func (s *Slider) SetValue(v float32) {
	v = clamp(v, s.min, s.max)
	if s.step > 0 {
		v = s.min + float32(math.Round(float64((v-s.min)/s.step)))*s.step
		if v > s.max {
			v -= s.step
		}
	}
	changed := v != s.value
	s.value = v
	s.geometryChanged()
	if changed {
		s.ValueChange.emit(s, v)
	}
}

// Ratio is the value's position along the bar in [0, 1].
func (s *Slider) Ratio() float32 {
	if s.max == s.min {
		return 0
	}
	return (s.value - s.min) / (s.max - s.min)
}

func (s *Slider) AddDrawables(r *Renderer) {
	s.RefreshDrawables()
	r.Add(s, func(c Canvas) {
		if d, ok := s.drawn.load(); ok {
			d.bar.Draw(c)
		}
	}, s.RefreshDrawables)
	r.Add(s, func(c Canvas) {
		if d, ok := s.drawn.load(); ok {
			d.slide.Draw(c)
		}
	}, s.RefreshDrawables)
}

func (s *Slider) RemoveDrawables(r *Renderer) { r.Remove(s) }
func (s *Slider) RefreshDrawables()           { s.drawn.publish(sliderSnapshot{bar: s.bar, slide: s.slide}) }

func (s *Slider) geometryChanged() {
	s.bar = DrawableRect{Bounds: s.Bounds(), Color: s.barColor}
	size := s.slideSize
	slide := Rect{W: size.X, H: size.Y}
	if s.vertical {
		slide.X = s.pos.X + (s.dims.X-size.X)/2
		slide.Y = s.pos.Y + (1-s.Ratio())*maxf(s.dims.Y-size.Y, 0)
	} else {
		slide.X = s.pos.X + s.Ratio()*maxf(s.dims.X-size.X, 0)
		slide.Y = s.pos.Y + (s.dims.Y-size.Y)/2
	}
	s.slide = DrawableRect{Bounds: slide, Color: s.slideColor}
	if s.mouseIn || s.pressed {
		s.slide.Color = s.slideHoverColor
	}
	s.RefreshDrawables()
}

func (s *Slider) hoverChanged() { s.geometryChanged() }

func (s *Slider) valueAt(e MouseEvent) float32 {
	var t float32
	if s.vertical {
		if span := s.dims.Y - s.slideSize.Y; span > 0 {
			t = 1 - (e.Y-s.pos.Y-s.slideSize.Y/2)/span
		}
	} else if span := s.dims.X - s.slideSize.X; span > 0 {
		t = (e.X - s.pos.X - s.slideSize.X/2) / span
	}
	return s.min + clamp(t, 0, 1)*(s.max-s.min)
}

func (s *Slider) dragStart(e MouseEvent) { s.SetValue(s.valueAt(e)) }
func (s *Slider) dragMove(e MouseEvent)  { s.SetValue(s.valueAt(e)) }
func (s *Slider) dragEnd(_ MouseEvent)   { s.geometryChanged() }
