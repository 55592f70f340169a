// Package text provides font faces, text measuring, glyph atlases and the
// alignment rules used to place text inside a widget.
package text

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font wraps a face with its metrics converted to pixels.
type Font struct {
	Name    string
	Face    font.Face
	Ascent  float32
	Descent float32 // positive, below the baseline
	LineGap float32
}

// NewFont reads the metrics of face.
func NewFont(name string, face font.Face) *Font {
	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	gap := fixedToFloat(m.Height) - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return &Font{Name: name, Face: face, Ascent: ascent, Descent: descent, LineGap: gap}
}

// Default returns the built-in 7x13 bitmap font. Each call returns a fresh
// value; callers decide who shares it.
func Default() *Font {
	return NewFont("basic7x13", basicfont.Face7x13)
}

// LineHeight is the distance between two baselines.
func (f *Font) LineHeight() float32 { return f.Ascent + f.Descent + f.LineGap }

// Advance returns the horizontal advance of r, falling back to a space.
func (f *Font) Advance(r rune) float32 {
	if adv, ok := f.Face.GlyphAdvance(r); ok {
		return fixedToFloat(adv)
	}
	if adv, ok := f.Face.GlyphAdvance(' '); ok {
		return fixedToFloat(adv)
	}
	return 0
}

// Measure returns the unscaled size of s. Lines are split on '\n'; the
// height always covers at least one line.
func (f *Font) Measure(s string) (width, height float32) {
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		var lineW float32
		prev := rune(-1)
		for _, r := range line {
			if prev >= 0 {
				lineW += fixedToFloat(f.Face.Kern(prev, r))
			}
			lineW += f.Advance(r)
			prev = r
		}
		if lineW > width {
			width = lineW
		}
	}
	return width, f.LineHeight() * float32(len(lines))
}

// MeasureScaled measures s drawn with the given scale.
func (f *Font) MeasureScaled(s string, scaleX, scaleY float32) (float32, float32) {
	w, h := f.Measure(s)
	return w * scaleX, h * scaleY
}

func fixedToFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }
