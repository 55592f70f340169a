package colors

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a straight-alpha RGBA color with components in [0..1].
type Color [4]float32

var (
	Transparent = Color{0, 0, 0, 0}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	LightGray   = Color{0.75, 0.75, 0.75, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
)

var named = map[string]Color{
	"transparent": Transparent,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"black":       Black,
	"magenta":     Magenta,
	"cyan":        Cyan,
	"yellow":      Yellow,
	"gray":        Gray,
	"lightgray":   LightGray,
	"darkgray":    DarkGray,
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Visible reports whether drawing c would change any pixel.
func (c Color) Visible() bool { return c[3] > 0 }

// RGBA8 returns the color quantized to 8 bits per channel.
func (c Color) RGBA8() (r, g, b, a uint8) {
	q := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return q(c[0]), q(c[1]), q(c[2]), q(c[3])
}

// FromRGBA8 builds a Color from 8-bit channels.
func FromRGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// Parse accepts a color name ("white", "darkgray", ...) or a hex string in
// the forms #RGB, #RRGGBB or #RRGGBBAA.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("colors: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("colors: invalid color %q: %w", s, err)
	}
	return FromRGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// String formats the color as #RRGGBBAA.
func (c Color) String() string {
	r, g, b, a := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}
