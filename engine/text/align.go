package text

import (
	"fmt"
	"strings"
)

// Align selects which point of a box text is pinned to.
type Align int

const (
	AlignLeft Align = iota
	AlignTopLeft
	AlignTop
	AlignTopRight
	AlignRight
	AlignBottomRight
	AlignBottom
	AlignBottomLeft
	AlignCenter
)

var alignNames = [...]string{
	AlignLeft:        "LEFT",
	AlignTopLeft:     "TOP_LEFT",
	AlignTop:         "TOP",
	AlignTopRight:    "TOP_RIGHT",
	AlignRight:       "RIGHT",
	AlignBottomRight: "BOTTOM_RIGHT",
	AlignBottom:      "BOTTOM",
	AlignBottomLeft:  "BOTTOM_LEFT",
	AlignCenter:      "CENTER",
}

func (a Align) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return "UNKNOWN"
	}
	return alignNames[a]
}

// Aligns lists every alignment in declaration order.
func Aligns() []Align {
	out := make([]Align, len(alignNames))
	for i := range alignNames {
		out[i] = Align(i)
	}
	return out
}

// ParseAlign accepts the upper-case names ("TOP_LEFT") case-insensitively.
func ParseAlign(name string) (Align, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range alignNames {
		if n == name {
			return Align(i), true
		}
	}
	return 0, false
}

func (a Align) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Align) UnmarshalText(b []byte) error {
	v, ok := ParseAlign(string(b))
	if !ok {
		return fmt.Errorf("text: unknown alignment %q", b)
	}
	*a = v
	return nil
}

// Anchor returns the point of the box (x, y, w, h) that text with the given
// alignment is pinned to.
func Anchor(a Align, x, y, w, h float32) (float32, float32) {
	switch a {
	case AlignLeft:
		return x, y + h/2
	case AlignTop:
		return x + w/2, y
	case AlignTopRight:
		return x + w, y
	case AlignRight:
		return x + w, y + h/2
	case AlignBottomRight:
		return x + w, y + h
	case AlignBottom:
		return x + w/2, y + h
	case AlignBottomLeft:
		return x, y + h
	case AlignCenter:
		return x + w/2, y + h/2
	default:
		return x, y
	}
}

// Origin returns the offset from the anchor point to the top-left corner of a
// text block of size (tw, th).
func Origin(a Align, tw, th float32) (float32, float32) {
	switch a {
	case AlignLeft:
		return 0, -th / 2
	case AlignTop:
		return -tw / 2, 0
	case AlignTopRight:
		return -tw, 0
	case AlignRight:
		return -tw, -th / 2
	case AlignBottomRight:
		return -tw, -th
	case AlignBottom:
		return -tw / 2, -th
	case AlignBottomLeft:
		return 0, -th
	case AlignCenter:
		return -tw / 2, -th / 2
	default:
		return 0, 0
	}
}
