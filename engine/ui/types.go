package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	ErrNilWidget       = errors.New("ui: nil widget")
	ErrDisposed        = errors.New("ui: widget is disposed")
	ErrCycle           = errors.New("ui: widget cannot become its own ancestor")
	ErrNotChild        = errors.New("ui: widget is not a child of this container")
	ErrInvalidRange    = errors.New("ui: invalid range")
	ErrIndexOutOfRange = errors.New("ui: index out of range")
)

// WidgetID uniquely identifies a widget for the lifetime of the process.
type WidgetID uint64

var nextWidgetID atomic.Uint64

func newWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// Kind names a concrete widget type. The names double as script namespaces.
type Kind int

const (
	KindButton Kind = iota
	KindCheckBox
	KindComboBox
	KindLabel
	KindPanel
	KindSlider
	KindViewport
	KindWidgetList
)

var kindNames = [...]string{
	KindButton:     "Button",
	KindCheckBox:   "CheckBox",
	KindComboBox:   "ComboBox",
	KindLabel:      "Label",
	KindPanel:      "Panel",
	KindSlider:     "Slider",
	KindViewport:   "Viewport",
	KindWidgetList: "WidgetList",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind maps a kind name ("Button") back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Vec2 is a 2D position or size.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Rect is a destination rectangle: top-left position and size.
type Rect struct {
	X, Y, W, H float32
}

// RectOf packs a position and size.
func RectOf(pos, dims Vec2) Rect { return Rect{X: pos.X, Y: pos.Y, W: dims.X, H: dims.Y} }

func (r Rect) Position() Vec2   { return Vec2{X: r.X, Y: r.Y} }
func (r Rect) Dimensions() Vec2 { return Vec2{X: r.W, Y: r.H} }
func (r Rect) Empty() bool      { return r.W <= 0 || r.H <= 0 }

// Contains reports whether (x, y) lies inside r; the right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ClippingState controls whether a widget is drawn.
type ClippingState int

const (
	ClippingVisible ClippingState = iota
	ClippingHidden
	ClippingInherit
)

var clippingNames = [...]string{
	ClippingVisible: "VISIBLE",
	ClippingHidden:  "HIDDEN",
	ClippingInherit: "INHERIT",
}

func (c ClippingState) String() string {
	if c < 0 || int(c) >= len(clippingNames) {
		return "UNKNOWN"
	}
	return clippingNames[c]
}

// ClippingStates lists every clipping state in declaration order.
func ClippingStates() []ClippingState {
	return []ClippingState{ClippingVisible, ClippingHidden, ClippingInherit}
}

// ParseClippingState accepts "visible", "hidden" or "inherit" in any case.
func ParseClippingState(name string) (ClippingState, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range clippingNames {
		if n == name {
			return ClippingState(i), true
		}
	}
	return 0, false
}

func (c ClippingState) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ClippingState) UnmarshalText(b []byte) error {
	v, ok := ParseClippingState(string(b))
	if !ok {
		return fmt.Errorf("ui: unknown clipping state %q", b)
	}
	*c = v
	return nil
}

// DockState selects the parent edge a widget is docked to.
type DockState int

const (
	DockNone DockState = iota
	DockLeft
	DockRight
	DockTop
	DockBottom
	DockFill
)

var dockNames = [...]string{
	DockNone:   "NONE",
	DockLeft:   "LEFT",
	DockRight:  "RIGHT",
	DockTop:    "TOP",
	DockBottom: "BOTTOM",
	DockFill:   "FILL",
}

func (d DockState) String() string {
	if d < 0 || int(d) >= len(dockNames) {
		return "UNKNOWN"
	}
	return dockNames[d]
}

// DockStates lists every dock state in declaration order.
func DockStates() []DockState {
	return []DockState{DockNone, DockLeft, DockRight, DockTop, DockBottom, DockFill}
}

// ParseDockState accepts the dock names ("left", "FILL", ...) in any case.
func ParseDockState(name string) (DockState, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range dockNames {
		if n == name {
			return DockState(i), true
		}
	}
	return 0, false
}

func (d DockState) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *DockState) UnmarshalText(b []byte) error {
	v, ok := ParseDockState(string(b))
	if !ok {
		return fmt.Errorf("ui: unknown dock state %q", b)
	}
	*d = v
	return nil
}

// DockStyle docks a widget to an edge of its parent. Size is the extent
// taken from that edge; it is ignored for DockFill and DockNone.
type DockStyle struct {
	State DockState
	Size  float32
}

// AnchorStyle lists the parent edges a widget tracks when the parent is
// resized. Tracking both opposite edges stretches the widget; tracking
// neither keeps it centered.
type AnchorStyle struct {
	Left, Top, Right, Bottom bool
}

// DefaultAnchor pins widgets to the parent's top-left corner.
var DefaultAnchor = AnchorStyle{Left: true, Top: true}
