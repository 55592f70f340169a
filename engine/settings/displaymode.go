// Package settings holds the persisted display mode of the game window and
// the store that reads and writes it.
package settings

import (
	"fmt"
	"time"
)

const (
	DefaultScreenWidth  = 1600
	DefaultScreenHeight = 900
	DefaultMaxFPS       = 60.0
	DefaultSwapInterval = VSync
	DefaultPath         = "app.toml"
)

// SwapInterval selects how buffer swaps are synchronized with the display.
type SwapInterval int

const (
	Unlimited SwapInterval = iota
	VSync
	LowSync
	PowerSaver
	ValueCap
)

var swapIntervalNames = [...]string{
	Unlimited:  "Unlimited",
	VSync:      "VSync",
	LowSync:    "LowSync",
	PowerSaver: "PowerSaver",
	ValueCap:   "ValueCap",
}

func (s SwapInterval) String() string {
	if s < 0 || int(s) >= len(swapIntervalNames) {
		return fmt.Sprintf("SwapInterval(%d)", int(s))
	}
	return swapIntervalNames[s]
}

func (s SwapInterval) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(swapIntervalNames) {
		return nil, fmt.Errorf("settings: unknown swap interval %d", int(s))
	}
	return []byte(swapIntervalNames[s]), nil
}

func (s *SwapInterval) UnmarshalText(b []byte) error {
	v, ok := ParseSwapInterval(string(b))
	if !ok {
		return fmt.Errorf("settings: unknown swap interval %q", b)
	}
	*s = v
	return nil
}

// ParseSwapInterval maps a persisted name back to its SwapInterval.
func ParseSwapInterval(name string) (SwapInterval, bool) {
	for i, n := range swapIntervalNames {
		if n == name {
			return SwapInterval(i), true
		}
	}
	return 0, false
}

// DisplayMode is the persisted window configuration. It is comparable; two
// modes are equal when every field is equal.
type DisplayMode struct {
	ScreenWidth  int          `toml:"ScreenWidth"`
	ScreenHeight int          `toml:"ScreenHeight"`
	IsFullscreen bool         `toml:"IsFullscreen"`
	IsBorderless bool         `toml:"IsBorderless"`
	SwapInterval SwapInterval `toml:"SwapInterval"`
	MaxFPS       float32      `toml:"MaxFPS"`
}

// Defaults returns the engine's default display mode.
func Defaults() DisplayMode {
	return DisplayMode{
		ScreenWidth:  DefaultScreenWidth,
		ScreenHeight: DefaultScreenHeight,
		MaxFPS:       DefaultMaxFPS,
		SwapInterval: DefaultSwapInterval,
	}
}

// IsDefault reports whether m needs no persisting.
func (m DisplayMode) IsDefault() bool { return m == Defaults() }

// GLSwapInterval is the value handed to the context's swap interval call.
// Unlimited and ValueCap swap immediately; ValueCap paces in FrameDelay.
func (m DisplayMode) GLSwapInterval() int {
	switch m.SwapInterval {
	case Unlimited, ValueCap:
		return 0
	case LowSync:
		return 2
	case PowerSaver:
		return 3
	default:
		return 1
	}
}

// FrameDelay returns how long to sleep after a frame that took frameTime so
// the ValueCap policy holds MaxFPS. Other policies never sleep.
func (m DisplayMode) FrameDelay(frameTime time.Duration) time.Duration {
	if m.SwapInterval != ValueCap || m.MaxFPS <= 0 {
		return 0
	}
	target := time.Duration(float64(time.Second) / float64(m.MaxFPS))
	if frameTime >= target {
		return 0
	}
	return target - frameTime
}
