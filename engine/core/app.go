package core

import "time"

// App defines the game/application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   LayerStack
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction. Implementations own the rendering context and the
// persisted display mode.
type Window interface {
	Init() error
	Dispose() error
	PollEvents()
	ShouldClose() bool
	FramebufferSize() (int, int)
	Width() int
	Height() int
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	// Sync presents the frame and paces it under a fixed-FPS policy.
	Sync(frameTime time.Duration)
}

// Renderer abstraction.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()
}

// Event model (can expand over time).
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X, Y   float64
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyP
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Config for the engine run.
type Config struct {
	Title        string
	ClearColor   [4]float32 // RGBA
	SettingsPath string     // display mode file read by the window
	TickRate     int        // fixed updates per second, 60 when zero
}
