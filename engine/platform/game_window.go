// Package platform owns the native game window: its OpenGL context, its
// persisted display mode and frame pacing.
package platform

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/settings"
)

const DefaultTitle = "canopy"

var (
	ErrNotOpen     = errors.New("platform: window is not open")
	ErrAlreadyOpen = errors.New("platform: window is already open")
)

var logger = log.New(os.Stderr, "[platform] ", log.LstdFlags)

var _ core.Window = (*GameWindow)(nil)

// Surface is the native window GameWindow drives.
type Surface interface {
	SetSize(w, h int)
	SetFullscreen(on bool, w, h int)
	SetDecorated(on bool)
	SetSwapInterval(n int)
	SetTitle(title string)
	Pos() (int, int)
	FramebufferSize() (int, int)
	SwapBuffers()
	PollEvents()
	ShouldClose() bool
	Destroy()
}

// Opener creates a surface for mode. Events from the surface go to emit.
type Opener func(mode settings.DisplayMode, title string, emit func(core.Event)) (Surface, error)

// GameWindow is a window whose display mode is read from a settings store
// on Init and written back on Dispose when it differs from the defaults.
// Every setter is a no-op when the requested state is already current,
// unless force is set.
type GameWindow struct {
	store *settings.Store
	open  Opener
	mode  settings.DisplayMode
	title string
	surf  Surface
	onEv  func(core.Event)
	sleep func(time.Duration)
}

// NewGameWindow returns a GLFW-backed window using store for its settings.
func NewGameWindow(store *settings.Store) *GameWindow {
	return NewGameWindowWith(store, OpenGLFW)
}

func NewGameWindowWith(store *settings.Store, open Opener) *GameWindow {
	if store == nil {
		store = settings.NewStore("")
	}
	return &GameWindow{
		store: store,
		open:  open,
		mode:  settings.Defaults(),
		title: DefaultTitle,
		sleep: time.Sleep,
	}
}

// Init reads the settings and opens the surface. A settings file that
// cannot be parsed is reported and replaced by the defaults.
func (g *GameWindow) Init() error {
	if g.surf != nil {
		return ErrAlreadyOpen
	}
	mode, err := g.store.Read()
	if err != nil {
		logger.Printf("using default display mode: %v", err)
	}
	g.mode = mode

	surf, err := g.open(g.mode, g.title, g.emit)
	if err != nil {
		return err
	}
	g.surf = surf
	g.SetSwapInterval(g.mode.SwapInterval, true)
	logger.Printf("opened %dx%d fullscreen=%v borderless=%v swap=%v",
		g.mode.ScreenWidth, g.mode.ScreenHeight, g.mode.IsFullscreen, g.mode.IsBorderless, g.mode.SwapInterval)
	return nil
}

// Dispose saves the display mode and destroys the surface. Disposing a
// window that is not open fails with ErrNotOpen and saves nothing.
func (g *GameWindow) Dispose() error {
	if g.surf == nil {
		return ErrNotOpen
	}
	g.surf.Destroy()
	g.surf = nil
	if _, err := g.store.Save(g.mode); err != nil {
		return fmt.Errorf("platform: save display mode: %w", err)
	}
	return nil
}

func (g *GameWindow) emit(ev core.Event) {
	if r, ok := ev.(core.EventResize); ok && !g.mode.IsFullscreen && r.W > 0 && r.H > 0 {
		g.mode.ScreenWidth, g.mode.ScreenHeight = r.W, r.H
	}
	if g.onEv != nil {
		g.onEv(ev)
	}
}

func (g *GameWindow) IsOpen() bool                         { return g.surf != nil }
func (g *GameWindow) DisplayMode() settings.DisplayMode    { return g.mode }
func (g *GameWindow) Width() int                           { return g.mode.ScreenWidth }
func (g *GameWindow) Height() int                          { return g.mode.ScreenHeight }
func (g *GameWindow) Title() string                        { return g.title }
func (g *GameWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

func (g *GameWindow) AspectRatio() float32 {
	if g.mode.ScreenHeight == 0 {
		return 0
	}
	return float32(g.mode.ScreenWidth) / float32(g.mode.ScreenHeight)
}

// Position is the window's top-left corner on the desktop.
func (g *GameWindow) Position() (int, int) {
	if g.surf == nil {
		return 0, 0
	}
	return g.surf.Pos()
}

func (g *GameWindow) X() int { x, _ := g.Position(); return x }
func (g *GameWindow) Y() int { _, y := g.Position(); return y }

func (g *GameWindow) SetScreenSize(w, h int, force bool) {
	if !force && g.mode.ScreenWidth == w && g.mode.ScreenHeight == h {
		return
	}
	g.mode.ScreenWidth, g.mode.ScreenHeight = w, h
	if g.surf != nil {
		g.surf.SetSize(w, h)
	}
}

func (g *GameWindow) SetFullscreen(on, force bool) {
	if !force && g.mode.IsFullscreen == on {
		return
	}
	g.mode.IsFullscreen = on
	if g.surf != nil {
		g.surf.SetFullscreen(on, g.mode.ScreenWidth, g.mode.ScreenHeight)
	}
}

func (g *GameWindow) SetBorderless(on, force bool) {
	if !force && g.mode.IsBorderless == on {
		return
	}
	g.mode.IsBorderless = on
	if g.surf != nil {
		g.surf.SetDecorated(!on)
	}
}

func (g *GameWindow) SetSwapInterval(s settings.SwapInterval, force bool) {
	if !force && g.mode.SwapInterval == s {
		return
	}
	g.mode.SwapInterval = s
	if g.surf != nil {
		g.surf.SetSwapInterval(g.mode.GLSwapInterval())
	}
}

// SetMaxFPS sets the frame cap used under the ValueCap swap interval.
func (g *GameWindow) SetMaxFPS(fps float32) { g.mode.MaxFPS = fps }

// SetTitle renames the window. An empty title restores DefaultTitle.
func (g *GameWindow) SetTitle(title string) {
	if title == "" {
		title = DefaultTitle
	}
	g.title = title
	if g.surf != nil {
		g.surf.SetTitle(title)
	}
}

func (g *GameWindow) PollEvents() {
	if g.surf != nil {
		g.surf.PollEvents()
	}
}

func (g *GameWindow) ShouldClose() bool { return g.surf == nil || g.surf.ShouldClose() }

func (g *GameWindow) FramebufferSize() (int, int) {
	if g.surf == nil {
		return 0, 0
	}
	return g.surf.FramebufferSize()
}

// Sync presents the frame, then sleeps off what is left of the frame
// budget when the swap interval is ValueCap.
func (g *GameWindow) Sync(frameTime time.Duration) {
	if g.surf == nil {
		return
	}
	g.surf.SwapBuffers()
	if d := g.mode.FrameDelay(frameTime); d > 0 {
		g.sleep(d)
	}
}
