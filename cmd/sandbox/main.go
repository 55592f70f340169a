package main

import (
	"flag"
	"log"
	"time"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	glbackend "github.com/hubastard/canopy/engine/gfx/gl"
	"github.com/hubastard/canopy/engine/platform"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/settings"
	"github.com/hubastard/canopy/engine/ui"
	"github.com/hubastard/canopy/engine/ui/script"
	"github.com/hubastard/canopy/engine/ui/script/luaengine"
	"github.com/hubastard/canopy/engine/ui/widgetyaml"
)

type App struct {
	layoutPath string
	scriptPath string
	window     *platform.GameWindow
	canvas     *glbackend.RendererGL
	env        *script.ViewEnvironment[*luaengine.Engine]
	uiLayer    *LayerUI
	debugLayer *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	viewport := ui.NewViewport("root", ui.Rect{W: float32(w), H: float32(h)}, nil)
	viewport.SetBackColor(colors.Transparent)

	if err := a.env.Init(viewport, a.window); err != nil {
		log.Fatal(err)
	}
	if a.layoutPath != "" {
		if _, err := widgetyaml.LoadFile(a.layoutPath, viewport); err != nil {
			log.Printf("layout: %v", err)
		}
	}
	if a.scriptPath != "" {
		if err := a.env.Run(a.scriptPath); err != nil {
			log.Printf("script: %v", err)
		}
	}

	a.uiLayer = &LayerUI{viewport: viewport, canvas: a.canvas}
	e.Layers.Push(a.uiLayer)

	a.debugLayer = &LayerDebug{viewport: viewport, canvas: a.canvas, window: a.window}
	e.Layers.Push(a.debugLayer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64)   {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event) {}

func (a *App) OnShutdown(e *core.Engine) {
	if err := a.env.Dispose(); err != nil {
		log.Printf("script: %v", err)
	}
}

func main() {
	settingsPath := flag.String("settings", settings.DefaultPath, "display mode file")
	scriptPath := flag.String("script", "cmd/sandbox/ui/menu.lua", "UI script to run at start")
	layoutPath := flag.String("layout", "cmd/sandbox/ui/layout.yaml", "YAML widget layout loaded before the script")
	timeout := flag.Duration("timeout", 2*time.Second, "script run time limit, 0 for none")
	flag.Parse()

	profiler.Init(1 << 10)

	cfg := core.Config{
		Title:        "canopy sandbox",
		ClearColor:   colors.DarkGray,
		SettingsPath: *settingsPath,
	}
	app := &App{
		layoutPath: *layoutPath,
		scriptPath: *scriptPath,
		window:     platform.NewGameWindow(settings.NewStore(cfg.SettingsPath)),
		env:        script.New(luaengine.NewWithTimeout(*timeout)),
	}

	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		r, err := glbackend.NewRendererGL(win, cfg)
		if err != nil {
			return nil, err
		}
		app.canvas = r
		return r, nil
	}

	if err := core.Run(app, cfg, app.window, newRenderer); err != nil {
		log.Fatal(err)
	}
}
