package core

import (
	"log"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the main loop. The
// window is initialized here and disposed on exit, which persists its
// display mode.
func Run(app App, cfg Config, win Window, newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	if err := win.Init(); err != nil {
		return err
	}
	defer func() {
		if err := win.Dispose(); err != nil {
			log.Printf("dispose window: %v", err)
		}
	}()
	if cfg.Title != "" {
		win.SetTitle(cfg.Title)
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		if !eng.Layers.Dispatch(eng, ev) {
			app.OnEvent(eng, ev)
		}
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		}
	})

	app.OnStart(eng)
	eng.Layers.ForEach(func(l Layer) { l.OnAttach(eng) })

	// Fixed-timestep with interpolation
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	tick := time.Second / time.Duration(rate)
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		// Run fixed updates
		steps := 0
		for accum >= tick && steps < maxStep {
			dt := float64(tick) / float64(time.Second)
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		// Interpolation factor for rendering
		alpha := float64(accum) / float64(tick)

		// Render
		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })

		// Present and pace
		win.Sync(time.Since(now))
	}

	eng.Layers.ForEachReverse(func(l Layer) bool {
		l.OnDetach(eng)
		return false
	})
	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}
