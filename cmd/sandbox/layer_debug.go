package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	glbackend "github.com/hubastard/canopy/engine/gfx/gl"
	"github.com/hubastard/canopy/engine/platform"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

// LayerDebug shows frame, renderer and runtime statistics in a label
// docked to the right edge. Tab toggles it; Ctrl+P dumps the recorded
// profiler spans.
type LayerDebug struct {
	viewport  *ui.Viewport
	canvas    *glbackend.RendererGL
	window    *platform.GameWindow
	label     *ui.Label
	lastFrame time.Time
	frameMS   float64
	tick      int
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	label, err := ui.NewLabel(l.viewport, "debug", ui.Rect{})
	if err != nil {
		panic(err)
	}
	label.SetBackColor(colors.Black.WithAlpha(0.5))
	label.SetTextColor(colors.Yellow)
	label.SetTextAlign(text.AlignTopLeft)
	label.SetDock(ui.DockStyle{State: ui.DockRight, Size: 260})
	l.label = label
}

func (l *LayerDebug) OnDetach(e *core.Engine) { l.label.Dispose() }

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {
	l.tick++
	if l.label.ClippingState() == ui.ClippingHidden {
		return
	}
	stats := l.canvas.Stats()
	mode := l.window.DisplayMode()
	rt := profiler.ReadCounters()
	l.label.SetText(fmt.Sprintf(
		"Frame: %d\n  %2.3f ms\nWindow\n  %dx%d %s\n  fullscreen %v\nRenderer\n  Draw Calls: %d\n  Quads: %d\n  Vertices: %d\n  Textures: %d\nMemory\n  Usage: %.3f MB\n  Allocs: %d\n  Goroutines: %d\nCPU\n  Count: %d",
		l.tick, l.frameMS,
		mode.ScreenWidth, mode.ScreenHeight, mode.SwapInterval, mode.IsFullscreen,
		stats.DrawCalls, stats.QuadCount, stats.TotalVertexCount(), stats.TextureCount,
		float64(rt.HeapBytes)/(1<<20), rt.Mallocs, rt.Goroutines,
		rt.CPUs,
	))
}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("LayerDebug.OnRender")()
	now := time.Now()
	if !l.lastFrame.IsZero() {
		l.frameMS = now.Sub(l.lastFrame).Seconds() * 1000
	}
	l.lastFrame = now
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyTab:
		if l.label.ClippingState() == ui.ClippingHidden {
			l.label.SetClipping(ui.ClippingVisible)
		} else {
			l.label.SetClipping(ui.ClippingHidden)
		}
		return true
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		path, err := profiler.OpenProfilerGraph()
		if err != nil {
			log.Printf("profiler dump: %v", err)
		}
		if path != "" {
			log.Printf("speedscope dump: %s", path)
		}
		return true
	}
	return false
}
