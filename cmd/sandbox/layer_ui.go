package main

import (
	"github.com/hubastard/canopy/engine/core"
	glbackend "github.com/hubastard/canopy/engine/gfx/gl"
	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/ui"
)

// LayerUI feeds window events to the viewport and draws its widgets.
type LayerUI struct {
	viewport *ui.Viewport
	canvas   *glbackend.RendererGL
}

func (l *LayerUI) OnAttach(e *core.Engine)            {}
func (l *LayerUI) OnDetach(e *core.Engine)            { l.viewport.Dispose() }
func (l *LayerUI) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerUI) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("LayerUI.OnRender")()
	l.canvas.Begin()
	l.viewport.Draw(l.canvas)
	l.canvas.End()
}

// OnEvent consumes pointer events that land on a widget.
func (l *LayerUI) OnEvent(e *core.Engine, ev core.Event) bool {
	hovered := l.viewport.HandleEvent(ev)
	switch ev.(type) {
	case core.EventMouseButton, core.EventMouseMove:
		return hovered
	}
	return false
}
