package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/canopy/engine/core"
)

type recorder struct{ log []string }

func (r *recorder) add(s string) { r.log = append(r.log, s) }

type testLayer struct {
	name   string
	rec    *recorder
	handle bool
}

func (l *testLayer) OnAttach(*core.Engine) { l.rec.add(l.name + ".attach") }
func (l *testLayer) OnDetach(*core.Engine) { l.rec.add(l.name + ".detach") }
func (l *testLayer) OnUpdate(*core.Engine, float64) {}
func (l *testLayer) OnRender(*core.Engine, float64) { l.rec.add(l.name + ".render") }
func (l *testLayer) OnEvent(_ *core.Engine, _ core.Event) bool {
	l.rec.add(l.name + ".event")
	return l.handle
}

func TestLayerStackDispatchTopDown(t *testing.T) {
	rec := &recorder{}
	var ls core.LayerStack
	ls.Push(&testLayer{name: "bottom", rec: rec})
	ls.Push(&testLayer{name: "top", rec: rec})

	if ls.Dispatch(nil, core.EventScroll{}) {
		t.Error("unhandled event reported as handled")
	}
	ls.Push(&testLayer{name: "modal", rec: rec, handle: true})
	if !ls.Dispatch(nil, core.EventScroll{}) {
		t.Error("handled event reported as unhandled")
	}

	want := []string{"top.event", "bottom.event", "modal.event"}
	if diff := cmp.Diff(want, rec.log); diff != "" {
		t.Errorf("dispatch order (-want +got):\n%s", diff)
	}

	l, ok := ls.Pop()
	if !ok || l.(*testLayer).name != "modal" || ls.Len() != 2 {
		t.Errorf("Pop = %v, %v; Len = %d", l, ok, ls.Len())
	}
	var empty core.LayerStack
	if _, ok := empty.Pop(); ok {
		t.Error("Pop on an empty stack succeeded")
	}
}

func TestInputTracksState(t *testing.T) {
	in := core.NewInput()
	in.Handle(core.EventKey{Key: core.KeyTab, Down: true})
	in.Handle(core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 3, Y: 4})
	in.Handle(core.EventMouseMove{X: 10, Y: 20})

	if !in.IsKeyDown(core.KeyTab) || in.IsKeyDown(core.KeyEnter) {
		t.Error("key state wrong")
	}
	if !in.IsButtonDown(core.MouseLeft) {
		t.Error("button state wrong")
	}
	if x, y := in.Mouse(); x != 10 || y != 20 {
		t.Errorf("Mouse = %v, %v", x, y)
	}
	in.Handle(core.EventKey{Key: core.KeyTab})
	if in.IsKeyDown(core.KeyTab) {
		t.Error("key release ignored")
	}
}

type fakeWindow struct {
	rec     *recorder
	frames  int
	initErr error
	onEv    func(core.Event)
}

func (w *fakeWindow) Init() error                          { w.rec.add("init"); return w.initErr }
func (w *fakeWindow) Dispose() error                       { w.rec.add("dispose"); return nil }
func (w *fakeWindow) PollEvents()                          {}
func (w *fakeWindow) ShouldClose() bool                    { return w.frames <= 0 }
func (w *fakeWindow) FramebufferSize() (int, int)          { return 320, 200 }
func (w *fakeWindow) Width() int                           { return 320 }
func (w *fakeWindow) Height() int                          { return 200 }
func (w *fakeWindow) SetTitle(string)                      { w.rec.add("title") }
func (w *fakeWindow) SetEventCallback(cb func(core.Event)) { w.onEv = cb }
func (w *fakeWindow) Sync(time.Duration)                   { w.frames--; w.onEv(core.EventResize{W: 640, H: 400}) }

type fakeRenderer struct{ rec *recorder }

func (r *fakeRenderer) Resize(w, h int)          { r.rec.add("resize") }
func (r *fakeRenderer) Clear(_, _, _, _ float32) { r.rec.add("clear") }
func (r *fakeRenderer) Shutdown()                { r.rec.add("shutdown") }

type testApp struct{ rec *recorder }

func (a *testApp) OnStart(e *core.Engine) {
	a.rec.add("start")
	e.Layers.Push(&testLayer{name: "ui", rec: a.rec, handle: true})
}
func (a *testApp) OnUpdate(*core.Engine, float64)  {}
func (a *testApp) OnRender(*core.Engine, float64)   { a.rec.add("app.render") }
func (a *testApp) OnEvent(*core.Engine, core.Event) { a.rec.add("app.event") }
func (a *testApp) OnShutdown(*core.Engine)          { a.rec.add("shutdown.app") }

func TestRunLifecycle(t *testing.T) {
	rec := &recorder{}
	win := &fakeWindow{rec: rec, frames: 1}
	newRenderer := func(core.Window, core.Config) (core.Renderer, error) { return &fakeRenderer{rec}, nil }

	if err := core.Run(&testApp{rec}, core.Config{Title: "t"}, win, newRenderer); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"init", "title", "resize", "start", "ui.attach",
		"clear", "app.render", "ui.render",
		"ui.event", "resize",
		"ui.detach", "shutdown.app", "shutdown", "dispose",
	}
	if diff := cmp.Diff(want, rec.log); diff != "" {
		t.Errorf("lifecycle (-want +got):\n%s", diff)
	}
}

func TestRunWindowFailure(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("no display")
	win := &fakeWindow{rec: rec, initErr: boom}
	err := core.Run(&testApp{rec}, core.Config{}, win, func(core.Window, core.Config) (core.Renderer, error) {
		t.Fatal("renderer created after a failed Init")
		return nil, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run = %v", err)
	}
}
