package platform_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/platform"
	"github.com/hubastard/canopy/engine/settings"
)

type fakeSurface struct {
	calls  []string
	swaps  int
	closed bool
	emit   func(core.Event)
}

func (s *fakeSurface) record(c string) { s.calls = append(s.calls, c) }

func (s *fakeSurface) SetSize(w, h int)                { s.record("size") }
func (s *fakeSurface) SetFullscreen(on bool, w, h int) { s.record("fullscreen") }
func (s *fakeSurface) SetDecorated(on bool)            { s.record("decorated") }
func (s *fakeSurface) SetSwapInterval(n int)           { s.record("swap") }
func (s *fakeSurface) SetTitle(title string)           { s.record("title") }
func (s *fakeSurface) Pos() (int, int)                 { return 30, 40 }
func (s *fakeSurface) FramebufferSize() (int, int)     { return 1600, 900 }
func (s *fakeSurface) SwapBuffers()                    { s.swaps++ }
func (s *fakeSurface) PollEvents()                     {}
func (s *fakeSurface) ShouldClose() bool               { return s.closed }
func (s *fakeSurface) Destroy()                        { s.record("destroy") }

func newWindow(t *testing.T) (*platform.GameWindow, *fakeSurface, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.toml")
	surf := &fakeSurface{}
	open := func(_ settings.DisplayMode, _ string, emit func(core.Event)) (platform.Surface, error) {
		surf.emit = emit
		return surf, nil
	}
	return platform.NewGameWindowWith(settings.NewStore(path), open), surf, path
}

func TestInitReadsSettings(t *testing.T) {
	w, surf, path := newWindow(t)
	if err := os.WriteFile(path, []byte("ScreenWidth = 800\nScreenHeight = 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	if w.Width() != 800 || w.Height() != 400 || w.AspectRatio() != 2 {
		t.Errorf("window %dx%d ratio %v", w.Width(), w.Height(), w.AspectRatio())
	}
	if diff := cmp.Diff([]string{"swap"}, surf.calls); diff != "" {
		t.Errorf("Init calls (-want +got):\n%s", diff)
	}
	if w.X() != 30 || w.Y() != 40 {
		t.Errorf("position = %d,%d", w.X(), w.Y())
	}
	if err := w.Init(); !errors.Is(err, platform.ErrAlreadyOpen) {
		t.Errorf("second Init = %v", err)
	}
}

func TestInitFailure(t *testing.T) {
	boom := errors.New("no display")
	w := platform.NewGameWindowWith(settings.NewStore(filepath.Join(t.TempDir(), "app.toml")),
		func(settings.DisplayMode, string, func(core.Event)) (platform.Surface, error) { return nil, boom })
	if err := w.Init(); !errors.Is(err, boom) {
		t.Fatalf("Init = %v", err)
	}
	if w.IsOpen() || !w.ShouldClose() {
		t.Error("failed window reports open")
	}
}

func TestSettersApplyMinimalChanges(t *testing.T) {
	w, surf, _ := newWindow(t)
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	surf.calls = nil

	w.SetScreenSize(settings.DefaultScreenWidth, settings.DefaultScreenHeight, false)
	w.SetFullscreen(false, false)
	w.SetBorderless(false, false)
	w.SetSwapInterval(settings.VSync, false)
	if len(surf.calls) != 0 {
		t.Fatalf("unchanged state touched the surface: %v", surf.calls)
	}

	w.SetScreenSize(1024, 768, false)
	w.SetFullscreen(true, false)
	w.SetBorderless(true, false)
	w.SetSwapInterval(settings.ValueCap, false)
	w.SetBorderless(true, true)
	want := []string{"size", "fullscreen", "decorated", "swap", "decorated"}
	if diff := cmp.Diff(want, surf.calls); diff != "" {
		t.Errorf("surface calls (-want +got):\n%s", diff)
	}

	mode := w.DisplayMode()
	if mode.ScreenWidth != 1024 || !mode.IsFullscreen || !mode.IsBorderless || mode.SwapInterval != settings.ValueCap {
		t.Errorf("mode = %+v", mode)
	}
}

func TestDisposeSavesChangedMode(t *testing.T) {
	w, surf, path := newWindow(t)
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	w.SetMaxFPS(144)
	if err := w.Dispose(); err != nil {
		t.Fatal(err)
	}

	if surf.calls[len(surf.calls)-1] != "destroy" {
		t.Errorf("surface not destroyed: %v", surf.calls)
	}
	got, err := settings.NewStore(path).Read()
	if err != nil {
		t.Fatal(err)
	}
	if got.MaxFPS != 144 {
		t.Errorf("saved MaxFPS = %v", got.MaxFPS)
	}
}

func TestDisposeDefaultsWritesNothing(t *testing.T) {
	w, _, path := newWindow(t)
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	if err := w.Dispose(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("defaults were written: %v", err)
	}
}

func TestDoubleDisposeFails(t *testing.T) {
	w, surf, path := newWindow(t)
	if err := w.Dispose(); !errors.Is(err, platform.ErrNotOpen) {
		t.Errorf("Dispose before Init = %v, want ErrNotOpen", err)
	}
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	w.SetMaxFPS(30)
	if err := w.Dispose(); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	if err := w.Dispose(); !errors.Is(err, platform.ErrNotOpen) {
		t.Errorf("second Dispose = %v, want ErrNotOpen", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("second Dispose saved again: %v", err)
	}
	destroys := 0
	for _, c := range surf.calls {
		if c == "destroy" {
			destroys++
		}
	}
	if destroys != 1 {
		t.Errorf("surface destroyed %d times, want 1", destroys)
	}
}

func TestResizeEventTracksScreenSize(t *testing.T) {
	w, surf, _ := newWindow(t)
	var seen []core.Event
	w.SetEventCallback(func(ev core.Event) { seen = append(seen, ev) })
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	surf.emit(core.EventResize{W: 640, H: 480})
	if w.Width() != 640 || w.Height() != 480 {
		t.Errorf("size after resize = %dx%d", w.Width(), w.Height())
	}
	if len(seen) != 1 {
		t.Errorf("callback saw %d events", len(seen))
	}
}

func TestSyncSwapsAndTitle(t *testing.T) {
	w, surf, _ := newWindow(t)
	w.Sync(time.Millisecond)
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	w.Sync(time.Millisecond)
	if surf.swaps != 1 {
		t.Errorf("swaps = %d, want 1", surf.swaps)
	}

	w.SetTitle("")
	if w.Title() != platform.DefaultTitle {
		t.Errorf("empty title gave %q", w.Title())
	}
}
