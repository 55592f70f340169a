package platform

import (
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/settings"
)

type glfwSurface struct {
	w    *glfw.Window
	winX int
	winY int
	winW int
	winH int
}

// OpenGLFW creates a GLFW window with a current GL 3.3 core context. It must
// be called on the main thread.
func OpenGLFW(mode settings.DisplayMode, title string, emit func(core.Event)) (Surface, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if mode.IsBorderless {
		glfw.WindowHint(glfw.Decorated, glfw.False)
	}

	var monitor *glfw.Monitor
	if mode.IsFullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	win, err := glfw.CreateWindow(mode.ScreenWidth, mode.ScreenHeight, title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	gl.ClearDepth(1)
	logger.Printf("GL: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	s := &glfwSurface{w: win, winW: mode.ScreenWidth, winH: mode.ScreenHeight}
	win.SetCloseCallback(func(*glfw.Window) { emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		emit(core.EventResize{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		btn, ok := translateButton(b)
		if !ok {
			return
		}
		x, y := w.GetCursorPos()
		emit(core.EventMouseButton{Button: btn, Down: action == glfw.Press, X: x, Y: y})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		emit(core.EventKey{Key: k, Down: action != glfw.Release, Mods: translateMods(mods)})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})
	return s, nil
}

func (s *glfwSurface) SetSize(w, h int)            { s.w.SetSize(w, h) }
func (s *glfwSurface) SetDecorated(on bool)        { s.w.SetAttrib(glfw.Decorated, boolAttrib(on)) }
func (s *glfwSurface) SetSwapInterval(n int)       { glfw.SwapInterval(n) }
func (s *glfwSurface) SetTitle(title string)       { s.w.SetTitle(title) }
func (s *glfwSurface) Pos() (int, int)             { return s.w.GetPos() }
func (s *glfwSurface) FramebufferSize() (int, int) { return s.w.GetFramebufferSize() }
func (s *glfwSurface) SwapBuffers()                { s.w.SwapBuffers() }
func (s *glfwSurface) PollEvents()                 { glfw.PollEvents() }
func (s *glfwSurface) ShouldClose() bool           { return s.w.ShouldClose() }

// SetFullscreen moves the window onto the primary monitor, or back to the
// windowed placement it had before.
func (s *glfwSurface) SetFullscreen(on bool, w, h int) {
	if on {
		s.winX, s.winY = s.w.GetPos()
		s.winW, s.winH = s.w.GetSize()
		m := glfw.GetPrimaryMonitor()
		rate := glfw.DontCare
		if vm := m.GetVideoMode(); vm != nil {
			rate = vm.RefreshRate
		}
		s.w.SetMonitor(m, 0, 0, w, h, rate)
		return
	}
	s.w.SetMonitor(nil, s.winX, s.winY, s.winW, s.winH, glfw.DontCare)
}

func (s *glfwSurface) Destroy() {
	s.w.Destroy()
	glfw.Terminate()
}

func boolAttrib(on bool) int {
	if on {
		return glfw.True
	}
	return glfw.False
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	}
	return 0, false
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeySpace:
		return core.KeySpace
	case glfw.KeyEnter:
		return core.KeyEnter
	case glfw.KeyTab:
		return core.KeyTab
	case glfw.KeyUp:
		return core.KeyUp
	case glfw.KeyDown:
		return core.KeyDown
	case glfw.KeyLeft:
		return core.KeyLeft
	case glfw.KeyRight:
		return core.KeyRight
	case glfw.KeyP:
		return core.KeyP
	default:
		return core.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
