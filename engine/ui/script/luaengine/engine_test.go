package luaengine_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/ui"
	"github.com/hubastard/canopy/engine/ui/script"
	"github.com/hubastard/canopy/engine/ui/script/luaengine"
)

func newEnv(t *testing.T) (*script.ViewEnvironment[*luaengine.Engine], *ui.Viewport) {
	t.Helper()
	vp := ui.NewViewport("root", ui.Rect{W: 800, H: 600}, nil)
	env := script.New(luaengine.New)
	if err := env.Init(vp, nil); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = env.Dispose() })
	return env, vp
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "view.lua")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func global(env *script.ViewEnvironment[*luaengine.Engine], name string) lua.LValue {
	return env.Engine().L.GetGlobal(name)
}

func TestScriptBuildsWidgets(t *testing.T) {
	env, vp := newEnv(t)
	err := env.Run(writeScript(t, `
local port = UI.View.port
local panel = UI.View.makePanel(port, "panel", 0, 0, 200, 100)
local button = UI.View.makeButton(panel, "ok", {10, 10, 50, 20})
button:setText("OK")
Button.setBackColor(button, "#ff0000")
panel:setColor({0, 0, 1})

local x, y = button:getPosition()
assert(x == 10 and y == 10, "initial position")
panel:setPosition(5, 5)
x, y = button:getPosition()
assert(x == 15 and y == 15, "moved position")
assert(button:getParent() == panel, "parent handle")
assert(port == UI.View.port, "stable handles")
kind = button:getKind()
`))
	if err != nil {
		t.Fatal(err)
	}

	owned := env.Owned()
	if len(owned) != 2 {
		t.Fatalf("ledger has %d widgets, want 2", len(owned))
	}
	panel, ok := owned[0].(*ui.Panel)
	if !ok || panel.Parent() != ui.Widget(vp) {
		t.Fatalf("first widget = %v, want a panel under the viewport", owned[0])
	}
	button, ok := owned[1].(*ui.Button)
	if !ok {
		t.Fatalf("second widget = %v, want a button", owned[1])
	}
	if button.Text() != "OK" || button.BackColor() != colors.Red {
		t.Errorf("button text %q color %v", button.Text(), button.BackColor())
	}
	if panel.Color() != colors.Blue {
		t.Errorf("panel color = %v, want blue", panel.Color())
	}
	if got := global(env, "kind"); got != lua.LString("Button") {
		t.Errorf("kind = %v", got)
	}
}

func TestScriptErrorsSurface(t *testing.T) {
	env, _ := newEnv(t)
	err := env.Run(writeScript(t, `UI.View.makeButton(UI.View.port, "x", "not a rect")`))
	if err == nil || !strings.Contains(err.Error(), "makeButton") {
		t.Errorf("Run = %v, want a makeButton error", err)
	}
	if len(env.Owned()) != 0 {
		t.Errorf("failed call left %d widgets", len(env.Owned()))
	}

	if err := env.Run(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("running a missing file succeeded")
	}
}

func TestScriptDestroy(t *testing.T) {
	env, _ := newEnv(t)
	err := env.Run(writeScript(t, `
local b = UI.View.makeButton(nil, "b", 0, 0, 10, 10)
UI.View.destroyWidget(b)
assert(b:isDisposed(), "destroyed widget is disposed")

local ok, err = pcall(UI.View.destroyWidget, b)
assert(not ok and string.find(tostring(err), "released"), "double destroy")

ok = pcall(Button.setText, b, "late")
assert(not ok, "disposed widget accepted")
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(env.Owned()) != 0 {
		t.Errorf("ledger has %d widgets", len(env.Owned()))
	}
}

func TestDisposeCallbackReentersView(t *testing.T) {
	env, _ := newEnv(t)
	err := env.Run(writeScript(t, `
local a = UI.View.makePanel(nil, "a", 0, 0, 10, 10)
local b = UI.View.makePanel(nil, "b", 0, 0, 10, 10)
a:onDispose(function(w)
  assert(w == a)
  UI.View.destroyWidget(b)
  spawned = UI.View.makeLabel(nil, "spawned", 0, 0, 10, 10)
end)
UI.View.destroyWidget(a)
assert(b:isDisposed(), "callback destroyed b")
assert(spawned ~= nil, "callback made a widget")
`))
	if err != nil {
		t.Fatal(err)
	}
	owned := env.Owned()
	if len(owned) != 1 || owned[0].Node().Name() != "spawned" {
		t.Errorf("ledger = %v, want [spawned]", owned)
	}
}

func TestScriptCallbacks(t *testing.T) {
	env, _ := newEnv(t)
	err := env.Run(writeScript(t, `
box = UI.View.makeCheckBox(UI.View.port, "box", 0, 0, 20, 20)
changes = 0
box:onValueChange(function(w, v)
  assert(w == box)
  changes = changes + 1
  last = v
end)
`))
	if err != nil {
		t.Fatal(err)
	}
	box := env.Owned()[0].(*ui.CheckBox)
	box.Toggle()

	if got := global(env, "changes"); got != lua.LNumber(1) {
		t.Errorf("changes = %v, want 1", got)
	}
	if got := global(env, "last"); got != lua.LTrue {
		t.Errorf("last = %v, want true", got)
	}
}

func TestScriptConstants(t *testing.T) {
	env, _ := newEnv(t)
	err := env.Run(writeScript(t, `
assert(DockState.FILL == 5)
assert(ClippingState.HIDDEN == 1)
assert(TextAlign.CENTER == 8)
assert(Window == nil)

local p = UI.View.makePanel(UI.View.port, "p", 0, 0, 10, 10)
p:setDock("fill", 0)
local state = p:getDock()
assert(state == DockState.FILL)
w, h = p:getDimensions()
`))
	if err != nil {
		t.Fatal(err)
	}
	if w, h := global(env, "w"), global(env, "h"); w != lua.LNumber(800) || h != lua.LNumber(600) {
		t.Errorf("filled panel = %v x %v, want 800 x 600", w, h)
	}
}

func TestScriptTimeout(t *testing.T) {
	vp := ui.NewViewport("root", ui.Rect{}, nil)
	env := script.New(luaengine.NewWithTimeout(50 * time.Millisecond))
	if err := env.Init(vp, nil); err != nil {
		t.Fatal(err)
	}
	defer env.Dispose()

	if err := env.Run(writeScript(t, `while true do end`)); err == nil {
		t.Fatal("endless script finished")
	}
}

func TestEngineRejectsBadRegistrations(t *testing.T) {
	e := luaengine.New()
	if err := e.AddValue("x", 1); !errors.Is(err, luaengine.ErrNotInitialized) {
		t.Errorf("AddValue before Init = %v", err)
	}
	if err := e.Init(); err != nil {
		t.Fatal(err)
	}
	defer e.Dispose()

	if err := e.AddCDelegate("f", func(map[string]int) {}); err == nil {
		t.Error("map parameter accepted")
	}
	if err := e.AddCDelegate("f", 42); err == nil {
		t.Error("non-function accepted")
	}
	if err := e.AddCDelegate("f", func(cb func() int) {}); err == nil {
		t.Error("callback with results accepted")
	}

	e.SetNamespaces("A", "B")
	if err := e.AddValue("answer", 42); err != nil {
		t.Fatal(err)
	}
	e.SetNamespaces()
	a, _ := e.L.GetGlobal("A").(*lua.LTable)
	if a == nil {
		t.Fatal("namespace table A missing")
	}
	b, _ := a.RawGetString("B").(*lua.LTable)
	if b == nil || b.RawGetString("answer") != lua.LNumber(42) {
		t.Error("A.B.answer not registered")
	}
}
