// Package luaengine runs view scripts on gopher-lua. It implements
// script.Engine: namespaces are nested global tables and Go functions are
// adapted to Lua through reflection.
package luaengine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/hubastard/canopy/engine/ui"
)

var logger = log.New(os.Stderr, "[lua] ", log.LstdFlags)

var ErrNotInitialized = errors.New("luaengine: engine not initialized")

// Engine is a Lua state plus the registration cursor used by
// SetNamespaces. It must be used from a single goroutine.
type Engine struct {
	L         *lua.LState
	Timeout   time.Duration
	namespace []string
	widgetMT  *lua.LTable
	widgets   map[ui.WidgetID]*lua.LUserData
}

// New returns an engine without an execution deadline.
func New() *Engine { return &Engine{} }

// NewWithTimeout returns a constructor for engines that abort a script
// running longer than d.
func NewWithTimeout(d time.Duration) func() *Engine {
	return func() *Engine { return &Engine{Timeout: d} }
}

func (e *Engine) Init() error {
	if e.L != nil {
		return errors.New("luaengine: engine already initialized")
	}
	e.L = lua.NewState()
	e.widgets = make(map[ui.WidgetID]*lua.LUserData)
	e.widgetMT = e.L.NewTable()
	e.L.SetField(e.widgetMT, "__index", e.L.NewFunction(e.widgetIndex))
	e.L.SetField(e.widgetMT, "__tostring", e.L.NewFunction(widgetString))
	return nil
}

func (e *Engine) Dispose() error {
	if e.L == nil {
		return ErrNotInitialized
	}
	e.L.Close()
	e.L = nil
	e.widgets = nil
	e.widgetMT = nil
	e.namespace = nil
	return nil
}

// Run executes the Lua file at path.
func (e *Engine) Run(path string) error {
	if e.L == nil {
		return ErrNotInitialized
	}
	if e.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.Timeout)
		defer cancel()
		e.L.SetContext(ctx)
		defer e.L.RemoveContext()
	}
	start := time.Now()
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("luaengine: %s: %w", path, err)
	}
	logger.Printf("ran %s in %s", path, time.Since(start).Round(time.Microsecond))
	return nil
}

func (e *Engine) SetNamespaces(names ...string) {
	e.namespace = append(e.namespace[:0], names...)
}

// AddCDelegate exposes fn under the current namespace. fn must be a
// non-variadic function whose parameter and result types the engine can
// convert; a trailing error result is raised as a Lua error.
func (e *Engine) AddCDelegate(name string, fn any) error {
	if e.L == nil {
		return ErrNotInitialized
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("luaengine: %s: not a function: %T", name, fn)
	}
	if err := checkFunc(v.Type()); err != nil {
		return fmt.Errorf("luaengine: %s: %w", name, err)
	}
	e.set(name, e.L.NewFunction(e.delegate(e.qualified(name), v)))
	return nil
}

// AddValue exposes v, converted once, under the current namespace.
func (e *Engine) AddValue(name string, v any) error {
	if e.L == nil {
		return ErrNotInitialized
	}
	lv, err := e.toLua(reflect.ValueOf(v))
	if err != nil {
		return fmt.Errorf("luaengine: %s: %w", name, err)
	}
	e.set(name, lv)
	return nil
}

func (e *Engine) set(name string, v lua.LValue) {
	if len(e.namespace) == 0 {
		e.L.SetGlobal(name, v)
		return
	}
	e.table(e.namespace).RawSetString(name, v)
}

// table returns the nested global table at path, creating missing levels.
func (e *Engine) table(path []string) *lua.LTable {
	t, ok := e.L.GetGlobal(path[0]).(*lua.LTable)
	if !ok {
		t = e.L.NewTable()
		e.L.SetGlobal(path[0], t)
	}
	for _, name := range path[1:] {
		next, ok := t.RawGetString(name).(*lua.LTable)
		if !ok {
			next = e.L.NewTable()
			t.RawSetString(name, next)
		}
		t = next
	}
	return t
}

func (e *Engine) qualified(name string) string {
	q := ""
	for _, ns := range e.namespace {
		q += ns + "."
	}
	return q + name
}

// widgetIndex resolves w:method() against the widget's kind namespace,
// then the shared Widget namespace.
func (e *Engine) widgetIndex(L *lua.LState) int {
	ud := L.CheckUserData(1)
	key := L.CheckString(2)
	w, ok := ud.Value.(ui.Widget)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	for _, ns := range []string{w.Kind().String(), "Widget"} {
		if t, ok := L.GetGlobal(ns).(*lua.LTable); ok {
			if v := t.RawGetString(key); v != lua.LNil {
				L.Push(v)
				return 1
			}
		}
	}
	L.Push(lua.LNil)
	return 1
}

func widgetString(L *lua.LState) int {
	ud := L.CheckUserData(1)
	if w, ok := ud.Value.(ui.Widget); ok {
		L.Push(lua.LString(fmt.Sprintf("%s(%q)", w.Kind(), w.Node().Name())))
		return 1
	}
	L.Push(lua.LString("widget(?)"))
	return 1
}

// userData returns the single userdata standing for w so that == holds
// between handles of the same widget.
func (e *Engine) userData(w ui.Widget) *lua.LUserData {
	id := w.Node().ID()
	if ud, ok := e.widgets[id]; ok {
		return ud
	}
	ud := e.L.NewUserData()
	ud.Value = w
	ud.Metatable = e.widgetMT
	e.widgets[id] = ud
	w.Node().Disposed.Add(func(ui.Widget, struct{}) {
		if e.widgets != nil {
			delete(e.widgets, id)
		}
	})
	return ud
}
