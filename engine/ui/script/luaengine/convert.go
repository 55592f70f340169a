package luaengine

import (
	"encoding"
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/ui"
)

var (
	errorType           = reflect.TypeOf((*error)(nil)).Elem()
	widgetType          = reflect.TypeOf((*ui.Widget)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	colorType           = reflect.TypeOf(colors.Color{})
	rectType            = reflect.TypeOf(ui.Rect{})
	vec2Type            = reflect.TypeOf(ui.Vec2{})
	stringsType         = reflect.TypeOf([]string(nil))
)

// checkFunc rejects functions the delegate adapter cannot call.
func checkFunc(t reflect.Type) error {
	if t.IsVariadic() {
		return fmt.Errorf("variadic functions are not supported")
	}
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if in.Kind() == reflect.Func {
			if err := checkCallback(in); err != nil {
				return fmt.Errorf("parameter %d: %w", i+1, err)
			}
			continue
		}
		if !convertible(in) {
			return fmt.Errorf("parameter %d: unsupported type %s", i+1, in)
		}
	}
	for i := 0; i < t.NumOut(); i++ {
		out := t.Out(i)
		if out == errorType && i == t.NumOut()-1 {
			continue
		}
		if !convertible(out) {
			return fmt.Errorf("result %d: unsupported type %s", i+1, out)
		}
	}
	return nil
}

// checkCallback accepts Go function parameters a Lua function can stand
// in for: convertible arguments and no results.
func checkCallback(t reflect.Type) error {
	if t.NumOut() != 0 || t.IsVariadic() {
		return fmt.Errorf("callback %s must not return values", t)
	}
	for i := 0; i < t.NumIn(); i++ {
		if !convertible(t.In(i)) {
			return fmt.Errorf("callback %s: unsupported type %s", t, t.In(i))
		}
	}
	return nil
}

func convertible(t reflect.Type) bool {
	switch {
	case t == widgetType, t.Implements(widgetType):
		return true
	case t == colorType, t == rectType, t == vec2Type, t == stringsType:
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// delegate adapts fn to a Lua function. Missing trailing arguments are
// read as nil.
func (e *Engine) delegate(name string, fn reflect.Value) lua.LGFunction {
	ft := fn.Type()
	return func(L *lua.LState) int {
		args := make([]lua.LValue, L.GetTop())
		for i := range args {
			args[i] = L.Get(i + 1)
		}

		in := make([]reflect.Value, 0, ft.NumIn())
		pos := 0
		for i := 0; i < ft.NumIn(); i++ {
			v, n, err := e.fromLua(ft.In(i), args, pos)
			if err != nil {
				L.RaiseError("%s: argument %d: %v", name, i+1, err)
				return 0
			}
			in = append(in, v)
			pos += n
		}
		if pos < len(args) {
			L.RaiseError("%s: got %d arguments, want %d", name, len(args), pos)
			return 0
		}

		outs := fn.Call(in)
		if n := len(outs); n > 0 && ft.Out(n-1) == errorType {
			if err, _ := outs[n-1].Interface().(error); err != nil {
				L.RaiseError("%s: %v", name, err)
				return 0
			}
			outs = outs[:n-1]
		}
		for _, out := range outs {
			lv, err := e.toLua(out)
			if err != nil {
				L.RaiseError("%s: %v", name, err)
				return 0
			}
			L.Push(lv)
		}
		return len(outs)
	}
}

func arg(args []lua.LValue, i int) lua.LValue {
	if i < len(args) {
		return args[i]
	}
	return lua.LNil
}

// fromLua converts the argument at args[pos] to t. Rectangles and vectors
// may be passed as one table or as loose numbers; the second result is the
// number of arguments consumed.
func (e *Engine) fromLua(t reflect.Type, args []lua.LValue, pos int) (reflect.Value, int, error) {
	lv := arg(args, pos)
	switch {
	case t == widgetType || t.Implements(widgetType):
		v, err := toWidget(t, lv)
		return v, 1, err
	case t == colorType:
		c, err := toColor(lv)
		return reflect.ValueOf(c), 1, err
	case t == rectType:
		f, n, err := floats(args, pos, "x", "y", "w", "h")
		if err != nil {
			return reflect.Value{}, 0, err
		}
		return reflect.ValueOf(ui.Rect{X: f[0], Y: f[1], W: f[2], H: f[3]}), n, nil
	case t == vec2Type:
		f, n, err := floats(args, pos, "x", "y")
		if err != nil {
			return reflect.Value{}, 0, err
		}
		return reflect.ValueOf(ui.Vec2{X: f[0], Y: f[1]}), n, nil
	case t.Kind() == reflect.Func:
		v, err := e.toCallback(t, lv)
		return v, 1, err
	}

	if s, ok := lv.(lua.LString); ok && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, 0, err
		}
		return p.Elem(), 1, nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		v.SetBool(lua.LVAsBool(lv))
	case reflect.String:
		s, ok := lv.(lua.LString)
		if !ok {
			return reflect.Value{}, 0, fmt.Errorf("want string, got %s", lv.Type())
		}
		v.SetString(string(s))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return reflect.Value{}, 0, fmt.Errorf("want number, got %s", lv.Type())
		}
		v.SetInt(int64(n))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := lv.(lua.LNumber)
		if !ok || n < 0 {
			return reflect.Value{}, 0, fmt.Errorf("want non-negative number, got %s", lv.String())
		}
		v.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		n, ok := lv.(lua.LNumber)
		if !ok {
			return reflect.Value{}, 0, fmt.Errorf("want number, got %s", lv.Type())
		}
		v.SetFloat(float64(n))
	default:
		return reflect.Value{}, 0, fmt.Errorf("unsupported parameter type %s", t)
	}
	return v, 1, nil
}

// toWidget unwraps a widget handle. Parameters of a concrete widget type
// only accept live widgets of that type; ui.Widget parameters accept any
// handle so disposal can be queried and reported by the callee.
func toWidget(t reflect.Type, lv lua.LValue) (reflect.Value, error) {
	if lv == lua.LNil {
		return reflect.Zero(t), nil
	}
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return reflect.Value{}, fmt.Errorf("want widget, got %s", lv.Type())
	}
	w, ok := ud.Value.(ui.Widget)
	if !ok {
		return reflect.Value{}, fmt.Errorf("userdata is not a widget")
	}
	if t == widgetType {
		return reflect.ValueOf(&w).Elem(), nil
	}
	v := reflect.ValueOf(w)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("want %s, got %s", t.Elem().Name(), w.Kind())
	}
	if w.Node().IsDisposed() {
		return reflect.Value{}, fmt.Errorf("%s %q is disposed", w.Kind(), w.Node().Name())
	}
	return v, nil
}

// toColor accepts a color name or hex string, or a table of 3 or 4
// numbers, either positional or keyed r, g, b, a.
func toColor(lv lua.LValue) (colors.Color, error) {
	switch v := lv.(type) {
	case lua.LString:
		return colors.Parse(string(v))
	case *lua.LTable:
		c := colors.Color{0, 0, 0, 1}
		for i, key := range []string{"r", "g", "b", "a"} {
			f := v.RawGetInt(i + 1)
			if f == lua.LNil {
				f = v.RawGetString(key)
			}
			switch n := f.(type) {
			case lua.LNumber:
				c[i] = float32(n)
			default:
				if i < 3 {
					return colors.Color{}, fmt.Errorf("color component %s missing", key)
				}
			}
		}
		return c, nil
	}
	return colors.Color{}, fmt.Errorf("want color, got %s", lv.Type())
}

// floats reads len(keys) numbers either from a table at args[pos] or from
// consecutive number arguments.
func floats(args []lua.LValue, pos int, keys ...string) ([]float32, int, error) {
	out := make([]float32, len(keys))
	if t, ok := arg(args, pos).(*lua.LTable); ok {
		for i, key := range keys {
			f := t.RawGetInt(i + 1)
			if f == lua.LNil {
				f = t.RawGetString(key)
			}
			n, ok := f.(lua.LNumber)
			if !ok {
				return nil, 0, fmt.Errorf("field %s: want number, got %s", key, f.Type())
			}
			out[i] = float32(n)
		}
		return out, 1, nil
	}
	for i, key := range keys {
		n, ok := arg(args, pos+i).(lua.LNumber)
		if !ok {
			return nil, 0, fmt.Errorf("%s: want number or table, got %s", key, arg(args, pos+i).Type())
		}
		out[i] = float32(n)
	}
	return out, len(keys), nil
}

// toCallback wraps a Lua function as a Go function of type t. Errors
// raised by the Lua side are logged; the Go caller cannot observe them.
func (e *Engine) toCallback(t reflect.Type, lv lua.LValue) (reflect.Value, error) {
	if lv == lua.LNil {
		return reflect.Zero(t), nil
	}
	fn, ok := lv.(*lua.LFunction)
	if !ok {
		return reflect.Value{}, fmt.Errorf("want function, got %s", lv.Type())
	}
	return reflect.MakeFunc(t, func(in []reflect.Value) []reflect.Value {
		if e.L == nil {
			return nil
		}
		largs := make([]lua.LValue, len(in))
		for i, v := range in {
			lv, err := e.toLua(v)
			if err != nil {
				logger.Printf("callback argument %d: %v", i+1, err)
				lv = lua.LNil
			}
			largs[i] = lv
		}
		if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, largs...); err != nil {
			logger.Printf("callback: %v", err)
		}
		return nil
	}), nil
}

func (e *Engine) toLua(v reflect.Value) (lua.LValue, error) {
	if !v.IsValid() {
		return lua.LNil, nil
	}
	t := v.Type()
	switch {
	case t == widgetType || t.Implements(widgetType):
		if (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) && v.IsNil() {
			return lua.LNil, nil
		}
		return e.userData(v.Interface().(ui.Widget)), nil
	case t == colorType:
		c := v.Interface().(colors.Color)
		tbl := e.L.NewTable()
		for _, f := range c {
			tbl.Append(lua.LNumber(f))
		}
		return tbl, nil
	case t == rectType:
		r := v.Interface().(ui.Rect)
		tbl := e.L.NewTable()
		tbl.RawSetString("x", lua.LNumber(r.X))
		tbl.RawSetString("y", lua.LNumber(r.Y))
		tbl.RawSetString("w", lua.LNumber(r.W))
		tbl.RawSetString("h", lua.LNumber(r.H))
		return tbl, nil
	case t == vec2Type:
		p := v.Interface().(ui.Vec2)
		tbl := e.L.NewTable()
		tbl.RawSetString("x", lua.LNumber(p.X))
		tbl.RawSetString("y", lua.LNumber(p.Y))
		return tbl, nil
	case t == stringsType:
		tbl := e.L.NewTable()
		for _, s := range v.Interface().([]string) {
			tbl.Append(lua.LString(s))
		}
		return tbl, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return lua.LBool(v.Bool()), nil
	case reflect.String:
		return lua.LString(v.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(v.Float()), nil
	}
	return lua.LNil, fmt.Errorf("unsupported value type %s", t)
}
