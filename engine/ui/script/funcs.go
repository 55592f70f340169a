package script

import (
	"github.com/hubastard/canopy/engine/settings"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

type binding struct {
	name  string
	value any
}

type constGroup struct {
	namespace string
	values    []binding
}

// table is the script surface of one widget kind (or of the window).
type table struct {
	namespace string
	funcs     func(win Window) []binding
	consts    []constGroup
}

const windowNamespace = "Window"

// tables is registered in order; later namespaces may shadow earlier ones.
var tables = []table{
	{namespace: "Button", funcs: buttonFuncs},
	{namespace: "CheckBox", funcs: checkBoxFuncs},
	{namespace: "ComboBox", funcs: comboBoxFuncs},
	{namespace: windowNamespace, funcs: windowFuncs, consts: []constGroup{swapIntervalConsts()}},
	{namespace: "Label", funcs: labelFuncs, consts: []constGroup{textAlignConsts()}},
	{namespace: "Panel", funcs: panelFuncs},
	{namespace: "Slider", funcs: sliderFuncs},
	{namespace: "Viewport", funcs: viewportFuncs},
	{namespace: "Widget", funcs: widgetFuncs, consts: []constGroup{dockStateConsts(), clippingStateConsts()}},
	{namespace: "WidgetList", funcs: widgetListFuncs},
}

// Namespaces lists the per-kind namespaces in registration order.
func Namespaces() []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.namespace
	}
	return out
}

func buttonFuncs(Window) []binding {
	return []binding{
		{"getText", (*ui.Button).Text},
		{"setText", (*ui.Button).SetText},
		{"getTextAlign", (*ui.Button).TextAlign},
		{"setTextAlign", (*ui.Button).SetTextAlign},
		{"setTextScale", func(b *ui.Button, x, y float32) { b.SetTextScale(ui.Vec2{X: x, Y: y}) }},
		{"getBackColor", (*ui.Button).BackColor},
		{"setBackColor", (*ui.Button).SetBackColor},
		{"getBackHoverColor", (*ui.Button).BackHoverColor},
		{"setBackHoverColor", (*ui.Button).SetBackHoverColor},
		{"getTextColor", (*ui.Button).TextColor},
		{"setTextColor", (*ui.Button).SetTextColor},
		{"getTextHoverColor", (*ui.Button).TextHoverColor},
		{"setTextHoverColor", (*ui.Button).SetTextHoverColor},
	}
}

func checkBoxFuncs(Window) []binding {
	return []binding{
		{"isChecked", (*ui.CheckBox).IsChecked},
		{"setChecked", (*ui.CheckBox).SetChecked},
		{"toggle", (*ui.CheckBox).Toggle},
		{"getText", (*ui.CheckBox).Text},
		{"setText", (*ui.CheckBox).SetText},
		{"setTextColor", (*ui.CheckBox).SetTextColor},
		{"setBoxColor", (*ui.CheckBox).SetBoxColor},
		{"setBoxHoverColor", (*ui.CheckBox).SetBoxHoverColor},
		{"setBoxCheckedColor", (*ui.CheckBox).SetBoxCheckedColor},
		{"onValueChange", func(c *ui.CheckBox, fn func(ui.Widget, bool)) { c.ValueChange.Add(fn) }},
	}
}

func comboBoxFuncs(Window) []binding {
	return []binding{
		{"addItem", (*ui.ComboBox).AddItem},
		{"insertItem", (*ui.ComboBox).InsertItem},
		{"removeItem", (*ui.ComboBox).RemoveItem},
		{"getItemCount", (*ui.ComboBox).ItemCount},
		{"getItem", func(c *ui.ComboBox, i int) (string, error) {
			items := c.Items()
			if i < 0 || i >= len(items) {
				return "", ui.ErrIndexOutOfRange
			}
			return items[i], nil
		}},
		{"select", (*ui.ComboBox).Select},
		{"selectItem", (*ui.ComboBox).SelectItem},
		{"getSelectedIndex", (*ui.ComboBox).SelectedIndex},
		{"getSelectedItem", func(c *ui.ComboBox) string { s, _ := c.SelectedItem(); return s }},
		{"isOpen", (*ui.ComboBox).IsOpen},
		{"setOpen", (*ui.ComboBox).SetOpen},
		{"setMainColor", (*ui.ComboBox).SetMainColor},
		{"setHoverColor", (*ui.ComboBox).SetHoverColor},
		{"setItemColor", (*ui.ComboBox).SetItemColor},
		{"setTextColor", (*ui.ComboBox).SetTextColor},
		{"onValueChange", func(c *ui.ComboBox, fn func(ui.Widget, string)) { c.ValueChange.Add(fn) }},
	}
}

func windowFuncs(win Window) []binding {
	return []binding{
		{"getX", win.X},
		{"getY", win.Y},
		{"getWidth", win.Width},
		{"getHeight", win.Height},
		{"getAspectRatio", win.AspectRatio},
		{"isFullscreen", func() bool { return win.DisplayMode().IsFullscreen }},
		{"isBorderless", func() bool { return win.DisplayMode().IsBorderless }},
		{"getSwapInterval", func() settings.SwapInterval { return win.DisplayMode().SwapInterval }},
		{"getMaxFPS", func() float32 { return win.DisplayMode().MaxFPS }},
	}
}

func labelFuncs(Window) []binding {
	return []binding{
		{"getText", (*ui.Label).Text},
		{"setText", (*ui.Label).SetText},
		{"getTextColor", (*ui.Label).TextColor},
		{"setTextColor", (*ui.Label).SetTextColor},
		{"getTextAlign", (*ui.Label).TextAlign},
		{"setTextAlign", (*ui.Label).SetTextAlign},
		{"setTextScale", func(l *ui.Label, x, y float32) { l.SetTextScale(ui.Vec2{X: x, Y: y}) }},
		{"getBackColor", (*ui.Label).BackColor},
		{"setBackColor", (*ui.Label).SetBackColor},
		{"setWrap", (*ui.Label).SetWrap},
	}
}

func panelFuncs(Window) []binding {
	return []binding{
		{"getColor", (*ui.Panel).Color},
		{"setColor", (*ui.Panel).SetColor},
		{"getHoverColor", (*ui.Panel).HoverColor},
		{"setHoverColor", (*ui.Panel).SetHoverColor},
	}
}

func sliderFuncs(Window) []binding {
	return []binding{
		{"getValue", (*ui.Slider).Value},
		{"setValue", (*ui.Slider).SetValue},
		{"getMin", (*ui.Slider).Min},
		{"getMax", (*ui.Slider).Max},
		{"setRange", (*ui.Slider).SetRange},
		{"getStep", (*ui.Slider).Step},
		{"setStep", (*ui.Slider).SetStep},
		{"isVertical", (*ui.Slider).IsVertical},
		{"setVertical", (*ui.Slider).SetVertical},
		{"setSlideSize", func(s *ui.Slider, w, h float32) { s.SetSlideSize(ui.Vec2{X: w, Y: h}) }},
		{"setBarColor", (*ui.Slider).SetBarColor},
		{"setSlideColor", (*ui.Slider).SetSlideColor},
		{"setSlideHoverColor", (*ui.Slider).SetSlideHoverColor},
		{"onValueChange", func(s *ui.Slider, fn func(ui.Widget, float32)) { s.ValueChange.Add(fn) }},
	}
}

func viewportFuncs(Window) []binding {
	return []binding{
		{"getCursor", func(v *ui.Viewport) (float32, float32) { c := v.Cursor(); return c.X, c.Y }},
		{"contains", (*ui.Viewport).Contains},
		{"setBackColor", (*ui.Viewport).SetBackColor},
	}
}

func widgetFuncs(Window) []binding {
	return []binding{
		{"getName", func(w ui.Widget) string { return w.Node().Name() }},
		{"setName", func(w ui.Widget, name string) { w.Node().SetName(name) }},
		{"getKind", func(w ui.Widget) string { return w.Kind().String() }},
		{"getParent", func(w ui.Widget) ui.Widget { return w.Node().Parent() }},
		{"getChildCount", func(w ui.Widget) int { return w.Node().ChildCount() }},
		{"addWidget", func(w, child ui.Widget) error { return w.Node().AddWidget(child) }},
		{"removeWidget", func(w, child ui.Widget) bool { return w.Node().RemoveWidget(child) }},
		{"getPosition", func(w ui.Widget) (float32, float32) { p := w.Node().Position(); return p.X, p.Y }},
		{"getRelativePosition", func(w ui.Widget) (float32, float32) { p := w.Node().RelativePosition(); return p.X, p.Y }},
		{"setPosition", func(w ui.Widget, x, y float32) { w.Node().SetPosition(x, y) }},
		{"getDimensions", func(w ui.Widget) (float32, float32) { d := w.Node().Dimensions(); return d.X, d.Y }},
		{"setDimensions", func(w ui.Widget, width, height float32) { w.Node().SetDimensions(width, height) }},
		{"getDestRect", func(w ui.Widget) ui.Rect { return w.Node().DestRect() }},
		{"setDestRect", func(w ui.Widget, r ui.Rect) { w.Node().SetDestRect(r) }},
		{"setAnchor", func(w ui.Widget, left, top, right, bottom bool) {
			w.Node().SetAnchor(ui.AnchorStyle{Left: left, Top: top, Right: right, Bottom: bottom})
		}},
		{"getDock", func(w ui.Widget) (ui.DockState, float32) { d := w.Node().Dock(); return d.State, d.Size }},
		{"setDock", func(w ui.Widget, state ui.DockState, size float32) {
			w.Node().SetDock(ui.DockStyle{State: state, Size: size})
		}},
		{"getClippingState", func(w ui.Widget) ui.ClippingState { return w.Node().ClippingState() }},
		{"setClippingState", func(w ui.Widget, c ui.ClippingState) { w.Node().SetClipping(c) }},
		{"isVisible", func(w ui.Widget) bool { return w.Node().IsVisible() }},
		{"enable", func(w ui.Widget) { w.Node().Enable() }},
		{"disable", func(w ui.Widget) { w.Node().Disable() }},
		{"isEnabled", func(w ui.Widget) bool { return w.Node().IsEnabled() }},
		{"isMouseIn", func(w ui.Widget) bool { return w.Node().IsMouseIn() }},
		{"isDisposed", func(w ui.Widget) bool { return w.Node().IsDisposed() }},
		{"updatePosition", func(w ui.Widget) { w.Node().UpdatePosition() }},
		{"onClick", func(w ui.Widget, fn func(ui.Widget)) {
			w.Node().MouseClick.Add(func(src ui.Widget, _ ui.MouseEvent) { fn(src) })
		}},
		{"onMouseEnter", func(w ui.Widget, fn func(ui.Widget)) {
			w.Node().MouseEnter.Add(func(src ui.Widget, _ ui.MouseEvent) { fn(src) })
		}},
		{"onMouseLeave", func(w ui.Widget, fn func(ui.Widget)) {
			w.Node().MouseLeave.Add(func(src ui.Widget, _ ui.MouseEvent) { fn(src) })
		}},
		{"onDispose", func(w ui.Widget, fn func(ui.Widget)) {
			w.Node().Disposed.Add(func(src ui.Widget, _ struct{}) { fn(src) })
		}},
	}
}

func widgetListFuncs(Window) []binding {
	return []binding{
		{"addItem", (*ui.WidgetList).AddItem},
		{"insertItem", (*ui.WidgetList).InsertItem},
		{"removeItem", (*ui.WidgetList).RemoveItem},
		{"getItemCount", (*ui.WidgetList).ItemCount},
		{"getSpacing", (*ui.WidgetList).Spacing},
		{"setSpacing", (*ui.WidgetList).SetSpacing},
		{"getContentHeight", (*ui.WidgetList).ContentHeight},
		{"setBackColor", (*ui.WidgetList).SetBackColor},
	}
}

func dockStateConsts() constGroup {
	g := constGroup{namespace: "DockState"}
	for _, d := range ui.DockStates() {
		g.values = append(g.values, binding{d.String(), d})
	}
	return g
}

func clippingStateConsts() constGroup {
	g := constGroup{namespace: "ClippingState"}
	for _, c := range ui.ClippingStates() {
		g.values = append(g.values, binding{c.String(), c})
	}
	return g
}

func textAlignConsts() constGroup {
	g := constGroup{namespace: "TextAlign"}
	for _, a := range text.Aligns() {
		g.values = append(g.values, binding{a.String(), a})
	}
	return g
}

func swapIntervalConsts() constGroup {
	g := constGroup{namespace: "SwapInterval"}
	for _, s := range []settings.SwapInterval{settings.Unlimited, settings.VSync, settings.LowSync, settings.PowerSaver, settings.ValueCap} {
		g.values = append(g.values, binding{s.String(), s})
	}
	return g
}
