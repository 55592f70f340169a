package ui_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/core"
	"github.com/hubastard/canopy/engine/ui"
)

func move(v *ui.Viewport, x, y float64) bool {
	return v.HandleEvent(core.EventMouseMove{X: x, Y: y})
}

func click(v *ui.Viewport, x, y float64) {
	v.HandleEvent(core.EventMouseMove{X: x, Y: y})
	v.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true, X: x, Y: y})
	v.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: false, X: x, Y: y})
}

func TestHoverEvents(t *testing.T) {
	root := newViewport()
	button := must(ui.NewButton(root, "button", ui.Rect{X: 10, Y: 10, W: 20, H: 20}))(t)
	var got []string
	button.MouseEnter.Add(func(ui.Widget, ui.MouseEvent) { got = append(got, "enter") })
	button.MouseLeave.Add(func(ui.Widget, ui.MouseEvent) { got = append(got, "leave") })
	button.MouseMove.Add(func(ui.Widget, ui.MouseEvent) { got = append(got, "move") })

	if move(root, 0, 0) {
		t.Error("pointer outside every widget reported as hovering")
	}
	if !move(root, 15, 15) {
		t.Error("pointer over the button not reported")
	}
	move(root, 16, 16)
	move(root, 50, 50)

	if diff := cmp.Diff([]string{"enter", "move", "move", "leave"}, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestHoverSwitchesButtonColors(t *testing.T) {
	root := newViewport()
	button := must(ui.NewButton(root, "button", ui.Rect{W: 20, H: 20}))(t)
	button.SetBackHoverColor(colors.Yellow)

	move(root, 5, 5)
	var c recordingCanvas
	root.Draw(&c)
	if len(c.ops) == 0 || c.ops[0].Color != colors.Yellow {
		t.Errorf("hovered button drew %v", c.ops)
	}
}

func TestDisabledWidgetIgnoresPointer(t *testing.T) {
	root := newViewport()
	box := must(ui.NewCheckBox(root, "box", ui.Rect{W: 20, H: 20}))(t)
	box.Disable()

	click(root, 5, 5)
	if box.IsChecked() || box.IsMouseIn() {
		t.Error("disabled check box reacted to the pointer")
	}

	box.Enable()
	click(root, 5, 5)
	if !box.IsChecked() {
		t.Error("enabled check box did not toggle")
	}
}

func TestClickRequiresReleaseInside(t *testing.T) {
	root := newViewport()
	button := must(ui.NewButton(root, "button", ui.Rect{W: 20, H: 20}))(t)
	clicks := 0
	button.MouseClick.Add(func(ui.Widget, ui.MouseEvent) { clicks++ })

	click(root, 5, 5)
	root.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 5, Y: 5})
	move(root, 50, 50)
	root.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: false, X: 50, Y: 50})

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestCheckBoxValueChange(t *testing.T) {
	root := newViewport()
	box := must(ui.NewCheckBox(root, "box", ui.Rect{W: 100, H: 20}))(t)
	var got []bool
	box.ValueChange.Add(func(_ ui.Widget, v bool) { got = append(got, v) })

	click(root, 5, 5)
	click(root, 5, 5)
	box.SetChecked(false)

	if diff := cmp.Diff([]bool{true, false}, got); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestComboBoxDropDown(t *testing.T) {
	root := newViewport()
	combo := must(ui.NewComboBox(root, "combo", ui.Rect{W: 100, H: 20}))(t)
	for _, s := range []string{"low", "medium", "high"} {
		combo.AddItem(s)
	}
	var got []string
	combo.ValueChange.Add(func(_ ui.Widget, v string) { got = append(got, v) })

	click(root, 5, 5)
	if !combo.IsOpen() {
		t.Fatal("click did not open the drop-down")
	}
	click(root, 5, 50) // rows start below the box: [20,40) low, [40,60) medium
	if combo.IsOpen() {
		t.Error("selecting an item left the drop-down open")
	}
	if item, _ := combo.SelectedItem(); item != "medium" {
		t.Errorf("selected %q, want medium", item)
	}

	if err := combo.RemoveItem(1); err != nil {
		t.Fatal(err)
	}
	if combo.SelectedIndex() != -1 {
		t.Errorf("removing the selection left index %d", combo.SelectedIndex())
	}
	if err := combo.Select(5); err == nil {
		t.Error("Select out of range succeeded")
	}
	if diff := cmp.Diff([]string{"medium"}, got); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestSliderDragAndStep(t *testing.T) {
	root := newViewport()
	s := must(ui.NewSlider(root, "slider", ui.Rect{W: 110, H: 10}))(t)
	if err := s.SetRange(0, 100); err != nil {
		t.Fatal(err)
	}
	s.SetStep(10)

	root.HandleEvent(core.EventMouseMove{X: 5, Y: 5})
	root.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 5, Y: 5})
	if s.Value() != 0 {
		t.Errorf("value at the left edge = %v, want 0", s.Value())
	}
	root.HandleEvent(core.EventMouseMove{X: 58, Y: 5})
	if s.Value() != 50 {
		t.Errorf("value mid drag = %v, want 50", s.Value())
	}
	root.HandleEvent(core.EventMouseMove{X: 300, Y: 5})
	root.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: false, X: 300, Y: 5})
	if s.Value() != 100 {
		t.Errorf("value past the right edge = %v, want 100", s.Value())
	}

	if err := s.SetRange(10, 0); err == nil {
		t.Error("inverted range accepted")
	}
}

func TestWidgetListStacksItems(t *testing.T) {
	root := newViewport()
	list := must(ui.NewWidgetList(root, "list", ui.Rect{X: 10, Y: 10, W: 100, H: 200}))(t)
	list.SetSpacing(5)
	a := must(ui.NewButton(nil, "a", ui.Rect{W: 100, H: 20}))(t)
	b := must(ui.NewButton(nil, "b", ui.Rect{W: 100, H: 30}))(t)
	c := must(ui.NewButton(nil, "c", ui.Rect{W: 100, H: 10}))(t)

	for _, w := range []ui.Widget{a, c} {
		if err := list.AddItem(w); err != nil {
			t.Fatal(err)
		}
	}
	if err := list.InsertItem(1, b); err != nil {
		t.Fatal(err)
	}

	got := []ui.Vec2{a.Position(), b.Position(), c.Position()}
	want := []ui.Vec2{{X: 10, Y: 10}, {X: 10, Y: 35}, {X: 10, Y: 70}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	if h := list.ContentHeight(); h != 70 {
		t.Errorf("content height = %v, want 70", h)
	}

	if !list.RemoveItem(b) {
		t.Fatal("RemoveItem = false")
	}
	if diff := cmp.Diff(ui.Vec2{X: 10, Y: 35}, c.Position()); diff != "" {
		t.Errorf("position after removal (-want +got):\n%s", diff)
	}
	if b.Renderer() != nil {
		t.Error("removed item still attached")
	}
}

func TestResizeEventResizesViewport(t *testing.T) {
	root := newViewport()
	panel := must(ui.NewPanel(root, "panel", ui.Rect{}))(t)
	panel.SetDock(ui.DockStyle{State: ui.DockFill})

	root.HandleEvent(core.EventResize{W: 1024, H: 768})
	if diff := cmp.Diff(ui.Rect{W: 1024, H: 768}, panel.Bounds()); diff != "" {
		t.Errorf("filled panel (-want +got):\n%s", diff)
	}
}
