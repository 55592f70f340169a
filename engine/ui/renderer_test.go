package ui_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

func TestDrawablesFollowAttachment(t *testing.T) {
	root := newViewport()
	r := root.Renderer()
	button := must(ui.NewButton(nil, "button", ui.Rect{W: 10, H: 10}))(t)

	if n := r.Registered(button); n != 0 {
		t.Fatalf("detached button has %d drawables", n)
	}
	if err := root.AddWidget(button); err != nil {
		t.Fatal(err)
	}
	if n := r.Registered(button); n != 2 {
		t.Errorf("attached button has %d drawables, want 2", n)
	}

	root.RemoveWidget(button)
	if n := r.Registered(button); n != 0 {
		t.Errorf("removed button has %d drawables", n)
	}
	if n := r.Remove(button); n != 0 {
		t.Errorf("second Remove = %d, want 0", n)
	}
	if n := r.Remove(nil); n != 0 {
		t.Errorf("Remove(nil) = %d, want 0", n)
	}
}

func TestSubtreeAttachesWithParent(t *testing.T) {
	root := newViewport()
	panel := must(ui.NewPanel(nil, "panel", ui.Rect{W: 100, H: 100}))(t)
	label := must(ui.NewLabel(panel, "label", ui.Rect{W: 100, H: 20}))(t)

	if err := root.AddWidget(panel); err != nil {
		t.Fatal(err)
	}
	if label.Renderer() != root.Renderer() {
		t.Error("grandchild was not attached to the viewport renderer")
	}
}

func TestDrawOrderSkipsHidden(t *testing.T) {
	root := newViewport()
	panel := must(ui.NewPanel(root, "panel", ui.Rect{X: 10, Y: 10, W: 100, H: 50}))(t)
	panel.SetColor(colors.Red)
	label := must(ui.NewLabel(panel, "label", ui.Rect{W: 100, H: 20}))(t)
	label.SetText("hi")

	var c recordingCanvas
	root.Draw(&c)
	want := []drawOp{
		{Op: "rect", Rect: ui.Rect{X: 10, Y: 10, W: 100, H: 50}, Color: colors.Red},
		{Op: "text", Rect: ui.Rect{X: 10, Y: 13.5}, Text: "hi", Color: colors.White},
	}
	if diff := cmp.Diff(want, c.ops); diff != "" {
		t.Errorf("draw ops (-want +got):\n%s", diff)
	}

	panel.SetClipping(ui.ClippingHidden)
	c = recordingCanvas{}
	root.Draw(&c)
	if len(c.ops) != 0 {
		t.Errorf("hidden subtree drew %v", c.ops)
	}
}

func TestDefaultFontComesFromRenderer(t *testing.T) {
	font := text.Default()
	root := ui.NewViewport("root", ui.Rect{W: 100, H: 100}, font)
	label := must(ui.NewLabel(root, "label", ui.Rect{W: 100, H: 20}))(t)
	label.SetText("x")

	var c recordingCanvas
	root.Draw(&c)
	if len(c.fonts) != 1 || c.fonts[0] != font {
		t.Fatalf("label drew with %v, want the renderer default", c.fonts)
	}

	own := text.Default()
	label.SetFont(own)
	c = recordingCanvas{}
	root.Draw(&c)
	if len(c.fonts) != 1 || c.fonts[0] != own {
		t.Errorf("label drew with %v, want its own font", c.fonts)
	}
}

func TestRefreshPublishesSnapshots(t *testing.T) {
	root := newViewport()
	button := must(ui.NewButton(root, "button", ui.Rect{W: 40, H: 20}))(t)
	button.SetText("ok")

	var before recordingCanvas
	root.Draw(&before)

	button.SetBackColor(colors.Blue)
	root.Renderer().Refresh()

	var after recordingCanvas
	root.Draw(&after)
	if diff := cmp.Diff(before.ops, after.ops, cmpopts.IgnoreFields(drawOp{}, "Color")); diff != "" {
		t.Errorf("geometry changed (-before +after):\n%s", diff)
	}
	if after.ops[0].Color != colors.Blue {
		t.Errorf("back color = %v, want blue", after.ops[0].Color)
	}
}

func TestWordWrappedLabel(t *testing.T) {
	root := newViewport()
	label := must(ui.NewLabel(root, "label", ui.Rect{W: 40, H: 40}))(t)
	label.SetText("aa bb cc")
	label.SetWrap(true)

	var c recordingCanvas
	root.Draw(&c)
	if len(c.ops) != 1 || c.ops[0].Text != "aa bb\ncc" {
		t.Errorf("wrapped ops = %v", c.ops)
	}
}
