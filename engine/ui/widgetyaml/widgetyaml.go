// Package widgetyaml builds widget trees from YAML documents.
//
// A document maps widget names to widget nodes:
//
//	menu:
//	  kind: Panel
//	  destRect: [0, 0, 200, 300]
//	  color: "#202020"
//	  children:
//	    play:
//	      kind: Button
//	      destRect: [10, 10, 180, 40]
//	      text: Play
package widgetyaml

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/canopy/engine/colors"
	"github.com/hubastard/canopy/engine/text"
	"github.com/hubastard/canopy/engine/ui"
)

var (
	ErrUnknownKey  = errors.New("widgetyaml: unknown key")
	ErrUnknownKind = errors.New("widgetyaml: unknown widget kind")
	ErrBadNode     = errors.New("widgetyaml: malformed node")
)

// ChildParser builds the child called name from node under parent.
type ChildParser func(parent ui.Widget, name string, node *yaml.Node) (ui.Widget, error)

func ParseClippingState(name string) (ui.ClippingState, bool) { return ui.ParseClippingState(name) }
func ParseDockState(name string) (ui.DockState, bool)         { return ui.ParseDockState(name) }

// ParseWidgetEntry applies the property key with value node to w. Keys
// shared by every widget are handled here; kind-specific keys are passed
// to the widget's own setters. Children are built with parseChild.
func ParseWidgetEntry(w ui.Widget, key string, node *yaml.Node, parseChild ChildParser) error {
	err := parseEntry(w, key, node, parseChild)
	if err != nil {
		return fmt.Errorf("widgetyaml: line %d: %s: %w", node.Line, key, err)
	}
	return nil
}

func parseEntry(w ui.Widget, key string, node *yaml.Node, parseChild ChildParser) error {
	n := w.Node()
	switch key {
	case "kind":
		return nil
	case "name":
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		n.SetName(s)
	case "position":
		f, err := floats(node, 2)
		if err != nil {
			return err
		}
		n.SetPosition(f[0], f[1])
	case "dimensions":
		f, err := floats(node, 2)
		if err != nil {
			return err
		}
		n.SetDimensions(f[0], f[1])
	case "destRect":
		f, err := floats(node, 4)
		if err != nil {
			return err
		}
		n.SetDestRect(ui.Rect{X: f[0], Y: f[1], W: f[2], H: f[3]})
	case "anchor":
		a, err := parseAnchor(node)
		if err != nil {
			return err
		}
		n.SetAnchor(a)
	case "dock":
		d, err := parseDock(node)
		if err != nil {
			return err
		}
		n.SetDock(d)
	case "clipping":
		var c ui.ClippingState
		if err := node.Decode(&c); err != nil {
			return err
		}
		n.SetClipping(c)
	case "enabled":
		var on bool
		if err := node.Decode(&on); err != nil {
			return err
		}
		if on {
			n.Enable()
		} else {
			n.Disable()
		}
	case "children":
		return parseChildren(w, node, parseChild)
	default:
		return parseKindEntry(w, key, node)
	}
	return nil
}

func parseChildren(parent ui.Widget, node *yaml.Node, parseChild ChildParser) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: children must be a mapping", ErrBadNode)
	}
	if parseChild == nil {
		return fmt.Errorf("%w: no child parser", ErrBadNode)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if _, err := parseChild(parent, node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// parseAnchor accepts a mapping of edge flags or a list of edge names.
func parseAnchor(node *yaml.Node) (ui.AnchorStyle, error) {
	var a ui.AnchorStyle
	switch node.Kind {
	case yaml.MappingNode:
		var m struct {
			Left   bool `yaml:"left"`
			Top    bool `yaml:"top"`
			Right  bool `yaml:"right"`
			Bottom bool `yaml:"bottom"`
		}
		if err := node.Decode(&m); err != nil {
			return a, err
		}
		return ui.AnchorStyle{Left: m.Left, Top: m.Top, Right: m.Right, Bottom: m.Bottom}, nil
	case yaml.SequenceNode:
		var edges []string
		if err := node.Decode(&edges); err != nil {
			return a, err
		}
		for _, e := range edges {
			switch e {
			case "left":
				a.Left = true
			case "top":
				a.Top = true
			case "right":
				a.Right = true
			case "bottom":
				a.Bottom = true
			default:
				return a, fmt.Errorf("%w: anchor edge %q", ErrBadNode, e)
			}
		}
		return a, nil
	}
	return a, fmt.Errorf("%w: anchor must be a mapping or a list", ErrBadNode)
}

// parseDock accepts a bare state name or a mapping with state and size.
func parseDock(node *yaml.Node) (ui.DockStyle, error) {
	var d ui.DockStyle
	if node.Kind == yaml.ScalarNode {
		err := node.Decode(&d.State)
		return d, err
	}
	var m struct {
		State ui.DockState `yaml:"state"`
		Size  float32      `yaml:"size"`
	}
	if err := node.Decode(&m); err != nil {
		return d, err
	}
	return ui.DockStyle{State: m.State, Size: m.Size}, nil
}

func floats(node *yaml.Node, n int) ([]float32, error) {
	var f []float32
	if err := node.Decode(&f); err != nil {
		return nil, err
	}
	if len(f) != n {
		return nil, fmt.Errorf("%w: want %d numbers, got %d", ErrBadNode, n, len(f))
	}
	return f, nil
}

func color(node *yaml.Node) (colors.Color, error) {
	if node.Kind == yaml.SequenceNode {
		var f []float32
		if err := node.Decode(&f); err != nil {
			return colors.Color{}, err
		}
		switch len(f) {
		case 3:
			return colors.Color{f[0], f[1], f[2], 1}, nil
		case 4:
			return colors.Color{f[0], f[1], f[2], f[3]}, nil
		}
		return colors.Color{}, fmt.Errorf("%w: color needs 3 or 4 components", ErrBadNode)
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return colors.Color{}, err
	}
	return colors.Parse(s)
}

// Interfaces matched by the kind-specific keys.
type (
	texter        interface{ SetText(string) }
	textColorer   interface{ SetTextColor(colors.Color) }
	textAligner   interface{ SetTextAlign(text.Align) }
	backColorer   interface{ SetBackColor(colors.Color) }
	colorer       interface{ SetColor(colors.Color) }
	hoverColorer  interface{ SetHoverColor(colors.Color) }
)

func parseKindEntry(w ui.Widget, key string, node *yaml.Node) error {
	withColor := func(set func(colors.Color)) error {
		c, err := color(node)
		if err != nil {
			return err
		}
		set(c)
		return nil
	}

	switch key {
	case "text":
		if t, ok := w.(texter); ok {
			var s string
			if err := node.Decode(&s); err != nil {
				return err
			}
			t.SetText(s)
			return nil
		}
	case "textColor":
		if t, ok := w.(textColorer); ok {
			return withColor(t.SetTextColor)
		}
	case "textAlign":
		if t, ok := w.(textAligner); ok {
			var a text.Align
			if err := node.Decode(&a); err != nil {
				return err
			}
			t.SetTextAlign(a)
			return nil
		}
	case "backColor":
		if t, ok := w.(backColorer); ok {
			return withColor(t.SetBackColor)
		}
	case "color":
		if t, ok := w.(colorer); ok {
			return withColor(t.SetColor)
		}
	case "hoverColor":
		if t, ok := w.(hoverColorer); ok {
			return withColor(t.SetHoverColor)
		}
	}

	switch w := w.(type) {
	case *ui.Button:
		switch key {
		case "backHoverColor":
			return withColor(w.SetBackHoverColor)
		case "textHoverColor":
			return withColor(w.SetTextHoverColor)
		}
	case *ui.CheckBox:
		switch key {
		case "checked":
			var on bool
			if err := node.Decode(&on); err != nil {
				return err
			}
			w.SetChecked(on)
			return nil
		case "boxColor":
			return withColor(w.SetBoxColor)
		case "boxCheckedColor":
			return withColor(w.SetBoxCheckedColor)
		}
	case *ui.ComboBox:
		switch key {
		case "mainColor":
			return withColor(w.SetMainColor)
		case "itemColor":
			return withColor(w.SetItemColor)
		case "items":
			var items []string
			if err := node.Decode(&items); err != nil {
				return err
			}
			for _, it := range items {
				w.AddItem(it)
			}
			return nil
		case "selected":
			var s string
			if err := node.Decode(&s); err != nil {
				return err
			}
			if !w.SelectItem(s) {
				return fmt.Errorf("%w: no item %q", ErrBadNode, s)
			}
			return nil
		}
	case *ui.Label:
		if key == "wrap" {
			var on bool
			if err := node.Decode(&on); err != nil {
				return err
			}
			w.SetWrap(on)
			return nil
		}
	case *ui.Slider:
		return parseSliderEntry(w, key, node)
	case *ui.WidgetList:
		if key == "spacing" {
			var s float32
			if err := node.Decode(&s); err != nil {
				return err
			}
			w.SetSpacing(s)
			return nil
		}
	}
	return fmt.Errorf("%w for %s", ErrUnknownKey, w.Kind())
}

func parseSliderEntry(s *ui.Slider, key string, node *yaml.Node) error {
	switch key {
	case "range":
		f, err := floats(node, 2)
		if err != nil {
			return err
		}
		return s.SetRange(f[0], f[1])
	case "value", "step":
		var v float32
		if err := node.Decode(&v); err != nil {
			return err
		}
		if key == "value" {
			s.SetValue(v)
		} else {
			s.SetStep(v)
		}
		return nil
	case "vertical":
		var on bool
		if err := node.Decode(&on); err != nil {
			return err
		}
		s.SetVertical(on)
		return nil
	}
	return fmt.Errorf("%w for %s", ErrUnknownKey, s.Kind())
}
