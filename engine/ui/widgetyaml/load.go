package widgetyaml

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/canopy/engine/ui"
)

var logger = log.New(os.Stderr, "[widgetyaml] ", log.LstdFlags)

// Loader builds widgets from YAML nodes. Widgets created by a failed load
// are disposed before the error is returned.
type Loader struct {
	// Created receives every widget the loader builds, in creation order.
	Created func(ui.Widget)
}

// Load reads a document from r and builds its widgets under parent. The
// top-level widgets are returned in document order.
func Load(r io.Reader, parent ui.Widget) ([]ui.Widget, error) {
	var l Loader
	return l.Load(r, parent)
}

// LoadFile is Load on the named file.
func LoadFile(path string, parent ui.Widget) ([]ui.Widget, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, parent)
}

func (l *Loader) Load(r io.Reader, parent ui.Widget) ([]ui.Widget, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("widgetyaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("widgetyaml: line %d: %w: document must be a mapping", root.Line, ErrBadNode)
	}

	var top []ui.Widget
	for i := 0; i+1 < len(root.Content); i += 2 {
		w, err := l.ParseWidget(parent, root.Content[i].Value, root.Content[i+1])
		if err != nil {
			for _, w := range top {
				w.Node().Dispose()
			}
			return nil, err
		}
		top = append(top, w)
	}
	logger.Printf("loaded %d widgets", len(top))
	return top, nil
}

// ParseWidget builds one widget called name from node, then applies each
// of its entries. It satisfies ChildParser.
func (l *Loader) ParseWidget(parent ui.Widget, name string, node *yaml.Node) (ui.Widget, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("widgetyaml: line %d: %s: %w: widget must be a mapping", node.Line, name, ErrBadNode)
	}
	kind, ok := kindOf(node)
	if !ok {
		return nil, fmt.Errorf("widgetyaml: line %d: %s: %w", node.Line, name, ErrUnknownKind)
	}
	w, err := construct(kind, parent, name)
	if err != nil {
		return nil, fmt.Errorf("widgetyaml: line %d: %s: %w", node.Line, name, err)
	}
	if list, ok := parent.(*ui.WidgetList); ok {
		if err := list.AddItem(w); err != nil {
			w.Node().Dispose()
			return nil, err
		}
	}
	if l.Created != nil {
		l.Created(w)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := ParseWidgetEntry(w, node.Content[i].Value, node.Content[i+1], l.ParseWidget); err != nil {
			w.Node().Dispose()
			return nil, err
		}
	}
	return w, nil
}

func kindOf(node *yaml.Node) (ui.Kind, bool) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "kind" {
			return ui.ParseKind(node.Content[i+1].Value)
		}
	}
	return 0, false
}

func construct(kind ui.Kind, parent ui.Widget, name string) (ui.Widget, error) {
	var r ui.Rect
	switch kind {
	case ui.KindButton:
		return ui.NewButton(parent, name, r)
	case ui.KindCheckBox:
		return ui.NewCheckBox(parent, name, r)
	case ui.KindComboBox:
		return ui.NewComboBox(parent, name, r)
	case ui.KindLabel:
		return ui.NewLabel(parent, name, r)
	case ui.KindPanel:
		return ui.NewPanel(parent, name, r)
	case ui.KindSlider:
		return ui.NewSlider(parent, name, r)
	case ui.KindWidgetList:
		return ui.NewWidgetList(parent, name, r)
	}
	return nil, ErrUnknownKind
}
