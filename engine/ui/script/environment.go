package script

import (
	"fmt"
	"sync"

	"github.com/hubastard/canopy/engine/profiler"
	"github.com/hubastard/canopy/engine/ui"
)

// ViewEnvironment exposes widget construction to the scripts run by an
// engine of type E. Widgets made through it are owned: they are kept in a
// ledger, oldest first, until destroyed or until Dispose.
type ViewEnvironment[E Engine] struct {
	newEngine func() E

	mu        sync.Mutex
	ready     bool
	disposing bool
	env       E
	viewport  *ui.Viewport
	window    Window
	owned     []ui.Widget
	ids       map[ui.WidgetID]struct{}

	// released outlives Dispose so destroying a widget a second time is
	// still reported after the environment is initialized again.
	released map[ui.WidgetID]struct{}
}

// New returns an environment that allocates its engine with newEngine on
// every Init.
func New[E Engine](newEngine func() E) *ViewEnvironment[E] {
	return &ViewEnvironment[E]{
		newEngine: newEngine,
		ids:       make(map[ui.WidgetID]struct{}),
		released:  make(map[ui.WidgetID]struct{}),
	}
}

// Init allocates the engine and registers the view API: the UI.View
// functions, then each kind's functions, then the UI.View constants, then
// each kind's constants. window may be nil, in which case the Window
// namespace is left out.
func (v *ViewEnvironment[E]) Init(viewport *ui.Viewport, window Window) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ready || v.disposing {
		return ErrAlreadyInitialized
	}

	env := v.newEngine()
	if err := env.Init(); err != nil {
		return fmt.Errorf("script: init engine: %w", err)
	}
	v.env, v.viewport, v.window = env, viewport, window

	if err := v.registerFuncs(); err != nil {
		v.abort()
		return fmt.Errorf("script: register functions: %w", err)
	}
	if err := v.registerConsts(); err != nil {
		v.abort()
		return fmt.Errorf("script: register constants: %w", err)
	}
	v.ready = true
	return nil
}

func (v *ViewEnvironment[E]) abort() {
	if err := v.env.Dispose(); err != nil {
		logger.Printf("dispose after failed init: %v", err)
	}
	var zero E
	v.env, v.viewport, v.window = zero, nil, nil
}

func (v *ViewEnvironment[E]) registerFuncs() error {
	v.env.SetNamespaces("UI", "View")
	own := []binding{
		{"makeButton", v.MakeButton},
		{"makeCheckBox", v.MakeCheckBox},
		{"makeComboBox", v.MakeComboBox},
		{"makeLabel", v.MakeLabel},
		{"makePanel", v.MakePanel},
		{"makeSlider", v.MakeSlider},
		{"makeWidgetList", v.MakeWidgetList},
		{"destroyWidget", v.DestroyWidget},
	}
	for _, b := range own {
		if err := v.env.AddCDelegate(b.name, b.value); err != nil {
			return fmt.Errorf("UI.View.%s: %w", b.name, err)
		}
	}
	v.env.SetNamespaces()

	for _, t := range tables {
		if t.funcs == nil {
			continue
		}
		if t.namespace == windowNamespace && v.window == nil {
			continue
		}
		v.env.SetNamespaces(t.namespace)
		for _, b := range t.funcs(v.window) {
			if err := v.env.AddCDelegate(b.name, b.value); err != nil {
				return fmt.Errorf("%s.%s: %w", t.namespace, b.name, err)
			}
		}
		v.env.SetNamespaces()
	}
	return nil
}

func (v *ViewEnvironment[E]) registerConsts() error {
	v.env.SetNamespaces("UI", "View")
	if err := v.env.AddValue("port", v.viewport); err != nil {
		return fmt.Errorf("UI.View.port: %w", err)
	}
	v.env.SetNamespaces()

	for _, t := range tables {
		for _, g := range t.consts {
			v.env.SetNamespaces(g.namespace)
			for _, b := range g.values {
				if err := v.env.AddValue(b.name, b.value); err != nil {
					return fmt.Errorf("%s.%s: %w", g.namespace, b.name, err)
				}
			}
			v.env.SetNamespaces()
		}
	}
	return nil
}

// Dispose destroys every owned widget oldest first, then disposes the
// engine. Calling it without a successful Init fails. Dispose handlers
// still reach the engine, but making widgets from them fails with
// ErrNotInitialized.
func (v *ViewEnvironment[E]) Dispose() error {
	v.mu.Lock()
	if !v.ready {
		v.mu.Unlock()
		return ErrNotInitialized
	}
	v.ready, v.disposing = false, true
	owned := v.owned
	v.owned = nil
	for _, w := range owned {
		v.release(w)
	}
	env := v.env
	v.mu.Unlock()

	for _, w := range owned {
		w.Node().Dispose()
	}
	err := env.Dispose()

	v.mu.Lock()
	var zero E
	v.env, v.viewport, v.window = zero, nil, nil
	v.disposing = false
	v.mu.Unlock()

	logger.Printf("environment disposed, released %d widgets", len(owned))
	if err != nil {
		return fmt.Errorf("script: dispose engine: %w", err)
	}
	return nil
}

// Run executes the script at path. Script failures come back as the
// engine's error.
func (v *ViewEnvironment[E]) Run(path string) error {
	v.mu.Lock()
	env, ready := v.env, v.ready
	v.mu.Unlock()
	if !ready {
		return ErrNotInitialized
	}
	defer profiler.Start("script.Run")()
	return env.Run(path)
}

// Engine returns the engine allocated by the last Init, or the zero E.
func (v *ViewEnvironment[E]) Engine() E {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.env
}

// Viewport returns the viewport given to Init.
func (v *ViewEnvironment[E]) Viewport() *ui.Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport
}

// IsInitialized reports whether Init succeeded and Dispose has not begun.
func (v *ViewEnvironment[E]) IsInitialized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

// Owned returns the ledger, oldest first.
func (v *ViewEnvironment[E]) Owned() []ui.Widget {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]ui.Widget, len(v.owned))
	copy(out, v.owned)
	return out
}

// Owns reports whether w is in the ledger.
func (v *ViewEnvironment[E]) Owns(w ui.Widget) bool {
	if w == nil {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.ids[w.Node().ID()]
	return ok
}

func (v *ViewEnvironment[E]) MakeButton(parent ui.Widget, name string, rect ui.Rect) (*ui.Button, error) {
	return makeWidget(v, parent, name, rect, ui.NewButton)
}

func (v *ViewEnvironment[E]) MakeCheckBox(parent ui.Widget, name string, rect ui.Rect) (*ui.CheckBox, error) {
	return makeWidget(v, parent, name, rect, ui.NewCheckBox)
}

func (v *ViewEnvironment[E]) MakeComboBox(parent ui.Widget, name string, rect ui.Rect) (*ui.ComboBox, error) {
	return makeWidget(v, parent, name, rect, ui.NewComboBox)
}

func (v *ViewEnvironment[E]) MakeLabel(parent ui.Widget, name string, rect ui.Rect) (*ui.Label, error) {
	return makeWidget(v, parent, name, rect, ui.NewLabel)
}

func (v *ViewEnvironment[E]) MakePanel(parent ui.Widget, name string, rect ui.Rect) (*ui.Panel, error) {
	return makeWidget(v, parent, name, rect, ui.NewPanel)
}

func (v *ViewEnvironment[E]) MakeSlider(parent ui.Widget, name string, rect ui.Rect) (*ui.Slider, error) {
	return makeWidget(v, parent, name, rect, ui.NewSlider)
}

func (v *ViewEnvironment[E]) MakeWidgetList(parent ui.Widget, name string, rect ui.Rect) (*ui.WidgetList, error) {
	return makeWidget(v, parent, name, rect, ui.NewWidgetList)
}

func makeWidget[E Engine, W ui.Widget](v *ViewEnvironment[E], parent ui.Widget, name string, rect ui.Rect, newWidget func(ui.Widget, string, ui.Rect) (W, error)) (W, error) {
	var zero W
	v.mu.Lock()
	if !v.ready {
		v.mu.Unlock()
		return zero, ErrNotInitialized
	}
	err := v.checkParent(parent)
	v.mu.Unlock()
	if err != nil {
		return zero, err
	}

	w, err := newWidget(parent, name, rect)
	if err != nil {
		return zero, fmt.Errorf("script: make %q: %w", name, err)
	}

	v.mu.Lock()
	if !v.ready {
		v.mu.Unlock()
		w.Node().Dispose()
		return zero, ErrNotInitialized
	}
	v.owned = append(v.owned, w)
	v.ids[w.Node().ID()] = struct{}{}
	v.mu.Unlock()
	return w, nil
}

// checkParent rejects parents that can no longer hold children and parents
// living under a different viewport. A nil parent makes a root widget.
func (v *ViewEnvironment[E]) checkParent(parent ui.Widget) error {
	if parent == nil {
		return nil
	}
	n := parent.Node()
	if n.IsDisposed() {
		return fmt.Errorf("%w: %q is disposed", ErrInvalidParent, n.Name())
	}
	if root, ok := n.Root().(*ui.Viewport); ok && root != v.viewport {
		return fmt.Errorf("%w: %q belongs to another viewport", ErrInvalidParent, n.Name())
	}
	return nil
}

// DestroyWidget disposes w. Owned widgets additionally leave the ledger
// and are released; destroying a released widget again fails, as does
// destroying a foreign widget that is already disposed.
func (v *ViewEnvironment[E]) DestroyWidget(w ui.Widget) error {
	if w == nil {
		return ErrNilWidget
	}
	if err := v.takeForDestroy(w); err != nil {
		return err
	}
	// Dispose handlers may call back into the environment.
	w.Node().Dispose()
	return nil
}

func (v *ViewEnvironment[E]) takeForDestroy(w ui.Widget) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := w.Node().ID()
	if _, ok := v.ids[id]; ok {
		for i, o := range v.owned {
			if o.Node().ID() == id {
				v.owned = append(v.owned[:i], v.owned[i+1:]...)
				break
			}
		}
		v.release(w)
		return nil
	}
	if _, ok := v.released[id]; ok {
		return ErrWidgetReleased
	}
	if w.Node().IsDisposed() {
		return ErrWidgetDisposed
	}
	return nil
}

// release moves an owned widget's ID from the ledger to the released set.
// The caller removes it from the owned slice and disposes it after
// unlocking.
func (v *ViewEnvironment[E]) release(w ui.Widget) {
	id := w.Node().ID()
	delete(v.ids, id)
	v.released[id] = struct{}{}
}
