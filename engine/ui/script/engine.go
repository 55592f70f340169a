// Package script binds a scripting engine to the widget tree. The binding
// is generic over the engine so the scripting technology can be swapped
// without touching widget semantics.
package script

import (
	"errors"
	"log"
	"os"

	"github.com/hubastard/canopy/engine/settings"
	"github.com/hubastard/canopy/engine/ui"
)

var logger = log.New(os.Stderr, "[script] ", log.LstdFlags)

var (
	ErrAlreadyInitialized = errors.New("script: environment already initialized")
	ErrNotInitialized     = errors.New("script: environment not initialized")
	ErrInvalidParent      = errors.New("script: invalid parent widget")
	ErrWidgetReleased     = errors.New("script: widget already released")
	ErrWidgetDisposed     = errors.New("script: widget already disposed")
	ErrNilWidget          = ui.ErrNilWidget
)

// Engine is the capability a scripting engine offers the environment.
//
// SetNamespaces selects the namespace later AddCDelegate and AddValue calls
// register into; no names selects the global namespace. AddCDelegate
// exposes a Go function, whose parameter and result types the engine
// converts. Run executes a script file; a nil error means success.
type Engine interface {
	Init() error
	Dispose() error
	Run(path string) error
	SetNamespaces(names ...string)
	AddCDelegate(name string, fn any) error
	AddValue(name string, v any) error
}

// Window is the read-only view of the game window scripts can query.
type Window interface {
	X() int
	Y() int
	Width() int
	Height() int
	AspectRatio() float32
	DisplayMode() settings.DisplayMode
}
