// Package pagekit is a retained-mode widget toolkit. Windows hold named pages
// of widgets; panes, tab controls and groups nest further pages inside them.
// The core lays widgets out, routes input and decides what to paint. A host
// and a Renderer supply the platform.
//
// This package re-exports the types most programs need. See the retained,
// scene and geom packages for the full API.
package pagekit

import (
	"context"
	"errors"

	"github.com/agiangrant/pagekit/internal/raster"
	"github.com/agiangrant/pagekit/internal/term"
	"github.com/agiangrant/pagekit/retained"
	"github.com/agiangrant/pagekit/scene"
)

type (
	// Window is a top-level window.
	Window = retained.Window
	// WindowConfig configures a window's geometry and layout constants.
	WindowConfig = retained.WindowConfig
	// Page is a named set of widgets.
	Page = retained.Page
	// Widget is a node of a page.
	Widget = retained.Widget
	// Context is shared renderer state for a group of windows.
	Context = retained.Context
	// InputEvent is a normalized input notification.
	InputEvent = retained.InputEvent
)

// DefaultWindowConfig returns sensible defaults for a new window.
func DefaultWindowConfig() WindowConfig {
	return retained.DefaultWindowConfig()
}

// NewWindow creates a window. A nil ctx gets a private context.
func NewWindow(ctx *Context, cfg WindowConfig) *Window {
	return retained.NewWindow(ctx, cfg)
}

// Open loads a TOML or YAML scene document and builds its window.
func Open(path string) (*Window, error) {
	doc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.NewWindow(nil)
}

// RunTerminal shows win in the controlling terminal until ctx ends, Ctrl+C
// is pressed or the window's close button is clicked.
func RunTerminal(ctx context.Context, win *Window) error {
	screen, err := term.NewScreen()
	if err != nil {
		return err
	}
	return term.NewHost(screen, win, term.DefaultOptions()).Run(ctx)
}

// SavePNG paints the current page of win into a PNG at path, using the
// window's current size. The window must not already be created.
func SavePNG(win *Window, path string) error {
	if win.Created() {
		return errors.New("pagekit: window already has a renderer")
	}
	w, h := win.Size()
	r := raster.New(int(w), int(h), win.Logger())
	if err := win.Create(r, nil); err != nil {
		return err
	}
	defer win.Close()
	for range 2 {
		if err := win.Paint(); err != nil {
			return err
		}
	}
	return r.SavePNG(path)
}

// SetVerbose switches package logging to debug level.
func SetVerbose(v bool) { retained.SetVerbose(v) }
