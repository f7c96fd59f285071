package retained

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/agiangrant/pagekit/geom"
)

// ErrNoRenderer is returned when a window is created or painted without a
// renderer.
var ErrNoRenderer = errors.New("retained: no renderer")

// ChromePageName names the page holding the caption buttons.
const ChromePageName = "chrome"

// Caption button names on the chrome page.
const (
	CloseButton    = "close"
	MaximizeButton = "maximize"
	MinimizeButton = "minimize"
)

// captionButtonWidth is the width of one caption button.
const captionButtonWidth = 46

// WindowConfig holds the window geometry and layout constants.
type WindowConfig struct {
	Title     string  `toml:"title" yaml:"title"`
	Width     float32 `toml:"width" yaml:"width"`
	Height    float32 `toml:"height" yaml:"height"`
	MinWidth  float32 `toml:"min_width" yaml:"min_width"`
	MinHeight float32 `toml:"min_height" yaml:"min_height"`

	// DPIScale converts pointer movement into scrollbar track units.
	DPIScale float32 `toml:"dpi_scale" yaml:"dpi_scale"`

	// Chrome draws a caption strip with close, maximize and minimize buttons.
	Chrome        bool    `toml:"chrome" yaml:"chrome"`
	CaptionHeight float32 `toml:"caption_height" yaml:"caption_height"`

	// Tolerance shrinks the client rectangle of nested pages so their
	// content stays inside the container's border.
	Tolerance          float32 `toml:"tolerance" yaml:"tolerance"`
	TabStripHeight     float32 `toml:"tab_strip_height" yaml:"tab_strip_height"`
	TabHeaderWidth     float32 `toml:"tab_header_width" yaml:"tab_header_width"`
	ScrollbarThickness float32 `toml:"scrollbar_thickness" yaml:"scrollbar_thickness"`

	// WheelStep is how far one wheel notch scrolls a pane.
	WheelStep float32 `toml:"wheel_step" yaml:"wheel_step"`
}

// DefaultWindowConfig returns the default window configuration.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:              "pagekit",
		Width:              800,
		Height:             600,
		DPIScale:           1,
		Chrome:             true,
		CaptionHeight:      30,
		Tolerance:          1,
		TabStripHeight:     25,
		TabHeaderWidth:     96,
		ScrollbarThickness: 10,
		WheelStep:          40,
	}
}

// withDefaults fills zero fields from DefaultWindowConfig. Chrome is taken
// as given.
func (c WindowConfig) withDefaults() WindowConfig {
	d := DefaultWindowConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.DPIScale <= 0 {
		c.DPIScale = d.DPIScale
	}
	if c.CaptionHeight <= 0 {
		c.CaptionHeight = d.CaptionHeight
	}
	if c.Tolerance < 0 {
		c.Tolerance = 0
	}
	if c.TabStripHeight <= 0 {
		c.TabStripHeight = d.TabStripHeight
	}
	if c.TabHeaderWidth <= 0 {
		c.TabHeaderWidth = d.TabHeaderWidth
	}
	if c.ScrollbarThickness <= 0 {
		c.ScrollbarThickness = d.ScrollbarThickness
	}
	if c.WheelStep <= 0 {
		c.WheelStep = d.WheelStep
	}
	return c
}

// Window owns a set of top-level pages, one of which is current, plus the
// chrome page with the caption buttons. The first page added becomes current.
type Window struct {
	ctx    *Context
	config WindowConfig
	logger *slog.Logger

	pages     []*Page
	pageIndex map[string]*Page
	current   *Page
	chrome    *Page

	width, height float32

	events *EventDispatcher
	timers *TimerRegistry

	renderer    Renderer
	created     bool
	needsRedraw bool

	onEvent    func(InputEvent) bool
	onClose    func()
	onMaximize func()
	onMinimize func()
	onResize   func(width, height float32)
}

// NewWindow creates a window that has not been shown yet. Pages, widgets and
// timers may be added before Create.
func NewWindow(ctx *Context, cfg WindowConfig) *Window {
	if ctx == nil {
		ctx = NewContext(nil, nil)
	}
	cfg = cfg.withDefaults()
	win := &Window{
		ctx:         ctx,
		config:      cfg,
		logger:      ctx.Logger().With("window", cfg.Title),
		pageIndex:   make(map[string]*Page),
		width:       cfg.Width,
		height:      cfg.Height,
		needsRedraw: true,
	}
	win.events = newEventDispatcher(win)
	win.timers = newTimerRegistry(win)
	win.chrome = newPage(ChromePageName, win, nil)
	if cfg.Chrome {
		win.addCaptionButtons()
	}
	return win
}

func (win *Window) addCaptionButtons() {
	right := win.config.Width
	anchored := geom.ResizePolicy{PercX: 100}
	buttons := []struct {
		name, text string
		fn         func()
	}{
		{CloseButton, "x", win.closeClicked},
		{MaximizeButton, "[]", func() {
			if win.onMaximize != nil {
				win.onMaximize()
			}
		}},
		{MinimizeButton, "_", func() {
			if win.onMinimize != nil {
				win.onMinimize()
			}
		}},
	}
	for i, b := range buttons {
		left := right - float32(i+1)*captionButtonWidth
		w := win.chrome.AddButton(b.name, b.text)
		w.chrome = true
		w.design = geom.Rect{Left: left, Top: 0, Right: left + captionButtonWidth, Bottom: win.config.CaptionHeight}
		w.policy = anchored
		w.onClick = b.fn
	}
}

func (win *Window) closeClicked() {
	if win.onClose != nil {
		win.onClose()
		return
	}
	win.Close()
}

// Config returns the window configuration.
func (win *Window) Config() WindowConfig { return win.config }

// Context returns the process context the window was created with.
func (win *Window) Context() *Context { return win.ctx }

// Logger returns the window's logger.
func (win *Window) Logger() *slog.Logger { return win.logger }

// Size returns the current window size.
func (win *Window) Size() (width, height float32) { return win.width, win.height }

// Events returns the window's input dispatcher.
func (win *Window) Events() *EventDispatcher { return win.events }

// Timers returns the window's timer registry.
func (win *Window) Timers() *TimerRegistry { return win.timers }

// Chrome returns the page holding the caption buttons.
func (win *Window) Chrome() *Page { return win.chrome }

// Created reports whether Create succeeded and Close has not run since.
func (win *Window) Created() bool { return win.created }

// OnClose sets the callback run by the close button instead of Close.
func (win *Window) OnClose(fn func()) { win.onClose = fn }

// OnMaximize sets the callback run by the maximize button.
func (win *Window) OnMaximize(fn func()) { win.onMaximize = fn }

// OnMinimize sets the callback run by the minimize button.
func (win *Window) OnMinimize(fn func()) { win.onMinimize = fn }

// OnResize sets the callback run after the window size changes.
func (win *Window) OnResize(fn func(width, height float32)) { win.onResize = fn }

// AddPage creates a top-level page, or returns the existing one.
func (win *Window) AddPage(name string) *Page {
	if p, ok := win.pageIndex[name]; ok {
		return p
	}
	p := newPage(name, win, nil)
	win.pages = append(win.pages, p)
	win.pageIndex[name] = p
	if win.current == nil {
		win.current = p
	}
	win.Invalidate()
	return p
}

// Page looks up a top-level page by name.
func (win *Window) Page(name string) (*Page, bool) {
	p, ok := win.pageIndex[name]
	return p, ok
}

// Pages returns the top-level pages in the order they were added.
func (win *Window) Pages() []*Page {
	out := make([]*Page, len(win.pages))
	copy(out, win.pages)
	return out
}

// CurrentPage returns the page receiving input, or nil.
func (win *Window) CurrentPage() *Page { return win.current }

// ShowPage makes the named page current. Hover and press state on the page
// being left is dropped. It reports whether the page exists.
func (win *Window) ShowPage(name string) bool {
	p, ok := win.pageIndex[name]
	if !ok {
		win.logger.Debug("show page: no such page", "page", name)
		return false
	}
	if p == win.current {
		return true
	}
	if win.current != nil {
		clearTransient(win.current)
	}
	win.current = p
	win.Invalidate()
	return true
}

// RemovePage removes a top-level page and everything on it. If it was
// current, the first remaining page becomes current.
func (win *Window) RemovePage(name string) bool {
	p, ok := win.pageIndex[name]
	if !ok {
		return false
	}
	delete(win.pageIndex, name)
	kept := make([]*Page, 0, len(win.pages))
	for _, q := range win.pages {
		if q != p {
			kept = append(kept, q)
		}
	}
	win.pages = kept
	p.detach()
	if win.current == p {
		win.current = nil
		if len(win.pages) > 0 {
			win.current = win.pages[0]
		}
	}
	win.Invalidate()
	return true
}

// Create attaches the renderer and timer host, initialising the shared
// context on first use and starting timers added earlier. host may be nil
// when the window needs no timers.
func (win *Window) Create(renderer Renderer, host TimerHost) error {
	if renderer == nil {
		return ErrNoRenderer
	}
	if win.created {
		return nil
	}
	if err := win.ctx.Acquire(); err != nil {
		return fmt.Errorf("create window %q: %w", win.config.Title, err)
	}
	win.renderer = renderer
	if err := win.timers.attach(host); err != nil {
		win.timers.detach()
		win.renderer = nil
		win.ctx.Release()
		return fmt.Errorf("create window %q: %w", win.config.Title, err)
	}
	win.created = true
	win.Invalidate()
	win.logger.Debug("window created", "width", win.width, "height", win.height)
	return nil
}

// Close discards renderer resources, stops timers and releases the shared
// context. The widget tree is kept; Create may be called again.
func (win *Window) Close() {
	if !win.created {
		return
	}
	win.discardAll()
	win.events.reset()
	win.timers.detach()
	win.renderer = nil
	win.created = false
	win.ctx.Release()
	win.logger.Debug("window closed")
}

// Resize sets the window size, clamped to the configured minimum. Scroll
// positions of top-level pages are adjusted at once; nested pages follow on
// the next layout pass. It reports whether the size changed.
func (win *Window) Resize(width, height float32) bool {
	width = max(width, win.config.MinWidth, 0)
	height = max(height, win.config.MinHeight, 0)
	if width == win.width && height == win.height {
		return false
	}
	win.width, win.height = width, height
	cw, ch := win.clientRect().Size()
	for _, p := range win.pages {
		p.noteClientSize(cw, ch)
	}
	win.Invalidate()
	if win.onResize != nil {
		win.onResize(width, height)
	}
	return true
}

// Invalidate schedules a repaint.
func (win *Window) Invalidate() { win.needsRedraw = true }

// NeedsRedraw reports whether something changed since the last paint.
func (win *Window) NeedsRedraw() bool { return win.needsRedraw }

// Find resolves a "page/container/.../widget" address. The first segment
// names a top-level page (or the chrome page).
func (win *Window) Find(path string) (*Widget, bool) {
	segs := SplitPath(path)
	if len(segs) < 2 {
		return nil, false
	}
	p, ok := win.pageIndex[segs[0]]
	if !ok {
		if segs[0] != ChromePageName {
			return nil, false
		}
		p = win.chrome
	}
	return Find(p, segs[1:len(segs)-1], segs[len(segs)-1])
}

// Enable enables or disables the widget at path. Unresolved paths are
// ignored; the result reports whether the path resolved.
func (win *Window) Enable(path string, enabled bool) bool {
	w, ok := win.resolve("enable", path)
	if ok {
		w.SetEnabled(enabled)
	}
	return ok
}

// Show shows or hides the widget at path. Unresolved paths are ignored.
func (win *Window) Show(path string, visible bool) bool {
	w, ok := win.resolve("show", path)
	if ok {
		w.SetVisible(visible)
	}
	return ok
}

// Focus gives the keyboard selection to the widget at path. Unresolved paths
// and widgets that cannot take input are ignored.
func (win *Window) Focus(path string) bool {
	w, ok := win.resolve("focus", path)
	if !ok || !w.interactive() {
		return false
	}
	win.events.setSelected(w)
	return true
}

func (win *Window) resolve(op, path string) (*Widget, bool) {
	w, ok := win.Find(path)
	if !ok {
		win.logger.Debug(op+": path not found", "path", path)
	}
	return w, ok
}
