// Package retained implements the widget tree of a native window: pages
// holding widgets, panes and tab controls, their layout under window
// resizes, per-page scrollbars, and the hit-testing and keyboard focus rules
// that route input to widgets.
//
// The package is single-threaded. A Window and everything it owns must only
// be touched from the UI thread that delivers its input events; nothing here
// locks.
package retained

import (
	"sync/atomic"

	"github.com/agiangrant/pagekit/geom"
)

// WidgetID uniquely identifies a widget for the lifetime of the process.
type WidgetID uint64

var nextWidgetID atomic.Uint64

func newWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

// WidgetKind identifies the type of widget.
type WidgetKind string

const (
	KindButton     WidgetKind = "button"
	KindLabel      WidgetKind = "label"
	KindList       WidgetKind = "list"
	KindToggle     WidgetKind = "toggle"
	KindPane       WidgetKind = "pane"
	KindTabControl WidgetKind = "tabcontrol"
	KindGroup      WidgetKind = "group"
	KindCustom     WidgetKind = "custom"
)

// Style carries the text and colour attributes handed to the renderer.
// Colours are 0xRRGGBBAA; zero means "renderer default".
type Style struct {
	Color      uint32  `toml:"color" yaml:"color"`
	Background uint32  `toml:"background" yaml:"background"`
	Border     uint32  `toml:"border" yaml:"border"`
	FontSize   float32 `toml:"font_size" yaml:"font_size"`
}

// Widget is a node of a page. Panes, tab controls and groups are widgets too;
// their extra state hangs off the content, tabs and group fields.
type Widget struct {
	id   WidgetID
	name string
	kind WidgetKind
	page *Page

	design geom.Rect
	policy geom.ResizePolicy

	text  string
	style Style
	data  any

	visible  bool
	enabled  bool
	static   bool
	pressed  bool
	hot      bool
	selected bool
	menuOpen bool
	chrome   bool
	tabStop  bool
	detached bool

	onClick func()
	control Control

	content *Page
	tabs    *TabSet
	group   *GroupSpec

	// Computed by the layout pass.
	local    geom.Rect // resized, unscrolled, relative to the page origin
	rendered geom.Rect
	clip     geom.Rect
	overhang geom.Rect // how far the last drawing spilled past rendered, per side

	resourcesReady bool
}

func newWidget(p *Page, name string, kind WidgetKind) *Widget {
	return &Widget{
		id:      newWidgetID(),
		name:    name,
		kind:    kind,
		page:    p,
		visible: true,
		enabled: true,
	}
}

// ID returns the widget's process-unique identifier.
func (w *Widget) ID() WidgetID { return w.id }

// Name returns the widget's name within its page.
func (w *Widget) Name() string { return w.name }

// Kind returns the widget's type.
func (w *Widget) Kind() WidgetKind { return w.kind }

// Page returns the page that owns this widget.
func (w *Widget) Page() *Page { return w.page }

// Path returns the "/"-delimited address of the widget, starting with the
// name of its top-level page.
func (w *Widget) Path() string {
	if w.page == nil {
		return w.name
	}
	return w.page.Path() + "/" + w.name
}

// Rect returns the design-time rectangle, relative to the page origin.
func (w *Widget) Rect() geom.Rect { return w.design }

// SetRect sets the design-time rectangle.
func (w *Widget) SetRect(r geom.Rect) *Widget {
	w.design = r
	w.invalidate()
	return w
}

// ResizePolicy returns how the widget follows its page's size changes.
func (w *Widget) ResizePolicy() geom.ResizePolicy { return w.policy }

// SetResizePolicy sets how the widget follows its page's size changes.
func (w *Widget) SetResizePolicy(p geom.ResizePolicy) *Widget {
	w.policy = p
	w.invalidate()
	return w
}

// Rendered returns the rectangle computed by the last layout pass, in
// window coordinates.
func (w *Widget) Rendered() geom.Rect { return w.rendered }

// Clip returns the clip rectangle the widget was last laid out under.
func (w *Widget) Clip() geom.Rect { return w.clip }

// Text returns the widget's text.
func (w *Widget) Text() string { return w.text }

// SetText sets the widget's text.
func (w *Widget) SetText(text string) *Widget {
	w.text = text
	w.invalidate()
	return w
}

// Style returns the widget's style attributes.
func (w *Widget) Style() Style { return w.style }

// SetStyle sets the widget's style attributes.
func (w *Widget) SetStyle(s Style) *Widget {
	w.style = s
	w.invalidate()
	return w
}

// Data returns the user data attached to the widget.
func (w *Widget) Data() any { return w.data }

// SetData attaches arbitrary user data to the widget.
func (w *Widget) SetData(data any) *Widget {
	w.data = data
	return w
}

// Visible reports whether the widget is shown.
func (w *Widget) Visible() bool { return w.visible }

// SetVisible shows or hides the widget. Hiding a widget drops its
// pressed, hot and selected state.
func (w *Widget) SetVisible(visible bool) *Widget {
	if w.visible == visible {
		return w
	}
	w.visible = visible
	if !visible {
		w.releaseInput()
	}
	w.invalidate()
	return w
}

// Enabled reports whether the widget accepts input.
func (w *Widget) Enabled() bool { return w.enabled }

// SetEnabled enables or disables the widget. Disabling a widget drops its
// pressed, hot and selected state.
func (w *Widget) SetEnabled(enabled bool) *Widget {
	if w.enabled == enabled {
		return w
	}
	w.enabled = enabled
	if !enabled {
		w.releaseInput()
	}
	w.invalidate()
	return w
}

// Static reports whether the widget ignores pointer and keyboard input.
func (w *Widget) Static() bool { return w.static }

// SetStatic marks the widget as non-interactive.
func (w *Widget) SetStatic(static bool) *Widget {
	w.static = static
	if static {
		w.releaseInput()
	}
	return w
}

// Pressed reports whether a button press is in progress on the widget.
func (w *Widget) Pressed() bool { return w.pressed }

// Hot reports whether the pointer is over the widget.
func (w *Widget) Hot() bool { return w.hot }

// Selected reports whether the widget holds the keyboard selection.
func (w *Widget) Selected() bool { return w.selected }

// MenuOpen reports whether the widget's context menu is showing.
func (w *Widget) MenuOpen() bool { return w.menuOpen }

// SetMenuOpen records whether the widget's context menu is showing.
func (w *Widget) SetMenuOpen(open bool) *Widget {
	w.menuOpen = open
	w.invalidate()
	return w
}

// Chrome reports whether the widget is one of the window's caption buttons.
func (w *Widget) Chrome() bool { return w.chrome }

// SetTabStop makes a chrome button reachable by Tab, Space and the wheel.
func (w *Widget) SetTabStop(reachable bool) *Widget {
	w.tabStop = reachable
	return w
}

// Detached reports whether the widget was removed from its window.
func (w *Widget) Detached() bool { return w.detached }

// OnClick sets the callback fired when the widget is clicked or activated
// with the Space key.
func (w *Widget) OnClick(fn func()) *Widget {
	w.onClick = fn
	return w
}

// Control returns the kind-specific behaviour attached to the widget.
func (w *Widget) Control() Control { return w.control }

// SetControl attaches kind-specific click, key and wheel behaviour.
func (w *Widget) SetControl(c Control) *Widget {
	w.control = c
	return w
}

// Content returns the nested page of a pane, or nil.
func (w *Widget) Content() *Page { return w.content }

// Tabs returns the tab set of a tab control, or nil.
func (w *Widget) Tabs() *TabSet { return w.tabs }

// Group returns the member list of a group, or nil.
func (w *Widget) Group() *GroupSpec { return w.group }

// IsContainer reports whether the widget hosts nested pages.
func (w *Widget) IsContainer() bool {
	return w.content != nil || w.tabs != nil
}

// interactive reports whether the widget itself may take pointer or key input.
func (w *Widget) interactive() bool {
	return w.visible && w.enabled && !w.static && !w.detached
}

// reachable reports whether keyboard and wheel input may target the widget.
func (w *Widget) reachable() bool {
	return w.interactive() && (!w.chrome || w.tabStop)
}

// hits reports whether the point lies inside both the rendered rectangle
// and the clip region the widget was laid out under.
func (w *Widget) hits(x, y float32) bool {
	return w.rendered.Contains(x, y) && w.clip.Contains(x, y)
}

// activePage returns the nested page that takes part in hit-testing and
// painting: the pane content or the current tab.
func (w *Widget) activePage() *Page {
	switch {
	case w.content != nil:
		return w.content
	case w.tabs != nil:
		return w.tabs.Current()
	}
	return nil
}

// childPages returns every nested page, active or not.
func (w *Widget) childPages() []*Page {
	switch {
	case w.content != nil:
		return []*Page{w.content}
	case w.tabs != nil:
		return w.tabs.pagesInOrder()
	}
	return nil
}

func (w *Widget) window() *Window {
	if w.page == nil {
		return nil
	}
	return w.page.window
}

func (w *Widget) invalidate() {
	if win := w.window(); win != nil {
		win.Invalidate()
	}
}

// releaseInput drops transient input state held on or about the widget.
func (w *Widget) releaseInput() {
	w.pressed = false
	w.hot = false
	if win := w.window(); win != nil && win.events != nil {
		win.events.release(w)
	}
}

// detach marks the widget and everything beneath it as removed.
func (w *Widget) detach() {
	w.releaseInput()
	if win := w.window(); win != nil {
		win.discardResources(w)
	}
	w.detached = true
	w.selected = false
	for _, p := range w.childPages() {
		p.detach()
	}
}

func (w *Widget) String() string {
	return string(w.kind) + ":" + w.Path()
}
