package retained

import "github.com/agiangrant/pagekit/geom"

// PaneContentName is the name of the page a pane hosts.
const PaneContentName = "pane"

// Page is an ordered container of widgets. Insertion order is both the tab
// order and the hit-test order (first match wins). Every page owns one
// horizontal and one vertical scrollbar.
type Page struct {
	name   string
	window *Window
	owner  *Widget // pane or tab control hosting this page; nil at top level

	widgets []*Widget
	index   map[string]*Widget

	hscroll *Scrollbar
	vscroll *Scrollbar

	minRect geom.Rect

	// Computed by the layout pass.
	client    geom.Rect // unscrolled viewport in window coordinates
	clip      geom.Rect
	deltaW    float32
	deltaH    float32
	seenW     float32 // client size scroll adjustments were last applied at
	seenH     float32
	seen      bool
	reachable bool // every ancestor container accepts input
	shown     bool // active at every ancestor level

	detached bool
}

func newPage(name string, win *Window, owner *Widget) *Page {
	p := &Page{
		name:   name,
		window: win,
		owner:  owner,
		index:  make(map[string]*Widget),
	}
	p.hscroll = newScrollbar(p, Horizontal)
	p.vscroll = newScrollbar(p, Vertical)
	return p
}

// Name returns the page name.
func (p *Page) Name() string { return p.name }

// Window returns the window that owns the page.
func (p *Page) Window() *Window { return p.window }

// Owner returns the pane or tab control hosting the page, or nil for a
// top-level page.
func (p *Page) Owner() *Widget { return p.owner }

// Path returns the "/"-delimited address of the page. Pane content shares
// its pane's path; a tab page adds the tab name to its tab control's path.
func (p *Page) Path() string {
	switch {
	case p.owner == nil:
		return p.name
	case p.owner.kind == KindTabControl:
		return p.owner.Path() + "/" + p.name
	}
	return p.owner.Path()
}

// Len returns the number of widgets on the page.
func (p *Page) Len() int { return len(p.widgets) }

// Widgets returns the page's widgets in insertion order.
func (p *Page) Widgets() []*Widget {
	out := make([]*Widget, len(p.widgets))
	copy(out, p.widgets)
	return out
}

// Widget looks up a widget on this page by name.
func (p *Page) Widget(name string) (*Widget, bool) {
	w, ok := p.index[name]
	return w, ok
}

// HScrollbar returns the page's horizontal scrollbar.
func (p *Page) HScrollbar() *Scrollbar { return p.hscroll }

// VScrollbar returns the page's vertical scrollbar.
func (p *Page) VScrollbar() *Scrollbar { return p.vscroll }

// Scrollbar returns the page's scrollbar for the given axis.
func (p *Page) Scrollbar(axis Axis) *Scrollbar {
	if axis == Horizontal {
		return p.hscroll
	}
	return p.vscroll
}

// MinRect returns the minimal content bounds of the page.
func (p *Page) MinRect() geom.Rect { return p.minRect }

// SetMinRect sets a rectangle the scrollable content always covers, even
// when the widgets span less.
func (p *Page) SetMinRect(r geom.Rect) *Page {
	p.minRect = r
	return p
}

// Client returns the page's viewport from the last layout pass.
func (p *Page) Client() geom.Rect { return p.client }

// Clip returns the page's clip rectangle from the last layout pass.
func (p *Page) Clip() geom.Rect { return p.clip }

// Detached reports whether the page was removed from its window.
func (p *Page) Detached() bool { return p.detached }

// Add creates a widget named name. If the page already holds a widget with
// that name, the existing widget is returned unchanged.
func (p *Page) Add(name string, kind WidgetKind) *Widget {
	if w, ok := p.index[name]; ok {
		return w
	}
	w := newWidget(p, name, kind)
	switch kind {
	case KindPane:
		w.content = newPage(PaneContentName, p.window, w)
		w.control = paneControl{}
	case KindTabControl:
		w.tabs = newTabSet(w)
		w.control = tabControl{}
	case KindGroup:
		w.group = &GroupSpec{}
		w.static = true
	case KindLabel:
		w.static = true
	case KindList:
		w.control = &List{selected: -1}
	case KindToggle:
		w.control = &Toggle{}
	}
	p.widgets = append(p.widgets, w)
	p.index[name] = w
	if p.window != nil {
		p.window.Invalidate()
	}
	return w
}

// AddButton adds a push button.
func (p *Page) AddButton(name, text string) *Widget {
	w := p.Add(name, KindButton)
	if w.text == "" {
		w.text = text
	}
	return w
}

// AddLabel adds a static text label.
func (p *Page) AddLabel(name, text string) *Widget {
	w := p.Add(name, KindLabel)
	if w.text == "" {
		w.text = text
	}
	return w
}

// AddList adds a scrollable list of rows.
func (p *Page) AddList(name string, items ...string) *Widget {
	w := p.Add(name, KindList)
	if l, ok := w.control.(*List); ok && len(l.items) == 0 {
		l.SetItems(items)
	}
	return w
}

// AddToggle adds an on/off switch.
func (p *Page) AddToggle(name, text string) *Widget {
	w := p.Add(name, KindToggle)
	if w.text == "" {
		w.text = text
	}
	return w
}

// AddPane adds a pane and returns it; its content page is w.Content().
func (p *Page) AddPane(name string) *Widget {
	return p.Add(name, KindPane)
}

// AddTabControl adds a tab control; add tabs with w.Tabs().Add.
func (p *Page) AddTabControl(name string) *Widget {
	return p.Add(name, KindTabControl)
}

// AddGroup adds a passive group framing the named widgets of this page.
func (p *Page) AddGroup(name string, margin float32, members ...string) *Widget {
	w := p.Add(name, KindGroup)
	if w.group != nil && len(w.group.members) == 0 {
		w.group.margin = margin
		w.group.members = append(w.group.members, members...)
	}
	return w
}

// Remove deletes the named widget and everything it hosts. Detached widgets
// never receive another callback. Remove reports whether the name existed.
func (p *Page) Remove(name string) bool {
	w, ok := p.index[name]
	if !ok {
		return false
	}
	delete(p.index, name)
	// A fresh slice keeps walks already iterating the old one intact.
	kept := make([]*Widget, 0, len(p.widgets))
	for _, c := range p.widgets {
		if c != w {
			kept = append(kept, c)
		}
	}
	p.widgets = kept
	w.detach()
	if p.window != nil {
		p.window.Invalidate()
	}
	return true
}

// Find resolves a "/"-delimited path relative to this page, for example
// "pane/button" or "tabs/first/button".
func (p *Page) Find(path string) (*Widget, bool) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return nil, false
	}
	return Find(p, segs[:len(segs)-1], segs[len(segs)-1])
}

// isActive reports whether the page is shown: it is the window's current
// page, or every ancestor container is visible and selects it.
func (p *Page) isActive() bool {
	if p.detached {
		return false
	}
	if p.owner == nil {
		return p.window != nil && (p.window.current == p || p.window.chrome == p)
	}
	o := p.owner
	if !o.visible || o.page == nil {
		return false
	}
	if o.tabs != nil && o.tabs.Current() != p {
		return false
	}
	return o.page.isActive()
}

func (p *Page) detach() {
	p.detached = true
	for _, w := range p.widgets {
		w.detach()
	}
}
