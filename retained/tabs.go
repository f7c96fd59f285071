package retained

import "github.com/agiangrant/pagekit/geom"

// TabSet holds the named pages of a tab control. Only the current tab takes
// part in hit-testing and painting; every tab is laid out.
type TabSet struct {
	owner   *Widget
	order   []string
	pages   map[string]*Page
	current string

	// Header rectangles from the last layout pass, parallel to order.
	headers []geom.Rect
}

func newTabSet(owner *Widget) *TabSet {
	return &TabSet{owner: owner, pages: make(map[string]*Page)}
}

// Add creates a tab named name, or returns the existing one. The first tab
// added becomes current.
func (t *TabSet) Add(name string) *Page {
	if p, ok := t.pages[name]; ok {
		return p
	}
	var win *Window
	if t.owner.page != nil {
		win = t.owner.page.window
	}
	p := newPage(name, win, t.owner)
	t.pages[name] = p
	t.order = append(t.order, name)
	if t.current == "" {
		t.current = name
	}
	t.owner.invalidate()
	return p
}

// Page looks up a tab by name.
func (t *TabSet) Page(name string) (*Page, bool) {
	p, ok := t.pages[name]
	return p, ok
}

// Names returns the tab names in insertion order.
func (t *TabSet) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of tabs.
func (t *TabSet) Len() int { return len(t.order) }

// CurrentName returns the name of the current tab, or "" if there is none.
func (t *TabSet) CurrentName() string { return t.current }

// Current returns the current tab's page, or nil.
func (t *TabSet) Current() *Page {
	if t.current == "" {
		return nil
	}
	return t.pages[t.current]
}

// Select makes name the current tab. Hover and press state of the tab that
// goes away is dropped. Select reports whether the tab exists.
func (t *TabSet) Select(name string) bool {
	if _, ok := t.pages[name]; !ok {
		return false
	}
	if name == t.current {
		return true
	}
	if old := t.Current(); old != nil {
		clearTransient(old)
	}
	t.current = name
	t.owner.invalidate()
	return true
}

// SelectIndex makes the i-th tab current; out-of-range indices are ignored.
func (t *TabSet) SelectIndex(i int) bool {
	if i < 0 || i >= len(t.order) {
		return false
	}
	return t.Select(t.order[i])
}

// Index returns the position of the current tab, or -1.
func (t *TabSet) Index() int {
	for i, n := range t.order {
		if n == t.current {
			return i
		}
	}
	return -1
}

// Remove deletes a tab and detaches its page. If it was current, the first
// remaining tab becomes current.
func (t *TabSet) Remove(name string) bool {
	p, ok := t.pages[name]
	if !ok {
		return false
	}
	delete(t.pages, name)
	kept := make([]string, 0, len(t.order))
	for _, n := range t.order {
		if n != name {
			kept = append(kept, n)
		}
	}
	t.order = kept
	p.detach()
	if t.current == name {
		t.current = ""
		if len(t.order) > 0 {
			t.current = t.order[0]
		}
	}
	t.owner.invalidate()
	return true
}

// Headers returns the tab header rectangles from the last layout pass.
func (t *TabSet) Headers() []geom.Rect {
	out := make([]geom.Rect, len(t.headers))
	copy(out, t.headers)
	return out
}

// headerAt returns the index of the header containing the point, or -1.
func (t *TabSet) headerAt(x, y float32) int {
	for i, r := range t.headers {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// layoutHeaders lays the headers left to right along the strip.
func (t *TabSet) layoutHeaders(strip geom.Rect, headerWidth float32) {
	t.headers = t.headers[:0]
	if len(t.order) == 0 || strip.IsEmpty() {
		return
	}
	width := headerWidth
	if fit := strip.Width() / float32(len(t.order)); fit < width {
		width = fit
	}
	for i := range t.order {
		left := strip.Left + float32(i)*width
		t.headers = append(t.headers, geom.Rect{Left: left, Top: strip.Top, Right: left + width, Bottom: strip.Bottom})
	}
}

func (t *TabSet) pagesInOrder() []*Page {
	out := make([]*Page, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, t.pages[n])
	}
	return out
}
