package retained

// Per-kind behaviour: Tab control, Pane, List, Toggle.
// The dispatcher owns hit-testing and press/hover/selection state; a Control
// only interprets a click, key or wheel that already reached its widget.

// Control is the kind-specific input behaviour of a widget. Each method
// reports whether the widget changed and needs a repaint.
type Control interface {
	// Click runs when a press and release both land on the widget, or the
	// Space key activates it. x and y are window coordinates.
	Click(w *Widget, x, y float32) bool
	Key(w *Widget, key Key, mods Modifiers) bool
	// Wheel receives whole notches; positive units scroll toward the start.
	Wheel(w *Widget, units float32) bool
}

// baseControl ignores everything. Embed it to implement part of Control.
type baseControl struct{}

func (baseControl) Click(*Widget, float32, float32) bool { return false }
func (baseControl) Key(*Widget, Key, Modifiers) bool     { return false }
func (baseControl) Wheel(*Widget, float32) bool          { return false }

// ============================================================================
// Tab control
// ============================================================================

type tabControl struct{ baseControl }

func (tabControl) Click(w *Widget, x, y float32) bool {
	i := w.tabs.headerAt(x, y)
	if i < 0 || i == w.tabs.Index() {
		return false
	}
	return w.tabs.SelectIndex(i)
}

func (tabControl) Key(w *Widget, key Key, _ Modifiers) bool {
	n := w.tabs.Len()
	if n == 0 {
		return false
	}
	i := w.tabs.Index()
	switch key {
	case KeyLeft:
		i = (i - 1 + n) % n
	case KeyRight:
		i = (i + 1) % n
	case KeyHome:
		i = 0
	case KeyEnd:
		i = n - 1
	default:
		return false
	}
	if i == w.tabs.Index() {
		return false
	}
	return w.tabs.SelectIndex(i)
}

// ============================================================================
// Pane
// ============================================================================

type paneControl struct{ baseControl }

// Wheel scrolls the content vertically, or horizontally when only that axis
// overflows.
func (paneControl) Wheel(w *Widget, units float32) bool {
	step := DefaultWindowConfig().WheelStep
	if win := w.window(); win != nil {
		step = win.config.WheelStep
	}
	amount := -units * step
	c := w.content
	if c.vscroll.Overflow() {
		return c.vscroll.ScrollBy(amount)
	}
	return c.hscroll.ScrollBy(amount)
}

func (paneControl) Key(w *Widget, key Key, _ Modifiers) bool {
	c := w.content
	step := DefaultWindowConfig().WheelStep
	if win := w.window(); win != nil {
		step = win.config.WheelStep
	}
	switch key {
	case KeyUp:
		return c.vscroll.ScrollBy(-step)
	case KeyDown:
		return c.vscroll.ScrollBy(step)
	case KeyPageUp:
		return c.vscroll.ScrollBy(-c.client.Height())
	case KeyPageDown:
		return c.vscroll.ScrollBy(c.client.Height())
	case KeyLeft:
		return c.hscroll.ScrollBy(-step)
	case KeyRight:
		return c.hscroll.ScrollBy(step)
	}
	return false
}

// ============================================================================
// List
// ============================================================================

// DefaultRowHeight is the row height of a list that never set one.
const DefaultRowHeight = 20

// List is the state of a list widget: its rows, the selected row and the
// first row shown.
type List struct {
	baseControl

	items     []string
	selected  int
	first     int
	rowHeight float32
	onSelect  func(index int, item string)
}

// SetItems replaces the rows and resets the selection.
func (l *List) SetItems(items []string) {
	l.items = append(l.items[:0], items...)
	l.selected = -1
	l.first = 0
}

// Items returns the rows.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Selected returns the selected row index, or -1.
func (l *List) Selected() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.selected
}

// First returns the index of the first visible row.
func (l *List) First() int { return l.first }

// RowHeight returns the height of one row.
func (l *List) RowHeight() float32 {
	if l.rowHeight <= 0 {
		return DefaultRowHeight
	}
	return l.rowHeight
}

// SetRowHeight sets the height of one row.
func (l *List) SetRowHeight(h float32) { l.rowHeight = h }

// OnSelect sets the callback fired when the selected row changes.
func (l *List) OnSelect(fn func(index int, item string)) { l.onSelect = fn }

// Select moves the selection to row i and scrolls it into view.
func (l *List) Select(w *Widget, i int) bool {
	if i < 0 || i >= len(l.items) || i == l.selected {
		return false
	}
	l.selected = i
	rows := l.visibleRows(w)
	switch {
	case i < l.first:
		l.first = i
	case i >= l.first+rows:
		l.first = i - rows + 1
	}
	if l.onSelect != nil {
		l.onSelect(i, l.items[i])
	}
	return true
}

func (l *List) visibleRows(w *Widget) int {
	if w == nil {
		return len(l.items)
	}
	rows := int(w.rendered.Height() / l.RowHeight())
	return max(rows, 1)
}

func (l *List) maxFirst(w *Widget) int {
	return max(0, len(l.items)-l.visibleRows(w))
}

func (l *List) Click(w *Widget, x, y float32) bool {
	if !w.rendered.Contains(x, y) {
		return false
	}
	row := l.first + int((y-w.rendered.Top)/l.RowHeight())
	return l.Select(w, row)
}

func (l *List) Key(w *Widget, key Key, _ Modifiers) bool {
	if len(l.items) == 0 {
		return false
	}
	switch key {
	case KeyUp:
		if l.selected < 0 {
			return l.Select(w, len(l.items)-1)
		}
		return l.Select(w, l.selected-1)
	case KeyDown:
		return l.Select(w, l.selected+1)
	case KeyHome:
		return l.Select(w, 0)
	case KeyEnd:
		return l.Select(w, len(l.items)-1)
	case KeyPageUp:
		return l.Select(w, max(0, l.selected-l.visibleRows(w)))
	case KeyPageDown:
		return l.Select(w, min(len(l.items)-1, l.selected+l.visibleRows(w)))
	}
	return false
}

// Wheel moves the first visible row; the selection stays.
func (l *List) Wheel(w *Widget, units float32) bool {
	next := l.first - int(units)
	next = max(0, min(next, l.maxFirst(w)))
	if next == l.first {
		return false
	}
	l.first = next
	return true
}

// ============================================================================
// Toggle
// ============================================================================

// Toggle is the state of an on/off switch.
type Toggle struct {
	baseControl

	on       bool
	onChange func(on bool)
}

// On reports whether the switch is on.
func (t *Toggle) On() bool { return t.on }

// SetOn sets the switch without firing the change callback.
func (t *Toggle) SetOn(on bool) { t.on = on }

// OnChange sets the callback fired when a click flips the switch.
func (t *Toggle) OnChange(fn func(on bool)) { t.onChange = fn }

func (t *Toggle) Click(*Widget, float32, float32) bool {
	t.on = !t.on
	if t.onChange != nil {
		t.onChange(t.on)
	}
	return true
}

// ListOf returns the list state of a list widget.
func ListOf(w *Widget) (*List, bool) {
	l, ok := w.control.(*List)
	return l, ok
}

// ToggleOf returns the switch state of a toggle widget.
func ToggleOf(w *Widget) (*Toggle, bool) {
	t, ok := w.control.(*Toggle)
	return t, ok
}
