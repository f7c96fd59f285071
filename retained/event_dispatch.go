package retained

// ============================================================================
// Event Dispatcher
// ============================================================================

// EventDispatcher routes pointer and keyboard input to widgets. It tracks
// which widget is under the pointer, which one a button press started on,
// which one holds the keyboard selection and which scrollbar is being
// dragged. Only the current page and the caption buttons take input.
type EventDispatcher struct {
	win *Window

	hot       *Widget // deepest widget under the pointer
	pressed   *Widget // widget where the left button went down
	selected  *Widget // keyboard selection
	spaceDown *Widget // widget pressed by the Space key
	dragging  *Scrollbar

	pointerX, pointerY float32
	wheelRest          float32 // raw wheel delta short of a whole notch
}

func newEventDispatcher(win *Window) *EventDispatcher {
	return &EventDispatcher{win: win}
}

// Hot returns the deepest widget under the pointer, or nil.
func (d *EventDispatcher) Hot() *Widget { return d.hot }

// Pressed returns the widget a pointer press is in progress on, or nil.
func (d *EventDispatcher) Pressed() *Widget { return d.pressed }

// Selected returns the widget holding the keyboard selection, or nil.
func (d *EventDispatcher) Selected() *Widget { return d.selected }

// Dragging returns the scrollbar whose thumb is being dragged, or nil.
func (d *EventDispatcher) Dragging() *Scrollbar { return d.dragging }

// ============================================================================
// Hit Testing (using the rectangles of the last layout pass)
// ============================================================================

// HitTestResult contains the result of a hit test.
type HitTestResult struct {
	Widget *Widget
	LocalX float32
	LocalY float32
	// Chain holds the containers the point passed through, outermost first.
	Chain []*Widget
}

// HitTest finds the widget at the given window coordinates: the first
// interactive widget in tree order whose rectangle and clip contain the
// point, descending into panes and current tabs. A container is the result
// only when none of its content matches. Returns nil if nothing matches.
func (d *EventDispatcher) HitTest(x, y float32) *HitTestResult {
	h := hitVisitor{x: x, y: y, chain: hitChains.get()}
	defer func() { hitChains.put(h.chain) }()

	if !d.hitTest(&h) {
		return nil
	}
	r := h.target.rendered
	chain := make([]*Widget, 0, len(h.chain))
	for _, c := range h.chain {
		if c != h.target {
			chain = append(chain, c)
		}
	}
	return &HitTestResult{
		Widget: h.target,
		LocalX: x - r.Left,
		LocalY: y - r.Top,
		Chain:  chain,
	}
}

// target returns the widget at (x, y), or nil.
func (d *EventDispatcher) target(x, y float32) *Widget {
	h := hitVisitor{x: x, y: y, chain: hitChains.get()}
	found := d.hitTest(&h)
	hitChains.put(h.chain)
	if !found {
		return nil
	}
	return h.target
}

// hitTest tries the caption buttons, then the current page.
func (d *EventDispatcher) hitTest(h *hitVisitor) bool {
	if d.win.config.Chrome {
		walk(d.win.chrome, h, walkActive)
		if h.target != nil {
			return true
		}
	}
	if cur := d.win.current; cur != nil {
		walk(cur, h, walkActive)
	}
	return h.target != nil
}

type hitVisitor struct {
	x, y   float32
	chain  []*Widget // containers entered, innermost last
	target *Widget
}

func (h *hitVisitor) enterPage(p *Page) visitAction {
	if !p.clip.Contains(h.x, h.y) {
		return visitSkipChildren
	}
	return visitContinue
}

func (h *hitVisitor) visitWidget(w *Widget) visitAction {
	if w.group != nil || !w.interactive() || !w.hits(h.x, h.y) {
		return visitSkipChildren
	}
	if w.activePage() != nil {
		h.chain = append(h.chain, w)
		return visitContinue
	}
	h.target = w
	return visitStop
}

// leavePage settles on the hosting container when nothing inside it matched.
func (h *hitVisitor) leavePage(p *Page) visitAction {
	if n := len(h.chain); n > 0 && h.chain[n-1] == p.owner {
		h.target = p.owner
		return visitStop
	}
	return visitContinue
}

// scrollbarAt returns the innermost visible scrollbar whose track contains
// the point.
func (d *EventDispatcher) scrollbarAt(x, y float32) *Scrollbar {
	var found *Scrollbar
	v := visitFuncs{
		enter: func(p *Page) visitAction {
			if !p.clip.Contains(x, y) {
				return visitSkipChildren
			}
			for _, s := range [...]*Scrollbar{p.hscroll, p.vscroll} {
				if s.Visible() && s.track.Contains(x, y) {
					found = s
				}
			}
			return visitContinue
		},
		widget: func(w *Widget) visitAction {
			if !w.interactive() || !w.hits(x, y) {
				return visitSkipChildren
			}
			return visitContinue
		},
	}
	if cur := d.win.current; cur != nil {
		walk(cur, v, walkActive)
	}
	return found
}

// ============================================================================
// Pointer Events
// ============================================================================

// PointerMove updates hover state, or moves the thumb of a dragged scrollbar.
// It reports whether a repaint is needed.
func (d *EventDispatcher) PointerMove(x, y float32) bool {
	d.pointerX, d.pointerY = x, y
	if s := d.dragging; s != nil {
		if !s.page.detached {
			return s.Drag(s.coord(x, y))
		}
		s.EndDrag()
		d.dragging = nil
	}
	return d.updateHover(x, y)
}

// updateHover recomputes the hot flag of every widget the pointer can reach.
func (d *EventDispatcher) updateHover(x, y float32) bool {
	changed := false
	set := func(w *Widget) {
		hot := w.group == nil && w.interactive() && w.page.reachable && w.page.shown && w.hits(x, y)
		if hot != w.hot {
			w.hot = hot
			changed = true
		}
	}
	if cur := d.win.current; cur != nil {
		eachWidget(cur, walkActive, set)
	}
	eachWidget(d.win.chrome, walkActive, set)

	if t := d.target(x, y); t != d.hot {
		d.hot = t
		changed = true
	}
	return changed
}

// PointerDown starts a scrollbar drag or presses the widget under the
// pointer. Only the left button is handled.
func (d *EventDispatcher) PointerDown(x, y float32, button MouseButton) bool {
	if button != MouseButtonLeft {
		return false
	}
	d.pointerX, d.pointerY = x, y

	// A drag whose release never arrived ends here; the press goes nowhere else.
	if s := d.dragging; s != nil {
		s.EndDrag()
		d.dragging = nil
		return true
	}

	if s := d.scrollbarAt(x, y); s != nil {
		pos := s.coord(x, y)
		switch {
		case s.thumb.Contains(x, y):
			if s.BeginDrag(pos, d.win.config.DPIScale) {
				d.dragging = s
				return true
			}
		default:
			// A click on the track pages toward the pointer.
			page := s.page.client.Height()
			thumbStart := s.thumb.Top
			if s.axis == Horizontal {
				page = s.page.client.Width()
				thumbStart = s.thumb.Left
			}
			if pos < thumbStart {
				page = -page
			}
			return s.ScrollBy(page)
		}
	}

	changed := d.clearPressed()
	t := d.target(x, y)
	if t == nil {
		return changed
	}
	t.pressed = true
	d.pressed = t
	if !t.IsContainer() {
		d.setSelected(t)
	}
	return true
}

// PointerUp ends a drag, or clicks the pressed widget if the release point is
// still on it. Pressed flags are cleared before the click callback runs.
func (d *EventDispatcher) PointerUp(x, y float32, button MouseButton) bool {
	if button != MouseButtonLeft {
		return false
	}
	d.pointerX, d.pointerY = x, y

	if s := d.dragging; s != nil {
		s.EndDrag()
		d.dragging = nil
		return true
	}

	w := d.pressed
	changed := d.clearPressed()
	if w == nil || !w.interactive() || !w.hits(x, y) {
		return changed
	}
	d.click(w, x, y)
	return true
}

// Wheel sends whole notches to the hot widget. A widget that does not
// scroll passes the wheel to the pane or tab control hosting it; if nothing
// takes it, the current page scrolls.
func (d *EventDispatcher) Wheel(x, y, raw float32) bool {
	if d.dragging != nil {
		return false
	}
	if (raw > 0) != (d.wheelRest > 0) {
		d.wheelRest = 0
	}
	total := d.wheelRest + raw
	units := float32(int(total / WheelDelta))
	d.wheelRest = total - units*WheelDelta
	if units == 0 {
		return false
	}
	changed := d.updateHover(x, y)

	for w := d.hot; w != nil; w = w.page.owner {
		if w.control != nil && d.reachable(w) && w.control.Wheel(w, units) {
			return true
		}
	}
	if d.hot != nil && d.hot.chrome {
		return changed
	}
	if cur := d.win.current; cur != nil && cur.vscroll.ScrollBy(-units*d.win.config.WheelStep) {
		return true
	}
	return changed
}

// ============================================================================
// Keyboard Events
// ============================================================================

// KeyDown handles Tab traversal and Space activation, and passes other keys
// to the selected widget and then to the containers hosting it.
func (d *EventDispatcher) KeyDown(key Key, mods Modifiers) bool {
	switch key {
	case KeyTab:
		return d.cycleFocus(!mods.Shift())
	case KeySpace:
		w := d.selected
		if w == nil || !d.reachable(w) || d.spaceDown == w {
			return false
		}
		d.spaceDown = w
		w.pressed = true
		return true
	}

	for w := d.selected; w != nil; w = w.page.owner {
		if w.control != nil && d.reachable(w) && w.control.Key(w, key, mods) {
			return true
		}
	}
	return false
}

// KeyUp completes a Space activation.
func (d *EventDispatcher) KeyUp(key Key, _ Modifiers) bool {
	if key != KeySpace || d.spaceDown == nil {
		return false
	}
	w := d.spaceDown
	d.spaceDown = nil
	w.pressed = false
	if d.reachable(w) {
		r := w.rendered
		d.click(w, (r.Left+r.Right)/2, (r.Top+r.Bottom)/2)
	}
	return true
}

// FocusLost cancels presses, drags and hover.
func (d *EventDispatcher) FocusLost() bool {
	changed := d.clearPressed()
	if s := d.dragging; s != nil {
		s.EndDrag()
		d.dragging = nil
		changed = true
	}
	if d.hot != nil {
		d.hot.hot = false
		d.hot = nil
		changed = true
	}
	if cur := d.win.current; cur != nil {
		clearTransient(cur)
	}
	clearTransient(d.win.chrome)
	return changed
}

// ============================================================================
// State helpers
// ============================================================================

// reachable reports whether keyboard and wheel input may go to w: it takes
// input, sits on a shown page, and every container above it takes input.
func (d *EventDispatcher) reachable(w *Widget) bool {
	if !w.reachable() || w.page == nil {
		return false
	}
	for p := w.page; p.owner != nil; p = p.owner.page {
		if !p.owner.interactive() {
			return false
		}
	}
	return w.page.isActive()
}

// click runs the widget's control, then its callback, once each.
func (d *EventDispatcher) click(w *Widget, x, y float32) {
	if w.control != nil {
		w.control.Click(w, x, y)
	}
	if w.detached {
		return
	}
	if w.onClick != nil {
		w.onClick()
	}
	d.win.Invalidate()
}

func (d *EventDispatcher) clearPressed() bool {
	changed := false
	for _, w := range [...]*Widget{d.pressed, d.spaceDown} {
		if w != nil && w.pressed {
			w.pressed = false
			changed = true
		}
	}
	d.pressed = nil
	d.spaceDown = nil
	return changed
}

// setSelected moves the keyboard selection to w.
func (d *EventDispatcher) setSelected(w *Widget) bool {
	if d.selected == w {
		return false
	}
	if d.selected != nil {
		d.selected.selected = false
	}
	d.selected = w
	if w != nil {
		w.selected = true
	}
	d.win.Invalidate()
	return true
}

// release forgets every reference to w.
func (d *EventDispatcher) release(w *Widget) {
	if d.hot == w {
		d.hot = nil
	}
	if d.pressed == w {
		d.pressed = nil
	}
	if d.spaceDown == w {
		d.spaceDown = nil
	}
	if d.selected == w {
		w.selected = false
		d.selected = nil
	}
	if d.dragging != nil && d.dragging.page.owner == w {
		d.dragging.EndDrag()
		d.dragging = nil
	}
}

// reset drops all input state.
func (d *EventDispatcher) reset() {
	d.FocusLost()
	d.setSelected(nil)
}
