package retained

// Keyboard focus order is tree order: the widgets of the current page in
// insertion order, descending into panes and current tabs. Containers,
// groups and widgets that cannot take input are skipped, as is everything
// inside a disabled or hidden container. Caption buttons come last and only
// when SetTabStop made them reachable.

// FocusOrder returns the widgets Tab cycles through.
func (d *EventDispatcher) FocusOrder() []*Widget {
	order := d.focusOrder()
	out := make([]*Widget, len(order))
	copy(out, order)
	focusOrders.put(order)
	return out
}

// focusOrder returns a pooled slice; release it with focusOrders.put.
func (d *EventDispatcher) focusOrder() []*Widget {
	order := focusOrders.get()
	collect := visitFuncs{widget: func(w *Widget) visitAction {
		if !w.interactive() {
			return visitSkipChildren
		}
		if w.group == nil && !w.IsContainer() {
			order = append(order, w)
		}
		return visitContinue
	}}
	if cur := d.win.current; cur != nil {
		walk(cur, collect, walkActive)
	}
	for _, w := range d.win.chrome.widgets {
		if w.reachable() {
			order = append(order, w)
		}
	}
	return order
}

// cycleFocus moves the selection to the next (or previous) widget in focus
// order, wrapping at either end. With nothing selected, forward picks the
// first widget and backward the last.
func (d *EventDispatcher) cycleFocus(forward bool) bool {
	order := d.focusOrder()
	defer focusOrders.put(order)

	n := len(order)
	if n == 0 {
		return false
	}
	idx := -1
	for i, w := range order {
		if w == d.selected {
			idx = i
			break
		}
	}

	var next int
	switch {
	case idx < 0 && forward:
		next = 0
	case idx < 0:
		next = n - 1
	case forward:
		next = (idx + 1) % n
	default:
		next = (idx - 1 + n) % n
	}
	return d.setSelected(order[next])
}
