package retained

// ============================================================================
// Event Loop
// ============================================================================
//
// The host owns the platform message pump. It converts each platform message
// into an InputEvent, calls HandleEvent on the UI thread, and paints when
// HandleEvent asks for it.

// OnEvent installs a hook that sees every event first. Returning true
// consumes the event.
func (win *Window) OnEvent(fn func(InputEvent) bool) { win.onEvent = fn }

// HandleEvent routes one input event and reports whether the window needs a
// repaint.
func (win *Window) HandleEvent(ev InputEvent) bool {
	if win.onEvent != nil && win.onEvent(ev) {
		return win.needsRedraw
	}

	var changed bool
	switch ev.Type {
	case EventPointerMove:
		changed = win.events.PointerMove(ev.X, ev.Y)
	case EventPointerDown:
		changed = win.events.PointerDown(ev.X, ev.Y, ev.Button)
	case EventPointerUp:
		changed = win.events.PointerUp(ev.X, ev.Y, ev.Button)
	case EventWheel:
		changed = win.events.Wheel(ev.X, ev.Y, ev.Wheel)
	case EventKeyDown:
		changed = win.events.KeyDown(ev.Key, ev.Modifiers)
	case EventKeyUp:
		changed = win.events.KeyUp(ev.Key, ev.Modifiers)
	case EventResize:
		changed = win.Resize(ev.Width, ev.Height)
	case EventFocusGained:
		changed = true
	case EventFocusLost:
		changed = win.events.FocusLost()
	case EventTimer:
		if !win.timers.Fire(ev.Timer) {
			win.logger.Debug("timer event for unknown timer", "timer", ev.Timer)
		}
	case EventRecreateResources:
		win.logger.Info("render device lost; recreating resources")
		win.discardAll()
		changed = true
	default:
		win.logger.Debug("unhandled event", "type", ev.Type)
	}

	if changed {
		win.Invalidate()
	}
	return win.needsRedraw
}

// Step handles a batch of events and paints once if any of them asked for
// it. Hosts that queue input call it once per frame.
func (win *Window) Step(events []InputEvent) error {
	redraw := false
	for _, ev := range events {
		if win.HandleEvent(ev) {
			redraw = true
		}
	}
	if !redraw {
		return nil
	}
	return win.Paint()
}
