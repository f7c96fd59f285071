package retained

// ============================================================================
// Input Events
// ============================================================================
//
// The host translates raw platform messages into InputEvents; this package
// never sees window-system messages directly.

// EventType identifies the kind of input event.
type EventType uint8

const (
	// Pointer events
	EventPointerMove EventType = iota + 1
	EventPointerDown
	EventPointerUp
	EventWheel

	// Keyboard events
	EventKeyDown
	EventKeyUp

	// Window events
	EventResize
	EventFocusGained
	EventFocusLost
	EventTimer
	EventRecreateResources
)

// String returns a readable name for logs.
func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "pointer-move"
	case EventPointerDown:
		return "pointer-down"
	case EventPointerUp:
		return "pointer-up"
	case EventWheel:
		return "wheel"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventResize:
		return "resize"
	case EventFocusGained:
		return "focus-gained"
	case EventFocusLost:
		return "focus-lost"
	case EventTimer:
		return "timer"
	case EventRecreateResources:
		return "recreate-resources"
	}
	return "unknown"
}

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Key is a logical key code.
type Key uint16

const (
	KeyNone Key = iota
	KeyTab
	KeySpace
	KeyEnter
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyRune // printable character, see InputEvent.Rune
)

// WheelDelta is the raw wheel delta reported for one notch.
const WheelDelta = 120

// InputEvent is a normalized input notification.
type InputEvent struct {
	Type EventType

	// Pointer position in window coordinates.
	X, Y   float32
	Button MouseButton

	Key       Key
	Rune      rune
	Modifiers Modifiers

	// Raw wheel delta; one notch is WheelDelta.
	Wheel float32

	// New client size for EventResize.
	Width, Height float32

	// Timer name for EventTimer.
	Timer string
}

// NewPointerEvent creates a pointer move, down or up event.
func NewPointerEvent(t EventType, x, y float32, button MouseButton) InputEvent {
	return InputEvent{Type: t, X: x, Y: y, Button: button}
}

// NewKeyEvent creates a key down or key up event.
func NewKeyEvent(t EventType, key Key, mods Modifiers) InputEvent {
	return InputEvent{Type: t, Key: key, Modifiers: mods}
}

// NewWheelEvent creates a wheel event at the given pointer position.
func NewWheelEvent(x, y, delta float32) InputEvent {
	return InputEvent{Type: EventWheel, X: x, Y: y, Wheel: delta}
}

// NewResizeEvent creates a client-area resize event.
func NewResizeEvent(width, height float32) InputEvent {
	return InputEvent{Type: EventResize, Width: width, Height: height}
}

// NewFocusEvent creates a focus gained or lost event.
func NewFocusEvent(gained bool) InputEvent {
	if gained {
		return InputEvent{Type: EventFocusGained}
	}
	return InputEvent{Type: EventFocusLost}
}

// NewTimerEvent creates a timer-fired notification.
func NewTimerEvent(name string) InputEvent {
	return InputEvent{Type: EventTimer, Timer: name}
}
