// Package term hosts a retained.Window in a terminal through tcell. It turns
// terminal input into window events, drives window timers, and paints widgets
// as character cells.
package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/pagekit/retained"
)

// Screen is the part of tcell.Screen the host uses.
type Screen interface {
	Init() error
	Fini()
	Size() (int, int)
	Clear()
	Show()
	EnableMouse(...tcell.MouseFlags)
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// Options configures a Host.
type Options struct {
	// CellWidth and CellHeight are the window units one cell covers.
	CellWidth, CellHeight float32
	Logger                *slog.Logger
}

// DefaultOptions maps one cell to 8x16 window units.
func DefaultOptions() Options {
	return Options{CellWidth: 8, CellHeight: 16}
}

// timerTick is posted through the screen when a timer fires, so callbacks run
// on the UI goroutine.
type timerTick struct{ name string }

// Host runs a window on a terminal screen.
type Host struct {
	screen   Screen
	win      *retained.Window
	renderer *Renderer
	opts     Options
	logger   *slog.Logger

	mu     sync.Mutex
	timers map[string]context.CancelFunc

	buttons tcell.ButtonMask
	lastX   float32
	lastY   float32
	stop    context.CancelFunc
}

// NewHost returns a host for win on screen.
func NewHost(screen Screen, win *retained.Window, opts Options) *Host {
	d := DefaultOptions()
	if opts.CellWidth <= 0 {
		opts.CellWidth = d.CellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = d.CellHeight
	}
	logger := opts.Logger
	if logger == nil {
		logger = win.Logger()
	}
	return &Host{
		screen:   screen,
		win:      win,
		renderer: NewRenderer(screen, opts.CellWidth, opts.CellHeight),
		opts:     opts,
		logger:   logger,
		timers:   make(map[string]context.CancelFunc),
	}
}

// NewScreen opens the controlling terminal.
func NewScreen() (Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return s, nil
}

// Renderer returns the cell renderer the window paints through.
func (h *Host) Renderer() *Renderer { return h.renderer }

// StartTimer implements retained.TimerHost.
func (h *Host) StartTimer(name string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("timer %q: interval must be positive", name)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if cancel, ok := h.timers[name]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.timers[name] = cancel
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := h.screen.PostEvent(tcell.NewEventInterrupt(timerTick{name})); err != nil {
					h.logger.Debug("timer tick dropped", "timer", name, "err", err)
				}
			}
		}
	}()
	return nil
}

// StopTimer implements retained.TimerHost.
func (h *Host) StopTimer(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cancel, ok := h.timers[name]; ok {
		cancel()
		delete(h.timers, name)
	}
}

func (h *Host) stopTimers() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name, cancel := range h.timers {
		cancel()
		delete(h.timers, name)
	}
}

// Stop ends Run.
func (h *Host) Stop() {
	if h.stop != nil {
		h.stop()
	}
}

// Run initialises the screen, creates the window and pumps events until ctx
// ends, Stop is called, Ctrl+C is pressed or the window's close button is
// clicked.
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	h.screen.EnableMouse()

	ctx, h.stop = context.WithCancel(ctx)
	defer h.stop()

	h.win.OnClose(h.Stop)
	if err := h.win.Create(h.renderer, h); err != nil {
		h.screen.Fini()
		return err
	}

	events := make(chan tcell.Event, 16)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer h.screen.Fini()
		defer h.win.Close()
		defer h.stopTimers()

		cols, rows := h.screen.Size()
		h.dispatch(retained.NewResizeEvent(float32(cols)*h.opts.CellWidth, float32(rows)*h.opts.CellHeight))
		if err := h.paint(); err != nil {
			return err
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				h.handle(ev)
				if h.win.NeedsRedraw() {
					if err := h.paint(); err != nil {
						return err
					}
				}
			}
		}
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (h *Host) paint() error {
	if err := h.win.Paint(); err != nil {
		return fmt.Errorf("paint: %w", err)
	}
	return nil
}

func (h *Host) dispatch(ev retained.InputEvent) {
	h.win.HandleEvent(ev)
}

// handle translates one terminal event.
func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.dispatch(retained.NewResizeEvent(float32(cols)*h.opts.CellWidth, float32(rows)*h.opts.CellHeight))
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventFocus:
		h.dispatch(retained.NewFocusEvent(ev.Focused))
	case *tcell.EventInterrupt:
		if t, ok := ev.Data().(timerTick); ok {
			h.dispatch(retained.NewTimerEvent(t.name))
		}
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		h.Stop()
		return
	}
	key, r, mods := translateKey(ev)
	if key == retained.KeyNone {
		return
	}
	down := retained.NewKeyEvent(retained.EventKeyDown, key, mods)
	down.Rune = r
	h.dispatch(down)
	// Terminals report presses only; release at once so Space activates.
	up := retained.NewKeyEvent(retained.EventKeyUp, key, mods)
	up.Rune = r
	h.dispatch(up)
}

func translateKey(ev *tcell.EventKey) (retained.Key, rune, retained.Modifiers) {
	var mods retained.Modifiers
	m := ev.Modifiers()
	if m&tcell.ModShift != 0 {
		mods |= retained.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= retained.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= retained.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= retained.ModSuper
	}

	switch ev.Key() {
	case tcell.KeyTab:
		return retained.KeyTab, 0, mods
	case tcell.KeyBacktab:
		return retained.KeyTab, 0, mods | retained.ModShift
	case tcell.KeyEnter:
		return retained.KeyEnter, 0, mods
	case tcell.KeyEscape:
		return retained.KeyEscape, 0, mods
	case tcell.KeyLeft:
		return retained.KeyLeft, 0, mods
	case tcell.KeyRight:
		return retained.KeyRight, 0, mods
	case tcell.KeyUp:
		return retained.KeyUp, 0, mods
	case tcell.KeyDown:
		return retained.KeyDown, 0, mods
	case tcell.KeyHome:
		return retained.KeyHome, 0, mods
	case tcell.KeyEnd:
		return retained.KeyEnd, 0, mods
	case tcell.KeyPgUp:
		return retained.KeyPageUp, 0, mods
	case tcell.KeyPgDn:
		return retained.KeyPageDown, 0, mods
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return retained.KeySpace, ' ', mods
		}
		return retained.KeyRune, ev.Rune(), mods
	}
	return retained.KeyNone, 0, mods
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x := (float32(cx) + 0.5) * h.opts.CellWidth
	y := (float32(cy) + 0.5) * h.opts.CellHeight
	buttons := ev.Buttons()

	if x != h.lastX || y != h.lastY {
		h.lastX, h.lastY = x, y
		h.dispatch(retained.NewPointerEvent(retained.EventPointerMove, x, y, retained.MouseButtonNone))
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		h.dispatch(retained.NewWheelEvent(x, y, retained.WheelDelta))
	case buttons&tcell.WheelDown != 0:
		h.dispatch(retained.NewWheelEvent(x, y, -retained.WheelDelta))
	}

	was, is := h.buttons&tcell.Button1 != 0, buttons&tcell.Button1 != 0
	switch {
	case is && !was:
		h.dispatch(retained.NewPointerEvent(retained.EventPointerDown, x, y, retained.MouseButtonLeft))
	case was && !is:
		h.dispatch(retained.NewPointerEvent(retained.EventPointerUp, x, y, retained.MouseButtonLeft))
	}
	h.buttons = buttons &^ (tcell.WheelUp | tcell.WheelDown)
}
