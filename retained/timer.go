package retained

import (
	"fmt"
	"log/slog"
	"time"
)

// TimerHost is the platform side of the timer registry. It must deliver
// expirations on the UI thread by calling TimerRegistry.Fire (or sending an
// EventTimer to Window.HandleEvent).
type TimerHost interface {
	StartTimer(name string, interval time.Duration) error
	StopTimer(name string)
}

type timer struct {
	name     string
	interval time.Duration
	fn       func()
	running  bool // started on the host
}

// TimerRegistry tracks a window's named timers. Timers added before the host
// exists are remembered and started when it attaches.
type TimerRegistry struct {
	host   TimerHost
	timers map[string]*timer
	order  []string
	win    *Window
}

func newTimerRegistry(win *Window) *TimerRegistry {
	return &TimerRegistry{timers: make(map[string]*timer), win: win}
}

// Add registers and starts a named timer. Adding a name that is already
// registered changes nothing.
func (r *TimerRegistry) Add(name string, interval time.Duration, fn func()) error {
	if _, ok := r.timers[name]; ok {
		return nil
	}
	if interval <= 0 {
		return fmt.Errorf("timer %q: interval must be positive, got %v", name, interval)
	}
	t := &timer{name: name, interval: interval, fn: fn}
	r.timers[name] = t
	r.order = append(r.order, name)
	if r.host == nil {
		r.logger().Debug("timer deferred until window creation", "timer", name)
		return nil
	}
	return r.start(t)
}

func (r *TimerRegistry) start(t *timer) error {
	if err := r.host.StartTimer(t.name, t.interval); err != nil {
		return fmt.Errorf("start timer %q: %w", t.name, err)
	}
	t.running = true
	r.logger().Debug("timer started", "timer", t.name, "interval", t.interval)
	return nil
}

// Stop stops and forgets a timer. Unknown names are ignored.
func (r *TimerRegistry) Stop(name string) {
	t, ok := r.timers[name]
	if !ok {
		return
	}
	delete(r.timers, name)
	kept := make([]string, 0, len(r.order))
	for _, n := range r.order {
		if n != name {
			kept = append(kept, n)
		}
	}
	r.order = kept
	if t.running && r.host != nil {
		r.host.StopTimer(name)
	}
	r.logger().Debug("timer stopped", "timer", name)
}

// Running reports whether the named timer is registered. A timer added
// before window creation counts as running.
func (r *TimerRegistry) Running(name string) bool {
	_, ok := r.timers[name]
	return ok
}

// Started reports whether the named timer is live on the host.
func (r *TimerRegistry) Started(name string) bool {
	t, ok := r.timers[name]
	return ok && t.running
}

// Names returns the registered timer names in the order they were added.
func (r *TimerRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Fire runs the named timer's callback. It reports whether the timer exists.
func (r *TimerRegistry) Fire(name string) bool {
	t, ok := r.timers[name]
	if !ok {
		return false
	}
	if t.fn != nil {
		t.fn()
	}
	return true
}

// attach starts every deferred timer on host.
func (r *TimerRegistry) attach(host TimerHost) error {
	r.host = host
	if host == nil {
		return nil
	}
	for _, name := range r.order {
		t := r.timers[name]
		if t.running {
			continue
		}
		if err := r.start(t); err != nil {
			return err
		}
	}
	return nil
}

// detach stops every timer on the host but keeps them registered, so a
// later attach restarts them.
func (r *TimerRegistry) detach() {
	if r.host == nil {
		return
	}
	for _, name := range r.order {
		t := r.timers[name]
		if t.running {
			r.host.StopTimer(name)
			t.running = false
		}
	}
	r.host = nil
}

func (r *TimerRegistry) logger() *slog.Logger {
	return r.win.logger
}
