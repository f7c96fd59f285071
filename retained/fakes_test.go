package retained

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/agiangrant/pagekit/geom"
)

func testContext() *Context {
	return NewContext(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestWindow returns a 400x300 window with a 30px caption and a page
// named "main".
func newTestWindow() (*Window, *Page) {
	cfg := DefaultWindowConfig()
	cfg.Title = "test"
	cfg.Width = 400
	cfg.Height = 300
	win := NewWindow(testContext(), cfg)
	return win, win.AddPage("main")
}

type drawCall struct {
	path   string
	render bool
}

type fakeRenderer struct {
	created    int
	discarded  int
	draws      []drawCall
	scrollbars int

	failCreate map[string]bool
	beginErr   error
	endErr     error
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{failCreate: make(map[string]bool)}
}

func (r *fakeRenderer) CreateResources(w *Widget) error {
	if r.failCreate[w.Path()] {
		return errors.New("out of brushes")
	}
	r.created++
	return nil
}

func (r *fakeRenderer) DiscardResources(*Widget) { r.discarded++ }

func (r *fakeRenderer) BeginPaint() error {
	r.draws = r.draws[:0]
	r.scrollbars = 0
	return r.beginErr
}

func (r *fakeRenderer) Draw(w *Widget, ctx DrawContext) geom.Rect {
	r.draws = append(r.draws, drawCall{path: w.Path(), render: ctx.Render})
	return w.Rendered()
}

func (r *fakeRenderer) DrawScrollbar(*Scrollbar, DrawContext) { r.scrollbars++ }

func (r *fakeRenderer) EndPaint() error { return r.endErr }

func (r *fakeRenderer) drew(path string) (drawCall, bool) {
	for _, c := range r.draws {
		if c.path == path {
			return c, true
		}
	}
	return drawCall{}, false
}

type fakeHost struct {
	started map[string]time.Duration
	stopped []string
	fail    error
}

func newFakeHost() *fakeHost {
	return &fakeHost{started: make(map[string]time.Duration)}
}

func (h *fakeHost) StartTimer(name string, interval time.Duration) error {
	if h.fail != nil {
		return h.fail
	}
	h.started[name] = interval
	return nil
}

func (h *fakeHost) StopTimer(name string) {
	delete(h.started, name)
	h.stopped = append(h.stopped, name)
}

type fakeFactory struct {
	inits, shutdowns int
}

func (f *fakeFactory) Init() error { f.inits++; return nil }
func (f *fakeFactory) Shutdown()   { f.shutdowns++ }

func near(a, b float32) bool {
	d := a - b
	return d < 0.01 && d > -0.01
}

func click(win *Window, x, y float32) {
	win.HandleEvent(NewPointerEvent(EventPointerDown, x, y, MouseButtonLeft))
	win.HandleEvent(NewPointerEvent(EventPointerUp, x, y, MouseButtonLeft))
}
