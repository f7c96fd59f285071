package retained

import (
	"errors"
	"fmt"

	"github.com/agiangrant/pagekit/geom"
)

// ErrRecreateResources is returned by a Renderer when its device was lost.
// The window discards every resource handle and recreates them on the next
// paint.
var ErrRecreateResources = errors.New("retained: render resources must be recreated")

// DrawContext tells the renderer where a widget's page sits.
type DrawContext struct {
	// Clip is the page's visible area in window coordinates.
	Clip geom.Rect
	// OffsetX and OffsetY locate the page's unscrolled origin in the window,
	// scroll offset included.
	OffsetX, OffsetY float32
	// DeltaW and DeltaH are how far the page differs from its design size.
	DeltaW, DeltaH float32
	// Render is false for pages that are laid out but not shown; the
	// renderer should only measure and return the extent.
	Render bool
}

// Renderer draws widgets. The core decides where and whether; the renderer
// decides how.
type Renderer interface {
	CreateResources(w *Widget) error
	DiscardResources(w *Widget)
	BeginPaint() error
	// Draw draws w at w.Rendered() and returns the area it covered, in
	// window coordinates. Content drawn beyond the rectangle (long text,
	// for instance) grows the page's scrollable extent.
	Draw(w *Widget, ctx DrawContext) geom.Rect
	DrawScrollbar(s *Scrollbar, ctx DrawContext)
	EndPaint() error
}

// Paint lays the window out and draws the current page and the caption.
// A lost device is not an error: resources are dropped and the window asks
// for another paint.
func (win *Window) Paint() error {
	if win.renderer == nil {
		return ErrNoRenderer
	}
	win.Layout()

	if err := win.renderer.BeginPaint(); err != nil {
		return win.paintFailed("begin paint", err)
	}
	pv := &paintVisitor{win: win, r: win.renderer}
	if win.current != nil {
		walk(win.current, pv, walkAll)
	}
	if win.config.Chrome {
		walk(win.chrome, pv, walkAll)
	}
	if err := win.renderer.EndPaint(); err != nil {
		return win.paintFailed("end paint", err)
	}
	win.needsRedraw = false
	return nil
}

func (win *Window) paintFailed(op string, err error) error {
	if errors.Is(err, ErrRecreateResources) {
		win.logger.Info("render device lost; recreating resources", "op", op)
		win.discardAll()
		win.needsRedraw = true
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// discardAll drops the renderer resources of every widget in the window.
func (win *Window) discardAll() {
	for _, p := range win.pages {
		eachWidget(p, walkAll, win.discardResources)
	}
	eachWidget(win.chrome, walkAll, win.discardResources)
}

func (win *Window) discardResources(w *Widget) {
	if w.resourcesReady && win.renderer != nil {
		win.renderer.DiscardResources(w)
	}
	w.resourcesReady = false
}

// paintVisitor draws groups first, then widgets in order, then the page's
// scrollbars. Pages that are not shown are still measured.
type paintVisitor struct {
	win *Window
	r   Renderer
}

func drawContext(p *Page) DrawContext {
	ox, oy := p.origin()
	return DrawContext{
		Clip:    p.clip,
		OffsetX: ox,
		OffsetY: oy,
		DeltaW:  p.deltaW,
		DeltaH:  p.deltaH,
		Render:  p.shown,
	}
}

func (v *paintVisitor) enterPage(p *Page) visitAction {
	ctx := drawContext(p)
	for _, w := range p.widgets {
		if w.group != nil && w.visible {
			v.draw(w, ctx)
		}
	}
	return visitContinue
}

func (v *paintVisitor) visitWidget(w *Widget) visitAction {
	if w.group != nil {
		return visitContinue
	}
	if !w.visible {
		return visitSkipChildren
	}
	ctx := drawContext(w.page)
	drawn := v.draw(w, ctx)
	w.overhang = geom.Rect{}
	if !drawn.IsEmpty() {
		r := w.rendered
		w.overhang = geom.Rect{
			Left:   max(0, r.Left-drawn.Left),
			Top:    max(0, r.Top-drawn.Top),
			Right:  max(0, drawn.Right-r.Right),
			Bottom: max(0, drawn.Bottom-r.Bottom),
		}
	}
	return visitContinue
}

func (v *paintVisitor) leavePage(p *Page) visitAction {
	if !p.shown {
		return visitContinue
	}
	ctx := drawContext(p)
	if p.hscroll.Visible() {
		v.r.DrawScrollbar(p.hscroll, ctx)
	}
	if p.vscroll.Visible() {
		v.r.DrawScrollbar(p.vscroll, ctx)
	}
	return visitContinue
}

func (v *paintVisitor) draw(w *Widget, ctx DrawContext) geom.Rect {
	if !w.resourcesReady {
		if err := v.r.CreateResources(w); err != nil {
			v.win.logger.Warn("create resources failed", "widget", w.Path(), "err", err)
			return geom.Rect{}
		}
		w.resourcesReady = true
	}
	return v.r.Draw(w, ctx)
}
