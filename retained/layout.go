package retained

import "github.com/agiangrant/pagekit/geom"

// ============================================================================
// Layout Pass
// ============================================================================
//
// Every widget is laid out from its design rectangle on each pass:
//
//   local    = Resize(design, policy, dw, dh)   relative to the page origin
//   rendered = local + client origin + scroll offset
//
// dw and dh are how far the page's client area differs from its design
// size. Pane content and tab pages get the delta their container received,
// so a stretched pane stretches the widgets anchored inside it.
//
// Inactive tabs and hidden containers are laid out too; their scroll clamps
// must stay right for when they are shown again.

// clientRect returns the area of the window below the caption.
func (win *Window) clientRect() geom.Rect {
	top := float32(0)
	if win.config.Chrome {
		top = win.config.CaptionHeight
	}
	return geom.Rect{Left: 0, Top: top, Right: win.width, Bottom: max(win.height, top)}
}

// designClientRect is clientRect at the window's configured size.
func (win *Window) designClientRect() geom.Rect {
	top := float32(0)
	if win.config.Chrome {
		top = win.config.CaptionHeight
	}
	return geom.Rect{Left: 0, Top: top, Right: win.config.Width, Bottom: max(win.config.Height, top)}
}

// Layout recomputes every rectangle in the window without drawing. Paint
// runs it first; hosts without a renderer call it before dispatching input.
func (win *Window) Layout() {
	client := win.clientRect()
	design := win.designClientRect()
	dw := client.Width() - design.Width()
	dh := client.Height() - design.Height()

	for _, p := range win.pages {
		win.layoutPage(p, client, client, dw, dh)
	}
	if win.config.Chrome {
		caption := geom.Rect{Left: 0, Top: 0, Right: win.width, Bottom: min(win.config.CaptionHeight, win.height)}
		win.layoutPage(win.chrome, caption, caption, win.width-win.config.Width, 0)
	}
}

// noteClientSize adjusts the scroll positions when the page's viewport
// changed size since the adjustment was last made.
func (p *Page) noteClientSize(width, height float32) {
	if p.seen {
		if d := width - p.seenW; d != 0 {
			p.hscroll.WindowResized(d)
		}
		if d := height - p.seenH; d != 0 {
			p.vscroll.WindowResized(d)
		}
	}
	p.seenW, p.seenH, p.seen = width, height, true
}

func (win *Window) layoutPage(p *Page, client, clip geom.Rect, dw, dh float32) {
	p.client = client
	p.clip = clip
	p.deltaW, p.deltaH = dw, dh
	p.reachable = p.owner == nil || (p.owner.interactive() && p.owner.page.reachable)
	p.shown = p.isActive()
	p.noteClientSize(client.Size())

	content := p.minRect
	for _, w := range p.widgets {
		w.local = geom.Resize(w.design, w.policy, dw, dh)
		if w.group != nil || !w.visible {
			continue
		}
		content = content.Union(spill(w.local, w.overhang))
	}

	cw, ch := client.Size()
	p.hscroll.SetExtents(0, cw, content.Left, content.Right)
	p.vscroll.SetExtents(0, ch, content.Top, content.Bottom)
	p.hscroll.Translate()
	p.vscroll.Translate()

	ox, oy := p.origin()
	for _, w := range p.widgets {
		if w.group != nil {
			continue
		}
		w.rendered = w.local.Offset(ox, oy)
		w.clip = clip
		win.layoutHosted(w, clip)
	}

	// Groups frame their members' final rectangles.
	for _, w := range p.widgets {
		if w.group != nil {
			w.rendered = w.group.bounds(p)
			w.clip = clip
		}
	}

	thickness := win.config.ScrollbarThickness
	p.hscroll.layoutTrack(client, thickness)
	p.vscroll.layoutTrack(client, thickness)
}

// spill grows r by the per-side amounts in by.
func spill(r, by geom.Rect) geom.Rect {
	return geom.Rect{Left: r.Left - by.Left, Top: r.Top - by.Top, Right: r.Right + by.Right, Bottom: r.Bottom + by.Bottom}
}

// origin returns where the page's unscrolled (0, 0) lands in the window.
func (p *Page) origin() (x, y float32) {
	return p.client.Left + p.hscroll.offset, p.client.Top + p.vscroll.offset
}

// layoutHosted lays out the pages a pane or tab control hosts inside the
// container's freshly computed rectangle.
func (win *Window) layoutHosted(w *Widget, clip geom.Rect) {
	if w.content == nil && w.tabs == nil {
		return
	}
	dw := w.local.Width() - w.design.Width()
	dh := w.local.Height() - w.design.Height()
	tol := win.config.Tolerance

	if w.content != nil {
		inner := w.rendered.Inset(tol)
		win.layoutPage(w.content, inner, inner.Intersect(clip), dw, dh)
		return
	}

	r := w.rendered
	strip := geom.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: min(r.Top+win.config.TabStripHeight, r.Bottom)}
	w.tabs.layoutHeaders(strip, win.config.TabHeaderWidth)
	body := geom.Rect{Left: r.Left, Top: strip.Bottom, Right: r.Right, Bottom: r.Bottom}.Inset(tol)
	for _, tab := range w.tabs.pagesInOrder() {
		win.layoutPage(tab, body, body.Intersect(clip), dw, dh)
	}
}
