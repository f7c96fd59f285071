package retained

// ============================================================================
// Tree Walker
// ============================================================================
//
// Layout, painting, hit-testing, focus order and resource lifecycle all
// traverse pages the same way: the widgets of a page in insertion order, and
// right after a pane or tab control, the page(s) it hosts. walk implements
// that order once; each concern supplies a visitor.

type walkMode uint8

const (
	walkActive walkMode = iota // only the current tab of each tab control
	walkAll                    // every tab, for bookkeeping
)

type visitAction uint8

const (
	visitContinue visitAction = iota
	visitSkipChildren          // from enterPage: skip the page's widgets; from visitWidget: skip hosted pages
	visitStop
)

type visitor interface {
	enterPage(p *Page) visitAction
	visitWidget(w *Widget) visitAction
	leavePage(p *Page) visitAction
}

// walk visits p and the pages beneath it. It reports false if the visitor
// stopped the walk.
func walk(p *Page, v visitor, mode walkMode) bool {
	if p == nil || p.detached {
		return true
	}
	switch v.enterPage(p) {
	case visitStop:
		return false
	case visitSkipChildren:
		return v.leavePage(p) != visitStop
	}

	// Removing a widget replaces p.widgets, so ranging over the old slice is
	// safe even if a visitor mutates the page.
	for _, w := range p.widgets {
		if w.detached {
			continue
		}
		switch v.visitWidget(w) {
		case visitStop:
			return false
		case visitSkipChildren:
			continue
		}
		if !walkHosted(w, v, mode) {
			return false
		}
	}
	return v.leavePage(p) != visitStop
}

func walkHosted(w *Widget, v visitor, mode walkMode) bool {
	switch {
	case w.content != nil:
		return walk(w.content, v, mode)
	case w.tabs == nil:
		return true
	case mode == walkActive:
		return walk(w.tabs.Current(), v, mode)
	}
	for _, name := range w.tabs.order {
		if !walk(w.tabs.pages[name], v, mode) {
			return false
		}
	}
	return true
}

// visitFuncs adapts plain functions to a visitor; nil hooks continue.
type visitFuncs struct {
	enter  func(*Page) visitAction
	widget func(*Widget) visitAction
	leave  func(*Page) visitAction
}

func (f visitFuncs) enterPage(p *Page) visitAction {
	if f.enter == nil {
		return visitContinue
	}
	return f.enter(p)
}

func (f visitFuncs) visitWidget(w *Widget) visitAction {
	if f.widget == nil {
		return visitContinue
	}
	return f.widget(w)
}

func (f visitFuncs) leavePage(p *Page) visitAction {
	if f.leave == nil {
		return visitContinue
	}
	return f.leave(p)
}

// eachWidget calls fn for every widget beneath p.
func eachWidget(p *Page, mode walkMode, fn func(*Widget)) {
	walk(p, visitFuncs{widget: func(w *Widget) visitAction {
		fn(w)
		return visitContinue
	}}, mode)
}

// clearTransient drops hover and press state from everything beneath p.
func clearTransient(p *Page) {
	eachWidget(p, walkAll, func(w *Widget) {
		if w.pressed || w.hot {
			w.releaseInput()
		}
	})
}
