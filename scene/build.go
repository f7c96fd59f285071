package scene

import (
	"fmt"

	"github.com/agiangrant/pagekit/geom"
	"github.com/agiangrant/pagekit/retained"
)

var kinds = map[retained.WidgetKind]bool{
	retained.KindButton:     true,
	retained.KindLabel:      true,
	retained.KindList:       true,
	retained.KindToggle:     true,
	retained.KindPane:       true,
	retained.KindTabControl: true,
	retained.KindGroup:      true,
}

// Validate checks kinds, rectangles and names without building anything.
func (d *Document) Validate() error {
	seen := make(map[string]bool, len(d.Pages))
	for _, p := range d.Pages {
		if p.Name == "" {
			return fmt.Errorf("page without a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("page %q declared twice", p.Name)
		}
		seen[p.Name] = true
		if _, err := toRect(p.MinRect); err != nil {
			return fmt.Errorf("page %q min_rect: %w", p.Name, err)
		}
		if err := validateWidgets(p.Name, p.Widgets); err != nil {
			return err
		}
	}
	return nil
}

func validateWidgets(path string, ws []Widget) error {
	seen := make(map[string]bool, len(ws))
	for _, w := range ws {
		wp := path + "/" + w.Name
		if w.Name == "" {
			return fmt.Errorf("%s: widget without a name", path)
		}
		if seen[w.Name] {
			return fmt.Errorf("%s: declared twice", wp)
		}
		seen[w.Name] = true
		if !kinds[w.Kind] {
			return fmt.Errorf("%s: %q: %w", wp, w.Kind, ErrUnknownKind)
		}
		if _, err := toRect(w.Rect); err != nil {
			return fmt.Errorf("%s: %w", wp, err)
		}
		if err := validateWidgets(wp, w.Widgets); err != nil {
			return err
		}
		for _, tab := range w.Tabs {
			if err := validateWidgets(wp+"/"+tab.Name, tab.Widgets); err != nil {
				return err
			}
		}
	}
	return nil
}

func toRect(v []float32) (geom.Rect, error) {
	switch len(v) {
	case 0:
		return geom.Rect{}, nil
	case 4:
		return geom.Rect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
	}
	return geom.Rect{}, fmt.Errorf("rect needs 4 values [left, top, right, bottom], got %d", len(v))
}

// NewWindow creates a window configured and populated by the document.
func (d *Document) NewWindow(ctx *retained.Context) (*retained.Window, error) {
	win := retained.NewWindow(ctx, d.Window)
	if err := d.Build(win); err != nil {
		return nil, err
	}
	return win, nil
}

// Build adds the document's pages to win. Pages and widgets that already
// exist are reused, so building twice is harmless.
func (d *Document) Build(win *retained.Window) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for _, ps := range d.Pages {
		p := win.AddPage(ps.Name)
		r, _ := toRect(ps.MinRect)
		p.SetMinRect(r)
		buildWidgets(p, ps.Widgets)
	}
	return nil
}

func buildWidgets(p *retained.Page, specs []Widget) {
	for _, s := range specs {
		r, _ := toRect(s.Rect)
		w := p.Add(s.Name, s.Kind).
			SetRect(r).
			SetResizePolicy(s.Resize).
			SetStyle(s.Style).
			SetText(s.Text).
			SetVisible(!s.Hidden).
			SetEnabled(!s.Disabled)

		switch s.Kind {
		case retained.KindPane:
			buildWidgets(w.Content(), s.Widgets)
		case retained.KindTabControl:
			for _, tab := range s.Tabs {
				buildWidgets(w.Tabs().Add(tab.Name), tab.Widgets)
			}
		case retained.KindGroup:
			w.Group().SetMembers(s.Members...)
			w.Group().SetMargin(s.Margin)
		case retained.KindList:
			if l, ok := retained.ListOf(w); ok {
				l.SetItems(s.Items)
			}
		case retained.KindToggle:
			if t, ok := retained.ToggleOf(w); ok {
				t.SetOn(s.On)
			}
		}
	}
}

// FromWindow captures the window's current tree as a document.
func FromWindow(win *retained.Window) *Document {
	d := &Document{Window: win.Config()}
	for _, p := range win.Pages() {
		ps := Page{Name: p.Name(), Widgets: fromPage(p)}
		if r := p.MinRect(); r != (geom.Rect{}) {
			ps.MinRect = fromRect(r)
		}
		d.Pages = append(d.Pages, ps)
	}
	return d
}

func fromPage(p *retained.Page) []Widget {
	var out []Widget
	for _, w := range p.Widgets() {
		s := Widget{
			Name:     w.Name(),
			Kind:     w.Kind(),
			Text:     w.Text(),
			Resize:   w.ResizePolicy(),
			Style:    w.Style(),
			Hidden:   !w.Visible(),
			Disabled: !w.Enabled(),
		}
		if r := w.Rect(); r != (geom.Rect{}) {
			s.Rect = fromRect(r)
		}
		switch {
		case w.Content() != nil:
			s.Widgets = fromPage(w.Content())
		case w.Tabs() != nil:
			for _, name := range w.Tabs().Names() {
				tab, _ := w.Tabs().Page(name)
				s.Tabs = append(s.Tabs, Tab{Name: name, Widgets: fromPage(tab)})
			}
		case w.Group() != nil:
			s.Members = w.Group().Members()
			s.Margin = w.Group().Margin()
		}
		if l, ok := retained.ListOf(w); ok {
			s.Items = l.Items()
		}
		if t, ok := retained.ToggleOf(w); ok {
			s.On = t.On()
		}
		out = append(out, s)
	}
	return out
}

func fromRect(r geom.Rect) []float32 {
	return []float32{r.Left, r.Top, r.Right, r.Bottom}
}
