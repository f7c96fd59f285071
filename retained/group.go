package retained

import "github.com/agiangrant/pagekit/geom"

// GroupSpec lists the widgets a group frames. A group is passive: it never
// takes input, and its rectangle is the union of its members' rendered
// rectangles grown by the margin.
type GroupSpec struct {
	members []string
	margin  float32
}

// Members returns the names of the framed widgets.
func (g *GroupSpec) Members() []string {
	out := make([]string, len(g.members))
	copy(out, g.members)
	return out
}

// Margin returns the gap between the members and the frame.
func (g *GroupSpec) Margin() float32 { return g.margin }

// SetMembers replaces the framed widget names.
func (g *GroupSpec) SetMembers(names ...string) {
	g.members = append(g.members[:0], names...)
}

// SetMargin sets the gap between the members and the frame.
func (g *GroupSpec) SetMargin(m float32) { g.margin = m }

// bounds computes the frame from the members' rendered rectangles. Members
// that are missing or hidden are skipped.
func (g *GroupSpec) bounds(p *Page) geom.Rect {
	var r geom.Rect
	for _, name := range g.members {
		w, ok := p.index[name]
		if !ok || !w.visible {
			continue
		}
		r = r.Union(w.rendered)
	}
	if r.IsEmpty() {
		return geom.Rect{}
	}
	return r.Expand(g.margin)
}
