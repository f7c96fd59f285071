package retained

import "github.com/agiangrant/pagekit/geom"

// ============================================================================
// Scrollbar
// ============================================================================

// Axis selects the horizontal or vertical scrollbar of a page.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// minThumbLength keeps the thumb grabbable on very long content.
const minThumbLength = 8

// Scrollbar is the per-axis scroll state of a page.
//
// Displacement is measured along the track, in the units the pointer moves
// the thumb. It always lies in [lo, hi] with lo <= 0 <= hi; both bounds are
// zero when the content fits. The offset applied to the page's widgets is
// derived from the displacement by Translate, which only recomputes when the
// displacement moved or a resize forced it.
type Scrollbar struct {
	axis Axis
	page *Page

	displacement           float32
	displacementBeforeDrag float32
	offset                 float32
	lastTranslated         float32

	lo, hi float32

	dragging     bool
	dragStart    float32
	dragLo       float32 // bounds captured at drag start, relative to displacementBeforeDrag
	dragHi       float32
	dragScale    float32
	forceXlate   bool
	hasPending   bool
	pendingShift float32

	ratio          float32 // total content length / viewport length
	overflowBefore float32
	overflowAfter  float32

	track geom.Rect
	thumb geom.Rect
}

func newScrollbar(p *Page, axis Axis) *Scrollbar {
	return &Scrollbar{axis: axis, page: p, ratio: 1}
}

// Axis returns which axis the scrollbar scrolls.
func (s *Scrollbar) Axis() Axis { return s.axis }

// Page returns the page the scrollbar belongs to.
func (s *Scrollbar) Page() *Page { return s.page }

// Displacement returns the current thumb displacement.
func (s *Scrollbar) Displacement() float32 { return s.displacement }

// Offset returns the content offset produced by the last translation.
func (s *Scrollbar) Offset() float32 { return s.offset }

// Bounds returns the displacement range [lo, hi].
func (s *Scrollbar) Bounds() (lo, hi float32) { return s.lo, s.hi }

// Overflow reports whether the content exceeds the viewport on this axis.
func (s *Scrollbar) Overflow() bool { return s.overflowBefore > 0 || s.overflowAfter > 0 }

// Dragging reports whether the thumb is being dragged.
func (s *Scrollbar) Dragging() bool { return s.dragging }

// ForceTranslate reports whether the next Translate must recompute the offset.
func (s *Scrollbar) ForceTranslate() bool { return s.forceXlate }

// Track returns the track rectangle from the last layout pass.
func (s *Scrollbar) Track() geom.Rect { return s.track }

// Thumb returns the thumb rectangle from the last layout pass.
func (s *Scrollbar) Thumb() geom.Rect { return s.thumb }

// Visible reports whether the scrollbar is drawn and hit-tested.
func (s *Scrollbar) Visible() bool { return s.Overflow() && !s.thumb.IsEmpty() }

// clampDisplacement keeps d inside [lo, hi]: positive values clamp toward
// hi, non-positive values toward lo.
func clampDisplacement(d, lo, hi float32) float32 {
	if d > 0 {
		return min(d, hi)
	}
	return max(d, lo)
}

// SetExtents recomputes the displacement bounds from the viewport and the
// content span along this axis, both relative to the unscrolled page origin.
// Content smaller than the viewport yields zero bounds.
func (s *Scrollbar) SetExtents(viewStart, viewEnd, contentStart, contentEnd float32) {
	view := viewEnd - viewStart
	before := max(0, viewStart-contentStart)
	after := max(0, contentEnd-viewEnd)

	ratio := float32(1)
	if view > 0 && before+after > 0 {
		ratio = (view + before + after) / view
	} else {
		before, after = 0, 0
	}

	// A new ratio rebases the displacement so the content offset holds.
	shift := -s.displacement * s.ratio
	rebase := ratio != s.ratio
	if s.hasPending {
		shift = s.pendingShift
		s.hasPending = false
		rebase = true
	}
	if rebase {
		s.forceXlate = true
	}
	s.ratio = ratio
	s.overflowBefore = before
	s.overflowAfter = after
	s.lo = -before / ratio
	s.hi = after / ratio

	if s.dragging {
		return
	}
	if rebase {
		s.displacement = -shift / ratio
	}
	s.displacement = clampDisplacement(s.displacement, s.lo, s.hi)
}

// Translate converts the displacement into a content offset. It only does
// work when the displacement changed since the last call or a resize forced
// it, and reports whether the offset was recomputed.
func (s *Scrollbar) Translate() bool {
	if !s.forceXlate && s.displacement == s.lastTranslated {
		return false
	}
	s.offset = 0
	if s.displacement != 0 {
		s.offset = -s.displacement * s.ratio
	}
	s.lastTranslated = s.displacement
	s.forceXlate = false
	return true
}

// BeginDrag starts a thumb drag at the given pointer coordinate along this
// axis. scale converts pointer units to track units (the DPI factor).
func (s *Scrollbar) BeginDrag(pointer, scale float32) bool {
	if !s.Overflow() {
		return false
	}
	if scale <= 0 {
		scale = 1
	}
	s.dragging = true
	s.dragStart = pointer
	s.dragScale = scale
	s.displacementBeforeDrag = s.displacement
	s.dragLo = s.lo - s.displacement
	s.dragHi = s.hi - s.displacement
	return true
}

// Drag moves the thumb to follow the pointer. It reports whether the
// displacement changed.
func (s *Scrollbar) Drag(pointer float32) bool {
	if !s.dragging {
		return false
	}
	delta := clampDisplacement((pointer-s.dragStart)/s.dragScale, s.dragLo, s.dragHi)
	next := s.displacementBeforeDrag + delta
	if next == s.displacement {
		return false
	}
	s.displacement = next
	return true
}

// EndDrag returns the scrollbar to idle.
func (s *Scrollbar) EndDrag() {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.displacement = clampDisplacement(s.displacement, s.lo, s.hi)
}

// ScrollBy moves the content by amount content pixels; positive values
// reveal content further toward the end of the axis. It reports whether the
// displacement changed.
func (s *Scrollbar) ScrollBy(amount float32) bool {
	if s.dragging || !s.Overflow() {
		return false
	}
	next := clampDisplacement(s.displacement+amount/s.ratio, s.lo, s.hi)
	if next == s.displacement {
		return false
	}
	s.displacement = next
	return true
}

// WindowResized adjusts the scroll position after the viewport grew or
// shrank by delta along this axis. When the viewport grows, scrolled content
// is pulled back toward its design position by up to delta. When it shrinks
// the offset is kept, so the edge that did not move keeps showing the same
// content. The new offset is applied by the next layout pass.
func (s *Scrollbar) WindowResized(delta float32) {
	s.forceXlate = true
	if s.dragging || !s.Overflow() || delta <= 0 {
		return
	}

	shift := s.offset
	switch {
	case shift > 0:
		shift = max(0, shift-delta)
	case shift < 0:
		shift = min(0, shift+delta)
	}
	s.pendingShift = shift
	s.hasPending = true
	s.displacement = -shift / s.ratio
}

// layoutTrack places the track along the far edge of the client rectangle
// and the thumb inside it.
func (s *Scrollbar) layoutTrack(client geom.Rect, thickness float32) {
	if !s.Overflow() || thickness <= 0 {
		s.track, s.thumb = geom.Rect{}, geom.Rect{}
		return
	}

	var start, length float32
	if s.axis == Horizontal {
		s.track = geom.Rect{Left: client.Left, Top: client.Bottom - thickness, Right: client.Right, Bottom: client.Bottom}
		start, length = s.track.Left, s.track.Width()
	} else {
		s.track = geom.Rect{Left: client.Right - thickness, Top: client.Top, Right: client.Right, Bottom: client.Bottom}
		start, length = s.track.Top, s.track.Height()
	}

	thumbLen := max(length/s.ratio, minThumbLength)
	if thumbLen > length {
		thumbLen = length
	}
	var frac float32
	if s.hi > s.lo {
		frac = (s.displacement - s.lo) / (s.hi - s.lo)
	}
	pos := start + frac*(length-thumbLen)

	if s.axis == Horizontal {
		s.thumb = geom.Rect{Left: pos, Top: s.track.Top, Right: pos + thumbLen, Bottom: s.track.Bottom}
	} else {
		s.thumb = geom.Rect{Left: s.track.Left, Top: pos, Right: s.track.Right, Bottom: pos + thumbLen}
	}
}

// coord picks this axis' component of a point.
func (s *Scrollbar) coord(x, y float32) float32 {
	if s.axis == Horizontal {
		return x
	}
	return y
}
