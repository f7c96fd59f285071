// Package geom provides the rectangle math and resize policies used by the
// retained widget tree. Everything here is pure: no function mutates its
// arguments or depends on window state.
package geom

// Rect is an axis-aligned rectangle in device-independent pixels.
// Right and Bottom are exclusive edges.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// RectXYWH builds a rectangle from an origin and a size.
func RectXYWH(x, y, width, height float32) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Size returns width and height.
func (r Rect) Size() (float32, float32) { return r.Width(), r.Height() }

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Contains checks if a point is within the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Right &&
		y >= r.Top && y < r.Bottom
}

// Offset translates r by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Inset shrinks r by d on all four sides. The result never inverts.
func (r Rect) Inset(d float32) Rect {
	out := Rect{Left: r.Left + d, Top: r.Top + d, Right: r.Right - d, Bottom: r.Bottom - d}
	if out.Right < out.Left {
		mid := (r.Left + r.Right) / 2
		out.Left, out.Right = mid, mid
	}
	if out.Bottom < out.Top {
		mid := (r.Top + r.Bottom) / 2
		out.Top, out.Bottom = mid, mid
	}
	return out
}

// Expand grows r by d on all four sides.
func (r Rect) Expand(d float32) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Union returns the smallest rectangle containing both r and o.
// An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Intersect returns the overlap of r and o, or the zero Rect if they
// do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}
