package geom

// ResizePolicy controls how a widget's rectangle responds when its parent
// changes size. Percentages apply to the change in parent size, not to the
// parent's absolute size: PercX = 100 keeps a widget anchored to the right
// edge, PercWidth = 100 makes it stretch with the parent.
//
// A zero value is inert. Min/max bounds only take effect when nonzero.
type ResizePolicy struct {
	PercX      float32 `toml:"perc_x" yaml:"perc_x"`
	PercY      float32 `toml:"perc_y" yaml:"perc_y"`
	PercWidth  float32 `toml:"perc_width" yaml:"perc_width"`
	PercHeight float32 `toml:"perc_height" yaml:"perc_height"`

	MinX      float32 `toml:"min_x" yaml:"min_x"`
	MaxX      float32 `toml:"max_x" yaml:"max_x"`
	MinY      float32 `toml:"min_y" yaml:"min_y"`
	MaxY      float32 `toml:"max_y" yaml:"max_y"`
	MinWidth  float32 `toml:"min_width" yaml:"min_width"`
	MaxWidth  float32 `toml:"max_width" yaml:"max_width"`
	MinHeight float32 `toml:"min_height" yaml:"min_height"`
	MaxHeight float32 `toml:"max_height" yaml:"max_height"`
}

// IsZero reports whether p leaves rectangles untouched by any delta.
func (p ResizePolicy) IsZero() bool {
	return p.PercX == 0 && p.PercY == 0 && p.PercWidth == 0 && p.PercHeight == 0
}

// Anchored returns a policy that pins the widget to the right and/or bottom
// edge of its parent.
func Anchored(right, bottom bool) ResizePolicy {
	var p ResizePolicy
	if right {
		p.PercX = 100
	}
	if bottom {
		p.PercY = 100
	}
	return p
}

// Stretched returns a policy that grows the widget with its parent.
func Stretched(horizontal, vertical bool) ResizePolicy {
	var p ResizePolicy
	if horizontal {
		p.PercWidth = 100
	}
	if vertical {
		p.PercHeight = 100
	}
	return p
}

// Resize maps a design-time rectangle to its rectangle under the given
// parent size delta. Calling it with a zero delta returns r unchanged.
func Resize(r Rect, p ResizePolicy, deltaWidth, deltaHeight float32) Rect {
	x := r.Left + p.PercX*deltaWidth/100
	y := r.Top + p.PercY*deltaHeight/100
	width := r.Width() + p.PercWidth*deltaWidth/100
	height := r.Height() + p.PercHeight*deltaHeight/100

	x = clampBound(x, p.MinX, p.MaxX)
	y = clampBound(y, p.MinY, p.MaxY)
	width = clampBound(width, p.MinWidth, p.MaxWidth)
	height = clampBound(height, p.MinHeight, p.MaxHeight)

	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// clampBound applies lo and hi only when they are set.
func clampBound(v, lo, hi float32) float32 {
	if lo != 0 && v < lo {
		v = lo
	}
	if hi != 0 && v > hi {
		v = hi
	}
	return v
}
