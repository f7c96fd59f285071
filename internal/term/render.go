package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/agiangrant/pagekit/geom"
	"github.com/agiangrant/pagekit/retained"
)

// Renderer draws widgets as terminal cells. Window coordinates are divided
// by the cell size to find the cells a widget covers.
type Renderer struct {
	screen       Screen
	cellW, cellH float32
	styles       map[retained.WidgetID]tcell.Style
}

// NewRenderer returns a cell renderer for screen.
func NewRenderer(screen Screen, cellW, cellH float32) *Renderer {
	return &Renderer{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		styles: make(map[retained.WidgetID]tcell.Style),
	}
}

var (
	baseStyle     = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	faceStyle     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	hotStyle      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	pressedStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
	trackStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
)

func (r *Renderer) CreateResources(w *retained.Widget) error {
	st := faceStyle
	switch w.Kind() {
	case retained.KindLabel, retained.KindGroup, retained.KindPane, retained.KindTabControl:
		st = baseStyle
	}
	s := w.Style()
	if s.Color != 0 {
		st = st.Foreground(rgb(s.Color))
	}
	if s.Background != 0 {
		st = st.Background(rgb(s.Background))
	}
	r.styles[w.ID()] = st
	return nil
}

func (r *Renderer) DiscardResources(w *retained.Widget) {
	delete(r.styles, w.ID())
}

func (r *Renderer) BeginPaint() error {
	r.screen.Clear()
	return nil
}

func (r *Renderer) EndPaint() error {
	r.screen.Show()
	return nil
}

func (r *Renderer) Draw(w *retained.Widget, ctx retained.DrawContext) geom.Rect {
	rect := w.Rendered()
	extent := rect
	if text := w.Text(); text != "" {
		width := float32(runewidth.StringWidth(text)+1) * r.cellW
		extent = extent.Union(geom.RectXYWH(rect.Left, rect.Top, width, r.cellH))
	}
	if !ctx.Render {
		return extent
	}

	st, ok := r.styles[w.ID()]
	if !ok {
		return extent
	}
	switch {
	case w.Pressed():
		st = pressedStyle
	case w.Selected():
		st = selectedStyle
	case w.Hot() && w.Kind() != retained.KindLabel:
		st = hotStyle
	}
	if !w.Enabled() {
		st = st.Dim(true)
	}

	clip := r.cells(rect.Intersect(ctx.Clip))
	switch w.Kind() {
	case retained.KindGroup:
		r.box(r.cells(rect), clip, baseStyle)
		r.text(r.cells(rect), clip, 1, 0, w.Text(), baseStyle)
		return rect
	case retained.KindList:
		r.fill(clip, st)
		r.list(w, clip, st)
		return extent
	case retained.KindTabControl:
		r.fill(clip, st)
		r.tabs(w, r.cells(ctx.Clip), st)
		return extent
	}

	r.fill(clip, st)
	text := w.Text()
	if t, ok := retained.ToggleOf(w); ok {
		if t.On() {
			text = "[x] " + text
		} else {
			text = "[ ] " + text
		}
	}
	cr := r.cells(rect)
	r.text(cr, clip, 1, (cr.Dy()-1)/2, text, st)
	return extent
}

func (r *Renderer) DrawScrollbar(s *retained.Scrollbar, _ retained.DrawContext) {
	track, thumb := r.cells(s.Track()), r.cells(s.Thumb())
	for y := track.Min.Y; y < track.Max.Y; y++ {
		for x := track.Min.X; x < track.Max.X; x++ {
			ch := '░'
			if y >= thumb.Min.Y && y < thumb.Max.Y && x >= thumb.Min.X && x < thumb.Max.X {
				ch = '█'
			}
			r.screen.SetContent(x, y, ch, nil, trackStyle)
		}
	}
}

func (r *Renderer) list(w *retained.Widget, clip cellRect, st tcell.Style) {
	l, _ := retained.ListOf(w)
	cr := r.cells(w.Rendered())
	rows := max(1, int(l.RowHeight()/r.cellH))
	items := l.Items()
	for i := l.First(); i < len(items); i++ {
		y := (i - l.First()) * rows
		if cr.Min.Y+y >= cr.Max.Y {
			break
		}
		rowStyle := st
		if i == l.Selected() {
			rowStyle = selectedStyle
			r.fill(cellRect{Min: cellPoint{cr.Min.X, cr.Min.Y + y}, Max: cellPoint{cr.Max.X, cr.Min.Y + y + 1}}.intersect(clip), rowStyle)
		}
		r.text(cr, clip, 1, y, items[i], rowStyle)
	}
}

func (r *Renderer) tabs(w *retained.Widget, clip cellRect, st tcell.Style) {
	names := w.Tabs().Names()
	current := w.Tabs().CurrentName()
	for i, h := range w.Tabs().Headers() {
		if i >= len(names) {
			break
		}
		hs := st
		if names[i] == current {
			hs = hs.Reverse(true)
		}
		hc := r.cells(h)
		r.fill(hc.intersect(clip), hs)
		r.text(hc, clip, 1, 0, names[i], hs)
	}
}

func (r *Renderer) fill(c cellRect, st tcell.Style) {
	for y := c.Min.Y; y < c.Max.Y; y++ {
		for x := c.Min.X; x < c.Max.X; x++ {
			r.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (r *Renderer) box(c, clip cellRect, st tcell.Style) {
	for x := c.Min.X; x < c.Max.X; x++ {
		r.set(x, c.Min.Y, tcell.RuneHLine, clip, st)
		r.set(x, c.Max.Y-1, tcell.RuneHLine, clip, st)
	}
	for y := c.Min.Y; y < c.Max.Y; y++ {
		r.set(c.Min.X, y, tcell.RuneVLine, clip, st)
		r.set(c.Max.X-1, y, tcell.RuneVLine, clip, st)
	}
	r.set(c.Min.X, c.Min.Y, tcell.RuneULCorner, clip, st)
	r.set(c.Max.X-1, c.Min.Y, tcell.RuneURCorner, clip, st)
	r.set(c.Min.X, c.Max.Y-1, tcell.RuneLLCorner, clip, st)
	r.set(c.Max.X-1, c.Max.Y-1, tcell.RuneLRCorner, clip, st)
}

// text writes s starting dx cells right and dy rows down from c's corner,
// dropping cells outside clip.
func (r *Renderer) text(c, clip cellRect, dx, dy int, s string, st tcell.Style) {
	x, y := c.Min.X+dx, c.Min.Y+dy
	for _, ch := range s {
		r.set(x, y, ch, clip, st)
		x += runewidth.RuneWidth(ch)
	}
}

func (r *Renderer) set(x, y int, ch rune, clip cellRect, st tcell.Style) {
	if clip.contains(x, y) {
		r.screen.SetContent(x, y, ch, nil, st)
	}
}

type cellPoint struct{ X, Y int }

type cellRect struct{ Min, Max cellPoint }

func (c cellRect) Dy() int { return c.Max.Y - c.Min.Y }

func (c cellRect) contains(x, y int) bool {
	return x >= c.Min.X && x < c.Max.X && y >= c.Min.Y && y < c.Max.Y
}

func (c cellRect) intersect(o cellRect) cellRect {
	out := cellRect{
		Min: cellPoint{max(c.Min.X, o.Min.X), max(c.Min.Y, o.Min.Y)},
		Max: cellPoint{min(c.Max.X, o.Max.X), min(c.Max.Y, o.Max.Y)},
	}
	if out.Max.X < out.Min.X || out.Max.Y < out.Min.Y {
		return cellRect{}
	}
	return out
}

// cells maps a window rectangle to the cells it touches.
func (r *Renderer) cells(rect geom.Rect) cellRect {
	if rect.IsEmpty() {
		return cellRect{}
	}
	return cellRect{
		Min: cellPoint{int(math.Floor(float64(rect.Left / r.cellW))), int(math.Floor(float64(rect.Top / r.cellH)))},
		Max: cellPoint{int(math.Ceil(float64(rect.Right / r.cellW))), int(math.Ceil(float64(rect.Bottom / r.cellH)))},
	}
}

func rgb(v uint32) tcell.Color {
	return tcell.NewRGBColor(int32(v>>24&0xff), int32(v>>16&0xff), int32(v>>8&0xff))
}
