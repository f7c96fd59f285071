// Package raster paints a retained.Window into an in-memory RGBA image. It
// backs headless rendering and snapshot tests.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/agiangrant/pagekit/geom"
	"github.com/agiangrant/pagekit/retained"
)

// Theme holds the colours used when a widget's style leaves one unset.
type Theme struct {
	Window     color.RGBA
	Text       color.RGBA
	Face       color.RGBA
	Border     color.RGBA
	Hot        color.RGBA
	Pressed    color.RGBA
	Selected   color.RGBA
	Disabled   color.RGBA
	Caption    color.RGBA
	Track      color.RGBA
	Thumb      color.RGBA
	GroupFrame color.RGBA
}

// DefaultTheme is a light theme.
var DefaultTheme = Theme{
	Window:     color.RGBA{0xf3, 0xf3, 0xf3, 0xff},
	Text:       color.RGBA{0x20, 0x20, 0x20, 0xff},
	Face:       color.RGBA{0xe1, 0xe1, 0xe1, 0xff},
	Border:     color.RGBA{0xad, 0xad, 0xad, 0xff},
	Hot:        color.RGBA{0xe5, 0xf1, 0xfb, 0xff},
	Pressed:    color.RGBA{0xcc, 0xe4, 0xf7, 0xff},
	Selected:   color.RGBA{0x00, 0x78, 0xd7, 0xff},
	Disabled:   color.RGBA{0xa0, 0xa0, 0xa0, 0xff},
	Caption:    color.RGBA{0xff, 0xff, 0xff, 0xff},
	Track:      color.RGBA{0xe8, 0xe8, 0xe8, 0xff},
	Thumb:      color.RGBA{0xa6, 0xa6, 0xa6, 0xff},
	GroupFrame: color.RGBA{0xd0, 0xd0, 0xd0, 0xff},
}

// brush is the per-widget resource: resolved colours.
type brush struct {
	fg, bg, border color.RGBA
}

// Renderer implements retained.Renderer on an *image.RGBA.
type Renderer struct {
	img    *image.RGBA
	face   font.Face
	theme  Theme
	logger *slog.Logger

	brushes map[retained.WidgetID]brush
	frames  int

	// lose makes the next BeginPaint report a lost device.
	lose bool
}

// New returns a renderer drawing into a width x height image.
func New(width, height int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		face:    basicfont.Face7x13,
		theme:   DefaultTheme,
		logger:  logger,
		brushes: make(map[retained.WidgetID]brush),
	}
}

// SetTheme replaces the fallback colours. Existing brushes are kept until
// their widgets' resources are recreated.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Image returns the target image.
func (r *Renderer) Image() *image.RGBA { return r.img }

// Frames returns how many paints completed.
func (r *Renderer) Frames() int { return r.frames }

// Resources returns how many widgets currently hold a brush.
func (r *Renderer) Resources() int { return len(r.brushes) }

// Resize reallocates the target. Brushes survive.
func (r *Renderer) Resize(width, height int) {
	if r.img.Bounds().Dx() == width && r.img.Bounds().Dy() == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// LoseDevice makes the next paint fail with retained.ErrRecreateResources.
func (r *Renderer) LoseDevice() { r.lose = true }

// TextWidth measures s in pixels with the renderer's face.
func (r *Renderer) TextWidth(s string) float32 {
	return float32(font.MeasureString(r.face, s).Ceil())
}

// LineHeight is the height of one text line.
func (r *Renderer) LineHeight() float32 {
	return float32(r.face.Metrics().Height.Ceil())
}

func (r *Renderer) CreateResources(w *retained.Widget) error {
	st := w.Style()
	b := brush{
		fg:     pick(st.Color, r.theme.Text),
		bg:     pick(st.Background, r.theme.Face),
		border: pick(st.Border, r.theme.Border),
	}
	switch w.Kind() {
	case retained.KindLabel:
		b.bg = pick(st.Background, color.RGBA{})
	case retained.KindGroup:
		b.border = pick(st.Border, r.theme.GroupFrame)
	}
	if w.Chrome() {
		b.bg = pick(st.Background, r.theme.Caption)
	}
	r.brushes[w.ID()] = b
	return nil
}

func (r *Renderer) DiscardResources(w *retained.Widget) {
	delete(r.brushes, w.ID())
}

func (r *Renderer) BeginPaint() error {
	if r.lose {
		r.lose = false
		r.brushes = make(map[retained.WidgetID]brush)
		return retained.ErrRecreateResources
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.theme.Window), image.Point{}, draw.Src)
	return nil
}

func (r *Renderer) EndPaint() error {
	r.frames++
	return nil
}

// Draw paints w and returns the area its text needed. Pages that are not
// shown are only measured.
func (r *Renderer) Draw(w *retained.Widget, ctx retained.DrawContext) geom.Rect {
	rect := w.Rendered()
	extent := rect
	if text := w.Text(); text != "" && w.Kind() != retained.KindGroup {
		extent = extent.Union(geom.RectXYWH(rect.Left+padding, rect.Top, r.TextWidth(text)+2*padding, r.LineHeight()))
	}
	if !ctx.Render {
		return extent
	}

	b, ok := r.brushes[w.ID()]
	if !ok {
		r.logger.Debug("draw without resources", "widget", w.Path())
		return extent
	}
	clip := rect.Intersect(ctx.Clip)

	switch w.Kind() {
	case retained.KindGroup:
		r.frame(rect, clip, b.border)
		if w.Text() != "" {
			r.text(w.Text(), rect.Left+padding, rect.Top, ctx.Clip, b.fg)
		}
		return rect
	case retained.KindList:
		r.fill(clip, b.bg)
		r.frame(rect, clip, b.border)
		r.list(w, clip, b)
		return extent
	}

	bg := b.bg
	switch {
	case w.Pressed():
		bg = r.theme.Pressed
	case w.Hot() && w.Kind() != retained.KindLabel:
		bg = r.theme.Hot
	}
	r.fill(clip, bg)
	if w.Kind() != retained.KindLabel {
		r.frame(rect, clip, b.border)
	}
	if w.Selected() {
		r.frame(rect.Inset(2), clip, r.theme.Selected)
	}

	fg := b.fg
	if !w.Enabled() {
		fg = r.theme.Disabled
	}
	text := w.Text()
	if t, ok := retained.ToggleOf(w); ok {
		if t.On() {
			text = "[x] " + text
		} else {
			text = "[ ] " + text
		}
	}
	if w.Kind() == retained.KindTabControl {
		r.tabs(w, ctx.Clip, b)
	}
	r.text(text, rect.Left+padding, rect.Top+(rect.Height()-r.LineHeight())/2, clip, fg)
	return extent
}

func (r *Renderer) DrawScrollbar(s *retained.Scrollbar, ctx retained.DrawContext) {
	r.fill(s.Track(), r.theme.Track)
	r.fill(s.Thumb(), r.theme.Thumb)
}

func (r *Renderer) list(w *retained.Widget, clip geom.Rect, b brush) {
	l, _ := retained.ListOf(w)
	rect := w.Rendered()
	row := l.RowHeight()
	items := l.Items()
	for i := l.First(); i < len(items); i++ {
		top := rect.Top + float32(i-l.First())*row
		if top >= rect.Bottom {
			break
		}
		line := geom.Rect{Left: rect.Left, Top: top, Right: rect.Right, Bottom: top + row}.Intersect(clip)
		fg := b.fg
		if i == l.Selected() {
			r.fill(line, r.theme.Selected)
			fg = r.theme.Caption
		}
		r.text(items[i], rect.Left+padding, top+(row-r.LineHeight())/2, line, fg)
	}
}

func (r *Renderer) tabs(w *retained.Widget, clip geom.Rect, b brush) {
	names := w.Tabs().Names()
	current := w.Tabs().CurrentName()
	for i, h := range w.Tabs().Headers() {
		if i >= len(names) {
			break
		}
		hc := h.Intersect(clip)
		if names[i] == current {
			r.fill(hc, r.theme.Caption)
		}
		r.frame(h, hc, b.border)
		r.text(names[i], h.Left+padding, h.Top+(h.Height()-r.LineHeight())/2, hc, b.fg)
	}
}

const padding = 4

func (r *Renderer) fill(rect geom.Rect, c color.RGBA) {
	if c.A == 0 || rect.IsEmpty() {
		return
	}
	dst := toImage(rect).Intersect(r.img.Bounds())
	if dst.Empty() {
		return
	}
	draw.Draw(r.img, dst, image.NewUniform(c), image.Point{}, draw.Over)
}

// frame draws a one-pixel border of rect, clipped to clip.
func (r *Renderer) frame(rect, clip geom.Rect, c color.RGBA) {
	edges := []geom.Rect{
		{Left: rect.Left, Top: rect.Top, Right: rect.Right, Bottom: rect.Top + 1},
		{Left: rect.Left, Top: rect.Bottom - 1, Right: rect.Right, Bottom: rect.Bottom},
		{Left: rect.Left, Top: rect.Top, Right: rect.Left + 1, Bottom: rect.Bottom},
		{Left: rect.Right - 1, Top: rect.Top, Right: rect.Right, Bottom: rect.Bottom},
	}
	for _, e := range edges {
		r.fill(e.Intersect(clip), c)
	}
}

func (r *Renderer) text(s string, x, y float32, clip geom.Rect, c color.RGBA) {
	if s == "" || clip.IsEmpty() {
		return
	}
	bounds := toImage(clip).Intersect(r.img.Bounds())
	if bounds.Empty() {
		return
	}
	d := &font.Drawer{
		Dst:  r.img.SubImage(bounds).(*image.RGBA),
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(int(x), int(y)+r.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// WritePNG encodes the last painted frame.
func (r *Renderer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes the last painted frame to path.
func (r *Renderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func pick(rgba uint32, fallback color.RGBA) color.RGBA {
	if rgba == 0 {
		return fallback
	}
	return color.RGBA{R: uint8(rgba >> 24), G: uint8(rgba >> 16), B: uint8(rgba >> 8), A: uint8(rgba)}
}

func toImage(r geom.Rect) image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}
