package retained

import (
	"testing"

	"github.com/agiangrant/pagekit/geom"
)

func TestClampDisplacement(t *testing.T) {
	tests := []struct {
		name      string
		d, lo, hi float32
		want      float32
	}{
		{"inside", 5, -10, 10, 5},
		{"past hi", 25, -10, 10, 10},
		{"past lo", -25, -10, 10, -10},
		{"zero", 0, -10, 10, 0},
		{"no scroll state", 7, 0, 0, 0},
		{"negative in no scroll state", -7, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampDisplacement(tt.d, tt.lo, tt.hi); got != tt.want {
				t.Errorf("clampDisplacement(%v, %v, %v) = %v, want %v", tt.d, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestScrollbarNoOverflow(t *testing.T) {
	s := newScrollbar(nil, Vertical)
	s.SetExtents(0, 100, 0, 80)

	lo, hi := s.Bounds()
	if lo != 0 || hi != 0 {
		t.Errorf("Bounds() = %v, %v, want 0, 0", lo, hi)
	}
	if s.Overflow() {
		t.Error("Overflow() = true for content smaller than the viewport")
	}
	if s.ScrollBy(50) {
		t.Error("ScrollBy moved content that fits")
	}
	if s.BeginDrag(10, 1) {
		t.Error("BeginDrag started without overflow")
	}
}

func TestScrollbarDragStaysInBounds(t *testing.T) {
	s := newScrollbar(nil, Vertical)
	s.SetExtents(0, 100, 0, 300)
	lo, hi := s.Bounds()
	if lo != 0 || !near(hi, 200.0/3) {
		t.Fatalf("Bounds() = %v, %v, want 0, 66.67", lo, hi)
	}

	if !s.BeginDrag(10, 1) {
		t.Fatal("BeginDrag() = false with overflow")
	}
	for _, p := range []float32{40, 1000, -1000, 25, 500, -3, 60} {
		s.Drag(p)
		if d := s.Displacement(); d < lo || d > hi {
			t.Errorf("after Drag(%v) displacement %v outside [%v, %v]", p, d, lo, hi)
		}
	}
	s.EndDrag()
	if s.Dragging() {
		t.Error("Dragging() = true after EndDrag")
	}
}

func TestScrollbarDragRebasesOnCurrentDisplacement(t *testing.T) {
	s := newScrollbar(nil, Horizontal)
	s.SetExtents(0, 100, 0, 200) // ratio 2, bounds [0, 50]

	s.BeginDrag(0, 1)
	s.Drag(20)
	s.EndDrag()
	if got := s.Displacement(); got != 20 {
		t.Fatalf("Displacement() = %v, want 20", got)
	}

	// A second drag starting elsewhere continues from 20.
	s.BeginDrag(300, 1)
	s.Drag(310)
	if got := s.Displacement(); got != 30 {
		t.Errorf("Displacement() = %v, want 30", got)
	}
	s.Drag(1000)
	if got := s.Displacement(); got != 50 {
		t.Errorf("Displacement() = %v, want 50 (clamped)", got)
	}
	s.Drag(-1000)
	if got := s.Displacement(); got != 0 {
		t.Errorf("Displacement() = %v, want 0 (clamped)", got)
	}
}

func TestScrollbarDragScale(t *testing.T) {
	s := newScrollbar(nil, Horizontal)
	s.SetExtents(0, 100, 0, 200)

	s.BeginDrag(0, 2)
	s.Drag(40)
	if got := s.Displacement(); got != 20 {
		t.Errorf("Displacement() = %v, want 20 at scale 2", got)
	}
}

func TestScrollbarTranslateIsDebounced(t *testing.T) {
	s := newScrollbar(nil, Horizontal)
	s.SetExtents(0, 100, 0, 300)

	if !s.Translate() {
		t.Fatal("first Translate after extents change = false")
	}
	if s.Translate() {
		t.Error("Translate recomputed without a change")
	}

	s.ScrollBy(30)
	if !s.Translate() {
		t.Fatal("Translate after ScrollBy = false")
	}
	if got := s.Offset(); got != -30 {
		t.Errorf("Offset() = %v, want -30", got)
	}

	s.WindowResized(-10)
	if !s.ForceTranslate() {
		t.Error("WindowResized did not force a translation")
	}
	if !s.Translate() {
		t.Error("forced Translate = false")
	}
	if s.ForceTranslate() {
		t.Error("force flag survived a translation")
	}
}

func TestScrollbarWindowGrowthPullsContentBack(t *testing.T) {
	s := newScrollbar(nil, Horizontal)
	s.SetExtents(0, 100, 0, 300) // ratio 3
	s.ScrollBy(120)
	s.Translate()
	if got := s.Offset(); got != -120 {
		t.Fatalf("Offset() = %v, want -120", got)
	}
	before := s.Displacement()

	s.WindowResized(50)
	if !s.ForceTranslate() {
		t.Error("ForceTranslate() = false after resize")
	}
	if got := s.Displacement(); got >= before {
		t.Errorf("Displacement() = %v, want less than %v", got, before)
	}

	// The viewport is now 150 wide: ratio 2.
	s.SetExtents(0, 150, 0, 300)
	s.Translate()
	if got := s.Offset(); got != -70 {
		t.Errorf("Offset() = %v, want -70", got)
	}
}

func TestScrollbarRatioChangeKeepsOffset(t *testing.T) {
	s := newScrollbar(nil, Vertical)
	s.SetExtents(0, 100, 0, 300) // ratio 3
	s.ScrollBy(60)
	s.Translate()

	s.SetExtents(0, 100, 0, 500) // ratio 5
	s.Translate()
	if got := s.Offset(); !near(got, -60) {
		t.Errorf("Offset() = %v after content grew, want -60", got)
	}

	s.WindowResized(-20)
	s.SetExtents(0, 80, 0, 500)
	s.Translate()
	if got := s.Offset(); !near(got, -60) {
		t.Errorf("Offset() = %v after viewport shrank, want -60", got)
	}
}

func TestScrollbarResizeIgnoredWhileDragging(t *testing.T) {
	s := newScrollbar(nil, Horizontal)
	s.SetExtents(0, 100, 0, 300)
	s.ScrollBy(60)
	s.Translate()
	s.BeginDrag(0, 1)
	d := s.Displacement()

	s.WindowResized(50)
	if got := s.Displacement(); got != d {
		t.Errorf("Displacement() = %v while dragging, want %v", got, d)
	}
}

func TestScrollbarThumbTracksDisplacement(t *testing.T) {
	p := newPage("main", nil, nil)
	s := p.vscroll
	s.SetExtents(0, 100, 0, 400) // ratio 4, bounds [0, 75]
	client := geom.RectXYWH(0, 0, 200, 100)

	s.layoutTrack(client, 10)
	if got := s.Thumb(); got.Top != 0 || got.Height() != 25 {
		t.Errorf("thumb at rest = %+v, want top 0 height 25", got)
	}

	s.ScrollBy(300)
	s.layoutTrack(client, 10)
	if got := s.Thumb(); got.Bottom != 100 {
		t.Errorf("thumb at end = %+v, want bottom 100", got)
	}
	if got := s.Track(); got.Left != 190 || got.Right != 200 {
		t.Errorf("track = %+v, want along the right edge", got)
	}
}

func BenchmarkScrollbarDrag(b *testing.B) {
	s := newScrollbar(nil, Vertical)
	s.SetExtents(0, 100, 0, 1000)
	s.BeginDrag(0, 1)
	for i := 0; i < b.N; i++ {
		s.Drag(float32(i % 200))
		s.Translate()
	}
}
