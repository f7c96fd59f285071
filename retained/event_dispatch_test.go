package retained

import (
	"testing"

	"github.com/agiangrant/pagekit/geom"
)

func TestClickFiresOnceInside(t *testing.T) {
	tests := []struct {
		name       string
		upX, upY   float32
		wantClicks int
	}{
		{"release inside", 20, 50, 1},
		{"release outside", 200, 200, 0},
		{"release on the edge", 90, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, main := newTestWindow()
			clicks := 0
			ok := main.AddButton("ok", "OK").
				SetRect(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 35}).
				OnClick(func() { clicks++ })
			win.Layout()

			win.HandleEvent(NewPointerEvent(EventPointerDown, 20, 50, MouseButtonLeft))
			if !ok.Pressed() {
				t.Fatal("button not pressed after pointer down")
			}
			win.HandleEvent(NewPointerEvent(EventPointerUp, tt.upX, tt.upY, MouseButtonLeft))

			if clicks != tt.wantClicks {
				t.Errorf("clicks = %d, want %d", clicks, tt.wantClicks)
			}
			if ok.Pressed() {
				t.Error("pressed flag survived pointer up")
			}
		})
	}
}

func TestPressedClearedBeforeCallback(t *testing.T) {
	win, main := newTestWindow()
	var pressedDuringClick bool
	var ok *Widget
	ok = main.AddButton("ok", "OK").
		SetRect(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 35}).
		OnClick(func() { pressedDuringClick = ok.Pressed() })
	win.Layout()

	click(win, 20, 50)
	if pressedDuringClick {
		t.Error("widget still pressed inside its click callback")
	}
	if !ok.Selected() {
		t.Error("clicked widget not selected")
	}
}

func TestDisabledAndStaticWidgetsIgnorePointer(t *testing.T) {
	win, main := newTestWindow()
	clicks := 0
	main.AddButton("off", "Off").
		SetRect(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 35}).
		SetEnabled(false).
		OnClick(func() { clicks++ })
	main.AddLabel("label", "Label").
		SetRect(geom.Rect{Left: 100, Top: 10, Right: 190, Bottom: 35})
	win.Layout()

	click(win, 20, 50)
	if clicks != 0 {
		t.Errorf("disabled button clicked %d times", clicks)
	}
	if r := win.Events().HitTest(120, 50); r != nil {
		t.Errorf("HitTest on a label = %v, want nil", r.Widget)
	}
}

func TestFirstMatchWins(t *testing.T) {
	win, main := newTestWindow()
	under := main.AddButton("under", "").SetRect(geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100})
	main.AddButton("over", "").SetRect(geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100})
	win.Layout()

	r := win.Events().HitTest(50, 80)
	if r == nil || r.Widget != under {
		t.Fatalf("HitTest = %v, want the first inserted widget", r)
	}
	if r.LocalX != 50 || r.LocalY != 50 {
		t.Errorf("local point = (%v, %v), want (50, 50)", r.LocalX, r.LocalY)
	}
}

func TestHitTestNestedPane(t *testing.T) {
	win, main := newTestWindow()
	pane := main.AddPane("pane").SetRect(geom.Rect{Left: 100, Top: 100, Right: 300, Bottom: 200})
	inner := pane.Content().AddButton("inner", "In").SetRect(geom.Rect{Left: 10, Top: 10, Right: 60, Bottom: 40})
	win.Layout()

	// pane: {100,130,300,230}; content origin (101,131); inner: {111,141,161,171}
	tests := []struct {
		name   string
		x, y   float32
		want   *Widget
		chainN int
	}{
		{"inner button", 120, 150, inner, 1},
		{"pane background", 250, 200, pane, 0},
		{"pane border", 100, 130, pane, 0},
		{"outside", 350, 250, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := win.Events().HitTest(tt.x, tt.y)
			if tt.want == nil {
				if r != nil {
					t.Errorf("HitTest = %v, want nil", r.Widget)
				}
				return
			}
			if r == nil || r.Widget != tt.want {
				t.Fatalf("HitTest = %v, want %v", r, tt.want)
			}
			if len(r.Chain) != tt.chainN {
				t.Errorf("len(Chain) = %d, want %d", len(r.Chain), tt.chainN)
			}
		})
	}

	pane.SetEnabled(false)
	win.Layout()
	if r := win.Events().HitTest(120, 150); r != nil {
		t.Errorf("HitTest inside a disabled pane = %v, want nil", r.Widget)
	}
}

func TestPaneContentIsClipped(t *testing.T) {
	win, main := newTestWindow()
	pane := main.AddPane("pane").SetRect(geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100})
	// Sticks out past the pane's right edge.
	wide := pane.Content().AddButton("wide", "").SetRect(geom.Rect{Left: 50, Top: 0, Right: 200, Bottom: 20})
	win.Layout()

	if r := win.Events().HitTest(60, 40); r == nil || r.Widget != wide {
		t.Errorf("HitTest inside the clip = %v, want wide", r)
	}
	if r := win.Events().HitTest(150, 40); r != nil {
		t.Errorf("HitTest outside the clip = %v, want nil", r.Widget)
	}
}

func TestTabControlHeaderClickAndHitTest(t *testing.T) {
	win, main := newTestWindow()
	tc := main.AddTabControl("tabs").SetRect(geom.Rect{Left: 10, Top: 100, Right: 210, Bottom: 260})
	x := tc.Tabs().Add("one").AddButton("x", "X").SetRect(geom.Rect{Right: 50, Bottom: 20})
	y := tc.Tabs().Add("two").AddButton("y", "Y").SetRect(geom.Rect{Right: 50, Bottom: 20})
	win.Layout()

	// body origin (11,156): x and y both at {11,156,61,176}
	if r := win.Events().HitTest(20, 160); r == nil || r.Widget != x {
		t.Fatalf("HitTest on the first tab = %v, want x", r)
	}

	// Headers are 96 wide from the control's left edge: the second
	// starts at 106.
	click(win, 150, 140)
	if got := tc.Tabs().CurrentName(); got != "two" {
		t.Fatalf("current tab = %q after header click, want two", got)
	}
	win.Layout()
	if r := win.Events().HitTest(20, 160); r == nil || r.Widget != y {
		t.Errorf("HitTest on the second tab = %v, want y", r)
	}
	if _, ok := win.Find("main/tabs/one/x"); !ok {
		t.Error("inactive tab widget not addressable")
	}
}

func TestTabOrderSkipsDisabledAndWraps(t *testing.T) {
	win, main := newTestWindow()
	main.AddButton("A", "A").SetEnabled(false)
	b := main.AddButton("B", "B")
	c := main.AddButton("C", "C")

	tab := NewKeyEvent(EventKeyDown, KeyTab, 0)
	for i, want := range []*Widget{b, c, b, c} {
		win.HandleEvent(tab)
		if got := win.Events().Selected(); got != want {
			t.Fatalf("after Tab #%d selected = %v, want %v", i+1, got, want)
		}
	}
	if !c.Selected() || b.Selected() {
		t.Error("selected flags out of sync with the dispatcher")
	}
}

func TestShiftTabWalksBackwards(t *testing.T) {
	win, main := newTestWindow()
	b := main.AddButton("B", "B")
	c := main.AddButton("C", "C")

	back := NewKeyEvent(EventKeyDown, KeyTab, ModShift)
	win.HandleEvent(back)
	if got := win.Events().Selected(); got != c {
		t.Fatalf("Shift+Tab with no selection = %v, want C", got)
	}
	win.HandleEvent(back)
	if got := win.Events().Selected(); got != b {
		t.Errorf("Shift+Tab = %v, want B", got)
	}
}

func TestTabOrderDescendsIntoContainers(t *testing.T) {
	win, main := newTestWindow()
	a := main.AddButton("a", "")
	pane := main.AddPane("pane")
	inner := pane.Content().AddButton("inner", "")
	tc := main.AddTabControl("tabs")
	one := tc.Tabs().Add("one").AddButton("one", "")
	tc.Tabs().Add("two").AddButton("two", "")
	z := main.AddButton("z", "")

	got := win.Events().FocusOrder()
	want := []*Widget{a, inner, one, z}
	if len(got) != len(want) {
		t.Fatalf("FocusOrder() has %d widgets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FocusOrder()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	pane.SetVisible(false)
	if n := len(win.Events().FocusOrder()); n != 3 {
		t.Errorf("FocusOrder() with hidden pane has %d widgets, want 3", n)
	}
}

func TestChromeButtonsNeedTabStop(t *testing.T) {
	win, main := newTestWindow()
	main.AddButton("only", "")

	if n := len(win.Events().FocusOrder()); n != 1 {
		t.Fatalf("FocusOrder() = %d widgets, want 1 without chrome", n)
	}
	closeBtn, _ := win.Find("chrome/close")
	closeBtn.SetTabStop(true)
	order := win.Events().FocusOrder()
	if len(order) != 2 || order[1] != closeBtn {
		t.Errorf("FocusOrder() = %v, want close button last", order)
	}
}

func TestSpaceActivatesSelection(t *testing.T) {
	win, main := newTestWindow()
	clicks := 0
	b := main.AddButton("B", "B").OnClick(func() { clicks++ })

	if !win.Focus("main/B") {
		t.Fatal("Focus(main/B) = false")
	}
	win.HandleEvent(NewKeyEvent(EventKeyDown, KeySpace, 0))
	if !b.Pressed() {
		t.Error("Space down did not press the selection")
	}
	// Auto-repeat does not press again.
	win.HandleEvent(NewKeyEvent(EventKeyDown, KeySpace, 0))
	win.HandleEvent(NewKeyEvent(EventKeyUp, KeySpace, 0))
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if b.Pressed() {
		t.Error("pressed survived Space up")
	}
}

func TestSpaceIgnoresChromeButtons(t *testing.T) {
	win, _ := newTestWindow()
	closed := 0
	win.OnClose(func() { closed++ })

	if !win.Focus("chrome/close") {
		t.Fatal("Focus(chrome/close) = false")
	}
	win.HandleEvent(NewKeyEvent(EventKeyDown, KeySpace, 0))
	win.HandleEvent(NewKeyEvent(EventKeyUp, KeySpace, 0))
	if closed != 0 {
		t.Errorf("Space activated the close button %d times", closed)
	}

	win.Layout()
	// The close button is the rightmost 46px of the caption.
	click(win, 390, 10)
	if closed != 1 {
		t.Errorf("close clicks = %d, want 1", closed)
	}
}

func TestWheelGoesToHotWidget(t *testing.T) {
	win, main := newTestWindow()
	lw := main.AddList("list", "a", "b", "c", "d", "e", "f", "g").
		SetRect(geom.Rect{Left: 10, Top: 10, Right: 110, Bottom: 70})
	list, _ := ListOf(lw)
	win.Layout()

	win.HandleEvent(NewPointerEvent(EventPointerMove, 20, 50, MouseButtonNone))
	if !lw.Hot() {
		t.Fatal("list not hot under the pointer")
	}
	win.HandleEvent(NewWheelEvent(20, 50, -2*WheelDelta))
	if got := list.First(); got != 2 {
		t.Errorf("First() = %d after two notches down, want 2", got)
	}
	win.HandleEvent(NewWheelEvent(20, 50, 10*WheelDelta))
	if got := list.First(); got != 0 {
		t.Errorf("First() = %d after scrolling past the top, want 0", got)
	}
	win.HandleEvent(NewWheelEvent(20, 50, -10*WheelDelta))
	if got := list.First(); got != 4 {
		t.Errorf("First() = %d after scrolling past the end, want 4", got)
	}
}

func TestListSelectionByKeyAndClick(t *testing.T) {
	win, main := newTestWindow()
	lw := main.AddList("list", "a", "b", "c").
		SetRect(geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 60})
	list, _ := ListOf(lw)
	var picked string
	list.OnSelect(func(_ int, item string) { picked = item })
	win.Layout()

	// Rows are 20px; the page starts at y=30.
	click(win, 10, 75)
	if list.Selected() != 2 || picked != "c" {
		t.Errorf("click selected %d (%q), want 2 (c)", list.Selected(), picked)
	}
	win.HandleEvent(NewKeyEvent(EventKeyDown, KeyUp, 0))
	if list.Selected() != 1 {
		t.Errorf("Up selected %d, want 1", list.Selected())
	}
}

func TestPaneWheelScrollsContent(t *testing.T) {
	win, main := newTestWindow()
	pane := main.AddPane("pane").SetRect(geom.Rect{Left: 0, Top: 0, Right: 200, Bottom: 100})
	pane.Content().AddLabel("tall", "").SetRect(geom.Rect{Left: 0, Top: 0, Right: 50, Bottom: 500})
	win.Layout()

	win.HandleEvent(NewWheelEvent(100, 80, -WheelDelta))
	if d := pane.Content().VScrollbar().Displacement(); d <= 0 {
		t.Errorf("pane displacement = %v after wheel down, want > 0", d)
	}
}

func TestScrollbarDragConsumesPointer(t *testing.T) {
	cfg := DefaultWindowConfig()
	cfg.Width, cfg.Height, cfg.Tolerance = 400, 300, 0
	win := NewWindow(testContext(), cfg)
	main := win.AddPage("main")
	pane := main.AddPane("pane").SetRect(geom.Rect{Left: 0, Top: 0, Right: 200, Bottom: 100})
	btn := pane.Content().AddButton("tall", "").SetRect(geom.Rect{Left: 0, Top: 0, Right: 50, Bottom: 300})
	win.Layout()

	sb := pane.Content().VScrollbar()
	if !sb.Visible() {
		t.Fatal("pane scrollbar not visible")
	}
	// Track {190,30,200,130}; thumb starts at the top.
	win.HandleEvent(NewPointerEvent(EventPointerDown, 195, 40, MouseButtonLeft))
	if win.Events().Dragging() != sb {
		t.Fatal("thumb press did not start a drag")
	}
	if btn.Pressed() {
		t.Error("drag also pressed a widget")
	}

	win.HandleEvent(NewPointerEvent(EventPointerMove, 195, 1000, MouseButtonNone))
	_, hi := sb.Bounds()
	if !near(sb.Displacement(), hi) {
		t.Errorf("Displacement() = %v, want clamped to %v", sb.Displacement(), hi)
	}
	win.HandleEvent(NewPointerEvent(EventPointerUp, 195, 1000, MouseButtonLeft))
	if win.Events().Dragging() != nil {
		t.Error("drag survived pointer up")
	}

	win.Layout()
	if got := btn.Rendered().Bottom; !near(got, 130) {
		t.Errorf("content bottom = %v after scrolling to the end, want 130", got)
	}
}

func TestPressDuringDragEndsDragOnly(t *testing.T) {
	cfg := DefaultWindowConfig()
	cfg.Width, cfg.Height, cfg.Tolerance = 400, 300, 0
	win := NewWindow(testContext(), cfg)
	main := win.AddPage("main")
	pane := main.AddPane("pane").SetRect(geom.Rect{Left: 0, Top: 0, Right: 200, Bottom: 100})
	pane.Content().AddLabel("tall", "").SetRect(geom.Rect{Left: 0, Top: 0, Right: 50, Bottom: 300})
	other := main.AddButton("other", "Other").SetRect(geom.Rect{Left: 250, Top: 0, Right: 350, Bottom: 40})
	clicks := 0
	other.OnClick(func() { clicks++ })
	win.Layout()

	win.HandleEvent(NewPointerEvent(EventPointerDown, 195, 40, MouseButtonLeft))
	if win.Events().Dragging() == nil {
		t.Fatal("thumb press did not start a drag")
	}
	if win.Events().Wheel(100, 80, -WheelDelta) {
		t.Error("wheel acted during a drag")
	}

	// The release was lost; the next press lands on another widget.
	win.HandleEvent(NewPointerEvent(EventPointerDown, 300, 50, MouseButtonLeft))
	if win.Events().Dragging() != nil {
		t.Error("drag survived a second press")
	}
	if other.Pressed() {
		t.Error("press during a drag reached a widget")
	}
	win.HandleEvent(NewPointerEvent(EventPointerUp, 300, 50, MouseButtonLeft))
	if other.Pressed() || clicks != 0 {
		t.Errorf("pressed = %v, clicks = %d after release, want false, 0", other.Pressed(), clicks)
	}

	click(win, 300, 50)
	if clicks != 1 {
		t.Errorf("clicks = %d once the drag ended, want 1", clicks)
	}
}

func TestWheelAccumulatesPartialNotches(t *testing.T) {
	win, main := newTestWindow()
	lw := main.AddList("list", "a", "b", "c", "d", "e", "f", "g").
		SetRect(geom.Rect{Left: 10, Top: 10, Right: 110, Bottom: 70})
	list, _ := ListOf(lw)
	win.Layout()

	tests := []struct {
		name string
		raw  float32
		want int
	}{
		{"half notch", -WheelDelta / 2, 0},
		{"second half", -WheelDelta / 2, 1},
		{"notch and a half", -WheelDelta * 3 / 2, 2},
		{"direction change drops remainder", WheelDelta / 2, 2},
		{"whole notch up", WheelDelta / 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win.HandleEvent(NewWheelEvent(20, 50, tt.raw))
			if got := list.First(); got != tt.want {
				t.Errorf("First() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemovedWidgetNeverClicks(t *testing.T) {
	win, main := newTestWindow()
	clicks := 0
	main.AddButton("ok", "OK").
		SetRect(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 35}).
		OnClick(func() { clicks++ })
	win.Layout()

	win.HandleEvent(NewPointerEvent(EventPointerDown, 20, 50, MouseButtonLeft))
	main.Remove("ok")
	win.HandleEvent(NewPointerEvent(EventPointerUp, 20, 50, MouseButtonLeft))
	if clicks != 0 {
		t.Errorf("removed widget clicked %d times", clicks)
	}
	if win.Events().Pressed() != nil {
		t.Error("dispatcher still references the removed widget")
	}
}

func TestFocusLostCancelsPress(t *testing.T) {
	win, main := newTestWindow()
	clicks := 0
	ok := main.AddButton("ok", "OK").
		SetRect(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 35}).
		OnClick(func() { clicks++ })
	win.Layout()

	win.HandleEvent(NewPointerEvent(EventPointerDown, 20, 50, MouseButtonLeft))
	win.HandleEvent(NewFocusEvent(false))
	if ok.Pressed() {
		t.Error("pressed survived focus loss")
	}
	win.HandleEvent(NewPointerEvent(EventPointerUp, 20, 50, MouseButtonLeft))
	if clicks != 0 {
		t.Errorf("clicks = %d after focus loss, want 0", clicks)
	}
}

func TestOnlyCurrentPageTakesInput(t *testing.T) {
	win, main := newTestWindow()
	clicks := 0
	main.AddButton("ok", "").SetRect(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 35})
	other := win.AddPage("other")
	other.AddButton("ok", "").
		SetRect(geom.Rect{Left: 10, Top: 10, Right: 90, Bottom: 35}).
		OnClick(func() { clicks++ })
	win.Layout()

	click(win, 20, 50)
	if clicks != 0 {
		t.Fatalf("button on a background page clicked")
	}
	win.ShowPage("other")
	win.Layout()
	click(win, 20, 50)
	if clicks != 1 {
		t.Errorf("clicks = %d after ShowPage, want 1", clicks)
	}
}

func TestToggleClickFlips(t *testing.T) {
	win, main := newTestWindow()
	tw := main.AddToggle("t", "Dark").SetRect(geom.Rect{Right: 40, Bottom: 20})
	tog, _ := ToggleOf(tw)
	var seen []bool
	tog.OnChange(func(on bool) { seen = append(seen, on) })
	win.Layout()

	click(win, 5, 35)
	click(win, 5, 35)
	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("toggle changes = %v, want [true false]", seen)
	}
}

func BenchmarkHitTest(b *testing.B) {
	win, main := newTestWindow()
	for i := 0; i < 50; i++ {
		top := float32(i * 5)
		main.AddButton(string(rune('a'+i%26))+string(rune('a'+i/26)), "").
			SetRect(geom.Rect{Left: 0, Top: top, Right: 100, Bottom: top + 5})
	}
	win.Layout()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		win.Events().HitTest(50, 270)
	}
}
