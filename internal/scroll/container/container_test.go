package container

import (
	"math"
	"strings"
	"testing"
	"time"

	"headerscroll/internal/scroll/driver"
	"headerscroll/internal/scroll/header"
)

// rows is a minimal Content with n rows of which height are visible.
type rows struct {
	n, height int
	offset    float64
}

func (r *rows) max() float64 { return math.Max(0, float64(r.n-r.height)) }

func (r *rows) ScrollBy(delta float64) float64 {
	next := r.offset + delta
	r.offset = math.Min(math.Max(next, 0), r.max())
	return next - r.offset
}

func (r *rows) ScrollToTop() { r.offset = 0 }
func (r *rows) AtTop() bool  { return r.offset <= 0 }

func (r *rows) View(width, height int) string {
	return strings.TrimSuffix(strings.Repeat("row\n", height), "\n")
}

type banner string

func (b banner) View(width, height int) string {
	return strings.TrimSuffix(strings.Repeat(string(b)+"\n", height), "\n")
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func single(max float64) (*Container, *rows) {
	c := New(Options{Name: "solo"})
	c.AttachHeader(banner("H"), max, true)
	r := &rows{n: 50, height: 10}
	c.AttachScrollable(r)
	return c, r
}

// nested builds outer(6) > inner(4) > rows.
func nested() (*Container, *Container, *rows) { return nestedWith(false) }

func nestedWith(settle bool) (*Container, *Container, *rows) {
	outer := New(Options{Name: "outer", Settle: settle})
	outer.AttachHeader(banner("O"), 6, true)
	inner := New(Options{Name: "inner", Settle: settle})
	inner.AttachHeader(banner("I"), 4, true)
	r := &rows{n: 50, height: 10}
	inner.AttachScrollable(r)
	outer.AttachScrollable(inner)
	return outer, inner, r
}

func TestDragCollapsesHeader(t *testing.T) {
	c, _ := single(100)
	for i, want := range []float64{80, 60, 40} {
		c.Handle(20)
		if c.HeaderHeight() != want {
			t.Fatalf("step %d: height %v, want %v", i, c.HeaderHeight(), want)
		}
	}
	if c.HeaderState() != header.InProgress {
		t.Fatalf("expected in progress, got %v", c.HeaderState())
	}
}

func TestHiddenHeaderPassesToContent(t *testing.T) {
	c, r := single(5)
	c.Handle(5)
	if c.HeaderState() != header.Hidden {
		t.Fatalf("expected hidden header")
	}
	c.Handle(3)
	if r.offset != 3 || c.LastDecision().Action != header.PassThroughToScroll {
		t.Fatalf("expected content to scroll 3, got %v (%v)", r.offset, c.LastDecision().Action)
	}
	c.Handle(-2)
	if r.offset != 1 || c.HeaderHeight() != 0 {
		t.Fatalf("content should scroll back before header grows: offset %v height %v", r.offset, c.HeaderHeight())
	}
	c.Handle(-1)
	c.Handle(-2)
	if r.offset != 0 || c.HeaderHeight() != 2 {
		t.Fatalf("expected header to grow at top: offset %v height %v", r.offset, c.HeaderHeight())
	}
}

func TestFrozenHeaderScrollsContent(t *testing.T) {
	c := New(Options{})
	c.AttachHeader(banner("H"), 5, false)
	r := &rows{n: 50, height: 10}
	c.AttachScrollable(r)
	c.Handle(4)
	if c.HeaderHeight() != 5 || r.offset != 4 {
		t.Fatalf("expected frozen header and scrolled content, height %v offset %v", c.HeaderHeight(), r.offset)
	}
}

func TestNestedCascade(t *testing.T) {
	outer, inner, r := nested()

	// Both visible: the outer header collapses first.
	outer.Handle(0) // no-op
	inner.Handle(2)
	if outer.HeaderHeight() != 4 || inner.HeaderHeight() != 4 {
		t.Fatalf("expected outer to absorb, got outer %v inner %v", outer.HeaderHeight(), inner.HeaderHeight())
	}
	// Outer in progress keeps owning the gesture.
	inner.Handle(4)
	if outer.HeaderHeight() != 0 || inner.HeaderHeight() != 4 {
		t.Fatalf("expected outer hidden, got outer %v inner %v", outer.HeaderHeight(), inner.HeaderHeight())
	}
	// Outer hidden: inner collapses next.
	inner.Handle(3)
	if inner.HeaderHeight() != 1 || r.offset != 0 {
		t.Fatalf("expected inner at 1, got %v (offset %v)", inner.HeaderHeight(), r.offset)
	}
	inner.Handle(3)
	if inner.HeaderHeight() != 0 {
		t.Fatalf("expected inner hidden, got %v", inner.HeaderHeight())
	}
	// Everything hidden: content scrolls.
	inner.Handle(5)
	if r.offset != 5 {
		t.Fatalf("expected content offset 5, got %v", r.offset)
	}

	// Pulling back: content first, then inner, then outer.
	inner.Handle(-5)
	if r.offset != 0 || inner.HeaderHeight() != 0 {
		t.Fatalf("expected content back at top first")
	}
	inner.Handle(-4)
	if inner.HeaderHeight() != 4 || outer.HeaderHeight() != 0 {
		t.Fatalf("expected inner expanded, got inner %v outer %v", inner.HeaderHeight(), outer.HeaderHeight())
	}
	inner.Handle(-3)
	if outer.HeaderHeight() != 3 || inner.HeaderHeight() != 4 {
		t.Fatalf("expected outer growing, got outer %v inner %v", outer.HeaderHeight(), inner.HeaderHeight())
	}
	inner.Handle(-10)
	if outer.HeaderState() != header.Visible {
		t.Fatalf("expected outer visible, got %v", outer.HeaderState())
	}
}

// collapsed returns a nested tree with both headers hidden and the content
// scrolled to offset.
func collapsed(t *testing.T, offset float64) (*Container, *Container, *rows) {
	t.Helper()
	outer, inner, r := nested()
	inner.Handle(6)
	inner.Handle(4)
	inner.Handle(offset)
	if outer.HeaderHeight() != 0 || inner.HeaderHeight() != 0 || r.offset != offset {
		t.Fatalf("setup: outer %v inner %v offset %v", outer.HeaderHeight(), inner.HeaderHeight(), r.offset)
	}
	return outer, inner, r
}

func TestRemainderPastContentTopOpensOwnHeader(t *testing.T) {
	outer, inner, r := collapsed(t, 1)
	inner.Handle(-3)
	if inner.HeaderHeight() != 2 || outer.HeaderHeight() != 0 || r.offset != 0 {
		t.Fatalf("after -3: outer %v inner %v offset %v", outer.HeaderHeight(), inner.HeaderHeight(), r.offset)
	}
	inner.Handle(-1)
	if inner.HeaderHeight() != 3 || outer.HeaderHeight() != 0 {
		t.Fatalf("after -1: outer %v inner %v", outer.HeaderHeight(), inner.HeaderHeight())
	}
}

func TestPullDownAcrossContentTopOpensInnerFirst(t *testing.T) {
	cases := []struct {
		name          string
		offset, delta float64
	}{
		{"whole rows", 1, -3},
		{"exact boundary", 2, -1},
		{"fractional", 0.3, -0.7},
		{"large step", 5, -4},
		{"past both headers", 1, -12},
		{"small steps", 3, -0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outer, inner, r := collapsed(t, tc.offset)
			for i := 0; i < 200 && outer.HeaderState() != header.Visible; i++ {
				inner.Handle(tc.delta)
				if outer.HeaderHeight() > 0 && inner.HeaderState() != header.Visible {
					t.Fatalf("step %d: outer %v opened before inner %v", i, outer.HeaderHeight(), inner.HeaderHeight())
				}
				if inner.HeaderHeight() > 0 && r.offset != 0 {
					t.Fatalf("step %d: inner %v opened with content at %v", i, inner.HeaderHeight(), r.offset)
				}
			}
			if outer.HeaderState() != header.Visible || inner.HeaderState() != header.Visible {
				t.Fatalf("expected both visible, got outer %v inner %v", outer.HeaderHeight(), inner.HeaderHeight())
			}
		})
	}
}

func TestFlingDownWithParentHiddenOpensInnerFirst(t *testing.T) {
	outer, inner, r := collapsed(t, 5)
	outer.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 10, At: at(0)})
	for i := 1; i <= 3; i++ {
		outer.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: float64(10 + 2*i), At: at(10 * i)})
	}
	if cmd := outer.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: 18, At: at(40)}); cmd == nil {
		t.Fatalf("expected a frame command")
	}
	if r.offset != 0 || inner.HeaderHeight() != 3 || outer.HeaderHeight() != 0 {
		t.Fatalf("after drag: outer %v inner %v offset %v", outer.HeaderHeight(), inner.HeaderHeight(), r.offset)
	}
	now := at(40)
	for i := 0; i < 1000 && outer.Animating(); i++ {
		now = now.Add(driver.DefaultFrameInterval)
		msg, _ := outer.NextFrame(now)
		outer.Frame(msg)
		if outer.HeaderHeight() > 0 && inner.HeaderState() != header.Visible {
			t.Fatalf("frame %d: outer %v opened before inner %v", i, outer.HeaderHeight(), inner.HeaderHeight())
		}
	}
	if outer.Animating() {
		t.Fatalf("animation did not finish")
	}
	if outer.HeaderState() != header.Visible || inner.HeaderState() != header.Visible || r.offset != 0 {
		t.Fatalf("expected everything open, outer %v inner %v offset %v",
			outer.HeaderHeight(), inner.HeaderHeight(), r.offset)
	}
}

func TestOverpullRecordedAtRoot(t *testing.T) {
	outer, inner, _ := nested()
	outer.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 10, At: at(0)})
	outer.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: 13, At: at(10)})
	if outer.Overscroll() != -3 || inner.Overscroll() != 0 {
		t.Fatalf("expected root overscroll -3, got outer %v inner %v", outer.Overscroll(), inner.Overscroll())
	}
	lines := strings.Split(outer.View(20, 30), "\n")
	if strings.TrimSpace(lines[0]) != "" || !strings.HasPrefix(lines[1], "O") {
		t.Fatalf("expected rubber-band gap above header, got %q %q", lines[0], lines[1])
	}
	outer.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: 13, At: at(500)})
	if outer.Overscroll() != 0 {
		t.Fatalf("expected overscroll released after drag, got %v", outer.Overscroll())
	}
}

func TestGestureRoutesToLeaf(t *testing.T) {
	outer, inner, _ := nested()
	outer.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 10, At: at(0)})
	if inner.Phase() != driver.Dragging || outer.Phase() != driver.Idle {
		t.Fatalf("expected leaf to own the drag, inner %v outer %v", inner.Phase(), outer.Phase())
	}
	outer.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: 8, At: at(10)})
	if outer.HeaderHeight() != 4 {
		t.Fatalf("expected drag delta to reach outer header, got %v", outer.HeaderHeight())
	}
}

func TestFlingAnimatesThroughFrames(t *testing.T) {
	outer, inner, r := nested()
	outer.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 40, At: at(0)})
	for i := 1; i <= 4; i++ {
		outer.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: float64(40 - 3*i), At: at(10 * i)})
	}
	if cmd := outer.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: 28, At: at(45)}); cmd == nil {
		t.Fatalf("expected a frame command")
	}
	if !outer.Animating() {
		t.Fatalf("expected animation in the chain")
	}
	now := at(45)
	for i := 0; i < 1000 && outer.Animating(); i++ {
		now = now.Add(driver.DefaultFrameInterval)
		msg, _ := outer.NextFrame(now)
		outer.Frame(msg)
	}
	if outer.Animating() {
		t.Fatalf("animation did not finish")
	}
	if outer.HeaderState() != header.Hidden || inner.HeaderState() != header.Hidden || r.offset <= 0 {
		t.Fatalf("expected fling to collapse everything and scroll, outer %v inner %v offset %v",
			outer.HeaderHeight(), inner.HeaderHeight(), r.offset)
	}
}

func TestScrollInputCancelsAnimation(t *testing.T) {
	c, _ := single(10)
	c.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 20, At: at(0)})
	c.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: 18, At: at(10)})
	c.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: 17, At: at(20)})
	if c.Phase() != driver.Decelerating {
		t.Fatalf("expected deceleration, got %v", c.Phase())
	}
	stale, _ := c.NextFrame(at(36))
	c.ScrollInput(1)
	if c.Phase() != driver.Idle {
		t.Fatalf("expected scroll input to stop animation")
	}
	h := c.HeaderHeight()
	c.Frame(stale)
	if c.HeaderHeight() != h {
		t.Fatalf("stale frame moved the header")
	}
}

func TestSettleSnapsLeafHeader(t *testing.T) {
	c := New(Options{Settle: true})
	c.AttachHeader(banner("H"), 10, true)
	c.AttachScrollable(&rows{n: 40, height: 10})
	c.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 10, At: at(0)})
	c.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: 7, At: at(10)})
	c.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: 7, At: at(300)})
	if c.Phase() != driver.Settling {
		t.Fatalf("expected settling, got %v", c.Phase())
	}
	now := at(300)
	for i := 0; i < 1000 && c.Animating(); i++ {
		now = now.Add(driver.DefaultFrameInterval)
		msg, _ := c.NextFrame(now)
		c.Frame(msg)
	}
	if c.HeaderHeight() != 10 {
		t.Fatalf("expected header settled open, got %v", c.HeaderHeight())
	}
}

func TestSettleRunsOnPartlyOpenAncestor(t *testing.T) {
	cases := []struct {
		drag      float64
		wantOuter float64
	}{
		{2, 6},
		{4, 0},
	}
	for _, tc := range cases {
		outer, inner, _ := nestedWith(true)
		outer.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 10, At: at(0)})
		outer.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: 10 - tc.drag, At: at(10)})
		if outer.HeaderState() != header.InProgress || inner.HeaderHeight() != 4 {
			t.Fatalf("drag %v: expected outer in progress, got outer %v inner %v", tc.drag, outer.HeaderHeight(), inner.HeaderHeight())
		}
		cmd := outer.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: 10 - tc.drag, At: at(300)})
		if cmd == nil || outer.Phase() != driver.Settling || inner.Phase() != driver.Idle {
			t.Fatalf("drag %v: expected outer settling, got outer %v inner %v", tc.drag, outer.Phase(), inner.Phase())
		}
		now := at(300)
		for i := 0; i < 1000 && outer.Animating(); i++ {
			now = now.Add(driver.DefaultFrameInterval)
			msg, _ := outer.NextFrame(now)
			outer.Frame(msg)
		}
		if outer.Animating() || outer.HeaderHeight() != tc.wantOuter || inner.HeaderHeight() != 4 {
			t.Fatalf("drag %v: expected outer %v inner 4, got outer %v inner %v (animating %t)",
				tc.drag, tc.wantOuter, outer.HeaderHeight(), inner.HeaderHeight(), outer.Animating())
		}
	}
}

func TestNewGestureStopsAncestorSettle(t *testing.T) {
	outer, _, _ := nestedWith(true)
	outer.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 10, At: at(0)})
	outer.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: 8, At: at(10)})
	outer.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: 8, At: at(300)})
	stale, ok := outer.NextFrame(at(316))
	if !ok {
		t.Fatalf("expected outer to be settling")
	}
	outer.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: 8, At: at(320)})
	if outer.Phase() != driver.Idle {
		t.Fatalf("expected new drag to stop the settle, got %v", outer.Phase())
	}
	outer.Frame(stale)
	if outer.HeaderHeight() != 4 {
		t.Fatalf("stale settle frame moved the header to %v", outer.HeaderHeight())
	}
}

func TestSelectAndRemove(t *testing.T) {
	outer := New(Options{Name: "tabs"})
	outer.AttachHeader(banner("T"), 3, true)
	a := New(Options{Name: "a"})
	a.AttachScrollable(&rows{n: 5, height: 5})
	b := New(Options{Name: "b"})
	b.AttachScrollable(&rows{n: 5, height: 5})
	outer.AttachScrollable(a)
	outer.AttachScrollable(b)
	if outer.Leaf() != b || outer.Active() != 1 {
		t.Fatalf("expected last attached to be active")
	}
	if !outer.Select(0) || outer.Leaf() != a {
		t.Fatalf("expected select to switch leaf")
	}
	if outer.Select(5) {
		t.Fatalf("out of range select must fail")
	}
	if !outer.Remove(0) || outer.Leaf() != b || outer.Len() != 1 {
		t.Fatalf("expected b to remain active after removing a")
	}
	a.Handle(-1)
	if a.Overscroll() != -1 {
		t.Fatalf("detached container must no longer emit upward")
	}
}

func TestAttachRejectsCycles(t *testing.T) {
	outer, inner, _ := nested()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on cycle")
		}
	}()
	inner.AttachScrollable(outer)
}

func TestEmitterSingleSlot(t *testing.T) {
	var e Emitter
	if e.Emit(1) {
		t.Fatalf("emit without subscriber must report false")
	}
	var first, second float64
	cancelFirst := e.Subscribe(func(d float64) { first += d })
	e.Subscribe(func(d float64) { second += d })
	e.Emit(2)
	if first != 0 || second != 2 {
		t.Fatalf("expected only latest subscriber, got %v %v", first, second)
	}
	cancelFirst()
	if !e.Subscribed() {
		t.Fatalf("stale cancel removed the active subscriber")
	}
}

func TestViewLayout(t *testing.T) {
	c, _ := single(3)
	out := c.View(10, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "H") || !strings.HasPrefix(lines[3], "row") {
		t.Fatalf("unexpected layout:\n%s", out)
	}
	c.Handle(3)
	if !strings.HasPrefix(c.View(10, 6), "row") {
		t.Fatalf("expected hidden header to leave only content")
	}
}
