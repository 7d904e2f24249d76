// Package driver turns pan gestures and animation frames into a stream of
// offset deltas.
//
// A Driver runs entirely on the bubbletea update loop: every method is called
// synchronously from Update and deltas reach the sink in arrival order. Frame
// messages carry a generation number; anything that ends or restarts an
// animation bumps the generation so frames already in flight are dropped.
package driver

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"headerscroll/internal/scroll/curve"
)

// Phase is the interaction lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Decelerating
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Decelerating:
		return "decelerating"
	case Settling:
		return "settling"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// GesturePhase is the phase reported by the pan recognizer.
type GesturePhase int

const (
	GesturePossible GesturePhase = iota
	GestureBegan
	GestureChanged
	GestureEnded
	GestureCancelled
)

// Gesture is one pan-recognizer callback. Y is the pointer row.
type Gesture struct {
	Phase GesturePhase
	Y     float64
	At    time.Time
}

// FrameMsg is an animation tick addressed to one driver.
type FrameMsg struct {
	ID  string
	Gen uint64
	At  time.Time
}

const (
	// DefaultFrameInterval is roughly 60 frames per second.
	DefaultFrameInterval = 16 * time.Millisecond
	// staleRelease is the gap after which a release velocity is discarded.
	// Recognizers keep reporting terminal velocity after motion has stopped.
	staleRelease = 100 * time.Millisecond
)

// Settler lets a driver spring a header to a bound once interaction ends.
type Settler interface {
	// SettleTarget reports the current height and the bound to settle on.
	SettleTarget() (from, to float64, ok bool)
	// SettleTo applies an intermediate height.
	SettleTo(height float64)
}

// Options configures a Driver. Zero values pick the defaults.
type Options struct {
	Rate          float64
	StopThreshold float64
	FrameInterval time.Duration
	// Offset reports the content offset captured when a drag begins.
	Offset func() float64
	// Settler, if set, enables the settle phase.
	Settler Settler
	// OnRest is called when an interaction ends without a settle of this
	// driver's own. Its command is returned in place of nil.
	OnRest func() tea.Cmd
	// OnPhase is called after every phase change.
	OnPhase func(from, to Phase)
	Logf    func(format string, args ...any)
}

type dragSession struct {
	initialOffset float64
	lastY         float64
}

type decelerationRun struct {
	curve curve.Deceleration
	start time.Time
	last  float64
}

// Driver is the gesture/animation state machine of one container.
type Driver struct {
	id   string
	sink func(delta float64)
	opts Options

	phase     Phase
	gen       uint64
	session   *dragSession
	run       *decelerationRun
	settle    *curve.Settle
	lastEvent time.Time
	tracker   velocityTracker
}

// New creates an idle driver that feeds deltas into sink. id routes frame
// messages back to this driver.
func New(id string, sink func(delta float64), opts Options) *Driver {
	if opts.Rate == 0 {
		opts.Rate = curve.DecelerationRateNormal
	}
	if opts.StopThreshold == 0 {
		opts.StopThreshold = curve.DefaultStopThreshold
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	return &Driver{id: id, sink: sink, opts: opts}
}

func (d *Driver) ID() string { return d.id }

func (d *Driver) Phase() Phase { return d.phase }

// Animating reports whether frame messages are expected.
func (d *Driver) Animating() bool { return d.phase == Decelerating || d.phase == Settling }

// InitialOffset is the content offset captured by the current drag session.
func (d *Driver) InitialOffset() (float64, bool) {
	if d.session == nil {
		return 0, false
	}
	return d.session.initialOffset, true
}

// Gesture feeds one recognizer callback into the state machine. It panics on
// a phase it has no transition for.
func (d *Driver) Gesture(g Gesture) tea.Cmd {
	var cmd tea.Cmd
	switch g.Phase {
	case GesturePossible:
	case GestureBegan:
		d.begin(g)
	case GestureChanged:
		d.move(g.Y, g.At)
	case GestureEnded:
		cmd = d.release(g)
	case GestureCancelled:
		d.Cancel()
	default:
		panic(fmt.Sprintf("driver: unhandled gesture phase %d", int(g.Phase)))
	}
	d.lastEvent = g.At
	return cmd
}

// Cancel drops any drag session or animation without emitting a delta. It is
// a no-op when idle.
func (d *Driver) Cancel() {
	if d.phase == Idle {
		return
	}
	d.gen++
	d.session = nil
	d.run = nil
	d.settle = nil
	d.tracker.reset()
	d.setPhase(Idle)
}

// Frame advances a running animation. Frames addressed to another driver or
// to a cancelled run are ignored.
func (d *Driver) Frame(msg FrameMsg) tea.Cmd {
	if msg.ID != d.id || msg.Gen != d.gen {
		return nil
	}
	switch d.phase {
	case Decelerating:
		return d.decelerate(msg.At)
	case Settling:
		return d.stepSettle()
	default:
		return nil
	}
}

// Next returns the frame message the pending tick would deliver at at. Used
// where no bubbletea runtime is scheduling ticks.
func (d *Driver) Next(at time.Time) (FrameMsg, bool) {
	if !d.Animating() {
		return FrameMsg{}, false
	}
	return FrameMsg{ID: d.id, Gen: d.gen, At: at}, true
}

func (d *Driver) begin(g Gesture) {
	if d.Animating() {
		d.gen++
		d.run = nil
		d.settle = nil
	}
	offset := 0.0
	if d.opts.Offset != nil {
		offset = d.opts.Offset()
	}
	d.session = &dragSession{initialOffset: offset, lastY: g.Y}
	d.tracker.reset()
	d.tracker.add(g.Y, g.At)
	d.setPhase(Dragging)
}

func (d *Driver) move(y float64, at time.Time) {
	if d.phase != Dragging || d.session == nil {
		return
	}
	delta := d.session.lastY - y
	d.session.lastY = y
	d.tracker.add(y, at)
	if delta != 0 {
		d.sink(delta)
	}
}

func (d *Driver) release(g Gesture) tea.Cmd {
	if d.phase != Dragging {
		return nil
	}
	stale := g.At.Sub(d.lastEvent) >= staleRelease
	d.move(g.Y, g.At)

	velocity := 0.0
	if !stale {
		velocity = d.tracker.velocity()
	}
	d.session = nil
	d.tracker.reset()

	c := curve.NewDeceleration(velocity, d.opts.Rate, d.opts.StopThreshold)
	if c.Duration() <= 0 {
		d.opts.Logf("release: velocity %.2f (stale=%t), no deceleration", velocity, stale)
		return d.finish()
	}
	d.opts.Logf("release: velocity %.2f, decelerating for %s", velocity, c.Duration())
	d.gen++
	d.run = &decelerationRun{curve: c, start: g.At}
	d.setPhase(Decelerating)
	return d.tick()
}

func (d *Driver) decelerate(at time.Time) tea.Cmd {
	run := d.run
	elapsed := at.Sub(run.start)
	done := elapsed >= run.curve.Duration()
	value := run.curve.ValueAt(elapsed)
	delta := value - run.last
	run.last = value
	if delta != 0 {
		d.sink(delta)
	}
	if !done {
		return d.tick()
	}
	d.run = nil
	return d.finish()
}

// finish ends an interaction, springing the header to a bound when a
// Settler asks for it.
func (d *Driver) finish() tea.Cmd {
	if d.opts.Settler != nil {
		if from, to, ok := d.opts.Settler.SettleTarget(); ok && from != to {
			d.gen++
			d.settle = curve.NewSettle(from, to, d.opts.FrameInterval)
			d.setPhase(Settling)
			return d.tick()
		}
	}
	d.setPhase(Idle)
	if d.opts.OnRest != nil {
		return d.opts.OnRest()
	}
	return nil
}

// Settle starts a settle run on an idle driver when its Settler asks for one.
// Without one it behaves like the end of an interaction that needed none.
func (d *Driver) Settle() tea.Cmd {
	if d.phase != Idle {
		return nil
	}
	return d.finish()
}

func (d *Driver) stepSettle() tea.Cmd {
	pos, done := d.settle.Step()
	d.opts.Settler.SettleTo(pos)
	if !done {
		return d.tick()
	}
	d.settle = nil
	d.setPhase(Idle)
	return nil
}

func (d *Driver) tick() tea.Cmd {
	id, gen := d.id, d.gen
	return tea.Tick(d.opts.FrameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Gen: gen, At: t}
	})
}

func (d *Driver) setPhase(p Phase) {
	if d.phase == p {
		return
	}
	from := d.phase
	d.phase = p
	d.opts.Logf("driver %s: %s -> %s", d.id, from, p)
	if d.opts.OnPhase != nil {
		d.opts.OnPhase(from, p)
	}
}
