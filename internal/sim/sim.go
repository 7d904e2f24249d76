// Package sim replays a scripted sequence of gestures against a container
// tree without a terminal and records what the tree did.
package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"headerscroll/internal/scroll/container"
	"headerscroll/internal/scroll/driver"
)

// maxAnimation bounds how long a trailing animation is replayed.
const maxAnimation = 30 * time.Second

// Step kinds.
const (
	Press   = "press"
	Move    = "move"
	Release = "release"
	Cancel  = "cancel"
	Scroll  = "scroll"
	Select  = "select"
)

// Step is one scripted input. At is milliseconds from the start of the run.
type Step struct {
	At    int     `json:"at"`
	Kind  string  `json:"kind"`
	Y     float64 `json:"y,omitempty"`
	Delta float64 `json:"delta,omitempty"`
	Index int     `json:"index,omitempty"`
}

// Script is a replayable input sequence and the viewport it runs in.
type Script struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Steps  []Step `json:"steps"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks step kinds and that steps are in time order.
func (s *Script) Validate() error {
	prev := 0
	for i, st := range s.Steps {
		switch st.Kind {
		case Press, Move, Release, Cancel, Scroll, Select:
		default:
			return fmt.Errorf("step %d: unknown kind %q", i, st.Kind)
		}
		if st.At < prev {
			return fmt.Errorf("step %d: at %dms is before the previous step (%dms)", i, st.At, prev)
		}
		prev = st.At
	}
	return nil
}

// Runner drives a container tree with synthetic time.
type Runner struct {
	root   *container.Container
	start  time.Time
	frame  time.Duration
	width  int
	height int
	now    time.Time
	trace  []string
}

// New prepares a run. frame is the tick period used to synthesize animation
// frames; zero means driver.DefaultFrameInterval.
func New(root *container.Container, frame time.Duration) *Runner {
	if frame <= 0 {
		frame = driver.DefaultFrameInterval
	}
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Runner{root: root, start: start, now: start, frame: frame, width: 80, height: 24}
}

// Run replays the script and returns one trace line per step, plus one per
// stretch of animation frames.
func (r *Runner) Run(s *Script) []string {
	if s.Width > 0 {
		r.width = s.Width
	}
	if s.Height > 0 {
		r.height = s.Height
	}
	r.layout()
	for _, st := range s.Steps {
		at := r.start.Add(time.Duration(st.At) * time.Millisecond)
		r.animateUntil(at)
		r.now = at
		r.apply(st)
		r.layout()
		r.record(st.Kind, st)
	}
	r.animateUntil(r.now.Add(maxAnimation))
	return r.trace
}

// Trace is what has been recorded so far.
func (r *Runner) Trace() []string { return r.trace }

func (r *Runner) apply(st Step) {
	switch st.Kind {
	case Press:
		r.root.Gesture(driver.Gesture{Phase: driver.GestureBegan, Y: st.Y, At: r.now})
	case Move:
		r.root.Gesture(driver.Gesture{Phase: driver.GestureChanged, Y: st.Y, At: r.now})
	case Release:
		r.root.Gesture(driver.Gesture{Phase: driver.GestureEnded, Y: st.Y, At: r.now})
	case Cancel:
		r.root.Gesture(driver.Gesture{Phase: driver.GestureCancelled, At: r.now})
	case Scroll:
		r.root.ScrollInput(st.Delta)
	case Select:
		if sw := r.root.Switcher(); sw != nil {
			sw.Select(st.Index)
		}
	}
}

// animateUntil delivers frames at the fixed period until the chain stops
// animating or the next frame would land after until.
func (r *Runner) animateUntil(until time.Time) {
	frames := 0
	for {
		next := r.now.Add(r.frame)
		if next.After(until) {
			break
		}
		msg, ok := r.root.NextFrame(next)
		if !ok {
			break
		}
		r.now = next
		r.root.Frame(msg)
		r.layout()
		frames++
	}
	if frames > 0 {
		r.record(fmt.Sprintf("frames(%d)", frames), Step{})
	}
}

// layout renders once so content heights track header heights.
func (r *Runner) layout() {
	r.root.View(r.width, r.height)
}

func (r *Runner) record(kind string, st Step) {
	var b strings.Builder
	fmt.Fprintf(&b, "%6dms %-10s", r.now.Sub(r.start).Milliseconds(), kind)
	switch st.Kind {
	case Press, Move, Release:
		fmt.Fprintf(&b, " y=%-6.1f", st.Y)
	case Scroll:
		fmt.Fprintf(&b, " d=%-6.1f", st.Delta)
	default:
		b.WriteString("         ")
	}
	for _, c := range r.root.Chain() {
		fmt.Fprintf(&b, " | %s %.2f %s %s", c.Name(), c.HeaderHeight(), c.HeaderState(), c.Phase())
	}
	if o, ok := r.root.Leaf().Content().(interface{ Offset() float64 }); ok {
		fmt.Fprintf(&b, " | offset %.2f", o.Offset())
	}
	if over := r.root.Overscroll(); over != 0 {
		fmt.Fprintf(&b, " | over %.2f", over)
	}
	r.trace = append(r.trace, strings.TrimRight(b.String(), " "))
}
