package curve

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// settleEpsilon is how close position and velocity must get before a Settle
// run reports completion.
const settleEpsilon = 0.01

// Settle moves a value toward a target with a critically damped spring, one
// fixed-size frame at a time.
type Settle struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewSettle starts a spring at from, heading for to, stepping once per frame.
func NewSettle(from, to float64, frame time.Duration) *Settle {
	fps := int(time.Second / frame)
	if fps < 1 {
		fps = 1
	}
	return &Settle{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
		pos:    from,
		target: to,
	}
}

// Step advances one frame and returns the new position and whether the run
// has come to rest. The final step lands exactly on the target.
func (s *Settle) Step() (float64, bool) {
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < settleEpsilon && math.Abs(s.vel) < settleEpsilon {
		s.pos, s.vel = s.target, 0
		return s.pos, true
	}
	return s.pos, false
}

// Position is the spring's current value.
func (s *Settle) Position() float64 { return s.pos }
