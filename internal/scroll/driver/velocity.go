package driver

import "time"

// velocityWindow is how far back samples count toward release velocity.
const velocityWindow = 100 * time.Millisecond

type sample struct {
	at time.Time
	y  float64
}

// velocityTracker estimates drag velocity from recent pointer samples.
type velocityTracker struct {
	samples []sample
}

func (v *velocityTracker) reset() {
	v.samples = v.samples[:0]
}

func (v *velocityTracker) add(y float64, at time.Time) {
	cutoff := at.Add(-velocityWindow)
	kept := v.samples[:0]
	for _, s := range v.samples {
		if !s.at.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	v.samples = append(kept, sample{at: at, y: y})
}

// velocity returns rows per second in delta orientation: dragging upward
// (decreasing y) is positive.
func (v *velocityTracker) velocity() float64 {
	if len(v.samples) < 2 {
		return 0
	}
	first, last := v.samples[0], v.samples[len(v.samples)-1]
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (first.y - last.y) / dt
}
