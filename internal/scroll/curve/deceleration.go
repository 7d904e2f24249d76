// Package curve holds the motion models used after a drag is released.
package curve

import (
	"math"
	"time"
)

const (
	// DecelerationRateNormal is the per-millisecond velocity retention used by
	// default.
	DecelerationRateNormal = 0.998
	// DecelerationRateFast stops noticeably sooner.
	DecelerationRateFast = 0.99
	// DefaultStopThreshold is the velocity, in rows per second, below which
	// motion is considered settled.
	DefaultStopThreshold = 0.1
)

// Deceleration is an exponential-decay motion curve starting at zero
// displacement with the given initial velocity.
type Deceleration struct {
	velocity  float64
	rate      float64
	threshold float64
	coeff     float64
	duration  float64
}

// NewDeceleration builds a curve for velocity (rows/s). rate must lie in
// (0, 1) and threshold must be positive; out-of-range values fall back to
// DecelerationRateNormal and DefaultStopThreshold.
func NewDeceleration(velocity, rate, threshold float64) Deceleration {
	if !(rate > 0 && rate < 1) {
		rate = DecelerationRateNormal
	}
	if !(threshold > 0) {
		threshold = DefaultStopThreshold
	}
	d := Deceleration{
		velocity:  velocity,
		rate:      rate,
		threshold: threshold,
		coeff:     1000 * math.Log(rate),
	}
	if speed := math.Abs(velocity); speed > threshold {
		d.duration = math.Log(threshold/speed) / d.coeff
	}
	return d
}

// Duration is the time after which the curve's velocity drops below the stop
// threshold. It is zero for negligible initial velocities.
func (d Deceleration) Duration() time.Duration {
	return time.Duration(d.duration * float64(time.Second))
}

// ValueAt returns the cumulative displacement at t. t is clamped to
// [0, Duration].
func (d Deceleration) ValueAt(t time.Duration) float64 {
	return d.valueAt(d.clamp(t))
}

func (d Deceleration) valueAt(s float64) float64 {
	if s == 0 {
		return 0
	}
	return d.velocity * (math.Exp(d.coeff*s) - 1) / d.coeff
}

// VelocityAt returns the instantaneous velocity at t.
func (d Deceleration) VelocityAt(t time.Duration) float64 {
	return d.velocity * math.Exp(d.coeff*d.clamp(t))
}

// Distance is the total displacement covered by the curve.
func (d Deceleration) Distance() float64 {
	return d.valueAt(d.duration)
}

func (d Deceleration) clamp(t time.Duration) float64 {
	s := t.Seconds()
	if s < 0 {
		return 0
	}
	if s > d.duration {
		return d.duration
	}
	return s
}
