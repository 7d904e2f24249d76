package curve

import "math"

// RubberBandCoefficient is the usual resistance for overscroll.
const RubberBandCoefficient = 0.55

// RubberBand damps an overscroll distance so it approaches dimension but
// never reaches it.
func RubberBand(offset, dimension, coefficient float64) float64 {
	if dimension <= 0 {
		return 0
	}
	sign := 1.0
	if offset < 0 {
		sign = -1
	}
	x := math.Abs(offset)
	return sign * (1 - 1/(x*coefficient/dimension+1)) * dimension
}

// RubberBandClamp keeps x inside [lo, hi] and applies RubberBand to the part
// that falls outside.
func RubberBandClamp(x, coefficient, dimension, lo, hi float64) float64 {
	clamped := math.Min(math.Max(x, lo), hi)
	diff := x - clamped
	if diff == 0 {
		return x
	}
	return clamped + RubberBand(diff, dimension, coefficient)
}
