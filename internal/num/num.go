package num

import (
	"math"
	"math/rand"
)

// Between returns a uniform random value in [lo, hi).
// If lo == hi the value is lo; lo and hi may be given in either order.
func Between(rng *rand.Rand, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// Odds reports a weighted coin flip: true with probability p.
// p <= 0 is always false, p >= 1 is always true.
func Odds(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

// Quantize snaps v to the nearest multiple of step.
// A step <= 0 returns v unchanged.
func Quantize(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// Rescale maps v from the range [lo1, hi1] to [lo2, hi2] linearly.
// Values outside the source range extrapolate; a degenerate source range
// (lo1 == hi1) maps everything to lo2.
func Rescale(v, lo1, hi1, lo2, hi2 float64) float64 {
	if hi1 == lo1 {
		return lo2
	}
	return lo2 + (v-lo1)/(hi1-lo1)*(hi2-lo2)
}
