package pattern

import "math/rand"

// Gen is the single capability every generator shares.
//
// Next is deterministic given the generator's internal state and, for
// stochastic variants, the underlying random source. It never blocks and
// deterministic generators wrap around rather than exhausting.
type Gen[T any] interface {
	Next() (T, error)
}

// Func adapts a plain function to the Gen interface. Useful for deferred
// computations that produce a fresh value on every call.
type Func[T any] func() (T, error)

// Next implements Gen.
func (f Func[T]) Next() (T, error) {
	return f()
}

// Weight is a dynamic weight: a zero-argument computation re-evaluated
// each time a weighted generator samples. Use Fixed for constants.
type Weight func() float64

// Fixed returns a Weight that always evaluates to w.
func Fixed(w float64) Weight {
	return func() float64 { return w }
}

// Choice is one weighted candidate of a Choose or Markov generator.
//
// Exactly one of Value or Sub is meaningful: when Sub is non-nil the
// candidate is a nested generator and sampling it pulls that generator's
// next value (one level of indirection), enabling hierarchical pattern
// composition. A nil Weight counts as weight 1.
type Choice[T any] struct {
	Value  T
	Sub    Gen[T]
	Weight Weight
}

// Lit builds a literal candidate with a fixed weight.
func Lit[T any](v T, w float64) Choice[T] {
	return Choice[T]{Value: v, Weight: Fixed(w)}
}

// Nested builds a candidate that defers to another generator.
func Nested[T any](g Gen[T], w float64) Choice[T] {
	return Choice[T]{Sub: g, Weight: Fixed(w)}
}

// pick samples one candidate proportionally to its evaluated weight.
// Weights are re-evaluated on every call; candidates whose weight
// evaluates to <= 0 are never selected. A non-positive total is a
// configuration error.
func pick[T any](rng *rand.Rand, choices []Choice[T]) (Choice[T], error) {
	total := 0.0
	weights := make([]float64, len(choices))
	for i, c := range choices {
		w := 1.0
		if c.Weight != nil {
			w = c.Weight()
		}
		if w > 0 {
			weights[i] = w
			total += w
		}
	}
	if total <= 0 {
		var zero Choice[T]
		return zero, newError(ErrCodeZeroWeight, "all %d candidate weights evaluated to <= 0", len(choices))
	}

	r := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r < 0 {
			return choices[i], nil
		}
	}
	// Float round-off: fall back to the last positive-weight candidate.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return choices[i], nil
		}
	}
	var zero Choice[T]
	return zero, newError(ErrCodeZeroWeight, "no selectable candidate")
}

// resolve turns a sampled candidate into a value, following one level of
// nested-generator indirection.
func resolve[T any](c Choice[T]) (T, error) {
	if c.Sub != nil {
		return c.Sub.Next()
	}
	return c.Value, nil
}
