package pattern

import (
	"fmt"
	"math/rand"
)

// Choose samples one candidate per call, proportionally to the
// candidates' dynamic weights. Candidates may be literals or nested
// generators (see Choice).
type Choose[T any] struct {
	rng     *rand.Rand
	choices []Choice[T]
}

// NewChoose builds a weighted-choice generator.
// A random source and at least one candidate are required. Weights are
// not validated here: they are dynamic and only checked when sampled.
func NewChoose[T any](rng *rand.Rand, choices ...Choice[T]) (*Choose[T], error) {
	if rng == nil {
		return nil, fmt.Errorf("choose: random source is required")
	}
	if len(choices) == 0 {
		return nil, newError(ErrCodeEmptyInput, "choose needs at least one candidate")
	}
	copied := make([]Choice[T], len(choices))
	copy(copied, choices)
	return &Choose[T]{rng: rng, choices: copied}, nil
}

// Next evaluates all weights, samples a candidate, and resolves it.
// A zero (or negative) total weight is a configuration error.
func (c *Choose[T]) Next() (T, error) {
	choice, err := pick(c.rng, c.choices)
	if err != nil {
		var zero T
		return zero, err
	}
	return resolve(choice)
}
