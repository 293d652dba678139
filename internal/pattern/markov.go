package pattern

import (
	"fmt"
	"math/rand"
	"strings"
)

// Transition maps one length-k history tuple to its weighted candidates.
type Transition[T comparable] struct {
	From    []T
	Choices []Choice[T]
}

// Markov samples values from an order-k weighted transition table keyed
// by the last k produced values. The history window starts from an
// explicit seed tuple and slides forward with every draw.
//
// A history tuple absent from the table is a configuration error: there
// is no default transition.
type Markov[T comparable] struct {
	rng     *rand.Rand
	order   int
	history []T
	table   map[string][]Choice[T]
}

// NewMarkov builds an order-k Markov generator.
//
// The seed history primes the window and must have exactly k elements, as
// must every transition's From tuple. Duplicate From tuples are rejected.
func NewMarkov[T comparable](rng *rand.Rand, order int, seed []T, transitions []Transition[T]) (*Markov[T], error) {
	if rng == nil {
		return nil, fmt.Errorf("markov: random source is required")
	}
	if order < 1 {
		return nil, newError(ErrCodeBadRule, "markov order must be >= 1, got %d", order)
	}
	if len(seed) != order {
		return nil, newError(ErrCodeBadRule, "seed history has %d elements, want %d", len(seed), order)
	}
	if len(transitions) == 0 {
		return nil, newError(ErrCodeEmptyInput, "markov needs at least one transition")
	}

	table := make(map[string][]Choice[T], len(transitions))
	for i, tr := range transitions {
		if len(tr.From) != order {
			return nil, newError(ErrCodeBadRule, "transition %d history has %d elements, want %d", i, len(tr.From), order)
		}
		if len(tr.Choices) == 0 {
			return nil, newError(ErrCodeBadRule, "transition %d has no candidates", i)
		}
		key := historyKey(tr.From)
		if _, dup := table[key]; dup {
			return nil, newError(ErrCodeBadRule, "duplicate transition for history %v", tr.From)
		}
		choices := make([]Choice[T], len(tr.Choices))
		copy(choices, tr.Choices)
		table[key] = choices
	}

	history := make([]T, order)
	copy(history, seed)
	return &Markov[T]{rng: rng, order: order, history: history, table: table}, nil
}

// Next looks up the current history tuple, samples a candidate, slides
// the window forward, and returns the produced value.
func (m *Markov[T]) Next() (T, error) {
	var zero T

	choices, ok := m.table[historyKey(m.history)]
	if !ok {
		return zero, newError(ErrCodeNoTransition, "no transition for history %v", m.history)
	}

	choice, err := pick(m.rng, choices)
	if err != nil {
		return zero, err
	}
	v, err := resolve(choice)
	if err != nil {
		return zero, err
	}

	copy(m.history, m.history[1:])
	m.history[m.order-1] = v
	return v, nil
}

// History returns a copy of the current history window.
func (m *Markov[T]) History() []T {
	out := make([]T, len(m.history))
	copy(out, m.history)
	return out
}

// historyKey renders a history tuple as a table key. The unit separator
// keeps adjacent values from colliding ("ab","c" vs "a","bc").
func historyKey[T comparable](vals []T) string {
	var b strings.Builder
	for _, v := range vals {
		fmt.Fprintf(&b, "%v\x1f", v)
	}
	return b.String()
}
