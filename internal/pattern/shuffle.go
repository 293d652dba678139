package pattern

import (
	"fmt"
	"math/rand"
)

// Shuffle yields random permutations of a fixed multiset, one element per
// call, drawing a fresh permutation whenever the current one is
// exhausted. Consecutive permutations are independent, so the last
// element of one permutation may immediately repeat as the first of the
// next; WithNoImmediateRepeat suppresses that boundary repeat for callers
// who want it.
type Shuffle[T comparable] struct {
	rng      *rand.Rand
	items    []T
	order    []int
	idx      int
	noRepeat bool
	last     T
	primed   bool
}

// ShuffleOption configures a Shuffle.
type ShuffleOption[T comparable] func(*Shuffle[T])

// WithNoImmediateRepeat prevents the first element of a fresh permutation
// from equaling the last element emitted before the reshuffle. With fewer
// than two distinct elements the option has no effect.
func WithNoImmediateRepeat[T comparable]() ShuffleOption[T] {
	return func(s *Shuffle[T]) { s.noRepeat = true }
}

// NewShuffle builds a shuffled generator over the given multiset.
// A random source and at least one element are required.
func NewShuffle[T comparable](rng *rand.Rand, items []T, opts ...ShuffleOption[T]) (*Shuffle[T], error) {
	if rng == nil {
		return nil, fmt.Errorf("shuffle: random source is required")
	}
	if len(items) == 0 {
		return nil, newError(ErrCodeEmptyInput, "shuffle needs at least one element")
	}
	copied := make([]T, len(items))
	copy(copied, items)
	s := &Shuffle[T]{rng: rng, items: copied}
	for _, opt := range opts {
		opt(s)
	}
	s.reshuffle()
	return s, nil
}

// Next returns the next element of the current permutation, drawing a new
// permutation when the current one is exhausted. It never fails.
func (s *Shuffle[T]) Next() (T, error) {
	if s.idx == len(s.order) {
		s.reshuffle()
	}
	v := s.items[s.order[s.idx]]
	s.idx++
	s.last = v
	s.primed = true
	return v, nil
}

func (s *Shuffle[T]) reshuffle() {
	s.order = s.rng.Perm(len(s.items))
	s.idx = 0
	if s.noRepeat && s.primed && len(s.items) > 1 && s.items[s.order[0]] == s.last {
		// Swap the offending head with a random later position. If every
		// element equals last (degenerate multiset) the repeat stands.
		j := 1 + s.rng.Intn(len(s.order)-1)
		s.order[0], s.order[j] = s.order[j], s.order[0]
	}
}
