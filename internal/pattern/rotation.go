package pattern

// SwapRule describes one rotation step: an adjacent-element swap of the
// given width swept across the index range [Start, End). For each index i
// in the range, the elements at i and i+Width are exchanged (skipped when
// i+Width falls past the end of the sequence).
type SwapRule struct {
	Start int
	End   int
	Width int
}

// maxOrbitSteps bounds All drains. The orbit of any rule set is finite
// (each step permutes a finite state), but rule sets whose orbit exceeds
// this bound are rejected rather than drained.
const maxOrbitSteps = 1 << 20

// Rotation generates the orbit of permutations reachable from an initial
// arrangement by applying its swap rules, one rule per call, cycling
// through the rule list in order.
type Rotation[T comparable] struct {
	start   []T
	items   []T
	rules   []SwapRule
	ruleIdx int
}

// NewRotation builds a rotation generator over the initial arrangement.
func NewRotation[T comparable](items []T, rules []SwapRule) (*Rotation[T], error) {
	if len(items) == 0 {
		return nil, newError(ErrCodeEmptyInput, "rotation needs at least one element")
	}
	if len(rules) == 0 {
		return nil, newError(ErrCodeBadRule, "rotation needs at least one swap rule")
	}
	for i, r := range rules {
		if r.Start < 0 || r.End <= r.Start || r.End > len(items) {
			return nil, newError(ErrCodeBadRule, "rule %d: range [%d,%d) invalid for %d elements", i, r.Start, r.End, len(items))
		}
		if r.Width < 1 {
			return nil, newError(ErrCodeBadRule, "rule %d: width must be >= 1, got %d", i, r.Width)
		}
	}

	start := make([]T, len(items))
	copy(start, items)
	current := make([]T, len(items))
	copy(current, items)
	copiedRules := make([]SwapRule, len(rules))
	copy(copiedRules, rules)
	return &Rotation[T]{start: start, items: current, rules: copiedRules}, nil
}

// Next applies the next rule in turn and returns a copy of the resulting
// permutation. It never fails.
func (r *Rotation[T]) Next() ([]T, error) {
	rule := r.rules[r.ruleIdx]
	r.ruleIdx = (r.ruleIdx + 1) % len(r.rules)

	for i := rule.Start; i < rule.End; i++ {
		j := i + rule.Width
		if j >= len(r.items) {
			continue
		}
		r.items[i], r.items[j] = r.items[j], r.items[i]
	}

	out := make([]T, len(r.items))
	copy(out, r.items)
	return out, nil
}

// All eagerly drains the orbit from the current arrangement until the
// generator returns to it with the rule cycle back at its starting phase,
// so the drain is a true closed loop. The returned sequence begins with
// the current arrangement; when wrapped is set a final copy of it is
// appended, letting consumers treat the result as a closed loop.
//
// A drain that exceeds the orbit bound fails with an OPEN_ORBIT error.
func (r *Rotation[T]) All(wrapped bool) ([][]T, error) {
	first := make([]T, len(r.items))
	copy(first, r.items)
	firstPhase := r.ruleIdx

	out := [][]T{first}
	for steps := 0; steps < maxOrbitSteps; steps++ {
		perm, _ := r.Next()
		if r.ruleIdx == firstPhase && equal(perm, first) {
			if wrapped {
				out = append(out, perm)
			}
			return out, nil
		}
		out = append(out, perm)
	}
	return nil, newError(ErrCodeOpenOrbit, "orbit did not close within %d steps", maxOrbitSteps)
}

func equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
