package pattern

// Cycle deterministically repeats a fixed sequence, wrapping to the start
// after the last element.
type Cycle[T any] struct {
	items []T
	idx   int
}

// NewCycle builds a cycle over the given elements.
// Empty input is a configuration error.
func NewCycle[T any](items ...T) (*Cycle[T], error) {
	if len(items) == 0 {
		return nil, newError(ErrCodeEmptyInput, "cycle needs at least one element")
	}
	copied := make([]T, len(items))
	copy(copied, items)
	return &Cycle[T]{items: copied}, nil
}

// Next returns the next element, wrapping around. It never fails.
func (c *Cycle[T]) Next() (T, error) {
	v := c.items[c.idx]
	c.idx = (c.idx + 1) % len(c.items)
	return v, nil
}

// Len returns the cycle period.
func (c *Cycle[T]) Len() int {
	return len(c.items)
}
