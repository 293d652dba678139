package score

import "sort"

// Timeline is the appendable sink composer processes emit events into.
//
// Insertion order need not be time order: concurrently scheduled processes
// interleave their Add calls arbitrarily. Time order is derived on demand
// by Ordered, which never mutates the underlying store, so it is safe to
// call at any point (including before the timeline is fully populated) and
// repeated calls without an intervening Add return identical results.
//
// Timeline is mutated only from within scheduler resumptions, which are
// serialized, so it needs no locking.
type Timeline struct {
	events []Event
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{events: make([]Event, 0, 64)}
}

// Add appends an event. O(1) amortized; no ordering is enforced here.
func (t *Timeline) Add(ev Event) {
	t.events = append(t.events, ev)
}

// Len returns the number of events added so far.
func (t *Timeline) Len() int {
	return len(t.events)
}

// Events returns the events in insertion order.
// The returned slice is a copy; mutating it does not affect the timeline.
func (t *Timeline) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// Ordered returns the events sorted by start time.
//
// The sort is stable: events with equal start times keep their insertion
// order, which under the scheduler's spawn-order tie-break makes the
// final ordering fully deterministic for a fixed seed.
func (t *Timeline) Ordered() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// Merge combines several timelines into a new one, ordered by start time.
//
// The merge is stable: for equal start times, events from earlier
// arguments come first, and events from the same timeline keep their
// insertion order. The inputs are not modified.
func Merge(timelines ...*Timeline) *Timeline {
	total := 0
	for _, tl := range timelines {
		total += tl.Len()
	}
	merged := &Timeline{events: make([]Event, 0, total)}
	for _, tl := range timelines {
		merged.events = append(merged.events, tl.events...)
	}
	merged.events = (&Timeline{events: merged.events}).Ordered()
	return merged
}
