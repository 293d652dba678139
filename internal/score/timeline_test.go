package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeline_AddPreservesInsertionOrder(t *testing.T) {
	tl := NewTimeline()
	tl.Add(MustEvent(2, 1, 62, 0.5, 0))
	tl.Add(MustEvent(0, 1, 60, 0.5, 0))
	tl.Add(MustEvent(1, 1, 61, 0.5, 0))

	events := tl.Events()
	require.Len(t, events, 3)
	assert.Equal(t, 62.0, events[0].Pitch)
	assert.Equal(t, 60.0, events[1].Pitch)
	assert.Equal(t, 61.0, events[2].Pitch)
}

func TestTimeline_OrderedSortsByStart(t *testing.T) {
	tl := NewTimeline()
	tl.Add(MustEvent(2, 1, 62, 0.5, 0))
	tl.Add(MustEvent(0, 1, 60, 0.5, 0))
	tl.Add(MustEvent(1, 1, 61, 0.5, 0))

	ordered := tl.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, 0.0, ordered[0].Start)
	assert.Equal(t, 1.0, ordered[1].Start)
	assert.Equal(t, 2.0, ordered[2].Start)
}

func TestTimeline_OrderedStableOnTies(t *testing.T) {
	tl := NewTimeline()
	tl.Add(MustEvent(1, 1, 60, 0.5, 0)) // inserted first
	tl.Add(MustEvent(0, 1, 59, 0.5, 0))
	tl.Add(MustEvent(1, 1, 61, 0.5, 0)) // same start, inserted later

	ordered := tl.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, 59.0, ordered[0].Pitch)
	assert.Equal(t, 60.0, ordered[1].Pitch, "tie broken by insertion order")
	assert.Equal(t, 61.0, ordered[2].Pitch)
}

func TestTimeline_OrderedIdempotent(t *testing.T) {
	tl := NewTimeline()
	tl.Add(MustEvent(1, 1, 61, 0.5, 0))
	tl.Add(MustEvent(0, 1, 60, 0.5, 0))

	first := tl.Ordered()
	second := tl.Ordered()
	assert.Equal(t, first, second, "repeated Ordered without Add must match")

	// Ordered must not mutate insertion order.
	events := tl.Events()
	assert.Equal(t, 61.0, events[0].Pitch)
}

func TestTimeline_OrderedAfterAdd(t *testing.T) {
	tl := NewTimeline()
	tl.Add(MustEvent(0, 1, 60, 0.5, 0))
	tl.Add(MustEvent(2, 1, 62, 0.5, 0))

	// Incremental preview mid-population is allowed.
	assert.Len(t, tl.Ordered(), 2)

	tl.Add(MustEvent(1, 1, 61, 0.5, 0))
	ordered := tl.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, 61.0, ordered[1].Pitch, "new event lands in time position")
}

func TestMerge_StableByStartTime(t *testing.T) {
	a := NewTimeline()
	a.Add(MustEvent(0, 1, 60, 0.5, 0))
	a.Add(MustEvent(2, 1, 62, 0.5, 0))

	b := NewTimeline()
	b.Add(MustEvent(0, 1, 48, 0.5, 1))
	b.Add(MustEvent(1, 1, 50, 0.5, 1))

	merged := Merge(a, b)
	ordered := merged.Events()
	require.Len(t, ordered, 4)

	// Equal start: timeline a's event first (stable merge).
	assert.Equal(t, 60.0, ordered[0].Pitch)
	assert.Equal(t, 48.0, ordered[1].Pitch)
	assert.Equal(t, 50.0, ordered[2].Pitch)
	assert.Equal(t, 62.0, ordered[3].Pitch)

	// Inputs untouched.
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, b.Len())
}
