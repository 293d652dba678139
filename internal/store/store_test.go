package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkord/ostinato/internal/score"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEvents() []score.Event {
	return []score.Event{
		score.MustEvent(0, 1, 60, 0.5, 0),
		score.MustEvent(0, 1, 72, 0.5, 1),
		score.MustEvent(1, 0.5, 62, 0.25, 0),
		score.MustEvent(2, 0.5, 64, 0.25, 0),
	}
}

func writeTestPerformance(t *testing.T, s *Store, id string, events []score.Event) Performance {
	t.Helper()
	timeline := score.NewTimeline()
	for _, ev := range events {
		timeline.Add(ev)
	}
	perf := Performance{
		ID:            id,
		Title:         "test piece",
		Seed:          42,
		TimelineHash:  score.MustTimelineHash(timeline),
		EngineVersion: score.EngineVersion,
	}
	require.NoError(t, s.WritePerformance(context.Background(), perf, events))
	return perf
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	writeTestPerformance(t, s1, "perf-1", testEvents())
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	perf, err := s2.ReadPerformance(context.Background(), "perf-1")
	require.NoError(t, err)
	assert.Equal(t, "test piece", perf.Title)
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	events := testEvents()
	writeTestPerformance(t, s, "perf-1", events)

	perf, err := s.ReadPerformance(context.Background(), "perf-1")
	require.NoError(t, err)
	assert.Equal(t, "perf-1", perf.ID)
	assert.Equal(t, int64(42), perf.Seed)
	assert.Equal(t, len(events), perf.EventCount)
	assert.NotEmpty(t, perf.TimelineHash)
	assert.NotEmpty(t, perf.CreatedAt)

	got, err := s.ReadEvents(context.Background(), "perf-1", EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestWritePerformanceMeta(t *testing.T) {
	s := openTestStore(t)
	ev, err := score.NewEvent(0, 1, 60, 0.5, 0, map[string]string{"voice": "lead"})
	require.NoError(t, err)
	writeTestPerformance(t, s, "perf-1", []score.Event{ev})

	got, err := s.ReadEvents(context.Background(), "perf-1", EventFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{"voice": "lead"}, got[0].Meta)
}

func TestWritePerformanceIdempotent(t *testing.T) {
	s := openTestStore(t)
	events := testEvents()
	perf := writeTestPerformance(t, s, "perf-1", events)

	// Second write with the same ID is a silent no-op.
	require.NoError(t, s.WritePerformance(context.Background(), perf, events))

	got, err := s.ReadEvents(context.Background(), "perf-1", EventFilter{})
	require.NoError(t, err)
	assert.Len(t, got, len(events))
}

func TestReadPerformanceNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadPerformance(context.Background(), "missing")
	require.Error(t, err)
}

func TestReadEventsChannelFilter(t *testing.T) {
	s := openTestStore(t)
	writeTestPerformance(t, s, "perf-1", testEvents())

	ch := 1
	got, err := s.ReadEvents(context.Background(), "perf-1", EventFilter{Channel: &ch})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 72.0, got[0].Pitch)
}

func TestReadEventsTimeWindow(t *testing.T) {
	s := openTestStore(t)
	writeTestPerformance(t, s, "perf-1", testEvents())

	from, to := 0.5, 2.0
	got, err := s.ReadEvents(context.Background(), "perf-1", EventFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 1, "window is [from, to)")
	assert.Equal(t, 1.0, got[0].Start)
}

func TestReadEventsEmpty(t *testing.T) {
	s := openTestStore(t)

	got, err := s.ReadEvents(context.Background(), "missing", EventFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListPerformancesOrderedByID(t *testing.T) {
	s := openTestStore(t)
	writeTestPerformance(t, s, "b-perf", testEvents())
	writeTestPerformance(t, s, "a-perf", testEvents())

	list, err := s.ListPerformances(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a-perf", list[0].ID)
	assert.Equal(t, "b-perf", list[1].ID)
}

func TestListPerformancesEmpty(t *testing.T) {
	s := openTestStore(t)

	list, err := s.ListPerformances(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestVerifyMatch(t *testing.T) {
	s := openTestStore(t)
	writeTestPerformance(t, s, "perf-1", testEvents())

	result, err := s.Verify(context.Background(), "perf-1")
	require.NoError(t, err)
	assert.True(t, result.Match)
	assert.Equal(t, result.StoredHash, result.ComputedHash)
	assert.Equal(t, 4, result.EventCount)
}

func TestVerifyDetectsTamper(t *testing.T) {
	s := openTestStore(t)
	writeTestPerformance(t, s, "perf-1", testEvents())

	_, err := s.db.Exec(`UPDATE events SET pitch = 61 WHERE idx = 0`)
	require.NoError(t, err)

	result, err := s.Verify(context.Background(), "perf-1")
	require.NoError(t, err)
	assert.False(t, result.Match)
	assert.NotEqual(t, result.StoredHash, result.ComputedHash)
}
