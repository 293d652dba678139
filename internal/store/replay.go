package store

import (
	"context"
	"fmt"

	"github.com/mkord/ostinato/internal/score"
)

// VerifyResult reports whether a stored performance still hashes to the
// value recorded at write time.
type VerifyResult struct {
	PerformanceID string
	StoredHash    string
	ComputedHash  string
	EventCount    int
	Match         bool
}

// Verify re-reads a performance's events, recomputes the timeline hash,
// and compares it with the stored one. A mismatch means the rows were
// altered after the original write, or written by an incompatible
// snapshot format.
func (s *Store) Verify(ctx context.Context, performanceID string) (VerifyResult, error) {
	perf, err := s.ReadPerformance(ctx, performanceID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify: %w", err)
	}

	events, err := s.ReadEvents(ctx, performanceID, EventFilter{})
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify: %w", err)
	}

	timeline := score.NewTimeline()
	for _, ev := range events {
		timeline.Add(ev)
	}

	computed, err := score.TimelineHash(timeline)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("verify: hash: %w", err)
	}

	return VerifyResult{
		PerformanceID: performanceID,
		StoredHash:    perf.TimelineHash,
		ComputedHash:  computed,
		EventCount:    len(events),
		Match:         computed == perf.TimelineHash,
	}, nil
}
