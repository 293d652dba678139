package store

import (
	"context"
	"fmt"

	"github.com/mkord/ostinato/internal/score"
)

// Performance is one stored render: piece metadata plus the hash of the
// timeline it produced.
type Performance struct {
	ID            string
	Title         string
	Seed          int64
	TimelineHash  string
	EngineVersion string
	EventCount    int
	CreatedAt     string
}

// WritePerformance inserts a performance and its events in one
// transaction. The events are stored in emission order under their index.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: re-writing an existing
// performance is a silent no-op, events included.
func (s *Store) WritePerformance(ctx context.Context, perf Performance, events []score.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write performance: begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO performances
		(id, title, seed, timeline_hash, engine_version, event_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		perf.ID,
		perf.Title,
		perf.Seed,
		perf.TimelineHash,
		perf.EngineVersion,
		len(events),
	)
	if err != nil {
		return fmt.Errorf("write performance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("write performance: rows affected: %w", err)
	}
	if affected == 0 {
		// Already stored. The events landed with it in the original
		// transaction, so there is nothing left to do.
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events
		(performance_id, idx, start, dur, pitch, amp, channel, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write performance: prepare events: %w", err)
	}
	defer stmt.Close()

	for i, ev := range events {
		meta, err := marshalMeta(ev.Meta)
		if err != nil {
			return fmt.Errorf("write performance: event %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, perf.ID, i, ev.Start, ev.Dur, ev.Pitch, ev.Amp, ev.Channel, meta); err != nil {
			return fmt.Errorf("write performance: event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write performance: commit: %w", err)
	}
	return nil
}

// marshalMeta serializes event metadata to canonical JSON, or nil when
// the event carries none.
func marshalMeta(meta map[string]string) (any, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	m := make(map[string]any, len(meta))
	for k, v := range meta {
		m[k] = v
	}
	data, err := score.MarshalCanonical(m)
	if err != nil {
		return nil, fmt.Errorf("marshal meta: %w", err)
	}
	return string(data), nil
}
