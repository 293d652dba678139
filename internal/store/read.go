package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mkord/ostinato/internal/score"
)

// EventFilter narrows ReadEvents. Nil fields match everything.
type EventFilter struct {
	Channel *int
	From    *float64 // inclusive lower bound on start
	To      *float64 // exclusive upper bound on start
}

// ReadPerformance returns one performance row by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadPerformance(ctx context.Context, id string) (Performance, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, seed, timeline_hash, engine_version, event_count, created_at
		FROM performances
		WHERE id = ?
	`, id)

	var p Performance
	err := row.Scan(&p.ID, &p.Title, &p.Seed, &p.TimelineHash, &p.EngineVersion, &p.EventCount, &p.CreatedAt)
	if err != nil {
		return Performance{}, fmt.Errorf("read performance %s: %w", id, err)
	}
	return p, nil
}

// ListPerformances returns all performances ordered by ID. UUIDv7 IDs are
// time-sortable, so this is also creation order.
//
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListPerformances(ctx context.Context) ([]Performance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, seed, timeline_hash, engine_version, event_count, created_at
		FROM performances
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query performances: %w", err)
	}
	defer rows.Close()

	performances := []Performance{}
	for rows.Next() {
		var p Performance
		if err := rows.Scan(&p.ID, &p.Title, &p.Seed, &p.TimelineHash, &p.EngineVersion, &p.EventCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		performances = append(performances, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate performances: %w", err)
	}
	return performances, nil
}

// ReadEvents returns a performance's events in time order, with emission
// index as the tie-breaker so re-reads are deterministic.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ReadEvents(ctx context.Context, performanceID string, filter EventFilter) ([]score.Event, error) {
	query := `
		SELECT start, dur, pitch, amp, channel, meta
		FROM events
		WHERE performance_id = ?
	`
	args := []any{performanceID}

	if filter.Channel != nil {
		query += " AND channel = ?"
		args = append(args, *filter.Channel)
	}
	if filter.From != nil {
		query += " AND start >= ?"
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += " AND start < ?"
		args = append(args, *filter.To)
	}
	query += " ORDER BY start ASC, idx ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []score.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (score.Event, error) {
	var (
		ev   score.Event
		meta sql.NullString
	)
	if err := rows.Scan(&ev.Start, &ev.Dur, &ev.Pitch, &ev.Amp, &ev.Channel, &meta); err != nil {
		return score.Event{}, fmt.Errorf("scan event: %w", err)
	}
	if meta.Valid {
		if err := json.Unmarshal([]byte(meta.String), &ev.Meta); err != nil {
			return score.Event{}, fmt.Errorf("unmarshal event meta: %w", err)
		}
	}
	return ev, nil
}
