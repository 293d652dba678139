package perform

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mkord/ostinato/internal/compiler"
	"github.com/mkord/ostinato/internal/engine"
	"github.com/mkord/ostinato/internal/num"
	"github.com/mkord/ostinato/internal/score"
)

// Render realizes a compiled piece into a timeline.
//
// All voices share one random source seeded from the piece, so renders of
// the same piece are bit-identical. The returned timeline holds events in
// emission order; callers wanting time order use Timeline.Ordered.
func Render(ctx context.Context, piece *compiler.Piece) (*score.Timeline, error) {
	rng := rand.New(rand.NewSource(piece.Seed))
	timeline := score.NewTimeline()
	sched := engine.New()

	entries := make([]engine.Entry, len(piece.Voices))
	for i := range piece.Voices {
		v := &piece.Voices[i]
		proc, err := voiceProc(v, rng, timeline)
		if err != nil {
			return nil, fmt.Errorf("voice %q: %w", v.Name, err)
		}
		entries[i] = engine.At(v.Offset, proc)
	}

	if err := sched.Run(ctx, entries...); err != nil {
		return nil, err
	}

	slog.Debug("render complete",
		"title", piece.Title,
		"voices", len(piece.Voices),
		"events", timeline.Len(),
		"span", sched.Elapsed(),
	)
	return timeline, nil
}

// voiceProc builds the composer process for one voice: a closure that
// emits one event per resumption and yields the rhythm value as its wait.
func voiceProc(v *compiler.Voice, rng *rand.Rand, timeline *score.Timeline) (engine.Proc, error) {
	pitch, err := buildGen(v.Pitch, rng)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}
	rhythm, err := buildGen(v.Rhythm, rng)
	if err != nil {
		return nil, fmt.Errorf("rhythm: %w", err)
	}
	dur, err := buildGen(v.Dur, rng)
	if err != nil {
		return nil, fmt.Errorf("dur: %w", err)
	}

	ampAt, err := ampSource(v, rng)
	if err != nil {
		return nil, err
	}

	var (
		remaining = v.Steps
		started   = false
		startAt   float64
	)

	return engine.ProcFunc(func(s *engine.Scheduler) (float64, error) {
		if !started {
			started = true
			startAt = s.Now()
		}
		if remaining <= 0 {
			return engine.End, nil
		}
		remaining--

		p, err := pitch.Next()
		if err != nil {
			return 0, fmt.Errorf("pitch: %w", err)
		}
		d, err := dur.Next()
		if err != nil {
			return 0, fmt.Errorf("dur: %w", err)
		}
		a, err := ampAt(s.Now() - startAt)
		if err != nil {
			return 0, fmt.Errorf("amp: %w", err)
		}
		w, err := rhythm.Next()
		if err != nil {
			return 0, fmt.Errorf("rhythm: %w", err)
		}
		if w <= 0 {
			return 0, fmt.Errorf("rhythm: wait must be > 0, got %v", w)
		}

		start := s.Now()
		if v.Jitter > 0 {
			start += num.Between(rng, -v.Jitter, v.Jitter)
			if start < 0 {
				start = 0
			}
		}

		ev, err := score.NewEvent(start, d, p, a, v.Channel, nil)
		if err != nil {
			return 0, err
		}
		timeline.Add(ev)

		if remaining == 0 {
			return engine.End, nil
		}
		return w, nil
	}), nil
}

// ampSource returns the voice's amplitude lookup: either a generator
// stream or the breakpoint envelope evaluated at elapsed voice time.
func ampSource(v *compiler.Voice, rng *rand.Rand) (func(elapsed float64) (float64, error), error) {
	if v.Amp != nil {
		gen, err := buildGen(v.Amp, rng)
		if err != nil {
			return nil, fmt.Errorf("amp: %w", err)
		}
		return func(float64) (float64, error) { return gen.Next() }, nil
	}

	env, err := num.NewEnv(v.AmpEnv...)
	if err != nil {
		return nil, fmt.Errorf("ampEnv: %w", err)
	}
	return func(elapsed float64) (float64, error) { return env.At(elapsed), nil }, nil
}
