package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countdown resumes n times with a fixed wait, recording each resumption.
func countdown(name string, n int, wait float64, log *[]string) Proc {
	return ProcFunc(func(s *Scheduler) (float64, error) {
		if n == 0 {
			return End, nil
		}
		n--
		*log = append(*log, name)
		return wait, nil
	})
}

func TestScheduler_RunTerminatesWithPositiveWaits(t *testing.T) {
	s := New()
	var log []string
	err := s.RunAll(context.Background(), countdown("a", 100, 0.25, &log))
	require.NoError(t, err)
	assert.Len(t, log, 100)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_ClockAdvancesToWakeTimes(t *testing.T) {
	s := New()
	var times []float64
	n := 3
	p := ProcFunc(func(s *Scheduler) (float64, error) {
		times = append(times, s.Now())
		n--
		if n == 0 {
			return End, nil
		}
		return 1.5, nil
	})

	require.NoError(t, s.Run(context.Background(), At(2, p)))
	assert.Equal(t, []float64{2, 3.5, 5}, times)
	assert.Equal(t, 5.0, s.Now())
	assert.Equal(t, 5.0, s.Elapsed())
}

func TestScheduler_TiedWakesResumeInSpawnOrder(t *testing.T) {
	s := New()
	var log []string
	// Both processes wake at every integer time; spawn order must decide
	// every single tie, making the interleaving fully deterministic.
	a := countdown("a", 5, 1, &log)
	b := countdown("b", 5, 1, &log)

	require.NoError(t, s.Run(context.Background(), At(0, a), At(0, b)))
	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b", "a", "b", "a", "b"}, log)
}

func TestScheduler_ZeroWaitRunsBehindQueuedPeers(t *testing.T) {
	s := New()
	var log []string

	first := true
	a := ProcFunc(func(s *Scheduler) (float64, error) {
		if !first {
			return End, nil
		}
		first = false
		log = append(log, "a")
		return 0, nil // same-instant chain
	})
	b := ProcFunc(func(s *Scheduler) (float64, error) {
		log = append(log, "b")
		return End, nil
	})

	require.NoError(t, s.Run(context.Background(), At(0, a), At(0, b)))
	// a's zero-wait reschedule lands behind b, which was already queued
	// for the same instant.
	assert.Equal(t, []string{"a", "b"}, log)
	assert.Equal(t, 0.0, s.Now(), "zero waits never advance the clock")
}

func TestScheduler_SpawnChildNotBeforeOffset(t *testing.T) {
	s := New()
	var childTime float64

	child := ProcFunc(func(s *Scheduler) (float64, error) {
		childTime = s.Now()
		return End, nil
	})
	parent := ProcFunc(func(s *Scheduler) (float64, error) {
		if err := s.Spawn(child, 3); err != nil {
			return End, err
		}
		return End, nil
	})

	require.NoError(t, s.Run(context.Background(), At(2, parent)))
	assert.Equal(t, 5.0, childTime, "child scheduled at parent's now + offset")
}

func TestScheduler_SpawnedChildTiesAfterExistingEntries(t *testing.T) {
	s := New()
	var log []string

	child := ProcFunc(func(s *Scheduler) (float64, error) {
		log = append(log, "child")
		return End, nil
	})
	parent := ProcFunc(func(s *Scheduler) (float64, error) {
		log = append(log, "parent")
		// Child due at the same instant as peer, but spawned later.
		return End, s.Spawn(child, 0)
	})
	peer := ProcFunc(func(s *Scheduler) (float64, error) {
		log = append(log, "peer")
		return End, nil
	})

	require.NoError(t, s.Run(context.Background(), At(0, parent), At(0, peer)))
	assert.Equal(t, []string{"parent", "peer", "child"}, log)
}

func TestScheduler_SpawnNegativeOffsetRejected(t *testing.T) {
	s := New()
	err := s.Spawn(ProcFunc(func(*Scheduler) (float64, error) { return End, nil }), -1)
	require.Error(t, err)
	assert.True(t, IsSpawnInPast(err))
	assert.Equal(t, 0, s.Pending(), "rejected spawn must not enqueue")
}

func TestScheduler_InvalidNegativeWaitAbortsRun(t *testing.T) {
	s := New()
	p := ProcFunc(func(*Scheduler) (float64, error) { return -0.5, nil })

	err := s.RunAll(context.Background(), p)
	require.Error(t, err)
	assert.True(t, IsInvalidWait(err))
}

func TestScheduler_ProcessErrorAbortsRun(t *testing.T) {
	s := New()
	var log []string

	failing := ProcFunc(func(*Scheduler) (float64, error) {
		return 0, assert.AnError
	})
	bystander := countdown("b", 10, 1, &log)

	err := s.Run(context.Background(), At(0, failing), At(0, bystander))
	require.ErrorIs(t, err, assert.AnError, "no partial-failure isolation")
	assert.Empty(t, log, "the failing process was due first; nothing else runs")
}

func TestScheduler_ContextCancellation(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	n := 0
	p := ProcFunc(func(*Scheduler) (float64, error) {
		n++
		if n == 3 {
			cancel()
		}
		return 1, nil
	})

	err := s.RunAll(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, n, "cancellation is observed between resumptions")
}

func TestScheduler_NonZeroReference(t *testing.T) {
	s := NewAt(100)
	var now float64
	p := ProcFunc(func(s *Scheduler) (float64, error) {
		now = s.Now()
		return End, nil
	})

	require.NoError(t, s.Run(context.Background(), At(1, p)))
	assert.Equal(t, 101.0, now)
	assert.Equal(t, 1.0, s.Elapsed())
}

func TestScheduler_DeterministicInterleaving(t *testing.T) {
	run := func() []string {
		s := New()
		var log []string
		a := countdown("a", 4, 0.5, &log)
		b := countdown("b", 4, 0.5, &log)
		c := countdown("c", 2, 1, &log)
		require.NoError(t, s.Run(context.Background(), At(0, a), At(0, b), At(0.5, c)))
		return log
	}

	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run(), "identical inputs must interleave identically")
	}
}
