package engine

import (
	"context"
	"fmt"
	"log/slog"
)

// Entry pairs a process with the start offset (relative to the current
// virtual time) at which it should first resume.
type Entry struct {
	Offset float64
	Proc   Proc
}

// At builds an Entry starting offset time units from now.
func At(offset float64, p Proc) Entry {
	return Entry{Offset: offset, Proc: p}
}

// Scheduler owns the virtual clock and the time-ordered queue of pending
// process resumptions, and drives execution to completion.
//
// All scheduling happens on the goroutine that calls Run; Spawn may only
// be called from a resuming process (or before Run, to pre-register
// work). Now and Elapsed are stable for the duration of one resumption:
// a process observes a consistent snapshot even while spawning children
// that will run later.
type Scheduler struct {
	clock   *Clock
	queue   *runQueue
	spawned int64

	resumptions int64
}

// New creates a scheduler whose clock starts at 0.
func New() *Scheduler {
	return NewAt(0)
}

// NewAt creates a scheduler whose clock starts at the given reference
// time.
func NewAt(start float64) *Scheduler {
	return &Scheduler{
		clock: NewClockAt(start),
		queue: newRunQueue(),
	}
}

// Now returns the virtual time of the current resumption.
func (s *Scheduler) Now() float64 {
	return s.clock.Now()
}

// Elapsed returns the virtual time since the scheduler's reference point.
func (s *Scheduler) Elapsed() float64 {
	return s.clock.Elapsed()
}

// Pending returns the number of queued resumptions.
func (s *Scheduler) Pending() int {
	return s.queue.len()
}

// Spawn registers a process to first resume at now + offset.
//
// Each spawn receives a fresh spawn-order value strictly greater than all
// prior spawns, so a process can never be resumed "before" the moment it
// was spawned, and simultaneous wake-ups resolve in spawn order. A
// negative offset is a scheduling invariant violation.
func (s *Scheduler) Spawn(p Proc, offset float64) error {
	if p == nil {
		return fmt.Errorf("spawn: process is required")
	}
	if offset < 0 {
		return newSchedError(ErrCodeSpawnInPast, "spawn offset %v would wake before now (%v)", offset, s.Now())
	}
	s.spawned++
	s.queue.push(&entry{wake: s.Now() + offset, order: s.spawned, proc: p})
	slog.Debug("process spawned", "wake", s.Now()+offset, "order", s.spawned)
	return nil
}

// Run registers the given entries and drives the queue to completion.
//
// The loop pops the earliest (wake, spawnOrder) entry, advances the clock
// to its wake time, and resumes the process. A reported wait > 0
// reschedules at now+wait; wait == 0 reschedules at now, ordered after
// already-queued same-time entries (permitting same-instant chains
// without recursion); End terminates the process. Any other negative wait
// aborts the run, as does an error escaping a resumption.
//
// Run returns once the queue is empty. There is no step limit: a process
// population that always re-submits with positive waits is a user error,
// not a detected fault. Context cancellation is checked between
// resumptions.
func (s *Scheduler) Run(ctx context.Context, entries ...Entry) error {
	for _, e := range entries {
		if err := s.Spawn(e.Proc, e.Offset); err != nil {
			return err
		}
	}

	slog.Debug("scheduler starting", "processes", s.queue.len(), "now", s.Now())

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopping: context cancelled", "now", s.Now())
			return ctx.Err()
		default:
		}

		e, ok := s.queue.pop()
		if !ok {
			break
		}

		if err := s.clock.Advance(e.wake); err != nil {
			return err
		}
		s.resumptions++

		wait, err := e.proc.Resume(s)
		if err != nil {
			return fmt.Errorf("process %d at t=%v: %w", e.order, s.Now(), err)
		}

		switch {
		case wait == End:
			slog.Debug("process terminated", "order", e.order, "now", s.Now())

		case wait < 0:
			return newSchedError(ErrCodeInvalidWait, "process %d reported wait %v (only %v terminates)", e.order, wait, End)

		default:
			// Reschedule under a fresh spawn-order value: a zero wait
			// lands behind entries already queued at this instant.
			s.spawned++
			s.queue.push(&entry{wake: s.Now() + wait, order: s.spawned, proc: e.proc})
		}
	}

	slog.Info("scheduler finished",
		"now", s.Now(),
		"elapsed", s.Elapsed(),
		"resumptions", s.resumptions,
	)
	return nil
}

// RunAll starts every process at the current virtual time.
func (s *Scheduler) RunAll(ctx context.Context, procs ...Proc) error {
	entries := make([]Entry, len(procs))
	for i, p := range procs {
		entries[i] = Entry{Proc: p}
	}
	return s.Run(ctx, entries...)
}
