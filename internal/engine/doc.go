// Package engine implements the discrete-event scheduler that drives
// composer processes against a virtual clock.
//
// ARCHITECTURE:
//
// Single-threaded cooperative loop:
// Exactly one composer process executes at a time. "Concurrency" is
// purely logical: processes interleave at the granularity of the virtual
// clock, suspending only at their explicit wait-reporting points. There
// is no preemption and no wall-clock sleeping; the clock advances only
// when the loop pops the next due resumption.
//
// Scheduling flow:
//  1. Run registers the top-level processes at now+offset with
//     increasing spawn order
//  2. The loop pops the minimum (wake, spawnOrder) entry
//  3. The clock advances to the popped wake time
//  4. The process resumes, emits events, possibly spawns children,
//     and reports its next wait (or End)
//  5. Run returns when the queue is empty
//
// Determinism:
// Entries are ordered by wake time, ties broken by spawn order, so two
// processes due at the same virtual time always resume in spawn order.
// With seeded generators the entire run is reproducible.
//
// Error handling:
// An error escaping a resumption aborts the whole run; a half-populated
// timeline is considered unusable output, so there is no partial-failure
// isolation between processes and no retry.
package engine
