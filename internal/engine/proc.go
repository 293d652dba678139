package engine

// End is the terminal wait sentinel. A process that reports End from
// Resume is terminated and never resumed again. Any other negative wait
// is a scheduling invariant violation that aborts the run.
const End float64 = -1

// Proc is a composer process: a suspendable unit of composition logic
// that emits events and reports how long until it should next run.
//
// Each Resume call executes the process forward from its last suspension
// point to the next one (or to completion) and reports exactly one of:
// a non-negative wait, the End sentinel, or an error. Side effects
// performed during a resumption (adding events, spawning processes) take
// effect immediately and are visible to processes resumed at the same or
// later virtual time.
type Proc interface {
	Resume(s *Scheduler) (wait float64, err error)
}

// ProcFunc adapts a re-entrant closure to the Proc interface. The closure
// carries its own cursor state between resumptions.
type ProcFunc func(s *Scheduler) (float64, error)

// Resume implements Proc.
func (f ProcFunc) Resume(s *Scheduler) (float64, error) {
	return f(s)
}

// Step is one segment of a Routine, ending at a suspension point.
type Step func(s *Scheduler) (wait float64, err error)

// Routine adapts a procedure authored as an explicit sequence of steps:
// each resumption runs the next step, and exhausting the steps is
// equivalent to reporting End. A step may itself report End to finish
// early.
type Routine struct {
	steps  []Step
	cursor int
}

// NewRoutine builds a step-sequence process.
func NewRoutine(steps ...Step) *Routine {
	return &Routine{steps: steps}
}

// Resume implements Proc by running the step at the cursor.
func (r *Routine) Resume(s *Scheduler) (float64, error) {
	if r.cursor >= len(r.steps) {
		return End, nil
	}
	step := r.steps[r.cursor]
	r.cursor++
	return step(s)
}
