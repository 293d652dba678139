package engine

// Clock is the monotonic virtual clock for a run.
//
// Time is float64 in abstract units (beats or seconds - unit-agnostic as
// long as one run is consistent) and is unrelated to wall-clock time. The
// clock advances only when the scheduler pops the next due resumption,
// and it never goes backwards.
//
// The clock is owned by the single-threaded scheduler loop and needs no
// synchronization.
type Clock struct {
	start float64
	now   float64
}

// NewClock creates a clock whose reference point is 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at a specific reference time.
func NewClockAt(start float64) *Clock {
	return &Clock{start: start, now: start}
}

// Now returns the current virtual time.
func (c *Clock) Now() float64 {
	return c.now
}

// Elapsed returns the virtual time since the clock's reference point.
func (c *Clock) Elapsed() float64 {
	return c.now - c.start
}

// Advance moves the clock forward to t.
// Moving backwards violates monotonicity and is rejected.
func (c *Clock) Advance(t float64) error {
	if t < c.now {
		return newSchedError(ErrCodeClockRegress, "cannot advance clock from %v back to %v", c.now, t)
	}
	c.now = t
	return nil
}
