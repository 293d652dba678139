// Package perform realizes compiled pieces into timelines.
//
// Render is the single entry point: it seeds one random source from the
// piece, builds each voice's generators against that source, schedules
// one composer process per voice on a fresh virtual-time scheduler, and
// runs the population to completion. The same piece always yields the
// same timeline because the scheduler resolves same-instant ties by
// spawn order and every stochastic draw flows through the one seeded
// source.
package perform
