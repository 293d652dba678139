// Package pattern implements the stateful sequence generators that supply
// values (pitches, rhythms, amplitudes, permutations) to composer
// processes.
//
// Every generator shares one capability: produce the next value. The
// shared contract is the generic Gen interface. Deterministic generators
// wrap around instead of exhausting; stochastic generators draw from an
// explicit *rand.Rand so a fixed seed reproduces the whole stream.
//
// Generators compose: a Choose or Markov candidate may itself be a nested
// generator (resolved by one level of indirection at sampling time) and
// candidate weights are dynamic values re-evaluated on every draw.
//
// Sharing one generator instance across several composer processes is
// legal and needs no locking, since the scheduler serializes resumptions.
// The shared stream's elements are then distributed between the callers
// according to resumption order, which couples their output streams.
package pattern
