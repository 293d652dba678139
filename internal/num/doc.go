// Package num provides scalar numeric and stochastic helpers shared by
// the pattern-generator library and composer processes: bounded random
// values, weighted coin flips, quantization, linear rescaling, and
// breakpoint envelopes.
//
// Stochastic helpers take an explicit *rand.Rand so a fixed seed keeps
// whole runs reproducible.
package num
