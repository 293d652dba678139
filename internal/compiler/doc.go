// Package compiler parses CUE piece definitions into the plain Piece IR
// consumed by the perform package.
//
// A piece file declares a top-level "piece" struct: a title, a random
// seed, and a list of voices. Each voice names its channel, start offset,
// step count, and the generator specs supplying its pitch, rhythm,
// duration, and amplitude streams. Generator specs are tagged structs
// (const | cycle | choose | shuffle | markov) mirroring the pattern
// package's variants.
//
// Compilation is field-by-field with positional diagnostics: every
// validation failure carries the CUE source position of the offending
// field so piece authors get actionable errors.
package compiler
