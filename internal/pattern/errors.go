package pattern

import (
	"errors"
	"fmt"
)

// Error represents a configuration error detected by a generator.
//
// Configuration errors (empty input, zero total weight, missing Markov
// transition, malformed or non-closing rotation rules) fail fast at the
// offending call and are never retried.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes generator errors.
type ErrorCode string

const (
	// ErrCodeEmptyInput indicates a generator was built from no elements.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"

	// ErrCodeZeroWeight indicates all candidate weights evaluated to <= 0.
	ErrCodeZeroWeight ErrorCode = "ZERO_WEIGHT"

	// ErrCodeNoTransition indicates a Markov history tuple absent from the table.
	ErrCodeNoTransition ErrorCode = "NO_TRANSITION"

	// ErrCodeBadRule indicates a malformed rotation swap rule or transition.
	ErrCodeBadRule ErrorCode = "BAD_RULE"

	// ErrCodeOpenOrbit indicates a rotation drain exceeded the orbit bound.
	ErrCodeOpenOrbit ErrorCode = "OPEN_ORBIT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is (or wraps) a pattern Error with the code.
func IsCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
