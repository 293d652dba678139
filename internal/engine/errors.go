package engine

import (
	"errors"
	"fmt"
)

// SchedError represents a scheduling invariant violation.
//
// Violations (a negative wait that is not the End sentinel, a spawn
// offset that would wake a process before now, a clock regression) are
// rejected at the offending call; the run aborts rather than silently
// clamping the value.
type SchedError struct {
	// Code identifies the error category.
	Code SchedErrorCode

	// Message is a human-readable description.
	Message string
}

// SchedErrorCode categorizes scheduling errors.
type SchedErrorCode string

const (
	// ErrCodeInvalidWait indicates a negative wait that is not End.
	ErrCodeInvalidWait SchedErrorCode = "INVALID_WAIT"

	// ErrCodeSpawnInPast indicates a spawn offset before the current time.
	ErrCodeSpawnInPast SchedErrorCode = "SPAWN_IN_PAST"

	// ErrCodeClockRegress indicates an attempt to move the clock backwards.
	ErrCodeClockRegress SchedErrorCode = "CLOCK_REGRESS"
)

// Error implements the error interface.
func (e *SchedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidWait reports whether err is an invalid-wait violation.
// Uses errors.As to handle wrapped errors.
func IsInvalidWait(err error) bool {
	var se *SchedError
	return errors.As(err, &se) && se.Code == ErrCodeInvalidWait
}

// IsSpawnInPast reports whether err is a spawn-before-now violation.
func IsSpawnInPast(err error) bool {
	var se *SchedError
	return errors.As(err, &se) && se.Code == ErrCodeSpawnInPast
}

func newSchedError(code SchedErrorCode, format string, args ...any) *SchedError {
	return &SchedError{Code: code, Message: fmt.Sprintf(format, args...)}
}
