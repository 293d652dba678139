package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_StartsAtZero(t *testing.T) {
	c := NewClock()
	assert.Equal(t, 0.0, c.Now())
	assert.Equal(t, 0.0, c.Elapsed())
}

func TestClock_StartsAtReference(t *testing.T) {
	c := NewClockAt(10)
	assert.Equal(t, 10.0, c.Now())
	assert.Equal(t, 0.0, c.Elapsed(), "elapsed is relative to the reference")
}

func TestClock_AdvanceForward(t *testing.T) {
	c := NewClock()
	require.NoError(t, c.Advance(1.5))
	assert.Equal(t, 1.5, c.Now())

	require.NoError(t, c.Advance(1.5), "advancing to the current time is allowed")
	assert.Equal(t, 1.5, c.Now())

	require.NoError(t, c.Advance(4))
	assert.Equal(t, 4.0, c.Now())
	assert.Equal(t, 4.0, c.Elapsed())
}

func TestClock_AdvanceBackwardRejected(t *testing.T) {
	c := NewClockAt(5)
	err := c.Advance(4.9)
	require.Error(t, err)

	var se *SchedError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrCodeClockRegress, se.Code)
	assert.Equal(t, 5.0, c.Now(), "failed advance must not move the clock")
}
