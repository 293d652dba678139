package num

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnv_RequiresPoints(t *testing.T) {
	_, err := NewEnv()
	assert.Error(t, err)
}

func TestNewEnv_RequiresAscendingX(t *testing.T) {
	_, err := NewEnv(Point{0, 0}, Point{0, 1})
	assert.Error(t, err, "duplicate x")

	_, err = NewEnv(Point{1, 0}, Point{0, 1})
	assert.Error(t, err, "descending x")
}

func TestEnv_AtInterpolates(t *testing.T) {
	env, err := NewEnv(Point{0, 0}, Point{1, 1}, Point{2, 0})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, env.At(0), 1e-12)
	assert.InDelta(t, 0.5, env.At(0.5), 1e-12)
	assert.InDelta(t, 1.0, env.At(1), 1e-12)
	assert.InDelta(t, 0.5, env.At(1.5), 1e-12)
	assert.InDelta(t, 0.0, env.At(2), 1e-12)
}

func TestEnv_AtClampsOutsideSpan(t *testing.T) {
	env, err := NewEnv(Point{1, 0.2}, Point{2, 0.8})
	require.NoError(t, err)

	assert.Equal(t, 0.2, env.At(0))
	assert.Equal(t, 0.8, env.At(5))
}

func TestEnv_Span(t *testing.T) {
	env, err := NewEnv(Point{1, 0}, Point{4, 1})
	require.NoError(t, err)

	lo, hi := env.Span()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 4.0, hi)
}
