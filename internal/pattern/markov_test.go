package pattern

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkov_SingleSelfTransitionIsConstant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, err := NewMarkov(rng, 2, []float64{62, 62}, []Transition[float64]{
		{From: []float64{62, 62}, Choices: []Choice[float64]{Lit(62.0, 1)}},
	})
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		v, err := m.Next()
		require.NoError(t, err)
		assert.Equal(t, 62.0, v, "call %d", i)
	}
}

func TestMarkov_SlidesHistoryWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, err := NewMarkov(rng, 1, []string{"a"}, []Transition[string]{
		{From: []string{"a"}, Choices: []Choice[string]{Lit("b", 1)}},
		{From: []string{"b"}, Choices: []Choice[string]{Lit("c", 1)}},
		{From: []string{"c"}, Choices: []Choice[string]{Lit("a", 1)}},
	})
	require.NoError(t, err)

	want := []string{"b", "c", "a", "b", "c", "a"}
	for i, expected := range want {
		v, err := m.Next()
		require.NoError(t, err)
		assert.Equal(t, expected, v, "call %d", i)
	}
	assert.Equal(t, []string{"a"}, m.History())
}

func TestMarkov_MissingTransition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, err := NewMarkov(rng, 1, []int{1}, []Transition[int]{
		{From: []int{1}, Choices: []Choice[int]{Lit(2, 1)}},
	})
	require.NoError(t, err)

	v, err := m.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// History is now (2), which has no transition: no default is applied.
	_, err = m.Next()
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeNoTransition))
}

func TestMarkov_Validation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := NewMarkov(rng, 0, nil, []Transition[int]{{From: []int{}, Choices: []Choice[int]{Lit(1, 1)}}})
	assert.True(t, IsCode(err, ErrCodeBadRule), "order < 1")

	_, err = NewMarkov(rng, 2, []int{1}, []Transition[int]{{From: []int{1, 2}, Choices: []Choice[int]{Lit(1, 1)}}})
	assert.True(t, IsCode(err, ErrCodeBadRule), "seed length mismatch")

	_, err = NewMarkov(rng, 1, []int{1}, []Transition[int]{{From: []int{1, 2}, Choices: []Choice[int]{Lit(1, 1)}}})
	assert.True(t, IsCode(err, ErrCodeBadRule), "transition history length mismatch")

	_, err = NewMarkov(rng, 1, []int{1}, nil)
	assert.True(t, IsCode(err, ErrCodeEmptyInput), "no transitions")

	_, err = NewMarkov(rng, 1, []int{1}, []Transition[int]{
		{From: []int{1}, Choices: []Choice[int]{Lit(2, 1)}},
		{From: []int{1}, Choices: []Choice[int]{Lit(3, 1)}},
	})
	assert.True(t, IsCode(err, ErrCodeBadRule), "duplicate history tuple")
}

func TestMarkov_WeightedBranching(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m, err := NewMarkov(rng, 1, []int{0}, []Transition[int]{
		{From: []int{0}, Choices: []Choice[int]{Lit(0, 1), Lit(1, 1)}},
		{From: []int{1}, Choices: []Choice[int]{Lit(0, 1)}},
	})
	require.NoError(t, err)

	seen := map[int]int{}
	for i := 0; i < 500; i++ {
		v, err := m.Next()
		require.NoError(t, err)
		seen[v]++
	}
	assert.Greater(t, seen[0], 0)
	assert.Greater(t, seen[1], 0)
}
