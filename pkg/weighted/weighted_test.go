package weighted

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequence struct {
	values []float64
	next   int
}

func (s *sequence) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestSuccessRate(t *testing.T) {
	cases := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"no attempts", Stats{}, 0.5},
		{"all correct", Stats{Correct: 4}, 1},
		{"all wrong", Stats{Incorrect: 3}, 0},
		{"mixed", Stats{Correct: 1, Incorrect: 3}, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, SuccessRate(tc.stats), 1e-12)
		})
	}
}

func TestWeight(t *testing.T) {
	assert.Equal(t, 10.0, Weight(Stats{}))
	assert.InDelta(t, 10.0, Weight(Stats{Incorrect: 5}), 1e-9)
	assert.InDelta(t, 1/0.6, Weight(Stats{Correct: 5, Incorrect: 5}), 1e-9)
	assert.InDelta(t, 1/1.1, Weight(Stats{Correct: 10}), 1e-9)

	// The zero-attempt override differs from the formula at the neutral rate.
	assert.NotEqual(t, 1/(NeutralSuccessRate+0.1), Weight(Stats{}))
}

func TestWeightDecreasesWithSuccessRate(t *testing.T) {
	const total = 20
	prev := Weight(Stats{Incorrect: total})
	for correct := 1; correct <= total; correct++ {
		w := Weight(Stats{Correct: correct, Incorrect: total - correct})
		require.Less(t, w, prev, "weight must drop when correct=%d", correct)
		prev = w
	}
}

func TestPickEmpty(t *testing.T) {
	s := NewSelector(&sequence{values: []float64{0.3}})
	assert.Equal(t, -1, s.Pick(nil))
	assert.Equal(t, -1, s.PickStats([]Stats{}))
}

func TestPickWalksCumulativeWeights(t *testing.T) {
	weights := []float64{1, 2, 3, 4} // total 10
	cases := []struct {
		u    float64
		want int
	}{
		{0.0, 0},
		{0.05, 0},
		{0.1, 0}, // r == 1 exactly hits the boundary of the first item
		{0.15, 1},
		{0.25, 1},
		{0.35, 2},
		{0.55, 2},
		{0.65, 3},
		{0.999, 3},
	}
	for _, tc := range cases {
		s := NewSelector(SourceFunc(func() float64 { return tc.u }))
		assert.Equal(t, tc.want, s.Pick(weights), "u=%v", tc.u)
	}
}

func TestPickFallsBackToLast(t *testing.T) {
	// A source returning a value >= 1 leaves r positive after the walk.
	s := NewSelector(SourceFunc(func() float64 { return 1.5 }))
	assert.Equal(t, 2, s.Pick([]float64{1, 1, 1}))
}

func TestPickSingleItem(t *testing.T) {
	s := NewSelector(&sequence{values: []float64{0.99}})
	assert.Equal(t, 0, s.PickStats([]Stats{{Correct: 100}}))
}

func TestPickStatsPrefersStrugglingItems(t *testing.T) {
	stats := []Stats{
		{Incorrect: 5},
		{Correct: 5, Incorrect: 5},
		{Correct: 10},
	}
	s := NewSelector(rand.New(rand.NewPCG(7, 11)))
	counts := make([]int, len(stats))
	for i := 0; i < 1000; i++ {
		counts[s.PickStats(stats)]++
	}
	assert.Greater(t, counts[0], 3*counts[1], "counts=%v", counts)
	assert.Greater(t, counts[1], counts[2], "counts=%v", counts)
}

func TestNewItemsMatchZeroSuccessItems(t *testing.T) {
	stats := []Stats{{}, {Incorrect: 7}}
	s := NewSelector(rand.New(rand.NewPCG(3, 5)))
	const n = 20000
	counts := make([]int, 2)
	for i := 0; i < n; i++ {
		counts[s.PickStats(stats)]++
	}
	assert.InDelta(t, n/2, counts[0], n*0.03, "counts=%v", counts)
}

func TestNewItemDominatesMasteredItems(t *testing.T) {
	stats := []Stats{{Correct: 20}, {Correct: 20}, {Correct: 20}, {}}
	s := NewSelector(rand.New(rand.NewPCG(42, 42)))
	counts := make([]int, len(stats))
	for i := 0; i < 5000; i++ {
		counts[s.PickStats(stats)]++
	}
	for i := 0; i < 3; i++ {
		assert.Greater(t, counts[3], 2*counts[i], "counts=%v", counts)
	}
}

func TestDefaultSourceInRange(t *testing.T) {
	src := DefaultSource()
	for i := 0; i < 100; i++ {
		v := src.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}
