package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	var same int
	for i := 0; i < 20; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Less(t, same, 20)
}

func TestWeightedIndexSingleEntry(t *testing.T) {
	s := New(7)
	idx := WeightedIndex(s, 5, []float64{5})
	assert.Equal(t, 0, idx)
}

func TestWeightedIndexInRange(t *testing.T) {
	cumulative := []float64{1, 3, 6, 10}
	testCases := []struct {
		name string
		seed int64
	}{
		{"seed-1", 1},
		{"seed-2", 2},
		{"seed-3", 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.seed)
			for i := 0; i < 1000; i++ {
				idx := WeightedIndex(s, 10, cumulative)
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, len(cumulative))
			}
		})
	}
}

func TestWeightedIndexFairness(t *testing.T) {
	// weights 1,3,0.5 over total 4.5
	weights := []float64{1, 3, 0.5}
	cumulative := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		total += w
		cumulative[i] = total
	}

	s := New(1234)
	const n = 100000
	counts := make([]int, len(weights))
	for i := 0; i < n; i++ {
		counts[WeightedIndex(s, total, cumulative)]++
	}

	for i, w := range weights {
		want := float64(n) * w / total
		got := float64(counts[i])
		assert.InDelta(t, want, got, want*0.06)
	}
}
