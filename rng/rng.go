// Package rng wraps a seeded deterministic pseudo-random source: the
// evaluator's only source of randomness, so that the same source text and
// the same seed always produce the same output.
package rng

import "math/rand"

// Source is a seeded PRNG. It is never backed by the global math/rand
// source, so two independently-seeded Sources never interfere with each
// other even when evaluations run concurrently.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Intn returns a pseudo-random number in [0, n).
func (s *Source) Intn(n int) int {
	return s.r.Intn(n)
}

// WeightedIndex draws a uniform real in [0, total) and returns the least i
// with cumulative[i] > r, per the spec's weighted-selection rule. For a
// single-entry table it returns 0 without consuming RNG state.
func WeightedIndex(s *Source, total float64, cumulative []float64) int {
	if len(cumulative) <= 1 {
		return 0
	}
	r := s.Float64() * total
	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cumulative[mid] > r {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
