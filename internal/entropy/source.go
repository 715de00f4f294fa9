// Package entropy provides the deterministic random source threaded through
// the simulation. Every draw, shuffle, and sample goes through a single seeded
// Source so that a run is exactly reproducible from its seed.
package entropy

import "math/rand"

// Source wraps a seeded PRNG. Not safe for concurrent use; the simulation is
// fully sequential and shares one Source.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// NewSource creates a Source from the given seed.
func NewSource(seed int64) *Source {
	return &Source{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Intn returns a uniform int in [0, n). Panics if n <= 0.
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a uniform float64 in [0, 1).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Shuffle randomizes the order of n elements using the given swap function.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}
