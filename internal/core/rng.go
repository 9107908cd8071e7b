package core

import "math/rand"

// RNG is the source of randomness injected into simulations.
// *rand.Rand satisfies it; tests may substitute a scripted sequence.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewRNG returns a deterministic generator for the given seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Chance runs a single Bernoulli trial with probability p.
func Chance(rng RNG, p float64) bool {
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}

// RangeF returns a uniform value in [lo, hi).
func RangeF(rng RNG, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
