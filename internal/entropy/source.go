// Package entropy provides Gaussian sample sources for the generator.
// The fold chain consumes standard-normal draws through the Source
// interface so tests can substitute deterministic sequences.
package entropy

import "math/rand"

// Source supplies independent standard-normal samples.
type Source interface {
	Normal() float64
}

// Rand is a seeded pseudo-random source.
type Rand struct {
	rng *rand.Rand
}

// NewRand creates a source from the given seed. Seed 0 picks a random one.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// Normal returns the next sample from the PRNG.
func (r *Rand) Normal() float64 {
	return r.rng.NormFloat64()
}

// Fixed always returns its own value. Fixed(0) is the zero-noise source
// used by golden-value tests.
type Fixed float64

// Normal returns the fixed value.
func (f Fixed) Normal() float64 {
	return float64(f)
}

// Script plays back a finite sequence of samples, then zeros. It also
// counts draws, which tests use to verify the amortized pull pattern.
type Script struct {
	Samples []float64
	calls   int
}

// Normal returns the next scripted sample, or 0 when the script runs out.
func (s *Script) Normal() float64 {
	s.calls++
	if len(s.Samples) == 0 {
		return 0
	}
	v := s.Samples[0]
	s.Samples = s.Samples[1:]
	return v
}

// Calls returns the number of draws taken so far.
func (s *Script) Calls() int {
	return s.calls
}
