// Package rng provides the seeded random source consumed by the topology
// builder. Draws come from a PCG generator, so a seed reproduces the same
// sequence of coin flips and uniform draws on every platform.
package rng

import "math/rand/v2"

// Source is a seeded random source. It is not safe for concurrent use;
// topology construction consumes it from a single goroutine.
type Source struct {
	r *rand.Rand
}

// New creates a source seeded with seed.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool { return s.r.IntN(2) == 1 }

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int { return s.r.IntN(n) }

// Int64N returns a uniform value in [0, n). It panics if n <= 0.
func (s *Source) Int64N(n int64) int64 { return s.r.Int64N(n) }
