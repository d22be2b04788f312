// Package sampler provides the worker-owned random source and the
// Monte-Carlo sampling primitives the materials and lights draw from.
package sampler

import "math/rand/v2"

// RNG is the per-worker random source. Two generators seeded with the
// same pair produce identical sequences, and therefore identical images.
type RNG struct {
	*rand.Rand
}

// NewRNG seeds a generator from two 64-bit words — pass the same pair to
// reproduce an identical sequence.
func NewRNG(seed1, seed2 uint64) *RNG {
	return &RNG{Rand: rand.New(rand.NewPCG(seed1, seed2))}
}

// Float32 draws a uniform value in [0, 1).
func (r *RNG) Float32() float32 {
	return r.Rand.Float32()
}
