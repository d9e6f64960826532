package core

import "math/rand/v2"

// NewRNG creates a PCG-backed generator. A zero seed selects a random seed so
// runs are not repeatable unless a seed is configured.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
