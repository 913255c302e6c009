package delay

import "math/rand/v2"

// Rand is the source of randomness for the simulation. Implementations do
// not need to be safe for concurrent use; callers serialize draws.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns the default PCG-backed randomness source.
func NewRand() Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
