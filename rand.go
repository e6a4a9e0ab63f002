package ember

import "math/rand/v2"

// RandSource supplies the uniform draws used when spawning particles.
// *rand.Rand from math/rand/v2 satisfies it; tests inject fixed sequences to
// pin exact spawn positions and velocities.
type RandSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n > 0.
	IntN(n int) int
}

// NewRand returns a deterministic RandSource seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalRand draws from the math/rand/v2 top-level generator.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// defaultRand is used when a config leaves Rand nil.
var defaultRand RandSource = globalRand{}
