package core

import (
	"math/rand/v2"

	"prime-ca/internal/core"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// FillBinary marks each cell alive with probability density.
func FillBinary(r *RNG, cells []core.Cell, density float64) {
	for i := range cells {
		cells[i] = core.Dead
		if r.Chance(density) {
			cells[i] = core.Alive
		}
	}
}

// RandomGrid returns a rows x cols grid seeded deterministically.
func RandomGrid(seed int64, rows, cols int, density float64) *core.Grid {
	g := core.NewGrid(rows, cols)
	FillBinary(NewRNG(seed), g.Cells(), density)
	return g
}
