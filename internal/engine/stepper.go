package engine

import (
	"context"

	"prime-ca/internal/core"
	"prime-ca/internal/sims/primelife"
	pcore "prime-ca/pkg/core"
)

// Stepper adapts a Simulation to the core.Sim contract so interactive
// frontends can advance it one generation at a time.
type Stepper struct {
	initial *core.Grid
	opts    Options
	density float64
	sim     *Simulation
}

var _ core.Sim = (*Stepper)(nil)

// NewStepper wraps a simulation started from g. Reset(0) returns to g.
func NewStepper(g *core.Grid, opts Options) *Stepper {
	s := &Stepper{initial: g.Clone(), opts: opts, density: 0.5}
	s.sim = New(g, opts)
	return s
}

// Name returns the automaton identifier.
func (s *Stepper) Name() string { return primelife.Name }

// Size returns the grid dimensions.
func (s *Stepper) Size() core.Size { return s.initial.Size() }

// Generation returns the number of completed generations.
func (s *Stepper) Generation() int { return s.sim.Generation() }

// Done reports whether every configured generation has run.
func (s *Stepper) Done() bool {
	return s.sim.State() == Completed || s.sim.Generation() >= s.sim.Generations()
}

// Population returns the number of living cells.
func (s *Stepper) Population() int { return s.sim.View().Population() }

// Cells exposes the current state buffer.
func (s *Stepper) Cells() []core.Cell { return s.sim.grid.Cells() }

// Reset restarts the simulation on the same grid buffers. Seed zero restores
// the loaded grid, any other seed fills it randomly.
func (s *Stepper) Reset(seed int64) {
	g := s.sim.grid
	g.Clear()
	if seed == 0 {
		copy(g.Cells(), s.initial.Cells())
	} else {
		pcore.FillBinary(pcore.NewRNG(seed), g.Cells(), s.density)
	}
	s.sim = New(g, s.opts)
}

// Step advances one generation. Once the run is complete it does nothing.
func (s *Stepper) Step() error {
	if s.Done() {
		return nil
	}
	return s.sim.Step(context.Background())
}
