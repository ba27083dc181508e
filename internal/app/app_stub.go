//go:build !ebiten

package app

import (
	"fmt"

	"prime-ca/internal/core"
)

// StatusHeight is the height in pixels of the status line under the grid.
const StatusHeight = 18

// Game stands in for the primeview window in headless builds, where the
// automaton is only reachable through the primelife CLI.
type Game struct{}

// New panics: the viewer needs a binary built with -tags ebiten.
func New(core.Sim, int, int, int64) *Game {
	panic("primeview: viewer not compiled in, rebuild with -tags ebiten")
}

// Reset does nothing without a window to redraw.
func (g *Game) Reset(int64) {}

// Update fails so a headless binary never pretends to animate generations.
func (g *Game) Update() error {
	return fmt.Errorf("primeview: viewer not compiled in, rebuild with -tags ebiten")
}

func (g *Game) Draw(any) {}

// Layout reports an empty window.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
