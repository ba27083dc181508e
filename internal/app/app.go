//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"prime-ca/internal/core"
	"prime-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// StatusHeight is the height in pixels of the status line under the grid.
const StatusHeight = 18

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	pace    *core.FixedStep

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	err      error
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, rate int, seed int64) *Game {
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:      sim,
		painter:  gp,
		pace:     core.NewFixedStep(rate),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
		seed:     seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.sim.Reset(seed)
	g.tickOnce = false
	g.err = nil
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.seed = time.Now().UnixNano()
		g.Reset(g.seed)
	}

	if g.err != nil {
		return g.err
	}
	if g.tickOnce || (!g.paused && g.pace.ShouldStep()) {
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			g.err = fmt.Errorf("generation %d: %w", g.sim.Generation()+1, err)
		}
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)

	status := fmt.Sprintf("gen %d", g.sim.Generation())
	if p, ok := g.sim.(interface{ Population() int }); ok {
		status += fmt.Sprintf("  pop %d", p.Population())
	}
	if g.paused {
		status += "  [paused]"
	}
	y := g.sim.Size().H*g.scale + StatusHeight - 5
	text.Draw(screen, status, basicfont.Face7x13, 4, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H*g.scale + StatusHeight
}
