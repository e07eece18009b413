//go:build ebiten

package app

import (
	"image/color"
	"time"

	irender "ndlife/internal/render"
	"ndlife/internal/ui"
	"ndlife/pkg/render"
	"ndlife/pkg/sim"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ReseedFunc rebuilds the simulation state for a fresh seed.
type ReseedFunc func(seed int64) (*sim.State, error)

// Game adapts a simulation state to the ebiten.Game interface.
type Game struct {
	state   *sim.State
	reseed  ReseedFunc
	painter *irender.GridPainter
	overlay *ui.Overlay
	params  render.DrawParams

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided state. reseed is invoked when the
// user asks for a restart (R for the same seed, S for a fresh one).
func New(state *sim.State, reseed ReseedFunc, scale int, seed int64) *Game {
	g := state.Grid()
	params, _ := render.NewDrawParams(
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		1,
	)
	return &Game{
		state:   state,
		reseed:  reseed,
		painter: irender.NewGridPainter(g.W(), g.H()),
		overlay: ui.NewOverlay(),
		params:  params,
		scale:   scale,
		seed:    seed,
	}
}

// SetPalette switches the painter to palette mode for multi-state rules.
func (g *Game) SetPalette(palette []color.RGBA) {
	params, err := render.NewPaletteParams(palette, 1)
	if err != nil {
		return
	}
	g.params = params
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	if g.reseed == nil {
		return
	}
	state, err := g.reseed(seed)
	if err != nil {
		return
	}
	g.seed = seed
	g.state = state
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.state.Grid().Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.overlay != nil {
		g.overlay.Update()
	}

	if (!g.paused) || g.tickOnce {
		g.state.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.state.Cells(), g.params.ColorFor, g.scale)
	if g.overlay != nil {
		status := "gen %d  rule %s  %s"
		if g.paused {
			status += "  [paused]"
		}
		g.overlay.SetStatus(status, g.state.Generation(), g.state.Rule(), g.state.Boundary())
		g.overlay.Draw(screen)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	grid := g.state.Grid()
	return grid.W() * g.scale, grid.H() * g.scale
}
