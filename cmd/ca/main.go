//go:build ebiten

package main

import (
	"errors"
	"flag"
	"image/color"
	"log"

	"ndlife/internal/app"
	"ndlife/pkg/grid"
	"ndlife/pkg/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	r, err := cfg.BuildRule()
	if err != nil {
		log.Fatal(err)
	}
	boundary, err := grid.ParseBoundary(cfg.Boundary)
	if err != nil {
		log.Fatal(err)
	}

	reseed := func(seed int64) (*sim.State, error) {
		return sim.Random([]int{cfg.Height, cfg.Width}, r, cfg.Density, seed, sim.WithBoundary(boundary))
	}
	state, err := reseed(cfg.Seed)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(state, reseed, cfg.Scale, cfg.Seed)
	if r.States() > 2 {
		game.SetPalette(statePalette(r.States()))
	}

	ebiten.SetWindowTitle("ndlife — " + r.String())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// statePalette maps state 0 to black, state 1 to white and the remaining
// states to progressively darker blues.
func statePalette(states int) []color.RGBA {
	palette := make([]color.RGBA, states)
	palette[0] = color.RGBA{A: 255}
	if states > 1 {
		palette[1] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	for i := 2; i < states; i++ {
		shade := uint8(255 - 128*(i-2)/max(states-2, 1))
		palette[i] = color.RGBA{B: shade, G: shade / 3, A: 255}
	}
	return palette
}
