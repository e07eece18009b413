// Command record runs a cellular automaton headlessly and encodes every
// generation into a video file via ffmpeg.
package main

import (
	"flag"
	"image/color"
	"log"

	"ndlife/internal/app"
	"ndlife/pkg/grid"
	"ndlife/pkg/render"
	"ndlife/pkg/sim"
	"ndlife/pkg/video"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	gens := flag.Int("gens", 300, "generations to simulate")
	fps := flag.Int("fps", 30, "output video frame rate")
	out := flag.String("o", "out.mp4", "output video path")
	encoder := flag.String("encoder", "ffmpeg", "encoder executable")
	verbose := flag.Bool("v", false, "show encoder output")
	flag.Parse()

	r, err := cfg.BuildRule()
	if err != nil {
		log.Fatal(err)
	}
	boundary, err := grid.ParseBoundary(cfg.Boundary)
	if err != nil {
		log.Fatal(err)
	}

	state, err := sim.Random([]int{cfg.Height, cfg.Width}, r, cfg.Density, cfg.Seed, sim.WithBoundary(boundary))
	if err != nil {
		log.Fatal(err)
	}

	params, err := render.NewDrawParams(
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		cfg.Scale,
	)
	if err != nil {
		log.Fatal(err)
	}

	opts := []video.Option{video.WithEncoderPath(*encoder)}
	if *verbose {
		opts = append(opts, video.WithVerbose())
	}
	rec, err := video.NewRecorder(*fps, cfg.Width*cfg.Scale, cfg.Height*cfg.Scale, *out, opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer rec.Close()

	if err := state.RunAndRecord(*gens, params, rec); err != nil {
		log.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d frames to %s", rec.Frames(), rec.Path())
}
