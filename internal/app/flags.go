package app

import (
	"flag"
	"strings"

	"ndlife/pkg/rule"
)

// Config represents the command-line parameters shared by the binaries.
type Config struct {
	Width    int
	Height   int
	Rule     string
	Density  float64
	Seed     int64
	Scale    int
	TPS      int
	Boundary string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    256,
		Height:   256,
		Rule:     "classic",
		Density:  0.5,
		Seed:     42,
		Scale:    3,
		TPS:      60,
		Boundary: "wrap",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule preset name or B/S notation (e.g. B3/S23)")
	fs.Float64Var(&c.Density, "density", c.Density, "live-cell probability for the random start")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random start")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Boundary, "boundary", c.Boundary, "boundary mode: wrap or constant")
}

// BuildRule resolves the rule flag: B/S notation when it contains a slash,
// otherwise a preset name.
func (c *Config) BuildRule() (*rule.Rule, error) {
	if strings.Contains(c.Rule, "/") {
		return rule.Parse(c.Rule)
	}
	return rule.Preset(c.Rule)
}
