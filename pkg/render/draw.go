package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"ndlife/pkg/grid"
)

// ErrDrawParams reports invalid rendering configuration.
var ErrDrawParams = errors.New("invalid draw parameters")

// ErrNotRenderable reports a grid the renderer cannot draw.
var ErrNotRenderable = errors.New("grid not renderable")

// DrawParams holds the per-frame rendering configuration: cell colors and
// the integer upscale factor. It is immutable once constructed.
type DrawParams struct {
	dead    color.RGBA
	alive   color.RGBA
	palette []color.RGBA
	resize  int
}

// NewDrawParams builds parameters for binary automata: dead cells take
// dead, live cells take alive, and each cell is drawn as a resizeFactor
// square of pixels. resizeFactor must be at least 1.
func NewDrawParams(dead, alive color.RGBA, resizeFactor int) (DrawParams, error) {
	if resizeFactor < 1 {
		return DrawParams{}, fmt.Errorf("%w: resize factor %d, want >= 1", ErrDrawParams, resizeFactor)
	}
	return DrawParams{dead: dead, alive: alive, resize: resizeFactor}, nil
}

// NewPaletteParams builds parameters for multi-state automata: cell value v
// takes palette[v], with values past the end clamped to the last entry.
func NewPaletteParams(palette []color.RGBA, resizeFactor int) (DrawParams, error) {
	if resizeFactor < 1 {
		return DrawParams{}, fmt.Errorf("%w: resize factor %d, want >= 1", ErrDrawParams, resizeFactor)
	}
	if len(palette) == 0 {
		return DrawParams{}, fmt.Errorf("%w: empty palette", ErrDrawParams)
	}
	return DrawParams{palette: append([]color.RGBA(nil), palette...), resize: resizeFactor}, nil
}

// ResizeFactor returns the integer upscale factor.
func (p DrawParams) ResizeFactor() int { return p.resize }

// ColorFor returns the color a cell of the given value is drawn with.
func (p DrawParams) ColorFor(v uint8) color.RGBA {
	if len(p.palette) > 0 {
		idx := int(v)
		if idx >= len(p.palette) {
			idx = len(p.palette) - 1
		}
		return p.palette[idx]
	}
	if v != 0 {
		return p.alive
	}
	return p.dead
}

// Frame renders a 2D grid into an RGBA image, one resize-factor block of
// uniform color per cell. Grids of other dimensionality are not drawable
// and yield an error.
func Frame(g *grid.Grid, p DrawParams) (*image.RGBA, error) {
	if g.NDim() != 2 {
		return nil, fmt.Errorf("%w: %d-dimensional grid, renderer draws 2D only", ErrNotRenderable, g.NDim())
	}
	w, h := g.W(), g.H()
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	cells := g.Cells()
	for i, c := range cells {
		col := p.ColorFor(c)
		base.Pix[i*4+0] = col.R
		base.Pix[i*4+1] = col.G
		base.Pix[i*4+2] = col.B
		base.Pix[i*4+3] = col.A
	}
	if p.resize == 1 {
		return base, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, w*p.resize, h*p.resize))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return out, nil
}
