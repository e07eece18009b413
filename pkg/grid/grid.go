package grid

import (
	"errors"
	"fmt"
)

// ErrShape reports an invalid or mismatched grid shape.
var ErrShape = errors.New("invalid grid shape")

// Grid stores an N-dimensional array of cell values in row-major order,
// last axis fastest. For 2D grids the shape is (height, width). The shape
// is fixed at construction and never changes during a run.
type Grid struct {
	shape   []int
	strides []int
	data    []uint8
}

// New allocates a zero-filled grid with the given shape. Every dimension
// must be positive.
func New(shape ...int) (*Grid, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: no dimensions", ErrShape)
	}
	total := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("%w: non-positive dimension %d in %v", ErrShape, d, shape)
		}
		total *= d
	}
	g := &Grid{
		shape:   append([]int(nil), shape...),
		strides: make([]int, len(shape)),
		data:    make([]uint8, total),
	}
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		g.strides[i] = stride
		stride *= shape[i]
	}
	return g, nil
}

// FromCells builds a grid around a copy of the provided flat cell values.
func FromCells(cells []uint8, shape ...int) (*Grid, error) {
	g, err := New(shape...)
	if err != nil {
		return nil, err
	}
	if len(cells) != len(g.data) {
		return nil, fmt.Errorf("%w: %d cells for shape %v (want %d)", ErrShape, len(cells), shape, len(g.data))
	}
	copy(g.data, cells)
	return g, nil
}

// Shape returns a copy of the grid dimensions.
func (g *Grid) Shape() []int { return append([]int(nil), g.shape...) }

// NDim returns the number of grid axes.
func (g *Grid) NDim() int { return len(g.shape) }

// Len returns the total cell count.
func (g *Grid) Len() int { return len(g.data) }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// W returns the width (last axis) of the grid.
func (g *Grid) W() int { return g.shape[len(g.shape)-1] }

// H returns the height of a grid with at least two axes, or 1 for 1D grids.
func (g *Grid) H() int {
	if len(g.shape) < 2 {
		return 1
	}
	return g.shape[len(g.shape)-2]
}

// Index returns the linear slice index for the given multi-index.
func (g *Grid) Index(idx ...int) int {
	lin := 0
	for i, v := range idx {
		lin += v * g.strides[i]
	}
	return lin
}

// At reads the cell at the given multi-index.
func (g *Grid) At(idx ...int) uint8 { return g.data[g.Index(idx...)] }

// SetAt writes the cell at the given multi-index.
func (g *Grid) SetAt(v uint8, idx ...int) { g.data[g.Index(idx...)] = v }

// Clone returns a deep copy sharing no storage with the receiver.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		shape:   append([]int(nil), g.shape...),
		strides: append([]int(nil), g.strides...),
		data:    append([]uint8(nil), g.data...),
	}
	return c
}

// Equal reports whether two grids have the same shape and cell values.
func (g *Grid) Equal(o *Grid) bool {
	if len(g.shape) != len(o.shape) {
		return false
	}
	for i := range g.shape {
		if g.shape[i] != o.shape[i] {
			return false
		}
	}
	for i := range g.data {
		if g.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
