package grid

import (
	"errors"
	"fmt"
)

// ErrKernel reports an invalid kernel configuration.
var ErrKernel = errors.New("invalid kernel")

// Boundary selects how neighbour lookups treat coordinates beyond the grid
// edges.
type Boundary uint8

const (
	// Wrap gives a toroidal topology: edges are adjacent to the opposite
	// edges. This is the default for classic Life.
	Wrap Boundary = iota
	// Constant treats every cell beyond the edge as permanently dead.
	Constant
)

// String returns the boundary mode name.
func (b Boundary) String() string {
	switch b {
	case Wrap:
		return "wrap"
	case Constant:
		return "constant"
	default:
		return fmt.Sprintf("boundary(%d)", uint8(b))
	}
}

// ParseBoundary maps a mode name to a Boundary value.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "wrap":
		return Wrap, nil
	case "constant":
		return Constant, nil
	default:
		return Wrap, fmt.Errorf("unknown boundary mode %q", s)
	}
}

type tap struct {
	delta  []int
	weight uint8
}

// Kernel is a radius-1 neighbourhood weight tensor: three entries per axis,
// with the centre conventionally zero so only neighbours are counted. It is
// fixed per State instance.
type Kernel struct {
	ndim int
	taps []tap
	sum  int
}

// Moore builds the standard Moore-neighbourhood kernel for the given number
// of dimensions: all weights 1 except the centre, which is 0. For ndim=2
// this is the classic 3x3 Life kernel.
func Moore(ndim int) (Kernel, error) {
	weights := make([]uint8, pow3(ndim))
	if ndim > 0 {
		for i := range weights {
			weights[i] = 1
		}
		weights[len(weights)/2] = 0
	}
	return NewKernel(ndim, weights)
}

// NewKernel builds a kernel from explicit weights laid out row-major over a
// (3,)^ndim tensor. ndim must be positive and len(weights) must be 3^ndim.
func NewKernel(ndim int, weights []uint8) (Kernel, error) {
	if ndim <= 0 {
		return Kernel{}, fmt.Errorf("%w: non-positive dimensionality %d", ErrKernel, ndim)
	}
	if len(weights) != pow3(ndim) {
		return Kernel{}, fmt.Errorf("%w: %d weights for %d dimensions (want %d)", ErrKernel, len(weights), ndim, pow3(ndim))
	}
	k := Kernel{ndim: ndim}
	delta := make([]int, ndim)
	for i := range delta {
		delta[i] = -1
	}
	for _, w := range weights {
		if w != 0 {
			k.taps = append(k.taps, tap{delta: append([]int(nil), delta...), weight: w})
			k.sum += int(w)
		}
		for ax := ndim - 1; ax >= 0; ax-- {
			delta[ax]++
			if delta[ax] <= 1 {
				break
			}
			delta[ax] = -1
		}
	}
	return k, nil
}

// NDim returns the kernel dimensionality.
func (k Kernel) NDim() int { return k.ndim }

// WeightSum returns the sum of all kernel weights, which bounds the
// neighbour counts the kernel can produce.
func (k Kernel) WeightSum() int { return k.sum }

// Correlate computes the weighted neighbour count of every cell of g in one
// pass and stores the results in dst, which must hold g.Len() entries. A
// neighbour contributes its kernel weight when its value is 1, the live
// state; other states (dead, or the extra states of multi-state automata)
// contribute nothing. Counts are full-width integers: a high-dimensional
// Moore kernel sums well past the byte range (3^6 already weighs 728). The
// kernel dimensionality must match the grid; mismatches are configuration
// errors surfaced here rather than silent truncation.
func Correlate(g *Grid, k Kernel, mode Boundary, dst []int) error {
	if k.ndim != g.NDim() {
		return fmt.Errorf("%w: %d-dimensional kernel on %d-dimensional grid", ErrKernel, k.ndim, g.NDim())
	}
	if len(dst) != len(g.data) {
		return fmt.Errorf("%w: destination holds %d cells, grid has %d", ErrShape, len(dst), len(g.data))
	}

	idx := make([]int, g.NDim())
	for lin := range g.data {
		var count int
	taps:
		for _, t := range k.taps {
			nlin := 0
			for ax, d := range t.delta {
				c := idx[ax] + d
				if c < 0 || c >= g.shape[ax] {
					if mode == Constant {
						continue taps
					}
					c = (c%g.shape[ax] + g.shape[ax]) % g.shape[ax]
				}
				nlin += c * g.strides[ax]
			}
			if g.data[nlin] == 1 {
				count += int(t.weight)
			}
		}
		dst[lin] = count

		for ax := g.NDim() - 1; ax >= 0; ax-- {
			idx[ax]++
			if idx[ax] < g.shape[ax] {
				break
			}
			idx[ax] = 0
		}
	}
	return nil
}

func pow3(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 3
	}
	return p
}
