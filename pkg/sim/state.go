// Package sim ties a grid, a neighbourhood kernel and a rule together into
// a steppable cellular automaton state and drives recorded runs.
package sim

import (
	"errors"
	"fmt"

	"ndlife/pkg/core"
	"ndlife/pkg/grid"
	"ndlife/pkg/rule"
)

// ErrConfig reports an invalid state construction.
var ErrConfig = errors.New("invalid simulation config")

type options struct {
	boundary grid.Boundary
	kernel   *grid.Kernel
}

// Option adjusts state construction.
type Option func(*options)

// WithBoundary selects the boundary policy used for neighbour counting.
// The default is toroidal wrap.
func WithBoundary(b grid.Boundary) Option {
	return func(o *options) { o.boundary = b }
}

// WithKernel replaces the default Moore neighbourhood kernel.
func WithKernel(k grid.Kernel) Option {
	return func(o *options) { o.kernel = &k }
}

// State owns exactly one grid plus the kernel and compiled rule that
// advance it. A state is not safe for concurrent use and never shares its
// grid with another state.
type State struct {
	cur      *grid.Grid
	nxt      *grid.Grid
	kernel   grid.Kernel
	boundary grid.Boundary
	rule     *rule.Rule
	lut      rule.Lookup
	counts   []int
	gen      int
}

func newState(g *grid.Grid, r *rule.Rule, opts []Option) (*State, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil rule", ErrConfig)
	}
	o := options{boundary: grid.Wrap}
	for _, opt := range opts {
		opt(&o)
	}
	var k grid.Kernel
	if o.kernel != nil {
		k = *o.kernel
	} else {
		moore, err := grid.Moore(g.NDim())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		k = moore
	}
	if k.NDim() != g.NDim() {
		return nil, fmt.Errorf("%w: %d-dimensional kernel on %d-dimensional grid", ErrConfig, k.NDim(), g.NDim())
	}
	for i, c := range g.Cells() {
		if int(c) >= r.States() {
			return nil, fmt.Errorf("%w: cell %d holds value %d, rule has %d states", ErrConfig, i, c, r.States())
		}
	}
	lut, err := r.Compile(k.WeightSum())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	nxt, err := grid.New(g.Shape()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &State{
		cur:      g,
		nxt:      nxt,
		kernel:   k,
		boundary: o.boundary,
		rule:     r,
		lut:      lut,
		counts:   make([]int, g.Len()),
	}, nil
}

// Zero creates a state with every cell dead.
func Zero(shape []int, r *rule.Rule, opts ...Option) (*State, error) {
	g, err := grid.New(shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return newState(g, r, opts)
}

// Random creates a state whose cells are independently live with the given
// density, drawn from a deterministic generator seeded with seed. The same
// seed and shape always produce the same initial grid.
func Random(shape []int, r *rule.Rule, density float64, seed int64, opts ...Option) (*State, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: density %v outside [0, 1]", ErrConfig, density)
	}
	g, err := grid.New(shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	core.NewRNG(seed).FillBinary(g.Cells(), density)
	return newState(g, r, opts)
}

// FromCells creates a state from an explicit flat pattern. Cell values must
// lie within the rule's state range.
func FromCells(shape []int, cells []uint8, r *rule.Rule, opts ...Option) (*State, error) {
	g, err := grid.FromCells(cells, shape...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return newState(g, r, opts)
}

// FromRows creates a 2D state from a row-per-slice pattern. All rows must
// have the same length.
func FromRows(rows [][]uint8, r *rule.Rule, opts ...Option) (*State, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrConfig)
	}
	w := len(rows[0])
	cells := make([]uint8, 0, len(rows)*w)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, row 0 has %d", ErrConfig, y, len(row), w)
		}
		cells = append(cells, row...)
	}
	return FromCells([]int{len(rows), w}, cells, r, opts...)
}

// Grid returns the live grid. Callers may read and write cells but must
// not hold the reference across Step, which swaps buffers.
func (s *State) Grid() *grid.Grid { return s.cur }

// Cells exposes the current cell values.
func (s *State) Cells() []uint8 { return s.cur.Cells() }

// Rule returns the rule attached at construction.
func (s *State) Rule() *rule.Rule { return s.rule }

// Boundary returns the boundary policy in effect.
func (s *State) Boundary() grid.Boundary { return s.boundary }

// Generation returns how many steps have been taken since construction.
func (s *State) Generation() int { return s.gen }

// Step computes the next generation in place: one correlation pass for the
// neighbour counts, one elementwise lookup for the new values, then a
// buffer swap. It is a pure function of the current grid, kernel and rule.
func (s *State) Step() {
	if err := grid.Correlate(s.cur, s.kernel, s.boundary, s.counts); err != nil {
		// Construction validates the kernel/grid pairing, so this is
		// unreachable short of memory corruption.
		panic(err)
	}
	cells := s.cur.Cells()
	next := s.nxt.Cells()
	for i, c := range cells {
		next[i] = s.lut[c][s.counts[i]]
	}
	s.cur, s.nxt = s.nxt, s.cur
	s.gen++
}

// After advances the state by ticks generations without observing the
// intermediate grids.
func (s *State) After(ticks int) error {
	if ticks < 0 {
		return fmt.Errorf("%w: negative tick count %d", ErrConfig, ticks)
	}
	for i := 0; i < ticks; i++ {
		s.Step()
	}
	return nil
}

// Run advances the state by ticks generations, invoking fn on the initial
// state and again after every step, so fn sees ticks+1 generations in
// order. An error from fn aborts the run immediately: no further
// generations are simulated, and the error is returned wrapped with the
// generation it occurred at.
func (s *State) Run(ticks int, fn func(*State) error) error {
	if ticks < 0 {
		return fmt.Errorf("%w: negative tick count %d", ErrConfig, ticks)
	}
	if fn == nil {
		return s.After(ticks)
	}
	if err := fn(s); err != nil {
		return fmt.Errorf("generation %d: %w", s.gen, err)
	}
	for i := 0; i < ticks; i++ {
		s.Step()
		if err := fn(s); err != nil {
			return fmt.Errorf("generation %d: %w", s.gen, err)
		}
	}
	return nil
}
