package rule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDomain reports a table-form rule that leaves a reachable
// (count, value) pair unmapped while defaults are disabled.
var ErrDomain = errors.New("rule domain not total")

// ErrRule reports an invalid rule construction.
var ErrRule = errors.New("invalid rule")

// AnyCount marks a table entry that applies to every neighbour count not
// covered by a more specific entry for the same cell value.
const AnyCount = -1

type form uint8

const (
	formPredicate form = iota
	formTable
)

// Entry maps one (neighbour count, current value) pair to the next value.
// Count may be AnyCount to match all counts for the value.
type Entry struct {
	Count int
	Value uint8
	Next  uint8
}

// Rule is a deterministic mapping from (neighbour count, current value) to
// the next cell value. It is a closed tagged variant with two forms:
//
//   - predicate form: a birth set and a survival set over binary cells,
//     the usual B/S notation for Life-like automata;
//   - table form: an explicit entry table for multi-state automata, with
//     an explicit default policy for unmapped pairs.
//
// A Rule is compiled against a kernel's weight sum into a lookup table
// before stepping, so evaluation over a grid is a single branch-free pass.
type Rule struct {
	form form

	birth    []int
	survival []int

	states     int
	entries    []Entry
	def        uint8
	hasDefault bool
}

// Predicate builds a binary rule from birth and survival neighbour-count
// sets. Counts must be non-negative and unique within each set.
func Predicate(birth, survival []int) (*Rule, error) {
	b, err := checkCountSet("birth", birth)
	if err != nil {
		return nil, err
	}
	s, err := checkCountSet("survival", survival)
	if err != nil {
		return nil, err
	}
	return &Rule{form: formPredicate, birth: b, survival: s, states: 2}, nil
}

func checkCountSet(name string, counts []int) ([]int, error) {
	seen := make(map[int]bool, len(counts))
	out := make([]int, 0, len(counts))
	for _, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative count %d in %s set", ErrRule, c, name)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: duplicate count %d in %s set", ErrRule, c, name)
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Ints(out)
	return out, nil
}

// TableOption adjusts table-form rule construction.
type TableOption func(*Rule)

// WithDefault enables the silent-default policy: any (count, value) pair
// without a table entry resolves to v instead of failing compilation.
func WithDefault(v uint8) TableOption {
	return func(r *Rule) {
		r.def = v
		r.hasDefault = true
	}
}

// Table builds a multi-state rule from an explicit entry table over the
// given number of cell states. Without WithDefault, the table must cover
// every reachable (count, value) pair or Compile fails with ErrDomain.
func Table(states int, entries []Entry, opts ...TableOption) (*Rule, error) {
	if states < 2 {
		return nil, fmt.Errorf("%w: need at least 2 states, got %d", ErrRule, states)
	}
	if states > 256 {
		return nil, fmt.Errorf("%w: %d states exceed the byte cell range", ErrRule, states)
	}
	for _, e := range entries {
		if e.Count < AnyCount {
			return nil, fmt.Errorf("%w: negative count %d in table entry", ErrRule, e.Count)
		}
		if int(e.Value) >= states {
			return nil, fmt.Errorf("%w: entry value %d outside %d states", ErrRule, e.Value, states)
		}
		if int(e.Next) >= states {
			return nil, fmt.Errorf("%w: entry result %d outside %d states", ErrRule, e.Next, states)
		}
	}
	r := &Rule{form: formTable, states: states, entries: append([]Entry(nil), entries...)}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// States returns the number of cell states the rule operates over.
func (r *Rule) States() int { return r.states }

// Lookup is a compiled rule: Lookup[value][count] holds the next value for
// a cell of the given value with the given neighbour count.
type Lookup [][]uint8

// Next returns the successor value for one (value, count) pair.
func (l Lookup) Next(value uint8, count int) uint8 { return l[value][count] }

// Compile flattens the rule into a Lookup covering neighbour counts from 0
// to maxCount, the weight sum of the kernel in use. Every reachable pair
// gets a defined output; in table form without a default, an uncovered
// pair is a configuration error.
func (r *Rule) Compile(maxCount int) (Lookup, error) {
	if maxCount < 0 {
		return nil, fmt.Errorf("%w: negative max count %d", ErrRule, maxCount)
	}
	lut := make(Lookup, r.states)
	for v := range lut {
		lut[v] = make([]uint8, maxCount+1)
	}

	switch r.form {
	case formPredicate:
		for _, c := range r.birth {
			if c <= maxCount {
				lut[0][c] = 1
			}
		}
		for _, c := range r.survival {
			if c <= maxCount {
				lut[1][c] = 1
			}
		}
		return lut, nil

	case formTable:
		covered := make([][]bool, r.states)
		for v := range covered {
			covered[v] = make([]bool, maxCount+1)
		}
		for _, e := range r.entries {
			if e.Count != AnyCount {
				continue
			}
			for c := 0; c <= maxCount; c++ {
				lut[e.Value][c] = e.Next
				covered[e.Value][c] = true
			}
		}
		for _, e := range r.entries {
			if e.Count == AnyCount || e.Count > maxCount {
				continue
			}
			lut[e.Value][e.Count] = e.Next
			covered[e.Value][e.Count] = true
		}
		if !r.hasDefault {
			for v := range covered {
				for c, ok := range covered[v] {
					if !ok {
						return nil, fmt.Errorf("%w: no entry for count=%d value=%d and defaults disabled", ErrDomain, c, v)
					}
				}
			}
			return lut, nil
		}
		for v := range covered {
			for c, ok := range covered[v] {
				if !ok {
					lut[v][c] = r.def
				}
			}
		}
		return lut, nil

	default:
		return nil, fmt.Errorf("%w: unknown rule form %d", ErrRule, r.form)
	}
}

// String renders predicate rules in B/S notation and table rules by their
// state count.
func (r *Rule) String() string {
	if r.form == formTable {
		return fmt.Sprintf("table(%d states)", r.states)
	}
	var sb strings.Builder
	sb.WriteByte('B')
	for _, c := range r.birth {
		fmt.Fprintf(&sb, "%d", c)
	}
	sb.WriteString("/S")
	for _, c := range r.survival {
		fmt.Fprintf(&sb, "%d", c)
	}
	return sb.String()
}
