package rule

import (
	"fmt"
	"strings"
)

var presets = map[string]func() *Rule{}

// RegisterPreset adds a named rule constructor to the preset registry.
func RegisterPreset(name string, f func() *Rule) {
	if name == "" || f == nil {
		return
	}
	presets[name] = f
}

// Preset returns the named preset rule, or an error naming the known
// presets when the name is unknown.
func Preset(name string) (*Rule, error) {
	f, ok := presets[name]
	if !ok {
		known := make([]string, 0, len(presets))
		for k := range presets {
			known = append(known, k)
		}
		return nil, fmt.Errorf("unknown rule preset %q (have %s)", name, strings.Join(known, ", "))
	}
	return f(), nil
}

// Classic returns the standard Conway's Game of Life rule, B3/S23: a dead
// cell with exactly three live neighbours is born, a live cell with two or
// three survives, everything else dies.
func Classic() *Rule {
	r, err := Predicate([]int{3}, []int{2, 3})
	if err != nil {
		panic(err)
	}
	return r
}

func mustPredicate(birth, survival []int) func() *Rule {
	return func() *Rule {
		r, err := Predicate(birth, survival)
		if err != nil {
			panic(err)
		}
		return r
	}
}

func briansBrain() *Rule {
	const (
		dead   = 0
		firing = 1
		dying  = 2
	)
	r, err := Table(3, []Entry{
		{Count: AnyCount, Value: firing, Next: dying},
		{Count: AnyCount, Value: dying, Next: dead},
		{Count: 2, Value: dead, Next: firing},
	}, WithDefault(dead))
	if err != nil {
		panic(err)
	}
	return r
}

func init() {
	RegisterPreset("classic", Classic)
	RegisterPreset("highlife", mustPredicate([]int{3, 6}, []int{2, 3}))
	RegisterPreset("seeds", mustPredicate([]int{2}, nil))
	RegisterPreset("briansbrain", briansBrain)
}

// Parse builds a predicate rule from B/S notation such as "B3/S23". Each
// digit names one neighbour count; either side may be empty.
func Parse(s string) (*Rule, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q is not B<counts>/S<counts> notation", ErrRule, s)
	}
	birth, err := parseCounts(parts[0], 'B', s)
	if err != nil {
		return nil, err
	}
	survival, err := parseCounts(parts[1], 'S', s)
	if err != nil {
		return nil, err
	}
	return Predicate(birth, survival)
}

func parseCounts(part string, prefix byte, full string) ([]int, error) {
	if len(part) == 0 || (part[0] != prefix && part[0] != prefix+'a'-'A') {
		return nil, fmt.Errorf("%w: %q is missing the %c side", ErrRule, full, prefix)
	}
	var counts []int
	for _, c := range part[1:] {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: %q has non-digit count %q", ErrRule, full, c)
		}
		counts = append(counts, int(c-'0'))
	}
	return counts, nil
}
