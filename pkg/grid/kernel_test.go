package grid

import (
	"errors"
	"testing"
)

func TestMooreKernelWeights(t *testing.T) {
	k2, err := Moore(2)
	if err != nil {
		t.Fatalf("Moore(2): %v", err)
	}
	if k2.WeightSum() != 8 {
		t.Fatalf("2D Moore weight sum = %d, want 8", k2.WeightSum())
	}
	k3, err := Moore(3)
	if err != nil {
		t.Fatalf("Moore(3): %v", err)
	}
	if k3.WeightSum() != 26 {
		t.Fatalf("3D Moore weight sum = %d, want 26", k3.WeightSum())
	}
}

func TestMooreRejectsNonPositiveDimensionality(t *testing.T) {
	for _, ndim := range []int{0, -1} {
		if _, err := Moore(ndim); !errors.Is(err, ErrKernel) {
			t.Fatalf("Moore(%d) error = %v, want ErrKernel", ndim, err)
		}
	}
}

func TestNewKernelWeightCount(t *testing.T) {
	if _, err := NewKernel(2, make([]uint8, 8)); !errors.Is(err, ErrKernel) {
		t.Fatalf("NewKernel with 8 weights error = %v, want ErrKernel", err)
	}
}

func correlate2D(t *testing.T, g *Grid, mode Boundary) []int {
	t.Helper()
	k, err := Moore(2)
	if err != nil {
		t.Fatalf("Moore(2): %v", err)
	}
	dst := make([]int, g.Len())
	if err := Correlate(g, k, mode, dst); err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	return dst
}

func TestCorrelateCentreCount(t *testing.T) {
	g, _ := New(3, 3)
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	g.SetAt(0, 1, 1)

	counts := correlate2D(t, g, Wrap)
	if counts[g.Index(1, 1)] != 8 {
		t.Fatalf("centre count = %d, want 8", counts[g.Index(1, 1)])
	}
}

func TestCorrelateCornerWrap(t *testing.T) {
	// A single live cell at the far corner: under toroidal wrap it is a
	// neighbour of the origin, under a constant boundary it is not.
	g, _ := New(4, 4)
	g.SetAt(1, 3, 3)

	wrapped := correlate2D(t, g, Wrap)
	if wrapped[g.Index(0, 0)] != 1 {
		t.Fatalf("wrap: origin count = %d, want 1", wrapped[g.Index(0, 0)])
	}

	constant := correlate2D(t, g, Constant)
	if constant[g.Index(0, 0)] != 0 {
		t.Fatalf("constant: origin count = %d, want 0", constant[g.Index(0, 0)])
	}
}

func TestCorrelateOnlyCountsLiveState(t *testing.T) {
	// Multi-state values other than 1 must not contribute to the count.
	g, _ := New(3, 3)
	g.SetAt(1, 0, 0)
	g.SetAt(2, 0, 1)

	counts := correlate2D(t, g, Wrap)
	if counts[g.Index(1, 1)] != 1 {
		t.Fatalf("centre count = %d, want 1", counts[g.Index(1, 1)])
	}
}

func TestCorrelate3D(t *testing.T) {
	g, err := New(3, 3, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	g.SetAt(0, 1, 1, 1)

	k, err := Moore(3)
	if err != nil {
		t.Fatalf("Moore(3): %v", err)
	}
	dst := make([]int, g.Len())
	if err := Correlate(g, k, Wrap, dst); err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	if dst[g.Index(1, 1, 1)] != 26 {
		t.Fatalf("3D centre count = %d, want 26", dst[g.Index(1, 1, 1)])
	}
}

func TestCorrelateCountsBeyondByteRange(t *testing.T) {
	// A 6D Moore kernel weighs 728: counts on an all-live torus must come
	// through whole, not reduced modulo 256.
	shape := []int{3, 3, 3, 3, 3, 3}
	g, err := New(shape...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	k, err := Moore(6)
	if err != nil {
		t.Fatalf("Moore(6): %v", err)
	}
	if k.WeightSum() != 728 {
		t.Fatalf("6D Moore weight sum = %d, want 728", k.WeightSum())
	}
	dst := make([]int, g.Len())
	if err := Correlate(g, k, Wrap, dst); err != nil {
		t.Fatalf("Correlate: %v", err)
	}
	for i, c := range dst {
		if c != 728 {
			t.Fatalf("cell %d count = %d, want 728", i, c)
		}
	}
}

func TestCorrelateMismatches(t *testing.T) {
	g, _ := New(3, 3)
	k3, _ := Moore(3)
	if err := Correlate(g, k3, Wrap, make([]int, g.Len())); !errors.Is(err, ErrKernel) {
		t.Fatalf("dimensionality mismatch error = %v, want ErrKernel", err)
	}
	k2, _ := Moore(2)
	if err := Correlate(g, k2, Wrap, make([]int, 1)); !errors.Is(err, ErrShape) {
		t.Fatalf("destination size mismatch error = %v, want ErrShape", err)
	}
}

func TestParseBoundary(t *testing.T) {
	for name, want := range map[string]Boundary{"wrap": Wrap, "constant": Constant} {
		got, err := ParseBoundary(name)
		if err != nil || got != want {
			t.Fatalf("ParseBoundary(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseBoundary("torus"); err == nil {
		t.Fatal("ParseBoundary accepted an unknown mode")
	}
}
