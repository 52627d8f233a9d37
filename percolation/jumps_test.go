package percolation

import "testing"

func TestComputeJumps_SingleOccupiedLayer_ReturnsZeroWithoutBuildingGraph(t *testing.T) {
	bins := []int{0, 7, 0}
	if got := ComputeJumps(nil, nil, 0, SpanX, bins); got != 0 {
		t.Fatalf("ComputeJumps with a single occupied layer = %d, want 0", got)
	}
}

// TestAnalyze_BrickPattern_ForcesOneInterLayerCrossing builds a 4x1x2
// lattice where layer 0 only connects sites x=0..1 and layer 1 only
// connects x=1..3, joined by a single vertical bond at x=1. Neither
// layer's own connected component touches both spanning boundaries on its
// own, so any path from x=0 to x=3 must cross the one inter-layer bond
// exactly once.
func TestAnalyze_BrickPattern_ForcesOneInterLayerCrossing(t *testing.T) {
	dims := Dims{Lx: 4, Ly: 1, Z: 2}
	lat := NewLattice(dims, false)

	lat.Planes[0].Set(0, 0, DirX, true) // layer 0: connects x=0..1

	lat.Planes[1].Set(1, 0, DirX, true) // layer 1: connects x=1..2
	lat.Planes[1].Set(2, 0, DirX, true) //          ...and x=2..3

	lat.Verticals[0].Set(1, 0, true) // the only bridge between the two halves

	field := NewClusterField(dims)
	out := Analyze(AnalyzeInput{Lattice: lat, Field: field, MeasureJumps: true, RNG: newTestRNG()})

	if out.NrPercolating != 1 {
		t.Fatalf("NrPercolating = %d, want 1", out.NrPercolating)
	}
	if !out.JumpsValid || out.Jumps != 1 {
		t.Fatalf("Jumps = %d (valid=%v), want exactly 1", out.Jumps, out.JumpsValid)
	}
}

func TestOccupiedLayers_CountsNonzeroBins(t *testing.T) {
	cases := []struct {
		bins []int
		want int
	}{
		{[]int{0, 0, 0}, 0},
		{[]int{3, 0, 0}, 1},
		{[]int{1, 1, 1}, 3},
		{[]int{0, 5, 2}, 2},
	}
	for _, c := range cases {
		if got := occupiedLayers(c.bins); got != c.want {
			t.Errorf("occupiedLayers(%v) = %d, want %d", c.bins, got, c.want)
		}
	}
}
