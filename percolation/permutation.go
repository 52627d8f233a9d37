package percolation

import "sort"

// maxHistogramLayers bounds the layer count for which a permutation
// histogram may be built: the histogram has nrlayers! entries, and int64
// factorials overflow past 20!. No preset in this repository approaches
// that count; a caller asking for jump+histogram measurement on a lattice
// with more layers hits this contract violation rather than silently
// allocating an astronomical slice.
const maxHistogramLayers = 20

// factorial returns n! for 0 <= n <= maxHistogramLayers.
func factorial(n int) int64 {
	assertf(n >= 0 && n <= maxHistogramLayers, "percolation: factorial(%d) out of supported range", n)
	result := int64(1)
	for i := int64(2); i <= int64(n); i++ {
		result *= i
	}
	return result
}

// PermutationHistogram counts, across many runs, which permutation rank the
// percolating cluster's layer-occupancy vector sorted to. Its length is
// nrlayers!.
type PermutationHistogram []int64

// NewPermutationHistogram allocates a zeroed histogram for the given layer
// count.
func NewPermutationHistogram(nrlayers int) PermutationHistogram {
	return make(PermutationHistogram, factorial(nrlayers))
}

// layerOccupancy pairs a layer index with its site count in the
// percolating cluster, the unit sorted by RankLayersByOccupancy.
type layerOccupancy struct {
	layer int
	bin   int
}

// RankLayersByOccupancy sorts layer indices by their site count in the
// percolating cluster (ascending, stable, ties broken by natural layer
// order per spec.md §9) and returns the Myrvold-Ruskey rank of the
// resulting permutation of {0, ..., len(bins)-1}.
func RankLayersByOccupancy(bins []int) int {
	n := len(bins)
	infos := make([]layerOccupancy, n)
	for l, b := range bins {
		infos[l] = layerOccupancy{layer: l, bin: b}
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].bin < infos[j].bin
	})

	perm := make([]int, n)
	for i, info := range infos {
		perm[i] = info.layer
	}

	return myrvoldRuskeyRank(perm)
}

// myrvoldRuskeyRank implements the linear-time Myrvold-Ruskey bijection
// between permutations of {0, ..., n-1} and ranks in [0, n!), per spec.md
// §4.3:
//
//	rank(n, π):
//	  if n < 2 return 0
//	  s ← π[n−1]
//	  swap π[n−1] with π[π⁻¹[n−1]]; update π⁻¹ consistently
//	  return s + n · rank(n−1, π)
//
// perm is consumed (mutated in place via a local copy); the caller's slice
// is left untouched.
func myrvoldRuskeyRank(perm []int) int {
	n := len(perm)
	v := make([]int, n)
	copy(v, perm)

	inv := make([]int, n)
	for i, val := range v {
		inv[val] = i
	}

	return mrRank(n, v, inv)
}

func mrRank(n int, v, inv []int) int {
	if n < 2 {
		return 0
	}

	s := v[n-1]
	v[n-1], v[inv[n-1]] = v[inv[n-1]], v[n-1]
	inv[s], inv[n-1] = inv[n-1], inv[s]

	return s + n*mrRank(n-1, v, inv)
}
