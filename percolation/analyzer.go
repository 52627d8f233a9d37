package percolation

import "math/rand"

// SpanAxis identifies which lattice axis a percolating cluster spans.
type SpanAxis int

const (
	// SpanNone means the cluster does not percolate.
	SpanNone SpanAxis = iota
	// SpanX means the cluster's (x, y) bounding box covers the full Lx extent.
	SpanX
	// SpanY means the cluster's (x, y) bounding box covers the full Ly extent.
	SpanY
)

// AnalyzeInput bundles everything the percolation analyzer needs for one
// invocation, per spec.md §4.1.
type AnalyzeInput struct {
	Lattice      *Lattice
	Field        *ClusterField
	MeasureJumps bool
	RNG          *rand.Rand // site-test subsystem RNG (see SubsystemSiteTest)
}

// AnalyzeOutput is what the analyzer reports back for one invocation: the
// number of percolating clusters, whether the global/per-layer test sites
// landed in the first percolating cluster, and — only for the first
// percolating cluster found, and only if requested — its jump count and
// permutation-histogram rank.
type AnalyzeOutput struct {
	NrPercolating int

	Matches         bool
	MatchesByLayer  []bool

	Jumps      int
	JumpsValid bool

	PermutationRank int
	PermutationSet  bool
}

// Analyze runs the Hoshen-Kopelman label sweep, optional periodic-z union
// pass, normalization, spanning detection, and site-test sampling described
// in spec.md §4.1. It mutates in.Field in place.
func Analyze(in AnalyzeInput) AnalyzeOutput {
	dims := in.Field.Dims()
	in.Field.Reset()

	uf := newUnionFind()
	labelSweep(in.Lattice, in.Field, uf, dims)

	if in.Lattice.PBCZ {
		periodicZUnion(in.Lattice, in.Field, uf, dims)
	}

	// Site test draws happen before normalization, per spec.md §4.1 step 5.
	globalSite, perLayerSites := drawSiteTest(in.RNG, dims)

	bounds, bins, maxid := normalize(in.Field, uf, dims)

	out := AnalyzeOutput{MatchesByLayer: make([]bool, dims.Z)}

	firstFound := false
	for id := 1; id <= maxid; id++ {
		b := bounds[id-1]
		axis := spanningAxis(b, dims)
		if axis == SpanNone {
			continue
		}

		out.NrPercolating++

		if !firstFound {
			firstFound = true
			if in.MeasureJumps {
				out.Jumps = ComputeJumps(in.Lattice, in.Field, id, axis, bins[id-1])
				out.JumpsValid = true
				out.PermutationRank = RankLayersByOccupancy(bins[id-1])
				out.PermutationSet = true
			}

			if in.Field.Get(globalSite[0], globalSite[1], globalSite[2]) == id {
				out.Matches = true
			}
			for l, site := range perLayerSites {
				if in.Field.Get(site[0], site[1], l) == id {
					out.MatchesByLayer[l] = true
				}
			}
		}
	}

	return out
}

// clusterBounds is the axis-aligned bounding box of a normalized cluster's
// (x, y) projection.
type clusterBounds struct {
	minX, minY, maxX, maxY int
}

func spanningAxis(b clusterBounds, dims Dims) SpanAxis {
	if b.maxX-b.minX+1 == dims.Lx {
		return SpanX
	}
	if b.maxY-b.minY+1 == dims.Ly {
		return SpanY
	}
	return SpanNone
}

// labelSweep is the Hoshen-Kopelman label sweep of spec.md §4.1 step 1:
// sites are visited in lexicographic (x, y, l) order, and each site is
// joined to up to three already-labeled neighbors reachable by an open
// bond (-x, -y, and l-1).
func labelSweep(lat *Lattice, field *ClusterField, uf *unionFind, dims Dims) {
	for x := 0; x < dims.Lx; x++ {
		for y := 0; y < dims.Ly; y++ {
			for l := 0; l < dims.Z; l++ {
				var neighbours [3]int

				if x != 0 && lat.Planes[l].Get(x-1, y, DirX) {
					neighbours[0] = field.Get(x-1, y, l)
				}
				if y != 0 && lat.Planes[l].Get(x, y-1, DirY) {
					neighbours[1] = field.Get(x, y-1, l)
				}
				if l != 0 && lat.Verticals[l-1].Get(x, y) {
					neighbours[2] = field.Get(x, y, l-1)
				}

				if neighbours[0] == 0 && neighbours[1] == 0 && neighbours[2] == 0 {
					id := uf.newLabel()
					field.Set(x, y, l, id)
					continue
				}

				maximum := maxOf(neighbours)
				for _, n := range neighbours {
					if n != 0 && n != maximum {
						uf.union(n, maximum)
					}
				}
				field.Set(x, y, l, uf.find(maximum))
			}
		}
	}
}

func maxOf(vals [3]int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// periodicZUnion is spec.md §4.1 step 2: when periodic-z is enabled, union
// the labels of layer 0 and layer Z-1 wherever the wraparound vertical bond
// is open.
func periodicZUnion(lat *Lattice, field *ClusterField, uf *unionFind, dims Dims) {
	wrap := lat.Verticals[dims.Z-1]
	for x := 0; x < dims.Lx; x++ {
		for y := 0; y < dims.Ly; y++ {
			if wrap.Get(x, y) {
				uf.union(field.Get(x, y, 0), field.Get(x, y, dims.Z-1))
			}
		}
	}
}

// normalize is spec.md §4.1 step 3: every site's label is resolved to its
// union-find root and replaced with a small contiguous integer assigned in
// first-encounter order. It also collects, per normalized cluster, the
// (x, y) bounding box and the per-layer site-count vector the jump
// computer and permutation histogram need.
func normalize(field *ClusterField, uf *unionFind, dims Dims) (bounds []clusterBounds, bins [][]int, maxid int) {
	rootToID := make([]int, uf.next)

	for x := 0; x < dims.Lx; x++ {
		for y := 0; y < dims.Ly; y++ {
			for l := 0; l < dims.Z; l++ {
				root := uf.find(field.Get(x, y, l))
				id := rootToID[root]
				if id == 0 {
					id = len(bounds) + 1
					rootToID[root] = id
					bounds = append(bounds, clusterBounds{minX: x, maxX: x, minY: y, maxY: y})
					bins = append(bins, make([]int, dims.Z))
				} else {
					b := &bounds[id-1]
					b.minX = min(b.minX, x)
					b.maxX = max(b.maxX, x)
					b.minY = min(b.minY, y)
					b.maxY = max(b.maxY, y)
				}

				bins[id-1][l]++
				field.Set(x, y, l, id)
			}
		}
	}

	return bounds, bins, len(bounds)
}
