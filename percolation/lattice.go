package percolation

// Direction identifies one of the two in-plane bond orientations.
type Direction int

const (
	// DirX is the bond joining (x, y, l) to (x+1, y, l).
	DirX Direction = iota
	// DirY is the bond joining (x, y, l) to (x, y+1, l).
	DirY
)

// Dims describes the shape of a multilayer lattice: Lx and Ly are the
// in-plane extents, Z is the number of stacked layers.
type Dims struct {
	Lx int
	Ly int
	Z  int
}

// index returns the row-major flat index of an in-plane site, per spec:
// a flat index into a single-layer array is x + Lx*y.
func (d Dims) index(x, y int) int {
	return x + d.Lx*y
}

// validate panics on a dimension that violates spec.md's contract:
// Lx >= 1, Ly >= 1, Z >= 1, Z < 256.
func (d Dims) validate() {
	assertf(d.Lx >= 1 && d.Ly >= 1, "percolation: invalid in-plane dimensions Lx=%d Ly=%d", d.Lx, d.Ly)
	assertf(d.Z >= 1 && d.Z < maxLayers, "percolation: invalid layer count Z=%d (must satisfy 1 <= Z < %d)", d.Z, maxLayers)
}

// maxLayers bounds the stacking axis, matching the original implementation's
// MAX_NR_OF_LAYERS ceiling. The permutation histogram has its own, lower
// ceiling (maxHistogramLayers).
const maxLayers = 256

// PlaneBonds holds the in-plane bond state of a single layer: two dense
// boolean arrays, one per direction, each sized Lx*Ly. Entries at the far
// edges (x = Lx-1 for DirX, y = Ly-1 for DirY) are allocated but unused,
// matching spec.md's "no wrap in-plane" rule.
type PlaneBonds struct {
	dims Dims
	x    []bool
	y    []bool
}

// NewPlaneBonds allocates a zeroed (all-closed) in-plane bond buffer for one
// layer of the given shape.
func NewPlaneBonds(dims Dims) *PlaneBonds {
	n := dims.Lx * dims.Ly
	return &PlaneBonds{dims: dims, x: make([]bool, n), y: make([]bool, n)}
}

// Get reports whether the bond in the given direction at (x, y) is open.
func (b *PlaneBonds) Get(x, y int, dir Direction) bool {
	idx := b.dims.index(x, y)
	if dir == DirX {
		return b.x[idx]
	}
	return b.y[idx]
}

// Set opens or closes the bond in the given direction at (x, y).
func (b *PlaneBonds) Set(x, y int, dir Direction, open bool) {
	idx := b.dims.index(x, y)
	if dir == DirX {
		b.x[idx] = open
	} else {
		b.y[idx] = open
	}
}

// VerticalBonds holds the inter-layer bond state joining one layer to the
// next (or, for the wraparound slot under periodic-z, layer Z-1 to layer 0).
type VerticalBonds struct {
	dims Dims
	vals []bool
}

// NewVerticalBonds allocates a zeroed (all-closed) inter-layer bond buffer.
func NewVerticalBonds(dims Dims) *VerticalBonds {
	return &VerticalBonds{dims: dims, vals: make([]bool, dims.Lx*dims.Ly)}
}

// Get reports whether the vertical bond at (x, y) is open.
func (vb *VerticalBonds) Get(x, y int) bool {
	return vb.vals[vb.dims.index(x, y)]
}

// Set opens or closes the vertical bond at (x, y).
func (vb *VerticalBonds) Set(x, y int, open bool) {
	vb.vals[vb.dims.index(x, y)] = open
}

// CloseAll severs every vertical bond in this buffer, used by the run
// driver to strip inter-layer connectivity for the single-layer regime.
func (vb *VerticalBonds) CloseAll() {
	for i := range vb.vals {
		vb.vals[i] = false
	}
}

// Lattice is the bond configuration for a single run: in-plane bonds for
// every layer plus inter-layer bonds between adjacent layers, with an
// optional periodic wraparound slot at index Z-1.
type Lattice struct {
	Dims     Dims
	PBCZ     bool
	Planes   []*PlaneBonds    // len Z
	Verticals []*VerticalBonds // len Z; Verticals[Z-1] is nil unless PBCZ
}

// NewLattice allocates an all-closed lattice of the given shape. When pbcz
// is false, no vertical-bond buffer exists at index Z-1 (per spec.md §3).
func NewLattice(dims Dims, pbcz bool) *Lattice {
	dims.validate()

	l := &Lattice{
		Dims:      dims,
		PBCZ:      pbcz,
		Planes:    make([]*PlaneBonds, dims.Z),
		Verticals: make([]*VerticalBonds, dims.Z),
	}

	for z := 0; z < dims.Z; z++ {
		l.Planes[z] = NewPlaneBonds(dims)

		if z == dims.Z-1 && !pbcz {
			continue
		}
		l.Verticals[z] = NewVerticalBonds(dims)
	}

	return l
}

// HasVertical reports whether an inter-layer bond buffer exists between
// layer l and layer (l+1) mod Z.
func (l *Lattice) HasVertical(layer int) bool {
	return l.Verticals[layer] != nil
}

// SeverVerticalBonds closes every inter-layer bond in the lattice, turning
// the multilayer configuration into Z independent single-layer lattices.
func (l *Lattice) SeverVerticalBonds() {
	for _, vb := range l.Verticals {
		if vb != nil {
			vb.CloseAll()
		}
	}
}
