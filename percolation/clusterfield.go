package percolation

// ClusterField stores the cluster label of every site across all layers.
// A value of 0 means "not yet labeled"; any positive value is a cluster id.
// After normalization (see Analyze), labels are contiguous in [1, maxid].
type ClusterField struct {
	dims Dims
	vals [][]int // one slice per layer, row-major (x, y)
}

// NewClusterField allocates a zeroed cluster label field for the given
// lattice shape.
func NewClusterField(dims Dims) *ClusterField {
	vals := make([][]int, dims.Z)
	for l := range vals {
		vals[l] = make([]int, dims.Lx*dims.Ly)
	}
	return &ClusterField{dims: dims, vals: vals}
}

// Get returns the label at (x, y, l).
func (c *ClusterField) Get(x, y, l int) int {
	return c.vals[l][c.dims.index(x, y)]
}

// Set assigns the label at (x, y, l).
func (c *ClusterField) Set(x, y, l, value int) {
	c.vals[l][c.dims.index(x, y)] = value
}

// Reset clears every site back to the unlabeled state, so the field can be
// reused across the two Analyze invocations of a single run.
func (c *ClusterField) Reset() {
	for l := range c.vals {
		for i := range c.vals[l] {
			c.vals[l][i] = 0
		}
	}
}

// Dims reports the shape of the lattice this field labels.
func (c *ClusterField) Dims() Dims {
	return c.dims
}
