// Package percolation implements bond percolation on multilayer
// two-dimensional lattices.
//
// # Reading Guide
//
// Start with these files to understand the analysis kernel:
//   - lattice.go: dense bond storage for a stack of layers
//   - clusterfield.go: per-site cluster label storage
//   - analyzer.go: Hoshen-Kopelman labeling, normalization, spanning detection
//   - jumps.go: quotient-graph construction and shortest inter-layer-jump search
//   - permutation.go: Myrvold-Ruskey rank and the layer-occupancy histogram
//
// # Architecture
//
// A Lattice holds the random bond configuration for one run. Analyze walks
// the lattice once to label clusters (unionFind), a second time to normalize
// labels and collect per-cluster geometry, and for the first percolating
// cluster found calls into the jump computer. RunOnce (driver.go) ties
// bond generation and two Analyze invocations (with and without inter-layer
// bonds) together for a single Monte Carlo run and returns a RunOutcome,
// which the caller folds into a RunStats with Accumulate.
//
// The batch package drives many RunOnce calls across a (p, pPerp) grid.
package percolation
