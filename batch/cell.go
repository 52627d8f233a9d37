package batch

// Cell identifies one point of the (p, pPerp) sweep grid.
type Cell struct {
	P     float64
	PPerp float64
}

// GridConfig describes the full sweep and the lattice shared by every cell
// in it, per spec.md §6 (the CLI/preset surface) and §5 (the grid is the
// unit of parallel work).
type GridConfig struct {
	Lx, Ly, Z int
	PBCZ      bool

	TotalRuns    int
	MeasureJumps bool

	// Sweep bounds in milli-units (thousandths), looped as integers to
	// avoid floating-point drift across many increments, matching the
	// original implementation's millip/millipperp convention.
	MinMilliP, MaxMilliP, IncMilliP          int
	MinMilliPPerp, MaxMilliPPerp, IncMilliPPerp int

	OutputPrefix string
}

// Cells enumerates the grid in the canonical order: outer loop over pPerp,
// inner loop over p, matching the original implementation's nested sweep
// (and, incidentally, OpenMP's collapse(2) iteration order).
func (g GridConfig) Cells() []Cell {
	var cells []Cell
	for milliPerp := g.MinMilliPPerp; milliPerp <= g.MaxMilliPPerp; milliPerp += g.IncMilliPPerp {
		for milliP := g.MinMilliP; milliP <= g.MaxMilliP; milliP += g.IncMilliP {
			cells = append(cells, Cell{
				P:     0.001 * float64(milliP),
				PPerp: 0.001 * float64(milliPerp),
			})
		}
	}
	return cells
}
