package percolation

import "math/rand"

// RunOnce is the per-run driver of spec.md §4.4: it allocates fresh bond
// fields, fills them independently at random, runs the analyzer once with
// inter-layer bonds active ("multilayer" regime, seq 1) and once with them
// severed ("single-layer" regime, seq 2), and returns the combined outcome
// for the caller to fold into a RunStats accumulator.
//
// Buffers allocated here are not reused across calls, matching spec.md
// §3's "between runs all buffers are reallocated" and §5's memory
// discipline: every buffer allocated in a run is released before the run
// returns (left to the garbage collector once RunOnce's local lattice and
// field go out of scope).
func RunOnce(lat LatticeConfig, run RunConfig, rng *PartitionedRNG) RunOutcome {
	dims := lat.Dims()

	lattice := NewLattice(dims, lat.PBCZ)
	fillBonds(lattice, dims, run.P, run.PPerp, rng.ForSubsystem(SubsystemBonds))

	field := NewClusterField(dims)
	siteRNG := rng.ForSubsystem(SubsystemSiteTest)

	multilayer := Analyze(AnalyzeInput{
		Lattice:      lattice,
		Field:        field,
		MeasureJumps: run.MeasureJumps,
		RNG:          siteRNG,
	})

	lattice.SeverVerticalBonds()

	singleLayer := Analyze(AnalyzeInput{
		Lattice:      lattice,
		Field:        field,
		MeasureJumps: false,
		RNG:          siteRNG,
	})

	return RunOutcome{
		Multilayer:      multilayer.NrPercolating > 0,
		SingleLayer:     singleLayer.NrPercolating > 0,
		Jumps:           multilayer.Jumps,
		JumpsValid:      multilayer.JumpsValid,
		Matches1:        multilayer.Matches,
		Matches2:        singleLayer.Matches,
		MatchesByLayer1: multilayer.MatchesByLayer,
		MatchesByLayer2: singleLayer.MatchesByLayer,
		NrPercolating1:  multilayer.NrPercolating,
		NrPercolating2:  singleLayer.NrPercolating,
		PermutationRank: multilayer.PermutationRank,
		PermutationSet:  multilayer.PermutationSet,
	}
}

// fillBonds draws every in-plane bond (both directions, every layer) then
// every inter-layer bond as independent Bernoulli trials, in that order —
// matching the original implementation's draw order so that a given RNG
// stream reproduces the same configuration.
func fillBonds(lattice *Lattice, dims Dims, p, pPerp float64, rng *rand.Rand) {
	for l := 0; l < dims.Z; l++ {
		plane := lattice.Planes[l]
		for x := 0; x < dims.Lx; x++ {
			for y := 0; y < dims.Ly; y++ {
				plane.Set(x, y, DirX, bernoulli(rng, p))
				plane.Set(x, y, DirY, bernoulli(rng, p))
			}
		}
	}

	for l := 0; l < dims.Z; l++ {
		vb := lattice.Verticals[l]
		if vb == nil {
			continue
		}
		for x := 0; x < dims.Lx; x++ {
			for y := 0; y < dims.Ly; y++ {
				vb.Set(x, y, bernoulli(rng, pPerp))
			}
		}
	}
}
