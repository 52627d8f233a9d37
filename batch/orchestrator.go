// Package batch drives the parallel sweep over a (p, pPerp) grid described
// in spec.md §5-§6: the batch orchestrator.
package batch

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/mlperc/percosim/percolation"
)

// progressEvery controls how often a worker logs a progress tick within a
// cell, mirroring the original implementation's "%d/%d\n" every 100 runs.
const progressEvery = 100

// Run executes every cell of cfg's grid under a bounded worker pool, one
// goroutine per cell, and writes one row per cell to w. Per spec.md §5,
// cells may complete in any order — the output file is not ordered by
// (p, pPerp) — but writes are serialized so each row is flushed as a whole
// before the next one starts.
//
// seed is the batch's master RNG seed; each cell derives its own
// independent, reproducible PartitionedRNG from it (see deriveCellSeed), so
// cells started concurrently never share mutable RNG state (spec.md §5:
// "Workers must not share mutable state").
func Run(ctx context.Context, cfg GridConfig, seed int64, w *Writer, m *Metrics) error {
	cells := cfg.Cells()
	if len(cells) == 0 {
		return fmt.Errorf("batch: empty sweep grid (check Min/Max/Inc bounds)")
	}

	batchID := uuid.New().String()
	logrus.WithField("batch_id", batchID).Infof(
		"starting sweep: %dx%d lattice, %d layers, pbcz=%v, %d cells, %d runs/cell",
		cfg.Lx, cfg.Ly, cfg.Z, cfg.PBCZ, len(cells), cfg.TotalRuns)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	total := len(cells)
	for i, cell := range cells {
		i, cell := i, cell
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result, err := runCell(cfg, cell, deriveCellSeed(seed, i))
			if err != nil {
				return fmt.Errorf("cell p=%.3f pPerp=%.3f: %w", cell.P, cell.PPerp, err)
			}

			if err := w.WriteCell(cell, result, cfg.TotalRuns); err != nil {
				return fmt.Errorf("writing cell p=%.3f pPerp=%.3f: %w", cell.P, cell.PPerp, err)
			}

			if m != nil {
				m.ObserveCell(total)
			}

			logrus.WithField("batch_id", batchID).Infof(
				"cell done: p=%.3f pPerp=%.3f multilayer=%.4f single=%.4f",
				cell.P, cell.PPerp,
				float64(result.Stats.CntMultilayer)/float64(cfg.TotalRuns),
				float64(result.Stats.CntSingleLayer)/float64(cfg.TotalRuns))

			return nil
		})
	}

	return g.Wait()
}

// CellResult is everything one worker accumulates for one grid cell.
type CellResult struct {
	Stats *percolation.RunStats

	// MeanMultilayer/StddevMultilayer and MeanSingle/StddevSingle are the
	// Monte Carlo sample mean and standard deviation of the per-run
	// percolation indicator, an error-bar column this repository appends
	// beyond spec.md's required output columns (see SPEC_FULL.md §3).
	MeanMultilayer, StddevMultilayer float64
	MeanSingle, StddevSingle         float64
}

// runCell runs cfg.TotalRuns independent Monte Carlo runs for one grid
// cell, owning its own lattice config, PartitionedRNG, and statistics bag
// exclusively for the duration (spec.md §5: no concurrency within a cell).
func runCell(cfg GridConfig, cell Cell, seed int64) (CellResult, error) {
	lattice := percolation.LatticeConfig{Lx: cfg.Lx, Ly: cfg.Ly, Z: cfg.Z, PBCZ: cfg.PBCZ}
	run := percolation.RunConfig{P: cell.P, PPerp: cell.PPerp, MeasureJumps: cfg.MeasureJumps}

	rng := percolation.NewPartitionedRNG(percolation.NewSimulationKey(seed))
	stats := percolation.NewRunStats(cfg.Z, cfg.MeasureJumps)

	multilayerSamples := make([]float64, cfg.TotalRuns)
	singleSamples := make([]float64, cfg.TotalRuns)

	for r := 0; r < cfg.TotalRuns; r++ {
		outcome := percolation.RunOnce(lattice, run, rng)
		stats.Accumulate(outcome)

		if outcome.Multilayer {
			multilayerSamples[r] = 1
		}
		if outcome.SingleLayer {
			singleSamples[r] = 1
		}

		if r%progressEvery == 0 {
			logrus.Debugf("p=%.3f pPerp=%.3f: %d/%d runs", cell.P, cell.PPerp, r, cfg.TotalRuns)
		}
	}

	meanM, varM := stat.MeanVariance(multilayerSamples, nil)
	meanS, varS := stat.MeanVariance(singleSamples, nil)

	return CellResult{
		Stats:            stats,
		MeanMultilayer:   meanM,
		StddevMultilayer: sqrtNonNegative(varM),
		MeanSingle:       meanS,
		StddevSingle:     sqrtNonNegative(varS),
	}, nil
}

// sqrtNonNegative guards against a tiny negative variance from floating
// point cancellation when every sample is identical (variance should be
// exactly 0 in that case).
func sqrtNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}

// deriveCellSeed derives an independent RNG seed for grid cell i from the
// batch's master seed, so that concurrently-running cells never draw from
// the same pseudorandom stream.
func deriveCellSeed(masterSeed int64, cellIndex int) int64 {
	seed := masterSeed ^ int64(uint64(cellIndex)*0x9E3779B97F4A7C15+1)
	if seed == 0 {
		seed = int64(cellIndex) + 1
	}
	return seed
}
