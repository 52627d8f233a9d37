package batch

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// Writer serializes cell results to the two output files spec.md §6
// describes: the main `.dat` table and, when jump measurement is enabled,
// a `.bins.dat` permutation-histogram table. Cells complete in whatever
// order the worker pool finishes them in, so every write is taken under a
// mutex and flushed before the next cell may proceed.
type Writer struct {
	mu sync.Mutex

	data      *os.File
	dataBuf   *bufio.Writer
	bins      *os.File
	binsBuf   *bufio.Writer
	measureJumps bool
}

// NewWriter creates (truncating any existing file) prefix+".dat" and, if
// measureJumps, prefix+".bins.dat".
func NewWriter(prefix string, measureJumps bool) (*Writer, error) {
	data, err := os.Create(prefix + ".dat")
	if err != nil {
		return nil, fmt.Errorf("batch: creating data file: %w", err)
	}

	w := &Writer{
		data:         data,
		dataBuf:      bufio.NewWriter(data),
		measureJumps: measureJumps,
	}

	if measureJumps {
		bins, err := os.Create(prefix + ".bins.dat")
		if err != nil {
			data.Close()
			return nil, fmt.Errorf("batch: creating bins file: %w", err)
		}
		w.bins = bins
		w.binsBuf = bufio.NewWriter(bins)
	}

	return w, nil
}

// Close flushes and closes every open file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.dataBuf.Flush(); err != nil {
		return fmt.Errorf("batch: flushing data file: %w", err)
	}
	if err := w.data.Close(); err != nil {
		return fmt.Errorf("batch: closing data file: %w", err)
	}

	if w.bins != nil {
		if err := w.binsBuf.Flush(); err != nil {
			return fmt.Errorf("batch: flushing bins file: %w", err)
		}
		if err := w.bins.Close(); err != nil {
			return fmt.Errorf("batch: closing bins file: %w", err)
		}
	}

	return nil
}

// WriteCell appends one row for a completed cell: the 9 fixed columns of
// spec.md §6 (p, pPerp, P_multilayer, P_single, jumps, matches1, matches2,
// #perc1, #perc2), then match1_by_layer and match2_by_layer (one column per
// layer, multilayer regime then single-layer regime) in the exact order
// spec.md §6 and the original implementation's fprintf sequence use, and
// finally the two sample-stddev columns this repository adds (see
// CellResult) — true trailing additions, never spliced into the middle.
func (w *Writer) WriteCell(cell Cell, result CellResult, totalRuns int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := result.Stats
	n := float64(totalRuns)

	row := fmt.Sprintf(
		"%.6f %.6f %.6f %.6f %.6f %.6f %.6f %.6f %.6f",
		cell.P, cell.PPerp,
		float64(st.CntMultilayer)/n,
		float64(st.CntSingleLayer)/n,
		float64(st.SumJumps)/n,
		float64(st.SumMatches1)/n,
		float64(st.SumMatches2)/n,
		float64(st.SumNrPercolating1)/n,
		float64(st.SumNrPercolating2)/n,
	)

	for _, c := range st.SumMatchesByLayer1 {
		row += fmt.Sprintf(" %.6f", float64(c)/n)
	}
	for _, c := range st.SumMatchesByLayer2 {
		row += fmt.Sprintf(" %.6f", float64(c)/n)
	}

	row += fmt.Sprintf(" %.6f %.6f", result.StddevMultilayer, result.StddevSingle)

	if _, err := fmt.Fprintln(w.dataBuf, row); err != nil {
		return fmt.Errorf("batch: writing data row: %w", err)
	}
	if err := w.dataBuf.Flush(); err != nil {
		return fmt.Errorf("batch: flushing data row: %w", err)
	}

	if w.measureJumps && st.PermutationBins != nil {
		binsRow := fmt.Sprintf("%.6f %.6f", cell.P, cell.PPerp)
		for _, count := range st.PermutationBins {
			binsRow += fmt.Sprintf(" %d", count)
		}
		if _, err := fmt.Fprintln(w.binsBuf, binsRow); err != nil {
			return fmt.Errorf("batch: writing bins row: %w", err)
		}
		if err := w.binsBuf.Flush(); err != nil {
			return fmt.Errorf("batch: flushing bins row: %w", err)
		}
	}

	return nil
}
