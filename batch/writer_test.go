package batch

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlperc/percosim/percolation"
)

func TestWriter_WriteCell_WritesOneRowPerCell(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "out")

	w, err := NewWriter(prefix, false)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	stats := percolation.NewRunStats(2, false)
	stats.Accumulate(percolation.RunOutcome{
		Multilayer: true,
		MatchesByLayer1: []bool{true, false},
		MatchesByLayer2: []bool{false, false},
		NrPercolating1:  1,
	})

	result := CellResult{Stats: stats, MeanMultilayer: 1, MeanSingle: 0}

	if err := w.WriteCell(Cell{P: 0.5, PPerp: 0.3}, result, 1); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(prefix + ".dat")
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly 1 row, got %d: %q", len(lines), data)
	}

	fields := strings.Fields(lines[0])
	// 9 fixed columns + 2 layers of match1_by_layer + 2 layers of
	// match2_by_layer + 2 trailing stddev columns.
	const wantFields = 9 + 2 + 2 + 2
	if len(fields) != wantFields {
		t.Fatalf("expected %d columns, got %d: %q", wantFields, len(fields), lines[0])
	}
	if fields[0] != "0.500000" || fields[1] != "0.300000" {
		t.Errorf("first two columns = %q %q, want p and pPerp", fields[0], fields[1])
	}

	// match1_by_layer must immediately follow the 9 fixed columns (spec.md
	// §6's exact order), not the trailing stddev columns.
	if fields[9] != "1.000000" {
		t.Errorf("fields[9] (match1_by_layer[0]) = %q, want 1.000000", fields[9])
	}
	if fields[10] != "0.000000" {
		t.Errorf("fields[10] (match1_by_layer[1]) = %q, want 0.000000", fields[10])
	}
	if fields[11] != "0.000000" || fields[12] != "0.000000" {
		t.Errorf("fields[11:13] (match2_by_layer) = %q %q, want 0.000000 0.000000", fields[11], fields[12])
	}
	if fields[13] != "0.000000" || fields[14] != "0.000000" {
		t.Errorf("fields[13:15] (stddev columns) = %q %q, want trailing stddevs", fields[13], fields[14])
	}
}

func TestWriter_MeasureJumps_WritesBinsFile(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "out")

	w, err := NewWriter(prefix, true)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	stats := percolation.NewRunStats(2, true)
	stats.Accumulate(percolation.RunOutcome{
		MatchesByLayer1: []bool{false, false},
		MatchesByLayer2: []bool{false, false},
		PermutationRank: 1, PermutationSet: true,
	})

	if err := w.WriteCell(Cell{P: 0.1, PPerp: 0.2}, CellResult{Stats: stats}, 1); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(prefix + ".bins.dat")
	if err != nil {
		t.Fatalf("bins file should exist when measureJumps is true: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("expected at least one line in bins file")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != 2+2 { // p, pPerp, then 2! = 2 histogram bins
		t.Fatalf("expected 4 fields (p pPerp bin0 bin1), got %d: %q", len(fields), scanner.Text())
	}
}

func TestWriter_NoMeasureJumps_NoBinsFile(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "out")

	w, err := NewWriter(prefix, false)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(prefix + ".bins.dat"); !os.IsNotExist(err) {
		t.Fatalf("bins file should not be created when measureJumps is false (err=%v)", err)
	}
}
