package percolation

import "testing"

func TestRunStats_Accumulate_CountsEachOutcome(t *testing.T) {
	st := NewRunStats(3, true)

	st.Accumulate(RunOutcome{
		Multilayer: true, SingleLayer: false,
		Jumps: 4, JumpsValid: true,
		Matches1: true, Matches2: false,
		MatchesByLayer1: []bool{true, false, false},
		MatchesByLayer2: []bool{false, false, false},
		NrPercolating1:  1, NrPercolating2: 0,
		PermutationRank: 2, PermutationSet: true,
	})
	st.Accumulate(RunOutcome{
		Multilayer: false, SingleLayer: true,
		MatchesByLayer1: []bool{false, false, false},
		MatchesByLayer2: []bool{false, true, false},
		NrPercolating2:  1,
	})

	if st.CntMultilayer != 1 || st.CntSingleLayer != 1 {
		t.Fatalf("CntMultilayer=%d CntSingleLayer=%d, want 1 and 1", st.CntMultilayer, st.CntSingleLayer)
	}
	if st.SumJumps != 4 {
		t.Errorf("SumJumps = %d, want 4", st.SumJumps)
	}
	if st.SumMatches1 != 1 || st.SumMatches2 != 0 {
		t.Errorf("SumMatches1=%d SumMatches2=%d, want 1 and 0", st.SumMatches1, st.SumMatches2)
	}
	if st.SumMatchesByLayer1[0] != 1 {
		t.Errorf("SumMatchesByLayer1[0] = %d, want 1", st.SumMatchesByLayer1[0])
	}
	if st.SumMatchesByLayer2[1] != 1 {
		t.Errorf("SumMatchesByLayer2[1] = %d, want 1", st.SumMatchesByLayer2[1])
	}
	if st.PermutationBins[2] != 1 {
		t.Errorf("PermutationBins[2] = %d, want 1", st.PermutationBins[2])
	}
}

func TestRunStats_Accumulate_SkipsInvalidJumpsAndUnsetPermutation(t *testing.T) {
	st := NewRunStats(2, true)

	st.Accumulate(RunOutcome{
		Jumps: 99, JumpsValid: false,
		MatchesByLayer1: []bool{false, false},
		MatchesByLayer2: []bool{false, false},
		PermutationRank: 1, PermutationSet: false,
	})

	if st.SumJumps != 0 {
		t.Errorf("SumJumps = %d, want 0 (JumpsValid was false)", st.SumJumps)
	}
	for _, c := range st.PermutationBins {
		if c != 0 {
			t.Fatalf("PermutationBins should be untouched when PermutationSet is false, got %v", st.PermutationBins)
		}
	}
}

func TestRunStats_Merge_SumsBothBags(t *testing.T) {
	a := NewRunStats(2, true)
	b := NewRunStats(2, true)

	a.Accumulate(RunOutcome{
		Multilayer: true, Jumps: 2, JumpsValid: true,
		MatchesByLayer1: []bool{true, false}, MatchesByLayer2: []bool{false, false},
		NrPercolating1: 1, PermutationRank: 0, PermutationSet: true,
	})
	b.Accumulate(RunOutcome{
		SingleLayer: true, Jumps: 3, JumpsValid: true,
		MatchesByLayer1: []bool{false, false}, MatchesByLayer2: []bool{false, true},
		NrPercolating2: 1, PermutationRank: 1, PermutationSet: true,
	})

	a.Merge(b)

	if a.CntMultilayer != 1 || a.CntSingleLayer != 1 {
		t.Errorf("CntMultilayer=%d CntSingleLayer=%d after merge, want 1 and 1", a.CntMultilayer, a.CntSingleLayer)
	}
	if a.SumJumps != 5 {
		t.Errorf("SumJumps = %d after merge, want 5", a.SumJumps)
	}
	if a.PermutationBins[0] != 1 || a.PermutationBins[1] != 1 {
		t.Errorf("PermutationBins = %v after merge, want [1,1]", a.PermutationBins)
	}
}

func TestNewRunStats_NoJumpMeasurement_LeavesHistogramNil(t *testing.T) {
	st := NewRunStats(3, false)
	if st.PermutationBins != nil {
		t.Fatalf("PermutationBins should be nil when measureJumps is false, got %v", st.PermutationBins)
	}
}
