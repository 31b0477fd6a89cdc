package hw

import "testing"

func installClause(acc *Accelerator, cid uint16, lits ...uint16) {
	var rec ClauseRecord
	rec.Size = uint8(len(lits))
	copy(rec.Literals[:], lits)
	acc.ClauseMem.Write(cid, rec)
}

// TestScenarioAImplicationChain exercises spec.md §8 Scenario A: three
// binary clauses chained by unit propagation, one round per link.
func TestScenarioAImplicationChain(t *testing.T) {
	acc := NewAccelerator()
	// C0=(¬a∨b)=[3,4], C1=(¬b∨c)=[5,6], C2=(¬c∨d)=[7,8]
	installClause(acc, 0, 3, 4)
	installClause(acc, 1, 5, 6)
	installClause(acc, 2, 7, 8)
	acc.WatchMem.SetLength(3, 1)
	acc.WatchMem.SetEntry(3, 0, 0)
	acc.WatchMem.SetLength(5, 1)
	acc.WatchMem.SetEntry(5, 0, 1)
	acc.WatchMem.SetLength(7, 1)
	acc.WatchMem.SetEntry(7, 0, 2)

	// a = TRUE (var 1, literal code 2)
	acc.AssignMem.Write(1, HWTrue)

	round, err := acc.Start(3) // false_lit=3 (¬a)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if round.Conflict {
		t.Fatalf("round 1: unexpected conflict")
	}
	if len(round.Implications) != 1 || round.Implications[0] != (Implication{Var: 2, Value: HWTrue, Reason: 0}) {
		t.Fatalf("round 1 implications = %+v, want [{2 TRUE 0}]", round.Implications)
	}
	acc.Done()
	acc.AssignMem.Write(2, HWTrue) // host applies b=TRUE

	round, err = acc.Start(5) // false_lit=5 (¬b)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if round.Conflict || len(round.Implications) != 1 || round.Implications[0] != (Implication{Var: 3, Value: HWTrue, Reason: 1}) {
		t.Fatalf("round 2 implications = %+v, want [{3 TRUE 1}]", round.Implications)
	}
	acc.Done()
	acc.AssignMem.Write(3, HWTrue) // host applies c=TRUE

	round, err = acc.Start(7) // false_lit=7 (¬c)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if round.Conflict || len(round.Implications) != 1 || round.Implications[0] != (Implication{Var: 4, Value: HWTrue, Reason: 2}) {
		t.Fatalf("round 3 implications = %+v, want [{4 TRUE 2}]", round.Implications)
	}
}

// TestScenarioBConflict exercises spec.md §8 Scenario B.
func TestScenarioBConflict(t *testing.T) {
	acc := NewAccelerator()
	// C0=(¬e∨f)=[11,12], C1=(¬f∨¬g)=[13,15]
	installClause(acc, 0, 11, 12)
	installClause(acc, 1, 13, 15)
	acc.WatchMem.SetLength(11, 1)
	acc.WatchMem.SetEntry(11, 0, 0)
	acc.WatchMem.SetLength(13, 1)
	acc.WatchMem.SetEntry(13, 0, 1)

	acc.AssignMem.Write(5, HWTrue) // e = TRUE (var 5)
	acc.AssignMem.Write(7, HWTrue) // g = TRUE (var 7)

	round, err := acc.Start(11) // false_lit=11 (¬e)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if round.Conflict || len(round.Implications) != 1 || round.Implications[0] != (Implication{Var: 6, Value: HWTrue, Reason: 0}) {
		t.Fatalf("round 1 implications = %+v, want [{6 TRUE 0}]", round.Implications)
	}
	acc.Done()
	acc.AssignMem.Write(6, HWTrue) // host applies f=TRUE

	round, err = acc.Start(13) // false_lit=13 (¬f)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !round.Conflict || round.ConflictClauseID != 1 {
		t.Fatalf("round 2 = %+v, want a conflict on clause 1", round)
	}
}

// TestScenarioCEmptyWatchList exercises spec.md §8 Scenario C.
func TestScenarioCEmptyWatchList(t *testing.T) {
	acc := NewAccelerator()
	round, err := acc.Start(99)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if round.Conflict || len(round.Implications) != 0 {
		t.Fatalf("round = %+v, want done-ok with zero implications", round)
	}
	if round.Cycles > 5 {
		t.Fatalf("Cycles = %d, want <= 5 for an empty watch list", round.Cycles)
	}
}

// TestScenarioDUnitInLongerClause exercises spec.md §8 Scenario D.
func TestScenarioDUnitInLongerClause(t *testing.T) {
	acc := NewAccelerator()
	// C5=(¬h∨¬i∨j)=[17,19,20], watched via lit 17
	installClause(acc, 5, 17, 19, 20)
	acc.WatchMem.SetLength(17, 1)
	acc.WatchMem.SetEntry(17, 0, 5)

	acc.AssignMem.Write(8, HWTrue) // h = TRUE (var 8)
	acc.AssignMem.Write(9, HWTrue) // i = TRUE (var 9)
	// j (var 10) left UNASSIGNED

	round, err := acc.Start(17) // false_lit=17 (¬h)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if round.Conflict || len(round.Implications) != 1 || round.Implications[0] != (Implication{Var: 10, Value: HWTrue, Reason: 5}) {
		t.Fatalf("implications = %+v, want [{10 TRUE 5}]", round.Implications)
	}
}

// TestSatHintShortCircuitsEvaluator covers the boundary behavior that a
// clause whose sat hint is set emits SATISFIED without reading assignments.
func TestSatHintShortCircuitsEvaluator(t *testing.T) {
	acc := NewAccelerator()
	var rec ClauseRecord
	rec.Sat = true
	rec.Size = 2
	rec.Literals[0] = 3
	rec.Literals[1] = 4
	acc.ClauseMem.Write(0, rec)
	acc.WatchMem.SetLength(3, 1)
	acc.WatchMem.SetEntry(3, 0, 0)

	round, err := acc.Start(3)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if round.Conflict || len(round.Implications) != 0 {
		t.Fatalf("round = %+v, want done-ok with zero implications (sat hint short-circuit)", round)
	}
}
