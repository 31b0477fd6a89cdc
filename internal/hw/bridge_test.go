package hw

import (
	"sort"
	"testing"

	"github.com/kjellberg/satforge/internal/sat"
)

func lit(v int) sat.Literal  { return sat.NewPositiveLiteral(v) }
func nlit(v int) sat.Literal { return sat.NewNegativeLiteral(v) }

// buildFormula installs the same small formula into two solvers (one
// software-only, one hardware-bridge) so SW/HW equivalence (spec.md §8
// property 4) can be compared decision-for-decision.
func buildFormula(opts sat.Options) *sat.Solver {
	s := sat.NewSolver(opts)
	a, b, c, d := s.NewVariable(), s.NewVariable(), s.NewVariable(), s.NewVariable()
	s.AddClause([]sat.Literal{lit(a), lit(b), lit(c), lit(d)})
	s.AddClause([]sat.Literal{nlit(a), nlit(b)})
	s.AddClause([]sat.Literal{nlit(c), nlit(d)})
	s.AddClause([]sat.Literal{lit(a), lit(c)})
	return s
}

func TestSWEquivalentToHWBridge(t *testing.T) {
	swOpts := sat.DefaultOptions()
	swOpts.Propagator = sat.SoftwarePropagator{}
	sw := buildFormula(swOpts)
	swStatus := sw.Solve()

	hwOpts := sat.DefaultOptions()
	hwOpts.Propagator = NewBridge(nil)
	hwSolver := buildFormula(hwOpts)
	hwStatus := hwSolver.Solve()

	if swStatus != hwStatus {
		t.Fatalf("SW status %s != HW status %s", swStatus, hwStatus)
	}
	if sw.Stats().Decisions != hwSolver.Stats().Decisions {
		t.Fatalf("SW decisions %d != HW decisions %d", sw.Stats().Decisions, hwSolver.Stats().Decisions)
	}
	if sw.Stats().Conflicts != hwSolver.Stats().Conflicts {
		t.Fatalf("SW conflicts %d != HW conflicts %d", sw.Stats().Conflicts, hwSolver.Stats().Conflicts)
	}
}

// buildChainEngine installs the same chained-implication formula used by
// the software-side first-UIP test (internal/sat/analyze_test.go), but
// directly against an *sat.Engine rather than a Solver, so the driver
// (decide/propagate/analyze) can be stepped by hand under either
// propagator. Neither clause (1∨3) nor (2∨4) puts the implied literal in
// position 0: deciding var 1 falsifies lit(1) at position 0 and implies
// lit(3) at position 1, which is exactly the arrangement that exposed the
// skipFirst=true bug in Analyze's resolution step.
func buildChainEngine() *sat.Engine {
	e := sat.NewEngine(0.95)
	for i := 0; i < 6; i++ {
		e.AddVariable()
	}
	e.AddClause([]sat.Literal{lit(1), lit(3)})
	e.AddClause([]sat.Literal{lit(2), lit(4)})
	e.AddClause([]sat.Literal{nlit(3), lit(5)})
	e.AddClause([]sat.Literal{nlit(4), lit(6)})
	e.AddClause([]sat.Literal{nlit(5), nlit(6), nlit(4)})
	return e
}

func sortedLiterals(lits []sat.Literal) []sat.Literal {
	out := append([]sat.Literal(nil), lits...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TestAnalyzeAgreesBetweenSWAndHWOnMultiLevelConflict exercises SW/HW
// equivalence (spec.md §8 inv. 4) and first-UIP correctness (inv. 6)
// together: the same decision sequence drives the same conflict through
// SoftwarePropagator and through the hardware bridge, and Analyze must
// return the same learnt clause and backtrack level either way, even
// though the bridge never canonicalizes an implied literal into position 0
// of its reason clause.
func TestAnalyzeAgreesBetweenSWAndHWOnMultiLevelConflict(t *testing.T) {
	swEngine := buildChainEngine()
	swEngine.Decide(1)
	if _, ok := (sat.SoftwarePropagator{}).Propagate(swEngine); ok {
		t.Fatalf("unexpected conflict after the first SW decision")
	}
	swEngine.Decide(2)
	swConflict, ok := (sat.SoftwarePropagator{}).Propagate(swEngine)
	if !ok {
		t.Fatalf("expected a conflict after the second SW decision")
	}
	swLearnt, swBacktrack := swEngine.Analyze(swConflict)

	hwEngine := buildChainEngine()
	bridge := NewBridge(nil)
	hwEngine.Decide(1)
	if _, ok := bridge.Propagate(hwEngine); ok {
		t.Fatalf("unexpected conflict after the first HW decision")
	}
	hwEngine.Decide(2)
	hwConflict, ok := bridge.Propagate(hwEngine)
	if !ok {
		t.Fatalf("expected a conflict after the second HW decision")
	}
	hwLearnt, hwBacktrack := hwEngine.Analyze(hwConflict)

	if hwBacktrack != swBacktrack {
		t.Fatalf("HW backtrack level = %d, want %d (SW)", hwBacktrack, swBacktrack)
	}
	swSorted, hwSorted := sortedLiterals(swLearnt), sortedLiterals(hwLearnt)
	if len(swSorted) != len(hwSorted) {
		t.Fatalf("HW learnt clause %v has a different size than SW's %v", hwLearnt, swLearnt)
	}
	for i := range swSorted {
		if swSorted[i] != hwSorted[i] {
			t.Fatalf("HW learnt clause %v != SW learnt clause %v (sorted)", hwSorted, swSorted)
		}
	}
}

func TestCheckLimitsRejectsOversizedFormula(t *testing.T) {
	if err := CheckLimits(MaxVariables+1, 10); err == nil {
		t.Fatalf("expected an error for a formula exceeding MaxVariables")
	}
	if err := CheckLimits(10, MaxClauses+1); err == nil {
		t.Fatalf("expected an error for a formula exceeding MaxClauses")
	}
	if err := CheckLimits(10, 10); err != nil {
		t.Fatalf("unexpected error for a well-sized formula: %v", err)
	}
}
