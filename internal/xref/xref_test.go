package xref

import (
	"testing"

	"github.com/kjellberg/satforge/internal/sat"
)

func lit(v int) sat.Literal  { return sat.NewPositiveLiteral(v) }
func nlit(v int) sat.Literal { return sat.NewNegativeLiteral(v) }

func TestReferenceSolveSatisfiable(t *testing.T) {
	clauses := [][]sat.Literal{
		{lit(1), lit(2)},
		{nlit(1), lit(3)},
	}
	verdict, model, err := ReferenceSolve(3, clauses)
	if err != nil {
		t.Fatalf("ReferenceSolve: %v", err)
	}
	if verdict != VerdictSAT {
		t.Fatalf("verdict = %v, want VerdictSAT", verdict)
	}
	if !SatisfiesAll(lboolModel(model), clauses) {
		t.Fatalf("model %v does not satisfy clauses", model)
	}
}

func TestReferenceSolveUnsatisfiable(t *testing.T) {
	clauses := [][]sat.Literal{
		{lit(1)},
		{nlit(1)},
	}
	verdict, _, err := ReferenceSolve(1, clauses)
	if err != nil {
		t.Fatalf("ReferenceSolve: %v", err)
	}
	if verdict != VerdictUNSAT {
		t.Fatalf("verdict = %v, want VerdictUNSAT", verdict)
	}
}

func TestReferenceSolveRejectsOutOfRangeVariable(t *testing.T) {
	clauses := [][]sat.Literal{{lit(5)}}
	if _, _, err := ReferenceSolve(1, clauses); err == nil {
		t.Fatalf("expected an error for a literal outside [1,numVars]")
	}
}

func TestAgreesMatchesSolverOutcome(t *testing.T) {
	clauses := [][]sat.Literal{
		{lit(1), lit(2)},
		{nlit(1), lit(2)},
	}
	s := sat.NewDefaultSolver()
	s.NewVariable()
	s.NewVariable()
	for _, c := range clauses {
		s.AddClause(c)
	}
	status := s.Solve()

	refVerdict, _, err := ReferenceSolve(2, clauses)
	if err != nil {
		t.Fatalf("ReferenceSolve: %v", err)
	}
	if !Agrees(status, s.Model(), 2, clauses, refVerdict) {
		t.Fatalf("Agrees() = false for status %v vs refVerdict %v", status, refVerdict)
	}
}

func TestSatisfiesAllRejectsViolatedClause(t *testing.T) {
	model := []sat.LBool{sat.Unassigned, sat.False, sat.False}
	clauses := [][]sat.Literal{{lit(1), lit(2)}}
	if SatisfiesAll(model, clauses) {
		t.Fatalf("SatisfiesAll() = true for a model that violates the only clause")
	}
}

func lboolModel(model []bool) []sat.LBool {
	out := make([]sat.LBool, len(model))
	for i, v := range model {
		if i == 0 {
			continue
		}
		out[i] = sat.LiftBool(v)
	}
	return out
}
