// Package xref cross-validates this module's solver against an independent
// third-party SAT engine, playing the role the teacher's own test suite
// (yass_test.go) assigns to "trusted reference SAT solvers such as MiniSAT
// and Glucose" (SPEC_FULL.md §3): instead of a pre-computed fixture, the
// gold standard is a real dependency solved at test time.
package xref

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/kjellberg/satforge/internal/sat"
)

// Verdict is a reference solver's SAT/UNSAT answer, independent of this
// module's Status type so a comparison can't accidentally typecheck against
// the system under test.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictSAT
	VerdictUNSAT
)

// ReferenceSolve loads the given clauses (in this module's Literal encoding)
// into gini and returns its verdict, and — if SAT — a model indexed by
// variable (index 0 unused), for comparison against sat.Solver.Model().
func ReferenceSolve(numVars int, clauses [][]sat.Literal) (Verdict, []bool, error) {
	g := gini.New()

	for _, clause := range clauses {
		for _, lit := range clause {
			v := lit.Var()
			if v < 1 || v > numVars {
				return VerdictUnknown, nil, fmt.Errorf("xref: literal variable %d out of range [1,%d]", v, numVars)
			}
			dimacsLit := v
			if lit.IsNegative() {
				dimacsLit = -v
			}
			g.Add(z.Dimacs2Lit(dimacsLit))
		}
		g.Add(0)
	}

	switch g.Solve() {
	case 1:
		model := make([]bool, numVars+1)
		for v := 1; v <= numVars; v++ {
			model[v] = g.Value(z.Dimacs2Lit(v))
		}
		return VerdictSAT, model, nil
	case -1:
		return VerdictUNSAT, nil, nil
	default:
		return VerdictUnknown, nil, fmt.Errorf("xref: gini returned an unknown result")
	}
}

// Agrees reports whether a sat.Status/model pair is consistent with a
// reference verdict/model: both sides must agree on satisfiability, and
// when SAT, the module's model must satisfy every clause gini was given
// (models need not match bit-for-bit — spec.md has no canonical model, only
// a canonical verdict).
func Agrees(status sat.Status, model []sat.LBool, numVars int, clauses [][]sat.Literal, refVerdict Verdict) bool {
	switch refVerdict {
	case VerdictSAT:
		if status != sat.StatusSAT {
			return false
		}
		return SatisfiesAll(model, clauses)
	case VerdictUNSAT:
		return status == sat.StatusUNSAT
	default:
		return false
	}
}

// SatisfiesAll checks a model (sat.LBool per variable, index 0 unused)
// against every clause.
func SatisfiesAll(model []sat.LBool, clauses [][]sat.Literal) bool {
	for _, clause := range clauses {
		ok := false
		for _, lit := range clause {
			v := lit.Var()
			val := model[v]
			if lit.IsNegative() {
				val = val.Opposite()
			}
			if val == sat.True {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
