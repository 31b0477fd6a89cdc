package sat

// Backtrack unwinds the trail down to (but not including) the first
// literal of level+1, resets every unwound variable to Unassigned/NoClause,
// truncates per-level delimiters, reinserts unassigned variables into the
// VSIDS heap, and resets PropHead to the (shorter) trail length. Grounded
// on the teacher's cancelUntil/cancel/undoOne (internal/sat/solver.go),
// collapsed into the simpler semantics spec.md §4.3 and §9 specify in place
// of the teacher's "odd guard" on trailDelimiters.
func (e *Engine) Backtrack(level int) {
	target := e.assign.TruncateLevels(level)
	for len(e.assign.trail) > target {
		l := e.assign.UndoOne()
		e.vsids.Reinsert(l.Var())
	}
	e.assign.propHead = len(e.assign.trail)
}
