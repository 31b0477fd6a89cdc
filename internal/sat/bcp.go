package sat

// Propagator is the strategy interface a Solver drives every round: either
// the software two-watched-literal loop in this file, or the hardware
// bridge in internal/hw. Modeled as a capability handle rather than runtime
// polymorphism, per spec.md §9 ("Dynamic dispatch between SW and HW
// propagation").
type Propagator interface {
	// Propagate runs BCP to a fixed point starting from the engine's
	// current prop_head, returning the conflicting clause ID and true if
	// a conflict was found, or (NoClause, false) otherwise. On return,
	// PropHead must equal TrailLen() in the no-conflict case.
	Propagate(eng *Engine) (ClauseID, bool)
}

// HWStatsReporter is implemented by propagators that track hardware-specific
// diagnostics (accelerator round count, cycles spent, conflicts the
// accelerator itself detected). Solver.Stats merges these in when the
// configured Propagator implements it; SoftwarePropagator has no such
// concept and does not implement it.
type HWStatsReporter interface {
	HWStats() (rounds, cycles, conflictsFound int64)
}

// SoftwarePropagator implements the two-watched-literal BCP loop described
// in spec.md §4.1. Grounded on the teacher's Solver.Propagate and
// Clause.Propagate (internal/sat/solver.go, internal/sat/clauses.go),
// rewritten around the spec's explicit two-finger watch-list compaction and
// ClauseID-keyed clauses instead of the teacher's pointer-based watcher
// list with a satisfied-guard fast path.
type SoftwarePropagator struct{}

// Propagate implements Propagator.
func (SoftwarePropagator) Propagate(eng *Engine) (ClauseID, bool) {
	a := eng.assign
	for a.propHead < len(a.trail) {
		l := a.trail[a.propHead]
		a.propHead++
		f := l.Negate()

		list := eng.watch.List(f)
		j := 0
		for i := 0; i < len(list); i++ {
			cid := list[i]
			c := eng.clauses.Get(cid)

			if c.Literals[0] == f {
				c.Literals[0], c.Literals[1] = c.Literals[1], c.Literals[0]
			}

			if a.ValueOf(c.Literals[0]) == True {
				list[j] = cid
				j++
				continue
			}

			found := false
			for k := 2; k < len(c.Literals); k++ {
				if a.ValueOf(c.Literals[k]) != False {
					c.Literals[1], c.Literals[k] = c.Literals[k], c.Literals[1]
					eng.watch.Watch(c.Literals[1], cid)
					found = true
					break
				}
			}
			if found {
				continue // dropped from f's list, read finger already advanced
			}

			// c.Literals[0] is the only remaining candidate.
			list[j] = cid
			j++

			switch a.ValueOf(c.Literals[0]) {
			case False:
				// Splice remaining watchers back unchanged before returning.
				copy(list[j:], list[i+1:])
				eng.watch.SetList(f, list[:j+len(list)-(i+1)])
				return cid, true
			case Unassigned:
				a.Enqueue(c.Literals[0], cid)
			case True:
				// already assigned, nothing to do
			}
		}
		eng.watch.SetList(f, list[:j])
	}
	return NoClause, false
}
