package sat

// Analyze implements first-UIP conflict analysis (spec.md §4.2). Given the
// ID of a conflicting clause, it returns the learnt clause (learnt[0] is
// the negated UIP, learnt[1:] are literals from strictly lower levels) and
// the backtrack level (the max level among learnt[1:], or 0 if none).
//
// Grounded on the teacher's Solver.analyze (internal/sat/solver.go), which
// implements the same seen-bitset / backward-trail-scan shape; adapted to
// (a) use ClauseIDs instead of *Clause reasons, (b) filter level-0
// antecedents out of the learnt clause per spec.md §4.2 ("provided level >
// 0"), which the teacher's version omits, and (c) apply VSIDS decay as part
// of analysis itself, per spec.md's stated side effects, rather than in the
// driver loop.
//
// The literal buffer the learnt clause is built in is borrowed from the
// size-class pools in clause_pool.go (the teacher's clauses_alloc.go
// equivalent) and returned before Analyze returns, since this buffer's
// lifetime is exactly one conflict — unlike a Clause's own Literals slice,
// which this design never frees once installed (spec.md §3).
func (e *Engine) Analyze(conflict ClauseID) ([]Literal, int) {
	e.seen.Clear()
	counter := 0
	backtrackLevel := 0
	currLevel := e.DecisionLevel()

	ref := allocLiteralSlice(4)
	defer freeLiteralSlice(ref)
	learnt := (*ref)[:0]
	learnt = append(learnt, 0) // placeholder for the UIP literal

	// resolve walks every literal of a reason clause, including its first
	// position: the pivot itself is already marked seen before resolve is
	// called on its reason, so the e.seen.Contains(v) check below skips it
	// by identity rather than by position. Skipping position 0 unconditionally
	// would assume the implied literal is canonicalized there, which holds
	// for SoftwarePropagator's reasons but not for every Propagator's.
	resolve := func(lits []Literal) {
		for _, lit := range lits {
			v := lit.Var()
			if e.seen.Contains(v) {
				continue
			}
			e.seen.Add(v)
			e.BumpVariableActivity(lit)

			level := e.assign.level[v]
			if level == currLevel {
				counter++
				continue
			}
			if level > 0 {
				learnt = append(learnt, lit)
				if level > backtrackLevel {
					backtrackLevel = level
				}
			}
		}
	}

	reasonClause := conflict
	bumpClause(e, reasonClause)
	resolve(e.clauses.Get(reasonClause).Literals)

	nextIdx := len(e.assign.trail) - 1
	var uip Literal
	for {
		var v int
		for {
			uip = e.assign.trail[nextIdx]
			nextIdx--
			v = uip.Var()
			reasonClause = e.assign.reason[v]
			if e.seen.Contains(v) {
				break
			}
		}

		counter--
		if counter <= 0 {
			break
		}

		bumpClause(e, reasonClause)
		resolve(e.clauses.Get(reasonClause).Literals)
	}

	learnt[0] = uip.Negate()

	// Move the literal from the highest lower level into position 1 so the
	// two watched positions straddle the two most recent levels after
	// backtracking (spec.md §4.2 post-processing). Ties keep the first
	// literal found (stable).
	if len(learnt) > 1 {
		best := 1
		bestLevel := e.assign.level[learnt[1].Var()]
		for i := 2; i < len(learnt); i++ {
			if lv := e.assign.level[learnt[i].Var()]; lv > bestLevel {
				bestLevel = lv
				best = i
			}
		}
		learnt[1], learnt[best] = learnt[best], learnt[1]
	}

	e.DecayVariableActivity()

	out := make([]Literal, len(learnt))
	copy(out, learnt)
	*ref = learnt // hand the (possibly regrown) backing array back for freeLiteralSlice
	return out, backtrackLevel
}

// bumpClause nudges a learnt clause's activity each time it participates in
// a resolution step, the way the teacher's ExplainFailure/ExplainAssign
// bump clause activity on use. The field is inert bookkeeping in this
// design (no reduction pass reads it) but is kept populated; see
// SPEC_FULL.md §4.
func bumpClause(e *Engine, id ClauseID) {
	c := e.clauses.Get(id)
	if c.Learnt {
		c.Activity++
	}
}
