package sat

// Engine owns the clause database, watch index, assignment/trail, and
// VSIDS heap: every piece of state spec.md §3 says the solver exclusively
// owns. It has no opinion on whether propagation runs in software or
// against the hardware bridge; Solver supplies that as a Propagator.
type Engine struct {
	clauses ClauseDB
	watch   WatchIndex
	assign  *Assignment
	vsids   *VSIDS
	seen    ResetSet

	numVars int

	// originalClauseSizes records the as-submitted size of each original
	// clause, in insertion order, so the solver driver's preflight pass
	// (spec.md §4.5.1) can classify each one without re-scanning the
	// (possibly already-permuted) literal slice.
	originalClauseSizes []int
}

// NewEngine returns an empty engine (zero variables, zero clauses).
func NewEngine(decayFactor float64) *Engine {
	e := &Engine{
		assign: NewAssignment(0),
		vsids:  NewVSIDS(decayFactor),
	}
	e.seen.Grow() // slot 0 reserved, variables are 1-indexed
	return e
}

// NumVariables returns the number of variables declared so far.
func (e *Engine) NumVariables() int {
	return e.numVars
}

// AddVariable declares a new variable and returns its 1-indexed ID.
func (e *Engine) AddVariable() int {
	e.numVars++
	v := e.numVars
	e.assign.Grow()
	e.vsids.AddVariable(v)
	e.seen.Grow()
	e.watch.Grow(2 * (v + 1))
	return v
}

// AddClause installs an original clause exactly as given: spec.md §4.5.1
// classifies clauses by their as-submitted size during preflight, so no
// simplification (tautology removal, false-literal stripping) happens at
// load time the way the teacher's NewClause does it. The clause is still
// watched on positions 0 and 1 if its size is >= 2.
func (e *Engine) AddClause(literals []Literal) ClauseID {
	id := e.clauses.Add(literals, false)
	e.originalClauseSizes = append(e.originalClauseSizes, len(literals))
	if len(literals) >= 2 {
		c := e.clauses.Get(id)
		e.watch.Watch(c.Literals[0], id)
		e.watch.Watch(c.Literals[1], id)
	}
	return id
}

// addLearnt installs a learnt clause produced by conflict analysis,
// watching positions 0 and 1 if its size is >= 2 (spec.md §4.5.2).
func (e *Engine) addLearnt(literals []Literal) ClauseID {
	id := e.clauses.Add(literals, true)
	if len(literals) >= 2 {
		c := e.clauses.Get(id)
		c.Activity = 0
		e.watch.Watch(c.Literals[0], id)
		e.watch.Watch(c.Literals[1], id)
	}
	return id
}

// DecisionLevel returns the engine's current decision level.
func (e *Engine) DecisionLevel() int {
	return e.assign.DecisionLevel()
}

// Value returns the current truth value of literal l.
func (e *Engine) Value(l Literal) LBool {
	return e.assign.ValueOf(l)
}

// Enqueue appends l to the trail with the given reason, for use by
// propagators other than SoftwarePropagator (e.g. the hardware bridge's
// host-side reconciliation, spec.md §4.6.4) that derive implications
// outside of Engine's own BCP loop.
func (e *Engine) Enqueue(l Literal, reason ClauseID) {
	e.assign.Enqueue(l, reason)
}

// TrailLen, TrailAt, PropHead and AdvancePropHead expose the trail to
// propagators that need to drive their own scan over pending literals
// instead of Engine's built-in watch-list loop.
func (e *Engine) TrailLen() int           { return e.assign.TrailLen() }
func (e *Engine) TrailAt(i int) Literal   { return e.assign.TrailAt(i) }
func (e *Engine) PropHead() int           { return e.assign.PropHead() }
func (e *Engine) AdvancePropHead()        { e.assign.AdvancePropHead() }

// NumClauses returns the number of clauses (original + learnt) installed so
// far.
func (e *Engine) NumClauses() int {
	return e.clauses.Len()
}

// Clause returns a pointer to the clause with the given ID; see ClauseDB.Get
// for pointer-validity rules.
func (e *Engine) Clause(id ClauseID) *Clause {
	return e.clauses.Get(id)
}

// WatchList returns the watch list of literal l, as currently maintained by
// the software watch index.
func (e *Engine) WatchList(l Literal) []ClauseID {
	return e.watch.List(l)
}

// AddLearnt installs a learnt clause the same way the solver driver does,
// watching positions 0 and 1 if its size is >= 2. The hardware bridge does
// not call it: it uploads learnt clauses from the clause database after the
// driver has installed them.
func (e *Engine) AddLearnt(literals []Literal) ClauseID {
	return e.addLearnt(literals)
}

// BumpVariableActivity bumps VSIDS activity for l's variable.
func (e *Engine) BumpVariableActivity(l Literal) {
	e.vsids.Bump(l.Var())
}

// DecayVariableActivity applies the VSIDS decay step.
func (e *Engine) DecayVariableActivity() {
	e.vsids.Decay()
}
