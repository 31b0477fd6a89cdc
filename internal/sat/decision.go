package sat

// PickDecisionVariable returns the unassigned variable with the highest
// VSIDS activity (ties broken by lowest index), or (0, false) if every
// variable is assigned — spec.md §4.4's SAT sentinel.
func (e *Engine) PickDecisionVariable() (int, bool) {
	return e.vsids.PickUnassigned(func(v int) LBool {
		return e.assign.value[v]
	})
}

// Decide pushes a new decision level and enqueues ¬v: spec.md §4.4 always
// decides the FALSE polarity first (the positive literal is chosen as the
// decided literal's negation); no alternative polarity heuristic is
// implemented.
func (e *Engine) Decide(v int) {
	e.assign.PushDecisionLevel()
	e.assign.Enqueue(NewNegativeLiteral(v), NoClause)
}
