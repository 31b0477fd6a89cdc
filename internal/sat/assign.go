package sat

// Assignment holds the per-variable value/level/reason arrays together with
// the propagation trail. Grounded on the teacher's trail fields
// (assigns, level, reason, trail, trailLim in internal/sat/solver.go),
// adapted to the spec's explicit prop_head index and ClauseID reasons.
type Assignment struct {
	value  []LBool   // indexed by variable, 1..numVars
	level  []int     // decision level the variable was assigned at
	reason []ClauseID // NoClause for decisions and root-propagated units

	trail      []Literal
	trailDelim []int // trail length at the moment each decision level was pushed
	propHead   int   // index partitioning "already propagated" from "pending"
}

// NewAssignment returns an assignment state sized for variables 1..numVars.
func NewAssignment(numVars int) *Assignment {
	a := &Assignment{
		value:  make([]LBool, numVars+1),
		level:  make([]int, numVars+1),
		reason: make([]ClauseID, numVars+1),
	}
	for v := range a.reason {
		a.reason[v] = NoClause
		a.level[v] = -1
	}
	return a
}

// Grow extends the assignment arrays to cover a newly added variable.
func (a *Assignment) Grow() {
	a.value = append(a.value, Unassigned)
	a.level = append(a.level, -1)
	a.reason = append(a.reason, NoClause)
}

// DecisionLevel returns the current decision level (0 is root).
func (a *Assignment) DecisionLevel() int {
	return len(a.trailDelim)
}

// ValueOf returns the current value of literal l, lifted through polarity.
func (a *Assignment) ValueOf(l Literal) LBool {
	v := a.value[l.Var()]
	if v == Unassigned {
		return Unassigned
	}
	if l.IsNegative() {
		return v.Opposite()
	}
	return v
}

// LevelOf returns the decision level of l's variable (-1 if unassigned).
func (a *Assignment) LevelOf(l Literal) int {
	return a.level[l.Var()]
}

// ReasonOf returns the reason clause of l's variable.
func (a *Assignment) ReasonOf(l Literal) ClauseID {
	return a.reason[l.Var()]
}

// TrailLen returns the number of literals currently on the trail.
func (a *Assignment) TrailLen() int {
	return len(a.trail)
}

// TrailAt returns the literal at trail position i.
func (a *Assignment) TrailAt(i int) Literal {
	return a.trail[i]
}

// PropHead returns the index of the next pending (unpropagated) literal.
func (a *Assignment) PropHead() int {
	return a.propHead
}

// AdvancePropHead marks the next pending trail literal as propagated.
func (a *Assignment) AdvancePropHead() {
	a.propHead++
}

// PushDecisionLevel records a new per-level delimiter at the current trail
// length and increments the decision level.
func (a *Assignment) PushDecisionLevel() {
	a.trailDelim = append(a.trailDelim, len(a.trail))
}

// Enqueue appends literal l to the trail with the given reason, making l
// True (and its negation False) at the current decision level. The caller must have already established that l is
// Unassigned.
func (a *Assignment) Enqueue(l Literal, reason ClauseID) {
	v := l.Var()
	val := True
	if l.IsNegative() {
		val = False
	}
	a.value[v] = val
	a.level[v] = a.DecisionLevel()
	a.reason[v] = reason
	a.trail = append(a.trail, l)
}

// UndoOne pops the most recent trail literal and resets its variable.
func (a *Assignment) UndoOne() Literal {
	l := a.trail[len(a.trail)-1]
	v := l.Var()
	a.value[v] = Unassigned
	a.level[v] = -1
	a.reason[v] = NoClause
	a.trail = a.trail[:len(a.trail)-1]
	return l
}

// TruncateLevels drops per-level delimiters above ℓ, returning the trail
// length that level ℓ+1 started at (i.e. the target trail length after
// backtracking), or len(trail) if ℓ is already the current level.
func (a *Assignment) TruncateLevels(level int) int {
	if level >= a.DecisionLevel() {
		return len(a.trail)
	}
	target := a.trailDelim[level]
	a.trailDelim = a.trailDelim[:level]
	return target
}
