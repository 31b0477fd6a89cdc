package sat

// ClauseID is a stable, dense identifier assigned to a clause at insertion
// time. Original clauses are numbered first (in load order), learnt clauses
// are appended afterwards. Reasons are stored as ClauseIDs rather than
// pointers so that they match the hardware model's representation exactly
// (see DESIGN.md, "Cyclic references").
type ClauseID int32

// NoClause is the sentinel reason for a decided or root-propagated literal.
const NoClause ClauseID = -1

// Clause is an ordered list of literal codes. For clauses of size >= 2,
// positions 0 and 1 are the two watched literals (see the watched-literal
// invariant in spec.md §3). Clauses never shrink or grow after insertion;
// conflict analysis and propagation only ever permute Literals.
type Clause struct {
	Literals []Literal
	Learnt   bool

	// Activity and IsProtected are bookkeeping the teacher's clause database
	// keeps for a learnt-clause reduction pass. This design never runs one
	// (spec.md §3: "learnt clauses ... never removed"). Conflict analysis
	// bumps Activity of learnt clauses it resolves on; IsProtected is never
	// set. Neither field is read to drive deletion.
	Activity    float64
	IsProtected bool
}

// Size returns the number of literals in the clause.
func (c *Clause) Size() int {
	return len(c.Literals)
}

// Watched reports whether the clause participates in the watched-literal
// scheme (size 0 and size 1 clauses have no watchers per spec.md §3).
func (c *Clause) Watched() bool {
	return len(c.Literals) >= 2
}
