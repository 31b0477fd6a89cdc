package sat

// ClauseDB is the append-only store of original and learnt clauses. Original
// clauses are inserted during formula load and are immutable thereafter
// (their literal order may still be permuted by propagation to maintain the
// watched-literal invariant). Learnt clauses are appended on every conflict
// and are never removed by this design.
type ClauseDB struct {
	clauses []Clause
}

// Add appends a new clause and returns its stable ID.
func (db *ClauseDB) Add(literals []Literal, learnt bool) ClauseID {
	id := ClauseID(len(db.clauses))
	lits := make([]Literal, len(literals))
	copy(lits, literals)
	db.clauses = append(db.clauses, Clause{
		Literals: lits,
		Learnt:   learnt,
	})
	return id
}

// Get returns a pointer to the clause with the given ID. The pointer is
// only valid until the next call to Add, which may grow the backing array;
// callers must not retain it across an Add call.
func (db *ClauseDB) Get(id ClauseID) *Clause {
	return &db.clauses[id]
}

// Len returns the number of clauses (original + learnt) in the database.
func (db *ClauseDB) Len() int {
	return len(db.clauses)
}

// NumLearnt returns the number of learnt clauses appended so far.
func (db *ClauseDB) NumLearnt() int {
	n := 0
	for i := range db.clauses {
		if db.clauses[i].Learnt {
			n++
		}
	}
	return n
}
