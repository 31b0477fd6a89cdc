// Package sat implements the software side of the CDCL engine: literal
// encoding, the clause database, the watch index, the assignment trail,
// VSIDS, two-watched-literal propagation, first-UIP conflict analysis, and
// the top-level solver driver.
package sat

import "fmt"

// Literal is the internal unsigned code for a signed DIMACS literal. For a
// variable v >= 1, the positive literal has code 2v and the negative literal
// has code 2v+1; the low bit carries polarity (0 positive, 1 negative) and
// the remaining bits carry the variable index. Codes 0 and 1 correspond to
// variable 0 and are never produced by NewPositiveLiteral/NewNegativeLiteral.
type Literal uint16

// NewPositiveLiteral returns the positive literal of variable v.
func NewPositiveLiteral(v int) Literal {
	return Literal(2 * v)
}

// NewNegativeLiteral returns the negative literal of variable v.
func NewNegativeLiteral(v int) Literal {
	return Literal(2*v + 1)
}

// Var returns the variable index encoded by l.
func (l Literal) Var() int {
	return int(l) >> 1
}

// IsNegative reports whether l is the negated form of its variable.
func (l Literal) IsNegative() bool {
	return l&1 == 1
}

// Negate returns the opposite literal (same variable, flipped polarity).
func (l Literal) Negate() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsNegative() {
		return fmt.Sprintf("-%d", l.Var())
	}
	return fmt.Sprintf("%d", l.Var())
}
