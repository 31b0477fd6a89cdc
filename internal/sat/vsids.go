package sat

import (
	"github.com/rhartert/yagh"
)

// rescaleThreshold and rescaleFactor implement the VSIDS rescale rule from
// spec.md §4.4: when any activity exceeds 1e100, multiply all activities
// (and the increment) by 1e-100 to keep them in range without disturbing
// their relative order.
const rescaleThreshold = 1e100
const rescaleFactor = 1e-100

// VSIDS maintains per-variable activity and a priority heap over unassigned
// variables. Grounded on the teacher's VarOrder (internal/sat/ordering.go),
// minus phase saving: spec.md §4.4 mandates the decided literal is always
// the negative (FALSE) polarity, so no phase state is kept.
type VSIDS struct {
	heap       *yagh.IntMap[float64]
	activity   []float64 // activity[0] unused, variables are 1-indexed
	increment  float64
	decayFactor float64
}

// NewVSIDS returns an empty VSIDS heap using the given decay factor
// (reference value 0.95 per spec.md §4.4).
func NewVSIDS(decayFactor float64) *VSIDS {
	return &VSIDS{
		heap:        yagh.New[float64](0),
		activity:    []float64{0}, // slot 0 reserved, unused
		increment:   1,
		decayFactor: decayFactor,
	}
}

// AddVariable registers a new variable with zero activity.
func (vs *VSIDS) AddVariable(v int) {
	for len(vs.activity) <= v {
		vs.activity = append(vs.activity, 0)
	}
	vs.heap.GrowBy(1)
	vs.heap.Put(v, 0)
}

// Bump increases v's activity by the current increment, rescaling all
// activities if the threshold is exceeded.
func (vs *VSIDS) Bump(v int) {
	vs.activity[v] += vs.increment
	if vs.heap.Contains(v) {
		vs.heap.Put(v, -vs.activity[v])
	}
	if vs.activity[v] > rescaleThreshold {
		vs.rescale()
	}
}

// Decay shrinks the effective weight of past bumps by growing the
// increment (equivalent to, but cheaper than, decaying every activity).
func (vs *VSIDS) Decay() {
	vs.increment /= vs.decayFactor
	if vs.increment > rescaleThreshold {
		vs.rescale()
	}
}

func (vs *VSIDS) rescale() {
	vs.increment *= rescaleFactor
	for v := 1; v < len(vs.activity); v++ {
		vs.activity[v] *= rescaleFactor
		if vs.heap.Contains(v) {
			vs.heap.Put(v, -vs.activity[v])
		}
	}
}

// Reinsert puts v back into the candidate set, called on backtrack. Popping
// a variable out of the heap (PickUnassigned) is what takes it out of the
// candidate set; there is no separate removal step.
func (vs *VSIDS) Reinsert(v int) {
	vs.heap.Put(v, -vs.activity[v])
}

// PickUnassigned returns the unassigned variable of maximum activity (ties
// broken by lowest index, via the heap's insertion order), along with ok;
// ok is false iff every variable is assigned.
func (vs *VSIDS) PickUnassigned(value func(v int) LBool) (int, bool) {
	for {
		entry, ok := vs.heap.Pop()
		if !ok {
			return 0, false
		}
		if value(entry.Elem) != Unassigned {
			continue // stale heap entry: variable was assigned without Remove
		}
		return entry.Elem, true
	}
}
