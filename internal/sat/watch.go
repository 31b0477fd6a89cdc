package sat

// WatchIndex maps each literal code to the ordered list of clause IDs
// watching it, i.e. clauses whose Literals[0] or Literals[1] equals that
// literal. Grounded on the teacher's Solver.watchers field and
// Watch/Unwatch methods (internal/sat/solver.go), generalized from
// pointer-keyed clauses to ClauseID-keyed clauses.
type WatchIndex struct {
	lists [][]ClauseID
}

// Grow resizes the index to hold numLiteralCodes lists, i.e. literal codes
// 0..numLiteralCodes-1.
func (w *WatchIndex) Grow(numLiteralCodes int) {
	for len(w.lists) < numLiteralCodes {
		w.lists = append(w.lists, nil)
	}
}

// Watch registers clause id on the watch list of literal l.
func (w *WatchIndex) Watch(l Literal, id ClauseID) {
	w.lists[l] = append(w.lists[l], id)
}

// List returns the watch list of literal l.
func (w *WatchIndex) List(l Literal) []ClauseID {
	return w.lists[l]
}

// SetList replaces the watch list of literal l, e.g. after BCP has
// compacted it in place.
func (w *WatchIndex) SetList(l Literal, ids []ClauseID) {
	w.lists[l] = ids
}

// Unwatch removes clause id from the watch list of literal l.
func (w *WatchIndex) Unwatch(l Literal, id ClauseID) {
	list := w.lists[l]
	j := 0
	for i := range list {
		if list[i] != id {
			list[j] = list[i]
			j++
		}
	}
	w.lists[l] = list[:j]
}
