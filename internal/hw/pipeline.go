package hw

// Implication is one UNIT result popped from the implication FIFO: the
// variable to assign, the value to assign it to, and the clause that forced
// it (§6 response 0xB0).
type Implication struct {
	Var    uint16
	Value  HWValue
	Reason uint16
}

// WatchListManager issues the pipelined reads idx=0..len-1 for a false
// literal's watch list (§4.6.2 stage 1). Real hardware prefetches to hide
// the memory's 2-cycle latency; this model issues the whole list at once
// and charges the fixed latency once, which is cycle-accurate for the
// quantity that matters here (total round cycles), without simulating each
// individual memory beat.
type WatchListManager struct {
	mem *WatchListMemory
}

func NewWatchListManager(mem *WatchListMemory) *WatchListManager {
	return &WatchListManager{mem: mem}
}

// Scan returns the clause IDs watching falseLit and the cycle cost of
// discovering and streaming them.
func (w *WatchListManager) Scan(falseLit uint16) (ids []uint16, cycles int) {
	list := w.mem.List(falseLit)
	ids = make([]uint16, len(list))
	copy(ids, list)
	// ReadLatencyCycles to read the length bank, plus one cycle per emitted
	// clause ID once the pipeline is filled (§4.6.2: "emits clause IDs one
	// per cycle when downstream is ready").
	cycles = ReadLatencyCycles
	if len(ids) > 0 {
		cycles += len(ids)
	}
	return ids, cycles
}

// ClausePrefetcher issues a clause-memory read for a clause ID (§4.6.2
// stage 2). The real design buffers up to 2 in-flight reads in a skid
// buffer so WLM never stalls on prefetcher backpressure under normal
// occupancy; this model charges the fixed 2-cycle clause-memory latency per
// clause, which is the quantity skid-buffering is designed to hide from the
// *evaluator*, not eliminate from the total round cost.
type ClausePrefetcher struct {
	mem *ClauseMemory
}

func NewClausePrefetcher(mem *ClauseMemory) *ClausePrefetcher {
	return &ClausePrefetcher{mem: mem}
}

func (p *ClausePrefetcher) Fetch(cid uint16) (ClauseRecord, int) {
	return p.mem.Read(cid), ReadLatencyCycles
}

// ClauseEvaluator scans a clause's literals against the assignment memory
// snapshot and classifies the result (§4.6.2 stage 3).
type ClauseEvaluator struct {
	assign *AssignmentMemory
}

func NewClauseEvaluator(assign *AssignmentMemory) *ClauseEvaluator {
	return &ClauseEvaluator{assign: assign}
}

// Evaluate returns the result status, the implied variable/value if status
// is StatusUnit, and the cycle cost: 2 cycles if the sat hint short-circuits
// the scan, else one cycle per literal read (size cycles).
func (e *ClauseEvaluator) Evaluate(rec ClauseRecord) (status ResultStatus, impliedVar uint16, impliedVal HWValue, cycles int) {
	if rec.Sat {
		return StatusSatisfied, 0, 0, 2
	}

	size := int(rec.Size)
	unassignedCount := 0
	var lastUnassignedVar uint16
	var lastUnassignedVal HWValue

	for i := 0; i < size; i++ {
		litCode := rec.Literals[i]
		v := litCode / 2
		negative := litCode%2 == 1

		val := e.assign.Read(v)
		switch val {
		case HWUnassigned:
			unassignedCount++
			lastUnassignedVar = v
			if negative {
				lastUnassignedVal = HWFalse
			} else {
				lastUnassignedVal = HWTrue
			}
		case HWTrue:
			if !negative {
				return StatusSatisfied, 0, 0, size
			}
		case HWFalse:
			if negative {
				return StatusSatisfied, 0, 0, size
			}
		}
	}

	switch unassignedCount {
	case 0:
		return StatusConflict, 0, 0, size
	case 1:
		return StatusUnit, lastUnassignedVar, lastUnassignedVal, size
	default:
		return StatusUnresolved, 0, 0, size
	}
}

// ImplicationFIFO buffers UNIT results between the evaluator and the host
// (§4.6.2 stage 4). Depth FIFODepth; pushing to a full FIFO asserts
// pipeline_stall upstream rather than overflowing.
type ImplicationFIFO struct {
	entries []Implication
}

func NewImplicationFIFO() *ImplicationFIFO {
	return &ImplicationFIFO{entries: make([]Implication, 0, FIFODepth)}
}

func (f *ImplicationFIFO) Full() bool {
	return len(f.entries) >= FIFODepth
}

func (f *ImplicationFIFO) Push(imp Implication) bool {
	if f.Full() {
		return false
	}
	f.entries = append(f.entries, imp)
	return true
}

func (f *ImplicationFIFO) Pop() (Implication, bool) {
	if len(f.entries) == 0 {
		return Implication{}, false
	}
	imp := f.entries[0]
	f.entries = f.entries[1:]
	return imp, true
}

func (f *ImplicationFIFO) Len() int {
	return len(f.entries)
}
