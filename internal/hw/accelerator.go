package hw

import "fmt"

// FSMState is the top-level control state (§4.6.3): IDLE -> ACTIVE -> DONE
// -> IDLE.
type FSMState int

const (
	StateIdle FSMState = iota
	StateActive
	StateDone
)

func (s FSMState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateActive:
		return "ACTIVE"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// DeadlockError reports that a BCP round did not complete within its cycle
// budget (§7 PipelineDeadlock). It carries the diagnostic state §7
// recommends: the in-flight counter and FSM state at the point of timeout.
type DeadlockError struct {
	Budget     int
	CyclesUsed int
	InFlight   int
	State      FSMState
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("hw: pipeline deadlock: %d cycles used against a budget of %d (in_flight=%d, state=%s)",
		e.CyclesUsed, e.Budget, e.InFlight, e.State)
}

// RoundResult is the outcome of one BCP round (§6): zero or more
// implications in FIFO order, followed by exactly one terminator.
type RoundResult struct {
	Implications     []Implication
	Conflict         bool
	ConflictClauseID uint16
	Cycles           int
}

// Accelerator is the cycle-accurate model of the full BCP pipeline: the
// three memory mirrors plus the four pipeline stages, composed the way
// BCPAccelerator wires WatchListManager -> ClausePrefetcher ->
// ClauseEvaluator -> ImplicationFIFO (§4.6.2), driven through the top-level
// FSM (§4.6.3).
type Accelerator struct {
	ClauseMem *ClauseMemory
	WatchMem  *WatchListMemory
	AssignMem *AssignmentMemory

	wlm   *WatchListManager
	pre   *ClausePrefetcher
	eval  *ClauseEvaluator
	fifo  *ImplicationFIFO
	state FSMState

	// CycleBudget bounds a single round (§5); exceeding it without
	// observing done is a PipelineDeadlock. Defaults to DefaultCycleBudget.
	CycleBudget int
}

func NewAccelerator() *Accelerator {
	clauseMem := &ClauseMemory{}
	watchMem := NewWatchListMemory()
	assignMem := &AssignmentMemory{}
	return &Accelerator{
		ClauseMem:   clauseMem,
		WatchMem:    watchMem,
		AssignMem:   assignMem,
		wlm:         NewWatchListManager(watchMem),
		pre:         NewClausePrefetcher(clauseMem),
		eval:        NewClauseEvaluator(assignMem),
		fifo:        NewImplicationFIFO(),
		state:       StateIdle,
		CycleBudget: DefaultCycleBudget,
	}
}

// State returns the FSM's current state, for diagnostics.
func (a *Accelerator) State() FSMState {
	return a.state
}

// Reset clears the FSM and latches (§6 RESET_STATE), the host's emergency
// recovery path; memory contents are untouched.
func (a *Accelerator) Reset() {
	a.state = StateIdle
	a.fifo = NewImplicationFIFO()
}

// Start runs one complete BCP round for falseLit to completion (fsm_starting
// resets the in-flight counter, conflict latch, and WLM-done latch; ACTIVE
// processes the watch list; DONE is reached on conflict or drain) and
// returns the round's implications/terminator, or a DeadlockError if the
// cycle budget is exhausted first.
//
// The pipeline stages are modeled as sequential Go calls rather than a
// clocked signal simulator: each stage still contributes the cycle cost
// §4.6.1/§4.6.2 specify (2-cycle memory reads, one evaluator cycle per
// literal, one FIFO entry per cycle), so round-trip cycle counts and the
// conflict/implication contract match the clocked design, even though nothing
// here is literally ticked.
func (a *Accelerator) Start(falseLit uint16) (*RoundResult, error) {
	budget := a.CycleBudget
	if budget <= 0 {
		budget = DefaultCycleBudget
	}

	a.state = StateActive
	inFlight := 0

	ids, cycles := a.wlm.Scan(falseLit)
	result := &RoundResult{Implications: make([]Implication, 0, len(ids))}

	for _, cid := range ids {
		if cycles > budget {
			a.state = StateDone
			return nil, &DeadlockError{Budget: budget, CyclesUsed: cycles, InFlight: inFlight, State: a.state}
		}

		rec, fetchCycles := a.pre.Fetch(cid)
		cycles += fetchCycles
		inFlight++

		status, impliedVar, impliedVal, evalCycles := a.eval.Evaluate(rec)
		cycles += evalCycles
		inFlight--

		switch status {
		case StatusConflict:
			// Drain implications already queued from clauses processed
			// before this one (§4.6.4 item 2): they are correct
			// derivations under the pre-round assignment snapshot and
			// must still be surfaced to the host.
			for {
				imp, ok := a.fifo.Pop()
				if !ok {
					break
				}
				result.Implications = append(result.Implications, imp)
				cycles++
			}
			result.Conflict = true
			result.ConflictClauseID = cid
			result.Cycles = cycles
			a.state = StateDone
			return result, nil
		case StatusUnit:
			if a.fifo.Full() {
				// pipeline_stall: implementations backpressure WLM here; in
				// this sequential model there is nothing upstream still
				// running, so a full FIFO at this point means the round
				// genuinely cannot make progress within FIFODepth.
				a.state = StateDone
				return nil, &DeadlockError{Budget: budget, CyclesUsed: cycles, InFlight: inFlight, State: a.state}
			}
			a.fifo.Push(Implication{Var: impliedVar, Value: impliedVal, Reason: cid})
		case StatusSatisfied, StatusUnresolved:
			// no FIFO entry
		}
	}

	for {
		imp, ok := a.fifo.Pop()
		if !ok {
			break
		}
		result.Implications = append(result.Implications, imp)
		cycles++
	}

	result.Cycles = cycles
	a.state = StateDone
	return result, nil
}

// Done transitions DONE -> IDLE, mirroring the host's conflict_ack /
// implicit ack after a no-conflict round (§4.6.3).
func (a *Accelerator) Done() {
	a.state = StateIdle
}
