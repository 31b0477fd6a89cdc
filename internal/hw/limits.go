// Package hw models a cycle-accurate bridge to a hardware BCP accelerator:
// clause/watch-list/assignment memory mirrors, the four-stage elastic
// pipeline (watch-list manager, clause prefetcher, clause evaluator,
// implication FIFO), the top-level control FSM, the host command codec, and
// the host-side reconciliation that makes the bridge implement the same
// sat.Propagator interface as software BCP.
package hw

// Fixed limits (spec.md §6; implementations MAY raise these, never lower).
const (
	MaxVariables    = 512
	MaxClauses      = 8192
	MaxLiteralsPerClause = 5 // K_MAX
	MaxWatchListLen = 100    // WATCH_MAX
	FIFODepth       = 16

	// DefaultCycleBudget is the reference per-round cycle budget (§5);
	// exceeding it without observing `done` is a PipelineDeadlock.
	DefaultCycleBudget = 5000
)

// Assignment encoding on the HW side (§6), distinct from sat.LBool.
type HWValue uint8

const (
	HWUnassigned HWValue = 0
	HWFalse      HWValue = 1
	HWTrue       HWValue = 2
)

// ResultStatus is the clause evaluator's 2-bit result code (§6).
type ResultStatus uint8

const (
	StatusSatisfied  ResultStatus = 0
	StatusUnit       ResultStatus = 1
	StatusConflict   ResultStatus = 2
	StatusUnresolved ResultStatus = 3
)
