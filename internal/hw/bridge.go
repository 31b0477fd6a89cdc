package hw

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kjellberg/satforge/internal/sat"
)

// ResourceExceededError reports that a formula exceeds a fixed hardware
// limit (§7 ResourceExceeded). Reported before any HW interaction; the
// caller may fall back to software-only mode or abort.
type ResourceExceededError struct {
	Limit string
	Got   int
	Max   int
}

func (e *ResourceExceededError) Error() string {
	return fmt.Sprintf("hw: resource exceeded: %s is %d, limit is %d", e.Limit, e.Got, e.Max)
}

// Bridge implements sat.Propagator against the Accelerator model, performing
// the host-side reconciliation spec.md §4.6.4 requires: it is the only
// component in this module that knows both the software trail/watch
// representation and the hardware wire/memory representation.
//
// Bridge is stateful across calls to Propagate: it lazily uploads the whole
// formula to hardware memory on first use, uploads newly learnt clauses as
// they appear, and mirrors backtrack-caused unassignments down to hardware
// memory before each round. This mirrors the structure of
// HWBCPSimulator._run_solve/_hw_init/_hw_sync_assigns in the reference
// implementation this design is grounded on, restated as a Propagator
// instead of a bespoke solve loop.
type Bridge struct {
	Accel *Accelerator
	log   *logrus.Logger

	initialized     bool
	uploadedClauses int
	hwValue         map[int]HWValue // shadow of hardware assignment memory, keyed by variable

	// round-level diagnostics, reported to sat.Solver.Stats via HWStats.
	hwRounds         int64
	hwCycles         int64
	hwConflictsFound int64
}

// HWStats implements sat.HWStatsReporter.
func (b *Bridge) HWStats() (rounds, cycles, conflictsFound int64) {
	return b.hwRounds, b.hwCycles, b.hwConflictsFound
}

// NewBridge returns a Bridge around a fresh Accelerator.
func NewBridge(logger *logrus.Logger) *Bridge {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Bridge{
		Accel:   NewAccelerator(),
		log:     logger,
		hwValue: make(map[int]HWValue),
	}
}

// CheckLimits verifies a formula's variable and clause counts against
// MaxVariables and MaxClauses before any HW interaction (§7
// ResourceExceeded). Clause length (MaxLiteralsPerClause) and watch-list
// length (MaxWatchListLen) are not checked.
func CheckLimits(numVars, numClauses int) error {
	if numVars > MaxVariables {
		return &ResourceExceededError{Limit: "variables", Got: numVars, Max: MaxVariables}
	}
	if numClauses > MaxClauses {
		return &ResourceExceededError{Limit: "clauses", Got: numClauses, Max: MaxClauses}
	}
	return nil
}

func literalToHWAssign(l sat.Literal) HWValue {
	if l.IsNegative() {
		return HWFalse
	}
	return HWTrue
}

func encodeClauseRecord(c *sat.Clause) ClauseRecord {
	var rec ClauseRecord
	size := c.Size()
	if size > MaxLiteralsPerClause {
		size = MaxLiteralsPerClause
	}
	rec.Size = uint8(size)
	for i := 0; i < size; i++ {
		rec.Literals[i] = uint16(c.Literals[i])
	}
	return rec
}

// writeAssign mirrors one variable's current engine value down to hardware
// assignment memory, updating the shadow map used to detect resyncs.
func (b *Bridge) writeAssign(eng *sat.Engine, v int) {
	val := eng.Value(sat.NewPositiveLiteral(v))
	var hwVal HWValue
	switch val {
	case sat.True:
		hwVal = HWTrue
	case sat.False:
		hwVal = HWFalse
	default:
		hwVal = HWUnassigned
	}
	b.Accel.AssignMem.Write(uint16(v), hwVal)
	b.hwValue[v] = hwVal
}

// init uploads every original and learnt clause, every watch list, and the
// current assignment state to hardware memory (HWBCPSimulator._hw_init).
func (b *Bridge) init(eng *sat.Engine) {
	for id := 0; id < eng.NumClauses(); id++ {
		c := eng.Clause(sat.ClauseID(id))
		b.Accel.ClauseMem.Write(uint16(id), encodeClauseRecord(c))
	}
	for v := 1; v <= eng.NumVariables(); v++ {
		for _, lit := range []sat.Literal{sat.NewPositiveLiteral(v), sat.NewNegativeLiteral(v)} {
			list := eng.WatchList(lit)
			b.Accel.WatchMem.SetLength(uint16(lit), uint8(len(list)))
			for idx, cid := range list {
				b.Accel.WatchMem.SetEntry(uint16(lit), uint8(idx), uint16(cid))
			}
		}
		b.writeAssign(eng, v)
	}
	b.uploadedClauses = eng.NumClauses()
	b.initialized = true
}

// uploadNewClauses uploads any clauses appended since the last sync and
// their two watched literals' watch lists (HWBCPSimulator._hw_upload_learnt).
func (b *Bridge) uploadNewClauses(eng *sat.Engine) {
	for id := b.uploadedClauses; id < eng.NumClauses(); id++ {
		c := eng.Clause(sat.ClauseID(id))
		b.Accel.ClauseMem.Write(uint16(id), encodeClauseRecord(c))
		if c.Size() >= 2 {
			for w := 0; w < 2; w++ {
				lit := c.Literals[w]
				list := eng.WatchList(lit)
				b.Accel.WatchMem.SetLength(uint16(lit), uint8(len(list)))
				for idx, cid := range list {
					b.Accel.WatchMem.SetEntry(uint16(lit), uint8(idx), uint16(cid))
				}
			}
		}
	}
	b.uploadedClauses = eng.NumClauses()
}

// syncUnassigned writes HWUnassigned for every variable the shadow map
// believes is still assigned in hardware but the engine now reports
// Unassigned, i.e. variables backtrack unwound since the last round
// (HWBCPSimulator._hw_sync_assigns).
func (b *Bridge) syncUnassigned(eng *sat.Engine) {
	for v := 1; v <= eng.NumVariables(); v++ {
		if eng.Value(sat.NewPositiveLiteral(v)) == sat.Unassigned && b.hwValue[v] != HWUnassigned {
			b.Accel.AssignMem.Write(uint16(v), HWUnassigned)
			b.hwValue[v] = HWUnassigned
		}
	}
}

// Propagate implements sat.Propagator. It drains the engine's pending trail
// through the hardware accelerator one literal at a time, reconciling every
// implication the hardware reports back into the software trail per
// spec.md §4.6.4, and returns the first conflict (hardware-detected or
// reconciliation-detected) exactly as SoftwarePropagator would.
func (b *Bridge) Propagate(eng *sat.Engine) (sat.ClauseID, bool) {
	if !b.initialized {
		b.init(eng)
	} else {
		b.uploadNewClauses(eng)
	}
	b.syncUnassigned(eng)

	for eng.PropHead() < eng.TrailLen() {
		trueLit := eng.TrailAt(eng.PropHead())
		eng.AdvancePropHead()
		falseLit := trueLit.Negate()
		// Decisions and learnt-clause assertions reach the trail without
		// passing through this bridge; mirror the literal being propagated
		// so the accelerator sees it as assigned.
		b.writeAssign(eng, trueLit.Var())

		round, err := b.Accel.Start(uint16(falseLit))
		if err != nil {
			// PipelineDeadlock (§7): fatal, never surfaced as a normal
			// solve result.
			panic(errors.Wrap(err, "hw bridge: BCP round failed"))
		}
		b.Accel.Done()

		b.hwRounds++
		b.hwCycles += int64(round.Cycles)
		if round.Conflict {
			b.hwConflictsFound++
		}

		swConflict := sat.NoClause
		for _, imp := range round.Implications {
			v := int(imp.Var)
			lit := sat.NewPositiveLiteral(v)
			if imp.Value == HWFalse {
				lit = sat.NewNegativeLiteral(v)
			}

			current := eng.Value(sat.NewPositiveLiteral(v))
			if current == sat.Unassigned {
				eng.Enqueue(lit, sat.ClauseID(imp.Reason))
				b.writeAssign(eng, v)
				continue
			}

			expected := sat.False
			if imp.Value == HWTrue {
				expected = sat.True
			}
			if current != expected && swConflict == sat.NoClause {
				// Missed conflict (§4.6.4 item 1): the hardware evaluated
				// this clause against a stale snapshot that didn't yet
				// reflect an earlier implication in this same round.
				swConflict = sat.ClauseID(imp.Reason)
			}
		}

		if round.Conflict {
			b.log.WithFields(logrus.Fields{
				"clause": round.ConflictClauseID,
				"cycles": round.Cycles,
			}).Debug("hardware conflict")
			return sat.ClauseID(round.ConflictClauseID), true
		}
		if swConflict != sat.NoClause {
			b.log.WithFields(logrus.Fields{
				"clause": swConflict,
			}).Debug("reconciliation-detected conflict")
			return swConflict, true
		}
	}

	return sat.NoClause, false
}
