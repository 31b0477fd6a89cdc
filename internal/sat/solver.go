package sat

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Status is the outcome of a solve. FormulaUnsat is a plain sentinel value
// returned through this type, never wrapped as an error: SPEC_FULL.md §2
// classifies it as a non-exceptional return, on the same footing as SAT.
type Status int

const (
	StatusUnknown Status = iota
	StatusSAT
	StatusUNSAT
)

func (s Status) String() string {
	switch s {
	case StatusSAT:
		return "SATISFIABLE"
	case StatusUNSAT:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Options configures a Solver, in the teacher's Options/DefaultOptions
// style, extended with the propagation-strategy selector and a logger. The
// HW bridge's cycle budget is hw.Accelerator.CycleBudget and its fixed
// limits are constants in internal/hw; neither is set through Options.
type Options struct {
	// VSIDSDecay is the VSIDS activity decay factor, applied once per
	// conflict.
	VSIDSDecay float64

	// Propagator selects software or hardware-bridge BCP. Defaults to
	// SoftwarePropagator when nil.
	Propagator Propagator

	// Logger receives structured diagnostics. Defaults to logrus.StandardLogger().
	Logger *logrus.Logger
}

// DefaultOptions returns the options used by NewDefaultSolver.
func DefaultOptions() Options {
	return Options{
		VSIDSDecay: 0.95,
		Propagator: SoftwarePropagator{},
		Logger:     logrus.StandardLogger(),
	}
}

// Solver drives the CDCL loop (spec.md §4.5) over an Engine, dispatching
// propagation to whatever Propagator the Options selected.
type Solver struct {
	engine *Engine
	prop   Propagator
	log    *logrus.Logger
	stats  Stats
	ema    EMA

	// unsat is latched true once the preflight pass or the main loop proves
	// the formula unsatisfiable at decision level 0; further Solve calls are
	// short-circuited.
	unsat bool
}

// NewSolver returns a Solver configured by opts, filling in defaults for any
// zero-valued field the way the teacher's NewSolver(Options) does.
func NewSolver(opts Options) *Solver {
	if opts.VSIDSDecay == 0 {
		opts.VSIDSDecay = 0.95
	}
	if opts.Propagator == nil {
		opts.Propagator = SoftwarePropagator{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Solver{
		engine: NewEngine(opts.VSIDSDecay),
		prop:   opts.Propagator,
		log:    opts.Logger,
		ema:    NewEMA(0.999),
	}
}

// NewDefaultSolver returns a Solver with DefaultOptions(), mirroring the
// teacher's sat.NewDefaultSolver entry point.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions())
}

// Engine exposes the underlying engine, e.g. for internal/xref to read the
// final model or for internal/hw to size its memory mirrors.
func (s *Solver) Engine() *Engine {
	return s.engine
}

// Stats returns a snapshot of diagnostic counters, merging in hardware
// round/cycle/conflict counters when the configured Propagator tracks them.
func (s *Solver) Stats() Stats {
	st := s.stats
	st.AvgLearntSize = s.ema.Val()
	if r, ok := s.prop.(HWStatsReporter); ok {
		st.HWRounds, st.HWCycles, st.HWConflictsFound = r.HWStats()
	}
	return st
}

// NewVariable declares a new variable, returning its 1-indexed ID.
func (s *Solver) NewVariable() int {
	return s.engine.AddVariable()
}

// AddClause installs an original clause. literals must already use this
// package's Literal encoding (spec.md §3.1).
func (s *Solver) AddClause(literals []Literal) {
	s.engine.AddClause(literals)
}

// Solve runs preflight then the main CDCL loop to completion (spec.md §4.5).
func (s *Solver) Solve() Status {
	if s.unsat {
		return StatusUNSAT
	}
	if !s.preflight() {
		s.unsat = true
		return StatusUNSAT
	}
	status := s.loop()
	if status == StatusUNSAT {
		s.unsat = true
	}
	return status
}

// preflight scans original clauses by their as-submitted size (spec.md
// §4.5.1): a size-0 clause is immediately UNSAT; a size-1 clause either
// enqueues its literal as a decision-level-0 fact or, if already falsified,
// proves UNSAT. Returns false on UNSAT.
func (s *Solver) preflight() bool {
	e := s.engine
	for id := ClauseID(0); int(id) < len(s.engine.originalClauseSizes); id++ {
		size := s.engine.originalClauseSizes[id]
		switch size {
		case 0:
			s.log.WithFields(logrus.Fields{"clause": id}).Warn("empty original clause")
			return false
		case 1:
			lit := e.clauses.Get(id).Literals[0]
			switch e.Value(lit) {
			case False:
				return false
			case Unassigned:
				e.assign.Enqueue(lit, id)
			case True:
				// already satisfied, nothing to do
			}
		}
	}
	return true
}

// loop is the main CDCL driver: propagate, and on conflict analyze + learn +
// backtrack, or else decide a new variable; returns SAT once every variable
// is assigned.
func (s *Solver) loop() Status {
	e := s.engine
	for {
		before := e.TrailLen()
		conflict, ok := s.prop.Propagate(e)
		s.stats.Propagations += int64(e.TrailLen() - before)
		if ok {
			s.stats.Conflicts++
			if e.DecisionLevel() == 0 {
				return StatusUNSAT
			}

			learnt, backtrackLevel := e.Analyze(conflict)
			e.Backtrack(backtrackLevel)
			s.ema.Add(float64(len(learnt)))

			switch len(learnt) {
			case 0:
				// unreachable: Analyze always produces at least the UIP literal.
				panic(errors.New("empty learnt clause"))
			case 1:
				e.assign.Enqueue(learnt[0], NoClause)
			default:
				id := e.addLearnt(learnt)
				s.stats.LearntClauses++
				e.assign.Enqueue(learnt[0], id)
			}
			continue
		}

		v, ok := e.PickDecisionVariable()
		if !ok {
			return StatusSAT
		}
		s.stats.Decisions++
		e.Decide(v)
	}
}

// Model returns the current satisfying assignment as a slice indexed by
// variable (index 0 unused), valid only after Solve returns StatusSAT.
func (s *Solver) Model() []LBool {
	e := s.engine
	model := make([]LBool, e.numVars+1)
	copy(model, e.assign.value)
	return model
}

// NextModel blocks the current model with a clause forbidding it and solves
// again, enumerating all satisfying assignments. It is a test/cross-
// validation helper, lifted from the teacher's yass_test.go solveAll helper
// (SPEC_FULL.md §4), not part of the core driver.
func (s *Solver) NextModel() Status {
	model := s.Model()
	block := make([]Literal, 0, s.engine.numVars)
	for v := 1; v <= s.engine.numVars; v++ {
		switch model[v] {
		case True:
			block = append(block, NewNegativeLiteral(v))
		case False:
			block = append(block, NewPositiveLiteral(v))
		}
	}
	s.engine.Backtrack(0)
	s.AddClause(block)
	return s.Solve()
}
