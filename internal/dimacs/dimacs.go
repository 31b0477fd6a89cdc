// Package dimacs loads DIMACS CNF files into a solver. DIMACS parsing is an
// out-of-scope collaborator (spec.md treats it only by its interface): this
// package is a thin adapter around the external github.com/rhartert/dimacs
// reader, in the teacher's parsers.LoadDIMACS/ReadModels style.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/kjellberg/satforge/internal/sat"
)

// Writer is the subset of *sat.Solver this package needs to instantiate a
// parsed formula, kept as an interface so tests can substitute a fake.
type Writer interface {
	NewVariable() int
	AddClause([]sat.Literal)
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Load parses the DIMACS CNF file at filename and installs its variables
// and clauses into w.
func Load(filename string, gzipped bool, w Writer) error {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &builder{w: w}
	return extdimacs.ReadBuilder(rc, b)
}

// builder adapts Writer to the external package's Builder interface,
// translating 1-indexed signed DIMACS literals directly into this module's
// internal encoding (spec.md §3: variables are already 1-indexed, so no
// shift is needed the way the teacher's 0-indexed scheme requires).
type builder struct {
	w Writer
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.w.NewVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NewNegativeLiteral(-l)
		} else {
			clause[i] = sat.NewPositiveLiteral(l)
		}
	}
	b.w.AddClause(clause)
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil
}

// ReadModels parses a file of one model per line (DIMACS-style signed
// integers terminated by 0), matching the teacher's parsers.ReadModels.
// Entry i of a model is the sign of the i-th integer on its line.
func ReadModels(filename string) ([][]bool, error) {
	rc, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &modelBuilder{}
	if err := extdimacs.ReadBuilder(rc, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("dimacs: model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
