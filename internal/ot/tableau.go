// Package ot implements the Optimality-Theoretic core: tableaux of
// candidate forms, violable constraints, the GEN edit generators and the
// EVAL scoring pass.
package ot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/f3rmion/ctk/internal/syllable"
)

// ErrDuplicateCandidate reports a manual insertion whose output form is
// already keyed in the tableau.
var ErrDuplicateCandidate = errors.New("duplicate candidate")

// Tableau collects the candidates and constraints for one input form.
type Tableau struct {
	Input       string
	ParsedInput syllable.ParsedSyllable
	Included    bool // whether the input form is attested in the corpus

	constraints []Constraint
	candidates  map[string]*Candidate
	order       []string // candidate outputs in insertion order
}

// NewTableau creates an empty tableau for the input form.
func NewTableau(parser *syllable.Parser, input string) *Tableau {
	return &Tableau{
		Input:       input,
		ParsedInput: parser.Parse(input),
		candidates:  make(map[string]*Candidate),
	}
}

// AddConstraint appends a constraint. Order of addition is evaluation and
// display order.
func (t *Tableau) AddConstraint(c Constraint) {
	t.constraints = append(t.constraints, c)
}

// AddCandidate inserts a candidate keyed by its output form. Inserting an
// output that is already present returns ErrDuplicateCandidate.
func (t *Tableau) AddCandidate(c *Candidate) error {
	if _, ok := t.candidates[c.Output]; ok {
		return fmt.Errorf("candidate %q: %w", c.Output, ErrDuplicateCandidate)
	}
	t.candidates[c.Output] = c
	t.order = append(t.order, c.Output)
	return nil
}

// MergeCandidates inserts generated candidates, silently skipping outputs
// already present, and returns the number added. This is the generator
// path; manual insertions go through AddCandidate and its duplicate error.
func (t *Tableau) MergeCandidates(cs ...*Candidate) int {
	added := 0
	for _, c := range cs {
		if _, ok := t.candidates[c.Output]; ok {
			continue
		}
		t.candidates[c.Output] = c
		t.order = append(t.order, c.Output)
		added++
	}
	return added
}

// Candidates returns the candidates in insertion order.
func (t *Tableau) Candidates() []*Candidate {
	out := make([]*Candidate, len(t.order))
	for i, key := range t.order {
		out[i] = t.candidates[key]
	}
	return out
}

// Candidate looks up a candidate by its output form.
func (t *Tableau) Candidate(output string) (*Candidate, bool) {
	c, ok := t.candidates[output]
	return c, ok
}

// Constraints returns a copy of the constraint list in evaluation order.
func (t *Tableau) Constraints() []Constraint {
	out := make([]Constraint, len(t.constraints))
	copy(out, t.constraints)
	return out
}

// SetIncluded marks whether the input form is attested.
func (t *Tableau) SetIncluded(v bool) {
	t.Included = v
}

// Table is a display-ready rendering of a tableau: a header row plus one
// row per candidate. Serialization to TSV, CSV or JSON is left to callers.
type Table struct {
	Header []string
	Rows   [][]string
}

// Render produces the violation table. The header is input, output, freq
// and one column per constraint; rows follow candidate insertion order.
// Cells of constraints that have not been evaluated render empty rather
// than zero. With parsed set, input and output show their dotted parsed
// forms.
func (t *Tableau) Render(parsed bool) Table {
	header := []string{"input", "output", "freq"}
	for _, c := range t.constraints {
		header = append(header, c.Name)
	}

	input := t.Input
	if parsed {
		input = t.ParsedInput.String()
	}

	rows := make([][]string, 0, len(t.order))
	for _, key := range t.order {
		cand := t.candidates[key]
		output := cand.Output
		if parsed {
			output = cand.Parsed.String()
		}
		row := []string{input, output, strconv.Itoa(cand.Freq)}
		for _, c := range t.constraints {
			cell := ""
			if n, ok := cand.Violations[c.Name]; ok {
				cell = strconv.Itoa(n)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return Table{Header: header, Rows: rows}
}

// Profiles returns, per candidate in insertion order, the frequency
// followed by the violation counts in constraint order. Constraints that
// have not been evaluated are skipped.
func (t *Tableau) Profiles() [][]int {
	out := make([][]int, 0, len(t.order))
	for _, key := range t.order {
		cand := t.candidates[key]
		profile := []int{cand.Freq}
		for _, c := range t.constraints {
			if n, ok := cand.Violations[c.Name]; ok {
				profile = append(profile, n)
			}
		}
		out = append(out, profile)
	}
	return out
}
