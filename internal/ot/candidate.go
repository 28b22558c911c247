package ot

import (
	"fmt"

	"github.com/f3rmion/ctk/internal/syllable"
)

// EditKind discriminates the edit descriptions attached to generated
// candidates.
type EditKind int

const (
	EditIdentity EditKind = iota
	EditDeletion
	EditInsertion
	EditDeletionInsertion
)

// String returns the kind as a display label.
func (k EditKind) String() string {
	switch k {
	case EditDeletion:
		return "deletion"
	case EditInsertion:
		return "insertion"
	case EditDeletionInsertion:
		return "deletion+insertion"
	}
	return "identity"
}

// Edit records how a generated candidate differs from the input form.
// Positions are segment indices into the input segment slice; for
// EditDeletionInsertion, InsPos indexes the post-deletion slice.
type Edit struct {
	Kind   EditKind
	DelPos int
	DelSeg string
	InsPos int
	InsSeg string
}

// String renders the edit in a compact form: "-k@2", "+V@0".
func (e Edit) String() string {
	switch e.Kind {
	case EditDeletion:
		return fmt.Sprintf("-%s@%d", e.DelSeg, e.DelPos)
	case EditInsertion:
		return fmt.Sprintf("+%s@%d", e.InsSeg, e.InsPos)
	case EditDeletionInsertion:
		return fmt.Sprintf("-%s@%d +%s@%d", e.DelSeg, e.DelPos, e.InsSeg, e.InsPos)
	}
	return "identity"
}

// Candidate is one surface form under evaluation in a tableau.
type Candidate struct {
	Output string // surface form, the tableau key
	Parsed syllable.ParsedSyllable
	Freq   int // corpus attestations, never negative

	// Violations maps constraint name to count. It stays nil until the
	// evaluator runs; an absent key means not yet evaluated, which render
	// logic must keep distinct from zero.
	Violations map[string]int

	edit      *Edit    // nil for manually built candidates
	inputSegs []string // generation-time input segments, contexts for Max
}

// NewCandidate builds a candidate by hand, outside the generator. It
// carries no edit description, so Dep and Max constraints score it zero.
func NewCandidate(parser *syllable.Parser, output string) *Candidate {
	return &Candidate{Output: output, Parsed: parser.Parse(output)}
}

func newGenerated(parser *syllable.Parser, output string, edit Edit, inputSegs []string) *Candidate {
	c := NewCandidate(parser, output)
	c.edit = &edit
	c.inputSegs = inputSegs
	return c
}

// SetFreq sets the corpus frequency, clamping at zero.
func (c *Candidate) SetFreq(n int) {
	if n < 0 {
		n = 0
	}
	c.Freq = n
}

// AddFreq adjusts the corpus frequency by delta, clamping at zero.
func (c *Candidate) AddFreq(delta int) {
	c.SetFreq(c.Freq + delta)
}

// EditDesc reports the edit that produced this candidate, if the candidate
// came from the generator.
func (c *Candidate) EditDesc() (Edit, bool) {
	if c.edit == nil {
		return Edit{}, false
	}
	return *c.edit, true
}
