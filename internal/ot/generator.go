package ot

import (
	"strings"

	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/syllable"
)

// Generator produces the deletion and epenthesis variants of an input
// form. It is pure: no state is carried between calls.
type Generator struct {
	reg    *lshk.Registry
	parser *syllable.Parser
}

// NewGenerator creates a generator drawing its insertable inventory and
// segmentation from the registry.
func NewGenerator(reg *lshk.Registry, parser *syllable.Parser) *Generator {
	return &Generator{reg: reg, parser: parser}
}

// GenOne returns the identity form plus every single-segment deletion and
// every insertion of an inventory segment at every boundary, including the
// string edges. Outputs are de-duplicated; the first edit description
// wins. The identity candidate is always first. The tone marker is not a
// segment: it is peeled before editing and re-attached to every output.
// An empty input yields the identity plus edge insertions only.
func (g *Generator) GenOne(input string) []*Candidate {
	set := g.newEditSet(input)
	g.singleEdits(set)
	return set.list
}

// GenTwo returns a superset of GenOne: additionally, every deletion is
// combined with every insertion at every boundary of the post-deletion
// segment slice. De-duplication matches GenOne, so the GenOne candidates
// form the prefix of the result.
func (g *Generator) GenTwo(input string) []*Candidate {
	set := g.newEditSet(input)
	g.singleEdits(set)
	g.pairedEdits(set)
	return set.list
}

// singleEdits adds the identity, all deletions and all insertions.
func (g *Generator) singleEdits(set *editSet) {
	segs := set.inputSegs
	set.add(segs, Edit{Kind: EditIdentity})

	for i, seg := range segs {
		set.add(deleteAt(segs, i), Edit{Kind: EditDeletion, DelPos: i, DelSeg: seg})
	}

	for pos := 0; pos <= len(segs); pos++ {
		for _, ins := range g.reg.Insertables() {
			set.add(insertAt(segs, pos, ins), Edit{Kind: EditInsertion, InsPos: pos, InsSeg: ins})
		}
	}
}

// pairedEdits adds one deletion followed by one insertion, the insertion
// boundary indexing the post-deletion slice.
func (g *Generator) pairedEdits(set *editSet) {
	segs := set.inputSegs
	for i, seg := range segs {
		deleted := deleteAt(segs, i)
		for pos := 0; pos <= len(deleted); pos++ {
			for _, ins := range g.reg.Insertables() {
				set.add(insertAt(deleted, pos, ins), Edit{
					Kind:   EditDeletionInsertion,
					DelPos: i,
					DelSeg: seg,
					InsPos: pos,
					InsSeg: ins,
				})
			}
		}
	}
}

// editSet accumulates candidates for one input, de-duplicating by output.
type editSet struct {
	parser    *syllable.Parser
	inputSegs []string
	tone      string
	seen      map[string]bool
	list      []*Candidate
}

func (g *Generator) newEditSet(input string) *editSet {
	segs, tone := g.parser.Segments(input)
	return &editSet{
		parser:    g.parser,
		inputSegs: segs,
		tone:      tone,
		seen:      make(map[string]bool),
	}
}

func (s *editSet) add(segs []string, edit Edit) {
	output := strings.Join(segs, "") + s.tone
	if s.seen[output] {
		return
	}
	s.seen[output] = true
	s.list = append(s.list, newGenerated(s.parser, output, edit, s.inputSegs))
}

func deleteAt(segs []string, i int) []string {
	out := make([]string, 0, len(segs)-1)
	out = append(out, segs[:i]...)
	return append(out, segs[i+1:]...)
}

func insertAt(segs []string, pos int, seg string) []string {
	out := make([]string, 0, len(segs)+1)
	out = append(out, segs[:pos]...)
	out = append(out, seg)
	return append(out, segs[pos:]...)
}
