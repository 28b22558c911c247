package ot

import (
	"strings"
	"testing"

	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/syllable"
)

func newTestGenerator() (*Generator, *syllable.Parser) {
	reg := lshk.Default()
	parser := syllable.NewParser(reg)
	return NewGenerator(reg, parser), parser
}

func outputsOf(cands []*Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Output
	}
	return out
}

func findCandidate(t *testing.T, cands []*Candidate, output string) *Candidate {
	t.Helper()
	for _, c := range cands {
		if c.Output == output {
			return c
		}
	}
	t.Fatalf("candidate %q not generated (have %v)", output, outputsOf(cands))
	return nil
}

func TestGenOne(t *testing.T) {
	t.Parallel()
	gen, _ := newTestGenerator()

	cands := gen.GenOne("sik1")

	// Identity first, then three deletions, then V and C at each of the
	// four boundaries.
	want := []string{
		"sik1",
		"ik1", "sk1", "si1",
		"Vsik1", "Csik1",
		"sVik1", "sCik1",
		"siVk1", "siCk1",
		"sikV1", "sikC1",
	}
	got := outputsOf(cands)
	if len(got) != len(want) {
		t.Fatalf("GenOne(sik1) produced %d candidates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}

	id := cands[0]
	edit, ok := id.EditDesc()
	if !ok || edit.Kind != EditIdentity {
		t.Errorf("first candidate edit = %v (%v), want identity", edit, ok)
	}

	del := findCandidate(t, cands, "si1")
	edit, _ = del.EditDesc()
	if edit.Kind != EditDeletion || edit.DelPos != 2 || edit.DelSeg != "k" {
		t.Errorf("deletion edit for si1 = %+v, want -k@2", edit)
	}
}

func TestGenOneDigraphSegments(t *testing.T) {
	t.Parallel()
	gen, _ := newTestGenerator()

	cands := gen.GenOne("gwok3")
	got := outputsOf(cands)

	// gw is one segment: it deletes whole and never splits around an
	// insertion.
	findCandidate(t, cands, "ok3")
	findCandidate(t, cands, "gwVok3")
	for _, o := range got {
		if o == "wok3" || strings.Contains(o, "gVw") || strings.Contains(o, "gCw") {
			t.Errorf("digraph gw was split: %q", o)
		}
	}
}

func TestGenOneDedupFirstWins(t *testing.T) {
	t.Parallel()
	gen, _ := newTestGenerator()

	// Both segments of VV1 are identical, so deleting either yields V1 and
	// several insertions collide as well.
	cands := gen.GenOne("VV1")
	want := []string{"VV1", "V1", "VVV1", "CVV1", "VCV1", "VVC1"}
	got := outputsOf(cands)
	if len(got) != len(want) {
		t.Fatalf("GenOne(VV1) produced %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}

	edit, _ := findCandidate(t, cands, "V1").EditDesc()
	if edit.Kind != EditDeletion || edit.DelPos != 0 {
		t.Errorf("V1 edit = %+v, want the first-found deletion at 0", edit)
	}
	edit, _ = findCandidate(t, cands, "VVV1").EditDesc()
	if edit.Kind != EditInsertion || edit.InsPos != 0 {
		t.Errorf("VVV1 edit = %+v, want the first-found insertion at 0", edit)
	}
}

func TestGenOneEmptyInput(t *testing.T) {
	t.Parallel()
	gen, _ := newTestGenerator()

	cands := gen.GenOne("")
	want := []string{"", "V", "C"}
	got := outputsOf(cands)
	if len(got) != len(want) {
		t.Fatalf("GenOne(\"\") = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGenTwoSupersetOfGenOne(t *testing.T) {
	t.Parallel()
	gen, _ := newTestGenerator()

	one := gen.GenOne("sik1")
	two := gen.GenTwo("sik1")

	if len(two) <= len(one) {
		t.Fatalf("GenTwo produced %d candidates, GenOne %d", len(two), len(one))
	}
	// Same dedup order, so the single-edit candidates form the prefix.
	for i, c := range one {
		if two[i].Output != c.Output {
			t.Errorf("GenTwo[%d] = %q, want %q", i, two[i].Output, c.Output)
		}
	}
}

func TestGenTwoPairedEdits(t *testing.T) {
	t.Parallel()
	gen, _ := newTestGenerator()

	cands := gen.GenTwo("sik1")
	if len(cands) != 30 {
		t.Fatalf("GenTwo(sik1) produced %d candidates, want 30", len(cands))
	}

	// Delete k, then insert V at the end of the post-deletion slice: the
	// insertion index must refer to [s i], not [s i k].
	c := findCandidate(t, cands, "siV1")
	edit, ok := c.EditDesc()
	if !ok {
		t.Fatal("siV1 has no edit description")
	}
	if edit.Kind != EditDeletionInsertion {
		t.Fatalf("siV1 edit kind = %v, want deletion+insertion", edit.Kind)
	}
	if edit.DelPos != 2 || edit.DelSeg != "k" || edit.InsPos != 2 || edit.InsSeg != "V" {
		t.Errorf("siV1 edit = %+v, want -k@2 +V@2", edit)
	}

	c = findCandidate(t, cands, "Vik1")
	edit, _ = c.EditDesc()
	if edit.Kind != EditDeletionInsertion || edit.DelSeg != "s" || edit.InsPos != 0 {
		t.Errorf("Vik1 edit = %+v, want -s@0 +V@0", edit)
	}
}

// TestGenTwoEditsReconstruct replays every candidate's edit description
// against the input segments and checks it reproduces the output. This
// pins the positional bookkeeping and keeps every candidate within two
// segment edits of the input.
func TestGenTwoEditsReconstruct(t *testing.T) {
	t.Parallel()
	gen, parser := newTestGenerator()

	for _, input := range []string{"sik1", "gwok3", "aa3", "m4", ""} {
		segs, tone := parser.Segments(input)
		for _, c := range gen.GenTwo(input) {
			edit, ok := c.EditDesc()
			if !ok {
				t.Fatalf("generated candidate %q has no edit description", c.Output)
			}

			var rebuilt []string
			switch edit.Kind {
			case EditIdentity:
				rebuilt = segs
			case EditDeletion:
				rebuilt = deleteAt(segs, edit.DelPos)
			case EditInsertion:
				rebuilt = insertAt(segs, edit.InsPos, edit.InsSeg)
			case EditDeletionInsertion:
				rebuilt = insertAt(deleteAt(segs, edit.DelPos), edit.InsPos, edit.InsSeg)
			default:
				t.Fatalf("candidate %q has unknown edit kind %v", c.Output, edit.Kind)
			}

			if got := strings.Join(rebuilt, "") + tone; got != c.Output {
				t.Errorf("edit %v of %q rebuilds %q, want %q", edit, input, got, c.Output)
			}
			if edit.Kind == EditDeletion || edit.Kind == EditDeletionInsertion {
				if segs[edit.DelPos] != edit.DelSeg {
					t.Errorf("edit %v: DelSeg %q but input segment %d is %q",
						edit, edit.DelSeg, edit.DelPos, segs[edit.DelPos])
				}
			}

			// Every output parses without error, malformed or not.
			if c.Parsed.Source != c.Output {
				t.Errorf("candidate %q parsed from %q", c.Output, c.Parsed.Source)
			}
		}
	}
}
