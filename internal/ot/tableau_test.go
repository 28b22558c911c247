package ot

import (
	"errors"
	"reflect"
	"testing"

	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/syllable"
)

func TestAddCandidateDuplicate(t *testing.T) {
	t.Parallel()
	parser := syllable.NewParser(lshk.Default())
	tab := NewTableau(parser, "sik1")

	if err := tab.AddCandidate(NewCandidate(parser, "si1")); err != nil {
		t.Fatalf("first AddCandidate: %v", err)
	}
	err := tab.AddCandidate(NewCandidate(parser, "si1"))
	if err == nil {
		t.Fatal("second AddCandidate with the same output returned nil error")
	}
	if !errors.Is(err, ErrDuplicateCandidate) {
		t.Errorf("error = %v, want ErrDuplicateCandidate", err)
	}
	if got := len(tab.Candidates()); got != 1 {
		t.Errorf("tableau has %d candidates after duplicate insert, want 1", got)
	}
}

func TestMergeCandidates(t *testing.T) {
	t.Parallel()
	gen, parser := newTestGenerator()
	tab := NewTableau(parser, "sik1")

	cands := gen.GenOne("sik1")
	if added := tab.MergeCandidates(cands...); added != len(cands) {
		t.Errorf("first merge added %d, want %d", added, len(cands))
	}
	// Generator output is deduplicated against the tableau, not errored.
	if added := tab.MergeCandidates(cands...); added != 0 {
		t.Errorf("second merge added %d, want 0", added)
	}

	got := outputsOf(tab.Candidates())
	want := outputsOf(cands)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("candidate order after merge = %v, want %v", got, want)
	}

	c, ok := tab.Candidate("si1")
	if !ok || c.Output != "si1" {
		t.Errorf("Candidate(si1) = %v, %v", c, ok)
	}
	if _, ok := tab.Candidate("zzz9"); ok {
		t.Error("Candidate reported an output that was never added")
	}
}

func TestFreqClamping(t *testing.T) {
	t.Parallel()
	parser := syllable.NewParser(lshk.Default())
	c := NewCandidate(parser, "sik1")

	c.SetFreq(-3)
	if c.Freq != 0 {
		t.Errorf("SetFreq(-3) left Freq = %d, want 0", c.Freq)
	}
	c.AddFreq(2)
	if c.Freq != 2 {
		t.Errorf("AddFreq(2) left Freq = %d, want 2", c.Freq)
	}
	c.AddFreq(-5)
	if c.Freq != 0 {
		t.Errorf("AddFreq(-5) left Freq = %d, want clamp to 0", c.Freq)
	}
}

func TestSetIncluded(t *testing.T) {
	t.Parallel()
	parser := syllable.NewParser(lshk.Default())
	tab := NewTableau(parser, "sik1")

	if tab.Included {
		t.Error("new tableau starts included")
	}
	tab.SetIncluded(true)
	if !tab.Included {
		t.Error("SetIncluded(true) did not stick")
	}
}

func newRenderedTableau(t *testing.T) *Tableau {
	t.Helper()
	gen, parser := newTestGenerator()
	reg := lshk.Default()

	tab := NewTableau(parser, "sik1")
	cands := gen.GenOne("sik1")
	tab.MergeCandidates(
		findCandidate(t, cands, "sik1"),
		findCandidate(t, cands, "si1"),
		findCandidate(t, cands, "siVk1"),
	)

	noCoda, err := ComponentCheck("NoCoda", "penalize codas", "coda", false)
	if err != nil {
		t.Fatalf("ComponentCheck: %v", err)
	}
	maxV, err := GenericMax("Max/V_", "no deletion after a vowel",
		ContextSpec{Left: reg.Resolve("vowel")})
	if err != nil {
		t.Fatalf("GenericMax: %v", err)
	}
	tab.AddConstraint(noCoda)
	tab.AddConstraint(maxV)
	return tab
}

func TestRender(t *testing.T) {
	t.Parallel()
	tab := newRenderedTableau(t)

	wantHeader := []string{"input", "output", "freq", "NoCoda", "Max/V_"}

	// Before evaluation every constraint cell is empty: absent is not zero.
	table := tab.Render(false)
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Errorf("header = %v, want %v", table.Header, wantHeader)
	}
	for _, row := range table.Rows {
		if row[3] != "" || row[4] != "" {
			t.Errorf("unevaluated row has non-empty cells: %v", row)
		}
	}

	c, _ := tab.Candidate("si1")
	c.SetFreq(4)
	Evaluate(tab)

	table = tab.Render(false)
	wantRows := [][]string{
		{"sik1", "sik1", "0", "1", "0"},
		{"sik1", "si1", "4", "0", "1"},
		{"sik1", "siVk1", "0", "0", "0"},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", table.Rows, wantRows)
	}

	parsed := tab.Render(true)
	wantParsed := [][]string{
		{"s.i.k.1", "s.i.k.1", "0", "1", "0"},
		{"s.i.k.1", "s.i..1", "4", "0", "1"},
		{"s.i.k.1", "s.i.Vk.1", "0", "0", "0"},
	}
	if !reflect.DeepEqual(parsed.Rows, wantParsed) {
		t.Errorf("parsed rows = %v, want %v", parsed.Rows, wantParsed)
	}
}

func TestProfiles(t *testing.T) {
	t.Parallel()
	tab := newRenderedTableau(t)

	// Nothing evaluated yet: profiles carry the frequency only.
	for i, p := range tab.Profiles() {
		if len(p) != 1 {
			t.Errorf("unevaluated profile %d = %v, want frequency only", i, p)
		}
	}

	c, _ := tab.Candidate("si1")
	c.SetFreq(4)
	Evaluate(tab)

	want := [][]int{
		{0, 1, 0},
		{4, 0, 1},
		{0, 0, 0},
	}
	if got := tab.Profiles(); !reflect.DeepEqual(got, want) {
		t.Errorf("Profiles = %v, want %v", got, want)
	}
}

func TestConstraintsCopy(t *testing.T) {
	t.Parallel()
	tab := newRenderedTableau(t)

	list := tab.Constraints()
	if len(list) != 2 {
		t.Fatalf("Constraints returned %d, want 2", len(list))
	}
	list[0] = Constraint{Name: "clobbered"}
	if tab.Constraints()[0].Name != "NoCoda" {
		t.Error("Constraints leaked the internal slice")
	}
}
