package ot

import (
	"reflect"
	"testing"
)

func newEvaluatedTableau(t *testing.T, candidates int) *Tableau {
	t.Helper()
	gen, parser := newTestGenerator()

	tab := NewTableau(parser, "sik1")
	cands := gen.GenTwo("sik1")
	if len(cands) < candidates {
		t.Fatalf("GenTwo produced %d candidates, need %d", len(cands), candidates)
	}
	tab.MergeCandidates(cands[:candidates]...)

	noCoda, err := ComponentCheck("NoCoda", "penalize codas", "coda", false)
	if err != nil {
		t.Fatalf("ComponentCheck: %v", err)
	}
	kFinal, err := Phonotactic("NoFinalK", "ban word-final k", "k$")
	if err != nil {
		t.Fatalf("Phonotactic: %v", err)
	}
	maxAny, err := GenericMax("Max", "no deletion", ContextSpec{})
	if err != nil {
		t.Fatalf("GenericMax: %v", err)
	}
	tab.AddConstraint(noCoda)
	tab.AddConstraint(kFinal)
	tab.AddConstraint(maxAny)
	return tab
}

func TestEvaluateFillsEveryCell(t *testing.T) {
	t.Parallel()
	tab := newEvaluatedTableau(t, 10)

	Evaluate(tab)

	entries := 0
	for _, c := range tab.Candidates() {
		if len(c.Violations) != 3 {
			t.Errorf("candidate %q has %d violation entries, want 3", c.Output, len(c.Violations))
		}
		for name, n := range c.Violations {
			if n < 0 {
				t.Errorf("candidate %q: %s = %d, want non-negative", c.Output, name, n)
			}
			entries++
		}
	}
	if entries != 30 {
		t.Errorf("evaluation produced %d entries, want 3 constraints x 10 candidates = 30", entries)
	}
}

func snapshotViolations(t *Tableau) map[string]map[string]int {
	snap := make(map[string]map[string]int)
	for _, c := range t.Candidates() {
		m := make(map[string]int, len(c.Violations))
		for k, v := range c.Violations {
			m[k] = v
		}
		snap[c.Output] = m
	}
	return snap
}

func TestEvaluateIdempotent(t *testing.T) {
	t.Parallel()
	tab := newEvaluatedTableau(t, 10)

	Evaluate(tab)
	first := snapshotViolations(tab)
	Evaluate(tab)
	second := snapshotViolations(tab)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-evaluation changed violations:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestEvaluateOverwritesStaleEntries(t *testing.T) {
	t.Parallel()
	tab := newEvaluatedTableau(t, 10)

	Evaluate(tab)
	c, ok := tab.Candidate("si1")
	if !ok {
		t.Fatal("si1 not in tableau")
	}
	want := c.Violations["NoCoda"]
	c.Violations["NoCoda"] = 99
	c.Violations["Ghost"] = 7

	Evaluate(tab)
	if got := c.Violations["NoCoda"]; got != want {
		t.Errorf("NoCoda after re-evaluation = %d, want recomputed %d", got, want)
	}
	if _, ok := c.Violations["Ghost"]; ok {
		t.Error("stale entry survived re-evaluation")
	}
}
