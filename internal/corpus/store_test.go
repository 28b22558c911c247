package corpus

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/ot"
	"github.com/f3rmion/ctk/internal/syllable"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddAndCount(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add("sik1", "食", 3); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Add("sik1", "", 2); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	count, err := store.Count("sik1")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 5 {
		t.Errorf("Count(sik1) = %d, want 5", count)
	}

	count, err = store.Count("zoek3")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count(zoek3) = %d, want 0", count)
	}
}

func TestIncrement(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if err := store.Increment("m4"); err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
	}

	count, err := store.Count("m4")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count(m4) = %d, want 3", count)
	}
}

func TestHanziKeptAcrossUpserts(t *testing.T) {
	store := newTestStore(t)

	if err := store.Add("sik1", "識", 1); err != nil {
		t.Fatal(err)
	}
	// An empty hanzi leaves the stored example character alone.
	if err := store.Add("sik1", "", 1); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Entries(0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Hanzi != "識" {
		t.Errorf("Entries() = %+v, want one row with hanzi 識", entries)
	}

	// A non-empty hanzi replaces it.
	if err := store.Add("sik1", "色", 1); err != nil {
		t.Fatal(err)
	}
	entries, err = store.Entries(0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if entries[0].Hanzi != "色" {
		t.Errorf("Hanzi = %q, want 色", entries[0].Hanzi)
	}
}

func TestEntriesOrder(t *testing.T) {
	store := newTestStore(t)

	for _, row := range []struct {
		reading string
		count   int
	}{
		{"si1", 2},
		{"sik1", 5},
		{"m4", 2},
	} {
		if err := store.Add(row.reading, "", row.count); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.Entries(0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}

	var got []string
	for _, e := range entries {
		got = append(got, e.Reading)
	}
	// Count descending, reading breaking the 2/2 tie.
	want := []string{"sik1", "m4", "si1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() order = %v, want %v", got, want)
	}

	limited, err := store.Entries(2)
	if err != nil {
		t.Fatalf("Entries(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Entries(2) returned %d rows, want 2", len(limited))
	}
}

func TestTotalAndSize(t *testing.T) {
	store := newTestStore(t)

	total, err := store.Total()
	if err != nil {
		t.Fatalf("Total() error = %v", err)
	}
	if total != 0 {
		t.Errorf("Total() on empty corpus = %d, want 0", total)
	}

	if err := store.Add("sik1", "", 5); err != nil {
		t.Fatal(err)
	}
	if err := store.Add("m4", "", 2); err != nil {
		t.Fatal(err)
	}

	total, err = store.Total()
	if err != nil {
		t.Fatalf("Total() error = %v", err)
	}
	if total != 7 {
		t.Errorf("Total() = %d, want 7", total)
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 2 {
		t.Errorf("Size() = %d, want 2", size)
	}
}

func TestApplyFrequencies(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add("sik1", "食", 7); err != nil {
		t.Fatal(err)
	}
	if err := store.Add("si1", "詩", 2); err != nil {
		t.Fatal(err)
	}

	reg := lshk.Default()
	parser := syllable.NewParser(reg)
	gen := ot.NewGenerator(reg, parser)

	tab := ot.NewTableau(parser, "sik1")
	tab.MergeCandidates(gen.GenOne("sik1")...)

	attested, err := store.ApplyFrequencies(tab)
	if err != nil {
		t.Fatalf("ApplyFrequencies() error = %v", err)
	}
	if attested != 2 {
		t.Errorf("ApplyFrequencies() = %d attested, want 2", attested)
	}
	if !tab.Included {
		t.Error("Included = false, want true for attested input")
	}

	wantFreq := map[string]int{"sik1": 7, "si1": 2, "ik1": 0}
	for output, want := range wantFreq {
		cand, ok := tab.Candidate(output)
		if !ok {
			t.Fatalf("candidate %q missing", output)
		}
		if cand.Freq != want {
			t.Errorf("Freq(%s) = %d, want %d", output, cand.Freq, want)
		}
	}

	unattested := ot.NewTableau(parser, "pok3")
	unattested.MergeCandidates(gen.GenOne("pok3")...)
	if _, err := store.ApplyFrequencies(unattested); err != nil {
		t.Fatalf("ApplyFrequencies() error = %v", err)
	}
	if unattested.Included {
		t.Error("Included = true, want false for unattested input")
	}
}

func TestSummary(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add("sik1", "食", 5); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Summary()
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary == "" {
		t.Error("Summary() = empty string")
	}
}
