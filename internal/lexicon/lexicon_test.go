package lexicon

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeLexicon(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.jsonl")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeLexicon(t, `{"char":"食","readings":["sik6"],"gloss":"eat","freq":120}
{"char":"色","readings":["sik1"],"gloss":"color","freq":80}

{"char":"識","readings":["sik1"],"gloss":"know","freq":95}
not json at all
{"char":"時","readings":["si4"],"gloss":"time","freq":200}
{"readings":["zi6"],"gloss":"missing char"}
`)

	lex := NewLexicon()
	if err := lex.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	// Blank lines, malformed JSON and entries without a character are skipped.
	if lex.Size() != 4 {
		t.Errorf("Size() = %d, want 4", lex.Size())
	}

	entry := lex.Lookup("食")
	if entry == nil {
		t.Fatal("Lookup(食) = nil, want entry")
	}
	if entry.Gloss != "eat" || entry.Freq != 120 {
		t.Errorf("Lookup(食) = %+v, want gloss eat freq 120", entry)
	}

	if lex.Lookup("貓") != nil {
		t.Error("Lookup(貓) = entry, want nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	lex := NewLexicon()
	if err := lex.LoadFromFile(filepath.Join(t.TempDir(), "absent.jsonl")); err == nil {
		t.Error("LoadFromFile() expected error for missing file, got nil")
	}
}

func TestByReading(t *testing.T) {
	path := writeLexicon(t, `{"char":"識","readings":["sik1"],"freq":95}
{"char":"色","readings":["sik1"],"freq":80}
{"char":"式","readings":["sik1"],"freq":95}
{"char":"食","readings":["sik6"],"freq":120}
`)

	lex := NewLexicon()
	if err := lex.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	var got []string
	for _, e := range lex.ByReading("sik1") {
		got = append(got, e.Char)
	}

	// Frequency descending, character breaking the 95/95 tie.
	want := []string{"式", "識", "色"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ByReading(sik1) order = %v, want %v", got, want)
	}

	if matches := lex.ByReading("zoek3"); matches != nil {
		t.Errorf("ByReading(zoek3) = %v, want nil", matches)
	}
}

func TestDuplicateCharacterReplaces(t *testing.T) {
	path := writeLexicon(t, `{"char":"行","readings":["hang4"],"gloss":"walk"}
{"char":"行","readings":["hong4"],"gloss":"row"}
`)

	lex := NewLexicon()
	if err := lex.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if lex.Size() != 1 {
		t.Errorf("Size() = %d, want 1", lex.Size())
	}
	if got := lex.Lookup("行").Gloss; got != "row" {
		t.Errorf("Lookup(行).Gloss = %q, want %q (later line wins)", got, "row")
	}

	// The stale reading index entry must be gone.
	if matches := lex.ByReading("hang4"); matches != nil {
		t.Errorf("ByReading(hang4) = %v, want nil after replacement", matches)
	}
	if matches := lex.ByReading("hong4"); len(matches) != 1 {
		t.Errorf("ByReading(hong4) = %v, want one entry", matches)
	}
}

func TestReadings(t *testing.T) {
	path := writeLexicon(t, `{"char":"行","readings":["hang4","hong4"]}
{"char":"食","readings":["sik6"]}
`)

	lex := NewLexicon()
	if err := lex.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	want := []string{"hang4", "hong4", "sik6"}
	if got := lex.Readings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Readings() = %v, want %v", got, want)
	}
}
