package syllable

import (
	"errors"
	"reflect"
	"testing"

	"github.com/f3rmion/ctk/internal/lshk"
)

func TestParse(t *testing.T) {
	t.Parallel()
	p := NewParser(lshk.Default())

	tests := []struct {
		in      string
		want    string   // dotted onset.nucleus.coda.tone
		invalid []string // slots expected to carry Valid: false
	}{
		{"sik1", "s.i.k.1", nil},
		{"si1", "s.i..1", nil},
		{"gwok3", "gw.o.k.3", nil},
		{"jyu4", "j.yu..4", nil},
		{"syu1", "s.yu..1", nil},
		{"ngaang6", "ng.aa.ng.6", nil},
		{"faan6", "f.aa.n.6", nil},
		{"aa3", ".aa..3", nil},
		{"ak1", ".a.k.1", nil},
		{"m4", ".m..4", nil},
		{"ng", ".ng..", []string{"tone"}},
		{"sik", "s.i.k.", []string{"tone"}},
		{"Vk1", ".V.k.1", nil},

		// Repair steps for all-consonant parses.
		{"sng1", "s.ng..1", nil},
		{"ngk1", "ng.k..1", []string{"nucleus"}},
		{"pst", ".pst..", []string{"nucleus", "tone"}},

		// Malformed input keeps every character, flagged in place.
		{"", "...", []string{"nucleus", "tone"}},
		{" ", "...", []string{"nucleus", "tone"}},
		{"x", ".x..", []string{"nucleus", "tone"}},
		{"sk", "s..k.", []string{"nucleus", "tone"}},
		{"sxa", "s..xa.", []string{"nucleus", "coda", "tone"}},
		{"gaau3", "g.aa.u.3", []string{"coda"}},
		{"Csi1", "Cs.i..1", []string{"onset"}},
		{"sik12", "s.i.k1.2", []string{"coda"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ps := p.Parse(tt.in)
			if got := ps.String(); got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if ps.Source != tt.in {
				t.Errorf("Source = %q, want %q", ps.Source, tt.in)
			}
			bad := make(map[string]bool)
			for _, slot := range tt.invalid {
				bad[slot] = true
			}
			for _, slot := range Slots() {
				c, err := ps.Component(slot)
				if err != nil {
					t.Fatalf("Component(%q): %v", slot, err)
				}
				if c.Valid == bad[slot] {
					t.Errorf("slot %s of %q: Valid = %v, want %v", slot, tt.in, c.Valid, !bad[slot])
				}
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()
	p := NewParser(lshk.Default())

	for _, in := range []string{"sik1", "gwok3", "sxa", ""} {
		first := p.Parse(in)
		for i := 0; i < 3; i++ {
			if again := p.Parse(in); again != first {
				t.Errorf("Parse(%q) unstable: %v then %v", in, first, again)
			}
		}
	}
}

func TestComponentUnknownSlot(t *testing.T) {
	t.Parallel()
	p := NewParser(lshk.Default())

	_, err := p.Parse("sik1").Component("rhyme")
	if err == nil {
		t.Fatal("Component with unknown slot returned nil error")
	}
	if !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("error = %v, want ErrInvalidSlot", err)
	}
}

func TestSegments(t *testing.T) {
	t.Parallel()
	p := NewParser(lshk.Default())

	tests := []struct {
		in   string
		want []string
		tone string
	}{
		{"sik1", []string{"s", "i", "k"}, "1"},
		{"gwok3", []string{"gw", "o", "k"}, "3"},
		{"ngaang6", []string{"ng", "aa", "ng"}, "6"},
		{"faai3", []string{"f", "aa", "i"}, "3"},
		{"jyu4", []string{"j", "yu"}, "4"},
		{"m4", []string{"m"}, "4"},
		{"pst", []string{"p", "s", "t"}, ""},
		{"Csik1", []string{"C", "s", "i", "k"}, "1"},
		{"", nil, ""},
	}

	for _, tt := range tests {
		segs, tone := p.Segments(tt.in)
		if !reflect.DeepEqual(segs, tt.want) {
			t.Errorf("Segments(%q) = %v, want %v", tt.in, segs, tt.want)
		}
		if tone != tt.tone {
			t.Errorf("Segments(%q) tone = %q, want %q", tt.in, tone, tt.tone)
		}
	}
}

func TestParseWord(t *testing.T) {
	t.Parallel()
	p := NewParser(lshk.Default())

	word := p.ParseWord("m4 goi1")
	if len(word) != 2 {
		t.Fatalf("ParseWord returned %d syllables, want 2", len(word))
	}
	if got, want := WordString(word), ".m..4 g.o.i.1"; got != want {
		t.Errorf("WordString = %q, want %q", got, want)
	}

	if got := p.ParseWord("   "); len(got) != 0 {
		t.Errorf("ParseWord(blank) returned %d syllables, want 0", len(got))
	}
}
