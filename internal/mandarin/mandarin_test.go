package mandarin

import "testing"

func TestReading(t *testing.T) {
	r := NewReader()

	tests := []struct {
		hanzi string
		want  string
	}{
		{"中", "zhōng"},
		{"好", "hǎo"},
		{"x", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := r.Reading(tt.hanzi); got != tt.want {
			t.Errorf("Reading(%q) = %q, want %q", tt.hanzi, got, tt.want)
		}
	}
}

func TestReadingsHeteronym(t *testing.T) {
	r := NewReader()

	// 行 reads both xíng and háng.
	readings := r.Readings("行")
	if len(readings) < 2 {
		t.Errorf("Readings(行) = %v, want at least two readings", readings)
	}
}
