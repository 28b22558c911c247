package cmd

import "testing"

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sik1", "sik1"},
		{"SIK1", "sik1"},
		{"sik1,", "sik1"},
		{"(hai6)", "hai6"},
		{"“ngo5”", "ngo5"},
		{"m4", "m4"},
		{"123", ""},
		{"...", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeToken(tt.in); got != tt.want {
			t.Errorf("normalizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
