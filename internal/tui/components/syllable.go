// Package components provides shared UI data types for the TUI.
package components

import (
	"github.com/f3rmion/ctk/internal/syllable"
)

// MatchedChar is a lexicon hit for a transcription, with its Mandarin
// reading for comparison.
type MatchedChar struct {
	Char     string
	Gloss    string
	Freq     int
	Mandarin string
}

// SyllableResult holds the analysis of one transcription.
type SyllableResult struct {
	Transcription string
	Parsed        syllable.ParsedSyllable
	Segments      []string
	Tone          string
	Matches       []MatchedChar
}
