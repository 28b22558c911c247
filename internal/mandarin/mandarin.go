// Package mandarin provides Mandarin readings for hanzi, for display next
// to their Cantonese transcriptions.
package mandarin

import (
	gopinyin "github.com/mozillazg/go-pinyin"
)

// Reader converts hanzi to Mandarin pinyin readings.
type Reader struct {
	args gopinyin.Args
}

// NewReader creates a reader that returns tone-marked readings.
func NewReader() *Reader {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone // Tone marks: zhōng
	args.Heteronym = true      // All readings, not just the common one
	return &Reader{args: args}
}

// Readings returns all Mandarin readings of the first character, or nil
// for non-hanzi input.
func (r *Reader) Readings(hanzi string) []string {
	result := gopinyin.Pinyin(hanzi, r.args)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}

// Reading returns the most common Mandarin reading, or "" for non-hanzi
// input.
func (r *Reader) Reading(hanzi string) string {
	readings := r.Readings(hanzi)
	if len(readings) == 0 {
		return ""
	}
	return readings[0]
}
