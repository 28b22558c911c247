// Package lexicon loads character readings from a JSON-lines lexicon file.
package lexicon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Entry represents a single lexicon record: one character with its
// Cantonese readings in LSHK romanization.
type Entry struct {
	Char     string   `json:"char"`
	Readings []string `json:"readings"`
	Gloss    string   `json:"gloss,omitempty"`
	Freq     int      `json:"freq,omitempty"` // Corpus frequency, 0 if unknown
}

// Lexicon holds all loaded entries, indexed by character and by reading.
type Lexicon struct {
	entries   map[string]*Entry
	byReading map[string][]*Entry
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{
		entries:   make(map[string]*Entry),
		byReading: make(map[string][]*Entry),
	}
}

// LoadFromFile loads entries from a JSON-lines lexicon file. Each line is
// one Entry object. Later lines win on duplicate characters.
func (l *Lexicon) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening lexicon file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// Skip malformed entries
			continue
		}
		if entry.Char == "" {
			continue
		}

		l.add(&entry)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading lexicon file: %w", err)
	}

	return nil
}

// add inserts an entry, replacing any previous entry for the same character
// and keeping the reading index consistent.
func (l *Lexicon) add(entry *Entry) {
	if old, ok := l.entries[entry.Char]; ok {
		for _, r := range old.Readings {
			l.byReading[r] = removeEntry(l.byReading[r], old)
		}
	}

	l.entries[entry.Char] = entry
	for _, r := range entry.Readings {
		l.byReading[r] = append(l.byReading[r], entry)
	}
}

// Lookup returns the entry for a character, or nil if unknown.
func (l *Lexicon) Lookup(char string) *Entry {
	return l.entries[char]
}

// ByReading returns all entries carrying the given reading, most frequent
// first. Ties break on the character so the order is stable.
func (l *Lexicon) ByReading(reading string) []*Entry {
	matches := l.byReading[reading]
	if len(matches) == 0 {
		return nil
	}

	out := make([]*Entry, len(matches))
	copy(out, matches)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Freq != out[j].Freq {
			return out[i].Freq > out[j].Freq
		}
		return out[i].Char < out[j].Char
	})
	return out
}

// Readings returns every distinct reading in the lexicon, sorted.
func (l *Lexicon) Readings() []string {
	readings := make([]string, 0, len(l.byReading))
	for r := range l.byReading {
		readings = append(readings, r)
	}
	sort.Strings(readings)
	return readings
}

// Size returns the number of characters in the lexicon.
func (l *Lexicon) Size() int {
	return len(l.entries)
}

func removeEntry(entries []*Entry, target *Entry) []*Entry {
	for i, e := range entries {
		if e == target {
			return append(entries[:i], entries[i+1:]...)
		}
	}
	return entries
}
