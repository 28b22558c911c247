// Package corpus persists reading frequencies in a SQLite database and
// projects them onto tableau candidates.
package corpus

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/f3rmion/ctk/internal/ot"
)

// Store is a reading-frequency corpus backed by SQLite.
type Store struct {
	path string
	db   *sql.DB
}

// ReadingCount is one corpus row: a reading, an example character and how
// often the reading was seen.
type ReadingCount struct {
	Reading string
	Hanzi   string
	Count   int
}

// Open opens (or creates) a corpus database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS readings (
			reading TEXT PRIMARY KEY,
			hanzi   TEXT NOT NULL DEFAULT '',
			count   INTEGER NOT NULL DEFAULT 0
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{path: path, db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Add records count occurrences of a reading. An existing row accumulates;
// a non-empty hanzi replaces the stored example character.
func (s *Store) Add(reading, hanzi string, count int) error {
	_, err := s.db.Exec(`
		INSERT INTO readings (reading, hanzi, count) VALUES (?, ?, ?)
		ON CONFLICT(reading) DO UPDATE SET
			count = count + excluded.count,
			hanzi = CASE WHEN excluded.hanzi != '' THEN excluded.hanzi ELSE hanzi END
	`, reading, hanzi, count)
	if err != nil {
		return fmt.Errorf("upserting reading: %w", err)
	}
	return nil
}

// Increment records one occurrence of a reading.
func (s *Store) Increment(reading string) error {
	return s.Add(reading, "", 1)
}

// Count returns how often a reading was seen. Unknown readings count 0.
func (s *Store) Count(reading string) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT count FROM readings WHERE reading = ?", reading,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying reading: %w", err)
	}
	return count, nil
}

// Entries returns corpus rows ordered most frequent first, ties broken by
// reading. A limit <= 0 returns everything.
func (s *Store) Entries(limit int) ([]ReadingCount, error) {
	query := "SELECT reading, hanzi, count FROM readings ORDER BY count DESC, reading ASC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var entries []ReadingCount
	for rows.Next() {
		var rc ReadingCount
		if err := rows.Scan(&rc.Reading, &rc.Hanzi, &rc.Count); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}
		entries = append(entries, rc)
	}

	return entries, rows.Err()
}

// Total returns the summed occurrence count across all readings.
func (s *Store) Total() (int64, error) {
	var total int64
	err := s.db.QueryRow("SELECT COALESCE(SUM(count), 0) FROM readings").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing counts: %w", err)
	}
	return total, nil
}

// Size returns the number of distinct readings.
func (s *Store) Size() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM readings").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting readings: %w", err)
	}
	return n, nil
}

// ApplyFrequencies looks up every candidate output in the corpus and sets
// its frequency, and marks the tableau included when its input form is
// attested. Returns the number of candidates with a nonzero frequency.
func (s *Store) ApplyFrequencies(t *ot.Tableau) (int, error) {
	inputCount, err := s.Count(t.Input)
	if err != nil {
		return 0, err
	}
	t.SetIncluded(inputCount > 0)

	attested := 0
	for _, cand := range t.Candidates() {
		count, err := s.Count(cand.Output)
		if err != nil {
			return attested, err
		}
		cand.SetFreq(count)
		if count > 0 {
			attested++
		}
	}

	return attested, nil
}

// Summary returns a short description of the corpus contents.
func (s *Store) Summary() (string, error) {
	size, err := s.Size()
	if err != nil {
		return "", err
	}
	total, err := s.Total()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Corpus: %s\n", s.path))
	sb.WriteString(fmt.Sprintf("  Readings: %d\n", size))
	sb.WriteString(fmt.Sprintf("  Tokens:   %d\n", total))

	return sb.String(), nil
}
