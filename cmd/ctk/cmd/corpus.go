package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/f3rmion/ctk/internal/corpus"
	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Work with corpus frequency databases",
	Long: `Commands for building and inspecting reading-frequency databases.

Frequencies feed candidate rows in tableaux: an attested reading carries
its corpus count, everything else stays at zero.`,
}

var corpusImportCmd = &cobra.Command{
	Use:   "import <textfile>",
	Short: "Import a romanized text file",
	Long: `Read a whitespace-tokenized LSHK text file and count every token.

Tokens are lowercased and stripped of surrounding punctuation before
counting. Counts accumulate across imports.

Examples:
  ctk corpus import sentences.txt
  ctk corpus import sentences.txt --db corpus.db`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusImport,
}

var corpusAddCmd = &cobra.Command{
	Use:   "add <reading>",
	Short: "Add a single reading",
	Long: `Add attestations of one reading to the corpus, optionally with a
hanzi form.

Example:
  ctk corpus add sik1 --hanzi 識 --count 12`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusAdd,
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	RunE:  runCorpusStats,
}

var (
	corpusDB         string
	corpusAddHanzi   string
	corpusAddCount   int
	corpusStatsLimit int
)

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusAddCmd)
	corpusCmd.AddCommand(corpusStatsCmd)

	corpusCmd.PersistentFlags().StringVar(&corpusDB, "db", "", "corpus database (default is <config>/corpus.db)")
	corpusAddCmd.Flags().StringVar(&corpusAddHanzi, "hanzi", "", "hanzi form of the reading")
	corpusAddCmd.Flags().IntVar(&corpusAddCount, "count", 1, "number of attestations to add")
	corpusStatsCmd.Flags().IntVarP(&corpusStatsLimit, "limit", "n", 10, "Number of top readings to show")
}

// corpusDBPath resolves the database path, defaulting into the config dir.
func corpusDBPath() string {
	if corpusDB != "" {
		return corpusDB
	}
	return filepath.Join(getConfigDir(), "corpus.db")
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	path := corpusDBPath()
	store, err := corpus.Open(path)
	if err != nil {
		return fmt.Errorf("opening corpus: %w", err)
	}
	defer store.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening text file: %w", err)
	}
	defer f.Close()

	tokens := 0
	readings := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			reading := normalizeToken(field)
			if reading == "" {
				continue
			}
			if err := store.Increment(reading); err != nil {
				return fmt.Errorf("recording %q: %w", reading, err)
			}
			tokens++
			readings[reading] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading text file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d tokens (%d distinct readings) into %s\n",
		tokens, len(readings), path)

	return nil
}

// normalizeToken lowercases a token and strips surrounding punctuation.
// Tokens without a letter are dropped.
func normalizeToken(tok string) string {
	tok = strings.ToLower(strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
	for _, r := range tok {
		if unicode.IsLetter(r) {
			return tok
		}
	}
	return ""
}

func runCorpusAdd(cmd *cobra.Command, args []string) error {
	store, err := corpus.Open(corpusDBPath())
	if err != nil {
		return fmt.Errorf("opening corpus: %w", err)
	}
	defer store.Close()

	reading := strings.ToLower(args[0])
	if err := store.Add(reading, corpusAddHanzi, corpusAddCount); err != nil {
		return fmt.Errorf("adding reading: %w", err)
	}

	count, err := store.Count(reading)
	if err != nil {
		return err
	}
	fmt.Printf("%s now has %d attestation(s)\n", reading, count)

	return nil
}

func runCorpusStats(cmd *cobra.Command, args []string) error {
	store, err := corpus.Open(corpusDBPath())
	if err != nil {
		return fmt.Errorf("opening corpus: %w", err)
	}
	defer store.Close()

	summary, err := store.Summary()
	if err != nil {
		return err
	}
	fmt.Print(summary)

	entries, err := store.Entries(corpusStatsLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Top readings:")
	for _, e := range entries {
		hanzi := e.Hanzi
		if hanzi == "" {
			hanzi = "—"
		}
		fmt.Printf("  %-12s %-4s %d\n", e.Reading, hanzi, e.Count)
	}

	return nil
}
