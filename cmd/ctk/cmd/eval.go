package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/f3rmion/ctk/internal/corpus"
	"github.com/f3rmion/ctk/internal/ot"
	"github.com/f3rmion/ctk/internal/syllable"
	"github.com/spf13/cobra"
)

// candidateJSON holds one candidate row. Violations is absent until the
// candidate has been evaluated.
type candidateJSON struct {
	Output     string         `json:"output"`
	Parsed     string         `json:"parsed"`
	Freq       int            `json:"freq"`
	Edit       string         `json:"edit,omitempty"`
	Violations map[string]int `json:"violations,omitempty"`
}

// tableauJSON is the envelope for an evaluated tableau.
type tableauJSON struct {
	Input       string          `json:"input"`
	Parsed      string          `json:"parsed"`
	Attested    bool            `json:"attested"`
	Constraints []string        `json:"constraints"`
	Candidates  []candidateJSON `json:"candidates"`
}

var evalCmd = &cobra.Command{
	Use:   "eval <transcription>",
	Short: "Evaluate a transcription against the constraint set",
	Long: `Build a tableau for a transcription: generate the candidate set,
score every candidate against the configured constraints and print the
violation table.

With --corpus, candidate frequencies are read from the given database
before evaluation.

Examples:
  ctk eval sik1
  ctk eval sduk1 --two --parsed
  ctk eval sik1 --corpus corpus.db --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

var (
	evalTwo    bool
	evalParsed bool
	evalFormat string
	evalOutput string
	evalCorpus string
)

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&evalTwo, "two", false, "apply up to two edits in GEN")
	evalCmd.Flags().BoolVar(&evalParsed, "parsed", false, "show parsed forms in tsv/csv output")
	evalCmd.Flags().StringVar(&evalFormat, "format", "tsv", "Output format: tsv, csv, json")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "", "Output file (stdout if not specified)")
	evalCmd.Flags().StringVar(&evalCorpus, "corpus", "", "corpus database to read frequencies from")
}

func runEval(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	parser := syllable.NewParser(reg)
	gen := ot.NewGenerator(reg, parser)

	_, constraints, err := loadConstraints(reg)
	if err != nil {
		return err
	}

	var store *corpus.Store
	if evalCorpus != "" {
		store, err = corpus.Open(evalCorpus)
		if err != nil {
			return fmt.Errorf("opening corpus: %w", err)
		}
		defer store.Close()
	}

	tab, err := buildTableau(parser, gen, constraints, store, args[0], evalTwo)
	if err != nil {
		return err
	}

	var output *os.File
	if evalOutput != "" {
		f, err := os.Create(evalOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	switch evalFormat {
	case "json":
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(tableauToJSON(tab)); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "tsv", "csv":
		sep := "\t"
		if evalFormat == "csv" {
			sep = ","
		}
		table := tab.Render(evalParsed)
		fmt.Fprintln(output, strings.Join(table.Header, sep))
		for _, row := range table.Rows {
			fmt.Fprintln(output, strings.Join(row, sep))
		}
	default:
		return fmt.Errorf("unknown format: %s", evalFormat)
	}

	fmt.Fprintf(os.Stderr, "Evaluated %d candidates against %d constraints\n",
		len(tab.Candidates()), len(tab.Constraints()))

	return nil
}

// buildTableau assembles, fills and evaluates a tableau for one input.
// With a store, corpus frequencies are applied before evaluation.
func buildTableau(parser *syllable.Parser, gen *ot.Generator, constraints []ot.Constraint, store *corpus.Store, input string, two bool) (*ot.Tableau, error) {
	tab := ot.NewTableau(parser, input)
	for _, c := range constraints {
		tab.AddConstraint(c)
	}

	if two {
		tab.MergeCandidates(gen.GenTwo(input)...)
	} else {
		tab.MergeCandidates(gen.GenOne(input)...)
	}

	if store != nil {
		if _, err := store.ApplyFrequencies(tab); err != nil {
			return nil, fmt.Errorf("applying corpus frequencies: %w", err)
		}
	}

	ot.Evaluate(tab)
	return tab, nil
}

// tableauToJSON flattens an evaluated tableau for serialization.
func tableauToJSON(tab *ot.Tableau) tableauJSON {
	out := tableauJSON{
		Input:       tab.Input,
		Parsed:      tab.ParsedInput.String(),
		Attested:    tab.Included,
		Constraints: []string{},
	}
	for _, c := range tab.Constraints() {
		out.Constraints = append(out.Constraints, c.Name)
	}
	for _, cand := range tab.Candidates() {
		out.Candidates = append(out.Candidates, toCandidateJSON(cand))
	}
	return out
}

// toCandidateJSON flattens one candidate for serialization.
func toCandidateJSON(c *ot.Candidate) candidateJSON {
	cj := candidateJSON{
		Output:     c.Output,
		Parsed:     c.Parsed.String(),
		Freq:       c.Freq,
		Violations: c.Violations,
	}
	if e, ok := c.EditDesc(); ok {
		cj.Edit = e.String()
	}
	return cj
}
