package cmd

import (
	"fmt"
	"strings"

	"github.com/f3rmion/ctk/internal/syllable"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <transcription>...",
	Short: "Parse LSHK transcriptions into syllable components",
	Long: `Parse one or more LSHK transcriptions and display each syllable's:
  - Onset (initial consonant, possibly empty)
  - Nucleus (vowel core)
  - Coda (final consonant, possibly empty)
  - Tone (1-6)
  - Atomic segments, as the candidate generator would edit them

Slot values that fail class membership are marked invalid.

Example:
  ctk parse sik1
  ctk parse gwong2 dung1 waa2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	parser := syllable.NewParser(reg)

	word := parser.ParseWord(strings.Join(args, " "))
	fmt.Printf("Parsed: %s\n\n", syllable.WordString(word))

	for _, ps := range word {
		segs, tone := parser.Segments(ps.Source)

		fmt.Printf("Syllable: %s\n", ps.Source)
		fmt.Printf("  Parsed:   %s\n", ps.String())
		fmt.Printf("  Onset:    %s\n", displayComponent(ps.Onset))
		fmt.Printf("  Nucleus:  %s\n", displayComponent(ps.Nucleus))
		fmt.Printf("  Coda:     %s\n", displayComponent(ps.Coda))
		fmt.Printf("  Tone:     %s\n", displayComponent(ps.Tone))
		fmt.Printf("  Segments: %s | tone %s\n", strings.Join(segs, " "), displayValue(tone))
		fmt.Println()
	}

	return nil
}

// displayComponent renders a slot value with its validity marker.
func displayComponent(c syllable.Component) string {
	v := displayValue(c.Value)
	if !c.Valid {
		v += " (invalid)"
	}
	return v
}

func displayValue(v string) string {
	if v == "" {
		return "Ø (null)"
	}
	return v
}
