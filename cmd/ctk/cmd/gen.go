package cmd

import (
	"fmt"

	"github.com/f3rmion/ctk/internal/ot"
	"github.com/f3rmion/ctk/internal/syllable"
	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen <transcription>",
	Short: "List GEN candidates for a transcription",
	Long: `Generate the candidate set for a transcription by deleting and
inserting segments. Depth one applies a single edit; depth two also chains
a deletion with an insertion.

The identity candidate always comes first. Duplicate outputs keep the
first edit that produced them.

Examples:
  ctk gen sik1
  ctk gen sik1 --two`,
	Args: cobra.ExactArgs(1),
	RunE: runGen,
}

var genTwo bool

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().BoolVar(&genTwo, "two", false, "apply up to two edits")
}

func runGen(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	parser := syllable.NewParser(reg)
	gen := ot.NewGenerator(reg, parser)

	input := args[0]
	var cands []*ot.Candidate
	if genTwo {
		cands = gen.GenTwo(input)
	} else {
		cands = gen.GenOne(input)
	}

	fmt.Printf("Input: %s (%d candidates)\n\n", input, len(cands))
	fmt.Printf("  %-14s %-18s %s\n", "OUTPUT", "PARSED", "EDIT")
	for _, c := range cands {
		edit := ""
		if e, ok := c.EditDesc(); ok {
			edit = e.String()
		}
		fmt.Printf("  %-14s %-18s %s\n", c.Output, c.Parsed.String(), edit)
	}

	return nil
}
