package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/ctk/internal/config"
	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize CTK configuration",
	Long: `Initialize CTK configuration files in your config directory.

This creates template YAML files for:
  - classes.yaml      (segment classes and insertable segments)
  - constraints.yaml  (the violable constraint set, in ranking order)

You should then edit these files to adjust the segment inventory or the
constraint ranking to your analysis.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	// Refuse to clobber an edited config
	if !force {
		for _, file := range []string{config.ClassesFile, config.ConstraintsFile} {
			if _, err := os.Stat(filepath.Join(configDir, file)); err == nil {
				return fmt.Errorf("%s already exists in %s\nUse --force to overwrite", file, configDir)
			}
		}
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	fmt.Printf("Initializing CTK configuration in %s\n\n", configDir)

	if err := config.SaveRegistryConfig(configDir, lshk.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Created %s\n", config.ClassesFile)

	if err := config.SaveConstraintSpecs(configDir, config.DefaultConstraintSpecs()); err != nil {
		return err
	}
	fmt.Printf("  Created %s\n", config.ConstraintsFile)

	fmt.Println()
	fmt.Println("Configuration initialized!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit classes.yaml to adjust segment classes or insertables")
	fmt.Println("  2. Edit constraints.yaml to reorder or extend the constraint set")
	fmt.Printf("  3. Run 'ctk parse <syllable>' to test a parse\n")
	fmt.Printf("  4. Run 'ctk eval <syllable>' to evaluate a tableau\n")

	return nil
}
