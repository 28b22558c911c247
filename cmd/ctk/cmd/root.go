// Package cmd contains all CLI commands for the CTK tool.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/ctk/internal/config"
	"github.com/f3rmion/ctk/internal/corpus"
	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/ot"
	"github.com/f3rmion/ctk/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ctk",
	Short: "Cantonese Tableau Kit - Optimality-Theoretic analysis of Cantonese syllables",
	Long: `CTK (Cantonese Tableau Kit) analyzes Cantonese syllables in LSHK
romanization with the machinery of Optimality Theory.

The pipeline:
  - Parse   → split a transcription into onset, nucleus, coda and tone
  - GEN     → derive repair candidates by deleting and inserting segments
  - EVAL    → score every candidate against a ranked set of violable
              constraints and render the violation tableau

Segment classes and the constraint set are plain YAML files in the config
directory, so the whole analysis is yours to reshape.

Running 'ctk' without arguments launches the interactive TUI.`,
	RunE: runUnifiedTUI,
}

var rootCorpusPath string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/ctk)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.Flags().StringVar(&rootCorpusPath, "corpus", "", "corpus database to open at startup")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("CTK")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadRegistry builds the segment registry from the config directory,
// falling back to the built-in LSHK inventory when no classes file exists.
func loadRegistry() (*lshk.Registry, error) {
	reg, err := config.LoadRegistry(getConfigDir())
	if err != nil {
		return nil, fmt.Errorf("loading segment classes: %w", err)
	}
	return reg, nil
}

// loadConstraints reads the constraint specs from the config directory and
// compiles them against the registry.
func loadConstraints(reg *lshk.Registry) ([]ot.Spec, []ot.Constraint, error) {
	specs, err := config.LoadConstraintSpecs(getConfigDir())
	if err != nil {
		return nil, nil, fmt.Errorf("loading constraints: %w", err)
	}
	constraints, err := ot.BuildAll(reg, specs)
	if err != nil {
		return nil, nil, fmt.Errorf("building constraints: %w", err)
	}
	return specs, constraints, nil
}

// runUnifiedTUI launches the unified TUI application.
func runUnifiedTUI(cmd *cobra.Command, args []string) error {
	// Ensure config directory is set up
	configDir := getConfigDir()
	ensureConfigSetup(configDir)

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	specs, constraints, err := loadConstraints(reg)
	if err != nil {
		return err
	}

	var app tui.AppModel
	if rootCorpusPath != "" {
		store, err := corpus.Open(rootCorpusPath)
		if err != nil {
			return fmt.Errorf("opening corpus: %w", err)
		}
		defer store.Close()
		app = tui.NewAppWithCorpus(reg, specs, constraints, store, rootCorpusPath)
	} else {
		app = tui.NewApp(reg, specs, constraints)
	}

	// Create and run unified TUI
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// ensureConfigSetup creates the config directory and writes the default
// YAML files if they are missing.
func ensureConfigSetup(configDir string) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return
	}

	if _, err := os.Stat(filepath.Join(configDir, config.ClassesFile)); os.IsNotExist(err) {
		config.SaveRegistryConfig(configDir, lshk.DefaultConfig())
	}

	if _, err := os.Stat(filepath.Join(configDir, config.ConstraintsFile)); os.IsNotExist(err) {
		config.SaveConstraintSpecs(configDir, config.DefaultConstraintSpecs())
	}
}
