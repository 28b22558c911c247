// Package config handles loading and saving user configuration for ctk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/ot"
)

// Configuration file names inside the config directory.
const (
	ClassesFile     = "classes.yaml"
	ConstraintsFile = "constraints.yaml"
)

// EnvConfigDir overrides the config directory location when set.
const EnvConfigDir = "CTK_CONFIG_DIR"

// GetConfigDir returns the configuration directory: $CTK_CONFIG_DIR if set,
// otherwise ~/.config/ctk.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ctk"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// LoadClasses loads a segment class configuration from a YAML file.
func LoadClasses(path string) (lshk.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return lshk.Config{}, fmt.Errorf("reading classes file: %w", err)
	}

	var cfg lshk.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return lshk.Config{}, fmt.Errorf("parsing classes file: %w", err)
	}

	return cfg, nil
}

// SaveClasses saves a segment class configuration to a YAML file.
func SaveClasses(path string, cfg lshk.Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling classes: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing classes file: %w", err)
	}

	return nil
}

// LoadRegistry builds the segment registry from classes.yaml in the given
// directory. A missing file falls back to the shipped LSHK table.
func LoadRegistry(dir string) (*lshk.Registry, error) {
	cfg, err := LoadClasses(filepath.Join(dir, ClassesFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lshk.Default(), nil
		}
		return nil, err
	}

	reg, err := lshk.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}
	return reg, nil
}

// SaveRegistryConfig writes a class configuration to classes.yaml in the
// given directory.
func SaveRegistryConfig(dir string, cfg lshk.Config) error {
	return SaveClasses(filepath.Join(dir, ClassesFile), cfg)
}

// LoadConstraintSpecs loads the constraint list from constraints.yaml in
// the given directory. A missing file falls back to the default set.
// Specs are validated when built against a registry, not at load time.
func LoadConstraintSpecs(dir string) ([]ot.Spec, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConstraintsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConstraintSpecs(), nil
		}
		return nil, fmt.Errorf("reading constraints file: %w", err)
	}

	var wrapper struct {
		Constraints []ot.Spec `yaml:"constraints"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parsing constraints file: %w", err)
	}

	return wrapper.Constraints, nil
}

// SaveConstraintSpecs writes the constraint list to constraints.yaml in
// the given directory.
func SaveConstraintSpecs(dir string, specs []ot.Spec) error {
	wrapper := struct {
		Constraints []ot.Spec `yaml:"constraints"`
	}{Constraints: specs}

	out, err := yaml.Marshal(&wrapper)
	if err != nil {
		return fmt.Errorf("marshaling constraints: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ConstraintsFile), out, 0644); err != nil {
		return fmt.Errorf("writing constraints file: %w", err)
	}

	return nil
}

// DefaultConstraintSpecs returns the constraint set used when no
// constraints.yaml exists: the classic onset and coda preferences plus
// faithfulness to the input segments.
func DefaultConstraintSpecs() []ot.Spec {
	present := true
	return []ot.Spec{
		{Name: "Onset", Kind: "component-check", Slot: "onset", Presence: &present,
			Description: "syllables have onsets"},
		{Name: "NoCoda", Kind: "component-check", Slot: "coda",
			Description: "syllables end open"},
		{Name: "NoNgOnset", Kind: "markedness", Slot: "onset", Members: []string{"ng"}, Ban: true,
			Description: "initial ng is avoided"},
		{Name: "OCP-Sib", Kind: "phonotactic", Pattern: "[czs][czs]",
			Description: "adjacent sibilants are banned"},
		{Name: "Dep-V", Kind: "dep", Segment: "V",
			Description: "no vowel epenthesis"},
		{Name: "Dep-C", Kind: "dep", Segment: "C",
			Description: "no consonant epenthesis"},
		{Name: "Max", Kind: "max",
			Description: "no deletion"},
		{Name: "Max/V_", Kind: "max", Left: "vowel",
			Description: "no deletion directly after a vowel"},
	}
}
