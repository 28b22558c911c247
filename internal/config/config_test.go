package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/ot"
)

func TestGetConfigDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/ctk-test-config")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if dir != "/tmp/ctk-test-config" {
		t.Errorf("GetConfigDir() = %q, want %q", dir, "/tmp/ctk-test-config")
	}
}

func TestGetConfigDirDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	want := filepath.Join(home, ".config", "ctk")
	if dir != want {
		t.Errorf("GetConfigDir() = %q, want %q", dir, want)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ctk")
	t.Setenv(EnvConfigDir, dir)

	got, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("EnsureConfigDir() = %q, want %q", got, dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat(%q) error = %v", dir, err)
	}
	if !info.IsDir() {
		t.Errorf("%q is not a directory", dir)
	}
}

func TestClassesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ClassesFile)

	cfg := lshk.Config{
		Classes: []lshk.Class{
			{Name: "stop", Pattern: "[ptk]", Members: []string{"p", "t", "k"}},
			{Name: "vowel", Pattern: "[aiu]", Members: []string{"a", "i", "u"}},
		},
		Insertables: []string{"V"},
	}

	if err := SaveClasses(path, cfg); err != nil {
		t.Fatalf("SaveClasses() error = %v", err)
	}

	got, err := LoadClasses(path)
	if err != nil {
		t.Fatalf("LoadClasses() error = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("LoadClasses() = %+v, want %+v", got, cfg)
	}
}

func TestLoadClassesMissing(t *testing.T) {
	_, err := LoadClasses(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadClasses() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoadClassesBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ClassesFile)
	if err := os.WriteFile(path, []byte("classes: [not: closed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadClasses(path); err == nil {
		t.Error("LoadClasses() expected parse error, got nil")
	}
}

func TestLoadRegistryDefault(t *testing.T) {
	reg, err := LoadRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	// The fallback registry carries the shipped LSHK classes.
	if got := reg.Resolve("vowel"); got != "[Vaeo]+|yu|[iu]" {
		t.Errorf("Resolve(vowel) = %q, want shipped LSHK pattern", got)
	}
	if !reflect.DeepEqual(reg.Insertables(), []string{"V", "C"}) {
		t.Errorf("Insertables() = %v, want [V C]", reg.Insertables())
	}
}

func TestLoadRegistryCustom(t *testing.T) {
	dir := t.TempDir()
	cfg := lshk.Config{
		Classes: []lshk.Class{
			{Name: "nasal", Pattern: "[mn]g?", Members: []string{"m", "n", "ng"}},
		},
		Insertables: []string{"N"},
	}
	if err := SaveRegistryConfig(dir, cfg); err != nil {
		t.Fatalf("SaveRegistryConfig() error = %v", err)
	}

	reg, err := LoadRegistry(dir)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}

	ok, err := reg.IsMember("nasal", "ng")
	if err != nil {
		t.Fatalf("IsMember() error = %v", err)
	}
	if !ok {
		t.Error("IsMember(nasal, ng) = false, want true")
	}
	if !reflect.DeepEqual(reg.Insertables(), []string{"N"}) {
		t.Errorf("Insertables() = %v, want [N]", reg.Insertables())
	}
}

func TestLoadRegistryInvalidPattern(t *testing.T) {
	dir := t.TempDir()
	cfg := lshk.Config{
		Classes: []lshk.Class{
			{Name: "broken", Pattern: "([", Members: []string{"x"}},
		},
	}
	if err := SaveRegistryConfig(dir, cfg); err != nil {
		t.Fatalf("SaveRegistryConfig() error = %v", err)
	}

	if _, err := LoadRegistry(dir); err == nil {
		t.Error("LoadRegistry() expected error for invalid pattern, got nil")
	}
}

func TestConstraintSpecsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	present := true
	specs := []ot.Spec{
		{Name: "Onset", Kind: "component-check", Slot: "onset", Presence: &present,
			Description: "syllables have onsets"},
		{Name: "Max/V_", Kind: "max", Left: "vowel",
			Description: "no deletion directly after a vowel"},
	}

	if err := SaveConstraintSpecs(dir, specs); err != nil {
		t.Fatalf("SaveConstraintSpecs() error = %v", err)
	}

	got, err := LoadConstraintSpecs(dir)
	if err != nil {
		t.Fatalf("LoadConstraintSpecs() error = %v", err)
	}
	if !reflect.DeepEqual(got, specs) {
		t.Errorf("LoadConstraintSpecs() = %+v, want %+v", got, specs)
	}
}

func TestLoadConstraintSpecsDefault(t *testing.T) {
	specs, err := LoadConstraintSpecs(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConstraintSpecs() error = %v", err)
	}
	if !reflect.DeepEqual(specs, DefaultConstraintSpecs()) {
		t.Errorf("LoadConstraintSpecs() on empty dir = %+v, want default set", specs)
	}
}

func TestLoadConstraintSpecsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConstraintsFile)
	if err := os.WriteFile(path, []byte("constraints: {oops"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConstraintSpecs(dir); err == nil {
		t.Error("LoadConstraintSpecs() expected parse error, got nil")
	}
}

// The shipped defaults must build cleanly against the shipped registry.
func TestDefaultConstraintSpecsBuild(t *testing.T) {
	constraints, err := ot.BuildAll(lshk.Default(), DefaultConstraintSpecs())
	if err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}
	if len(constraints) != len(DefaultConstraintSpecs()) {
		t.Errorf("BuildAll() built %d constraints, want %d",
			len(constraints), len(DefaultConstraintSpecs()))
	}
	for _, c := range constraints {
		if c.Name == "" {
			t.Error("built constraint with empty name")
		}
	}
}
