// Package lshk defines the LSHK segment classes and the pattern registry
// used for classifying Cantonese segments.
package lshk

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrUnknownClass is returned when an unregistered class name is requested.
var ErrUnknownClass = errors.New("unknown segment class")

// Class is one natural class of segments: a regex pattern for matching plus
// the explicit member inventory.
type Class struct {
	Name    string   `yaml:"name" json:"name"`       // Class identifier (e.g., "obstruent")
	Pattern string   `yaml:"pattern" json:"pattern"` // Regex matched against a whole segment
	Members []string `yaml:"members" json:"members"` // Licit segments of the class
}

// Config is the YAML shape of a segment-class registry.
type Config struct {
	Classes     []Class  `yaml:"classes" json:"classes"`
	Insertables []string `yaml:"insertables" json:"insertables"` // Epenthetic segment inventory
}

// Registry holds the compiled segment classes and the insertable inventory.
// Immutable after construction; safe for concurrent readers.
type Registry struct {
	classes      map[string]Class
	order        []string
	compiled     map[string]*regexp.Regexp
	members      map[string]map[string]bool
	insertables  []string
	clusterUnits []string // consonant members, longest first, for SplitCluster
}

// New builds a registry from a config, compiling every class pattern.
func New(cfg Config) (*Registry, error) {
	r := &Registry{
		classes:  make(map[string]Class, len(cfg.Classes)),
		compiled: make(map[string]*regexp.Regexp, len(cfg.Classes)),
		members:  make(map[string]map[string]bool, len(cfg.Classes)),
	}

	for _, c := range cfg.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("segment class with empty name")
		}
		if _, ok := r.classes[c.Name]; ok {
			return nil, fmt.Errorf("segment class %q defined twice", c.Name)
		}
		re, err := regexp.Compile("^(?:" + c.Pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("compiling pattern for class %q: %w", c.Name, err)
		}

		r.classes[c.Name] = c
		r.order = append(r.order, c.Name)
		r.compiled[c.Name] = re
		set := make(map[string]bool, len(c.Members))
		for _, m := range c.Members {
			set[m] = true
		}
		r.members[c.Name] = set
	}

	r.insertables = append(r.insertables, cfg.Insertables...)
	if len(r.insertables) == 0 {
		r.insertables = []string{"V", "C"}
	}

	if c, ok := r.classes["consonant"]; ok {
		r.clusterUnits = make([]string, len(c.Members))
		copy(r.clusterUnits, c.Members)
		sort.SliceStable(r.clusterUnits, func(i, j int) bool {
			return len(r.clusterUnits[i]) > len(r.clusterUnits[j])
		})
	}

	return r, nil
}

// Default returns the shipped LSHK registry. The member lists and patterns
// mirror the standard romanization inventory; "V" and "C" are the epenthetic
// placeholder segments.
func Default() *Registry {
	r, err := New(DefaultConfig())
	if err != nil {
		// The shipped table is fixed; a compile failure here is a programming error.
		panic(fmt.Sprintf("lshk: default registry: %v", err))
	}
	return r
}

// DefaultConfig returns the config behind Default, usable as a template for
// classes.yaml.
func DefaultConfig() Config {
	return Config{
		Classes: []Class{
			{
				Name:    "obstruent",
				Pattern: `[bpdtgkfh]w?`,
				Members: []string{"b", "p", "f", "d", "t", "g", "gw", "k", "kw", "h"},
			},
			{
				Name:    "sibilant",
				Pattern: `[czs]`,
				Members: []string{"c", "z", "s"},
			},
			{
				Name:    "sonorant",
				Pattern: `[mnwlj]g?`,
				Members: []string{"l", "j", "m", "n", "ng", "w"},
			},
			{
				Name:    "consonant",
				Pattern: `[Cbpdtgkmnfsczhljw][wg]?`,
				Members: []string{
					"b", "p", "f", "d", "t", "g", "gw", "k", "kw", "h",
					"c", "z", "s",
					"l", "j", "m", "n", "ng", "w",
					"C",
				},
			},
			{
				Name:    "coda",
				Pattern: `[Cptkmnjw]g?`,
				Members: []string{"m", "n", "ng", "p", "t", "k", "j", "w", "C"},
			},
			{
				Name:    "vowel",
				Pattern: `[Vaeo]+|yu|[iu]`,
				Members: []string{"aa", "a", "e", "i", "o", "oe", "eo", "u", "yu", "V"},
			},
		},
		Insertables: []string{"V", "C"},
	}
}

// TrigramInsertables is the alternative epenthetic inventory that splits the
// consonant placeholder into obstruent/sibilant/sonorant placeholders.
var TrigramInsertables = []string{"V", "T", "S", "R"}

// Has reports whether a class is registered.
func (r *Registry) Has(class string) bool {
	_, ok := r.classes[class]
	return ok
}

// Classes returns the class names in registration order.
func (r *Registry) Classes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Matches reports whether segment matches the class pattern (whole-segment
// match). Unknown class names return ErrUnknownClass.
func (r *Registry) Matches(class, segment string) (bool, error) {
	re, ok := r.compiled[class]
	if !ok {
		return false, fmt.Errorf("class %q: %w", class, ErrUnknownClass)
	}
	return re.MatchString(segment), nil
}

// IsMember reports whether segment is in the class member inventory. Unlike
// Matches this is an exact lookup, used by the syllable grammar.
func (r *Registry) IsMember(class, segment string) (bool, error) {
	set, ok := r.members[class]
	if !ok {
		return false, fmt.Errorf("class %q: %w", class, ErrUnknownClass)
	}
	return set[segment], nil
}

// Members returns a copy of the class member list.
func (r *Registry) Members(class string) ([]string, error) {
	c, ok := r.classes[class]
	if !ok {
		return nil, fmt.Errorf("class %q: %w", class, ErrUnknownClass)
	}
	out := make([]string, len(c.Members))
	copy(out, c.Members)
	return out, nil
}

// Pattern returns the raw (unanchored) pattern of a class.
func (r *Registry) Pattern(class string) (string, error) {
	c, ok := r.classes[class]
	if !ok {
		return "", fmt.Errorf("class %q: %w", class, ErrUnknownClass)
	}
	return c.Pattern, nil
}

// Resolve maps a class name to its pattern; anything that is not a
// registered class is passed through unchanged as a raw regex. Used when
// building constraints from config, where context fields may name a class or
// spell a pattern directly.
func (r *Registry) Resolve(nameOrPattern string) string {
	if c, ok := r.classes[nameOrPattern]; ok {
		return c.Pattern
	}
	return nameOrPattern
}

// Insertables returns a copy of the epenthetic segment inventory.
func (r *Registry) Insertables() []string {
	out := make([]string, len(r.insertables))
	copy(out, r.insertables)
	return out
}

// ClassesOf returns the names of every class the segment belongs to (by
// pattern match), in registration order.
func (r *Registry) ClassesOf(segment string) []string {
	var out []string
	for _, name := range r.order {
		if r.compiled[name].MatchString(segment) {
			out = append(out, name)
		}
	}
	return out
}

// SplitCluster splits a consonant cluster into atomic segments, longest
// member first ("ngk" → ng k). Runs of characters that form no registered
// consonant fall back to single characters so malformed material still
// yields positions for editing.
func (r *Registry) SplitCluster(s string) []string {
	var out []string
	for len(s) > 0 {
		matched := ""
		for _, m := range r.clusterUnits {
			if strings.HasPrefix(s, m) {
				matched = m
				break
			}
		}
		if matched == "" {
			_, size := firstRune(s)
			matched = s[:size]
		}
		out = append(out, matched)
		s = s[len(matched):]
	}
	return out
}

func firstRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

// Context pattern helpers. These compose an output-string regex from a
// segment pattern and a class context, for phonotactic-style constraints.

// PostVowel returns a pattern matching seg directly after a vowel.
func (r *Registry) PostVowel(seg string) string {
	return "(" + r.Resolve("vowel") + ")(" + seg + ")"
}

// PreVowel returns a pattern matching seg directly before a vowel.
func (r *Registry) PreVowel(seg string) string {
	return "(" + seg + ")(" + r.Resolve("vowel") + ")"
}

// PostConsonant returns a pattern matching seg directly after a consonant.
func (r *Registry) PostConsonant(seg string) string {
	return "(" + r.Resolve("consonant") + ")(" + seg + ")"
}

// PreConsonant returns a pattern matching seg directly before a consonant.
func (r *Registry) PreConsonant(seg string) string {
	return "(" + seg + ")(" + r.Resolve("consonant") + ")"
}
