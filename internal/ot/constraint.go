package ot

import (
	"fmt"
	"regexp"

	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/syllable"
)

// Kind tags a constraint with the generic constructor that produced it.
type Kind string

const (
	KindComponentCheck Kind = "component-check"
	KindPhonotactic    Kind = "phonotactic"
	KindDep            Kind = "dep"
	KindMax            Kind = "max"

	// Classification tags accepted for hand-built constraints.
	KindMarkedness   Kind = "markedness"
	KindProsodic     Kind = "prosodic"
	KindFaithfulness Kind = "faithfulness"
)

// Constraint is one scoring rule: a pure function from a candidate to a
// violation count. Constraints are immutable once built and reusable
// across tableaux.
type Constraint struct {
	Name        string
	Kind        Kind
	Description string

	score func(*Candidate) int
}

// NewConstraint wraps a hand-written scoring function. The generic
// constructors below cover the common cases; this is the escape hatch for
// one-off markedness or prosodic rules.
func NewConstraint(name string, kind Kind, desc string, score func(*Candidate) int) Constraint {
	return Constraint{Name: name, Kind: kind, Description: desc, score: score}
}

// Score applies the constraint to a candidate. Counts are clamped at zero
// so a misbehaving hand-built function cannot produce negative violations.
func (c Constraint) Score(cand *Candidate) int {
	n := c.score(cand)
	if n < 0 {
		return 0
	}
	return n
}

// ComponentCheck builds a constraint that scores 1 when the presence of a
// component slot does not match want. A slot counts as present when it
// holds a non-empty value that is valid for the slot. Unknown slot names
// return ErrInvalidSlot.
func ComponentCheck(name, desc, slot string, want bool) (Constraint, error) {
	if !validSlot(slot) {
		return Constraint{}, fmt.Errorf("slot %q: %w", slot, syllable.ErrInvalidSlot)
	}
	return Constraint{
		Name:        name,
		Kind:        KindComponentCheck,
		Description: desc,
		score: func(c *Candidate) int {
			comp, _ := c.Parsed.Component(slot)
			present := comp.Value != "" && comp.Valid
			if present != want {
				return 1
			}
			return 0
		},
	}, nil
}

// ComponentCondition builds a constraint on the surface value of a slot.
// With ban set it scores 1 when the value is one of members; otherwise it
// scores 1 when the value is not. Unknown slot names return ErrInvalidSlot.
func ComponentCondition(name, desc, slot string, members []string, ban bool) (Constraint, error) {
	if !validSlot(slot) {
		return Constraint{}, fmt.Errorf("slot %q: %w", slot, syllable.ErrInvalidSlot)
	}
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	return Constraint{
		Name:        name,
		Kind:        KindMarkedness,
		Description: desc,
		score: func(c *Candidate) int {
			comp, _ := c.Parsed.Component(slot)
			if set[comp.Value] == ban {
				return 1
			}
			return 0
		},
	}, nil
}

// Phonotactic builds a constraint that counts the non-overlapping matches
// of pattern in the candidate's surface output.
func Phonotactic(name, desc, pattern string) (Constraint, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Constraint{}, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return Constraint{
		Name:        name,
		Kind:        KindPhonotactic,
		Description: desc,
		score: func(c *Candidate) int {
			return len(re.FindAllString(c.Output, -1))
		},
	}, nil
}

// ContextSpec restricts which edits a Dep or Max constraint counts. Each
// field is a pattern matched against a whole segment: Segment against the
// inserted or deleted segment itself, Left and Right against its immediate
// neighbors. An empty field is unconstrained; a non-empty edge field fails
// to match when the edit site has no neighbor on that side.
type ContextSpec struct {
	Segment string
	Left    string
	Right   string
}

// GenericDep builds an anti-epenthesis constraint: it scores 1 when the
// candidate's edit inserted a segment whose context in the output form
// matches spec. Candidates without an insertion edit score 0, including
// manually built candidates with no edit description at all.
func GenericDep(name, desc string, spec ContextSpec) (Constraint, error) {
	m, err := compileContext(spec)
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint %q: %w", name, err)
	}
	return Constraint{
		Name:        name,
		Kind:        KindDep,
		Description: desc,
		score: func(c *Candidate) int {
			edit, ok := c.EditDesc()
			if !ok {
				return 0
			}
			// The insertion's neighbors live in the segment slice the
			// insertion was applied to.
			var base []string
			switch edit.Kind {
			case EditInsertion:
				base = c.inputSegs
			case EditDeletionInsertion:
				base = deleteAt(c.inputSegs, edit.DelPos)
			default:
				return 0
			}
			left, hasLeft := neighbor(base, edit.InsPos-1)
			right, hasRight := neighbor(base, edit.InsPos)
			if m.matches(edit.InsSeg, left, hasLeft, right, hasRight) {
				return 1
			}
			return 0
		},
	}, nil
}

// GenericMax builds an anti-deletion constraint, symmetric to GenericDep:
// it scores 1 when the candidate's edit deleted a segment whose original
// context in the input form matches spec.
func GenericMax(name, desc string, spec ContextSpec) (Constraint, error) {
	m, err := compileContext(spec)
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint %q: %w", name, err)
	}
	return Constraint{
		Name:        name,
		Kind:        KindMax,
		Description: desc,
		score: func(c *Candidate) int {
			edit, ok := c.EditDesc()
			if !ok {
				return 0
			}
			if edit.Kind != EditDeletion && edit.Kind != EditDeletionInsertion {
				return 0
			}
			left, hasLeft := neighbor(c.inputSegs, edit.DelPos-1)
			right, hasRight := neighbor(c.inputSegs, edit.DelPos+1)
			if m.matches(edit.DelSeg, left, hasLeft, right, hasRight) {
				return 1
			}
			return 0
		},
	}, nil
}

type contextMatcher struct {
	segment *regexp.Regexp // nil means unconstrained
	left    *regexp.Regexp
	right   *regexp.Regexp
}

func compileContext(spec ContextSpec) (contextMatcher, error) {
	var m contextMatcher
	var err error
	if m.segment, err = compileAnchored(spec.Segment); err != nil {
		return m, err
	}
	if m.left, err = compileAnchored(spec.Left); err != nil {
		return m, err
	}
	m.right, err = compileAnchored(spec.Right)
	return m, err
}

func compileAnchored(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling context pattern %q: %w", pattern, err)
	}
	return re, nil
}

func (m contextMatcher) matches(seg, left string, hasLeft bool, right string, hasRight bool) bool {
	if m.segment != nil && !m.segment.MatchString(seg) {
		return false
	}
	if m.left != nil && (!hasLeft || !m.left.MatchString(left)) {
		return false
	}
	if m.right != nil && (!hasRight || !m.right.MatchString(right)) {
		return false
	}
	return true
}

func neighbor(segs []string, i int) (string, bool) {
	if i < 0 || i >= len(segs) {
		return "", false
	}
	return segs[i], true
}

func validSlot(slot string) bool {
	for _, s := range syllable.Slots() {
		if s == slot {
			return true
		}
	}
	return false
}

// Spec is the serialized form of a constraint, as stored in
// constraints.yaml. Which fields apply depends on the kind.
type Spec struct {
	Name        string `yaml:"name" json:"name"`
	Kind        string `yaml:"kind" json:"kind"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Slot     string   `yaml:"slot,omitempty" json:"slot,omitempty"`         // component-check, markedness
	Presence *bool    `yaml:"presence,omitempty" json:"presence,omitempty"` // component-check
	Members  []string `yaml:"members,omitempty" json:"members,omitempty"`   // markedness
	Ban      bool     `yaml:"ban,omitempty" json:"ban,omitempty"`           // markedness

	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"` // phonotactic

	Segment string `yaml:"segment,omitempty" json:"segment,omitempty"` // dep, max
	Left    string `yaml:"left,omitempty" json:"left,omitempty"`       // dep, max
	Right   string `yaml:"right,omitempty" json:"right,omitempty"`     // dep, max
}

// Build constructs a constraint from its serialized spec. Context and
// phonotactic fields may name a registry class or spell a raw pattern;
// class names resolve to their patterns.
func Build(reg *lshk.Registry, s Spec) (Constraint, error) {
	switch Kind(s.Kind) {
	case KindComponentCheck:
		want := false
		if s.Presence != nil {
			want = *s.Presence
		}
		return ComponentCheck(s.Name, s.Description, s.Slot, want)
	case KindMarkedness:
		return ComponentCondition(s.Name, s.Description, s.Slot, s.Members, s.Ban)
	case KindPhonotactic:
		return Phonotactic(s.Name, s.Description, reg.Resolve(s.Pattern))
	case KindDep:
		return GenericDep(s.Name, s.Description, resolveContext(reg, s))
	case KindMax:
		return GenericMax(s.Name, s.Description, resolveContext(reg, s))
	}
	return Constraint{}, fmt.Errorf("constraint %q: unknown kind %q", s.Name, s.Kind)
}

// BuildAll builds every spec in order, failing on the first bad one.
func BuildAll(reg *lshk.Registry, specs []Spec) ([]Constraint, error) {
	out := make([]Constraint, 0, len(specs))
	for _, s := range specs {
		c, err := Build(reg, s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func resolveContext(reg *lshk.Registry, s Spec) ContextSpec {
	return ContextSpec{
		Segment: reg.Resolve(s.Segment),
		Left:    reg.Resolve(s.Left),
		Right:   reg.Resolve(s.Right),
	}
}
