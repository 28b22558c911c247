// Package syllable parses LSHK Cantonese transcriptions into their
// structural components: onset, nucleus, coda and tone.
package syllable

import (
	"errors"
	"fmt"
	"strings"
)

// Slot names accepted by ParsedSyllable.Component and the component
// constraints.
const (
	SlotOnset   = "onset"
	SlotNucleus = "nucleus"
	SlotCoda    = "coda"
	SlotTone    = "tone"
)

// ErrInvalidSlot reports a component slot name that is not one of onset,
// nucleus, coda or tone.
var ErrInvalidSlot = errors.New("invalid component slot")

// Slots returns the component slot names in structural order.
func Slots() []string {
	return []string{SlotOnset, SlotNucleus, SlotCoda, SlotTone}
}

// Component is one structural slot of a parsed syllable.
type Component struct {
	Value string // surface material assigned to the slot, may be empty
	Valid bool   // whether the value is licit for the slot
}

// ParsedSyllable is the decomposition of a single transcription. Parsing
// never fails: malformed material lands in the nearest slot with its Valid
// flag cleared.
type ParsedSyllable struct {
	Source  string // the transcription as given
	Onset   Component
	Nucleus Component
	Coda    Component
	Tone    Component
}

// Component returns the named slot. Unknown names return ErrInvalidSlot.
func (ps ParsedSyllable) Component(slot string) (Component, error) {
	switch slot {
	case SlotOnset:
		return ps.Onset, nil
	case SlotNucleus:
		return ps.Nucleus, nil
	case SlotCoda:
		return ps.Coda, nil
	case SlotTone:
		return ps.Tone, nil
	}
	return Component{}, fmt.Errorf("slot %q: %w", slot, ErrInvalidSlot)
}

// String renders the parse in dotted form, one component per slot:
// "sik1" becomes "s.i.k.1". Empty slots stay empty between the dots.
func (ps ParsedSyllable) String() string {
	return ps.Onset.Value + "." + ps.Nucleus.Value + "." + ps.Coda.Value + "." + ps.Tone.Value
}

// WordString renders a multi-syllable parse, dotted syllables joined by
// spaces.
func WordString(word []ParsedSyllable) string {
	parts := make([]string, len(word))
	for i, ps := range word {
		parts[i] = ps.String()
	}
	return strings.Join(parts, " ")
}
