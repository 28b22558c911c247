package syllable

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/f3rmion/ctk/internal/lshk"
)

// Parser decomposes LSHK transcriptions using the segment classes of a
// registry.
type Parser struct {
	reg       *lshk.Registry
	onsetRe   *regexp.Regexp // greedy consonant cluster at the front
	nucleusRe *regexp.Regexp // first licit nucleus after the onset
}

// NewParser creates a parser over the given registry.
func NewParser(reg *lshk.Registry) *Parser {
	return &Parser{
		reg:     reg,
		onsetRe: regexp.MustCompile(`^(?:` + reg.Resolve("consonant") + `)*`),
		// The nucleus shapes: a vowel run, a single vocalic or glide, the
		// digraph yu, a syllabic nasal, or the epenthetic placeholder V.
		nucleusRe: regexp.MustCompile(`^(?:[aeo]+|[iumljw]|yu|ng?|V)`),
	}
}

// Parse decomposes a transcription into onset, nucleus, coda and tone. It
// is total and deterministic: malformed material is assigned to the nearest
// slot and flagged invalid instead of producing an error, so edited
// candidate forms can still be reasoned about downstream.
func (p *Parser) Parse(transcription string) ParsedSyllable {
	var onset, nucleus, coda, tone string

	if transcription != "" && transcription != " " {
		segments := transcription

		// A single trailing digit is the tone marker.
		if r := []rune(segments); unicode.IsDigit(r[len(r)-1]) {
			tone = string(r[len(r)-1])
			segments = string(r[:len(r)-1])
		}

		runes := []rune(segments)
		switch {
		// A bare inventory segment is a syllabic nucleus ("m", "ng", "aa").
		case p.inClass("consonant", segments) || p.inClass("vowel", segments):
			nucleus = segments

		// Any other single character is filed as the nucleus so the
		// validity check can flag it.
		case len(runes) <= 1:
			nucleus = segments

		// Two characters split by the direct table.
		case len(runes) == 2:
			onset, nucleus, coda = p.splitPair(string(runes[0]), string(runes[1]))

		// Longer strings: greedy onset cluster, first licit nucleus,
		// remainder as coda.
		default:
			onset = p.onsetRe.FindString(segments)
			rest := segments[len(onset):]
			nucleus = p.nucleusRe.FindString(rest)
			coda = rest[len(nucleus):]

			// A parse that is all onset is a syllabic consonant: re-file
			// "ng" (from either edge) or the whole cluster as the nucleus.
			if nucleus == "" && coda == "" {
				switch {
				case strings.HasPrefix(onset, "ng"):
					nucleus, onset = onset[2:], "ng"
				case strings.HasSuffix(onset, "ng"):
					nucleus, onset = "ng", onset[:len(onset)-2]
				default:
					nucleus, onset = onset, ""
				}
			}
			// A leftover bare nasal onset is likewise the nucleus.
			if nucleus == "" && (onset == "m" || onset == "n" || onset == "ng") {
				nucleus, onset = onset, ""
			}
		}
	}

	return ParsedSyllable{
		Source:  transcription,
		Onset:   Component{Value: onset, Valid: onset == "" || p.inClass("consonant", onset)},
		Nucleus: Component{Value: nucleus, Valid: p.validNucleus(nucleus)},
		Coda:    Component{Value: coda, Valid: coda == "" || p.inClass("coda", coda)},
		Tone:    Component{Value: tone, Valid: tone != ""},
	}
}

// ParseWord parses a space-separated multi-syllable form.
func (p *Parser) ParseWord(word string) []ParsedSyllable {
	fields := strings.Fields(word)
	out := make([]ParsedSyllable, len(fields))
	for i, f := range fields {
		out[i] = p.Parse(f)
	}
	return out
}

// Segments splits a transcription into the atomic segments the generator
// edits, plus the tone marker. Cluster slots come apart into registry
// units, an unrecognized nucleus into single characters.
func (p *Parser) Segments(transcription string) ([]string, string) {
	ps := p.Parse(transcription)

	var segs []string
	segs = append(segs, p.splitCluster(ps.Onset.Value)...)
	segs = append(segs, p.splitNucleus(ps.Nucleus.Value)...)
	segs = append(segs, p.splitCluster(ps.Coda.Value)...)
	return segs, ps.Tone.Value
}

// splitPair assigns a two-character string to slots: an initial consonant
// starts the onset, a nasal before a vocalic is an onset, anything else is
// a nucleus-coda pair.
func (p *Parser) splitPair(first, second string) (onset, nucleus, coda string) {
	switch {
	case p.inClass("obstruent", first) || p.inClass("sibilant", first) ||
		first == "l" || first == "j" || first == "w" || first == "C":
		onset = first
		// Obstruents and sibilants cannot be syllabic, so a second one
		// must be a coda.
		if p.inClass("obstruent", second) || p.inClass("sibilant", second) {
			coda = second
		} else {
			nucleus = second
		}
	case (first == "m" || first == "n") &&
		(p.inClass("vowel", second) || second == "j" || second == "w"):
		onset, nucleus = first, second
	default:
		nucleus, coda = first, second
	}
	return onset, nucleus, coda
}

// splitCluster splits an onset or coda slot. Whole inventory consonants
// ("gw", "ng") stay intact; anything longer splits longest-unit first.
func (p *Parser) splitCluster(v string) []string {
	if v == "" {
		return nil
	}
	if p.inClass("consonant", v) {
		return []string{v}
	}
	return p.reg.SplitCluster(v)
}

// splitNucleus splits a nucleus slot into single characters unless the
// whole value is a vowel or syllabic sonorant ("aa" stays whole, "aai"
// comes apart).
func (p *Parser) splitNucleus(v string) []string {
	if v == "" {
		return nil
	}
	if p.inClass("vowel", v) || sonorantNuclei[v] {
		return []string{v}
	}
	var segs []string
	for _, r := range v {
		segs = append(segs, string(r))
	}
	return segs
}

// validNucleus reports whether a nucleus value can head a syllable: a
// vowel or one of the syllabic nasals m, n, ng.
func (p *Parser) validNucleus(nucleus string) bool {
	return p.inClass("vowel", nucleus) ||
		nucleus == "m" || nucleus == "n" || nucleus == "ng"
}

// inClass is a membership lookup that treats an unknown class as a miss.
func (p *Parser) inClass(class, segment string) bool {
	ok, err := p.reg.IsMember(class, segment)
	return err == nil && ok
}

var sonorantNuclei = map[string]bool{
	"ng": true, "m": true, "n": true, "l": true, "j": true, "w": true,
}
