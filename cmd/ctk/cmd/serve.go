package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/f3rmion/ctk/internal/corpus"
	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/ot"
	"github.com/f3rmion/ctk/internal/syllable"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

// componentJSON is one syllable slot with its validity flag.
type componentJSON struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// syllableJSON is the wire form of a parsed syllable.
type syllableJSON struct {
	Source  string        `json:"source"`
	Parsed  string        `json:"parsed"`
	Onset   componentJSON `json:"onset"`
	Nucleus componentJSON `json:"nucleus"`
	Coda    componentJSON `json:"coda"`
	Tone    componentJSON `json:"tone"`
}

type parseResponse struct {
	Word      string         `json:"word"`
	Syllables []syllableJSON `json:"syllables"`
}

type genResponse struct {
	Input      string          `json:"input"`
	Depth      string          `json:"depth"`
	Candidates []candidateJSON `json:"candidates"`
}

type classJSON struct {
	Name    string   `json:"name"`
	Pattern string   `json:"pattern"`
	Members []string `json:"members,omitempty"`
}

type classesResponse struct {
	Classes     []classJSON `json:"classes"`
	Insertables []string    `json:"insertables"`
}

type constraintsResponse struct {
	Constraints []ot.Spec `json:"constraints"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis engine over HTTP",
	Long: `Expose parsing, candidate generation and tableau evaluation as a
JSON API.

Endpoints:
  GET /api/parse?word=<transcriptions>    parse syllables
  GET /api/gen?input=<transcription>      list GEN candidates (&depth=two)
  GET /api/tableau?input=<transcription>  evaluate a tableau (&depth=two)
  GET /api/classes                        segment classes and insertables
  GET /api/constraints                    the configured constraint set

Example:
  ctk serve --addr :8080 --corpus corpus.db`,
	RunE: runServe,
}

var (
	serveAddr   string
	serveCorpus string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveCorpus, "corpus", "", "corpus database to read frequencies from")
}

func runServe(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	specs, constraints, err := loadConstraints(reg)
	if err != nil {
		return err
	}
	parser := syllable.NewParser(reg)
	gen := ot.NewGenerator(reg, parser)

	var store *corpus.Store
	if serveCorpus != "" {
		store, err = corpus.Open(serveCorpus)
		if err != nil {
			return fmt.Errorf("opening corpus: %w", err)
		}
		defer store.Close()
		log.Printf("corpus loaded from %s", serveCorpus)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", handleParse(parser))
	mux.HandleFunc("/api/gen", handleGen(gen))
	mux.HandleFunc("/api/tableau", handleTableau(parser, gen, constraints, store))
	mux.HandleFunc("/api/classes", handleClasses(reg))
	mux.HandleFunc("/api/constraints", handleConstraints(specs))

	log.Printf("listening on %s", serveAddr)
	if err := http.ListenAndServe(serveAddr, cors.Default().Handler(mux)); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func toSyllableJSON(ps syllable.ParsedSyllable) syllableJSON {
	return syllableJSON{
		Source:  ps.Source,
		Parsed:  ps.String(),
		Onset:   componentJSON{Value: ps.Onset.Value, Valid: ps.Onset.Valid},
		Nucleus: componentJSON{Value: ps.Nucleus.Value, Valid: ps.Nucleus.Valid},
		Coda:    componentJSON{Value: ps.Coda.Value, Valid: ps.Coda.Valid},
		Tone:    componentJSON{Value: ps.Tone.Value, Valid: ps.Tone.Valid},
	}
}

// ---- handlers -----------------------------------------------------------

func handleParse(parser *syllable.Parser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}

		parsedWord := parser.ParseWord(word)
		syllables := make([]syllableJSON, 0, len(parsedWord))
		for _, ps := range parsedWord {
			syllables = append(syllables, toSyllableJSON(ps))
		}
		writeJSON(w, http.StatusOK, parseResponse{
			Word:      syllable.WordString(parsedWord),
			Syllables: syllables,
		})
	}
}

func handleGen(gen *ot.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		input := r.URL.Query().Get("input")
		if input == "" {
			writeError(w, http.StatusBadRequest, "missing 'input' query parameter")
			return
		}

		depth := "one"
		cands := gen.GenOne(input)
		if r.URL.Query().Get("depth") == "two" {
			depth = "two"
			cands = gen.GenTwo(input)
		}

		out := make([]candidateJSON, 0, len(cands))
		for _, c := range cands {
			out = append(out, toCandidateJSON(c))
		}
		writeJSON(w, http.StatusOK, genResponse{
			Input:      input,
			Depth:      depth,
			Candidates: out,
		})
	}
}

func handleTableau(parser *syllable.Parser, gen *ot.Generator, constraints []ot.Constraint, store *corpus.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		input := r.URL.Query().Get("input")
		if input == "" {
			writeError(w, http.StatusBadRequest, "missing 'input' query parameter")
			return
		}
		two := r.URL.Query().Get("depth") == "two"

		tab, err := buildTableau(parser, gen, constraints, store, input, two)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, tableauToJSON(tab))
	}
}

func handleClasses(reg *lshk.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		names := reg.Classes()
		classes := make([]classJSON, 0, len(names))
		for _, name := range names {
			pattern, _ := reg.Pattern(name)
			members, _ := reg.Members(name)
			classes = append(classes, classJSON{Name: name, Pattern: pattern, Members: members})
		}
		writeJSON(w, http.StatusOK, classesResponse{
			Classes:     classes,
			Insertables: reg.Insertables(),
		})
	}
}

func handleConstraints(specs []ot.Spec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, constraintsResponse{Constraints: specs})
	}
}
