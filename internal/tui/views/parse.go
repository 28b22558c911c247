// Package views provides the individual views for the unified TUI.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/ctk/internal/clipboard"
	"github.com/f3rmion/ctk/internal/lexicon"
	"github.com/f3rmion/ctk/internal/mandarin"
	"github.com/f3rmion/ctk/internal/syllable"
	"github.com/f3rmion/ctk/internal/tui/bigchar"
	"github.com/f3rmion/ctk/internal/tui/components"
)

// Styles shared across the view files.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	syllTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 2).
			Margin(0, 1)

	syllTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2).
				Margin(0, 1)

	syllTabParsedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true)

	bigCharStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(1, 6).
			Align(lipgloss.Center)

	readingUnderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ecdc4")).
				Bold(true).
				Align(lipgloss.Center).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	onsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	nucleusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true)

	codaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	toneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	segmentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee")).
			Background(lipgloss.Color("#2d3436")).
			Padding(0, 1).
			Margin(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 2)

	wordNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true).
			Padding(0, 1)

	wordDisplayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#ffe66d")).
				Padding(0, 2).
				Margin(1, 0)

	matchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ecdc4")).
			Padding(1, 2).
			Margin(1, 0)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// maxMatches caps how many lexicon hits the parse view shows.
const maxMatches = 8

// ParseModel is the syllable analysis view model.
type ParseModel struct {
	input  textinput.Model
	parser *syllable.Parser
	lex    *lexicon.Lexicon
	mand   *mandarin.Reader

	results  []components.SyllableResult
	selected int

	copied bool
	err    error

	width  int
	height int
}

// NewParseModel creates a new parse view model.
func NewParseModel(parser *syllable.Parser) ParseModel {
	ti := textinput.New()
	ti.Placeholder = "Enter LSHK transcription(s), e.g. sik1 faan6..."
	ti.Focus()
	ti.CharLimit = 60
	ti.Width = 44
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	return ParseModel{
		input:  ti,
		parser: parser,
		mand:   mandarin.NewReader(),
	}
}

// SetLexicon attaches a loaded lexicon for reading matches.
func (m *ParseModel) SetLexicon(lex *lexicon.Lexicon) {
	m.lex = lex
	for i := range m.results {
		m.results[i].Matches = m.matchesFor(m.results[i].Transcription)
	}
}

// SetSize updates the view dimensions.
func (m *ParseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages. Letters and digits flow into the text input,
// so navigation uses arrows and control keys only.
func (m ParseModel) Update(msg tea.Msg) (ParseModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.analyzeInput()
			return m, nil
		case "left":
			if len(m.results) > 0 {
				m.selected--
				if m.selected < 0 {
					m.selected = len(m.results) - 1
				}
			}
			return m, nil
		case "right":
			if len(m.results) > 0 {
				m.selected++
				if m.selected >= len(m.results) {
					m.selected = 0
				}
			}
			return m, nil
		case "ctrl+y":
			if len(m.results) > 0 {
				if err := clipboard.Write(m.parsedWord()); err == nil {
					m.copied = true
					return m, clearCopiedAfter(2 * time.Second)
				}
			}
			return m, nil
		}

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the parse view.
func (m ParseModel) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.results) > 0 {
		if len(m.results) > 1 {
			b.WriteString(m.renderWordBar())
			b.WriteString("\n")
		}
		if m.selected < len(m.results) {
			b.WriteString(m.renderDetail(m.results[m.selected]))
		}
	}

	b.WriteString("\n")
	if len(m.results) > 0 {
		parts := []string{"enter: parse"}
		if len(m.results) > 1 {
			parts = append(parts, "←/→: syllable")
		}
		parts = append(parts, "ctrl+y: copy parse")
		if m.copied {
			parts = append(parts, copiedStyle.Render("Copied!"))
		}
		b.WriteString(helpStyle.Render(strings.Join(parts, " • ")))
	} else {
		b.WriteString(helpStyle.Render("Type a transcription and press Enter to analyze"))
	}

	return b.String()
}

func (m *ParseModel) analyzeInput() {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return
	}

	m.results = nil
	m.selected = 0
	m.err = nil
	m.copied = false

	for _, field := range strings.Fields(input) {
		parsed := m.parser.Parse(field)
		segs, tone := m.parser.Segments(field)

		m.results = append(m.results, components.SyllableResult{
			Transcription: field,
			Parsed:        parsed,
			Segments:      segs,
			Tone:          tone,
			Matches:       m.matchesFor(field),
		})
	}

	if len(m.results) == 0 {
		m.err = fmt.Errorf("no transcriptions found in: %s", input)
	}
}

func (m *ParseModel) matchesFor(transcription string) []components.MatchedChar {
	if m.lex == nil {
		return nil
	}

	var matches []components.MatchedChar
	for _, e := range m.lex.ByReading(transcription) {
		matches = append(matches, components.MatchedChar{
			Char:     e.Char,
			Gloss:    e.Gloss,
			Freq:     e.Freq,
			Mandarin: m.mand.Reading(e.Char),
		})
		if len(matches) == maxMatches {
			break
		}
	}
	return matches
}

// parsedWord returns the dotted parses of all results, space separated.
func (m ParseModel) parsedWord() string {
	parses := make([]syllable.ParsedSyllable, len(m.results))
	for i, r := range m.results {
		parses[i] = r.Parsed
	}
	return syllable.WordString(parses)
}

func (m ParseModel) renderWordBar() string {
	var tabs []string

	for i, r := range m.results {
		label := fmt.Sprintf("%s\n%s", r.Transcription, syllTabParsedStyle.Render(r.Parsed.String()))
		if i == m.selected {
			tabs = append(tabs, syllTabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, syllTabStyle.Render(label))
		}
	}

	nav := wordNavStyle.Render(fmt.Sprintf("◀ %d/%d ▶", m.selected+1, len(m.results)))
	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	return wordDisplayStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, bar, "  ", nav))
}

func (m ParseModel) renderDetail(r components.SyllableResult) string {
	var b strings.Builder

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	// Lead with the top lexicon match drawn large, when we have one.
	if len(r.Matches) > 0 {
		var charDisplay string
		if bigchar.Available() {
			if art := bigchar.Cached(r.Matches[0].Char, 24, 12); art != "" {
				charDisplay = lipgloss.NewStyle().
					Foreground(lipgloss.Color("#ffe66d")).
					Render(art)
			}
		}
		if charDisplay == "" {
			charDisplay = bigCharStyle.Render(r.Matches[0].Char)
		}

		block := lipgloss.JoinVertical(lipgloss.Center,
			charDisplay,
			readingUnderStyle.Render(r.Transcription),
		)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Align(lipgloss.Center).
			Render(block))
		b.WriteString("\n")
	}

	b.WriteString(m.renderSlotBox(r))
	b.WriteString("\n")

	if len(r.Segments) > 0 {
		b.WriteString(m.renderSegments(r))
		b.WriteString("\n")
	}

	if len(r.Matches) > 0 {
		b.WriteString(m.renderMatches(r))
		b.WriteString("\n")
	} else if m.lex == nil {
		b.WriteString(helpStyle.Render("Open a lexicon (.jsonl) to see matching characters"))
		b.WriteString("\n")
	}

	return b.String()
}

func (m ParseModel) renderSlotBox(r components.SyllableResult) string {
	rows := []struct {
		label string
		comp  syllable.Component
		style lipgloss.Style
	}{
		{"Onset", r.Parsed.Onset, onsetStyle},
		{"Nucleus", r.Parsed.Nucleus, nucleusStyle},
		{"Coda", r.Parsed.Coda, codaStyle},
		{"Tone", r.Parsed.Tone, toneStyle},
	}

	var lines []string
	for _, row := range rows {
		value := row.comp.Value
		if value == "" {
			value = "Ø"
		}

		line := labelStyle.Render(row.label+":") + "  " + row.style.Render(value)
		if !row.comp.Valid {
			line += "  " + invalidStyle.Render("✗ invalid")
		}
		lines = append(lines, line)
	}

	return boxStyle.Render(
		subtitleStyle.Render("Decomposition") + "\n\n" + strings.Join(lines, "\n"),
	)
}

func (m ParseModel) renderSegments(r components.SyllableResult) string {
	var cells []string
	for _, seg := range r.Segments {
		cells = append(cells, segmentStyle.Render(seg))
	}
	if r.Tone != "" {
		cells = append(cells, toneStyle.Render(" "+r.Tone))
	}

	return labelStyle.Render("Segments:") + lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}

func (m ParseModel) renderMatches(r components.SyllableResult) string {
	var lines []string
	for _, match := range r.Matches {
		gloss := match.Gloss
		if gloss == "" {
			gloss = "—"
		}
		mand := match.Mandarin
		if mand == "" {
			mand = "—"
		}

		line := fmt.Sprintf("%s  %s  %s",
			valueStyle.Render(match.Char),
			nucleusStyle.Render(padRight(mand, 8)),
			mutedStyle.Render(gloss),
		)
		if match.Freq > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  (%d)", match.Freq))
		}
		lines = append(lines, line)
	}

	return matchBoxStyle.Render(
		subtitleStyle.Render(fmt.Sprintf("Characters read %s", r.Transcription)) +
			"\n\n" + strings.Join(lines, "\n"),
	)
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
