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
	"github.com/f3rmion/ctk/internal/corpus"
	"github.com/f3rmion/ctk/internal/ot"
	"github.com/f3rmion/ctk/internal/syllable"
)

// Tableau view styles
var (
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	tableRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	tableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	tableAttestedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf"))

	includedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)
)

// TableauModel is the candidate evaluation view model.
type TableauModel struct {
	input       textinput.Model
	parser      *syllable.Parser
	gen         *ot.Generator
	constraints []ot.Constraint
	store       *corpus.Store

	tab      *ot.Tableau
	table    ot.Table
	deep     bool // two-edit GEN instead of one-edit
	parsed   bool // show dotted parses instead of raw forms
	selected int
	offset   int

	copied bool
	err    error

	width  int
	height int
}

// NewTableauModel creates a new tableau view model.
func NewTableauModel(parser *syllable.Parser, gen *ot.Generator, constraints []ot.Constraint) TableauModel {
	ti := textinput.New()
	ti.Placeholder = "Enter an input form, e.g. sik1..."
	ti.Focus()
	ti.CharLimit = 30
	ti.Width = 36
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	return TableauModel{
		input:       ti,
		parser:      parser,
		gen:         gen,
		constraints: constraints,
	}
}

// SetCorpus attaches a corpus store; candidate frequencies come from it on
// the next rebuild.
func (m *TableauModel) SetCorpus(store *corpus.Store) {
	m.store = store
	if m.tab != nil {
		m.rebuild()
	}
}

// SetInput sets the input form and evaluates it immediately.
func (m *TableauModel) SetInput(input string) {
	m.input.SetValue(input)
	m.rebuild()
}

// SetSize updates the view dimensions.
func (m *TableauModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages. Letters and digits flow into the text input,
// so the toggles live on control keys.
func (m TableauModel) Update(msg tea.Msg) (TableauModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.rebuild()
			return m, nil
		case "ctrl+g":
			m.deep = !m.deep
			if m.tab != nil {
				m.rebuild()
			}
			return m, nil
		case "ctrl+p":
			m.parsed = !m.parsed
			if m.tab != nil {
				m.table = m.tab.Render(m.parsed)
			}
			return m, nil
		case "ctrl+y":
			if m.tab != nil {
				if err := clipboard.Write(m.tsv()); err == nil {
					m.copied = true
					return m, clearCopiedAfter(2 * time.Second)
				}
			}
			return m, nil
		case "down":
			if m.selected < len(m.table.Rows)-1 {
				m.selected++
				m.adjustScroll()
			}
			return m, nil
		case "up":
			if m.selected > 0 {
				m.selected--
				m.adjustScroll()
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

func (m *TableauModel) rebuild() {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		m.tab = nil
		m.table = ot.Table{}
		m.err = nil
		return
	}

	tab := ot.NewTableau(m.parser, input)
	for _, c := range m.constraints {
		tab.AddConstraint(c)
	}

	if m.deep {
		tab.MergeCandidates(m.gen.GenTwo(input)...)
	} else {
		tab.MergeCandidates(m.gen.GenOne(input)...)
	}

	m.err = nil
	if m.store != nil {
		if _, err := m.store.ApplyFrequencies(tab); err != nil {
			m.err = err
		}
	}

	ot.Evaluate(tab)

	m.tab = tab
	m.table = tab.Render(m.parsed)
	m.selected = 0
	m.offset = 0
	m.copied = false
}

// visibleRows returns how many table rows fit on screen.
func (m TableauModel) visibleRows() int {
	h := m.height - 12
	if h < 5 {
		h = 5
	}
	return h
}

func (m *TableauModel) adjustScroll() {
	visible := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
}

// View renders the tableau view.
func (m TableauModel) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if m.tab != nil {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n\n")
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	parts := []string{"enter: evaluate", "ctrl+g: depth", "ctrl+p: parses", "ctrl+y: copy TSV", "↑/↓: row"}
	if m.copied {
		parts = append(parts, copiedStyle.Render("Copied!"))
	}
	b.WriteString(helpStyle.Render(strings.Join(parts, " • ")))

	return b.String()
}

func (m TableauModel) renderStatus() string {
	depth := "one edit"
	if m.deep {
		depth = "two edits"
	}

	parts := []string{
		subtitleStyle.Render("GEN: " + depth),
		mutedStyle.Render(fmt.Sprintf("%d candidates", len(m.table.Rows))),
	}

	if m.store != nil {
		if m.tab.Included {
			parts = append(parts, includedStyle.Render("input attested"))
		} else {
			parts = append(parts, mutedStyle.Render("input unattested"))
		}
	}

	return strings.Join(parts, "   ")
}

func (m TableauModel) renderTable() string {
	if len(m.table.Rows) == 0 {
		return mutedStyle.Render("(no candidates)")
	}

	widths := columnWidths(m.table)

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(tableHeaderStyle.Render(formatRow(m.table.Header, widths)))
	b.WriteString("\n")

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.table.Rows) {
		end = len(m.table.Rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.table.Rows[i]

		style := tableRowStyle
		if m.tab != nil {
			if cands := m.tab.Candidates(); i < len(cands) && cands[i].Freq > 0 {
				style = tableAttestedStyle
			}
		}

		prefix := "  "
		if i == m.selected {
			prefix = "> "
			style = tableSelectedStyle
		}

		b.WriteString(prefix)
		b.WriteString(style.Render(formatRow(row, widths)))
		b.WriteString("\n")
	}

	if len(m.table.Rows) > visible {
		b.WriteString(mutedStyle.Render(
			fmt.Sprintf("  showing %d-%d of %d", m.offset+1, end, len(m.table.Rows))))
		b.WriteString("\n")
	}

	return b.String()
}

// tsv flattens the current table for the clipboard.
func (m TableauModel) tsv() string {
	lines := []string{strings.Join(m.table.Header, "\t")}
	for _, row := range m.table.Rows {
		lines = append(lines, strings.Join(row, "\t"))
	}
	return strings.Join(lines, "\n")
}

// columnWidths measures the widest cell per column, header included.
func columnWidths(t ot.Table) []int {
	widths := make([]int, len(t.Header))
	for i, cell := range t.Header {
		widths[i] = runewidth.StringWidth(cell)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		padded[i] = padRight(cell, w)
	}
	return strings.Join(padded, "  ")
}
