package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/ctk/internal/corpus"
)

// TableauRequestMsg asks the app to evaluate an input form in the tableau
// view.
type TableauRequestMsg struct {
	Input string
}

// CorpusModel is the corpus browser view model.
type CorpusModel struct {
	store *corpus.Store
	path  string

	entries  []corpus.ReadingCount
	total    int64
	selected int
	offset   int

	err error

	width  int
	height int
}

// NewCorpusModel creates a new corpus view model.
func NewCorpusModel() CorpusModel {
	return CorpusModel{}
}

// SetStore attaches a corpus store and loads its rows.
func (m *CorpusModel) SetStore(store *corpus.Store, path string) {
	m.store = store
	m.path = path
	m.refresh()
}

// SetSize updates the view dimensions.
func (m *CorpusModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *CorpusModel) refresh() {
	m.selected = 0
	m.offset = 0
	m.err = nil

	if m.store == nil {
		m.entries = nil
		m.total = 0
		return
	}

	entries, err := m.store.Entries(0)
	if err != nil {
		m.err = err
		return
	}
	m.entries = entries

	total, err := m.store.Total()
	if err != nil {
		m.err = err
		return
	}
	m.total = total
}

// Update handles messages.
func (m CorpusModel) Update(msg tea.Msg) (CorpusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
				m.adjustScroll()
			}
			return m, nil
		case "k", "up":
			if m.selected > 0 {
				m.selected--
				m.adjustScroll()
			}
			return m, nil
		case "g":
			m.selected = 0
			m.offset = 0
			return m, nil
		case "G":
			if len(m.entries) > 0 {
				m.selected = len(m.entries) - 1
				m.adjustScroll()
			}
			return m, nil
		case "ctrl+d":
			m.selected += m.visibleRows() / 2
			if m.selected >= len(m.entries) {
				m.selected = len(m.entries) - 1
			}
			if m.selected < 0 {
				m.selected = 0
			}
			m.adjustScroll()
			return m, nil
		case "ctrl+u":
			m.selected -= m.visibleRows() / 2
			if m.selected < 0 {
				m.selected = 0
			}
			m.adjustScroll()
			return m, nil
		case "r":
			m.refresh()
			return m, nil
		case "enter":
			if m.selected < len(m.entries) {
				reading := m.entries[m.selected].Reading
				return m, func() tea.Msg {
					return TableauRequestMsg{Input: reading}
				}
			}
			return m, nil
		}
	}

	return m, nil
}

func (m CorpusModel) visibleRows() int {
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

func (m *CorpusModel) adjustScroll() {
	visible := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
}

// View renders the corpus view.
func (m CorpusModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Corpus"))
	b.WriteString("\n")

	if m.store == nil {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("No corpus loaded. Open a .db or .sqlite file from the Open view."))
		return b.String()
	}

	b.WriteString(mutedStyle.Render(m.path))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(subtitleStyle.Render(
		fmt.Sprintf("%d readings, %d tokens", len(m.entries), m.total)))
	b.WriteString("\n\n")

	header := fmt.Sprintf("%-12s %-6s %s", "READING", "HANZI", "COUNT")
	b.WriteString("  ")
	b.WriteString(tableHeaderStyle.Render(header))
	b.WriteString("\n")

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		hanzi := e.Hanzi
		if hanzi == "" {
			hanzi = "—"
		}
		row := fmt.Sprintf("%-12s %-6s %d", e.Reading, hanzi, e.Count)

		prefix := "  "
		style := tableRowStyle
		if i == m.selected {
			prefix = "> "
			style = tableSelectedStyle
		}

		b.WriteString(prefix)
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}

	if len(m.entries) > visible {
		b.WriteString(mutedStyle.Render(
			fmt.Sprintf("  showing %d-%d of %d", m.offset+1, end, len(m.entries))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: move • enter: evaluate reading • r: reload"))

	return b.String()
}
