package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/ctk/internal/corpus"
	"github.com/f3rmion/ctk/internal/lexicon"
	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/ot"
	"github.com/f3rmion/ctk/internal/syllable"
	"github.com/f3rmion/ctk/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewParse ViewType = iota
	ViewTableau
	ViewCorpus
	ViewFilePicker
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// CorpusLoadedMsg is sent when a corpus database is opened
type CorpusLoadedMsg struct {
	Store *corpus.Store
	Path  string
	Err   error
}

// LexiconLoadedMsg is sent when a lexicon file is loaded
type LexiconLoadedMsg struct {
	Lexicon *lexicon.Lexicon
	Path    string
	Err     error
}

// AppModel is the main unified TUI model
type AppModel struct {
	// Core dependencies
	reg         *lshk.Registry
	parser      *syllable.Parser
	gen         *ot.Generator
	specs       []ot.Spec
	constraints []ot.Constraint

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	parseView      views.ParseModel
	tableauView    views.TableauModel
	corpusView     views.CorpusModel
	filePickerView views.FilePickerModel
	settingsView   views.SettingsModel

	// Loaded data
	corpusStore *corpus.Store
	corpusPath  string
	lexiconPath string
	loadErr     error

	// Help overlay
	showHelp bool
}

// NewApp creates a new unified TUI application
func NewApp(reg *lshk.Registry, specs []ot.Spec, constraints []ot.Constraint) AppModel {
	parser := syllable.NewParser(reg)
	gen := ot.NewGenerator(reg, parser)

	menuItems := []MenuItem{
		{Label: "Parse", View: ViewParse, Shortcut: "1"},
		{Label: "Tableau", View: ViewTableau, Shortcut: "2"},
		{Label: "Corpus", View: ViewCorpus, Shortcut: "3"},
		{Label: "Open", View: ViewFilePicker, Shortcut: "4"},
		{Label: "Settings", View: ViewSettings, Shortcut: "5"},
	}

	return AppModel{
		reg:          reg,
		parser:       parser,
		gen:          gen,
		specs:        specs,
		constraints:  constraints,
		sidebarWidth: 18,
		currentView:  ViewParse,
		menuItems:    menuItems,

		parseView:      views.NewParseModel(parser),
		tableauView:    views.NewTableauModel(parser, gen, constraints),
		corpusView:     views.NewCorpusModel(),
		filePickerView: views.NewFilePickerModel(),
		settingsView:   views.NewSettingsModel(reg, specs),
	}
}

// NewAppWithCorpus creates a new app with a pre-opened corpus store
func NewAppWithCorpus(reg *lshk.Registry, specs []ot.Spec, constraints []ot.Constraint, store *corpus.Store, path string) AppModel {
	app := NewApp(reg, specs, constraints)
	app.corpusStore = store
	app.corpusPath = path
	app.corpusView.SetStore(store, path)
	app.tableauView.SetCorpus(store)
	app.currentView = ViewCorpus
	app.selectedMenu = 2 // Corpus
	return app
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Global keys. Digits and letters stay with the views, whose text
		// inputs need them for transcriptions.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "esc":
			// Esc goes back to sidebar or quits
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			return m, nil
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
				return m, nil
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
				return m, nil
			case "enter", "l", "right":
				m.currentView = m.menuItems[m.selectedMenu].View
				m.sidebarActive = false
				return m, nil
			case "1", "2", "3", "4", "5":
				for i, item := range m.menuItems {
					if item.Shortcut == msg.String() {
						m.currentView = item.View
						m.selectedMenu = i
						m.sidebarActive = false
						break
					}
				}
				return m, nil
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Update view sizes
		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.parseView.SetSize(contentWidth, contentHeight)
		m.tableauView.SetSize(contentWidth, contentHeight)
		m.corpusView.SetSize(contentWidth, contentHeight)
		m.filePickerView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)

		return m, nil

	case ViewSwitchMsg:
		m.currentView = msg.View
		for i, item := range m.menuItems {
			if item.View == msg.View {
				m.selectedMenu = i
				break
			}
		}
		return m, nil

	case views.FileSelectedMsg:
		return m, m.loadFile(msg.Path)

	case views.TableauRequestMsg:
		m.tableauView.SetInput(msg.Input)
		m.currentView = ViewTableau
		m.selectedMenu = 1 // Tableau
		return m, nil

	case CorpusLoadedMsg:
		m.loadErr = msg.Err
		if msg.Err == nil && msg.Store != nil {
			if m.corpusStore != nil {
				m.corpusStore.Close()
			}
			m.corpusStore = msg.Store
			m.corpusPath = msg.Path
			m.corpusView.SetStore(msg.Store, msg.Path)
			m.tableauView.SetCorpus(msg.Store)
			m.currentView = ViewCorpus
			m.selectedMenu = 2
		}
		return m, nil

	case LexiconLoadedMsg:
		m.loadErr = msg.Err
		if msg.Err == nil && msg.Lexicon != nil {
			m.lexiconPath = msg.Path
			m.parseView.SetLexicon(msg.Lexicon)
			m.currentView = ViewParse
			m.selectedMenu = 0
		}
		return m, nil
	}

	// Delegate to active view if not in sidebar mode
	if !m.sidebarActive {
		var cmd tea.Cmd
		switch m.currentView {
		case ViewParse:
			m.parseView, cmd = m.parseView.Update(msg)
		case ViewTableau:
			m.tableauView, cmd = m.tableauView.Update(msg)
		case ViewCorpus:
			m.corpusView, cmd = m.corpusView.Update(msg)
		case ViewFilePicker:
			m.filePickerView, cmd = m.filePickerView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show help overlay if active
	if m.showHelp {
		return m.renderHelp()
	}

	// Render sidebar
	sidebar := m.renderSidebar()

	// Render main content based on current view
	var content string
	switch m.currentView {
	case ViewParse:
		content = m.parseView.View()
	case ViewTableau:
		content = m.tableauView.View()
	case ViewCorpus:
		content = m.corpusView.View()
	case ViewFilePicker:
		content = m.filePickerView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	// Apply content styling
	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	// Title
	title := SidebarTitleStyle.Render("  粵韻 CTK  ")
	items = append(items, title)
	items = append(items, "")

	// Menu items
	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	// Loaded data markers
	items = append(items, "")
	if m.corpusPath != "" {
		items = append(items, SidebarHelpStyle.Render("db: "+filepath.Base(m.corpusPath)))
	}
	if m.lexiconPath != "" {
		items = append(items, SidebarHelpStyle.Render("lex: "+filepath.Base(m.lexiconPath)))
	}
	if m.loadErr != nil {
		items = append(items, ErrorStyle.Render("load failed"))
	}

	// Spacer
	usedHeight := len(items) + 4 // account for borders and help
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	// Help text at bottom
	help := SidebarHelpStyle.Render("? Help  esc Menu")
	items = append(items, help)

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// loadFile opens a corpus database or lexicon file asynchronously,
// depending on the extension.
func (m AppModel) loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jsonl":
			lex := lexicon.NewLexicon()
			err := lex.LoadFromFile(path)
			return LexiconLoadedMsg{Lexicon: lex, Path: path, Err: err}
		default:
			store, err := corpus.Open(path)
			return CorpusLoadedMsg{Store: store, Path: path, Err: err}
		}
	}
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4ECDC4")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFE66D")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F1FAEE"))

	helpText := titleStyle.Render("CTK - Cantonese Tableau Kit") + "\n\n"

	helpText += sectionStyle.Render("Global Keys") + "\n"
	helpText += keyStyle.Render("esc") + descStyle.Render("Focus sidebar (esc again quits)") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Toggle sidebar focus") + "\n"
	helpText += keyStyle.Render("1-5") + descStyle.Render("Switch views (sidebar focused)") + "\n"
	helpText += keyStyle.Render("?") + descStyle.Render("Show this help") + "\n"
	helpText += keyStyle.Render("ctrl+c") + descStyle.Render("Quit") + "\n"

	helpText += sectionStyle.Render("Parse View") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Analyze transcription(s)") + "\n"
	helpText += keyStyle.Render("←/→") + descStyle.Render("Navigate syllables") + "\n"
	helpText += keyStyle.Render("ctrl+y") + descStyle.Render("Copy parsed forms") + "\n"

	helpText += sectionStyle.Render("Tableau View") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Generate and evaluate") + "\n"
	helpText += keyStyle.Render("ctrl+g") + descStyle.Render("Toggle one/two edit GEN") + "\n"
	helpText += keyStyle.Render("ctrl+p") + descStyle.Render("Toggle parsed outputs") + "\n"
	helpText += keyStyle.Render("ctrl+y") + descStyle.Render("Copy tableau as TSV") + "\n"
	helpText += keyStyle.Render("↑/↓") + descStyle.Render("Move between candidates") + "\n"

	helpText += sectionStyle.Render("Corpus View") + "\n"
	helpText += keyStyle.Render("j/k ↑/↓") + descStyle.Render("Navigate readings") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Evaluate reading in tableau") + "\n"
	helpText += keyStyle.Render("r") + descStyle.Render("Reload from database") + "\n"

	helpText += sectionStyle.Render("File Picker") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Select file/enter dir") + "\n"
	helpText += keyStyle.Render("backspace") + descStyle.Render("Go to parent dir") + "\n"
	helpText += keyStyle.Render("~") + descStyle.Render("Go to home dir") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		Padding(1, 2).
		Width(50)

	// Center the help box
	helpBox := boxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
