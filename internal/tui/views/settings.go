package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/ctk/internal/config"
	"github.com/f3rmion/ctk/internal/lshk"
	"github.com/f3rmion/ctk/internal/ot"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc"))

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

// SettingsModel is the settings view model.
type SettingsModel struct {
	reg       *lshk.Registry
	specs     []ot.Spec
	configDir string

	// Tabs: 0=Classes, 1=Constraints, 2=Insertables
	tab     int
	scrollY int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(reg *lshk.Registry, specs []ot.Spec) SettingsModel {
	configDir, _ := config.GetConfigDir()

	return SettingsModel{
		reg:       reg,
		specs:     specs,
		configDir: configDir,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % 3
			m.scrollY = 0
			return m, nil
		case "shift+tab", "left", "h":
			m.tab--
			if m.tab < 0 {
				m.tab = 2
			}
			m.scrollY = 0
			return m, nil
		case "j", "down":
			m.scrollY++
			return m, nil
		case "k", "up":
			if m.scrollY > 0 {
				m.scrollY--
			}
			return m, nil
		case "g":
			m.scrollY = 0
			return m, nil
		}
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(settingsTitleStyle.Render("CTK Configuration"))
	b.WriteString("\n")

	// Config path
	b.WriteString(settingsPathStyle.Render("Config: " + m.configDir))
	b.WriteString("\n\n")

	// Tabs
	tabs := []string{"Classes", "Constraints", "Insertables"}
	var tabViews []string
	for i, t := range tabs {
		var style lipgloss.Style
		if i == m.tab {
			style = settingsTabActiveStyle
		} else {
			style = settingsTabStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", minInt(m.width-4, 60))))
	b.WriteString("\n\n")

	// Content based on tab
	switch m.tab {
	case 0:
		b.WriteString(m.renderClasses())
	case 1:
		b.WriteString(m.renderConstraints())
	case 2:
		b.WriteString(m.renderInsertables())
	}

	// Help
	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("tab/←→: switch tabs • j/k: scroll"))

	return b.String()
}

func (m SettingsModel) renderClasses() string {
	var b strings.Builder

	if m.reg == nil || len(m.reg.Classes()) == 0 {
		b.WriteString(settingsMutedStyle.Render("No segment classes configured"))
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render("Run 'ctk init' to create config files"))
		return b.String()
	}

	names := m.reg.Classes()
	b.WriteString(settingsHeaderStyle.Render(fmt.Sprintf("Segment classes (%d configured)", len(names))))
	b.WriteString("\n\n")

	// Header row
	header := fmt.Sprintf("%-12s %-28s %s", "NAME", "PATTERN", "MEMBERS")
	b.WriteString(settingsMutedStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render(strings.Repeat("─", 60)))
	b.WriteString("\n")

	start, end := m.visibleRange(len(names))
	for i := start; i < end; i++ {
		name := names[i]
		pattern, _ := m.reg.Pattern(name)
		members, _ := m.reg.Members(name)

		row := fmt.Sprintf("%-12s %-28s %s", name, pattern, strings.Join(members, " "))
		b.WriteString(settingsRowStyle.Render(row))
		b.WriteString("\n")
	}

	if len(names) > end-start {
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(names))))
	}

	return b.String()
}

func (m SettingsModel) renderConstraints() string {
	var b strings.Builder

	if len(m.specs) == 0 {
		b.WriteString(settingsMutedStyle.Render("No constraints configured"))
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render("Run 'ctk init' to create config files"))
		return b.String()
	}

	b.WriteString(settingsHeaderStyle.Render(fmt.Sprintf("Constraints (%d configured)", len(m.specs))))
	b.WriteString("\n\n")

	// Header row
	header := fmt.Sprintf("%-12s %-16s %s", "NAME", "KIND", "TARGET")
	b.WriteString(settingsMutedStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render(strings.Repeat("─", 60)))
	b.WriteString("\n")

	start, end := m.visibleRange(len(m.specs))
	for i := start; i < end; i++ {
		s := m.specs[i]
		row := fmt.Sprintf("%-12s %-16s %s", s.Name, s.Kind, specTarget(s))
		b.WriteString(settingsRowStyle.Render(row))
		b.WriteString("\n")

		if s.Description != "" {
			b.WriteString(settingsMutedStyle.Render("             └─ " + s.Description))
			b.WriteString("\n")
		}
	}

	if len(m.specs) > end-start {
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render(fmt.Sprintf("Showing %d-%d of %d", start+1, end, len(m.specs))))
	}

	return b.String()
}

func (m SettingsModel) renderInsertables() string {
	var b strings.Builder

	if m.reg == nil {
		b.WriteString(settingsMutedStyle.Render("No registry loaded"))
		return b.String()
	}

	insertables := m.reg.Insertables()
	b.WriteString(settingsHeaderStyle.Render(fmt.Sprintf("Epenthetic inventory (%d segments)", len(insertables))))
	b.WriteString("\n\n")

	descriptions := map[string]string{
		"V": "vowel placeholder",
		"C": "consonant placeholder",
		"T": "obstruent placeholder",
		"S": "sibilant placeholder",
		"R": "sonorant placeholder",
	}

	for _, seg := range insertables {
		desc := descriptions[seg]
		if desc == "" {
			desc = "custom segment"
		}
		row := fmt.Sprintf("%-4s %s", seg, desc)
		b.WriteString(settingsRowStyle.Render(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render(
		"Alternative trigram inventory: " + strings.Join(lshk.TrigramInsertables, " ")))
	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render(
		"Edit insertables in classes.yaml to change what GEN may insert."))

	return b.String()
}

// visibleRange clamps the scroll window against the row count.
func (m SettingsModel) visibleRange(count int) (int, int) {
	visible := m.height - 12
	if visible < 5 {
		visible = 5
	}
	start := m.scrollY
	if start > count {
		start = 0
	}
	end := start + visible
	if end > count {
		end = count
	}
	return start, end
}

// specTarget summarizes what a constraint spec applies to.
func specTarget(s ot.Spec) string {
	switch s.Kind {
	case "component-check":
		if s.Presence != nil && *s.Presence {
			return s.Slot + " required"
		}
		return s.Slot + " banned"
	case "markedness":
		verb := "required"
		if s.Ban {
			verb = "banned"
		}
		return fmt.Sprintf("%s in {%s} %s", s.Slot, strings.Join(s.Members, " "), verb)
	case "phonotactic":
		return s.Pattern
	case "dep", "max":
		seg := s.Segment
		if seg == "" {
			seg = "*"
		}
		return fmt.Sprintf("%s / %s_%s", seg, s.Left, s.Right)
	}
	return ""
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
