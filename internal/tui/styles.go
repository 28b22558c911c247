// Package tui provides the interactive terminal UI for ctk.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, onsets
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - nuclei, subtitles
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - codas, highlights
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - tones, valid slots
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Sidebar styles
var (
	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderRight(true).
			BorderForeground(ColorBorder).
			Padding(1, 1)

	SidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Background(ColorBg).
				Padding(0, 1).
				MarginBottom(1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SidebarItemActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 1)

	SidebarHelpStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				MarginTop(1).
				Padding(0, 1)
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Syllable slot styles
var (
	SlotLabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel).
			Bold(true).
			Width(10)

	OnsetStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NucleusStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	CodaStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ToneStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	InvalidSlotStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Strikethrough(true)

	SegmentStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBgAlt).
			Padding(0, 1).
			Margin(0, 1)
)

// Box styles
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	MatchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(1, 2).
			Margin(1, 0)

	TableauBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 2).
			Margin(1, 0)
)

// Violation table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorLabel)

	TableRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TableRowSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt)

	TableAttestedStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Italic(true)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// File picker styles
var (
	FilePickerDirStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Bold(true)

	FilePickerFileStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	FilePickerSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt)

	FilePickerPathStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)
)

// Settings view styles
var (
	SettingsTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 2)

	SettingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				Background(ColorBgAlt).
				Padding(0, 2)

	SettingsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorLabel)

	SettingsRowStyle = lipgloss.NewStyle().
				Foreground(ColorText)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(1, 2)

// Row count style (for corpus view)
var RowCountStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Padding(0, 1)
