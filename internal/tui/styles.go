package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Status bar palette shared with the generated tmux config.
const (
	ColorStatusBg = "#4d4d4d"
	ColorStatusFg = "#ffffff"
	ColorAccent   = "#7f317f"
)

var (
	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccent))

	// Header styling for panels
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorStatusFg)).
			Background(lipgloss.Color(ColorAccent)).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)).
			Bold(true)

	// Action key styling
	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccent)).
			Padding(0, 1)

	// Progress and secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// NewHuhTheme returns the form theme used by interactive pickers.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.Color(ColorAccent)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accent)
	t.Focused.Base = t.Focused.Base.BorderForeground(accent)
	t.Blurred.Title = t.Blurred.Title.Foreground(lipgloss.Color("#888888"))

	return t
}
