package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSubtle  = lipgloss.Color("#6C6C6C")
	colorBorder  = lipgloss.Color("#3C3C3C")
	colorError   = lipgloss.Color("#FF5F87")
	colorWarning = lipgloss.Color("#FFAF00")
	colorDone    = lipgloss.Color("#5FAF5F")
)

// Styles holds the lipgloss styles used by the board screen.
type Styles struct {
	Header      lipgloss.Style
	Pane        lipgloss.Style
	ActivePane  lipgloss.Style
	PaneTitle   lipgloss.Style
	Cursor      lipgloss.Style
	Selected    lipgloss.Style
	Done        lipgloss.Style
	Subtle      lipgloss.Style
	Tag         lipgloss.Style
	ActiveTag   lipgloss.Style
	Error       lipgloss.Style
	Countdown   lipgloss.Style
	Form        lipgloss.Style
	FormLabel   lipgloss.Style
	ActiveLabel lipgloss.Style
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
		Pane:        pane,
		ActivePane:  pane.BorderForeground(colorPrimary),
		PaneTitle:   lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Cursor:      lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Selected:    lipgloss.NewStyle().Bold(true),
		Done:        lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true),
		Subtle:      lipgloss.NewStyle().Foreground(colorSubtle),
		Tag:         lipgloss.NewStyle().Foreground(colorSubtle),
		ActiveTag:   lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Error:       lipgloss.NewStyle().Foreground(colorError),
		Countdown:   lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		Form:        pane.BorderForeground(colorPrimary).Padding(1, 2),
		FormLabel:   lipgloss.NewStyle().Foreground(colorSubtle).Width(10),
		ActiveLabel: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Width(10),
	}
}
