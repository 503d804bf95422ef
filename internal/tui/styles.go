package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary     = lipgloss.Color("#2196F3")
	colorMuted       = lipgloss.Color("#8a8f98")
	colorDestructive = lipgloss.Color("#e53935")
	colorSuccess     = lipgloss.Color("#8BC34A")
)

// Styles holds the lipgloss styles used by the project screen.
type Styles struct {
	Title    lipgloss.Style
	Count    lipgloss.Style
	Error    lipgloss.Style
	Form     lipgloss.Style
	FormBlur lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Count: lipgloss.NewStyle().Foreground(colorSuccess),
		Error: lipgloss.NewStyle().Bold(true).Foreground(colorDestructive),
		Form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),
		FormBlur: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		Item:     lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().PaddingLeft(0).Bold(true).Foreground(colorPrimary),
		Empty:    lipgloss.NewStyle().Italic(true).Foreground(colorMuted).PaddingLeft(2),
		Help:     lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
