package standings

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	winner  lipgloss.Style
	leader  lipgloss.Style
	row     lipgloss.Style
	section lipgloss.Style
	csv     lipgloss.Style
	empty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		winner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		leader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		row:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section: lipgloss.NewStyle().MarginTop(1),
		csv:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}
