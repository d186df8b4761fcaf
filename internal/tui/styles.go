package tui

import "github.com/charmbracelet/lipgloss"

var (
	ItemSubtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180")).
			Italic(true)
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
	ProfileListTitle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))
	ProfileListSelected = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)
	MatchedIndicator = lipgloss.NewStyle().
				Foreground(lipgloss.Color("46")).
				Bold(true)
	InvalidIndicator = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))
)

var (
	HelpStyle  = lipgloss.NewStyle().Padding(0, 0, 0, 2)
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("105"))
)
