package tui

import "github.com/charmbracelet/lipgloss"

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			MarginTop(1)

	warnTitleStyle = titleStyle.
			Foreground(lipgloss.Color("203"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 3)

	activeButtonStyle = buttonStyle.
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("25"))
)
