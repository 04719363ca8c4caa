package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorAccent  = lipgloss.Color("#FFD700")
	colorSuccess = lipgloss.Color("#00E676")
	colorDanger  = lipgloss.Color("#FF5252")
	colorMuted   = lipgloss.Color("#8C8C8C")
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			PaddingRight(2)

	styleCell = lipgloss.NewStyle().
			PaddingRight(2)

	styleNote = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleUp   = lipgloss.NewStyle().Foreground(colorSuccess)
	styleDown = lipgloss.NewStyle().Foreground(colorDanger)
)
