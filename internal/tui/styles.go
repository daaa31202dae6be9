package tui

import "github.com/charmbracelet/lipgloss"

/* ------------------------------- Styles ---------------------------------- */

// Gruvbox xterm-256 approximations
const (
	gbGreen  = "142" // #b8bb26
	gbYellow = "214" // #fabd2f
	gbGray   = "245" // #928374
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(gbGray)).Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(gbGray))
	optionStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = optionStyle.Foreground(lipgloss.Color("205")).Underline(true)
	fewestStyle   = optionStyle.Foreground(lipgloss.Color(gbGreen))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color(gbYellow))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(gbGreen)).
			Padding(0, 1)

	framePadding = 2
)
