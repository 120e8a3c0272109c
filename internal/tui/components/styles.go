package components

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("99")
	errorColor  = lipgloss.Color("196")
	mutedColor  = lipgloss.Color("245")

	labelStyle        = lipgloss.NewStyle().Foreground(mutedColor)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	errorStyle        = lipgloss.NewStyle().Foreground(errorColor).PaddingLeft(2)
	checkedStyle      = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)
