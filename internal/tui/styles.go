package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bodyStyle        = lipgloss.NewStyle().MarginTop(1)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).MarginTop(1)
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).MarginTop(1)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)
