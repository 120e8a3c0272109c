package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/formkit/internal/form"
)

const helpText = "tab/shift+tab move • enter next • ctrl+s submit • esc cancel"

// View renders the form.
func (m *Model) View() string {
	sections := []string{titleStyle.Render(m.title())}
	if m.def != nil && m.def.Description != "" {
		sections = append(sections, descriptionStyle.Render(m.def.Description))
	}

	children := make([]form.Renderer, 0, len(m.fields))
	for _, entry := range m.fields {
		children = append(children, entry.bound)
	}
	sections = append(sections, bodyStyle.Render(m.provider.Render(m.state, children...)))

	switch {
	case m.submitted:
		sections = append(sections, successStyle.Render("Submitted."))
	case m.cancelled:
		sections = append(sections, helpStyle.Render("Cancelled."))
	case m.notice != "":
		sections = append(sections, noticeStyle.Render(m.notice))
	}

	if !m.submitted && !m.cancelled {
		sections = append(sections, helpStyle.Render(helpText))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) title() string {
	if m.def == nil {
		return "Form"
	}
	if m.def.Title != "" {
		return m.def.Title
	}
	return m.def.Name
}
