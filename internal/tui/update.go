package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/formkit/internal/termsize"
)

type widthSetter interface {
	SetWidth(int)
}

// Update handles Bubbletea messages and updates model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fieldChangeMsg:
		if entry, ok := m.entry(msg.Name); ok && !m.submitted && !m.cancelled {
			entry.bound.Change(msg.Value)
		}
		return m, m.waitForChange()
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancel()
			return m, tea.Quit
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			if m.focus == len(m.fields)-1 {
				return m, m.submit()
			}
			return m, m.moveFocus(1)
		}
	}

	return m, m.updateFocused(msg)
}

func (m *Model) submit() tea.Cmd {
	if m.Submit() {
		return tea.Quit
	}
	return nil
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	entry := m.fields[m.focus]
	return entry.component.Update(msg, entry.bound.Props())
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.blurCurrent()
	n := len(m.fields)
	m.focus = ((m.focus+delta)%n + n) % n
	return m.focusCurrent()
}

func (m *Model) focusCurrent() tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	entry := m.fields[m.focus]
	entry.bound.Focus()
	return entry.component.Focus()
}

func (m *Model) blurCurrent() {
	if len(m.fields) == 0 {
		return
	}
	entry := m.fields[m.focus]
	entry.component.Blur()
	entry.bound.Blur()
}

func (m *Model) resize(width int) {
	m.width = width
	inputWidth := termsize.Clamp(width-4, 20, 60, 40)
	for _, entry := range m.fields {
		if setter, ok := entry.component.(widthSetter); ok {
			setter.SetWidth(inputWidth)
		}
	}
}
