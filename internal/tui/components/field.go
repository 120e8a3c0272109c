// Package components provides terminal field components that render from
// form props and turn key presses into field changes.
package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/formkit/internal/form"
)

// Field is a form component that also handles terminal input.
type Field interface {
	form.Component

	// Sync brings local display state in line with the latest props.
	Sync(props form.Props)
	// Update handles a message while the field has focus.
	Update(msg tea.Msg, props form.Props) tea.Cmd
	Focus() tea.Cmd
	Blur()
	// Commit reports the displayed value to the form, bypassing any
	// debounce window.
	Commit(props form.Props)
	// Stop releases timers held by the field.
	Stop()
}

func renderErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(errs))
	for _, msg := range errs {
		lines = append(lines, errorStyle.Render("✗ "+msg))
	}
	return strings.Join(lines, "\n")
}

func renderLabel(label string, focused bool) string {
	if focused {
		return focusedLabelStyle.Render(label)
	}
	return labelStyle.Render(label)
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func boolValue(value any) bool {
	checked, _ := value.(bool)
	return checked
}

func join(parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "\n")
}
