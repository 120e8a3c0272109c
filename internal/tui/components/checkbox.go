package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/formkit/internal/form"
)

// Checkbox is a boolean field toggled with space or x.
type Checkbox struct {
	label   string
	focused bool
}

// NewCheckbox creates a checkbox labelled label.
func NewCheckbox(label string) *Checkbox {
	return &Checkbox{label: label}
}

// Render implements form.Component.
func (c *Checkbox) Render(props form.Props) string {
	box := "[ ]"
	if boolValue(props.Value) {
		box = checkedStyle.Render("[x]")
	}
	return join(box+" "+renderLabel(c.label, c.focused), renderErrors(props.Errors))
}

// Sync implements Field.
func (c *Checkbox) Sync(form.Props) {}

// Update implements Field.
func (c *Checkbox) Update(msg tea.Msg, props form.Props) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case " ", "x":
		if props.OnChange != nil {
			props.OnChange(!boolValue(props.Value))
		}
	}
	return nil
}

// Focus implements Field.
func (c *Checkbox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

// Blur implements Field.
func (c *Checkbox) Blur() {
	c.focused = false
}

// Commit implements Field.
func (c *Checkbox) Commit(props form.Props) {
	if props.OnChange != nil {
		props.OnChange(boolValue(props.Value))
	}
}

// Stop implements Field.
func (c *Checkbox) Stop() {}
