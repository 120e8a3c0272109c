package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/formkit/internal/debounce"
	"github.com/alexisbeaulieu97/formkit/internal/form"
)

// Deliver hands a debounced value back to the program loop. It is called
// from timer goroutines and must not touch form state directly.
type Deliver func(name, value string)

// TextFieldOptions configures a TextField.
type TextFieldOptions struct {
	Name        string
	Label       string
	Placeholder string
	Width       int
	// Debounce coalesces bursts of keystrokes. It needs Deliver.
	Debounce bool
	Deliver  Deliver
}

// TextField is a single-line text input.
type TextField struct {
	name    string
	label   string
	input   textinput.Model
	bridge  *debounce.Bridge[string]
	deliver Deliver
	focused bool
}

// NewTextField creates a text field.
func NewTextField(opts TextFieldOptions) *TextField {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = opts.Placeholder
	if opts.Width > 0 {
		input.Width = opts.Width
	}

	t := &TextField{
		name:    opts.Name,
		label:   opts.Label,
		input:   input,
		deliver: opts.Deliver,
	}
	if t.label == "" {
		t.label = opts.Name
	}
	if opts.Debounce && opts.Deliver != nil {
		t.bridge = debounce.New("", t.handle)
	}
	return t
}

// Debounced reports whether edits go through a debounce window.
func (t *TextField) Debounced() bool {
	return t.bridge != nil
}

// Value returns the text currently shown in the input.
func (t *TextField) Value() string {
	return t.input.Value()
}

// SetWidth changes the visible input width.
func (t *TextField) SetWidth(width int) {
	if width > 0 {
		t.input.Width = width
	}
}

// Render implements form.Component.
func (t *TextField) Render(props form.Props) string {
	return join(renderLabel(t.label, t.focused), t.input.View(), renderErrors(props.Errors))
}

// Sync implements Field.
func (t *TextField) Sync(props form.Props) {
	value := stringValue(props.Value)
	if t.bridge != nil {
		value, _ = t.bridge.Sync(value, t.handle)
	}
	if value != t.input.Value() {
		t.input.SetValue(value)
	}
}

// Update implements Field.
func (t *TextField) Update(msg tea.Msg, props form.Props) tea.Cmd {
	before := t.input.Value()
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if after := t.input.Value(); after != before {
		t.change(after, props)
	}
	return cmd
}

// Focus implements Field.
func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

// Blur implements Field. A pending debounced value is delivered at once.
func (t *TextField) Blur() {
	t.focused = false
	t.input.Blur()
	if t.bridge != nil {
		t.bridge.Flush()
	}
}

// Commit implements Field.
func (t *TextField) Commit(props form.Props) {
	t.Stop()
	if props.OnChange != nil {
		props.OnChange(t.input.Value())
	}
}

// Stop implements Field.
func (t *TextField) Stop() {
	if t.bridge != nil {
		t.bridge.Stop()
	}
}

// change runs on the program goroutine. The first edit of a burst is applied
// directly; later ones arrive through deliver once the window closes.
func (t *TextField) change(value string, props form.Props) {
	if t.bridge == nil {
		if props.OnChange != nil {
			props.OnChange(value)
		}
		return
	}

	leading := !t.bridge.Open()
	t.bridge.Change(value)
	if leading && props.OnChange != nil {
		props.OnChange(value)
	}
}

func (t *TextField) handle(value string) {
	if t.deliver != nil {
		t.deliver(t.name, value)
	}
}
