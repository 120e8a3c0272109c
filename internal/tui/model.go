// Package tui renders a form definition as an interactive bubbletea program.
//
// The Model owns the form values: every change reported by the form replaces
// them and triggers a fresh Use, so bound fields always read the latest
// state.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/formkit/internal/config"
	"github.com/alexisbeaulieu97/formkit/internal/form"
	"github.com/alexisbeaulieu97/formkit/internal/logger"
	"github.com/alexisbeaulieu97/formkit/internal/termsize"
	"github.com/alexisbeaulieu97/formkit/internal/tui/components"
	"github.com/alexisbeaulieu97/formkit/internal/validation"
	formerrors "github.com/alexisbeaulieu97/formkit/pkg/errors"
)

const changeBuffer = 64

// Option customises a Model.
type Option func(*Model)

// WithLogger attaches a logger to the model and its form.
func WithLogger(log *logger.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

// WithValues overrides the definition defaults for the given fields.
func WithValues(values form.Values) Option {
	return func(m *Model) {
		for name, value := range values {
			m.initial[name] = value
		}
	}
}

// WithWidth sets the terminal width used to size text inputs.
func WithWidth(width int) Option {
	return func(m *Model) {
		m.width = width
	}
}

type fieldEntry struct {
	def       config.Field
	rules     []validation.Rule
	component components.Field
	bound     *form.Field
}

// Model is the bubbletea model for filling one form.
type Model struct {
	def     *config.Definition
	form    *form.Form
	log     *logger.Logger
	width   int
	initial form.Values

	values   form.Values
	fields   []*fieldEntry
	provider *form.Provider
	state    form.State
	focus    int
	changes  chan fieldChangeMsg

	notice    string
	submitted bool
	cancelled bool
}

// NewModel builds a model for def.
func NewModel(def *config.Definition, opts ...Option) *Model {
	m := &Model{
		def:     def,
		initial: def.Defaults(),
		changes: make(chan fieldChangeMsg, changeBuffer),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.log == nil {
		m.log = logger.Nop()
	}

	name := ""
	if def != nil {
		name = def.Name
	}
	m.form = form.New(form.WithLogger(m.log), form.WithName(name))
	m.values = form.Values(m.initial)

	inputWidth := termsize.Clamp(m.width-4, 20, 60, 40)
	if def != nil {
		for _, field := range def.Fields {
			m.fields = append(m.fields, &fieldEntry{
				def:       field,
				rules:     field.ValidationRules(),
				component: m.newComponent(field, inputWidth),
			})
		}
	}

	m.render()
	m.focusCurrent()
	return m
}

func (m *Model) newComponent(field config.Field, width int) components.Field {
	if field.EffectiveKind() == config.KindCheckbox {
		return components.NewCheckbox(field.DisplayLabel())
	}
	return components.NewTextField(components.TextFieldOptions{
		Name:        field.Name,
		Label:       field.DisplayLabel(),
		Placeholder: field.Placeholder,
		Width:       width,
		Debounce:    field.Debounce,
		Deliver:     m.deliver,
	})
}

// render is one pass of the owner's render: a fresh Use with the current
// values, binding every field and publishing the snapshot.
func (m *Model) render() {
	provider, useField, state := m.form.Use(m.values, m.setValues)
	for _, entry := range m.fields {
		entry.bound = useField(entry.component, entry.def.Name, entry.rules...)
	}
	provider.Provide(state)
	m.provider, m.state = provider, state

	for _, entry := range m.fields {
		entry.component.Sync(entry.bound.Props())
	}
}

func (m *Model) setValues(values form.Values) {
	m.values = values
	m.render()
}

// deliver runs on debounce timer goroutines.
func (m *Model) deliver(name, value string) {
	m.changes <- fieldChangeMsg{Name: name, Value: value}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		return <-m.changes
	}
}

func (m *Model) entry(name string) (*fieldEntry, bool) {
	for _, entry := range m.fields {
		if entry.def.Name == name {
			return entry, true
		}
	}
	return nil, false
}

// Set feeds a raw value through the named field's change path. Checkbox
// values are parsed with strconv.ParseBool.
func (m *Model) Set(name, raw string) error {
	entry, ok := m.entry(name)
	if !ok {
		return fmt.Errorf("unknown field %q", name)
	}

	var value any = raw
	if entry.def.EffectiveKind() == config.KindCheckbox {
		checked, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		value = checked
	}

	entry.bound.Change(value)
	return nil
}

// Submit validates every field with its displayed value and marks the form
// submitted when no field has errors.
func (m *Model) Submit() bool {
	for _, entry := range m.fields {
		entry.component.Commit(entry.bound.Props())
	}

	if hasErrors, _ := m.values[form.HasErrorsKey].(bool); hasErrors {
		m.notice = formerrors.NewFieldErrors(m.state.Errors).Error()
		m.log.Warn("submit blocked: " + m.notice)
		m.revealErrors()
		return false
	}

	m.notice = ""
	m.submitted = true
	m.stop()
	m.log.Debug("form submitted", map[string]any{"fields": len(m.fields)})
	return true
}

// revealErrors blurs the focused field so its errors show, then moves focus
// to the first field with errors.
func (m *Model) revealErrors() {
	if len(m.fields) == 0 {
		return
	}
	m.blurCurrent()
	for i, entry := range m.fields {
		if len(m.state.Errors[entry.def.Name]) > 0 {
			m.focus = i
			break
		}
	}
	m.focusCurrent()
}

// Cancel abandons the form.
func (m *Model) Cancel() {
	m.cancelled = true
	m.stop()
	m.log.Debug("form cancelled")
}

func (m *Model) stop() {
	for _, entry := range m.fields {
		entry.component.Stop()
	}
}

// Values returns the current form values, including HasErrorsKey once any
// field has changed.
func (m *Model) Values() form.Values {
	return m.values
}

// Errors returns the current validation messages by field.
func (m *Model) Errors() form.Errors {
	return m.state.Errors
}

// Submitted reports whether the form was submitted without errors.
func (m *Model) Submitted() bool {
	return m.submitted
}

// Result returns the final values and whether the user cancelled.
func (m *Model) Result() (form.Values, bool) {
	return m.values, m.cancelled
}

// Init starts the cursor blink and listens for debounced changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForChange())
}
