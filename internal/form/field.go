package form

import (
	"slices"
	"sync"

	"github.com/alexisbeaulieu97/formkit/internal/validation"
)

// Props are handed to a field component on every render.
type Props struct {
	Name string
	// Value is the current value of this field.
	Value any
	// Errors is nil while the field's errors are hidden.
	Errors []string
	// Values is the whole form, for components that need other fields.
	Values Values

	OnChange func(value any)
	OnFocus  func()
	OnBlur   func()
}

// Component renders a field from its props.
type Component interface {
	Render(Props) string
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(Props) string

// Render calls fn(props).
func (fn ComponentFunc) Render(props Props) string {
	return fn(props)
}

// Field is a component bound to one named field of a form.
//
// Errors start visible. Focusing a field that has no errors hides errors
// until the next blur, so messages do not flash while the user types.
// Focusing a field that already shows errors keeps them visible.
type Field struct {
	component Component
	name      string
	rules     []validation.Rule
	ctx       *Context

	mu         sync.Mutex
	showErrors bool
}

func newField(component Component, name string, rules []validation.Rule, ctx *Context) *Field {
	return &Field{
		component:  component,
		name:       name,
		rules:      rules,
		ctx:        ctx,
		showErrors: true,
	}
}

// Name returns the bound field name.
func (f *Field) Name() string {
	return f.name
}

// Change runs the field's rules against value and records the result.
func (f *Field) Change(value any) {
	state := f.ctx.Current()
	newValue, errs := validation.Run(value, state.Values, f.rules)
	if state.OnChange != nil {
		state.OnChange(f.name, newValue, errs)
	}
}

// Focus hides errors while the user edits, unless the field already has
// errors.
func (f *Field) Focus() {
	state := f.ctx.Current()
	if len(state.Errors[f.name]) > 0 {
		return
	}
	f.mu.Lock()
	f.showErrors = false
	f.mu.Unlock()
}

// Blur makes errors visible again.
func (f *Field) Blur() {
	f.mu.Lock()
	f.showErrors = true
	f.mu.Unlock()
}

// ErrorsVisible reports whether errors are currently passed to the
// component.
func (f *Field) ErrorsVisible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showErrors
}

// Props builds the component props from the current form state.
func (f *Field) Props() Props {
	state := f.ctx.Current()
	props := Props{
		Name:     f.name,
		Value:    state.Values[f.name],
		Values:   state.Values,
		OnChange: f.Change,
		OnFocus:  f.Focus,
		OnBlur:   f.Blur,
	}
	if f.ErrorsVisible() {
		props.Errors = slices.Clone(state.Errors[f.name])
	}
	return props
}

// Render renders the wrapped component.
func (f *Field) Render() string {
	if f.component == nil {
		return ""
	}
	return f.component.Render(f.Props())
}
