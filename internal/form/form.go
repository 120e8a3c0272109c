// Package form manages controlled form state for field components.
//
// A Form is created once per mounted form. On every render the owner calls
// Use with its current values and change callback, binds its field
// components through the returned UseField and publishes the returned State
// through the Provider. Edits flow from a bound Field through its validation
// rules into State.OnChange, which hands a complete new value map (including
// the aggregate HasErrorsKey flag) back to the owner. The owner is expected
// to feed those values into the next Use call; the form keeps no values of
// its own.
package form

import (
	"sync"

	"github.com/alexisbeaulieu97/formkit/internal/logger"
	"github.com/alexisbeaulieu97/formkit/internal/validation"
	"github.com/alexisbeaulieu97/formkit/pkg/immutable"
)

// HasErrorsKey is the reserved value key reporting whether any field of the
// form currently has validation errors.
const HasErrorsKey = "_hasErrors"

// Values maps field names to their current values.
type Values map[string]any

// Errors maps field names to their validation messages. Fields without
// errors have no entry.
type Errors map[string][]string

// OnChange receives the complete updated values of a form.
type OnChange func(Values)

// UpdateFunc records a field edit: the new value and the messages produced
// by the field's rules.
type UpdateFunc func(field string, value any, errs []string)

// UseField binds a component to a named field of the form.
type UseField func(component Component, name string, rules ...validation.Rule) *Field

// State is the snapshot shared with bound fields for one render.
type State struct {
	Values   Values
	Errors   Errors
	OnChange UpdateFunc
}

// HasErrors reports whether any field has validation errors.
func (s State) HasErrors() bool {
	return len(s.Errors) > 0
}

// Option customises a Form.
type Option func(*Form)

// WithLogger attaches a logger for debug output.
func WithLogger(log *logger.Logger) Option {
	return func(f *Form) {
		f.log = log
	}
}

// WithName labels log entries emitted by the form.
func WithName(name string) Option {
	return func(f *Form) {
		f.name = name
	}
}

// Form is one mounted form instance.
type Form struct {
	mu     sync.Mutex
	errors Errors

	name     string
	log      *logger.Logger
	ctx      *Context
	provider *Provider
	binder   *binder
}

// New creates a form instance. The provider, context and binder cache are
// created here and live as long as the Form.
func New(opts ...Option) *Form {
	f := &Form{errors: Errors{}}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.log == nil {
		f.log = logger.Nop()
	}
	if f.name != "" {
		f.log = f.log.With("form", f.name)
	}

	f.ctx = &Context{}
	f.provider = &Provider{ctx: f.ctx}
	f.binder = newBinder(f)
	return f
}

// Use returns the form's provider and field binder together with a fresh
// state snapshot for values. Call it on every render.
func (f *Form) Use(values Values, onChange OnChange) (*Provider, UseField, State) {
	if values == nil {
		values = Values{}
	}
	errs := f.currentErrors()
	state := State{
		Values:   values,
		Errors:   errs,
		OnChange: f.updater(values, errs, onChange),
	}
	return f.provider, f.binder.use, state
}

// Context returns the handle bound fields read their state from.
func (f *Form) Context() *Context {
	return f.ctx
}

func (f *Form) currentErrors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors
}

func (f *Form) setErrors(errs Errors) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = errs
}

// updater builds the OnChange for one snapshot. It never mutates values or
// errs; each call produces new maps.
func (f *Form) updater(values Values, errs Errors, onChange OnChange) UpdateFunc {
	return func(field string, value any, fieldErrs []string) {
		var updatedErrors Errors
		if len(fieldErrs) == 0 {
			updatedErrors = immutable.Without(errs, field)
		} else {
			updatedErrors = immutable.With(errs, field, immutable.Push[string](nil, fieldErrs...))
		}

		updatedValues := Values(immutable.With(values, field, value))
		updatedValues = immutable.With(updatedValues, HasErrorsKey, any(len(updatedErrors) > 0))

		f.setErrors(updatedErrors)
		if f.log.Enabled("debug") {
			f.log.Debug("field updated", map[string]any{
				"field":      field,
				"errors":     len(fieldErrs),
				"has_errors": len(updatedErrors) > 0,
			})
		}

		if onChange != nil {
			onChange(updatedValues)
		}
	}
}
