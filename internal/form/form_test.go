package form

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/formkit/internal/logger"
	"github.com/alexisbeaulieu97/formkit/internal/validation"
)

const (
	minError    = "mock min message"
	maxError    = "mock max message"
	emailError  = "mock email message"
	customError = "mock custom error"
)

var textInput = ComponentFunc(func(props Props) string {
	value, _ := props.Value.(string)
	lines := []string{props.Name + ": " + value}
	lines = append(lines, props.Errors...)
	return strings.Join(lines, "\n")
})

// owner plays the part of the component that holds the form values and
// re-renders the form whenever they change.
type owner struct {
	form     *Form
	values   Values
	validate bool
	calls    []Values
	fields   map[string]*Field
	provider *Provider
	state    State
}

func newOwner(values Values, validate bool) *owner {
	o := &owner{form: New(), values: values, validate: validate}
	o.render()
	return o
}

func (o *owner) rules(rules ...validation.Rule) []validation.Rule {
	if !o.validate {
		return nil
	}
	return rules
}

func (o *owner) render() {
	provider, useField, state := o.form.Use(o.values, o.onChange)
	custom := validation.New(func(value any, values map[string]any) (any, bool) {
		return value, value == values["email"]
	}, customError)

	o.fields = map[string]*Field{
		"firstName":   useField(textInput, "firstName"),
		"lastName":    useField(textInput, "lastName", o.rules(validation.Min(2, minError), validation.Max(5, maxError))...),
		"email":       useField(textInput, "email", o.rules(validation.Email(emailError), validation.Max(15, maxError))...),
		"passedDown":  useField(textInput, "passedDown", o.rules(validation.Min(2, minError), validation.Max(15, maxError))...),
		"customError": useField(textInput, "customError", o.rules(custom)...),
	}
	o.provider = provider
	o.state = state
	provider.Provide(state)
}

func (o *owner) onChange(values Values) {
	o.calls = append(o.calls, values)
	o.values = values
	o.render()
}

func (o *owner) set(name string, value any) {
	o.fields[name].Props().OnChange(value)
}

func (o *owner) value(name string) any {
	return o.fields[name].Props().Value
}

func (o *owner) errors(name string) []string {
	return o.fields[name].Props().Errors
}

func (o *owner) lastCall(t *testing.T) Values {
	t.Helper()
	require.NotEmpty(t, o.calls)
	return o.calls[len(o.calls)-1]
}

func TestFormReceivesAndUpdatesValues(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{"firstName": "mock first"}, false)
	require.Equal(t, "mock first", o.value("firstName"))
	require.Nil(t, o.value("lastName"))

	o.set("lastName", "mock last")
	require.Equal(t, "mock last", o.value("lastName"))
	require.Equal(t, Values{"firstName": "mock first", "lastName": "mock last", HasErrorsKey: false}, o.lastCall(t))

	o.set("firstName", "new mock first")
	require.Equal(t, Values{"firstName": "new mock first", "lastName": "mock last", HasErrorsKey: false}, o.lastCall(t))
}

func TestFormDisplaysValidationErrors(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{}, true)

	o.set("lastName", "more than five")
	require.Equal(t, []string{maxError}, o.errors("lastName"))

	o.set("lastName", "1")
	o.set("email", "not an email")
	require.Equal(t, []string{emailError}, o.errors("email"))
	require.Equal(t, []string{minError}, o.errors("lastName"))

	o.set("lastName", "four")
	require.Nil(t, o.errors("lastName"))
	require.Equal(t, []string{emailError}, o.errors("email"))

	o.set("email", "a long incorrect email")
	require.Equal(t, []string{emailError, maxError}, o.errors("email"))
}

func TestFormWaitsForBlurBeforeShowingErrors(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{}, true)
	o.fields["lastName"].Props().OnFocus()

	o.set("lastName", "more than five")
	o.set("lastName", "way more than five")
	require.Nil(t, o.errors("lastName"))
	require.Equal(t, []string{maxError}, o.state.Errors["lastName"], "hidden errors still exist in state")

	o.fields["lastName"].Props().OnBlur()
	require.Equal(t, []string{maxError}, o.errors("lastName"))
}

func TestFormKeepsExistingErrorsVisibleOnFocus(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{}, true)
	o.set("lastName", "more than five")
	require.Equal(t, []string{maxError}, o.errors("lastName"))

	o.fields["lastName"].Focus()
	require.Equal(t, []string{maxError}, o.errors("lastName"))

	o.set("lastName", "way more than five")
	require.Equal(t, []string{maxError}, o.errors("lastName"))
}

func TestFormRemovesResolvedErrorsBeforeBlur(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{}, true)
	o.set("lastName", "more than five")
	o.fields["lastName"].Focus()
	o.set("lastName", "way more than five")
	require.Equal(t, []string{maxError}, o.errors("lastName"))

	o.set("lastName", "four")
	require.Nil(t, o.errors("lastName"))
	_, present := o.state.Errors["lastName"]
	require.False(t, present)
}

func TestFormFieldsPassedToOtherComponents(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{"passedDown": "mock passed down"}, true)
	passedDown := o.fields["passedDown"]
	require.Equal(t, "mock passed down", o.value("passedDown"))

	o.set("passedDown", "new mock passed down")
	require.Equal(t, "new mock passed down", o.value("passedDown"))
	require.Equal(t, Values{"passedDown": "new mock passed down", HasErrorsKey: true}, o.lastCall(t))

	o.set("passedDown", "more than fifteen characters")
	require.Equal(t, []string{maxError}, o.errors("passedDown"))

	o.set("passedDown", "a")
	require.Equal(t, []string{minError}, o.errors("passedDown"))

	o.set("passedDown", "four")
	require.Nil(t, o.errors("passedDown"))

	passedDown.Focus()
	o.set("passedDown", "b")
	require.Nil(t, o.errors("passedDown"))

	passedDown.Blur()
	require.Equal(t, []string{minError}, o.errors("passedDown"))
	require.Same(t, passedDown, o.fields["passedDown"])
}

func TestFormCustomCrossFieldValidation(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{"customError": "mock custom", "email": "my@email.com"}, true)

	o.set("customError", "new mock passed down")
	require.Equal(t, []string{customError}, o.errors("customError"))

	o.set("customError", "my@email.com")
	require.Nil(t, o.errors("customError"))
}

func TestFormEndToEndLengthRules(t *testing.T) {
	t.Parallel()

	var received []Values
	values := Values{"lastName": ""}
	f := New()

	var field *Field
	var render func()
	onChange := func(next Values) {
		received = append(received, next)
		values = next
		render()
	}
	render = func() {
		provider, useField, state := f.Use(values, onChange)
		field = useField(textInput, "lastName", validation.Min(2, "too short"), validation.Max(5, "too long"))
		provider.Provide(state)
	}
	render()

	field.Change("four")
	_, _, state := f.Use(values, onChange)
	require.NotContains(t, state.Errors, "lastName")
	require.False(t, state.HasErrors())
	require.Equal(t, Values{"lastName": "four", HasErrorsKey: false}, received[len(received)-1])

	field.Change("toolong")
	_, _, state = f.Use(values, onChange)
	require.Equal(t, []string{"too long"}, state.Errors["lastName"])
	require.Equal(t, Values{"lastName": "toolong", HasErrorsKey: true}, received[len(received)-1])

	field.Change("1")
	_, _, state = f.Use(values, onChange)
	require.Equal(t, []string{"too short"}, state.Errors["lastName"])
}

func TestFieldsWithoutRulesNeverProduceErrors(t *testing.T) {
	t.Parallel()

	o := newOwner(Values{}, false)
	for _, value := range []any{"", "x", "a much longer value than any rule", 12, nil} {
		o.set("lastName", value)
		require.Empty(t, o.state.Errors)
		require.Equal(t, false, o.lastCall(t)[HasErrorsKey])
	}
}

func TestOnChangeWithoutErrorsIsIdempotent(t *testing.T) {
	t.Parallel()

	f := New()
	var got Values
	_, _, state := f.Use(Values{"a": 1}, func(v Values) { got = v })

	state.OnChange("a", 2, nil)
	_, _, next := f.Use(got, nil)
	require.Empty(t, next.Errors)
	require.NotNil(t, next.Errors)

	next.OnChange("a", 3, []string{})
	_, _, last := f.Use(got, nil)
	require.Empty(t, last.Errors)
	require.Equal(t, false, got[HasErrorsKey])
}

func TestOnChangeNeverMutatesSnapshots(t *testing.T) {
	t.Parallel()

	f := New()
	values := Values{"a": "x"}
	var got Values
	_, _, state := f.Use(values, func(v Values) { got = v })

	messages := []string{"bad"}
	state.OnChange("a", "y", messages)
	messages[0] = "mutated by caller"

	require.Equal(t, Values{"a": "x"}, values)
	require.Empty(t, state.Errors)
	require.Equal(t, Values{"a": "y", HasErrorsKey: true}, got)

	_, _, next := f.Use(got, nil)
	require.Equal(t, []string{"bad"}, next.Errors["a"])

	next.OnChange("b", "z", nil)
	require.Equal(t, []string{"bad"}, next.Errors["a"])
	_, _, after := f.Use(got, nil)
	require.Equal(t, Errors{"a": {"bad"}}, after.Errors)
	require.Equal(t, Values{"a": "y", HasErrorsKey: true}, got, "a nil owner callback leaves the owner untouched")
}

func TestUseWithNilValues(t *testing.T) {
	t.Parallel()

	f := New()
	provider, useField, state := f.Use(nil, nil)
	require.NotNil(t, state.Values)

	field := useField(textInput, "name")
	provider.Provide(state)
	require.Nil(t, field.Props().Value)
	require.NotPanics(t, func() { field.Change("x") })
}

func TestProviderRenderJoinsChildren(t *testing.T) {
	t.Parallel()

	f := New()
	provider, useField, state := f.Use(Values{"first": "Ada", "last": "Lovelace"}, nil)
	first := useField(textInput, "first")
	last := useField(textInput, "last")

	view := provider.Render(state, first, nil, last)
	require.Equal(t, "first: Ada\nlast: Lovelace", view)
	require.Equal(t, state.Values, f.Context().Current().Values)
}

func TestFormLogsUpdatesAtDebugLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	f := New(WithLogger(log), WithName("signup"))
	provider, useField, state := f.Use(Values{}, nil)
	field := useField(textInput, "email", validation.Email())
	provider.Provide(state)
	field.Change("nope")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	require.Equal(t, "field updated", entry["message"])
	require.Equal(t, "signup", entry["form"])
	require.Equal(t, "email", entry["field"])
	require.Equal(t, true, entry["has_errors"])
}

func TestFormLoggingQuietAboveDebug(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "info", Writer: buf})
	require.NoError(t, err)

	f := New(WithLogger(log), WithName("signup"))
	provider, useField, state := f.Use(Values{}, nil)
	field := useField(textInput, "email", validation.Email())
	provider.Provide(state)
	field.Change("nope")

	require.Empty(t, buf.String())

	quiet := New(WithName("signup"))
	_, useQuiet, quietState := quiet.Use(Values{}, nil)
	quiet.provider.Provide(quietState)
	require.NotPanics(t, func() { useQuiet(textInput, "email").Change("x") })
}
