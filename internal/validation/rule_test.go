package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunReturnsNilWhenAllRulesPass(t *testing.T) {
	t.Parallel()

	value, errs := Run("four", nil, []Rule{Min(2), Max(5)})
	require.Equal(t, "four", value)
	require.Nil(t, errs)
}

func TestRunWithoutRules(t *testing.T) {
	t.Parallel()

	value, errs := Run(42, map[string]any{"other": 1}, nil)
	require.Equal(t, 42, value)
	require.Nil(t, errs)
}

func TestRunCollectsEveryFailureInOrder(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		Email("mock email message"),
		Max(15, "mock max message"),
		Min(2, "never reported"),
	}
	_, errs := Run("a long incorrect email", nil, rules)
	require.Equal(t, []string{"mock email message", "mock max message"}, errs)
}

func TestRunThreadsTransformedValue(t *testing.T) {
	t.Parallel()

	seen := ""
	record := New(func(value any, _ map[string]any) (any, bool) {
		seen = value.(string)
		return value, true
	}, "unused")

	value, errs := Run("MiXeD", nil, []Rule{Lower(), record, Upper()})
	require.Nil(t, errs)
	require.Equal(t, "mixed", seen)
	require.Equal(t, "MIXED", value)
}

func TestRunPassesFormValuesToChecks(t *testing.T) {
	t.Parallel()

	custom := New(func(value any, values map[string]any) (any, bool) {
		return value, value == values["email"]
	}, "mock custom error")

	values := map[string]any{"email": "my@email.com"}

	_, errs := Run("new mock passed down", values, []Rule{custom})
	require.Equal(t, []string{"mock custom error"}, errs)

	_, errs = Run("my@email.com", values, []Rule{custom})
	require.Nil(t, errs)
}

func TestRunTreatsPanickingCheckAsFailure(t *testing.T) {
	t.Parallel()

	explode := New(func(value any, _ map[string]any) (any, bool) {
		return value.(map[string]any)["missing"], true
	}, "could not evaluate")

	var (
		value any
		errs  []string
	)
	require.NotPanics(t, func() {
		value, errs = Run(7, nil, []Rule{explode, Max(3)})
	})
	require.Equal(t, 7, value)
	require.Equal(t, []string{"could not evaluate", "At most 3 characters are allowed."}, errs)
}

func TestRunComputedMessageSeesFailingValue(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Check:   func(value any, _ map[string]any) (any, bool) { return strings.TrimSpace(value.(string)), false },
		Message: func(value any) string { return "rejected " + value.(string) },
	}

	value, errs := Run("  padded ", nil, []Rule{rule})
	require.Equal(t, "padded", value)
	require.Equal(t, []string{"rejected   padded "}, errs)
}

func TestRunWithNilCheckAndMessage(t *testing.T) {
	t.Parallel()

	_, errs := Run("x", nil, []Rule{{}, {Check: func(v any, _ map[string]any) (any, bool) { return v, false }}})
	require.Equal(t, []string{"Invalid value."}, errs)
}
