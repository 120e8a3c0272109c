package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/alexisbeaulieu97/formkit/pkg/textutil"
)

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&’*+/\"=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")

// Min requires a length of at least n. Strings are measured in runes;
// slices, arrays and maps by element count. Other values fail.
func Min(n int, message ...string) Rule {
	return Rule{
		Check: func(value any, _ map[string]any) (any, bool) {
			length, ok := lengthOf(value)
			return value, ok && length >= n
		},
		Message: pick(message, func(any) string {
			return lengthMessage("At least", n, "required")
		}),
	}
}

// Max requires a length of at most n, measured like Min.
func Max(n int, message ...string) Rule {
	return Rule{
		Check: func(value any, _ map[string]any) (any, bool) {
			length, ok := lengthOf(value)
			return value, ok && length <= n
		},
		Message: pick(message, func(any) string {
			return lengthMessage("At most", n, "allowed")
		}),
	}
}

// Email requires a string shaped like an email address.
func Email(message ...string) Rule {
	return Rule{
		Check: func(value any, _ map[string]any) (any, bool) {
			text, ok := value.(string)
			return value, ok && emailPattern.MatchString(text)
		},
		Message: pick(message, Static("A valid email is required.")),
	}
}

// Upper converts strings to upper case. Non-strings pass through unchanged
// and fail.
func Upper(message ...string) Rule {
	return Rule{
		Check:   caseChange(strings.ToUpper),
		Message: pick(message, Static("Only strings can be made uppercase.")),
	}
}

// Lower converts strings to lower case. Non-strings pass through unchanged
// and fail.
func Lower(message ...string) Rule {
	return Rule{
		Check:   caseChange(strings.ToLower),
		Message: pick(message, Static("Only strings can be made lowercase.")),
	}
}

// Matches requires the value to equal the current value of another field.
func Matches(field string, message ...string) Rule {
	return Rule{
		Check: func(value any, values map[string]any) (any, bool) {
			return value, cmp.Equal(value, values[field])
		},
		Message: pick(message, Static(fmt.Sprintf("Must match %s.", field))),
	}
}

// lengthMessage only pluralizes above one, so limits of zero read
// "0 character is".
func lengthMessage(prefix string, n int, outcome string) string {
	count := max(n, 1)
	return fmt.Sprintf("%s %d %s %s %s.", prefix, n, textutil.Pluralize("character", count), textutil.Pluralize("is", count, "are"), outcome)
}

func caseChange(transform func(string) string) CheckFunc {
	return func(value any, _ map[string]any) (any, bool) {
		text, ok := value.(string)
		if !ok {
			return value, false
		}
		return transform(text), true
	}
}

func lengthOf(value any) (int, bool) {
	if text, ok := value.(string); ok {
		return utf8.RuneCountInString(text), true
	}
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	default:
		return 0, false
	}
}

func pick(custom []string, fallback Message) Message {
	if len(custom) > 0 && custom[0] != "" {
		return Static(custom[0])
	}
	return fallback
}
