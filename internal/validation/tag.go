package validation

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Tag checks the value against a go-playground/validator tag expression such
// as "url" or "numeric,len=5". An unknown tag fails the rule.
func Tag(tag string, message ...string) Rule {
	return Rule{
		Check: func(value any, _ map[string]any) (any, bool) {
			return value, varPasses(value, tag)
		},
		Message: pick(message, Static(fmt.Sprintf("Must satisfy %q.", tag))),
	}
}

// KnownTag reports whether tag can be evaluated by Tag.
func KnownTag(tag string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = validatorInstance().Var("", tag)
	return true
}

func varPasses(value any, tag string) (passed bool) {
	defer func() {
		if recover() != nil {
			passed = false
		}
	}()
	if value == nil {
		return false
	}
	return validatorInstance().Var(value, tag) == nil
}
