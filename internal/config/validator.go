package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/formkit/internal/validation"
	formerrors "github.com/alexisbeaulieu97/formkit/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	ruleTypes        = map[string]struct{}{
		RuleMin: {}, RuleMax: {}, RuleEmail: {}, RuleUpper: {}, RuleLower: {}, RuleMatches: {}, RuleTag: {},
	}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("field_name", func(fl validator.FieldLevel) bool {
			return fieldNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("rule_type", func(fl validator.FieldLevel) bool {
			_, ok := ruleTypes[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// ValidateDefinition performs schema and cross-field checks on a definition.
func ValidateDefinition(def *Definition) error {
	if def == nil {
		return formerrors.NewValidationError("definition", "definition is nil", nil)
	}

	if err := validatorInstance().Struct(def); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(def.Fields))
	for i, field := range def.Fields {
		if first, exists := seen[field.Name]; exists {
			return formerrors.NewValidationError(fieldPath(i, "name"), fmt.Sprintf("duplicate field %q (first declared at fields[%d])", field.Name, first), nil)
		}
		seen[field.Name] = i
	}

	for i, field := range def.Fields {
		for j, rule := range field.Rules {
			if err := validateRule(def, field, rule, i, j); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateRule(def *Definition, field Field, rule Rule, fieldIndex, ruleIndex int) error {
	switch rule.Type {
	case RuleMin, RuleMax:
		if rule.Value <= 0 {
			return formerrors.NewValidationError(rulePath(fieldIndex, ruleIndex, "value"), fmt.Sprintf("%s rule needs a positive value", rule.Type), nil)
		}
	case RuleMatches:
		if rule.Field == "" {
			return formerrors.NewValidationError(rulePath(fieldIndex, ruleIndex, "field"), "matches rule needs a field", nil)
		}
		if rule.Field == field.Name {
			return formerrors.NewValidationError(rulePath(fieldIndex, ruleIndex, "field"), "field cannot match itself", nil)
		}
		if _, ok := def.Field(rule.Field); !ok {
			return formerrors.NewValidationError(rulePath(fieldIndex, ruleIndex, "field"), fmt.Sprintf("references unknown field %q", rule.Field), nil)
		}
	case RuleTag:
		if strings.TrimSpace(rule.Tag) == "" {
			return formerrors.NewValidationError(rulePath(fieldIndex, ruleIndex, "tag"), "tag rule needs a tag", nil)
		}
		if !validation.KnownTag(rule.Tag) {
			return formerrors.NewValidationError(rulePath(fieldIndex, ruleIndex, "tag"), fmt.Sprintf("unknown validator tag %q", rule.Tag), nil)
		}
	}
	return nil
}

// convertValidationError normalizes validator errors into definition
// validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return formerrors.NewValidationError(field, msg, err)
	}

	return formerrors.NewValidationError("definition", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	lowered := make([]string, 0, len(parts))
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldPath(index int, field string) string {
	return fmt.Sprintf("fields[%d].%s", index, field)
}

func rulePath(fieldIndex, ruleIndex int, field string) string {
	return fmt.Sprintf("fields[%d].rules[%d].%s", fieldIndex, ruleIndex, field)
}
