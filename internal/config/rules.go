package config

import (
	"github.com/alexisbeaulieu97/formkit/internal/validation"
)

// ValidationRules converts the field's declared rules into a rule chain, in
// declaration order. Unknown rule types are skipped; ValidateDefinition
// rejects them before this is reached.
func (f Field) ValidationRules() []validation.Rule {
	rules := make([]validation.Rule, 0, len(f.Rules))
	for _, rule := range f.Rules {
		if built, ok := rule.build(); ok {
			rules = append(rules, built)
		}
	}
	return rules
}

func (r Rule) build() (validation.Rule, bool) {
	message := optional(r.Message)
	switch r.Type {
	case RuleMin:
		return validation.Min(r.Value, message...), true
	case RuleMax:
		return validation.Max(r.Value, message...), true
	case RuleEmail:
		return validation.Email(message...), true
	case RuleUpper:
		return validation.Upper(message...), true
	case RuleLower:
		return validation.Lower(message...), true
	case RuleMatches:
		return validation.Matches(r.Field, message...), true
	case RuleTag:
		return validation.Tag(r.Tag, message...), true
	default:
		return validation.Rule{}, false
	}
}

func optional(message string) []string {
	if message == "" {
		return nil
	}
	return []string{message}
}
