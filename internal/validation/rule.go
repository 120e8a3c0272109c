// Package validation runs ordered field rule chains. A rule may rewrite the
// value it checks (for example case normalisation) and the rewritten value is
// what the next rule sees. Every rule runs; the messages of all failing rules
// are returned in declaration order.
package validation

import "fmt"

// CheckFunc inspects a field value alongside the other form values. It
// returns the value to pass on to the next rule and whether the check passed.
type CheckFunc func(value any, values map[string]any) (any, bool)

// Message produces the text reported when a rule fails. It receives the
// value the failing rule was given.
type Message func(value any) string

// Static returns a Message that always reports text.
func Static(text string) Message {
	return func(any) string { return text }
}

// Rule pairs a check with the message reported when it fails.
type Rule struct {
	Check   CheckFunc
	Message Message
}

// New builds a rule from a check and a fixed message.
func New(check CheckFunc, message string) Rule {
	return Rule{Check: check, Message: Static(message)}
}

// Run threads value through rules and collects failure messages. The
// returned slice is nil when every rule passes.
func Run(value any, values map[string]any, rules []Rule) (any, []string) {
	var failures []string
	current := value
	for _, rule := range rules {
		next, passed := apply(rule, current, values)
		if !passed {
			failures = append(failures, describe(rule, current))
		}
		current = next
	}
	return current, failures
}

func apply(rule Rule, value any, values map[string]any) (next any, passed bool) {
	if rule.Check == nil {
		return value, true
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			next, passed = value, false
		}
	}()
	return rule.Check(value, values)
}

func describe(rule Rule, value any) (text string) {
	if rule.Message == nil {
		return "Invalid value."
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			text = fmt.Sprintf("Invalid value: %v", recovered)
		}
	}()
	return rule.Message(value)
}
