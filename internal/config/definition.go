package config

// Field kinds understood by the terminal front-end.
const (
	KindText     = "text"
	KindCheckbox = "checkbox"
)

// Rule types accepted in a form definition.
const (
	RuleMin     = "min"
	RuleMax     = "max"
	RuleEmail   = "email"
	RuleUpper   = "upper"
	RuleLower   = "lower"
	RuleMatches = "matches"
	RuleTag     = "tag"
)

// Definition is a complete form description loaded from YAML.
type Definition struct {
	Version     string  `yaml:"version" validate:"required,oneof=1"`
	Name        string  `yaml:"name" validate:"required,field_name"`
	Title       string  `yaml:"title,omitempty" validate:"max=100"`
	Description string  `yaml:"description,omitempty"`
	Fields      []Field `yaml:"fields" validate:"required,min=1,dive"`
}

// Field describes one named input of the form.
type Field struct {
	Name        string `yaml:"name" validate:"required,field_name"`
	Label       string `yaml:"label,omitempty"`
	Kind        string `yaml:"kind,omitempty" validate:"omitempty,oneof=text checkbox"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Debounce    bool   `yaml:"debounce,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	Rules       []Rule `yaml:"rules,omitempty" validate:"omitempty,dive"`
}

// Rule is one entry of a field's validation chain.
type Rule struct {
	Type    string `yaml:"type" validate:"required,rule_type"`
	Value   int    `yaml:"value,omitempty" validate:"gte=0"`
	Field   string `yaml:"field,omitempty"`
	Tag     string `yaml:"tag,omitempty"`
	Message string `yaml:"message,omitempty"`
}

// EffectiveKind returns the field kind, defaulting to text.
func (f Field) EffectiveKind() string {
	if f.Kind == "" {
		return KindText
	}
	return f.Kind
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Field looks up a field by name.
func (d *Definition) Field(name string) (Field, bool) {
	if d == nil {
		return Field{}, false
	}
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Defaults returns the initial value of every field. Text fields without a
// default start empty and checkboxes start unchecked.
func (d *Definition) Defaults() map[string]any {
	values := make(map[string]any)
	if d == nil {
		return values
	}
	for _, field := range d.Fields {
		switch {
		case field.Default != nil:
			values[field.Name] = field.Default
		case field.EffectiveKind() == KindCheckbox:
			values[field.Name] = false
		default:
			values[field.Name] = ""
		}
	}
	return values
}
