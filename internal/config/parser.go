package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	formerrors "github.com/alexisbeaulieu97/formkit/pkg/errors"
	"github.com/alexisbeaulieu97/formkit/pkg/textutil"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseDefinition loads a form definition from disk, validates it, and
// returns the resulting model.
func ParseDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, formerrors.NewParseError(path, 0, err)
	}
	return ParseDefinitionBytes(path, data)
}

// ParseDefinitionBytes decodes and validates a definition. path is only used
// in error messages.
func ParseDefinitionBytes(path string, data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, formerrors.NewParseError(path, extractLine(err), err)
	}

	expandDefaults(&def)

	if err := ValidateDefinition(&def); err != nil {
		return nil, err
	}

	return &def, nil
}

// expandDefaults replaces ${VAR} references in string defaults, including
// strings nested inside list or map defaults.
func expandDefaults(def *Definition) {
	defaults := make(map[string]any, len(def.Fields))
	for i, field := range def.Fields {
		if field.Default != nil {
			defaults[fmt.Sprint(i)] = field.Default
		}
	}

	expanded := textutil.DeepTransform(defaults, func(value any) any {
		if text, ok := value.(string); ok {
			return os.ExpandEnv(text)
		}
		return value
	})

	for i := range def.Fields {
		if value, ok := expanded[fmt.Sprint(i)]; ok {
			def.Fields[i].Default = value
		}
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
