package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func validateDefinitionPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("form definition file is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve definition path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("definition file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("definition path %s is a directory", abs)
	}

	return nil
}

type assignment struct {
	name  string
	value string
}

// parseAssignments splits name=value pairs. The value may itself contain
// '='.
func parseAssignments(raw []string) ([]assignment, error) {
	assignments := make([]assignment, 0, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", item)
		}
		assignments = append(assignments, assignment{name: name, value: value})
	}
	return assignments, nil
}
