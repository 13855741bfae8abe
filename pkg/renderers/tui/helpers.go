package tui

import (
	"sort"

	"github.com/goliatone/go-forminterp/pkg/program"
)

// RequiredInputs returns the names of string and password fields whose
// descriptor sets allowEmpty to false, for use with WithRequiredInputs.
func RequiredInputs(p program.Program) map[string]bool {
	out := make(map[string]bool)
	for _, field := range p.Fields {
		if field.Type != program.FieldTypeString && field.Type != program.FieldTypePassword {
			continue
		}
		if field.AllowEmpty != nil && !*field.AllowEmpty {
			out[field.Name] = true
		}
	}
	return out
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
