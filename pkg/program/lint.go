package program

import (
	"fmt"
	"sort"
	"strings"
)

// Issue is a non-fatal finding about a program. The interpreter tolerates all
// of them; Lint exists so authors can catch mistakes before running a form.
type Issue struct {
	Index   int
	Field   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("fields[%d] %q: %s", i.Index, i.Field, i.Message)
}

// Lint reports unknown field types, duplicate names, callbacks on non-button
// fields and args that name fields the form will not render.
func Lint(p Program) []Issue {
	var issues []Issue

	rendered := make(map[string]int, len(p.Fields))
	for i, field := range p.Fields {
		if !field.Type.Known() {
			continue
		}
		if prev, exists := rendered[field.Name]; exists {
			issues = append(issues, Issue{
				Index:   i,
				Field:   field.Name,
				Message: fmt.Sprintf("duplicate name, fields[%d] wins lookups", prev),
			})
			continue
		}
		rendered[field.Name] = i
	}

	for i, field := range p.Fields {
		if strings.TrimSpace(field.Name) == "" {
			issues = append(issues, Issue{Index: i, Field: field.Name, Message: "empty name"})
		}
		if !field.Type.Known() {
			issues = append(issues, Issue{
				Index:   i,
				Field:   field.Name,
				Message: fmt.Sprintf("field type %q is not valid", field.Type),
			})
			continue
		}
		if field.Type != FieldTypeButton {
			if field.Callback != "" || len(field.Args) > 0 {
				issues = append(issues, Issue{Index: i, Field: field.Name, Message: "callback and args only apply to buttons"})
			}
			continue
		}
		if field.Callback == "" && len(field.Args) > 0 {
			issues = append(issues, Issue{Index: i, Field: field.Name, Message: "args declared without a callback"})
		}
		for _, arg := range field.Args {
			if _, ok := rendered[arg]; !ok {
				issues = append(issues, Issue{
					Index:   i,
					Field:   field.Name,
					Message: fmt.Sprintf("arg %q does not name a rendered field and will be omitted", arg),
				})
			}
		}
	}

	sort.SliceStable(issues, func(a, b int) bool {
		return issues[a].Index < issues[b].Index
	})
	return issues
}
