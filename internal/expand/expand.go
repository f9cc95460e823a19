// Package expand turns argument templates and resolved field bindings into
// a concrete argument vector for process execution.
package expand

import (
	"strings"

	"github.com/Zigazou/cliquetis/internal/types"
)

// Expand processes the templates strictly in declaration order. A template
// consisting of a single {name} token resolves to the bound value itself,
// so an absent value removes the argument from the vector. In every other
// template each {name} occurrence is textually replaced, absent values
// substituting as the empty string. Placeholder names with no binding stay
// literal.
func Expand(templates []string, bindings []types.Binding) []string {
	args := make([]string, 0, len(templates))
	for _, template := range templates {
		value, drop := expandOne(template, bindings)
		if drop {
			continue
		}
		args = append(args, value)
	}
	return args
}

func expandOne(template string, bindings []types.Binding) (value string, drop bool) {
	// Exact token match first: the whole template is one placeholder.
	// Matching the full {name} token avoids collisions between bound names
	// that are prefixes of one another.
	for _, binding := range bindings {
		if template == token(binding.Name) {
			if binding.Value.IsAbsent() {
				return "", true
			}
			return binding.Value.String(), false
		}
	}

	for _, binding := range bindings {
		template = strings.ReplaceAll(template, token(binding.Name), binding.Value.String())
	}

	return template, false
}

func token(name string) string {
	return "{" + name + "}"
}
