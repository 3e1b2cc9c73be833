package vars

import (
	"sort"
	"strings"
)

// Substitute replaces every literal occurrence of {{name}} in text with the
// value from vars. Replacement is plain string substitution; variable names
// containing regex metacharacters are not treated specially. Keys are applied
// longest-first (ties broken lexicographically) so a variable whose name is a
// prefix of another can never clobber the longer one. Unresolved placeholders
// are left verbatim.
func Substitute(text string, vars map[string]string) string {
	if text == "" || len(vars) == 0 {
		return text
	}
	if !strings.Contains(text, "{{") {
		return text
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		text = strings.ReplaceAll(text, "{{"+k+"}}", vars[k])
	}
	return text
}
