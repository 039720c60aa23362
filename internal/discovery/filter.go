package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters circuit files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters circuit files by name pattern using wildcard
// matching. Patterns apply to the filename with and without the .circ
// extension, so "*adder*", "alu-add" and "cpu?.circ" all work.
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	var filtered []string
	for _, test := range tests {
		name := filepath.Base(test)
		stem := strings.TrimSuffix(name, ".circ")
		if matchName(pattern, name) || matchName(pattern, stem) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

// matchName tries wildcard matching first, then falls back to checking that
// every literal part of a starred pattern appears in the name. Patterns
// without wildcards are plain substring checks.
func matchName(pattern, name string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		hasLiteral := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasLiteral = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasLiteral
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
