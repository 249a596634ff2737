package discovery

import (
	"path/filepath"
	"strings"

	"shapecheck/internal/domain"
)

// Filter selects collected tests by marker expression, keyword and id
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Select splits tests into selected and deselected.
// markExpr identifiers match markers exactly; keyword identifiers match test ids using
// MatchName. Nil expressions select everything.
func (f *Filter) Select(tests []domain.Test, markExpr, keyword *Expression) (selected, deselected []domain.Test) {
	for _, test := range tests {
		byMarker := markExpr.Eval(test.HasMarker)
		byKeyword := keyword.Eval(func(ident string) bool {
			return MatchName(test.ID, ident)
		})
		if byMarker && byKeyword {
			selected = append(selected, test)
		} else {
			deselected = append(deselected, test)
		}
	}
	return selected, deselected
}

// FilterByName filters tests by name pattern using wildcard matching
// Supports patterns like "*square*" or "test_square::*"
func (f *Filter) FilterByName(tests []domain.Test, pattern string) []domain.Test {
	if pattern == "" {
		return tests
	}

	var filtered []domain.Test
	for _, test := range tests {
		if MatchName(test.ID, pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

// FilterByIDs keeps the tests whose id is in ids, preserving collection order
func (f *Filter) FilterByIDs(tests []domain.Test, ids map[string]struct{}) []domain.Test {
	var filtered []domain.Test
	for _, test := range tests {
		if _, ok := ids[test.ID]; ok {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

// MatchName reports whether a test id matches a pattern.
// Patterns without wildcards match as a case-insensitive substring.
func MatchName(id, pattern string) bool {
	if pattern == "" {
		return true
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, id); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// All non-empty parts must appear in the id
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(strings.ToLower(id), strings.ToLower(part)) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	if strings.Contains(pattern, "?") {
		return false
	}
	return strings.Contains(strings.ToLower(id), strings.ToLower(pattern))
}
