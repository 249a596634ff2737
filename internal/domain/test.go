package domain

import "shapecheck/internal/harness"

// Test represents a collected test item, one per parametrized invocation
type Test struct {
	ID      string         // Full id, e.g. "test_square::test_multiple_square_areas[4-16]"
	Module  string         // Module the case was declared in
	Name    string         // Case name including the parameter id
	Markers []string       // Declared and implicit markers
	Case    harness.Case   // The declaring case
	Params  harness.Params // Parameter values for this invocation
}

// HasMarker reports whether the test carries the marker
func (t Test) HasMarker(name string) bool {
	for _, m := range t.Markers {
		if m == name {
			return true
		}
	}
	return false
}
