package harness

import "slices"

// Case is a single declared test function
type Case struct {
	// Module groups cases the way a test file would, e.g. "test_square"
	Module string
	Name   string

	// Markers are free-form selection tags such as "slow"
	Markers []string

	// Skip, when set, is the reason the case is never executed
	Skip string
	// XFail, when set, is the reason the case is expected to fail
	XFail string

	Fixtures []string
	Params   *Table
	Body     func(t *T)
}

// AllMarkers returns the case markers plus the implicit ones derived from its fields
func (c Case) AllMarkers() []string {
	markers := slices.Clone(c.Markers)
	add := func(m string) {
		if !slices.Contains(markers, m) {
			markers = append(markers, m)
		}
	}
	if c.Skip != "" {
		add("skip")
	}
	if c.XFail != "" {
		add("xfail")
	}
	if c.Params != nil {
		add("parametrize")
	}
	return markers
}

// Suite bundles the markers, fixtures and cases of one test package
type Suite struct {
	Name     string
	Markers  []string // ini style marker lines
	Fixtures []Fixture
	Cases    []Case
}
