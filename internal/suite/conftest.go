// Package suite holds the shape test cases run by shapecheck.
package suite

import (
	"context"

	"shapecheck/internal/harness"
	"shapecheck/internal/shapes"
)

// SlowMarker is the ini line registering the slow marker
const SlowMarker = `slow: marks tests as slow (deselect with '-m "not slow"')`

// RectangleFixture provides a fresh 2x4 rectangle to every case that asks for it
var RectangleFixture = harness.Fixture{
	Name: "rectangle",
	Setup: func(ctx context.Context) (any, error) {
		return shapes.NewRectangle(2, 4), nil
	},
}

// Default returns the suite run by the CLI
func Default() harness.Suite {
	var cases []harness.Case
	cases = append(cases, functionCases()...)
	cases = append(cases, squareCases()...)
	cases = append(cases, rectangleCases()...)

	return harness.Suite{
		Name:     "shapes",
		Markers:  []string{SlowMarker},
		Fixtures: []harness.Fixture{RectangleFixture},
		Cases:    cases,
	}
}
