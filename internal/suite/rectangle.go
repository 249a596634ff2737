package suite

import (
	"shapecheck/internal/harness"
	"shapecheck/internal/shapes"
)

func rectangleCases() []harness.Case {
	return []harness.Case{
		{
			Module:   "test_rectangle",
			Name:     "test_area",
			Fixtures: []string{"rectangle"},
			Body: func(t *harness.T) {
				r := harness.FixtureOf[shapes.Rectangle](t, "rectangle")
				if got := r.Area(); got != 2*4 {
					t.Errorf("assert %g == %d", got, 2*4)
				}
			},
		},
		{
			Module:   "test_rectangle",
			Name:     "test_perimeter",
			Fixtures: []string{"rectangle"},
			Body: func(t *harness.T) {
				r := harness.FixtureOf[shapes.Rectangle](t, "rectangle")
				if got := r.Perimeter(); got != 2*4+2*2 {
					t.Errorf("assert %g == %d", got, 2*4+2*2)
				}
			},
		},
	}
}
