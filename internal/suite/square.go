package suite

import (
	"shapecheck/internal/harness"
	"shapecheck/internal/shapes"
)

func squareCases() []harness.Case {
	return []harness.Case{
		{
			Module: "test_square",
			Name:   "test_multiple_square_areas",
			Params: harness.Parametrize("side_length, expected_area",
				[]any{4, 16},
				[]any{5, 25},
				[]any{6, 36},
			),
			Body: func(t *harness.T) {
				side := harness.ParamOf[int](t, "side_length")
				expected := harness.ParamOf[int](t, "expected_area")

				if got := shapes.NewSquare(float64(side)).Area(); got != float64(expected) {
					t.Errorf("assert %g == %d", got, expected)
				}
			},
		},
		{
			Module: "test_square",
			Name:   "test_multiple_square_permimeters",
			Params: harness.Parametrize("side_length, expected_perimeter",
				[]any{2, 8},
				[]any{4, 16},
				[]any{9, 36},
			),
			Body: func(t *harness.T) {
				side := harness.ParamOf[int](t, "side_length")
				expected := harness.ParamOf[int](t, "expected_perimeter")

				if got := shapes.NewSquare(float64(side)).Perimeter(); got != float64(expected) {
					t.Errorf("assert %g == %d", got, expected)
				}
			},
		},
	}
}
