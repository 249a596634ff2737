package suite

import (
	"time"

	"shapecheck/internal/harness"
)

// SlowDelay is how long test_very_slow blocks
const SlowDelay = 7 * time.Second

func functionCases() []harness.Case {
	return []harness.Case{
		{
			Module: "test_functions",
			Name:   "test_add",
			Skip:   "This feature is currently broken",
			Body: func(t *harness.T) {
				if 1+2 != 2+1 {
					t.Errorf("1 + 2 != 2 + 1")
				}
			},
		},
		{
			Module:  "test_functions",
			Name:    "test_very_slow",
			Markers: []string{"slow"},
			Body: func(t *harness.T) {
				select {
				case <-time.After(SlowDelay):
				case <-t.Context().Done():
					t.Fatalf("interrupted: %v", t.Context().Err())
				}
				if 1+2 != 2+1 {
					t.Errorf("1 + 2 != 2 + 1")
				}
			},
		},
		{
			Module: "test_functions",
			Name:   "test_divide_by_zero",
			XFail:  "We know we cannot divide by zero",
			Body: func(t *harness.T) {
				numerator, divisor := 7, 0
				t.Logf("7 / 0 = %d", numerator/divisor)
			},
		},
	}
}
