package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquare_Area(t *testing.T) {
	tests := []struct {
		side     float64
		expected float64
	}{
		{side: 4, expected: 16},
		{side: 5, expected: 25},
		{side: 6, expected: 36},
	}

	for _, tt := range tests {
		t.Run(NewSquare(tt.side).String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, NewSquare(tt.side).Area())
		})
	}
}

func TestSquare_Perimeter(t *testing.T) {
	tests := []struct {
		side     float64
		expected float64
	}{
		{side: 2, expected: 8},
		{side: 4, expected: 16},
		{side: 9, expected: 36},
	}

	for _, tt := range tests {
		t.Run(NewSquare(tt.side).String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, NewSquare(tt.side).Perimeter())
		})
	}
}

func TestSquare_Identities(t *testing.T) {
	for _, s := range []float64{0, 0.5, 1, 3, 7.25, 100} {
		sq := NewSquare(s)
		assert.Equal(t, s*s, sq.Area(), "area of side %g", s)
		assert.Equal(t, 4*s, sq.Perimeter(), "perimeter of side %g", s)

		r := sq.Rectangle()
		assert.Equal(t, sq.Area(), r.Area())
		assert.Equal(t, sq.Perimeter(), r.Perimeter())
	}
}

func TestRectangle(t *testing.T) {
	r := NewRectangle(2, 4)

	assert.Equal(t, 2.0, r.Width)
	assert.Equal(t, 4.0, r.Height)
	assert.Equal(t, 8.0, r.Area())
	assert.Equal(t, 12.0, r.Perimeter())
	assert.Equal(t, "Rectangle(2x4)", r.String())
}

func TestShapeInterface(t *testing.T) {
	var all []Shape = []Shape{NewRectangle(1, 2), NewSquare(3)}
	assert.Equal(t, 2.0, all[0].Area())
	assert.Equal(t, 12.0, all[1].Perimeter())
}
