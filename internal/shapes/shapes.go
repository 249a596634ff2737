package shapes

import "fmt"

// Shape is a closed plane figure with an area and a perimeter
type Shape interface {
	Area() float64
	Perimeter() float64
}

// Rectangle is an axis-aligned rectangle
type Rectangle struct {
	Width  float64
	Height float64
}

// NewRectangle creates a new Rectangle
func NewRectangle(width, height float64) Rectangle {
	return Rectangle{Width: width, Height: height}
}

// Area returns width * height
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// Perimeter returns 2 * (width + height)
func (r Rectangle) Perimeter() float64 {
	return 2 * (r.Width + r.Height)
}

func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle(%gx%g)", r.Width, r.Height)
}

// Square is a rectangle whose sides are all the same length
type Square struct {
	Side float64
}

// NewSquare creates a new Square
func NewSquare(side float64) Square {
	return Square{Side: side}
}

// Area returns side * side
func (s Square) Area() float64 {
	return s.Side * s.Side
}

// Perimeter returns 4 * side
func (s Square) Perimeter() float64 {
	return 4 * s.Side
}

// Rectangle returns the equivalent rectangle
func (s Square) Rectangle() Rectangle {
	return NewRectangle(s.Side, s.Side)
}

func (s Square) String() string {
	return fmt.Sprintf("Square(%g)", s.Side)
}
