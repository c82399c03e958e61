package paint

import "math"

// Point is a screen-space position as reported by the input device.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cell is an integer canvas-space pixel coordinate.
type Cell struct {
	X, Y int
}

// Adjacent reports whether c and d are equal or 8-connected neighbours.
func (c Cell) Adjacent(d Cell) bool {
	return abs(c.X-d.X) <= 1 && abs(c.Y-d.Y) <= 1
}

// Distance returns the Euclidean distance between two cells.
func (c Cell) Distance(d Cell) float64 {
	return math.Hypot(float64(d.X-c.X), float64(d.Y-c.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
