package paint

import "golang.org/x/image/math/f64"

// Matrix is the canvas-to-screen transform of a View: a uniform zoom
// about the canvas origin followed by a pan.
//
//	screen = canvas*Zoom + Pan
type Matrix struct {
	Zoom       float64
	PanX, PanY float64
}

// TransformPoint maps a canvas position to the screen.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{X: p.X*m.Zoom + m.PanX, Y: p.Y*m.Zoom + m.PanY}
}

// Aff3 converts m to the layout used by golang.org/x/image/draw.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{
		m.Zoom, 0, m.PanX,
		0, m.Zoom, m.PanY,
	}
}
