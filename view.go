package paint

import "math"

// Zoom limits.
const (
	MinZoom = 0.1
	MaxZoom = 20.0
)

// View maps screen coordinates to canvas coordinates under a zoom factor
// and a pan offset. It is independent of pixel content.
//
// The zero View is not usable; create one with NewView.
type View struct {
	zoom float64
	panX float64 // screen position of the canvas origin
	panY float64
}

// NewView returns the identity view: zoom 1, no pan.
func NewView() *View {
	return &View{zoom: 1}
}

// Zoom returns the current zoom factor.
func (v *View) Zoom() float64 { return v.zoom }

// PanOffset returns the screen position of the canvas origin.
func (v *View) PanOffset() (x, y float64) { return v.panX, v.panY }

// Matrix returns the canvas-to-screen transform.
func (v *View) Matrix() Matrix {
	return Matrix{Zoom: v.zoom, PanX: v.panX, PanY: v.panY}
}

// ScreenToCanvas maps a screen position to the canvas cell under it.
// Coordinates are truncated toward zero, so positions just left of or
// above the canvas origin resolve to column or row 0.
func (v *View) ScreenToCanvas(sx, sy float64) (int, int) {
	return int((sx - v.panX) / v.zoom), int((sy - v.panY) / v.zoom)
}

// CanvasToScreen maps a canvas position to the screen.
func (v *View) CanvasToScreen(cx, cy float64) (float64, float64) {
	return cx*v.zoom + v.panX, cy*v.zoom + v.panY
}

// ZoomAt multiplies the zoom by factor, clamped to [MinZoom, MaxZoom],
// keeping the canvas point under the anchor at the same screen position.
// It reports whether the zoom factor changed.
func (v *View) ZoomAt(factor, ax, ay float64) bool {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return false
	}
	old := v.zoom
	relX := (ax - v.panX) / old
	relY := (ay - v.panY) / old

	v.zoom = clampZoom(old * factor)
	v.panX = ax - relX*v.zoom
	v.panY = ay - relY*v.zoom
	return v.zoom != old
}

// Pan moves the canvas by a screen-space delta.
func (v *View) Pan(dx, dy float64) {
	v.panX += dx
	v.panY += dy
}

// Reset restores zoom 1 and removes the pan offset.
func (v *View) Reset() {
	v.zoom = 1
	v.panX, v.panY = 0, 0
}

// Center pans so a canvas of the given size sits in the middle of a
// viewport at the current zoom.
func (v *View) Center(viewW, viewH, canvasW, canvasH int) {
	v.panX = (float64(viewW) - float64(canvasW)*v.zoom) / 2
	v.panY = (float64(viewH) - float64(canvasH)*v.zoom) / 2
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
