package paint

import "math"

// Default angle increments for the line tool, in degrees. The committed
// line snaps to 15°; the live guide drawn while dragging snaps to 10°.
const (
	DefaultLineSnap    = 15.0
	DefaultPreviewSnap = 10.0
)

// LineGesture is an in-progress straight-line drag in canvas space.
type LineGesture struct {
	Start   Cell
	Current Cell
}

// Snapped returns the end point obtained by rounding the gesture's
// direction to the nearest multiple of stepDeg while keeping its length.
// A non-positive stepDeg disables snapping.
func (g LineGesture) Snapped(stepDeg float64) Cell {
	return snapEnd(g.Start, g.Current, stepDeg)
}

func snapEnd(start, end Cell, stepDeg float64) Cell {
	if stepDeg <= 0 || start == end {
		return end
	}
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	snapped := roundHalfUp(angle/stepDeg) * stepDeg * math.Pi / 180
	length := math.Hypot(dx, dy)
	return Cell{
		X: start.X + int(roundHalfUp(length*math.Cos(snapped))),
		Y: start.Y + int(roundHalfUp(length*math.Sin(snapped))),
	}
}

// roundHalfUp rounds to the nearest integer, with halves going toward
// positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
