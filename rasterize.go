package paint

// Step is the direction of one move of the line walker: each component is
// -1, 0 or 1. The zero Step means "no move yet".
type Step struct {
	DX, DY int
}

// Diagonal reports whether both axes advanced.
func (s Step) Diagonal() bool {
	return s.DX != 0 && s.DY != 0
}

// Orthogonal reports whether exactly one axis advanced.
func (s Step) Orthogonal() bool {
	return (s.DX != 0) != (s.DY != 0)
}

// turns reports whether s followed by next forms an L: two orthogonal
// moves on different axes. The cell between them is a staircase corner.
func (s Step) turns(next Step) bool {
	if !s.Orthogonal() || !next.Orthogonal() {
		return false
	}
	return (s.DX != 0) != (next.DX != 0)
}

// walkLine visits every cell of the Bresenham line from (x0, y0) to
// (x1, y1), both inclusive, in order. in is the step that led into each
// visited cell; it is the zero Step for the first cell.
func walkLine(x0, y0, x1, y1 int, visit func(x, y int, in Step)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	var in Step
	for {
		visit(x0, y0, in)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		in = Step{}
		if e2 >= dy {
			err += dy
			x0 += sx
			in.DX = sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
			in.DY = sy
		}
	}
}

// Segment draws a plain one-pixel Bresenham segment, endpoints inclusive.
func (s *Surface) Segment(x0, y0, x1, y1 int, c Color) {
	walkLine(x0, y0, x1, y1, func(x, y int, _ Step) {
		s.SetPixel(x, y, c)
	})
}

// PixelPerfectSegment draws a one-pixel segment that never leaves a
// staircase corner behind. Each iteration records the step it took; when
// the next step turns orthogonally onto the other axis, the cell between
// the two steps is erased to the background color instead of painted, and
// the step into the following cell counts as diagonal, so a unit
// staircase keeps every other cell.
//
// in is the last step of the previous segment of the same stroke (the zero
// Step at stroke start), so corners at segment joins are removed too. The
// returned Step is the last step taken, to be passed as in for the next
// segment. Redrawing a segment with the same arguments repeats the same
// writes.
func (s *Surface) PixelPerfectSegment(x0, y0, x1, y1 int, c Color, in Step) Step {
	var (
		pending   Cell
		pendingIn = in
		last      = in
		started   bool
	)
	walkLine(x0, y0, x1, y1, func(x, y int, step Step) {
		if !started {
			started = true
			pending = Cell{x, y}
			return
		}
		next := step
		if pendingIn.turns(step) {
			s.SetPixel(pending.X, pending.Y, s.background)
			// The kept neighbours of an erased corner meet diagonally.
			next = Step{pendingIn.DX + step.DX, pendingIn.DY + step.DY}
		} else {
			s.SetPixel(pending.X, pending.Y, c)
		}
		pending, pendingIn, last = Cell{x, y}, next, next
	})
	s.SetPixel(pending.X, pending.Y, c)
	return last
}

// ThickSegment draws a segment of the given diameter with round caps by
// stamping an aliased disc at every cell of the Bresenham line.
func (s *Surface) ThickSegment(x0, y0, x1, y1, size int, c Color) {
	if size <= 1 {
		s.Segment(x0, y0, x1, y1, c)
		return
	}
	disc := discOffsets(size)
	walkLine(x0, y0, x1, y1, func(x, y int, _ Step) {
		for _, o := range disc {
			s.SetPixel(x+o.X, y+o.Y, c)
		}
	})
}

// discOffsets returns the cells of an aliased disc of the given diameter
// relative to its anchor cell. Even diameters extend one pixel further
// right and down than left and up.
func discOffsets(size int) []Cell {
	shift := (size - 1) / 2
	center := float64(size-1) / 2
	r2 := float64(size*size) / 4
	out := make([]Cell, 0, size*size)
	for oy := 0; oy < size; oy++ {
		for ox := 0; ox < size; ox++ {
			fx, fy := float64(ox)-center, float64(oy)-center
			if fx*fx+fy*fy <= r2 {
				out = append(out, Cell{ox - shift, oy - shift})
			}
		}
	}
	return out
}
