package paint

// FloodFill repaints the 4-connected region of pixels that share the seed's
// exact color, starting at (x, y), and returns the number of pixels
// repainted.
//
// It is a no-op when the seed is out of bounds or already has color c.
// The traversal is breadth-first over an explicit queue.
func (s *Surface) FloodFill(x, y int, c Color) int {
	if !s.InBounds(x, y) {
		return 0
	}
	target := s.pix[y*s.width+x]
	if target == c {
		return 0
	}

	w, h := s.width, s.height
	queue := []int{y*w + x}
	s.pix[y*w+x] = c
	n := 1
	minX, minY, maxX, maxY := x, y, x, y

	for head := 0; head < len(queue); head++ {
		i := queue[head]
		px, py := i%w, i/w
		minX, maxX = min(minX, px), max(maxX, px)
		minY, maxY = min(minY, py), max(maxY, py)

		// Neighbours are painted when enqueued so none is queued twice.
		if px > 0 && s.pix[i-1] == target {
			s.pix[i-1] = c
			queue = append(queue, i-1)
			n++
		}
		if px < w-1 && s.pix[i+1] == target {
			s.pix[i+1] = c
			queue = append(queue, i+1)
			n++
		}
		if py > 0 && s.pix[i-w] == target {
			s.pix[i-w] = c
			queue = append(queue, i-w)
			n++
		}
		if py < h-1 && s.pix[i+w] == target {
			s.pix[i+w] = c
			queue = append(queue, i+w)
			n++
		}
	}

	s.dirty.MarkRect(rectFromCorners(minX, minY, maxX, maxY))
	return n
}
