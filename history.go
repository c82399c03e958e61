package paint

// snapshot is a deep copy of a surface buffer together with its size, so
// undo across a resize restores the old dimensions too.
type snapshot struct {
	width  int
	height int
	pix    []Color
}

func takeSnapshot(s *Surface) snapshot {
	pix := make([]Color, len(s.pix))
	copy(pix, s.pix)
	return snapshot{width: s.width, height: s.height, pix: pix}
}

// History keeps undo and redo stacks of full-buffer snapshots.
//
// Snapshots cost O(width×height) each; there is no delta compression.
type History struct {
	undo  []snapshot
	redo  []snapshot
	limit int // 0 means unlimited
}

// NewHistory returns an empty history. limit caps the undo depth; zero or
// negative means unlimited.
func NewHistory(limit int) *History {
	return &History{limit: max(limit, 0)}
}

// Record pushes a copy of the surface onto the undo stack and discards the
// redo stack. Call it once at the start of a mutating gesture.
func (h *History) Record(s *Surface) {
	h.undo = append(h.undo, takeSnapshot(s))
	if h.limit > 0 && len(h.undo) > h.limit {
		drop := len(h.undo) - h.limit
		clear(h.undo[:drop])
		h.undo = h.undo[drop:]
	}
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo restores the most recent snapshot, moving the current buffer onto
// the redo stack. It reports false and does nothing when there is nothing
// to undo.
func (h *History) Undo(s *Surface) bool {
	return swap(&h.undo, &h.redo, s)
}

// Redo is the mirror of Undo.
func (h *History) Redo(s *Surface) bool {
	return swap(&h.redo, &h.undo, s)
}

// CanUndo reports whether Undo would change the surface.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would change the surface.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// Reset drops both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

func swap(from, to *[]snapshot, s *Surface) bool {
	n := len(*from)
	if n == 0 {
		return false
	}
	top := (*from)[n-1]
	(*from)[n-1] = snapshot{}
	*from = (*from)[:n-1]

	// The current buffer moves to the other stack as is: the surface gets
	// the popped snapshot, which nothing else references.
	*to = append(*to, snapshot{width: s.width, height: s.height, pix: s.pix})
	s.replace(top.width, top.height, top.pix)
	return true
}
