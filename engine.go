package paint

import "image"

// Button identifies the pointer button of a gesture.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// strokeCursor tracks an in-progress freehand stroke in canvas space.
type strokeCursor struct {
	prev    Cell // last confirmed stroke point
	last    Cell // most recent raw draw point
	in      Step // last step of the most recent segment
	hasPrev bool
	hasLast bool
}

// Engine is one open document: the raster surface, its view, the tool
// state, the undo history and the in-progress gestures.
//
// The host forwards pointer, wheel and keyboard events, calls Tick on a
// fixed interval, and asks RenderInto for pixels to present.
//
// Engine is NOT safe for concurrent use. Drive it from a single goroutine
// or through a Loop.
type Engine struct {
	opts    engineOptions
	surface *Surface
	view    *View
	tools   *ToolState
	history *History

	line      *LineGesture // nil when no line drag is in progress
	stroke    strokeCursor
	pressed   bool // a tool gesture is in progress
	panning   bool
	panAnchor Point
}

// NewEngine creates a document of the given size.
func NewEngine(width, height int, opts ...EngineOption) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s, err := NewSurface(width, height, o.background)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		opts:    o,
		view:    NewView(),
		tools:   NewToolState(o.brushColor, o.brushSize),
		history: NewHistory(o.historyLimit),
	}
	e.install(s)
	return e, nil
}

// Surface returns the live raster surface.
func (e *Engine) Surface() *Surface { return e.surface }

// View returns the view transform.
func (e *Engine) View() *View { return e.view }

// Tools returns the tool state.
func (e *Engine) Tools() *ToolState { return e.tools }

// History returns the undo history.
func (e *Engine) History() *History { return e.history }

// Line returns the in-progress line gesture, if any.
func (e *Engine) Line() (LineGesture, bool) {
	if e.line == nil {
		return LineGesture{}, false
	}
	return *e.line, true
}

// Panning reports whether a middle-button pan is in progress.
func (e *Engine) Panning() bool { return e.panning }

// PixelPerfect reports whether one-pixel strokes remove staircase corners.
func (e *Engine) PixelPerfect() bool { return e.opts.pixelPerfect }

// SetPixelPerfect toggles staircase removal for one-pixel strokes.
func (e *Engine) SetPixelPerfect(on bool) { e.opts.pixelPerfect = on }

// SetViewport records the host drawing area size.
func (e *Engine) SetViewport(w, h int) {
	e.opts.viewW, e.opts.viewH = w, h
}

// install makes s the document surface and resets everything scoped to
// the previous document.
func (e *Engine) install(s *Surface) {
	e.surface = s
	e.view.Reset()
	if e.opts.viewW > 0 && e.opts.viewH > 0 {
		e.view.Center(e.opts.viewW, e.opts.viewH, s.Width(), s.Height())
	}
	e.history.Reset()
	e.line = nil
	e.pressed = false
	e.panning = false
	e.resetStroke()
}

// NewDocument replaces the document with a blank one. Invalid sizes are
// rejected without any state change.
func (e *Engine) NewDocument(width, height int) error {
	s, err := NewSurface(width, height, e.opts.background)
	if err != nil {
		Logger().Warn("paint: rejected new document", "width", width, "height", height, "err", err)
		return err
	}
	e.install(s)
	Logger().Info("paint: new document", "width", width, "height", height)
	return nil
}

// ResizeCanvas changes the surface size, keeping the overlapping content.
// Resizing is not an undoable edit.
func (e *Engine) ResizeCanvas(width, height int) error {
	if err := e.surface.Resize(width, height); err != nil {
		return err
	}
	e.resetStroke()
	e.line = nil
	Logger().Info("paint: resized canvas", "width", width, "height", height)
	return nil
}

// SelectTool switches tools, abandoning any line or stroke in progress.
func (e *Engine) SelectTool(t Tool) {
	e.tools.Select(t)
	e.abandonGesture()
	Logger().Debug("paint: tool selected", "tool", t)
}

// BeginOverride temporarily switches to t, as while a modifier key is
// held. Repeated calls while the override is pending are ignored.
func (e *Engine) BeginOverride(t Tool) {
	if e.tools.BeginOverride(t) {
		e.abandonGesture()
		Logger().Debug("paint: override begin", "tool", t)
	}
}

// EndOverride restores the tool active before BeginOverride.
func (e *Engine) EndOverride() {
	if e.tools.EndOverride() {
		e.abandonGesture()
		Logger().Debug("paint: override end", "tool", e.tools.Active())
	}
}

// SetBrushColor sets the brush color, as done by the color wheel.
func (e *Engine) SetBrushColor(c Color) { e.tools.SetColor(c) }

// SetBrushSize sets the brush diameter.
func (e *Engine) SetBrushSize(n int) { e.tools.SetSize(n) }

func (e *Engine) abandonGesture() {
	e.line = nil
	e.pressed = false
	e.resetStroke()
}

func (e *Engine) resetStroke() {
	e.stroke = strokeCursor{}
}

func (e *Engine) canvasCell(p Point) Cell {
	x, y := e.view.ScreenToCanvas(p.X, p.Y)
	return Cell{x, y}
}

// PointerDown starts a gesture. The middle button pans; any other button
// performs the active tool's press action.
func (e *Engine) PointerDown(p Point, b Button) {
	if b == ButtonMiddle {
		e.panning = true
		e.panAnchor = p
		return
	}
	if e.panning {
		return
	}
	c := e.canvasCell(p)

	switch e.tools.Active() {
	case ToolBrush, ToolEraser:
		e.history.Record(e.surface)
		e.pressed = true
		e.stroke = strokeCursor{prev: c, last: c, hasPrev: true, hasLast: true}
	case ToolBucket:
		if e.surface.InBounds(c.X, c.Y) && e.surface.Pixel(c.X, c.Y) != e.tools.Color() {
			e.history.Record(e.surface)
			n := e.surface.FloodFill(c.X, c.Y, e.tools.Color())
			Logger().Debug("paint: flood fill", "x", c.X, "y", c.Y, "pixels", n)
		}
	case ToolColorPicker:
		if e.surface.InBounds(c.X, c.Y) {
			if px := e.surface.Pixel(c.X, c.Y); px != e.surface.Background() {
				e.tools.SetColor(px)
				Logger().Debug("paint: picked color", "color", px)
			}
		}
	case ToolLine:
		e.history.Record(e.surface)
		e.pressed = true
		e.line = &LineGesture{Start: c, Current: c}
	}
}

// PointerMove continues a pan or the active tool's drag.
func (e *Engine) PointerMove(p Point) {
	if e.panning {
		e.view.Pan(p.X-e.panAnchor.X, p.Y-e.panAnchor.Y)
		e.panAnchor = p
		return
	}
	if !e.pressed {
		return
	}
	c := e.canvasCell(p)

	switch e.tools.Active() {
	case ToolBrush, ToolEraser:
		if !e.stroke.hasPrev {
			// The cursor was invalidated by a zoom; resume from here.
			e.stroke = strokeCursor{prev: c, last: c, hasPrev: true, hasLast: true}
			return
		}
		e.stroke.last, e.stroke.hasLast = c, true
		if abs(c.X-e.stroke.prev.X) > 1 || abs(c.Y-e.stroke.prev.Y) > 1 {
			e.drawStroke(e.stroke.prev, c)
			e.stroke.prev = c
		}
	case ToolLine:
		if e.line != nil {
			e.line.Current = c
		}
	case ToolBucket, ToolColorPicker:
	}
}

// PointerUp ends a pan or the active tool's gesture.
func (e *Engine) PointerUp(p Point, b Button) {
	if b == ButtonMiddle {
		e.panning = false
		return
	}
	if !e.pressed {
		return
	}
	e.pressed = false
	c := e.canvasCell(p)

	switch e.tools.Active() {
	case ToolBrush, ToolEraser:
		if e.stroke.hasPrev {
			e.stroke.last, e.stroke.hasLast = c, true
			e.Tick()
		}
		e.resetStroke()
	case ToolLine:
		if e.line == nil {
			return
		}
		e.line.Current = c
		end := e.line.Snapped(e.opts.lineSnap)
		e.drawLine(e.line.Start, end)
		Logger().Debug("paint: line committed", "from", e.line.Start, "to", end)
		e.line = nil
	case ToolBucket, ToolColorPicker:
	}
}

// Tick commits the segment between the last confirmed stroke point and
// the most recent raw pointer position, closing gaps left by pointer
// events that moved less than the drawing threshold. The raw position
// becomes the new confirmed point, so later segments continue from it and
// no provisional pixels are left behind. Repeated ticks with no pointer
// input in between repaint the same cell. It reports whether a stroke is
// in progress.
func (e *Engine) Tick() bool {
	if !e.stroke.hasPrev || !e.stroke.hasLast {
		return false
	}
	e.drawStroke(e.stroke.prev, e.stroke.last)
	e.stroke.prev = e.stroke.last
	return true
}

// Wheel zooms at the pointer: negative deltas zoom in, positive zoom out.
func (e *Engine) Wheel(delta float64, p Point) {
	switch {
	case delta < 0:
		e.zoomAt(e.opts.zoomIn, p.X, p.Y)
	case delta > 0:
		e.zoomAt(e.opts.zoomOut, p.X, p.Y)
	}
}

// ZoomIn zooms in around the viewport center.
func (e *Engine) ZoomIn() {
	e.zoomAt(e.opts.zoomIn, float64(e.opts.viewW)/2, float64(e.opts.viewH)/2)
}

// ZoomOut zooms out around the viewport center.
func (e *Engine) ZoomOut() {
	e.zoomAt(e.opts.zoomOut, float64(e.opts.viewW)/2, float64(e.opts.viewH)/2)
}

// ResetZoom restores zoom 1 with no pan.
func (e *Engine) ResetZoom() {
	e.view.Reset()
	e.resetStroke()
}

func (e *Engine) zoomAt(factor, ax, ay float64) {
	e.view.ZoomAt(factor, ax, ay)
	// The screen-to-canvas mapping changed under the stroke.
	e.resetStroke()
}

// Undo reverts the most recent edit. It reports false when there is
// nothing to undo.
func (e *Engine) Undo() bool {
	e.abandonGesture()
	return e.history.Undo(e.surface)
}

// Redo re-applies the most recently undone edit.
func (e *Engine) Redo() bool {
	e.abandonGesture()
	return e.history.Redo(e.surface)
}

// Clear fills the canvas with the background color as an undoable edit.
func (e *Engine) Clear() {
	e.abandonGesture()
	e.history.Record(e.surface)
	e.surface.Clear()
}

// TakeDirty returns the canvas rectangles changed since the previous call.
func (e *Engine) TakeDirty() []image.Rectangle {
	return e.surface.TakeDirty()
}

func (e *Engine) strokeColor() Color {
	if e.tools.Active() == ToolEraser {
		return e.surface.Background()
	}
	return e.tools.Color()
}

// drawStroke rasterizes one freehand segment and advances the stroke's
// incoming step.
func (e *Engine) drawStroke(from, to Cell) {
	c := e.strokeColor()
	switch size := e.tools.Size(); {
	case size > 1:
		e.surface.ThickSegment(from.X, from.Y, to.X, to.Y, size, c)
	case e.opts.pixelPerfect:
		e.stroke.in = e.surface.PixelPerfectSegment(from.X, from.Y, to.X, to.Y, c, e.stroke.in)
	default:
		e.surface.Segment(from.X, from.Y, to.X, to.Y, c)
	}
}

func (e *Engine) drawLine(from, to Cell) {
	c := e.tools.Color()
	switch size := e.tools.Size(); {
	case size > 1:
		e.surface.ThickSegment(from.X, from.Y, to.X, to.Y, size, c)
	case e.opts.pixelPerfect:
		e.surface.PixelPerfectSegment(from.X, from.Y, to.X, to.Y, c, Step{})
	default:
		e.surface.Segment(from.X, from.Y, to.X, to.Y, c)
	}
}
