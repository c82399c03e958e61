// Package paint provides a single-layer raster paint engine for Go.
//
// # Overview
//
// paint is the document core of a pixel editor: an ARGB pixel buffer edited
// with freehand, line and fill tools, multi-step undo/redo, and a zoom/pan
// view that decouples screen coordinates from canvas coordinates. Windows,
// menus and dialogs belong to the host; the host forwards input events and
// presents what RenderInto draws.
//
// # Quick Start
//
//	import "github.com/gogpu/paint"
//
//	e, err := paint.NewEngine(512, 512, paint.WithViewport(800, 600))
//	if err != nil {
//	    return err
//	}
//
//	// A freehand stroke with the default one-pixel black brush.
//	e.PointerDown(paint.Pt(150, 60), paint.ButtonPrimary)
//	e.PointerMove(paint.Pt(150, 100))
//	e.PointerUp(paint.Pt(150, 100), paint.ButtonPrimary)
//
//	frame := image.NewNRGBA(image.Rect(0, 0, 800, 600))
//	e.RenderInto(frame)
//
// # Tools
//
// Primary-button gestures drive the active tool: Brush and Eraser draw
// freehand strokes, Bucket flood-fills, Line drags a straight line that
// snaps to 15° increments, and ColorPicker reads the brush color off the
// canvas. A tool can be overridden while a key is held (BeginOverride and
// EndOverride); the middle button always pans and the wheel zooms.
//
// # Pixel-Perfect Strokes
//
// One-pixel strokes are rasterized so they never contain a 2×2 block: the
// corner cell of every L-shaped turn is erased. Pointer events arrive at
// irregular intervals, so a stroke is only extended once the pointer is
// more than one pixel from its last point, and Tick commits the remaining
// gap. Call Tick every DefaultTickInterval, or let a Loop do it.
//
// # Coordinate System
//
// Canvas cells are integers with (0,0) at the top-left, X right, Y down.
// Screen positions are float64 and map to cells by truncation after
// removing the pan offset and dividing by the zoom.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Loop runs it on a single
// goroutine and accepts work from any other.
package paint

// Version is the current version of the library.
const Version = "0.1.0"
