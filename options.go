package paint

// EngineOption configures an Engine during creation.
//
// Example:
//
//	e, err := paint.NewEngine(512, 512,
//	    paint.WithBrushColor(paint.Red),
//	    paint.WithBrushSize(3),
//	)
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	background   Color
	brushColor   Color
	brushSize    int
	pixelPerfect bool
	zoomIn       float64
	zoomOut      float64
	lineSnap     float64
	previewSnap  float64
	historyLimit int
	viewW, viewH int
	backdrop     Color
	previewColor Color
	store        Store
	keymap       Keymap
}

// defaultOptions returns the engine defaults: white paper,
// a one-pixel black pixel-perfect brush and 1.2×/0.8× zoom steps.
func defaultOptions() engineOptions {
	return engineOptions{
		background:   White,
		brushColor:   Black,
		brushSize:    1,
		pixelPerfect: true,
		zoomIn:       1.2,
		zoomOut:      0.8,
		lineSnap:     DefaultLineSnap,
		previewSnap:  DefaultPreviewSnap,
		backdrop:     RGB(35, 35, 35),
		previewColor: Black,
		keymap:       DefaultKeymap(),
	}
}

// WithBackground sets the paper color used by clear, resize and erasing.
func WithBackground(c Color) EngineOption {
	return func(o *engineOptions) {
		o.background = c
	}
}

// WithBrushColor sets the initial brush color.
func WithBrushColor(c Color) EngineOption {
	return func(o *engineOptions) {
		o.brushColor = c
	}
}

// WithBrushSize sets the initial brush diameter.
func WithBrushSize(n int) EngineOption {
	return func(o *engineOptions) {
		o.brushSize = n
	}
}

// WithPixelPerfect toggles staircase removal for one-pixel strokes.
func WithPixelPerfect(on bool) EngineOption {
	return func(o *engineOptions) {
		o.pixelPerfect = on
	}
}

// WithZoomSteps sets the multiplicative zoom factors for zoom-in and
// zoom-out (mouse wheel and commands). in must be > 1 and out in (0, 1);
// other values are ignored.
func WithZoomSteps(in, out float64) EngineOption {
	return func(o *engineOptions) {
		if in > 1 {
			o.zoomIn = in
		}
		if out > 0 && out < 1 {
			o.zoomOut = out
		}
	}
}

// WithLineSnap sets the angle increment, in degrees, that committed lines
// snap to. Zero disables snapping.
func WithLineSnap(deg float64) EngineOption {
	return func(o *engineOptions) {
		o.lineSnap = deg
	}
}

// WithPreviewSnap sets the angle increment of the live line guide.
func WithPreviewSnap(deg float64) EngineOption {
	return func(o *engineOptions) {
		o.previewSnap = deg
	}
}

// WithHistoryLimit caps the number of undo steps. Zero means unlimited.
func WithHistoryLimit(n int) EngineOption {
	return func(o *engineOptions) {
		o.historyLimit = n
	}
}

// WithViewport tells the engine the size of the host's drawing area, used
// to center new documents and to anchor zoom commands.
func WithViewport(w, h int) EngineOption {
	return func(o *engineOptions) {
		o.viewW, o.viewH = w, h
	}
}

// WithBackdrop sets the color RenderInto paints around the canvas.
func WithBackdrop(c Color) EngineOption {
	return func(o *engineOptions) {
		o.backdrop = c
	}
}

// WithPreviewColor sets the color of the live line guide.
func WithPreviewColor(c Color) EngineOption {
	return func(o *engineOptions) {
		o.previewColor = c
	}
}

// WithKeymap replaces the default key bindings. A nil map removes all
// bindings.
func WithKeymap(k Keymap) EngineOption {
	return func(o *engineOptions) {
		if k == nil {
			k = Keymap{}
		}
		o.keymap = k
	}
}

// WithStore sets the persistence collaborator used by Save and Open.
func WithStore(s Store) EngineOption {
	return func(o *engineOptions) {
		o.store = s
	}
}
