package paint

import (
	"errors"
	"image"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, w, h int, opts ...EngineOption) *Engine {
	t.Helper()
	e, err := NewEngine(w, h, opts...)
	require.NoError(t, err)
	return e
}

// stroke drags the primary button through pts, calling Tick after every
// move when tick is set.
func stroke(e *Engine, pts []Cell, tick bool) {
	at := func(c Cell) Point { return Pt(float64(c.X), float64(c.Y)) }
	e.PointerDown(at(pts[0]), ButtonPrimary)
	for _, p := range pts[1:] {
		e.PointerMove(at(p))
		if tick {
			e.Tick()
		}
	}
	e.PointerUp(at(pts[len(pts)-1]), ButtonPrimary)
}

func coarseStaircase() []Cell {
	pts := []Cell{{10, 10}}
	x, y := 10, 10
	for k := range 12 {
		if k%2 == 0 {
			x += 2
		} else {
			y += 2
		}
		pts = append(pts, Cell{x, y})
	}
	return pts
}

func parabola() []Cell {
	var pts []Cell
	for i := 0; i <= 80; i += 2 {
		pts = append(pts, Cell{10 + i, 10 + i*i/40})
	}
	return pts
}

func unitStaircase() []Cell {
	var pts []Cell
	x, y := 20, 20
	for k := range 40 {
		pts = append(pts, Cell{x, y})
		if k%2 == 0 {
			x++
		} else {
			y++
		}
	}
	return pts
}

func TestEngine_VerticalStroke(t *testing.T) {
	e := newTestEngine(t, 512, 512)
	pts := []Cell{{10, 10}}
	for y := 11; y <= 50; y++ {
		pts = append(pts, Cell{10, y})
	}
	stroke(e, pts, false)

	s := e.Surface()
	assert.Equal(t, 41, countColor(s, Black))
	for y := 10; y <= 50; y++ {
		assert.Equal(t, Black, s.Pixel(10, y), "y=%d", y)
	}
	_, ok := findBlock(s, Black)
	assert.False(t, ok, "2x2 block in a one-pixel stroke")

	require.True(t, e.Undo())
	assert.Equal(t, 0, countColor(s, Black))
}

func TestEngine_StrokesHaveNoBlocks(t *testing.T) {
	paths := map[string][]Cell{
		"coarse staircase": coarseStaircase(),
		"parabola":         parabola(),
		"unit staircase":   unitStaircase(),
	}
	for name, pts := range paths {
		for _, tick := range []bool{false, true} {
			e := newTestEngine(t, 200, 200)
			stroke(e, pts, tick)
			if c, ok := findBlock(e.Surface(), Black); ok {
				t.Errorf("%s (tick=%v): 2x2 block at %v", name, tick, c)
			}
		}
	}
}

func TestEngine_TickedStrokesHaveNoBlocks(t *testing.T) {
	// A tick after a one-pixel move, then a turn.
	e := newTestEngine(t, 32, 32)
	stroke(e, []Cell{{5, 5}, {5, 6}, {6, 6}, {8, 6}}, true)
	if c, ok := findBlock(e.Surface(), Black); ok {
		t.Fatalf("2x2 block at %v", c)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for _, dir := range []Cell{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		for i := range 500 {
			pts := []Cell{{100, 100}}
			for range 2 + rng.IntN(29) {
				p := pts[len(pts)-1]
				pts = append(pts, Cell{p.X + dir.X*rng.IntN(3), p.Y + dir.Y*rng.IntN(3)})
			}
			e := newTestEngine(t, 200, 200)
			stroke(e, pts, i%2 == 0)
			if c, ok := findBlock(e.Surface(), Black); ok {
				t.Fatalf("dir %v stroke %d %v: 2x2 block at %v", dir, i, pts, c)
			}
		}
	}
}

func TestEngine_PixelPerfectRemovesCorners(t *testing.T) {
	for name, pts := range map[string][]Cell{
		"coarse staircase": coarseStaircase(),
		"parabola":         parabola(),
	} {
		e := newTestEngine(t, 200, 200)
		stroke(e, pts, false)
		if c, ok := findCorner(e.Surface(), Black); ok {
			t.Errorf("%s: L corner at %v", name, c)
		}
	}

	plain := newTestEngine(t, 200, 200, WithPixelPerfect(false))
	stroke(plain, coarseStaircase(), false)
	_, ok := findCorner(plain.Surface(), Black)
	assert.True(t, ok, "plain strokes keep their corners")
}

func TestEngine_TickIsIdempotent(t *testing.T) {
	e := newTestEngine(t, 64, 64)
	assert.False(t, e.Tick(), "Tick without a stroke")

	e.PointerDown(Pt(10, 10), ButtonPrimary)
	e.PointerMove(Pt(13, 11))
	e.PointerMove(Pt(14, 12))
	e.PointerMove(Pt(14, 13))

	require.True(t, e.Tick())
	before := slices.Clone(e.Surface().Pix())
	for range 5 {
		e.Tick()
	}
	assert.Equal(t, before, e.Surface().Pix())

	e.PointerUp(Pt(14, 13), ButtonPrimary)
	assert.False(t, e.Tick(), "Tick after release")
}

func TestEngine_TickClosesGap(t *testing.T) {
	e := newTestEngine(t, 32, 32)
	e.PointerDown(Pt(5, 5), ButtonPrimary)
	e.PointerMove(Pt(6, 5))
	assert.Equal(t, White, e.Surface().Pixel(6, 5), "moves within one pixel are not drawn")
	e.Tick()
	assert.Equal(t, Black, e.Surface().Pixel(5, 5))
	assert.Equal(t, Black, e.Surface().Pixel(6, 5))
}

func TestEngine_ClickPaintsDot(t *testing.T) {
	e := newTestEngine(t, 16, 16)
	e.PointerDown(Pt(7, 8), ButtonPrimary)
	e.PointerUp(Pt(7, 8), ButtonPrimary)
	assert.Equal(t, 1, countColor(e.Surface(), Black))
	assert.Equal(t, Black, e.Surface().Pixel(7, 8))
}

func TestEngine_ThickBrush(t *testing.T) {
	e := newTestEngine(t, 64, 64, WithBrushSize(3), WithBrushColor(Blue))
	stroke(e, []Cell{{10, 10}, {13, 10}, {16, 10}, {20, 10}}, false)
	assert.Equal(t, 39, countColor(e.Surface(), Blue))
}

func TestEngine_Eraser(t *testing.T) {
	e := newTestEngine(t, 16, 16)
	e.Surface().FillRect(0, 0, 16, 16, Red)
	e.SelectTool(ToolEraser)
	stroke(e, []Cell{{2, 4}, {5, 4}, {8, 4}}, false)

	for x := 2; x <= 8; x++ {
		assert.Equal(t, White, e.Surface().Pixel(x, 4), "x=%d", x)
	}
	assert.Equal(t, Red, e.Surface().Pixel(2, 5))
	assert.True(t, e.History().CanUndo())
}

func TestEngine_BucketFill(t *testing.T) {
	e := newTestEngine(t, 10, 10, WithBrushColor(Red))
	e.SelectTool(ToolBucket)
	e.PointerDown(Pt(5, 5), ButtonPrimary)
	e.PointerUp(Pt(5, 5), ButtonPrimary)

	assert.Equal(t, 100, countColor(e.Surface(), Red))
	undo, _ := e.History().Depth()
	assert.Equal(t, 1, undo)

	// Filling again changes nothing and records nothing.
	e.PointerDown(Pt(5, 5), ButtonPrimary)
	undo, _ = e.History().Depth()
	assert.Equal(t, 1, undo)

	// Off-canvas presses are ignored.
	e.PointerDown(Pt(-3, 40), ButtonPrimary)
	undo, _ = e.History().Depth()
	assert.Equal(t, 1, undo)

	require.True(t, e.Undo())
	assert.Equal(t, 100, countColor(e.Surface(), White))
}

func TestEngine_ColorPicker(t *testing.T) {
	e := newTestEngine(t, 10, 10)
	purple := RGB(128, 0, 128)
	e.Surface().SetPixel(3, 3, purple)
	e.SelectTool(ToolColorPicker)

	e.PointerDown(Pt(3, 3), ButtonPrimary)
	assert.Equal(t, purple, e.Tools().Color())

	// The background color is never picked.
	e.PointerDown(Pt(6, 6), ButtonPrimary)
	assert.Equal(t, purple, e.Tools().Color())

	assert.False(t, e.History().CanUndo(), "picking is not an edit")
}

func TestEngine_LineSnapsOnCommit(t *testing.T) {
	e := newTestEngine(t, 200, 200)
	e.SelectTool(ToolLine)
	e.PointerDown(Pt(0, 0), ButtonPrimary)
	e.PointerMove(Pt(60, 20))
	e.PointerMove(Pt(100, 57))

	g, ok := e.Line()
	require.True(t, ok)
	assert.Equal(t, Cell{100, 57}, g.Current)
	assert.Equal(t, 0, countColor(e.Surface(), Black), "nothing is drawn before release")

	e.PointerUp(Pt(100, 57), ButtonPrimary)
	_, ok = e.Line()
	assert.False(t, ok)

	s := e.Surface()
	assert.Equal(t, Black, s.Pixel(0, 0))
	assert.Equal(t, Black, s.Pixel(100, 58))
	assert.Equal(t, 101, countColor(s, Black))
	undo, _ := e.History().Depth()
	assert.Equal(t, 1, undo)
}

func TestEngine_SelectToolAbandonsLine(t *testing.T) {
	e := newTestEngine(t, 50, 50)
	e.SelectTool(ToolLine)
	e.PointerDown(Pt(1, 1), ButtonPrimary)
	e.PointerMove(Pt(30, 30))
	e.SelectTool(ToolBrush)
	_, ok := e.Line()
	assert.False(t, ok)

	e.PointerUp(Pt(30, 30), ButtonPrimary)
	assert.Equal(t, 0, countColor(e.Surface(), Black))
}

func TestEngine_HoldOverride(t *testing.T) {
	e := newTestEngine(t, 10, 10)
	e.Surface().SetPixel(2, 2, Green)
	e.SelectTool(ToolBucket)

	e.BeginOverride(ToolColorPicker)
	e.BeginOverride(ToolColorPicker)
	assert.Equal(t, ToolColorPicker, e.Tools().Active())
	e.PointerDown(Pt(2, 2), ButtonPrimary)
	e.PointerUp(Pt(2, 2), ButtonPrimary)
	assert.Equal(t, Green, e.Tools().Color())

	e.EndOverride()
	assert.Equal(t, ToolBucket, e.Tools().Active())
	e.EndOverride()
	assert.Equal(t, ToolBucket, e.Tools().Active())
}

func TestEngine_MiddleButtonPans(t *testing.T) {
	e := newTestEngine(t, 64, 64)
	e.PointerDown(Pt(10, 10), ButtonMiddle)
	assert.True(t, e.Panning())
	e.PointerMove(Pt(20, 15))
	e.PointerMove(Pt(30, 25))
	e.PointerUp(Pt(30, 25), ButtonMiddle)
	assert.False(t, e.Panning())

	x, y := e.View().PanOffset()
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 15.0, y)
	assert.Equal(t, 0, countColor(e.Surface(), Black))
	assert.False(t, e.History().CanUndo())

	// Tools now see the panned mapping.
	e.PointerDown(Pt(25, 20), ButtonPrimary)
	e.PointerUp(Pt(25, 20), ButtonPrimary)
	assert.Equal(t, Black, e.Surface().Pixel(5, 5))
}

func TestEngine_Wheel(t *testing.T) {
	e := newTestEngine(t, 64, 64)
	e.Wheel(0, Pt(10, 10))
	assert.Equal(t, 1.0, e.View().Zoom())

	e.Wheel(-1, Pt(32, 32))
	assert.InDelta(t, 1.2, e.View().Zoom(), 1e-12)
	sx, sy := e.View().CanvasToScreen(32, 32)
	assert.InDelta(t, 32, sx, 1e-9)
	assert.InDelta(t, 32, sy, 1e-9)

	e.Wheel(3, Pt(32, 32))
	assert.InDelta(t, 0.96, e.View().Zoom(), 1e-12)
}

func TestEngine_ZoomResetsStroke(t *testing.T) {
	e := newTestEngine(t, 64, 64)
	e.PointerDown(Pt(10, 10), ButtonPrimary)
	e.PointerMove(Pt(11, 10))
	e.Wheel(-1, Pt(0, 0))
	assert.False(t, e.Tick(), "zoom must invalidate the stroke cursor")

	// The stroke resumes from the next move without drawing a jump.
	e.PointerMove(Pt(36, 36))
	e.PointerUp(Pt(36, 36), ButtonPrimary)
	assert.Equal(t, Black, e.Surface().Pixel(30, 30))
	assert.Equal(t, White, e.Surface().Pixel(20, 20))
}

func TestEngine_ZoomCommandsAnchorAtViewportCenter(t *testing.T) {
	e := newTestEngine(t, 100, 100, WithViewport(300, 200))
	// The canvas is centered, so its middle sits at the viewport center.
	x, y := e.View().CanvasToScreen(50, 50)
	require.Equal(t, 150.0, x)
	require.Equal(t, 100.0, y)

	e.ZoomIn()
	e.ZoomIn()
	e.ZoomOut()
	assert.InDelta(t, 1.2*1.2*0.8, e.View().Zoom(), 1e-12)
	x, y = e.View().CanvasToScreen(50, 50)
	assert.InDelta(t, 150, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)

	e.ResetZoom()
	assert.Equal(t, 1.0, e.View().Zoom())
}

func TestEngine_UndoRedo(t *testing.T) {
	e := newTestEngine(t, 32, 32)
	b0 := slices.Clone(e.Surface().Pix())
	stroke(e, []Cell{{1, 1}, {10, 1}}, false)
	b1 := slices.Clone(e.Surface().Pix())
	e.SelectTool(ToolBucket)
	e.SetBrushColor(Red)
	e.PointerDown(Pt(20, 20), ButtonPrimary)
	b2 := slices.Clone(e.Surface().Pix())

	require.True(t, e.Undo())
	assert.Equal(t, b1, e.Surface().Pix())
	require.True(t, e.Undo())
	assert.Equal(t, b0, e.Surface().Pix())
	assert.False(t, e.Undo())

	require.True(t, e.Redo())
	require.True(t, e.Redo())
	assert.Equal(t, b2, e.Surface().Pix())
	assert.False(t, e.Redo())

	e.Undo()
	e.Clear()
	assert.False(t, e.History().CanRedo(), "a new edit clears redo")
	require.True(t, e.Undo())
	assert.Equal(t, b1, e.Surface().Pix())
}

func TestEngine_NewDocument(t *testing.T) {
	e := newTestEngine(t, 32, 32, WithViewport(100, 80))
	stroke(e, []Cell{{1, 1}, {9, 9}}, false)
	e.Wheel(-1, Pt(5, 5))

	err := e.NewDocument(0, 10)
	require.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Equal(t, 32, e.Surface().Width())
	assert.True(t, e.History().CanUndo(), "rejected request changes nothing")

	require.NoError(t, e.NewDocument(20, 40))
	assert.Equal(t, 20, e.Surface().Width())
	assert.Equal(t, 40, e.Surface().Height())
	assert.Equal(t, 800, countColor(e.Surface(), White))
	assert.False(t, e.History().CanUndo())
	assert.Equal(t, 1.0, e.View().Zoom())
	x, y := e.View().PanOffset()
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 20.0, y)
}

func TestEngine_ResizeCanvas(t *testing.T) {
	e := newTestEngine(t, 10, 10)
	e.Surface().SetPixel(2, 3, Red)
	e.Surface().SetPixel(9, 9, Red)
	require.NoError(t, e.ResizeCanvas(5, 20))
	assert.Equal(t, Red, e.Surface().Pixel(2, 3))
	assert.Equal(t, 1, countColor(e.Surface(), Red))
	assert.Equal(t, White, e.Surface().Pixel(4, 19))

	require.ErrorIs(t, e.ResizeCanvas(5, -1), ErrInvalidDimensions)
	assert.Equal(t, 5, e.Surface().Width())
}

func TestEngine_TakeDirty(t *testing.T) {
	e := newTestEngine(t, 128, 128)
	e.TakeDirty()
	assert.Empty(t, e.TakeDirty())

	stroke(e, []Cell{{70, 5}, {72, 5}}, false)
	assert.Equal(t, []image.Rectangle{image.Rect(64, 0, 128, 64)}, e.TakeDirty())
}

type memStore struct {
	files map[string]image.Image
	fail  error
}

func (m *memStore) Save(path string, img image.Image) error {
	if m.fail != nil {
		return m.fail
	}
	m.files[path] = img
	return nil
}

func (m *memStore) Open(path string) (image.Image, error) {
	img, ok := m.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

func TestEngine_SaveOpen(t *testing.T) {
	store := &memStore{files: map[string]image.Image{}}
	e := newTestEngine(t, 8, 6, WithStore(store))
	e.Surface().SetPixel(1, 2, Red)
	require.NoError(t, e.Save("a.png"))

	other := newTestEngine(t, 3, 3, WithStore(store))
	stroke(other, []Cell{{0, 0}, {2, 2}}, false)

	err := other.Open("missing.png")
	require.Error(t, err)
	assert.Equal(t, 3, other.Surface().Width(), "failed open leaves the document")
	assert.True(t, other.History().CanUndo())

	require.NoError(t, other.Open("a.png"))
	assert.Equal(t, 8, other.Surface().Width())
	assert.Equal(t, 6, other.Surface().Height())
	assert.Equal(t, Red, other.Surface().Pixel(1, 2))
	assert.False(t, other.History().CanUndo())

	store.fail = errors.New("disk full")
	err = e.Save("b.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.fail)
}

func TestEngine_NoStore(t *testing.T) {
	e := newTestEngine(t, 4, 4)
	assert.ErrorIs(t, e.Save("x.png"), ErrNoStore)
	assert.ErrorIs(t, e.Open("x.png"), ErrNoStore)
}
