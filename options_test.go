package paint

import (
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	e, err := NewEngine(8, 8)
	if err != nil {
		t.Fatalf("NewEngine() = %v", err)
	}
	if e.Surface().Background() != White {
		t.Errorf("background = %v, want white", e.Surface().Background())
	}
	if e.Tools().Color() != Black || e.Tools().Size() != 1 {
		t.Errorf("brush = %v size %d, want black size 1", e.Tools().Color(), e.Tools().Size())
	}
	if e.Tools().Active() != ToolBrush {
		t.Errorf("tool = %v, want brush", e.Tools().Active())
	}
	if !e.PixelPerfect() {
		t.Error("pixel-perfect should be on by default")
	}
	if e.View().Zoom() != 1 {
		t.Errorf("zoom = %v, want 1", e.View().Zoom())
	}
}

func TestNewEngineMultipleOptions(t *testing.T) {
	e, err := NewEngine(16, 16,
		WithBackground(Black),
		WithBrushColor(Red),
		WithBrushSize(80),
		WithPixelPerfect(false),
		WithHistoryLimit(2),
		WithLineSnap(45),
	)
	if err != nil {
		t.Fatalf("NewEngine() = %v", err)
	}
	if e.Surface().Pixel(0, 0) != Black {
		t.Errorf("canvas = %v, want black paper", e.Surface().Pixel(0, 0))
	}
	if e.Tools().Color() != Red || e.Tools().Size() != MaxBrushSize {
		t.Errorf("brush = %v size %d", e.Tools().Color(), e.Tools().Size())
	}
	if e.PixelPerfect() {
		t.Error("WithPixelPerfect(false) ignored")
	}

	for range 4 {
		e.Clear()
	}
	if u, _ := e.History().Depth(); u != 2 {
		t.Errorf("undo depth = %d, want 2", u)
	}

	e.SelectTool(ToolLine)
	e.PointerDown(Pt(0, 0), ButtonPrimary)
	e.PointerUp(Pt(10, 4), ButtonPrimary)
	if e.Surface().Pixel(0, 0) != Red {
		t.Error("line start not painted")
	}
}

func TestWithZoomSteps(t *testing.T) {
	tests := []struct {
		name            string
		in, out         float64
		wantIn, wantOut float64
	}{
		{"custom", 2, 0.5, 2, 0.5},
		{"invalid in", 0.9, 0.5, 1.2, 0.5},
		{"invalid out", 1.5, 1.5, 1.5, 0.8},
		{"both invalid", -1, 0, 1.2, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			WithZoomSteps(tt.in, tt.out)(&o)
			if o.zoomIn != tt.wantIn || o.zoomOut != tt.wantOut {
				t.Errorf("zoom steps = (%v, %v), want (%v, %v)", o.zoomIn, o.zoomOut, tt.wantIn, tt.wantOut)
			}
		})
	}
}

func TestNewEngine_InvalidSize(t *testing.T) {
	if _, err := NewEngine(0, 10); err == nil {
		t.Error("NewEngine(0, 10) succeeded")
	}
}
