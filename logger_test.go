package paint

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// captureLogs routes paint logging into a buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs(nil).(nopHandler); !ok {
		t.Error("WithAttrs() left the nop handler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup() left the nop handler")
	}
}

func TestSetLogger_NilSilences(t *testing.T) {
	buf := captureLogs(t)
	Logger().Info("visible")
	SetLogger(nil)
	Logger().Error("hidden")

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left an enabled logger")
	}
	if out := buf.String(); !strings.Contains(out, "visible") || strings.Contains(out, "hidden") {
		t.Errorf("unexpected log output:\n%s", out)
	}
}

func TestEngineLogsDocumentLifecycle(t *testing.T) {
	buf := captureLogs(t)

	e, err := NewEngine(8, 8)
	if err != nil {
		t.Fatalf("NewEngine() = %v", err)
	}
	if err := e.NewDocument(0, 4); err == nil {
		t.Fatal("NewDocument(0, 4) succeeded, want error")
	}
	if err := e.NewDocument(4, 4); err != nil {
		t.Fatalf("NewDocument(4, 4) = %v", err)
	}
	e.SelectTool(ToolLine)
	e.PointerDown(Pt(0, 0), ButtonPrimary)
	e.PointerUp(Pt(3, 0), ButtonPrimary)
	e.SelectTool(ToolBucket)
	e.SetBrushColor(Red)
	e.PointerDown(Pt(2, 2), ButtonPrimary)
	e.PointerUp(Pt(2, 2), ButtonPrimary)

	out := buf.String()
	for _, want := range []string{
		"level=WARN msg=\"paint: rejected new document\"",
		"level=INFO msg=\"paint: new document\"",
		"tool=line",
		"line committed",
		"msg=\"paint: flood fill\" x=2 y=2 pixels=12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLogger_WhileLoopLogs(t *testing.T) {
	captureLogs(t)
	e := newTestEngine(t, 16, 16)
	l, cancel, errc := startLoop(t, e, time.Millisecond)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(nil)
			} else {
				SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
			}
			_ = l.Do(context.Background(), func(e *Engine) { e.SelectTool(ToolEraser) })
		}()
	}
	wg.Wait()
	cancel()
	<-errc
}
