package paint

import "fmt"

// Tool identifies which edit a primary-button gesture performs.
type Tool uint8

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolBucket
	ToolLine
	ToolColorPicker
)

// toolNames maps Tool values to their string representation.
var toolNames = [...]string{
	ToolBrush:       "brush",
	ToolEraser:      "eraser",
	ToolBucket:      "bucket",
	ToolLine:        "line",
	ToolColorPicker: "color-picker",
}

// String returns the tool name.
func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", t)
}

// ParseTool converts a name produced by Tool.String back to a Tool.
func ParseTool(name string) (Tool, error) {
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("paint: unknown tool %q", name)
}

// Brush size limits.
const (
	MinBrushSize = 1
	MaxBrushSize = 50
)

// ToolState holds the active tool, brush settings and the pending
// override.
//
// The override is one level deep: a second BeginOverride while one is
// pending is ignored rather than stacked, which makes key-repeat of a held
// modifier harmless.
type ToolState struct {
	active Tool
	saved  *Tool // tool to restore on EndOverride; nil when no override
	color  Color
	size   int
}

// NewToolState returns a brush with the given color and size.
func NewToolState(c Color, size int) *ToolState {
	return &ToolState{active: ToolBrush, color: c, size: clampBrushSize(size)}
}

// Active returns the tool that gestures currently drive.
func (ts *ToolState) Active() Tool { return ts.active }

// Overriding reports whether a transient override is pending.
func (ts *ToolState) Overriding() bool { return ts.saved != nil }

// Color returns the brush color.
func (ts *ToolState) Color() Color { return ts.color }

// Size returns the brush diameter in pixels.
func (ts *ToolState) Size() int { return ts.size }

// SetColor sets the brush color.
func (ts *ToolState) SetColor(c Color) { ts.color = c }

// SetSize sets the brush diameter, clamped to [MinBrushSize, MaxBrushSize].
func (ts *ToolState) SetSize(n int) { ts.size = clampBrushSize(n) }

// Select makes t the active tool. A pending override is left pending, so
// releasing the modifier still restores the tool saved when it began.
func (ts *ToolState) Select(t Tool) {
	ts.active = t
}

// BeginOverride switches to t until EndOverride, remembering the current
// tool. It reports false, and does nothing, if an override is already
// pending.
func (ts *ToolState) BeginOverride(t Tool) bool {
	if ts.saved != nil {
		return false
	}
	prev := ts.active
	ts.saved = &prev
	ts.active = t
	return true
}

// EndOverride restores the tool saved by BeginOverride. It reports false
// when no override is pending.
func (ts *ToolState) EndOverride() bool {
	if ts.saved == nil {
		return false
	}
	ts.active = *ts.saved
	ts.saved = nil
	return true
}

func clampBrushSize(n int) int {
	return max(MinBrushSize, min(MaxBrushSize, n))
}
