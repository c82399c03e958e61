package paint

import (
	"fmt"
	"slices"
	"strings"
)

// Command is an argument-free editor action that a menu item or key chord
// can trigger.
type Command uint8

const (
	CmdUndo Command = iota
	CmdRedo
	CmdSelectBrush
	CmdSelectEraser
	CmdSelectBucket
	CmdSelectLine
	CmdSelectColorPicker
	CmdClearCanvas
	CmdZoomIn
	CmdZoomOut
	CmdResetZoom
	CmdTogglePixelPerfect

	// CmdHoldColorPicker switches to the color picker while its key is
	// held and restores the previous tool on release.
	CmdHoldColorPicker
)

var commandNames = [...]string{
	CmdUndo:               "undo",
	CmdRedo:               "redo",
	CmdSelectBrush:        "select-brush",
	CmdSelectEraser:       "select-eraser",
	CmdSelectBucket:       "select-bucket",
	CmdSelectLine:         "select-line",
	CmdSelectColorPicker:  "select-color-picker",
	CmdClearCanvas:        "clear-canvas",
	CmdZoomIn:             "zoom-in",
	CmdZoomOut:            "zoom-out",
	CmdResetZoom:          "reset-zoom",
	CmdTogglePixelPerfect: "toggle-pixel-perfect",
	CmdHoldColorPicker:    "hold-color-picker",
}

// String returns the command name used in config files and scripts.
func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

// ParseCommand converts a name produced by Command.String back to a
// Command.
func ParseCommand(name string) (Command, error) {
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("paint: unknown command %q", name)
}

// Keymap binds key chords such as "ctrl+z" or "alt" to commands. Chords
// are stored in the form produced by NormalizeChord.
type Keymap map[string]Command

// DefaultKeymap returns the stock key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		"ctrl+z": CmdUndo,
		"ctrl+y": CmdRedo,
		"b":      CmdSelectBrush,
		"e":      CmdSelectEraser,
		"g":      CmdSelectBucket,
		"l":      CmdSelectLine,
		"i":      CmdSelectColorPicker,
		"ctrl+e": CmdClearCanvas,
		"ctrl+=": CmdZoomIn,
		"ctrl+-": CmdZoomOut,
		"ctrl+0": CmdResetZoom,
		"p":      CmdTogglePixelPerfect,
		"alt":    CmdHoldColorPicker,
	}
}

// Bind maps chord to cmd, replacing any previous binding.
func (k Keymap) Bind(chord string, cmd Command) {
	k[NormalizeChord(chord)] = cmd
}

// Lookup returns the command bound to chord.
func (k Keymap) Lookup(chord string) (Command, bool) {
	cmd, ok := k[NormalizeChord(chord)]
	return cmd, ok
}

var modifierOrder = []string{"ctrl", "alt", "shift", "meta"}

// NormalizeChord lower-cases a chord and orders its modifiers as
// ctrl, alt, shift, meta, so "Shift+Ctrl+Z" and "ctrl+shift+z" match.
// A chord made only of modifiers, such as "alt", is kept as is.
func NormalizeChord(chord string) string {
	chord = strings.ToLower(strings.TrimSpace(chord))
	if chord == "+" {
		return chord
	}
	parts := strings.Split(chord, "+")
	// "ctrl++" names the plus key.
	if strings.HasSuffix(chord, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}
	var mods, keys []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
		case slices.Contains(modifierOrder, p):
			if !slices.Contains(mods, p) {
				mods = append(mods, p)
			}
		default:
			keys = append(keys, p)
		}
	}
	slices.SortFunc(mods, func(a, b string) int {
		return slices.Index(modifierOrder, a) - slices.Index(modifierOrder, b)
	})
	return strings.Join(append(mods, keys...), "+")
}

// Execute performs cmd. CmdHoldColorPicker begins the override; use
// KeyUp or EndOverride to end it. It reports false for an unknown
// command.
func (e *Engine) Execute(cmd Command) bool {
	switch cmd {
	case CmdUndo:
		e.Undo()
	case CmdRedo:
		e.Redo()
	case CmdSelectBrush:
		e.SelectTool(ToolBrush)
	case CmdSelectEraser:
		e.SelectTool(ToolEraser)
	case CmdSelectBucket:
		e.SelectTool(ToolBucket)
	case CmdSelectLine:
		e.SelectTool(ToolLine)
	case CmdSelectColorPicker:
		e.SelectTool(ToolColorPicker)
	case CmdClearCanvas:
		e.Clear()
	case CmdZoomIn:
		e.ZoomIn()
	case CmdZoomOut:
		e.ZoomOut()
	case CmdResetZoom:
		e.ResetZoom()
	case CmdTogglePixelPerfect:
		e.SetPixelPerfect(!e.PixelPerfect())
	case CmdHoldColorPicker:
		e.BeginOverride(ToolColorPicker)
	default:
		return false
	}
	Logger().Debug("paint: command", "cmd", cmd)
	return true
}

// Keymap returns the engine's key bindings. The map may be modified.
func (e *Engine) Keymap() Keymap { return e.opts.keymap }

// KeyDown dispatches the command bound to chord. Auto-repeated presses of
// a hold binding are harmless. It reports whether chord is bound.
func (e *Engine) KeyDown(chord string) bool {
	cmd, ok := e.opts.keymap.Lookup(chord)
	if !ok {
		return false
	}
	return e.Execute(cmd)
}

// KeyUp ends the hold binding of chord, if it has one. It reports whether
// a hold binding was released.
func (e *Engine) KeyUp(chord string) bool {
	cmd, ok := e.opts.keymap.Lookup(chord)
	if !ok || cmd != CmdHoldColorPicker {
		return false
	}
	e.EndOverride()
	return true
}
