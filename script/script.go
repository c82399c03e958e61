// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package script replays recorded input against an engine.
//
// A script is a YAML document holding an optional canvas size and a list
// of events. Every event sets exactly one action key; pointer positions
// are screen coordinates given as [x, y].
//
//	width: 128
//	height: 128
//	events:
//	  - tool: line
//	  - color: "#FF0000"
//	  - down: [0, 0]
//	  - move: [100, 57]
//	  - up: [100, 57]
//	  - key: ctrl+z
//	  - wheel: -1
//	    at: [64, 64]
//	  - down: [10, 10]
//	    button: middle
//
// Scripts drive tests, benchmarks and the replay command.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/paint"
)

// ErrInvalidEvent is wrapped by every event validation error.
var ErrInvalidEvent = errors.New("script: invalid event")

// Pos is a screen position.
type Pos [2]float64

// Point converts p to an engine point.
func (p Pos) Point() paint.Point { return paint.Pt(p[0], p[1]) }

// Dims is a [width, height] pair.
type Dims [2]int

// Button names a pointer button in YAML.
type Button paint.Button

var buttonNames = map[string]paint.Button{
	"primary":   paint.ButtonPrimary,
	"left":      paint.ButtonPrimary,
	"middle":    paint.ButtonMiddle,
	"secondary": paint.ButtonSecondary,
	"right":     paint.ButtonSecondary,
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Button) UnmarshalText(text []byte) error {
	v, ok := buttonNames[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("%w: unknown button %q", ErrInvalidEvent, text)
	}
	*b = Button(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b Button) MarshalText() ([]byte, error) {
	switch paint.Button(b) {
	case paint.ButtonMiddle:
		return []byte("middle"), nil
	case paint.ButtonSecondary:
		return []byte("secondary"), nil
	default:
		return []byte("primary"), nil
	}
}

// Event is one step of a script.
type Event struct {
	Down   *Pos    `yaml:"down,omitempty"`
	Move   *Pos    `yaml:"move,omitempty"`
	Up     *Pos    `yaml:"up,omitempty"`
	Button *Button `yaml:"button,omitempty"`

	Wheel *float64 `yaml:"wheel,omitempty"`
	At    *Pos     `yaml:"at,omitempty"`

	Key   string `yaml:"key,omitempty"`
	KeyUp string `yaml:"keyup,omitempty"`

	Tool    string `yaml:"tool,omitempty"`
	Color   string `yaml:"color,omitempty"`
	Size    *int   `yaml:"size,omitempty"`
	Command string `yaml:"command,omitempty"`

	Tick bool   `yaml:"tick,omitempty"`
	Wait string `yaml:"wait,omitempty"`

	New      *Dims `yaml:"new,omitempty"`
	Resize   *Dims `yaml:"resize,omitempty"`
	Viewport *Dims `yaml:"viewport,omitempty"`
}

// Script is a decoded event list.
type Script struct {
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	Events []Event `yaml:"events"`
}

// Parse decodes and validates a script. Unknown keys are errors.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Encode writes s as YAML.
func (s *Script) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("script: encode: %w", err)
	}
	return enc.Close()
}

// Validate checks the canvas size and every event.
func (s *Script) Validate() error {
	if s.Width < 0 || s.Height < 0 || (s.Width == 0) != (s.Height == 0) {
		return fmt.Errorf("%w: canvas size %dx%d", paint.ErrInvalidDimensions, s.Width, s.Height)
	}
	var errs []error
	for i := range s.Events {
		if err := s.Events[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks that ev names exactly one well-formed action.
func (ev *Event) Validate() error {
	actions := 0
	count := func(set bool) {
		if set {
			actions++
		}
	}
	count(ev.Down != nil)
	count(ev.Move != nil)
	count(ev.Up != nil)
	count(ev.Wheel != nil)
	count(ev.Key != "")
	count(ev.KeyUp != "")
	count(ev.Tool != "")
	count(ev.Color != "")
	count(ev.Size != nil)
	count(ev.Command != "")
	count(ev.Tick)
	count(ev.Wait != "")
	count(ev.New != nil)
	count(ev.Resize != nil)
	count(ev.Viewport != nil)
	if actions != 1 {
		return fmt.Errorf("%w: want exactly one action, got %d", ErrInvalidEvent, actions)
	}

	if ev.Button != nil && ev.Down == nil && ev.Up == nil {
		return fmt.Errorf("%w: button applies only to down and up", ErrInvalidEvent)
	}
	if ev.At != nil && ev.Wheel == nil {
		return fmt.Errorf("%w: at applies only to wheel", ErrInvalidEvent)
	}
	if ev.Tool != "" {
		if _, err := paint.ParseTool(ev.Tool); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
	}
	if ev.Color != "" {
		if _, err := paint.ParseHex(ev.Color); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
	}
	if ev.Command != "" {
		if _, err := paint.ParseCommand(ev.Command); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
		}
	}
	if ev.Wait != "" {
		if d, err := time.ParseDuration(ev.Wait); err != nil || d < 0 {
			return fmt.Errorf("%w: bad wait %q", ErrInvalidEvent, ev.Wait)
		}
	}
	return nil
}

func (ev *Event) button() paint.Button {
	if ev.Button == nil {
		return paint.ButtonPrimary
	}
	return paint.Button(*ev.Button)
}

// apply performs ev on e. Validate must have passed.
func (ev *Event) apply(e *paint.Engine) error {
	switch {
	case ev.Down != nil:
		e.PointerDown(ev.Down.Point(), ev.button())
	case ev.Move != nil:
		e.PointerMove(ev.Move.Point())
	case ev.Up != nil:
		e.PointerUp(ev.Up.Point(), ev.button())
	case ev.Wheel != nil:
		var at Pos
		if ev.At != nil {
			at = *ev.At
		}
		e.Wheel(*ev.Wheel, at.Point())
	case ev.Key != "":
		e.KeyDown(ev.Key)
	case ev.KeyUp != "":
		e.KeyUp(ev.KeyUp)
	case ev.Tool != "":
		t, _ := paint.ParseTool(ev.Tool)
		e.SelectTool(t)
	case ev.Color != "":
		c, _ := paint.ParseHex(ev.Color)
		e.SetBrushColor(c)
	case ev.Size != nil:
		e.SetBrushSize(*ev.Size)
	case ev.Command != "":
		cmd, _ := paint.ParseCommand(ev.Command)
		e.Execute(cmd)
	case ev.Tick, ev.Wait != "":
		e.Tick()
	case ev.New != nil:
		return e.NewDocument(ev.New[0], ev.New[1])
	case ev.Resize != nil:
		return e.ResizeCanvas(ev.Resize[0], ev.Resize[1])
	case ev.Viewport != nil:
		e.SetViewport(ev.Viewport[0], ev.Viewport[1])
	}
	return nil
}

// Apply replays s on e synchronously. A wait event performs a single
// Tick instead of sleeping. Replay stops at the first failing event.
func (s *Script) Apply(e *paint.Engine) error {
	if s.Width > 0 {
		if err := e.NewDocument(s.Width, s.Height); err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}
	for i := range s.Events {
		if err := s.Events[i].apply(e); err != nil {
			return fmt.Errorf("script: event %d: %w", i, err)
		}
	}
	paint.Logger().Debug("script: applied", "events", len(s.Events))
	return nil
}

// Run replays s through l, which must be running. Each event waits for
// the loop to perform it, so ticks interleave with events the way they
// would with live input. Wait events sleep on the caller's goroutine.
func (s *Script) Run(ctx context.Context, l *paint.Loop) error {
	var err error
	if s.Width > 0 {
		if derr := l.Do(ctx, func(e *paint.Engine) { err = e.NewDocument(s.Width, s.Height) }); derr != nil {
			return derr
		}
		if err != nil {
			return fmt.Errorf("script: %w", err)
		}
	}
	for i := range s.Events {
		ev := &s.Events[i]
		if ev.Wait != "" {
			d, _ := time.ParseDuration(ev.Wait)
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			continue
		}
		if derr := l.Do(ctx, func(e *paint.Engine) { err = ev.apply(e) }); derr != nil {
			return derr
		}
		if err != nil {
			return fmt.Errorf("script: event %d: %w", i, err)
		}
	}
	paint.Logger().Debug("script: replayed", "events", len(s.Events))
	return nil
}
