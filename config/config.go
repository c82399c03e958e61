// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads editor settings from a TOML file.
//
// Settings live in os.UserConfigDir()/paintforge/config.toml unless a path
// is given. Keys absent from the file keep their defaults; unknown keys are
// rejected so typos do not go unnoticed.
//
//	[document]
//	width = 512
//	height = 512
//	background = "#FFFFFF"
//
//	[brush]
//	color = "#000000"
//	size = 1
//	pixel_perfect = true
//
//	[keys]
//	"ctrl+shift+z" = "redo"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/paint"
)

const (
	appDir   = "paintforge"
	fileName = "config.toml"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the decoded settings file.
type Config struct {
	Document Document          `toml:"document"`
	Brush    Brush             `toml:"brush"`
	View     View              `toml:"view"`
	Line     Line              `toml:"line"`
	History  History           `toml:"history"`
	Loop     Loop              `toml:"loop"`
	Keys     map[string]string `toml:"keys,omitempty"`
}

// Document holds the size and paper color of new documents.
type Document struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// Brush holds the initial brush.
type Brush struct {
	Color        string `toml:"color"`
	Size         int    `toml:"size"`
	PixelPerfect bool   `toml:"pixel_perfect"`
}

// View holds zoom steps and the presentation colors.
type View struct {
	ZoomIn         float64 `toml:"zoom_in"`
	ZoomOut        float64 `toml:"zoom_out"`
	ViewportWidth  int     `toml:"viewport_width"`
	ViewportHeight int     `toml:"viewport_height"`
	Backdrop       string  `toml:"backdrop"`
}

// Line holds the line tool snapping increments in degrees.
type Line struct {
	Snap         float64 `toml:"snap_degrees"`
	PreviewSnap  float64 `toml:"preview_snap_degrees"`
	PreviewColor string  `toml:"preview_color"`
}

// History holds the undo depth; zero is unlimited.
type History struct {
	Limit int `toml:"limit"`
}

// Loop holds the stroke correction period.
type Loop struct {
	TickIntervalMS int `toml:"tick_interval_ms"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Document: Document{Width: 512, Height: 512, Background: "#FFFFFF"},
		Brush:    Brush{Color: "#000000", Size: 1, PixelPerfect: true},
		View:     View{ZoomIn: 1.2, ZoomOut: 0.8, Backdrop: "#232323"},
		Line: Line{
			Snap:         paint.DefaultLineSnap,
			PreviewSnap:  paint.DefaultPreviewSnap,
			PreviewColor: "#000000",
		},
		Loop: Loop{TickIntervalMS: int(paint.DefaultTickInterval / time.Millisecond)},
	}
}

// Path returns the default settings file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads the default settings file. A missing file yields Default.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		paint.Logger().Debug("config: no settings file, using defaults", "path", path)
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads and validates the settings file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	paint.Logger().Info("config: loaded", "path", path)
	return cfg, nil
}

// Decode reads settings from r on top of Default and validates them.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Document.Width <= 0 || c.Document.Width > paint.MaxDimension {
		bad("document.width %d out of range", c.Document.Width)
	}
	if c.Document.Height <= 0 || c.Document.Height > paint.MaxDimension {
		bad("document.height %d out of range", c.Document.Height)
	}
	for name, s := range map[string]string{
		"document.background": c.Document.Background,
		"brush.color":         c.Brush.Color,
		"view.backdrop":       c.View.Backdrop,
		"line.preview_color":  c.Line.PreviewColor,
	} {
		if _, err := paint.ParseHex(s); err != nil {
			bad("%s %q is not a color", name, s)
		}
	}
	if c.Brush.Size < paint.MinBrushSize || c.Brush.Size > paint.MaxBrushSize {
		bad("brush.size %d not in [%d, %d]", c.Brush.Size, paint.MinBrushSize, paint.MaxBrushSize)
	}
	if c.View.ZoomIn <= 1 {
		bad("view.zoom_in %v must be greater than 1", c.View.ZoomIn)
	}
	if c.View.ZoomOut <= 0 || c.View.ZoomOut >= 1 {
		bad("view.zoom_out %v must be in (0, 1)", c.View.ZoomOut)
	}
	if c.View.ViewportWidth < 0 || c.View.ViewportHeight < 0 {
		bad("negative viewport %dx%d", c.View.ViewportWidth, c.View.ViewportHeight)
	}
	if c.Line.Snap < 0 || c.Line.PreviewSnap < 0 {
		bad("negative line snap")
	}
	if c.History.Limit < 0 {
		bad("history.limit %d is negative", c.History.Limit)
	}
	if c.Loop.TickIntervalMS < 0 {
		bad("loop.tick_interval_ms %d is negative", c.Loop.TickIntervalMS)
	}
	for chord, name := range c.Keys {
		if _, err := paint.ParseCommand(name); err != nil {
			bad("keys.%q: unknown command %q", chord, name)
		}
	}
	return errors.Join(errs...)
}

// Options converts c to engine options. c must be valid.
func (c *Config) Options() []paint.EngineOption {
	bg, _ := paint.ParseHex(c.Document.Background)
	brush, _ := paint.ParseHex(c.Brush.Color)
	backdrop, _ := paint.ParseHex(c.View.Backdrop)
	preview, _ := paint.ParseHex(c.Line.PreviewColor)

	opts := []paint.EngineOption{
		paint.WithBackground(bg),
		paint.WithBrushColor(brush),
		paint.WithBrushSize(c.Brush.Size),
		paint.WithPixelPerfect(c.Brush.PixelPerfect),
		paint.WithZoomSteps(c.View.ZoomIn, c.View.ZoomOut),
		paint.WithBackdrop(backdrop),
		paint.WithLineSnap(c.Line.Snap),
		paint.WithPreviewSnap(c.Line.PreviewSnap),
		paint.WithPreviewColor(preview),
		paint.WithHistoryLimit(c.History.Limit),
		paint.WithKeymap(c.Keymap()),
	}
	if c.View.ViewportWidth > 0 && c.View.ViewportHeight > 0 {
		opts = append(opts, paint.WithViewport(c.View.ViewportWidth, c.View.ViewportHeight))
	}
	return opts
}

// Keymap returns the default bindings with the [keys] table applied on
// top. c must be valid.
func (c *Config) Keymap() paint.Keymap {
	k := paint.DefaultKeymap()
	for chord, name := range c.Keys {
		cmd, err := paint.ParseCommand(name)
		if err != nil {
			continue
		}
		k.Bind(chord, cmd)
	}
	return k
}

// TickInterval returns the stroke correction period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Loop.TickIntervalMS) * time.Millisecond
}
