// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package colorwheel implements the hue/saturation disc used to choose the
// brush color.
//
// The disc is centered in a 2r×2r square. The angle around the center
// selects the hue and the distance from the center the saturation; a
// separate brightness value applies to the whole disc. Pixels outside the
// disc are transparent and cannot be picked.
package colorwheel

import (
	"errors"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/paint"
)

// ErrInvalidRadius is returned by New for a non-positive radius.
var ErrInvalidRadius = errors.New("colorwheel: radius must be positive")

// Wheel is a hue/saturation color wheel.
//
// Wheel is not safe for concurrent use.
type Wheel struct {
	radius     int
	brightness float64
	selected   paint.Color
	img        *image.NRGBA
	listeners  []func(paint.Color)
}

// New creates a wheel of the given radius at full brightness, with white
// selected.
func New(radius int) (*Wheel, error) {
	if radius <= 0 {
		return nil, ErrInvalidRadius
	}
	w := &Wheel{radius: radius, brightness: 1, selected: paint.White}
	w.render()
	return w, nil
}

// Radius returns the wheel radius in pixels.
func (w *Wheel) Radius() int { return w.radius }

// Brightness returns the brightness in [0, 1].
func (w *Wheel) Brightness() float64 { return w.brightness }

// SetBrightness sets the brightness, clamped to [0, 1], and re-renders
// the wheel.
func (w *Wheel) SetBrightness(b float64) {
	if math.IsNaN(b) {
		return
	}
	w.brightness = math.Max(0, math.Min(1, b))
	w.render()
}

// Selected returns the most recently picked color.
func (w *Wheel) Selected() paint.Color { return w.selected }

// Image returns the rendered wheel. It is shared with the Wheel and must
// not be modified; it is replaced on the next SetBrightness.
func (w *Wheel) Image() *image.NRGBA { return w.img }

// OnSelect registers fn to be called with every picked color.
func (w *Wheel) OnSelect(fn func(paint.Color)) {
	w.listeners = append(w.listeners, fn)
}

// ColorAt returns the color at wheel pixel (x, y). It reports false for
// points outside the disc.
func (w *Wheel) ColorAt(x, y int) (paint.Color, bool) {
	size := 2 * w.radius
	if x < 0 || y < 0 || x >= size || y >= size {
		return paint.Transparent, false
	}
	dx, dy := float64(x-w.radius), float64(y-w.radius)
	dist := math.Hypot(dx, dy)
	if dist > float64(w.radius) {
		return paint.Transparent, false
	}
	hue := (math.Atan2(dy, dx) + math.Pi) * 180 / math.Pi
	sat := math.Min(dist/float64(w.radius), 1)
	r, g, b := colorful.Hsv(math.Mod(hue, 360), sat, w.brightness).RGB255()
	return paint.RGB(r, g, b), true
}

// Pick selects the color at (x, y) and notifies listeners. Points outside
// the disc are ignored and Pick reports false.
func (w *Wheel) Pick(x, y int) bool {
	c, ok := w.ColorAt(x, y)
	if !ok {
		return false
	}
	w.selected = c
	paint.Logger().Debug("colorwheel: picked", "x", x, "y", y, "color", c)
	for _, fn := range w.listeners {
		fn(c)
	}
	return true
}

func (w *Wheel) render() {
	size := 2 * w.radius
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if c, ok := w.ColorAt(x, y); ok {
				img.SetNRGBA(x, y, c.NRGBA())
			}
		}
	}
	w.img = img
}
