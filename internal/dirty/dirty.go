// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dirty tracks which tiles of a pixel buffer changed since the host
// last repainted, so only those tiles need to be re-uploaded or redrawn.
package dirty

import (
	"image"
	"math/bits"
)

// TileSize is the edge length of a tracked tile in pixels.
const TileSize = 64

// Region is a bitmap with one bit per tile, packed into uint64 words.
//
// Region is not safe for concurrent use; it is owned by the single writer
// of the buffer it describes.
type Region struct {
	words  []uint64
	width  int
	height int
	tilesX int
	tilesY int
}

// New creates a tracker for a width×height pixel buffer with every tile
// clean. Non-positive sizes yield an empty tracker that ignores marks.
func New(width, height int) *Region {
	r := &Region{}
	r.Reset(width, height)
	return r
}

// Reset re-dimensions the tracker and marks every tile dirty, since the
// buffer it describes has been replaced.
func (r *Region) Reset(width, height int) {
	if width <= 0 || height <= 0 {
		*r = Region{}
		return
	}
	r.width = width
	r.height = height
	r.tilesX = (width + TileSize - 1) / TileSize
	r.tilesY = (height + TileSize - 1) / TileSize
	r.words = make([]uint64, (r.tilesX*r.tilesY+63)/64)
	r.MarkAll()
}

// Mark marks the tile containing pixel (x, y).
// Out-of-bounds coordinates are ignored.
func (r *Region) Mark(x, y int) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.set(x/TileSize, y/TileSize)
}

// MarkRect marks every tile intersecting the pixel rectangle.
func (r *Region) MarkRect(rect image.Rectangle) {
	rect = rect.Intersect(image.Rect(0, 0, r.width, r.height))
	if rect.Empty() {
		return
	}
	tx1, ty1 := rect.Min.X/TileSize, rect.Min.Y/TileSize
	tx2, ty2 := (rect.Max.X-1)/TileSize, (rect.Max.Y-1)/TileSize
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			r.set(tx, ty)
		}
	}
}

// MarkAll marks every tile.
func (r *Region) MarkAll() {
	total := r.tilesX * r.tilesY
	full := total / 64
	for i := 0; i < full; i++ {
		r.words[i] = ^uint64(0)
	}
	if rem := total % 64; rem > 0 {
		r.words[full] = (uint64(1) << rem) - 1
	}
}

// IsEmpty reports whether no tile is dirty.
func (r *Region) IsEmpty() bool {
	for _, w := range r.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of dirty tiles.
func (r *Region) Count() int {
	n := 0
	for _, w := range r.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Take returns the pixel rectangles of all dirty tiles, clipped to the
// buffer, and clears them. Rectangles are ordered row-major.
func (r *Region) Take() []image.Rectangle {
	var out []image.Rectangle
	total := r.tilesX * r.tilesY
	for wi := range r.words {
		w := r.words[wi]
		r.words[wi] = 0
		for w != 0 {
			idx := wi*64 + bits.TrailingZeros64(w)
			w &= w - 1
			if idx >= total {
				break
			}
			tx, ty := idx%r.tilesX, idx/r.tilesX
			rect := image.Rect(tx*TileSize, ty*TileSize, (tx+1)*TileSize, (ty+1)*TileSize)
			out = append(out, rect.Intersect(image.Rect(0, 0, r.width, r.height)))
		}
	}
	return out
}

func (r *Region) set(tx, ty int) {
	idx := ty*r.tilesX + tx
	r.words[idx/64] |= 1 << (idx & 63)
}
