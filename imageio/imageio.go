// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imageio saves and loads documents as image files.
//
// FileStore implements paint.Store. Saving picks the codec from the file
// extension (PNG when there is none) and is atomic: the image is written to
// a temporary file in the destination directory and renamed into place, so
// a failed save never leaves a truncated file behind. Opening sniffs the
// format from the file content, not the extension.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/gogpu/paint"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when an image file is empty.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrEmptyPath is returned when no file name is given.
	ErrEmptyPath = errors.New("imageio: empty path")
)

// Format is an image file format.
type Format uint8

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
	FormatJPEG // decode only
)

var formatNames = [...]string{
	FormatPNG:  "png",
	FormatBMP:  "bmp",
	FormatTIFF: "tiff",
	FormatJPEG: "jpeg",
}

// String returns the format name.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

// FormatFromPath returns the format implied by the extension of path.
// A path without an extension is PNG.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	default:
		return 0, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

// Verify at compile time that FileStore implements paint.Store.
var _ paint.Store = (*FileStore)(nil)

// FileStore reads and writes image files on the local file system.
// The zero value is ready to use.
type FileStore struct {
	// Scale, when greater than 1, enlarges saved images by an integer
	// factor with nearest-neighbour sampling, keeping pixels sharp.
	Scale int
}

// Save encodes img to path.
func (fs *FileStore) Save(path string, img image.Image) error {
	if path == "" {
		return ErrEmptyPath
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatJPEG {
		return fmt.Errorf("%w: jpeg is lossy and only supported for reading", ErrUnsupportedFormat)
	}
	if fs.Scale > 1 {
		img = Upscale(img, fs.Scale)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return err
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	paint.Logger().Debug("imageio: saved", "path", path, "format", format, "bytes", buf.Len())
	return nil
}

// Open decodes the image at path.
func (fs *FileStore) Open(path string) (image.Image, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: read file: %w", err)
	}
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}
	paint.Logger().Debug("imageio: opened", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: cannot encode %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %v: %w", format, err)
	}
	return nil
}

// Decode sniffs the format of data and decodes it.
func Decode(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, 0, ErrEmptyData
	}
	format, err := Sniff(data)
	if err != nil {
		return nil, 0, err
	}

	r := bytes.NewReader(data)
	var img image.Image
	switch format {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("imageio: decode %v: %w", format, err)
	}
	return normalize(img), format, nil
}

// Sniff identifies the image format from the leading bytes of data.
func Sniff(data []byte) (Format, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return 0, fmt.Errorf("%w: unrecognized content", ErrUnsupportedFormat)
	}
	switch kind.Extension {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif":
		return FormatTIFF, nil
	case "jpg":
		return FormatJPEG, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
}

// normalize converts decoded images to a type with a direct pixel layout.
// NRGBA is kept as is; opaque images lose nothing in premultiplied RGBA;
// anything else with alpha is converted to NRGBA.
func normalize(img image.Image) image.Image {
	switch m := img.(type) {
	case *image.NRGBA:
		return m
	case *image.RGBA:
		if m.Opaque() {
			return m
		}
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return clone.AsRGBA(img)
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Upscale enlarges img by an integer factor without smoothing.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return transform.Resize(img, b.Dx()*factor, b.Dy()*factor, transform.NearestNeighbor)
}

// writeAtomic writes data to a temporary file next to path and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	path = filepath.Clean(path)
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return fmt.Errorf("imageio: create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("imageio: write: %w", err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("imageio: sync: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("imageio: close: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("imageio: rename: %w", err)
	}
	return nil
}
