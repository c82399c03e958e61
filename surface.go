package paint

import (
	"image"
	"image/color"

	"github.com/gogpu/paint/internal/dirty"
)

// Surface is a single-layer pixel buffer of packed ARGB values.
//
// Every mutation ignores coordinates outside the surface: pointer
// positions routinely land off-canvas while panning or zooming.
type Surface struct {
	width      int
	height     int
	pix        []Color // indexed [y*width+x]
	background Color
	dirty      *dirty.Region
}

// NewSurface creates a surface filled with the background color.
func NewSurface(width, height int, background Color) (*Surface, error) {
	if err := checkDimension("width", width); err != nil {
		return nil, err
	}
	if err := checkDimension("height", height); err != nil {
		return nil, err
	}
	s := &Surface{
		width:      width,
		height:     height,
		pix:        make([]Color, width*height),
		background: background,
		dirty:      dirty.New(width, height),
	}
	s.Clear()
	return s, nil
}

// SurfaceFromImage copies img into a new surface. The image origin maps to
// (0, 0).
func SurfaceFromImage(img image.Image, background Color) (*Surface, error) {
	b := img.Bounds()
	s, err := NewSurface(b.Dx(), b.Dy(), background)
	if err != nil {
		return nil, err
	}
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < s.height; y++ {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			row := n.Pix[off : off+s.width*4]
			for x := 0; x < s.width; x++ {
				p := row[x*4 : x*4+4]
				s.pix[y*s.width+x] = ARGB(p[3], p[0], p[1], p[2])
			}
		}
		return s, nil
	}
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.pix[y*s.width+x] = FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return s, nil
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	return s.height
}

// Background returns the color used by Clear, Resize and erasing.
func (s *Surface) Background() Color {
	return s.background
}

// SetBackground changes the background color. Existing pixels are kept.
func (s *Surface) SetBackground(c Color) {
	s.background = c
}

// Pix returns the live pixel buffer. Callers must not retain it across
// edits that replace the buffer (Resize, undo, redo).
func (s *Surface) Pix() []Color {
	return s.pix
}

// InBounds reports whether (x, y) is a pixel of the surface.
func (s *Surface) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Pixel returns the color at (x, y), or Transparent when out of bounds.
func (s *Surface) Pixel(x, y int) Color {
	if !s.InBounds(x, y) {
		return Transparent
	}
	return s.pix[y*s.width+x]
}

// SetPixel sets the color of a single pixel.
func (s *Surface) SetPixel(x, y int, c Color) {
	if !s.InBounds(x, y) {
		return
	}
	s.pix[y*s.width+x] = c
	s.dirty.Mark(x, y)
}

// FillRect fills the rectangle with top-left (x, y), clipped to the surface.
func (s *Surface) FillRect(x, y, w, h int, c Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := s.pix[py*s.width+r.Min.X : py*s.width+r.Max.X]
		for i := range row {
			row[i] = c
		}
	}
	s.dirty.MarkRect(r)
}

// Clear fills the entire surface with the background color.
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = s.background
	}
	s.dirty.MarkAll()
}

// Resize reallocates the buffer. Content inside both the old and new
// bounds keeps its position; content outside is discarded and newly
// exposed pixels take the background color.
func (s *Surface) Resize(width, height int) error {
	if err := checkDimension("width", width); err != nil {
		return err
	}
	if err := checkDimension("height", height); err != nil {
		return err
	}
	pix := make([]Color, width*height)
	for i := range pix {
		pix[i] = s.background
	}
	cw, ch := min(width, s.width), min(height, s.height)
	for y := 0; y < ch; y++ {
		copy(pix[y*width:y*width+cw], s.pix[y*s.width:y*s.width+cw])
	}
	s.replace(width, height, pix)
	return nil
}

// replace swaps in a new buffer of the given size. pix must not be
// shared with anything else.
func (s *Surface) replace(width, height int, pix []Color) {
	s.width = width
	s.height = height
	s.pix = pix
	s.dirty.Reset(width, height)
}

// TakeDirty returns the rectangles written since the previous call.
func (s *Surface) TakeDirty() []image.Rectangle {
	return s.dirty.Take()
}

// ToImage copies the surface into a new image.NRGBA.
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for i, c := range s.pix {
		p := img.Pix[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = c.R(), c.G(), c.B(), c.A()
	}
	return img
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return s.Pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.NRGBAModel
}

// rectFromCorners returns the rectangle covering both inclusive corners.
func rectFromCorners(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1+1, y1+1)
}
