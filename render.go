package paint

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// RenderInto paints the current frame into dst: the backdrop, the canvas
// scaled and panned by the view with nearest-neighbour sampling, and the
// guide of an in-progress line drag.
//
// The guide snaps to the preview increment, which may differ from the
// increment used when the line is committed.
func (e *Engine) RenderInto(dst draw.Image) {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.NewUniform(e.opts.backdrop.NRGBA()), image.Point{}, draw.Src)

	src := e.surface.ToImage()
	m := e.view.Matrix()
	draw.NearestNeighbor.Transform(dst, m.Aff3(), src, src.Bounds(), draw.Over, nil)

	if e.line != nil {
		e.renderGuide(dst, m)
	}
}

// renderGuide draws a one-pixel screen-space line between the centers of
// the start cell and the preview-snapped end cell.
func (e *Engine) renderGuide(dst draw.Image, m Matrix) {
	end := e.line.Snapped(e.opts.previewSnap)
	p0 := m.TransformPoint(Pt(float64(e.line.Start.X)+0.5, float64(e.line.Start.Y)+0.5))
	p1 := m.TransformPoint(Pt(float64(end.X)+0.5, float64(end.Y)+0.5))

	bounds := dst.Bounds()
	c := e.opts.previewColor.NRGBA()
	walkLine(
		int(math.Floor(p0.X)), int(math.Floor(p0.Y)),
		int(math.Floor(p1.X)), int(math.Floor(p1.Y)),
		func(x, y int, _ Step) {
			if (image.Point{x, y}).In(bounds) {
				dst.Set(x, y, c)
			}
		},
	)
}
