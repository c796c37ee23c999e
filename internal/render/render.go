// Package render rasterizes collected vector drawings into a page
// preview image.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/colorutil"
	"pdf-blocks/pkg/geometry"
)

// Page renders the drawings of a page onto a white background at the
// given zoom. Page coordinates are multiplied by zoom, so the image
// size is ceil(pageW*zoom) x ceil(pageH*zoom).
func Page(drawings []drawing.Drawing, pageW, pageH, zoom float64) *image.RGBA {
	w := int(math.Ceil(pageW * zoom))
	h := int(math.Ceil(pageH * zoom))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	for _, d := range drawings {
		if d.Fill != nil && len(d.Segments) > 0 {
			fillPath(img, d, zoom)
		}
		if d.Stroke != nil || d.Fill == nil {
			strokePath(img, d, zoom)
		}
	}
	return img
}

func fillPath(img *image.RGBA, d drawing.Drawing, zoom float64) {
	b := img.Bounds()
	ras := vector.NewRasterizer(b.Dx(), b.Dy())
	open := false
	for _, seg := range d.Segments {
		switch seg.Op {
		case "M":
			if len(seg.Points) < 1 {
				continue
			}
			if open {
				ras.ClosePath()
			}
			p := seg.Points[0]
			ras.MoveTo(float32(p.X*zoom), float32(p.Y*zoom))
			open = true
		case "L":
			if !open || len(seg.Points) < 1 {
				continue
			}
			p := seg.Points[0]
			ras.LineTo(float32(p.X*zoom), float32(p.Y*zoom))
		case "C":
			if !open || len(seg.Points) < 3 {
				continue
			}
			c1, c2, p := seg.Points[0], seg.Points[1], seg.Points[2]
			ras.CubeTo(
				float32(c1.X*zoom), float32(c1.Y*zoom),
				float32(c2.X*zoom), float32(c2.Y*zoom),
				float32(p.X*zoom), float32(p.Y*zoom))
		case "Z":
			if open {
				ras.ClosePath()
			}
		}
	}
	if !open {
		return
	}
	ras.ClosePath()

	src := image.NewUniform(colorutil.RGBA(d.Fill.R, d.Fill.G, d.Fill.B))
	ras.Draw(img, b, src, image.Point{})
}

func strokePath(img *image.RGBA, d drawing.Drawing, zoom float64) {
	col := color.RGBA{A: 0xff}
	if d.Stroke != nil {
		col = colorutil.RGBA(d.Stroke.R, d.Stroke.G, d.Stroke.B)
	}

	var cur, start geometry.Point2D
	open := false
	for _, seg := range d.Segments {
		switch seg.Op {
		case "M":
			if len(seg.Points) < 1 {
				continue
			}
			cur = seg.Points[0]
			start = cur
			open = true
		case "L":
			if !open || len(seg.Points) < 1 {
				continue
			}
			p := seg.Points[0]
			drawLine(img, cur, p, zoom, col)
			cur = p
		case "C":
			if !open || len(seg.Points) < 3 {
				continue
			}
			for _, p := range flattenCubic(cur, seg.Points[0], seg.Points[1], seg.Points[2]) {
				drawLine(img, cur, p, zoom, col)
				cur = p
			}
		case "Z":
			if open {
				drawLine(img, cur, start, zoom, col)
				cur = start
			}
		}
	}
}

// flattenCubic samples a cubic Bézier into a short polyline. The
// preview does not need sub-pixel accuracy.
func flattenCubic(p0, c1, c2, p1 geometry.Point2D) []geometry.Point2D {
	const steps = 16
	out := make([]geometry.Point2D, 0, steps)
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		u := 1 - t
		out = append(out, geometry.Point2D{
			X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p1.X,
			Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p1.Y,
		})
	}
	return out
}

func drawLine(img *image.RGBA, a, b geometry.Point2D, zoom float64, col color.RGBA) {
	x0, y0 := a.X*zoom, a.Y*zoom
	x1, y1 := b.X*zoom, b.Y*zoom
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetRGBA(int(x0+(x1-x0)*t+0.5), int(y0+(y1-y0)*t+0.5), col)
	}
}
