// Package viewport maps between view (widget) coordinates and page
// coordinates for a zoomable, scrollable page display.
package viewport

import (
	"math"

	"pdf-blocks/pkg/geometry"
)

const (
	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
	zoomEpsilon   = 1e-6
)

// Viewport describes the visible window onto a page. Offsets are the
// scroll position in content (zoomed-page) coordinates.
type Viewport struct {
	Zoom    float64
	MinZoom float64
	MaxZoom float64

	OffsetX float64
	OffsetY float64

	ViewW float64
	ViewH float64
	PageW float64
	PageH float64
}

// New returns a viewport at 100% zoom with the default zoom bounds.
func New() *Viewport {
	return &Viewport{
		Zoom:    1.0,
		MinZoom: 0.1,
		MaxZoom: 4.0,
	}
}

// ToPage converts a point in view coordinates to page coordinates.
func (v *Viewport) ToPage(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: (v.OffsetX + p.X) / v.Zoom,
		Y: (v.OffsetY + p.Y) / v.Zoom,
	}
}

// ToView converts a point in page coordinates to view coordinates.
func (v *Viewport) ToView(p geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{
		X: p.X*v.Zoom - v.OffsetX,
		Y: p.Y*v.Zoom - v.OffsetY,
	}
}

// ContentSize is the size of the page at the current zoom.
func (v *Viewport) ContentSize() (w, h float64) {
	return v.PageW * v.Zoom, v.PageH * v.Zoom
}

// SetZoom clamps z to the viewport's zoom bounds and applies it,
// keeping the offsets valid. It reports whether the zoom changed.
func (v *Viewport) SetZoom(z float64) bool {
	z = math.Max(v.MinZoom, math.Min(v.MaxZoom, z))
	if math.Abs(z-v.Zoom) < zoomEpsilon {
		return false
	}
	v.Zoom = z
	v.ClampOffset()
	return true
}

// ZoomAt zooms in or out by one step, keeping the page point under the
// given view position fixed. It reports whether the zoom changed; at
// the zoom bounds it is a no-op.
func (v *Viewport) ZoomAt(viewX, viewY float64, in bool) bool {
	factor := zoomOutFactor
	if in {
		factor = zoomInFactor
	}
	next := math.Max(v.MinZoom, math.Min(v.MaxZoom, v.Zoom*factor))
	if math.Abs(next-v.Zoom) < zoomEpsilon {
		return false
	}

	anchor := v.ToPage(geometry.Point2D{X: viewX, Y: viewY})
	v.Zoom = next
	v.OffsetX = anchor.X*next - viewX
	v.OffsetY = anchor.Y*next - viewY
	v.ClampOffset()
	return true
}

// ClampOffset constrains the scroll offsets to the scrollable range
// [0, content-view]. When the content is smaller than the view the
// offset collapses to zero.
func (v *Viewport) ClampOffset() {
	cw, ch := v.ContentSize()
	v.OffsetX = math.Max(0, math.Min(v.OffsetX, cw-v.ViewW))
	v.OffsetY = math.Max(0, math.Min(v.OffsetY, ch-v.ViewH))
}
