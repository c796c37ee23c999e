// Package drawing defines the vector drawing primitives extracted from a
// PDF page. Drawings are read-only inputs for detection and export; the
// pipeline never mutates them.
package drawing

import (
	"pdf-blocks/pkg/geometry"
)

// RGB holds normalized color components in the range 0-1.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Segment is one path instruction. Op uses SVG-style tags:
// "M" (move, 1 point), "L" (line, 1 point), "C" (cubic curve, 3 points)
// and "Z" (close, no points).
type Segment struct {
	Op     string             `json:"op"`
	Points []geometry.Point2D `json:"points,omitempty"`
}

// Drawing is one vector primitive from a page: a stroked and/or filled
// path, or a rectangle. Optional fields use nil for "absent"; an absent
// fill and a black fill are distinct.
type Drawing struct {
	// Rect is the explicit bounding rectangle, if the source recorded one
	// (always set for rectangle operators). Nil when absent.
	Rect *geometry.Rect `json:"rect,omitempty"`

	// Segments are the path instructions in drawing order.
	Segments []Segment `json:"segments,omitempty"`

	// LineWidth is the stroke width in page units. Zero for fill-only
	// drawings.
	LineWidth float64 `json:"line_width,omitempty"`

	// Stroke is the stroke color, nil if the drawing is not stroked.
	Stroke *RGB `json:"stroke,omitempty"`

	// Fill is the fill color, nil if the drawing is not filled.
	Fill *RGB `json:"fill,omitempty"`
}

// Points returns every point across all segments, in segment order.
func (d Drawing) Points() []geometry.Point2D {
	var pts []geometry.Point2D
	for _, seg := range d.Segments {
		pts = append(pts, seg.Points...)
	}
	return pts
}

// Bounds returns the drawing's bounding rectangle: the explicit rectangle
// when present and non-empty, otherwise the bounding box of all path
// points. The second return value is false for a drawing with no geometry
// at all.
func (d Drawing) Bounds() (geometry.Rect, bool) {
	if d.Rect != nil && !d.Rect.IsEmpty() {
		return *d.Rect, true
	}
	return geometry.BoundingBox(d.Points())
}
