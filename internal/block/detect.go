// Package block detects candidate rectangular regions on a page of vector
// drawings and resolves point clicks to the innermost candidate.
package block

import (
	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/geometry"
)

// Block is one detected candidate region. Index is the stable position in
// the detector's output list; it identifies the block for selection and
// export naming, and is invalidated by re-detection.
type Block struct {
	BBox  geometry.Rect `json:"bbox"`
	Index int           `json:"index"`
}

// Options configures block detection.
type Options struct {
	MinStrokeWidth float64 // unfilled strokes thinner than this are treated as text outlines
	MaxAspect      float64 // maximum allowed max(w/h, h/w)
	MinSize        float64 // width and height must both exceed this
	DedupTol       float64 // per-coordinate tolerance for near-duplicate removal
}

// DefaultOptions returns the detection options tuned for typical figures
// in text-heavy pages.
func DefaultOptions() Options {
	return Options{
		MinStrokeWidth: 0.2,
		MaxAspect:      20,
		MinSize:        3,
		DedupTol:       2.0,
	}
}

// Detect converts a page's drawings into a deduplicated list of candidate
// blocks. The result is deterministic for identical input; an empty input
// yields an empty result. Drawings without usable geometry are skipped.
func Detect(drawings []drawing.Drawing, opts Options) []Block {
	var boxes []geometry.Rect
	for _, d := range drawings {
		// Thin stroke-only paths are almost always text glyphs.
		if d.LineWidth < opts.MinStrokeWidth && d.Fill == nil {
			continue
		}

		bbox, ok := d.Bounds()
		if !ok {
			continue
		}
		if !keep(bbox, opts) {
			continue
		}
		boxes = append(boxes, bbox)
	}

	// Greedy in-order dedup. Quadratic, but candidate counts are tens,
	// not thousands.
	var accepted []geometry.Rect
	for _, b := range boxes {
		dup := false
		for _, a := range accepted {
			if b.AlmostEqual(a, opts.DedupTol) {
				dup = true
				break
			}
		}
		if !dup {
			accepted = append(accepted, b)
		}
	}

	blocks := make([]Block, len(accepted))
	for i, b := range accepted {
		blocks[i] = Block{BBox: b, Index: i}
	}
	return blocks
}

// keep applies the aspect and size filters. A zero dimension denotes a
// degenerate shape and always rejects.
func keep(b geometry.Rect, opts Options) bool {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return false
	}
	aspect := w / h
	if h/w > aspect {
		aspect = h / w
	}
	if aspect > opts.MaxAspect {
		return false
	}
	return w > opts.MinSize && h > opts.MinSize
}
