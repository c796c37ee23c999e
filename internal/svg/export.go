// Package svg re-serializes collected vector drawings into standalone
// SVG documents, one per extracted block region.
package svg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-blocks/internal/block"
	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/colorutil"
	"pdf-blocks/pkg/geometry"
)

// Export renders every drawing whose bounding rectangle intersects clip
// as an SVG document. The viewBox carries the clip origin, so coordinates
// stay in page space and the region appears at its natural size.
func Export(clip geometry.Rect, drawings []drawing.Drawing) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		num(clip.X0), num(clip.Y0), num(clip.Width()), num(clip.Height()))

	for _, d := range drawings {
		if d.Rect == nil || !d.Rect.Intersects(clip) {
			continue
		}
		if len(d.Segments) > 0 {
			writePath(&buf, d)
		} else {
			writeRect(&buf, d)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePath(buf *bytes.Buffer, d drawing.Drawing) {
	var sb strings.Builder
	for i, seg := range d.Segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Op)
		for _, p := range seg.Points {
			fmt.Fprintf(&sb, " %s,%s", num(p.X), num(p.Y))
		}
	}
	fmt.Fprintf(buf, `  <path d="%s"%s/>`+"\n", sb.String(), styleAttrs(d))
}

func writeRect(buf *bytes.Buffer, d drawing.Drawing) {
	r := d.Rect
	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(r.X0), num(r.Y0), num(r.Width()), num(r.Height()), styleAttrs(d))
}

func styleAttrs(d drawing.Drawing) string {
	// Stroke falls back to black even for fill-only drawings.
	stroke := "rgb(0, 0, 0)"
	if d.Stroke != nil {
		stroke = colorutil.CSSRGB(d.Stroke.R, d.Stroke.G, d.Stroke.B)
	}
	fill := "none"
	if d.Fill != nil {
		fill = colorutil.CSSRGB(d.Fill.R, d.Fill.G, d.Fill.B)
	}
	width := d.LineWidth
	if width <= 0 {
		width = 1
	}
	return fmt.Sprintf(` stroke="%s" fill="%s" stroke-width="%s"`,
		stroke, fill, num(width))
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Result reports the outcome of exporting a single block region.
type Result struct {
	Index int
	Path  string
	Err   error
}

// ExportBlocks writes one SVG file per selected block into dir, named
// block_<index+1>.svg. A failure for one region is recorded in its
// Result and does not stop the remaining exports.
func ExportBlocks(dir string, sel *block.Selection, blocks []block.Block, drawings []drawing.Drawing) []Result {
	var results []Result
	for _, idx := range sel.Indices() {
		if idx < 0 || idx >= len(blocks) {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("block_%d.svg", idx+1))
		data := Export(blocks[idx].BBox, drawings)
		err := os.WriteFile(path, data, 0o644)
		results = append(results, Result{Index: idx, Path: path, Err: err})
	}
	return results
}
