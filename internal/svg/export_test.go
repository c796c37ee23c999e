package svg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf-blocks/internal/block"
	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/geometry"
)

func rectDrawing(x0, y0, x1, y1 float64, stroke, fill *drawing.RGB) drawing.Drawing {
	r := geometry.NewRect(x0, y0, x1, y1)
	return drawing.Drawing{
		Rect: &r,
		Segments: []drawing.Segment{
			{Op: "M", Points: []geometry.Point2D{{X: x0, Y: y0}}},
			{Op: "L", Points: []geometry.Point2D{{X: x1, Y: y0}}},
			{Op: "L", Points: []geometry.Point2D{{X: x1, Y: y1}}},
			{Op: "L", Points: []geometry.Point2D{{X: x0, Y: y1}}},
			{Op: "Z"},
		},
		LineWidth: 1,
		Stroke:    stroke,
		Fill:      fill,
	}
}

func TestExportScopesToClip(t *testing.T) {
	red := &drawing.RGB{R: 1}
	drawings := []drawing.Drawing{
		rectDrawing(10, 10, 90, 90, red, nil),
		rectDrawing(200, 200, 280, 280, red, nil),
	}

	out := string(Export(geometry.NewRect(0, 0, 100, 100), drawings))
	if !strings.Contains(out, `viewBox="0 0 100 100"`) {
		t.Errorf("missing viewBox: %s", out)
	}
	if !strings.Contains(out, "M 10,10") {
		t.Error("drawing inside the clip not serialized")
	}
	if strings.Contains(out, "200,200") {
		t.Error("drawing outside the clip leaked into the output")
	}
}

func TestExportStyleDefaults(t *testing.T) {
	drawings := []drawing.Drawing{
		rectDrawing(0, 0, 10, 10, nil, &drawing.RGB{R: 1, G: 1}),
	}
	// a fill-only drawing still gets the black stroke fallback
	out := string(Export(geometry.NewRect(0, 0, 20, 20), drawings))
	if !strings.Contains(out, `stroke="rgb(0, 0, 0)"`) {
		t.Errorf("fill-only drawing should fall back to a black stroke: %s", out)
	}
	if !strings.Contains(out, `fill="rgb(255, 255, 0)"`) {
		t.Errorf("fill color not rendered: %s", out)
	}

	// no colors at all: same black stroke fallback
	plain := []drawing.Drawing{rectDrawing(0, 0, 10, 10, nil, nil)}
	out = string(Export(geometry.NewRect(0, 0, 20, 20), plain))
	if !strings.Contains(out, `stroke="rgb(0, 0, 0)"`) {
		t.Errorf("missing default stroke: %s", out)
	}
}

func TestExportSkipsRectlessDrawings(t *testing.T) {
	out := string(Export(geometry.NewRect(0, 0, 100, 100), []drawing.Drawing{{}}))
	if strings.Contains(out, "<path") || strings.Contains(out, "<rect") {
		t.Errorf("empty drawing should be skipped: %s", out)
	}
}

func TestExportBlocks(t *testing.T) {
	dir := t.TempDir()
	drawings := []drawing.Drawing{
		rectDrawing(10, 10, 90, 90, &drawing.RGB{}, nil),
		rectDrawing(200, 200, 280, 280, &drawing.RGB{}, nil),
	}
	blocks := []block.Block{
		{BBox: geometry.NewRect(0, 0, 100, 100), Index: 0},
		{BBox: geometry.NewRect(190, 190, 290, 290), Index: 1},
	}
	sel := block.NewSelection()
	sel.Toggle(0)
	sel.Toggle(1)

	results := ExportBlocks(dir, sel, blocks, drawings)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("block %d: %v", res.Index, res.Err)
		}
		want := filepath.Join(dir, fmt.Sprintf("block_%d.svg", res.Index+1))
		if res.Path != want {
			t.Errorf("path = %q, want %q", res.Path, want)
		}
		if _, err := os.Stat(res.Path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	}
}

func TestExportBlocksIsolatesFailures(t *testing.T) {
	drawings := []drawing.Drawing{rectDrawing(0, 0, 10, 10, &drawing.RGB{}, nil)}
	blocks := []block.Block{
		{BBox: geometry.NewRect(0, 0, 10, 10), Index: 0},
		{BBox: geometry.NewRect(0, 0, 10, 10), Index: 1},
	}
	sel := block.NewSelection()
	sel.Toggle(0)
	sel.Toggle(1)

	// nonexistent directory: every write fails, but each failure is
	// reported in its own result
	results := ExportBlocks(filepath.Join(t.TempDir(), "missing"), sel, blocks, drawings)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, res := range results {
		if res.Err == nil {
			t.Errorf("block %d: expected an error", res.Index)
		}
	}
}
