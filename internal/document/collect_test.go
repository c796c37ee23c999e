package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/pdf"

	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/geometry"
)

// testCollector returns a collector with the y-flip for a 100x200 page.
func testCollector() *collector {
	return newCollector(geometry.AffineTransform{A: 1, D: -1, TY: 200})
}

type op struct {
	name string
	args []pdf.Object
}

func run(c *collector, ops []op) {
	for _, o := range ops {
		c.HandleOp(o.name, o.args)
	}
}

func n(v float64) pdf.Object { return pdf.Real(v) }

func TestCollectStrokedRect(t *testing.T) {
	c := testCollector()
	run(c, []op{
		{"w", []pdf.Object{n(2)}},
		{"RG", []pdf.Object{n(1), n(0), n(0)}},
		{"re", []pdf.Object{n(10), n(20), n(30), n(40)}},
		{"S", nil},
	})

	if len(c.drawings) != 1 {
		t.Fatalf("got %d drawings, want 1", len(c.drawings))
	}
	d := c.drawings[0]

	// y is flipped: user-space [20, 60] becomes page-space [140, 180]
	wantRect := geometry.NewRect(10, 140, 40, 180)
	if d.Rect == nil || *d.Rect != wantRect {
		t.Errorf("rect = %v, want %v", d.Rect, wantRect)
	}
	if d.LineWidth != 2 {
		t.Errorf("line width = %v, want 2", d.LineWidth)
	}
	if d.Stroke == nil || *d.Stroke != (drawing.RGB{R: 1}) {
		t.Errorf("stroke = %v, want red", d.Stroke)
	}
	if d.Fill != nil {
		t.Errorf("stroke-only drawing has fill %v", d.Fill)
	}
	if len(d.Segments) != 5 || d.Segments[4].Op != "Z" {
		t.Errorf("unexpected segments: %v", d.Segments)
	}
}

func TestCollectFilledPath(t *testing.T) {
	c := testCollector()
	run(c, []op{
		{"rg", []pdf.Object{n(0), n(0.5), n(1)}},
		{"m", []pdf.Object{n(0), n(0)}},
		{"l", []pdf.Object{n(50), n(0)}},
		{"l", []pdf.Object{n(50), n(50)}},
		{"h", nil},
		{"f", nil},
	})

	if len(c.drawings) != 1 {
		t.Fatalf("got %d drawings, want 1", len(c.drawings))
	}
	d := c.drawings[0]
	if d.Stroke != nil {
		t.Errorf("fill-only drawing has stroke %v", d.Stroke)
	}
	if d.LineWidth != 0 {
		t.Errorf("fill-only drawing has line width %v", d.LineWidth)
	}
	want := drawing.RGB{R: 0, G: 0.5, B: 1}
	if d.Fill == nil || *d.Fill != want {
		t.Errorf("fill = %v, want %v", d.Fill, want)
	}

	wantSegs := []drawing.Segment{
		{Op: "M", Points: []geometry.Point2D{{X: 0, Y: 200}}},
		{Op: "L", Points: []geometry.Point2D{{X: 50, Y: 200}}},
		{Op: "L", Points: []geometry.Point2D{{X: 50, Y: 150}}},
		{Op: "Z"},
	}
	if diff := cmp.Diff(wantSegs, d.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectCurveVariants(t *testing.T) {
	c := testCollector()
	run(c, []op{
		{"m", []pdf.Object{n(0), n(0)}},
		{"c", []pdf.Object{n(1), n(1), n(2), n(2), n(3), n(3)}},
		{"v", []pdf.Object{n(4), n(4), n(5), n(5)}},
		{"y", []pdf.Object{n(6), n(6), n(7), n(7)}},
		{"S", nil},
	})

	if len(c.drawings) != 1 {
		t.Fatalf("got %d drawings, want 1", len(c.drawings))
	}
	segs := c.drawings[0].Segments
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(segs))
	}
	for i := 1; i < 4; i++ {
		if segs[i].Op != "C" || len(segs[i].Points) != 3 {
			t.Errorf("segment %d = %v, want cubic with 3 points", i, segs[i])
		}
	}
	// "v" reuses the current point as first control
	if segs[2].Points[0] != (geometry.Point2D{X: 3, Y: 197}) {
		t.Errorf("v control point = %v", segs[2].Points[0])
	}
	// "y" duplicates the end point as second control
	if segs[3].Points[1] != segs[3].Points[2] {
		t.Errorf("y control/end mismatch: %v", segs[3].Points)
	}
}

func TestCollectStateStack(t *testing.T) {
	c := testCollector()
	run(c, []op{
		{"w", []pdf.Object{n(5)}},
		{"q", nil},
		{"w", []pdf.Object{n(1)}},
		{"cm", []pdf.Object{n(2), n(0), n(0), n(2), n(0), n(0)}},
		{"m", []pdf.Object{n(10), n(10)}},
		{"l", []pdf.Object{n(20), n(10)}},
		{"S", nil},
		{"Q", nil},
		{"m", []pdf.Object{n(10), n(10)}},
		{"l", []pdf.Object{n(20), n(10)}},
		{"S", nil},
	})

	if len(c.drawings) != 2 {
		t.Fatalf("got %d drawings, want 2", len(c.drawings))
	}
	scaled, plain := c.drawings[0], c.drawings[1]
	if scaled.LineWidth != 1 {
		t.Errorf("inner line width = %v, want 1", scaled.LineWidth)
	}
	if got := scaled.Segments[0].Points[0]; got != (geometry.Point2D{X: 20, Y: 180}) {
		t.Errorf("scaled point = %v, want (20,180)", got)
	}
	if plain.LineWidth != 5 {
		t.Errorf("restored line width = %v, want 5", plain.LineWidth)
	}
	if got := plain.Segments[0].Points[0]; got != (geometry.Point2D{X: 10, Y: 190}) {
		t.Errorf("unscaled point = %v, want (10,190)", got)
	}
}

func TestCollectDiscardAndMalformed(t *testing.T) {
	c := testCollector()
	run(c, []op{
		// "n" discards the path
		{"re", []pdf.Object{n(0), n(0), n(10), n(10)}},
		{"n", nil},
		// paint with no path is a no-op
		{"S", nil},
		// malformed operators are skipped
		{"re", []pdf.Object{n(1), pdf.Name("oops"), n(3), n(4)}},
		{"l", nil},
		{"f", nil},
		// a well-formed drawing still comes through afterwards
		{"re", []pdf.Object{n(0), n(0), n(10), n(10)}},
		{"f", nil},
	})

	if len(c.drawings) != 1 {
		t.Fatalf("got %d drawings, want 1", len(c.drawings))
	}
}

func TestCollectGrayAndCMYK(t *testing.T) {
	c := testCollector()
	run(c, []op{
		{"G", []pdf.Object{n(0.5)}},
		{"k", []pdf.Object{n(0), n(1), n(1), n(0)}},
		{"re", []pdf.Object{n(0), n(0), n(10), n(10)}},
		{"B", nil},
	})

	if len(c.drawings) != 1 {
		t.Fatalf("got %d drawings, want 1", len(c.drawings))
	}
	d := c.drawings[0]
	if d.Stroke == nil || *d.Stroke != (drawing.RGB{R: 0.5, G: 0.5, B: 0.5}) {
		t.Errorf("gray stroke = %v", d.Stroke)
	}
	if d.Fill == nil || *d.Fill != (drawing.RGB{R: 1, G: 0, B: 0}) {
		t.Errorf("cmyk fill = %v, want red", d.Fill)
	}
}
