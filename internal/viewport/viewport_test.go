package viewport

import (
	"math"
	"testing"

	"pdf-blocks/pkg/geometry"
)

func testViewport() *Viewport {
	v := New()
	v.PageW, v.PageH = 612, 792
	v.ViewW, v.ViewH = 400, 300
	return v
}

func TestToPageRoundTrip(t *testing.T) {
	v := testViewport()
	v.Zoom = 1.5
	v.OffsetX, v.OffsetY = 50, 80

	p := geometry.Point2D{X: 120, Y: 90}
	got := v.ToView(v.ToPage(p))
	if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
		t.Errorf("round trip changed the point: %+v -> %+v", p, got)
	}
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	v := testViewport()
	v.OffsetX, v.OffsetY = 100, 100

	view := geometry.Point2D{X: 30, Y: 40}
	before := v.ToPage(view)

	if !v.ZoomAt(view.X, view.Y, true) {
		t.Fatal("zoom in should succeed at 1.0")
	}
	if math.Abs(v.Zoom-1.1) > 1e-9 {
		t.Errorf("zoom = %v, want 1.1", v.Zoom)
	}

	after := v.ToPage(view)
	if math.Abs(after.X-before.X) > 1e-9 || math.Abs(after.Y-before.Y) > 1e-9 {
		t.Errorf("anchor moved: before %+v, after %+v", before, after)
	}
}

func TestZoomAtClampsAtBounds(t *testing.T) {
	v := testViewport()
	v.Zoom = v.MaxZoom
	if v.ZoomAt(0, 0, true) {
		t.Error("zoom in at the upper bound should be a no-op")
	}

	v.Zoom = v.MinZoom
	if v.ZoomAt(0, 0, false) {
		t.Error("zoom out at the lower bound should be a no-op")
	}
	if v.Zoom != v.MinZoom {
		t.Errorf("zoom drifted to %v", v.Zoom)
	}
}

func TestZoomAtClampsOffsets(t *testing.T) {
	v := testViewport()
	v.Zoom = 0.2
	// content (122.4 x 158.4) is smaller than the view in x, so the
	// horizontal offset must collapse to zero
	v.OffsetX, v.OffsetY = 500, 500
	v.ZoomAt(0, 0, false)

	if v.OffsetX != 0 {
		t.Errorf("OffsetX = %v, want 0", v.OffsetX)
	}
	if _, ch := v.ContentSize(); v.OffsetY < 0 || v.OffsetY > math.Max(0, ch-v.ViewH) {
		t.Errorf("OffsetY %v outside the scrollable range", v.OffsetY)
	}
}

func TestSetZoom(t *testing.T) {
	v := testViewport()
	if !v.SetZoom(2.0) || v.Zoom != 2.0 {
		t.Errorf("SetZoom(2.0): zoom = %v", v.Zoom)
	}
	if !v.SetZoom(99) || v.Zoom != v.MaxZoom {
		t.Errorf("SetZoom should clamp to MaxZoom, got %v", v.Zoom)
	}
	if v.SetZoom(v.MaxZoom) {
		t.Error("setting the current zoom should report no change")
	}
}
