package app

import (
	"errors"
	"testing"

	"pdf-blocks/internal/document"
	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/geometry"
)

func pageWithRect(x0, y0, x1, y1 float64) *document.Page {
	r := geometry.NewRect(x0, y0, x1, y1)
	return &document.Page{
		Width:  612,
		Height: 792,
		Drawings: []drawing.Drawing{{
			Rect: &r,
			Segments: []drawing.Segment{
				{Op: "M", Points: []geometry.Point2D{{X: x0, Y: y0}}},
				{Op: "L", Points: []geometry.Point2D{{X: x1, Y: y0}}},
				{Op: "L", Points: []geometry.Point2D{{X: x1, Y: y1}}},
				{Op: "L", Points: []geometry.Point2D{{X: x0, Y: y1}}},
				{Op: "Z"},
			},
			LineWidth: 1,
			Stroke:    &drawing.RGB{},
		}},
	}
}

func TestDetectBlocksRequiresPage(t *testing.T) {
	s := NewState()
	if _, err := s.DetectBlocks(); !errors.Is(err, ErrNoDocument) {
		t.Errorf("err = %v, want ErrNoDocument", err)
	}
}

func TestDetectBlocksEmitsEvent(t *testing.T) {
	s := NewState()
	s.Page = pageWithRect(10, 10, 110, 110)

	var fired bool
	s.On(EventBlocksDetected, func(data interface{}) { fired = true })

	blocks, err := s.DetectBlocks()
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if !fired {
		t.Error("EventBlocksDetected not emitted")
	}
}

func TestToggleAtUpdatesSelection(t *testing.T) {
	s := NewState()
	s.Page = pageWithRect(10, 10, 110, 110)
	if _, err := s.DetectBlocks(); err != nil {
		t.Fatal(err)
	}

	var fired int
	s.On(EventSelectionChanged, func(data interface{}) { fired++ })

	if !s.ToggleAt(geometry.Point2D{X: 50, Y: 50}) {
		t.Fatal("click inside the block should hit")
	}
	if s.Selection.Len() != 1 {
		t.Errorf("selection size = %d, want 1", s.Selection.Len())
	}
	if s.ToggleAt(geometry.Point2D{X: 500, Y: 500}) {
		t.Error("click outside all blocks should miss")
	}
	if fired != 1 {
		t.Errorf("EventSelectionChanged fired %d times, want 1", fired)
	}
}

func TestExportSelectedErrors(t *testing.T) {
	s := NewState()
	if _, err := s.ExportSelected(t.TempDir()); !errors.Is(err, ErrNoDocument) {
		t.Errorf("err = %v, want ErrNoDocument", err)
	}

	s.Page = pageWithRect(10, 10, 110, 110)
	if _, err := s.ExportSelected(t.TempDir()); !errors.Is(err, ErrNoBlocks) {
		t.Errorf("err = %v, want ErrNoBlocks", err)
	}

	if _, err := s.DetectBlocks(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ExportSelected(t.TempDir()); !errors.Is(err, ErrNoSelection) {
		t.Errorf("err = %v, want ErrNoSelection", err)
	}
}

func TestExportSelectedWritesFiles(t *testing.T) {
	s := NewState()
	s.Page = pageWithRect(10, 10, 110, 110)
	if _, err := s.DetectBlocks(); err != nil {
		t.Fatal(err)
	}
	s.ToggleAt(geometry.Point2D{X: 50, Y: 50})

	results, err := s.ExportSelected(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Errorf("results = %+v", results)
	}
}

func TestSetPageRequiresDocument(t *testing.T) {
	s := NewState()
	if err := s.SetPage(0); !errors.Is(err, ErrNoDocument) {
		t.Errorf("err = %v, want ErrNoDocument", err)
	}
}
