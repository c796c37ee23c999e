// Package document opens PDF files and extracts the vector drawing
// primitives of individual pages.
package document

import (
	"fmt"
	"log"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"

	"pdf-blocks/internal/drawing"
	"pdf-blocks/pkg/geometry"
)

// Document is an open PDF file.
type Document struct {
	Path string

	r        *pdf.Reader
	numPages int
}

// Page holds one page's dimensions and vector drawings. Coordinates are
// in page space: page units with the origin at the top-left corner and y
// growing downwards.
type Page struct {
	Number   int // zero-based
	Width    float64
	Height   float64
	Drawings []drawing.Drawing
}

// Open opens the PDF file at the given path.
func Open(path string) (*Document, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	n, err := pagetree.NumPages(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("page tree of %s: %w", path, err)
	}
	return &Document{Path: path, r: r, numPages: n}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.r.Close()
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return d.numPages
}

// Page loads the drawings of the given zero-based page. A content stream
// that fails to parse after partial progress still yields the drawings
// collected up to that point.
func (d *Document) Page(number int) (*Page, error) {
	if number < 0 || number >= d.numPages {
		return nil, fmt.Errorf("page %d out of range [0, %d)", number, d.numPages)
	}

	pageDict, err := pagetree.GetPage(d.r, number)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}

	box, err := pdf.GetRectangle(d.r, pageDict["MediaBox"])
	if err != nil || box == nil {
		// Letter-sized fallback for files without a usable MediaBox.
		box = &pdf.Rectangle{LLx: 0, LLy: 0, URx: 612, URy: 792}
	}
	width := box.URx - box.LLx
	height := box.URy - box.LLy

	// Flip PDF user space (origin bottom-left) into page space
	// (origin top-left), dropping the MediaBox offset.
	flip := geometry.AffineTransform{
		A: 1, TX: -box.LLx,
		D: -1, TY: box.URy,
	}
	col := newCollector(flip)

	rd := reader.New(d.r, nil)
	rd.EveryOp = func(op string, args []pdf.Object) error {
		col.HandleOp(op, args)
		return nil
	}
	if err := rd.ParsePage(pageDict, graphics.IdentityMatrix); err != nil {
		if len(col.drawings) == 0 {
			return nil, fmt.Errorf("page %d contents: %w", number, err)
		}
		log.Printf("page %d: content stream truncated after %d drawings: %v",
			number+1, len(col.drawings), err)
	}

	return &Page{
		Number:   number,
		Width:    width,
		Height:   height,
		Drawings: col.drawings,
	}, nil
}
