// Package app provides application lifecycle management and events.
package app

import (
	"errors"
	"fmt"
	"sync"

	"pdf-blocks/internal/block"
	"pdf-blocks/internal/document"
	"pdf-blocks/internal/drawing"
	"pdf-blocks/internal/svg"
	"pdf-blocks/pkg/geometry"
)

// Sentinel errors for operations that need a loaded document or a
// non-empty detection result.
var (
	ErrNoDocument  = errors.New("no document loaded")
	ErrNoBlocks    = errors.New("no blocks detected")
	ErrNoSelection = errors.New("no blocks selected")
)

// State holds the application state: the open document, the current
// page, detected blocks and the selection.
type State struct {
	mu sync.RWMutex

	Document *document.Document
	Page     *document.Page

	Blocks    []block.Block
	Selection *block.Selection

	Options block.Options

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventDocumentLoaded EventType = iota
	EventPageChanged
	EventBlocksDetected
	EventSelectionChanged
	EventExportFinished
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		Selection: block.NewSelection(),
		Options:   block.DefaultOptions(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadDocument opens a PDF and shows its first page. A previously open
// document is closed first.
func (s *State) LoadDocument(path string) error {
	doc, err := document.Open(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.Document != nil {
		s.Document.Close()
	}
	s.Document = doc
	s.Page = nil
	s.Blocks = nil
	s.Selection.Clear()
	s.mu.Unlock()

	s.Emit(EventDocumentLoaded, path)
	return s.SetPage(0)
}

// Close releases the open document, if any.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Document == nil {
		return nil
	}
	err := s.Document.Close()
	s.Document = nil
	s.Page = nil
	s.Blocks = nil
	s.Selection.Clear()
	return err
}

// SetPage loads the given zero-based page and clears the detection
// result and selection.
func (s *State) SetPage(number int) error {
	s.mu.RLock()
	doc := s.Document
	s.mu.RUnlock()
	if doc == nil {
		return ErrNoDocument
	}
	if number < 0 || number >= doc.NumPages() {
		return fmt.Errorf("page %d out of range [0, %d)", number, doc.NumPages())
	}

	page, err := doc.Page(number)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Page = page
	s.Blocks = nil
	s.Selection.Clear()
	s.mu.Unlock()

	s.Emit(EventPageChanged, page)
	return nil
}

// DetectBlocks runs candidate detection on the current page and
// replaces the selection.
func (s *State) DetectBlocks() ([]block.Block, error) {
	s.mu.RLock()
	page := s.Page
	opts := s.Options
	s.mu.RUnlock()
	if page == nil {
		return nil, ErrNoDocument
	}

	blocks := block.Detect(page.Drawings, opts)

	s.mu.Lock()
	s.Blocks = blocks
	s.Selection.Clear()
	s.mu.Unlock()

	s.Emit(EventBlocksDetected, blocks)
	return blocks, nil
}

// ToggleAt toggles the innermost block containing the page-space point
// p. It reports whether a block was hit.
func (s *State) ToggleAt(p geometry.Point2D) bool {
	s.mu.Lock()
	hit := s.Selection.ToggleAt(p, s.Blocks)
	s.mu.Unlock()

	if hit {
		s.Emit(EventSelectionChanged, p)
	}
	return hit
}

// ExportSelected writes one SVG per selected block into dir and
// returns the per-region results.
func (s *State) ExportSelected(dir string) ([]svg.Result, error) {
	s.mu.RLock()
	page := s.Page
	blocks := s.Blocks
	sel := s.Selection
	s.mu.RUnlock()

	if page == nil {
		return nil, ErrNoDocument
	}
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	if sel.Len() == 0 {
		return nil, ErrNoSelection
	}

	results := svg.ExportBlocks(dir, sel, blocks, page.Drawings)
	s.Emit(EventExportFinished, results)
	return results, nil
}

// CurrentPage returns the displayed page, or nil.
func (s *State) CurrentPage() *document.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Page
}

// CurrentBlocks returns the last detection result.
func (s *State) CurrentBlocks() []block.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Blocks
}

// PageDrawings returns the drawings of the displayed page.
func (s *State) PageDrawings() []drawing.Drawing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Page == nil {
		return nil
	}
	return s.Page.Drawings
}
