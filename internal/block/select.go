package block

import (
	"sort"

	"pdf-blocks/pkg/geometry"
)

// Selection is the set of selected block indices. It is owned by the
// interactive session and must be cleared whenever the block list is
// replaced, so that indices always refer to the current list.
type Selection struct {
	indices map[int]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{indices: make(map[int]bool)}
}

// Has reports whether the given block index is selected.
func (s *Selection) Has(idx int) bool {
	return s.indices[idx]
}

// Toggle flips membership of the given block index.
func (s *Selection) Toggle(idx int) {
	if s.indices[idx] {
		delete(s.indices, idx)
	} else {
		s.indices[idx] = true
	}
}

// Clear removes all indices.
func (s *Selection) Clear() {
	s.indices = make(map[int]bool)
}

// Len returns the number of selected blocks.
func (s *Selection) Len() int {
	return len(s.indices)
}

// Indices returns the selected indices in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.indices))
	for idx := range s.indices {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Pick returns the index of the innermost block containing the page-space
// point p: the smallest-area hit, ties broken by lowest index. The second
// return value is false when no block contains the point.
func Pick(p geometry.Point2D, blocks []Block) (int, bool) {
	best := -1
	var bestArea float64
	for _, b := range blocks {
		if !b.BBox.Contains(p) {
			continue
		}
		area := b.BBox.Area()
		if best < 0 || area < bestArea {
			best = b.Index
			bestArea = area
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// ToggleAt resolves the page-space point to the innermost containing
// block and toggles its selection. Returns false when the click hits no
// block; the selection is left unchanged in that case.
func (s *Selection) ToggleAt(p geometry.Point2D, blocks []Block) bool {
	idx, ok := Pick(p, blocks)
	if !ok {
		return false
	}
	s.Toggle(idx)
	return true
}
