package puzzle

import "fmt"

// Selection narrows a catalog to the puzzles a run should cover.
// An empty Selection keeps every puzzle.
type Selection struct {
	IDs   []int
	Count int
}

// Select returns the puzzles matching a selection, in catalog order.
func (c Catalog) Select(sel Selection) ([]Puzzle, error) {
	if len(sel.IDs) > 0 {
		byID := make(map[int]Puzzle, len(c.Puzzles))
		for _, entry := range c.Puzzles {
			byID[entry.ID] = entry
		}
		selected := make([]Puzzle, 0, len(sel.IDs))
		for _, id := range sel.IDs {
			entry, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("puzzle %d not found in catalog", id)
			}
			selected = append(selected, entry)
		}
		return selected, nil
	}
	selected := make([]Puzzle, len(c.Puzzles))
	copy(selected, c.Puzzles)
	if sel.Count > 0 && sel.Count < len(selected) {
		selected = selected[:sel.Count]
	}
	return selected, nil
}

// ByID returns the puzzle with the given id.
func (c Catalog) ByID(id int) (Puzzle, error) {
	for _, entry := range c.Puzzles {
		if entry.ID == id {
			return entry, nil
		}
	}
	return Puzzle{}, fmt.Errorf("puzzle %d not found in catalog", id)
}
