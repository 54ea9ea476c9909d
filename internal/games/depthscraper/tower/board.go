package tower

import "errors"

var (
	// ErrFloorOutOfRange indicates a floor index outside the board.
	ErrFloorOutOfRange = errors.New("floor out of range")
	// ErrOverlap indicates a colored tile segment over a colored floor segment.
	ErrOverlap = errors.New("tile overlaps colored segments")
	// ErrRingMismatch indicates a tile whose ring size differs from the board's.
	ErrRingMismatch = errors.New("tile ring size does not match board")
)

// Board is the tower: floors indexed bottom-up, growing only at the top.
type Board struct {
	Floors []Floor
}

// NewBoard returns a board of height empty floors with n segments each.
func NewBoard(n, height int) Board {
	floors := make([]Floor, height)
	for i := range floors {
		floors[i] = NewFloor(n)
	}
	return Board{Floors: floors}
}

// Height returns the number of floors.
func (b Board) Height() int {
	return len(b.Floors)
}

// Segments returns the ring size, or 0 for an empty board.
func (b Board) Segments() int {
	if len(b.Floors) == 0 {
		return 0
	}
	return len(b.Floors[0].Segments)
}

// InBounds reports whether p addresses an existing segment.
func (b Board) InBounds(p Position) bool {
	return p.Y >= 0 && p.Y < len(b.Floors) && p.X >= 0 && p.X < len(b.Floors[p.Y].Segments)
}

// Segment returns the segment at p and whether it exists.
func (b Board) Segment(p Position) (Segment, bool) {
	if !b.InBounds(p) {
		return Segment{}, false
	}
	return b.Floors[p.Y].Segments[p.X], true
}

// ColorAt returns the color at p, ColorNone if empty or out of bounds.
func (b Board) ColorAt(p Position) Color {
	s, _ := b.Segment(p)
	return s.Color
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	floors := make([]Floor, len(b.Floors))
	for i, f := range b.Floors {
		floors[i] = f.Clone()
	}
	return Board{Floors: floors}
}

// Place returns a new board with t placed on floor y.
// The receiver is not modified.
func (b Board) Place(y int, t Tile) (Board, error) {
	if y < 0 || y >= len(b.Floors) {
		return b, ErrFloorOutOfRange
	}
	if t.Len() != len(b.Floors[y].Segments) {
		return b, ErrRingMismatch
	}
	if !CanPlace(b.Floors[y], t) {
		return b, ErrOverlap
	}
	out := b.Clone()
	out.Floors[y] = Place(b.Floors[y], t)
	return out, nil
}

// Grow checks every floor for a fresh completion and appends one empty
// floor per completion. Returns the number of floors appended.
func (b *Board) Grow() int {
	n := b.Segments()
	added := 0
	// Only floors that existed before this call are checked; appended
	// floors are empty and are evaluated on the next move.
	height := len(b.Floors)
	for y := 0; y < height; y++ {
		if b.Floors[y].JustCompleted() {
			added++
		}
	}
	for range added {
		b.Floors = append(b.Floors, NewFloor(n))
	}
	return added
}

// ClearPreviews removes every floor's tile preview.
func (b *Board) ClearPreviews() {
	for i := range b.Floors {
		b.Floors[i].Preview = nil
	}
}

// FloorsWithSpace returns the indices of floors that have an empty segment.
func (b Board) FloorsWithSpace() []int {
	var ys []int
	for y, f := range b.Floors {
		if f.HasEmpty() {
			ys = append(ys, y)
		}
	}
	return ys
}

// PlacementPossible reports whether any tile fits any floor with space at
// any rotation.
func PlacementPossible(b Board, tiles []Tile) bool {
	ys := b.FloorsWithSpace()
	for _, t := range tiles {
		for _, y := range ys {
			for offset := range t.Len() {
				if CanPlace(b.Floors[y], CloneRotated(t, offset)) {
					return true
				}
			}
		}
	}
	return false
}

// neighborsColored reports whether every existing neighbor of p is colored.
// Missing neighbors (past the top, below the bottom, past either ring end)
// do not count as empty.
func (b Board) neighborsColored(p Position) bool {
	for _, np := range p.Neighbors() {
		s, ok := b.Segment(np)
		if !ok {
			continue
		}
		if s.Empty() {
			return false
		}
	}
	return true
}
