package tower

import "fmt"

// Segment is one cell of a tile or floor ring.
// Size and Representative are display annotations rebuilt after every move.
type Segment struct {
	Color          Color
	Size           int  // Size of the owning group, 0 when not annotated
	Representative bool // Whether this cell carries the group's size label
}

// Empty reports whether the segment has no color.
func (s Segment) Empty() bool {
	return !s.Color.IsSet()
}

// stripped returns the segment without display annotations.
func (s Segment) stripped() Segment {
	return Segment{Color: s.Color}
}

// Position addresses a segment on the board.
// X is the index around the ring, Y is the floor index (0 is the bottom).
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Neighbors returns the four orthogonal neighbors in merge order:
// one floor up, one floor down, next index, previous index.
// X is not wrapped around the ring, so (-1, y) and (n, y) are produced
// and simply never resolve to a segment.
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{X: p.X, Y: p.Y + 1},
		{X: p.X, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X - 1, Y: p.Y},
	}
}

// Rand is the randomness source used by generators.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// segmentsFromColors builds a ring from a color list.
func segmentsFromColors(colors []Color) []Segment {
	segs := make([]Segment, len(colors))
	for i, c := range colors {
		segs[i] = Segment{Color: c}
	}
	return segs
}

// cloneSegments copies a ring including annotations.
func cloneSegments(src []Segment) []Segment {
	dst := make([]Segment, len(src))
	copy(dst, src)
	return dst
}
