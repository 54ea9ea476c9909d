package tower

// Floor is one ring of the tower.
type Floor struct {
	Segments  []Segment
	Preview   *Tile // Rotated tile currently hovered over this floor
	Completed bool  // Latched the first time JustCompleted is called
}

// NewFloor returns an empty floor with n segments.
func NewFloor(n int) Floor {
	return Floor{Segments: make([]Segment, n)}
}

// Clone returns a deep copy of the floor.
func (f Floor) Clone() Floor {
	out := Floor{
		Segments:  cloneSegments(f.Segments),
		Completed: f.Completed,
	}
	if f.Preview != nil {
		p := f.Preview.Clone()
		out.Preview = &p
	}
	return out
}

// IsFull reports whether every segment is colored.
func (f Floor) IsFull() bool {
	for _, s := range f.Segments {
		if s.Empty() {
			return false
		}
	}
	return true
}

// HasEmpty reports whether at least one segment is empty.
func (f Floor) HasEmpty() bool {
	return !f.IsFull()
}

// EmptyCount returns the number of empty segments.
func (f Floor) EmptyCount() int {
	count := 0
	for _, s := range f.Segments {
		if s.Empty() {
			count++
		}
	}
	return count
}

// CanPlace reports whether t fits on f: no index may be colored on both.
func CanPlace(f Floor, t Tile) bool {
	for i, s := range f.Segments {
		if i >= len(t.Segments) {
			break
		}
		if !s.Empty() && !t.Segments[i].Empty() {
			return false
		}
	}
	return true
}

// Place returns a new floor with the tile's colors filling the gaps.
// The floor's own colors always win and annotations are stripped.
// If t does not fit, an annotation-free copy of f is returned.
func Place(f Floor, t Tile) Floor {
	out := Floor{
		Segments:  make([]Segment, len(f.Segments)),
		Completed: f.Completed,
	}
	fits := CanPlace(f, t)
	for i, s := range f.Segments {
		out.Segments[i] = s.stripped()
		if fits && s.Empty() && i < len(t.Segments) {
			out.Segments[i] = t.Segments[i].stripped()
		}
	}
	return out
}

// JustCompleted reports whether the floor became full since the last call.
// The first call that sees a full floor latches Completed; every later call
// returns false. Call it exactly once per floor per move.
func (f *Floor) JustCompleted() bool {
	if f.Completed {
		return false
	}
	if !f.IsFull() {
		return false
	}
	f.Completed = true
	return true
}
