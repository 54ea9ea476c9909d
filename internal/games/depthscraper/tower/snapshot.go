package tower

// SegmentView is the read-only view of one board cell.
type SegmentView struct {
	Color          Color
	Size           int  // Owning group size, 0 for empty cells
	Representative bool // Cell carries the group's size label
	GroupCompleted bool
	Preview        Color // Color of the hovered tile over this cell
}

// FloorView is the read-only view of one floor.
type FloorView struct {
	Segments    []SegmentView
	Completed   bool
	Previewing  bool // A tile is hovered over this floor
	PreviewFits bool // The hovered tile can be committed here
}

// Snapshot is a copy of everything a renderer needs.
// It shares no memory with the session.
type Snapshot struct {
	Floors    []FloorView // Bottom floor first
	Tiles     []Tile
	Selected  int // -1 when nothing is selected
	Hover     Position
	Hovering  bool
	Challenge Challenge
	Score     int
	MovesLeft int
	Move      int
	Mode      Mode
	Phase     Phase
	GameOver  bool
}

// Snapshot returns a read-only copy of the session.
func (s *Session) Snapshot() Snapshot {
	st := s.state
	snap := Snapshot{
		Floors:    make([]FloorView, len(st.Board.Floors)),
		Tiles:     make([]Tile, len(st.Tiles)),
		Selected:  s.selected,
		Hover:     s.hover,
		Hovering:  s.hovering,
		Challenge: st.Challenge,
		Score:     st.Score,
		MovesLeft: st.MovesLeft,
		Move:      st.Move,
		Mode:      s.resolver.opts.Mode,
		Phase:     s.phase,
		GameOver:  st.GameOver,
	}
	for i, t := range st.Tiles {
		snap.Tiles[i] = t.Clone()
	}

	for y, f := range st.Board.Floors {
		fv := FloorView{
			Segments:  make([]SegmentView, len(f.Segments)),
			Completed: f.Completed,
		}
		if f.Preview != nil {
			fv.Previewing = true
			fv.PreviewFits = CanPlace(f, *f.Preview)
		}
		for x, seg := range f.Segments {
			sv := SegmentView{
				Color:          seg.Color,
				Size:           seg.Size,
				Representative: seg.Representative,
			}
			if g, ok := st.Groups.Lookup(P(x, y)); ok {
				sv.GroupCompleted = g.Completed
			}
			if f.Preview != nil && x < f.Preview.Len() {
				sv.Preview = f.Preview.Segments[x].Color
			}
			fv.Segments[x] = sv
		}
		snap.Floors[y] = fv
	}
	return snap
}
