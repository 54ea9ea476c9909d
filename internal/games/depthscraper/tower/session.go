package tower

// Phase is the interaction phase of a session.
type Phase uint8

const (
	// PhaseAwaitingSelection waits for the player to pick a tile.
	PhaseAwaitingSelection Phase = iota
	// PhaseTilePreview has a tile selected and follows the cursor.
	PhaseTilePreview
	// PhaseResolving is entered while a committed move is applied.
	PhaseResolving
	// PhaseGameOver accepts no further moves.
	PhaseGameOver
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSelection:
		return "select"
	case PhaseTilePreview:
		return "preview"
	case PhaseResolving:
		return "resolving"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Session is the single owner of a game's state.
// All transitions go through its methods; readers get clones.
type Session struct {
	resolver *Resolver
	state    State
	phase    Phase
	selected int // -1 when no tile is selected
	hover    Position
	hovering bool
	last     Outcome
	history  []Outcome
}

// NewSession starts a game using r.
func NewSession(r *Resolver) *Session {
	s := &Session{
		resolver: r,
		selected: -1,
	}
	s.state = r.NewState()
	if !PlacementPossible(s.state.Board, s.state.Tiles) {
		s.state.GameOver = true
		s.phase = PhaseGameOver
	}
	return s
}

// Mode returns the resolver's mode.
func (s *Session) Mode() Mode {
	return s.resolver.opts.Mode
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// State returns a deep copy of the current state.
func (s *Session) State() State {
	return s.state.Clone()
}

// Selected returns the selected tile index.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// Hovered returns the cursor position of the last Hover call.
func (s *Session) Hovered() (Position, bool) {
	return s.hover, s.hovering
}

// LastOutcome returns the most recent resolved move.
func (s *Session) LastOutcome() (Outcome, bool) {
	return s.last, len(s.history) > 0
}

// Moves returns the number of resolved moves.
func (s *Session) Moves() int {
	return len(s.history)
}

// SelectTile picks tile i from the hand. Returns false if the selection is
// not allowed in the current phase.
func (s *Session) SelectTile(i int) bool {
	if s.phase == PhaseGameOver || s.phase == PhaseResolving {
		return false
	}
	if i < 0 || i >= len(s.state.Tiles) {
		return false
	}
	s.selected = i
	s.phase = PhaseTilePreview
	if s.hovering {
		s.refreshPreview()
	}
	return true
}

// Deselect drops the current selection and any preview.
func (s *Session) Deselect() {
	if s.phase != PhaseTilePreview {
		return
	}
	s.selected = -1
	s.phase = PhaseAwaitingSelection
	s.clearPreview()
}

// Hover moves the cursor to floor y, ring index x. With a tile selected the
// tile's offset follows x and the rotated tile is previewed on floor y.
func (s *Session) Hover(y, x int) bool {
	if s.phase == PhaseGameOver || s.phase == PhaseResolving {
		return false
	}
	if y < 0 || y >= s.state.Board.Height() {
		return false
	}
	s.hover = P(x, y)
	s.hovering = true
	if s.selected >= 0 {
		s.refreshPreview()
	}
	return true
}

// Commit places the selected tile on floor y at its current offset.
// On failure the state is unchanged and the selection is kept.
func (s *Session) Commit(y int) (Outcome, error) {
	if s.phase == PhaseGameOver {
		return Outcome{State: s.State()}, ErrGameOver
	}
	if s.selected < 0 {
		return Outcome{State: s.State()}, ErrNoTile
	}

	s.phase = PhaseResolving
	offset := s.state.Tiles[s.selected].Offset
	out, err := s.resolver.Resolve(s.state, s.selected, y, offset)
	if err != nil {
		s.phase = PhaseTilePreview
		return out, err
	}

	s.state = out.State
	s.selected = -1
	s.last = out
	s.history = append(s.history, out)
	if out.GameOver {
		s.phase = PhaseGameOver
	} else {
		s.phase = PhaseAwaitingSelection
	}
	return out, nil
}

// refreshPreview rebuilds the preview for the hovered floor.
func (s *Session) refreshPreview() {
	n := s.state.Board.Segments()
	offset := 0
	if n > 0 {
		offset = mod(s.hover.X, n)
	}

	tiles := make([]Tile, len(s.state.Tiles))
	copy(tiles, s.state.Tiles)
	tiles[s.selected] = s.state.Tiles[s.selected].Clone()
	tiles[s.selected].Offset = offset
	s.state.Tiles = tiles

	board := s.state.Board.Clone()
	board.ClearPreviews()
	preview := CloneRotated(tiles[s.selected], offset)
	board.Floors[s.hover.Y].Preview = &preview
	s.state.Board = board
}

func (s *Session) clearPreview() {
	board := s.state.Board.Clone()
	board.ClearPreviews()
	s.state.Board = board
}
