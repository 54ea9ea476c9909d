package tower

import "errors"

var (
	// ErrGameOver indicates a move after the game ended.
	ErrGameOver = errors.New("game is over")
	// ErrNoTile indicates a move without a valid tile selection.
	ErrNoTile = errors.New("no tile selected")
)

// Mode selects how challenge rewards are paid out.
type Mode uint8

const (
	// ModeMoves limits the game by a move budget; rewards add moves.
	ModeMoves Mode = iota
	// ModeScore has no move budget; rewards add score.
	ModeScore
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeMoves:
		return "moves"
	case ModeScore:
		return "score"
	default:
		return "unknown"
	}
}

// State is the complete game state between moves.
type State struct {
	Board     Board
	Groups    *GroupRegistry
	Tiles     []Tile
	Challenge Challenge
	Move      int // Moves resolved so far
	MovesLeft int // Only meaningful in ModeMoves
	Score     int
	GameOver  bool
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Board = s.Board.Clone()
	if s.Groups != nil {
		out.Groups = s.Groups.Clone()
	}
	out.Tiles = make([]Tile, len(s.Tiles))
	for i, t := range s.Tiles {
		out.Tiles[i] = t.Clone()
	}
	return out
}

// Outcome describes one resolved move.
type Outcome struct {
	State           State
	ScoreDelta      int   // Sum of sizes of groups created this move
	NewGroups       []int // IDs of groups created this move, ascending
	CompletedGroups []int // IDs of groups that completed this move
	CompletedFloors int   // Floors appended this move
	ChallengeMet    bool
	Reward          int // Moves (ModeMoves) or score (ModeScore) granted
	GameOver        bool
}

// Tuner adjusts generation parameters as the game progresses.
type Tuner interface {
	Tune(score, move int, tiles TileOptions, challenge ChallengeOptions) (TileOptions, ChallengeOptions)
}

// Options configures a Resolver.
type Options struct {
	Mode          Mode
	InitialFloors int
	HandSize      int
	InitialMoves  int
	Tiles         TileOptions
	Challenge     ChallengeOptions
	Tuner         Tuner // Optional
}

// DefaultOptions returns the reference game setup.
func DefaultOptions() Options {
	return Options{
		Mode:          ModeMoves,
		InitialFloors: 4,
		HandSize:      3,
		InitialMoves:  25,
		Tiles:         DefaultTileOptions(),
		Challenge:     DefaultChallengeOptions(),
	}
}

// Resolver applies moves to states.
// It owns the randomness used to refill the hand and regenerate challenges.
type Resolver struct {
	rng  Rand
	opts Options
}

// NewResolver creates a resolver drawing from rng.
func NewResolver(rng Rand, opts Options) *Resolver {
	def := DefaultOptions()
	if opts.InitialFloors < 1 {
		opts.InitialFloors = def.InitialFloors
	}
	if opts.HandSize < 1 {
		opts.HandSize = def.HandSize
	}
	if opts.Mode == ModeMoves && opts.InitialMoves < 1 {
		opts.InitialMoves = def.InitialMoves
	}
	opts.Tiles = NewFactory(rng, opts.Tiles).Options()
	return &Resolver{rng: rng, opts: opts}
}

// Options returns the effective options.
func (r *Resolver) Options() Options {
	return r.opts
}

// NewState returns the opening state: empty floors, a fresh hand and a
// first challenge.
func (r *Resolver) NewState() State {
	tiles, challenge := r.tuned(0, 0)
	st := State{
		Board:  NewBoard(tiles.Segments, r.opts.InitialFloors),
		Groups: NewGroupRegistry(),
		Tiles:  NewFactory(r.rng, tiles).CreateHand(r.opts.HandSize),
	}
	st.Challenge = GenerateChallenge(r.rng, st.Groups, challenge)
	if r.opts.Mode == ModeMoves {
		st.MovesLeft = r.opts.InitialMoves
	}
	return st
}

// Resolve places tile tileIndex, rotated by offset, on floor y.
// The input state is never modified; on error the returned outcome carries
// the input state unchanged.
func (r *Resolver) Resolve(st State, tileIndex, y, offset int) (Outcome, error) {
	if st.GameOver {
		return Outcome{State: st}, ErrGameOver
	}
	if tileIndex < 0 || tileIndex >= len(st.Tiles) {
		return Outcome{State: st}, ErrNoTile
	}

	rotated := CloneRotated(st.Tiles[tileIndex], offset)
	board, err := st.Board.Place(y, rotated)
	if err != nil {
		return Outcome{State: st}, err
	}

	next := st.Clone()
	next.Board = board
	next.Board.ClearPreviews()

	out := Outcome{}
	out.CompletedFloors = next.Board.Grow()

	if r.opts.Mode == ModeMoves {
		next.MovesLeft--
	}

	before := make(map[int]struct{}, next.Groups.Len())
	for _, id := range next.Groups.IDs() {
		before[id] = struct{}{}
	}

	next.Groups.Integrate(next.Board, y, rotated)

	// A merge pays the full size of the merged group again.
	for _, g := range next.Groups.Groups() {
		if _, old := before[g.ID]; old {
			continue
		}
		out.NewGroups = append(out.NewGroups, g.ID)
		out.ScoreDelta += g.Size()
	}
	next.Score += out.ScoreDelta

	out.CompletedGroups = next.Groups.MarkCompleted(next.Board, next.Move)

	tileOpts, challengeOpts := r.tuned(next.Score, next.Move)

	if next.Challenge.SatisfiedBy(next.Groups, next.Move) {
		out.ChallengeMet = true
		out.Reward = next.Challenge.RewardMoves
		switch r.opts.Mode {
		case ModeMoves:
			next.MovesLeft += out.Reward
		case ModeScore:
			next.Score += out.Reward
		}
		next.Challenge = GenerateChallenge(r.rng, next.Groups, challengeOpts)
	}

	next.Board = next.Groups.Annotate(next.Board)

	next.Tiles[tileIndex] = NewFactory(r.rng, tileOpts).Create()

	if r.opts.Mode == ModeMoves && next.MovesLeft <= 0 {
		next.GameOver = true
	}
	if !PlacementPossible(next.Board, next.Tiles) {
		next.GameOver = true
	}
	out.GameOver = next.GameOver

	next.Move++
	out.State = next
	return out, nil
}

// tuned returns the generation options for the given progress.
func (r *Resolver) tuned(score, move int) (TileOptions, ChallengeOptions) {
	tiles, challenge := r.opts.Tiles, r.opts.Challenge
	if r.opts.Tuner != nil {
		tiles, challenge = r.opts.Tuner.Tune(score, move, tiles, challenge)
	}
	return tiles, challenge
}
