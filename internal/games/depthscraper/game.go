// Package depthscraper adapts the tower engine to the terminal platform:
// keyboard actions move a cursor over the tower, pick tiles from the hand
// and commit placements.
package depthscraper

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/depthscraper/internal/config"
	"github.com/vovakirdan/depthscraper/internal/core"
	"github.com/vovakirdan/depthscraper/internal/games/depthscraper/tower"
	"github.com/vovakirdan/depthscraper/internal/registry"
)

// Registry identifiers.
const (
	IDMoves = "depthscraper"
	IDScore = "depthscraper_endless"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// Game implements the Depthscraper puzzle.
type Game struct {
	mode tower.Mode
	tick uint64

	cfg        config.DepthscraperConfig
	difficulty *config.DifficultyManager
	session    *tower.Session

	// Cursor: Y is the floor, X the ring index the selected tile is rotated to.
	cursor tower.Position

	// Last user-facing note, shown under the tower
	status string

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game with a move budget.
func New() *Game {
	return &Game{mode: tower.ModeMoves}
}

// NewEndless creates a game without a move budget; challenge rewards
// become score.
func NewEndless() *Game {
	return &Game{mode: tower.ModeScore}
}

func init() {
	registry.Register(IDMoves, func() registry.Game {
		return New()
	})
	registry.Register(IDScore, func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == tower.ModeScore {
		return IDScore
	}
	return IDMoves
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == tower.ModeScore {
		return "Depthscraper (Endless)"
	}
	return "Depthscraper"
}

// Reset loads the configuration and starts a new tower.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultDepthscraperConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	rng := rand.New(rand.NewSource(rc.Seed))
	g.session = tower.NewSession(tower.NewResolver(rng, g.options()))

	g.tick = 0
	g.status = ""
	g.cursor = tower.P(0, 0)
	g.session.Hover(g.cursor.Y, g.cursor.X)

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.checkScreenSize()
}

// options translates the loaded configuration into resolver options.
func (g *Game) options() tower.Options {
	return tower.Options{
		Mode:          g.mode,
		InitialFloors: g.cfg.Board.InitialFloors,
		HandSize:      g.cfg.Tiles.HandSize,
		InitialMoves:  g.cfg.Moves.Initial,
		Tiles: tower.TileOptions{
			Segments:    g.cfg.Board.Segments,
			ColorWeight: g.cfg.Tiles.ColorWeight,
			EmptyWeight: g.cfg.Tiles.EmptyWeight,
			MaxAttempts: g.cfg.Tiles.MaxAttempts,
		},
		Challenge: tower.ChallengeOptions{
			Baseline:     g.cfg.Challenge.Baseline,
			SizeJitter:   g.cfg.Challenge.SizeJitter,
			RewardJitter: g.cfg.Challenge.RewardJitter,
		},
		Tuner: difficultyTuner{dm: g.difficulty},
	}
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen can hold the tower and the hand.
func (g *Game) checkScreenSize() {
	minW, minH := layoutSize(g.cfg.Board.Segments)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies at most one action per kind and advances the tick counter.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}
	if g.session.Phase() == tower.PhaseGameOver {
		// Restart is handled by the platform.
		return core.StepResult{State: g.State()}
	}

	var events []string

	for _, a := range []core.Action{core.ActionSlot1, core.ActionSlot2, core.ActionSlot3} {
		if !in.Has(a) {
			continue
		}
		i, _ := a.SlotIndex()
		if g.session.SelectTile(i) {
			g.status = ""
		}
	}
	if in.Has(core.ActionBack) {
		g.session.Deselect()
		g.status = ""
	}

	g.moveCursor(in)

	if in.Has(core.ActionConfirm) {
		events = g.commit()
	}

	return core.StepResult{State: g.State(), Events: events}
}

// moveCursor applies the directional actions and refreshes the preview.
func (g *Game) moveCursor(in core.InputFrame) {
	moved := false
	height := g.session.State().Board.Height()
	n := g.cfg.Board.Segments

	if in.Has(core.ActionUp) {
		g.cursor.Y = core.Clamp(g.cursor.Y+1, 0, height-1)
		moved = true
	}
	if in.Has(core.ActionDown) {
		g.cursor.Y = core.Clamp(g.cursor.Y-1, 0, height-1)
		moved = true
	}
	if in.Has(core.ActionLeft) {
		g.cursor.X = core.Wrap(g.cursor.X-1, n)
		moved = true
	}
	if in.Has(core.ActionRight) {
		g.cursor.X = core.Wrap(g.cursor.X+1, n)
		moved = true
	}
	if moved {
		g.session.Hover(g.cursor.Y, g.cursor.X)
	}
}

// commit places the selected tile under the cursor. Rejected placements
// leave the game unchanged and only update the status line.
func (g *Game) commit() []string {
	out, err := g.session.Commit(g.cursor.Y)
	switch {
	case errors.Is(err, tower.ErrNoTile):
		g.status = "Pick a tile with 1-3"
		return nil
	case errors.Is(err, tower.ErrOverlap):
		g.status = "Tile does not fit there"
		return nil
	case err != nil:
		g.status = err.Error()
		return nil
	}

	events := []string{fmt.Sprintf("placed on floor %d: +%d", g.cursor.Y+1, out.ScoreDelta)}
	g.status = fmt.Sprintf("+%d", out.ScoreDelta)
	if out.CompletedFloors > 0 {
		events = append(events, fmt.Sprintf("%d floor(s) added", out.CompletedFloors))
	}
	if out.ChallengeMet {
		unit := "moves"
		if g.mode == tower.ModeScore {
			unit = "points"
		}
		events = append(events, fmt.Sprintf("challenge met: +%d %s", out.Reward, unit))
		g.status = fmt.Sprintf("+%d  Challenge met! +%d %s", out.ScoreDelta, out.Reward, unit)
	}
	if out.GameOver {
		events = append(events, "game over")
	}

	// Keep the cursor where it was; the next tile previews there once picked.
	g.session.Hover(g.cursor.Y, g.cursor.X)
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	return core.GameState{
		Score:     st.Score,
		MovesLeft: st.MovesLeft,
		Move:      st.Move,
		GameOver:  st.GameOver,
	}
}

// difficultyTuner raises the challenge baseline and the empty weight as
// the game progresses. A disabled manager returns the inputs unchanged.
type difficultyTuner struct {
	dm *config.DifficultyManager
}

// Tune implements tower.Tuner.
func (t difficultyTuner) Tune(score, move int, tiles tower.TileOptions, challenge tower.ChallengeOptions) (tower.TileOptions, tower.ChallengeOptions) {
	if t.dm == nil {
		return tiles, challenge
	}
	challenge.Baseline = t.dm.ChallengeBaseline(challenge.Baseline, score, move)
	tiles.EmptyWeight = t.dm.EmptyWeight(tiles.EmptyWeight, score, move)
	return tiles, challenge
}
