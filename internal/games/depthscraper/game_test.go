package depthscraper

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/depthscraper/internal/config"
	"github.com/vovakirdan/depthscraper/internal/core"
	"github.com/vovakirdan/depthscraper/internal/games/depthscraper/tower"
	"github.com/vovakirdan/depthscraper/internal/registry"
)

// isolate keeps user config files and CLI settings out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
}

// writeConfig writes a config file and points the game at it.
func writeConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "depthscraper.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
}

func newGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	g.Reset(cfg)
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{IDMoves, "Depthscraper"},
		{IDScore, "Depthscraper (Endless)"},
	}
	for _, tt := range tests {
		g, err := registry.Create(tt.id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", tt.id, err)
		}
		if g.ID() != tt.id || g.Title() != tt.title {
			t.Errorf("Create(%q) = %s/%q", tt.id, g.ID(), g.Title())
		}
	}
}

func TestResetState(t *testing.T) {
	isolate(t)

	g := newGame(t, New(), 1)
	st := g.State()
	if st.Score != 0 || st.Move != 0 || st.GameOver {
		t.Errorf("Fresh state = %+v", st)
	}
	if st.MovesLeft != 25 {
		t.Errorf("MovesLeft = %d, expected 25", st.MovesLeft)
	}

	snap := g.Snapshot()
	if len(snap.Tower.Floors) != 4 || len(snap.Tower.Tiles) != 3 {
		t.Errorf("Tower has %d floors and %d tiles, expected 4 and 3", len(snap.Tower.Floors), len(snap.Tower.Tiles))
	}
	if snap.Tower.Selected != -1 {
		t.Errorf("Selected = %d, expected none", snap.Tower.Selected)
	}

	e := newGame(t, NewEndless(), 1)
	if e.State().MovesLeft != 0 {
		t.Errorf("Endless MovesLeft = %d, expected 0", e.State().MovesLeft)
	}
}

func TestPlaceTile(t *testing.T) {
	isolate(t)

	g := newGame(t, New(), 7)
	colored := g.Snapshot().Tower.Tiles[0].ColoredCount()

	press(g, core.ActionSlot1)
	if g.Snapshot().Tower.Selected != 0 {
		t.Fatal("Slot1 should select the first tile")
	}
	res := press(g, core.ActionConfirm)

	if res.State.Move != 1 {
		t.Errorf("Move = %d, expected 1", res.State.Move)
	}
	if res.State.Score != colored {
		t.Errorf("Score = %d, expected %d for one tile on an empty tower", res.State.Score, colored)
	}
	if len(res.Events) == 0 {
		t.Error("A placement should report an event")
	}
	if g.Snapshot().Tower.Selected != -1 {
		t.Error("Placing should drop the selection")
	}
}

func TestRejectedPlacementIsFree(t *testing.T) {
	isolate(t)

	g := newGame(t, New(), 3)
	press(g, core.ActionSlot1)
	press(g, core.ActionConfirm)
	before := g.State()

	// Fresh tiles always color segment 0, which is now taken on floor 1.
	press(g, core.ActionSlot1)
	snap := g.Snapshot()
	if snap.Tower.Floors[0].PreviewFits {
		t.Error("Preview should report the collision")
	}

	res := press(g, core.ActionConfirm)
	if res.State != before {
		t.Errorf("State after rejected move = %+v, expected %+v", res.State, before)
	}
	if len(res.Events) != 0 {
		t.Errorf("Rejected move reported events: %v", res.Events)
	}
	if g.Snapshot().Status == "" {
		t.Error("Rejected move should explain itself in the status line")
	}
	if g.Snapshot().Tower.Selected != 0 {
		t.Error("Rejected move should keep the selection")
	}
}

func TestConfirmWithoutSelection(t *testing.T) {
	isolate(t)

	g := newGame(t, New(), 1)
	res := press(g, core.ActionConfirm)
	if res.State.Move != 0 {
		t.Errorf("Move = %d, expected 0", res.State.Move)
	}
}

func TestCursor(t *testing.T) {
	isolate(t)

	g := newGame(t, New(), 1)

	press(g, core.ActionDown)
	if c := g.Snapshot().Cursor; c.Y != 0 {
		t.Errorf("Cursor floor = %d, expected clamp at 0", c.Y)
	}
	for range 10 {
		press(g, core.ActionUp)
	}
	if c := g.Snapshot().Cursor; c.Y != 3 {
		t.Errorf("Cursor floor = %d, expected clamp at 3", c.Y)
	}

	press(g, core.ActionLeft)
	if c := g.Snapshot().Cursor; c.X != 5 {
		t.Errorf("Cursor ring index = %d, expected wrap to 5", c.X)
	}
	press(g, core.ActionRight)
	press(g, core.ActionRight)
	if c := g.Snapshot().Cursor; c.X != 1 {
		t.Errorf("Cursor ring index = %d, expected wrap to 1", c.X)
	}
}

func TestRotationFollowsCursor(t *testing.T) {
	isolate(t)

	g := newGame(t, New(), 1)
	press(g, core.ActionSlot2)
	press(g, core.ActionRight)
	press(g, core.ActionRight)
	press(g, core.ActionUp)

	snap := g.Snapshot().Tower
	if snap.Tiles[1].Offset != 2 {
		t.Errorf("Offset = %d, expected 2", snap.Tiles[1].Offset)
	}
	if !snap.Floors[1].Previewing {
		t.Error("Floor 2 should show the preview")
	}
	if snap.Floors[0].Previewing {
		t.Error("Floor 1 should no longer show the preview")
	}

	press(g, core.ActionBack)
	snap = g.Snapshot().Tower
	if snap.Selected != -1 || snap.Floors[1].Previewing {
		t.Error("Back should drop the selection and the preview")
	}
}

func TestGameOver(t *testing.T) {
	isolate(t)
	writeConfig(t, "moves:\n  initial: 1\nchallenge:\n  baseline: 50\n")

	g := newGame(t, New(), 5)
	press(g, core.ActionSlot1)
	res := press(g, core.ActionConfirm)

	if !res.State.GameOver {
		t.Fatalf("State = %+v, expected game over", res.State)
	}

	res = press(g, core.ActionSlot1)
	if g.Snapshot().Tower.Selected != -1 {
		t.Error("Input after game over should be ignored")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Out of moves") {
		t.Errorf("Game over screen missing overlay:\n%s", out)
	}
	if res.State.Move != 1 {
		t.Errorf("Move = %d, expected 1", res.State.Move)
	}
}

func TestDifficultyPreset(t *testing.T) {
	isolate(t)

	tests := []struct {
		preset string
		moves  int
	}{
		{"easy", 35},
		{"normal", 25},
		{"hard", 20},
		{"fixed", 25},
		{"bogus", 25},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			SetDifficultyPreset(tt.preset)
			g := newGame(t, New(), 1)
			if got := g.State().MovesLeft; got != tt.moves {
				t.Errorf("MovesLeft = %d, expected %d", got, tt.moves)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	writeConfig(t, "board:\n  segments: 8\n  initial_floors: 2\n")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 120, ScreenH: 40, Seed: 1})
	snap := g.Snapshot()
	if len(snap.Tower.Floors) != 2 {
		t.Fatalf("Floors = %d, expected 2", len(snap.Tower.Floors))
	}
	if n := len(snap.Tower.Floors[0].Segments); n != 8 {
		t.Errorf("Segments = %d, expected 8", n)
	}
}

func TestBadConfigFallsBack(t *testing.T) {
	isolate(t)
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	g := newGame(t, New(), 1)
	if g.State().MovesLeft != 25 {
		t.Errorf("MovesLeft = %d, expected defaults on a missing config", g.State().MovesLeft)
	}
}

func TestDeterminism(t *testing.T) {
	isolate(t)

	script := [][]core.Action{
		{core.ActionSlot1}, {core.ActionConfirm},
		{core.ActionUp}, {core.ActionSlot2}, {core.ActionRight}, {core.ActionConfirm},
		{core.ActionSlot3}, {core.ActionLeft}, {core.ActionLeft}, {core.ActionConfirm},
		{core.ActionDown}, {core.ActionSlot1}, {core.ActionRight}, {core.ActionConfirm},
		{core.ActionUp}, {core.ActionUp}, {core.ActionSlot2}, {core.ActionConfirm},
	}

	run := func(g *Game) Snapshot {
		newGame(t, g, 12345)
		for range 5 {
			for _, step := range script {
				press(g, step...)
			}
		}
		return g.Snapshot()
	}

	for _, mk := range []func() *Game{New, NewEndless} {
		a := run(mk())
		b := run(mk())
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: same seed and input produced different games", a.Mode)
		}
		if a.Tower.Move == 0 {
			t.Errorf("%s: script placed no tiles", a.Mode)
		}
	}
}

func TestTooSmall(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, Seed: 1})
	press(g, core.ActionSlot1)
	press(g, core.ActionConfirm)
	if g.State().Move != 0 {
		t.Error("Input should be ignored while the window is too small")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("Expected too-small message, got:\n%s", screen.String())
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	isolate(t)

	g := newGame(t, New(), 1)
	press(g, core.ActionSlot1)
	press(g, core.ActionConfirm)

	g.Resize(30, 10)
	if !g.Snapshot().TooSmall {
		t.Error("30x10 should be too small")
	}
	g.Resize(100, 30)
	if g.Snapshot().TooSmall {
		t.Error("100x30 should fit")
	}
	if g.State().Move != 1 {
		t.Errorf("Move = %d after resize, expected 1", g.State().Move)
	}
}

func TestRender(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		game *Game
		want []string
	}{
		{"moves", New(), []string{"DEPTHSCRAPER", "Score: 0", "Moves: 25", "Hand", "Challenge", "Reward: +", "moves"}},
		{"endless", NewEndless(), []string{"DEPTHSCRAPER", "Endless", "points"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, tt.game, 1)
			press(g, core.ActionSlot1)

			screen := core.NewScreen(80, 24)
			g.Render(screen)
			out := screen.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("Render missing %q:\n%s", w, out)
				}
			}
			if !strings.ContainsRune(out, previewGlyph) {
				t.Error("Selected tile should be previewed on the tower")
			}
		})
	}
}

func TestSizeLabel(t *testing.T) {
	tests := []struct {
		size int
		want string
	}{
		{1, "█1█"},
		{12, "12█"},
		{123, "123"},
		{4567, "999"},
	}
	for _, tt := range tests {
		if got := sizeLabel(tt.size); got != tt.want {
			t.Errorf("sizeLabel(%d) = %q, expected %q", tt.size, got, tt.want)
		}
	}
}

func TestDifficultyTuner(t *testing.T) {
	cfg := config.DefaultDepthscraperConfig().Difficulty
	baseTiles := tower.DefaultTileOptions()
	baseChallenge := tower.DefaultChallengeOptions()

	off := difficultyTuner{dm: config.NewDifficultyManager(cfg)}
	tiles, ch := off.Tune(1000, 1000, baseTiles, baseChallenge)
	if tiles != baseTiles || ch != baseChallenge {
		t.Errorf("Disabled tuner changed options: %+v %+v", tiles, ch)
	}

	cfg.Enabled = true
	on := difficultyTuner{dm: config.NewDifficultyManager(cfg)}

	tiles, ch = on.Tune(0, 0, baseTiles, baseChallenge)
	if tiles != baseTiles || ch != baseChallenge {
		t.Errorf("Tuner at level 0 changed options: %+v %+v", tiles, ch)
	}

	tiles, ch = on.Tune(cfg.Progression.MaxAt, 0, baseTiles, baseChallenge)
	if ch.Baseline != baseChallenge.Baseline+cfg.Scaling.BaselineGrowth {
		t.Errorf("Baseline = %d at max difficulty", ch.Baseline)
	}
	if tiles.EmptyWeight != baseTiles.EmptyWeight+cfg.Scaling.EmptyWeightGrowth {
		t.Errorf("EmptyWeight = %d at max difficulty", tiles.EmptyWeight)
	}
	if tiles.Segments != baseTiles.Segments || ch.SizeJitter != baseChallenge.SizeJitter {
		t.Error("Tuner should only touch the baseline and the empty weight")
	}
}
