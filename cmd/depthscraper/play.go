package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/depthscraper/internal/games/depthscraper"
	"github.com/vovakirdan/depthscraper/internal/platform/tui"
	"github.com/vovakirdan/depthscraper/internal/registry"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Depthscraper.

Controls:
  1-3          - Pick a tile from the hand
  Left/Right   - Rotate the tower under the tile
  Up/Down      - Move to another floor
  Enter/Space  - Place the tile
  Esc          - Put the tile back
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Modes:
  moves  - Every placement costs a move; challenges refill the budget
  score  - Endless; challenge rewards become points

Difficulty options:
  easy   - More moves, challenges grow slowly
  normal - Default budget, challenges grow with the score
  hard   - Fewer moves, challenges start bigger
  fixed  - No progression, stays at the config's values

Examples:
  depthscraper play
  depthscraper play --mode score
  depthscraper play --difficulty hard --name ada
  depthscraper play --config ./my-depthscraper.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "moves", "Game mode: moves or score")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagName, "name", "", "Name to record scores under")
}

// modeID maps a --mode value to a registered game ID.
func modeID(mode string) (string, bool) {
	switch mode {
	case "moves", "":
		return depthscraper.IDMoves, true
	case "score", "endless":
		return depthscraper.IDScore, true
	}
	return "", false
}

// applyGameFlags passes --config and --difficulty to the game package.
func applyGameFlags() {
	depthscraper.SetConfigPath(flagConfig)
	depthscraper.SetDifficultyPreset(flagDifficulty)
}

func runPlay(_ *cobra.Command, _ []string) {
	gameID, ok := modeID(flagMode)
	if !ok {
		fail("unknown mode %q (want moves or score)", flagMode)
	}

	applyGameFlags()
	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	logger, closeLog := localLogger()
	defer closeLog()

	store := openStore(logger)
	svc := localServices(store, flagName, logger)

	_, runErr := tui.Run(game, svc, terminalConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}
