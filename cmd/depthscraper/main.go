// depthscraper is a terminal tile-placement puzzle: stack tiles onto the
// floors of a ring-shaped tower and grow color groups to meet challenges.
//
// Usage:
//
//	depthscraper list              - List available modes
//	depthscraper play              - Play a game
//	depthscraper menu              - Pick a mode interactively
//	depthscraper serve             - Start SSH server for remote play
//	depthscraper scores [mode]     - Show high scores
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.depthscraper/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/depthscraper/internal/config"
	"github.com/vovakirdan/depthscraper/internal/core"
	"github.com/vovakirdan/depthscraper/internal/highscore"
	"github.com/vovakirdan/depthscraper/internal/platform/tui"
	"github.com/vovakirdan/depthscraper/internal/storage"

	// Import the game to register its modes
	_ "github.com/vovakirdan/depthscraper/internal/games/depthscraper"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "depthscraper",
	Short: "Depthscraper - build a tower of colored tiles in your terminal",
	Long: `Depthscraper is a tile-placement puzzle. Place tiles on the floors of a
ring-shaped tower, grow groups of one color and complete floors to make
the tower climb.

Available commands:
  list     - Show the available modes
  play     - Play a game directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  depthscraper play
  depthscraper play --mode score --difficulty hard
  depthscraper menu
  depthscraper serve --ssh :2222
  depthscraper scores depthscraper`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.depthscraper/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates a logger at the --log-level writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "depthscraper",
		Level:           level,
	})
}

// localLogger logs to ~/.depthscraper/depthscraper.log, since the terminal
// belongs to the game while it runs. The returned func closes the file.
func localLogger() (*log.Logger, func()) {
	dir := config.ConfigDir()
	if dir == "" {
		return newLogger(io.Discard), func() {}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "depthscraper.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// openStore opens the scores database. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// localServices gathers what a local game screen needs.
func localServices(store *storage.Store, name string, logger *log.Logger) tui.Services {
	playerID, err := highscore.LoadOrCreatePlayerID(config.ConfigDir())
	if err != nil {
		logger.Warn("could not load player id", "err", err)
	}
	return tui.Services{
		Store:      store,
		PlayerID:   playerID,
		PlayerName: name,
		Logger:     logger,
	}
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
