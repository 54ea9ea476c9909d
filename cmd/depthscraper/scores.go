package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/depthscraper/internal/registry"
	"github.com/vovakirdan/depthscraper/internal/storage"
)

const scoresLimit = 10

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a mode, or for every mode when none
is given.

Examples:
  depthscraper scores
  depthscraper scores depthscraper_endless
  depthscraper scores depthscraper --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded scores of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	var modes []string
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'depthscraper list' to see available modes.")
			os.Exit(1)
		}
		modes = []string{args[0]}
	} else {
		if flagClear {
			fail("--clear needs a mode")
		}
		for _, g := range registry.List() {
			modes = append(modes, g.ID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagClear {
		if err := store.ClearScores(ctx, modes[0]); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", registry.Title(modes[0]))
		return
	}

	for i, mode := range modes {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(ctx, store, mode); err != nil {
			store.Close()
			fail("retrieving scores: %v", err)
		}
	}
}

// printScores prints the top scores and stats of one mode.
func printScores(ctx context.Context, store *storage.Store, mode string) error {
	scores, err := store.TopScores(ctx, mode, scoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(mode))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %-5s  %s\n", "Rank", "Name", "Score", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %-5s  %s\n", "----", "----", "-----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %-8d  %-5d  %s\n", i+1, entry.PlayerName, entry.Score, entry.Moves, dateStr)
	}

	stats, err := store.Stats(ctx, mode)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Average: %.1f  Games: %d  Players: %d\n",
		stats.HighScore, stats.AvgScore, stats.GamesCount, stats.Players)
	return nil
}
