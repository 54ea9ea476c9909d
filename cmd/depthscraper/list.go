package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/depthscraper/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available modes",
	Long:  `Shows the game modes that can be played or looked up in scores.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'depthscraper play --mode moves|score' to play.")
}
