package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List builtin levels",
	Long: `Shows the handcrafted levels shipped with the game.

Levels whose pieces have no colors in the file get colors from the
palette each round, so every round plays differently.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	all, err := levels.Builtin().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	maxIDLen := len(levels.RandomID)
	for _, lvl := range all {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-20s  %6s  %6s  %s\n", maxIDLen, "ID", "Name", "Pieces", "Layers", "Colors")
	fmt.Printf("  %-*s  %-20s  %6s  %6s  %s\n", maxIDLen, "--", "----", "------", "------", "------")
	fmt.Printf("  %-*s  %-20s  %6s  %6s  %s\n", maxIDLen, levels.RandomID, "Generated", "-", "-", "random")

	for _, lvl := range all {
		colors := "random"
		if lvl.Colored {
			colors = "fixed"
		}
		fmt.Printf("  %-*s  %-20s  %6d  %6d  %s\n",
			maxIDLen, lvl.ID, lvl.Name, lvl.Layout.Total(), len(lvl.Layout.Layers), colors)
	}

	fmt.Println()
	fmt.Println("Run 'unscrew play --level <id>' to play a level.")
}
