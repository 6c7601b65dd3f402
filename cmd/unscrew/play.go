package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew"
	"github.com/vovakirdan/tui-unscrew/internal/platform/tui"
	"github.com/vovakirdan/tui-unscrew/internal/registry"
	"github.com/vovakirdan/tui-unscrew/internal/storage"
)

var flagLevel string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long: `Start playing a level.

Controls:
  Mouse click    - Unscrew the piece under the pointer
  Arrows/WASD    - Move the cursor
  Space/Enter    - Unscrew the piece at the cursor
  Tab/Shift+Tab  - Jump to the next/previous free piece
  P              - Pause
  R              - New round
  H              - Round history
  ?              - Rules
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - 5 layers, queue of 5, pieces free at 60% coverage
  normal - 7 layers, queue of 4, pieces free at 50% coverage
  hard   - 9 layers, queue of 3, pieces free at 40% coverage

Examples:
  unscrew play
  unscrew play --level tutorial
  unscrew play --level ./my-level.yaml
  unscrew play --difficulty hard --seed 7
  unscrew play --config ./my-unscrew.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "random", "Builtin level ID, level YAML path, or random")
}

func runPlay(_ *cobra.Command, _ []string) {
	closeLog, err := configureGame()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Fail before entering the alternate screen if the level cannot load
	if _, err := unscrew.ResolveLevel(flagLevel); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'unscrew levels' to see builtin levels.")
		os.Exit(1)
	}
	unscrew.SetLevel(flagLevel)

	game, err := registry.Create(unscrew.GameID)
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
