// unscrew is a layered unscrew puzzle for the terminal.
//
// Usage:
//
//	unscrew play             - Play a level
//	unscrew menu             - Pick levels interactively
//	unscrew serve            - Start SSH server for remote play
//	unscrew scores [level]   - Show the round history
//	unscrew levels           - List builtin levels
//	unscrew dump [level]     - Print a level as ASCII
//
// Global flags:
//
//	--fps <rate>           - Animation tick rate (default: 20)
//	--seed <value>         - RNG seed for reproducible layouts
//	--db <path>            - Database path (default: ~/.unscrew/scores.db)
//	--config <path>        - Custom config YAML
//	--difficulty <preset>  - easy, normal or hard
//	--log <path>           - Write game logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-unscrew/internal/config"
	"github.com/vovakirdan/tui-unscrew/internal/core"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew"
	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/levels"
	"github.com/vovakirdan/tui-unscrew/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLog        string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "unscrew",
	Short: "Unscrew - a layered sorting puzzle in your terminal",
	Long: `Unscrew is a puzzle played on a stack of overlapping boards.
Click a piece that is not covered by the boards above to unscrew it.
Each of the two lanes takes three pieces of its color; pieces no lane can
take wait in a small holding queue. Clear every board before the queue
overflows.

Available commands:
  play     - Play a level directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View the round history
  levels   - List builtin levels
  dump     - Print a level as ASCII

Examples:
  unscrew play
  unscrew play --level tutorial
  unscrew play --difficulty hard --seed 42
  unscrew menu
  unscrew serve --ssh :2222
  unscrew scores tower`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Animation tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.unscrew/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLog, "log", "", "Write game logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(dumpCmd)
}

// configureGame applies the global flags to the game package.
// The returned function closes the log file, if any.
func configureGame() (func(), error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	unscrew.SetConfigPath(flagConfig)
	unscrew.SetDifficultyPreset(preset)

	if flagLog == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(flagLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	unscrew.SetLogger(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "unscrew",
	}))
	return func() {
		unscrew.SetLogger(nil)
		f.Close()
	}, nil
}

// loadConfig loads the config the global flags select.
func loadConfig() (config.UnscrewConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.UnscrewConfig{}, err
	}
	return config.Load(flagConfig, preset)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// levelMenuItems lists the generated level followed by the builtin levels.
func levelMenuItems() ([]tui.MenuItem, error) {
	all, err := levels.Builtin().LoadAll()
	if err != nil {
		return nil, err
	}
	items := []tui.MenuItem{{LevelID: levels.RandomID, Title: "Random", Detail: "new board every round"}}
	for _, lvl := range all {
		title := lvl.Name
		if title == "" {
			title = lvl.ID
		}
		items = append(items, tui.MenuItem{
			LevelID: lvl.ID,
			Title:   title,
			Detail:  fmt.Sprintf("%d pieces, %d layers", lvl.Layout.Total(), len(lvl.Layout.Layers)),
		})
	}
	return items, nil
}
