package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-unscrew/internal/platform/tui"
	"github.com/vovakirdan/tui-unscrew/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the round history",
	Long: `Display recorded rounds with per-level stats.

Without --plain an interactive table is shown; Tab switches levels.

Examples:
  unscrew scores
  unscrew scores tower
  unscrew scores tutorial --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text report instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds in the plain report")
}

func runScores(_ *cobra.Command, args []string) {
	level := ""
	if len(args) == 1 {
		level = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagPlain {
		width, height := terminalSize()
		if _, err := tui.RunHistory(store, level, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if err := printScores(store, level, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// printScores writes a plain text report of recent rounds.
func printScores(store *storage.Store, level string, limit int) error {
	rounds, err := store.RecentRounds(level, limit)
	if err != nil {
		return err
	}

	title := "all levels"
	if level != "" {
		title = level
	}
	fmt.Printf("Recent rounds - %s\n", title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'unscrew play' to record the first round!")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-9s  %6s  %7s  %6s  %s\n", "Date", "Level", "Result", "Score", "Pieces", "Clicks", "Time")
	fmt.Printf("  %-16s  %-10s  %-9s  %6s  %7s  %6s  %s\n", "----", "-----", "------", "-----", "------", "------", "----")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-10s  %-9s  %6d  %7s  %6d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.LevelID,
			r.Outcome,
			r.Score,
			fmt.Sprintf("%d/%d", r.Absorbed, r.Total),
			r.Clicks,
			r.Duration.Round(time.Second),
		)
	}

	fmt.Println()
	if level == "" {
		return nil
	}
	stats, err := store.RoundStats(level)
	if err != nil {
		return err
	}
	fmt.Printf("Rounds: %d  Won: %d  Lost: %d  Win rate: %.0f%%  Best: %d\n",
		stats.Rounds, stats.Wins, stats.Losses, stats.WinRate()*100, stats.BestScore)
	return nil
}
