package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var (
	flagScoresLimit int
	flagRecent      bool
	flagRunID       string
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best runs for a mode",
	Long: `Display the best recorded runs for the given mode (default: racer).

Examples:
  racer scores
  racer scores racer_wide --limit 20
  racer scores --recent
  racer scores --run 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed
  racer scores --interactive
  racer scores racer --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagRecent, "recent", "r", false, "List the latest runs instead of the best")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by its id")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard browser")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history and best score for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := defaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'racer list' to see available modes)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening racer database: %w", err)
	}
	defer closeStore(store)

	switch {
	case flagInteractive:
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	case flagRunID != "":
		return printRun(store, flagRunID)
	case flagClear:
		return clearScores(store, gameID)
	}
	return printScores(store, gameID)
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run with id %s", runID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Run %s\n", run.RunID)
	fmt.Printf("  Mode:     %s\n", registry.Title(run.GameID))
	fmt.Printf("  Score:    %d\n", run.Score)
	fmt.Printf("  Time:     %s\n", formatRunTime(run.Duration))
	fmt.Printf("  Finished: %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func clearScores(store *storage.Store, gameID string) error {
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	if key, ok := registry.BestScoreKey(gameID); ok {
		if err := store.Delete(key); err != nil {
			return err
		}
	}
	fmt.Printf("Run history and best score for %s cleared.\n", registry.Title(gameID))
	return nil
}

func printScores(store *storage.Store, gameID string) error {
	fetch, heading := store.TopScores, "Best Runs"
	if flagRecent {
		fetch, heading = store.RecentRuns, "Recent Runs"
	}
	runs, err := fetch(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Printf("%s - %s\n", heading, registry.Title(gameID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'racer play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %s\n", "Rank", "Score", "Time", "Run", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-8s  %s\n", "----", "-----", "----", "---", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %6s  %-8.8s  %s\n",
			i+1, r.Score, formatRunTime(r.Duration), r.RunID, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		logger.Debug("could not load stats", "error", err)
		return nil
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Average: %.1f  Best: %d\n", stats.RunsCount, stats.AvgScore, stats.HighScore)
	return nil
}

// formatRunTime renders a run length as m:ss.
func formatRunTime(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
