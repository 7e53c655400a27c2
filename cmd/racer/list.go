package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game modes",
	Long:  `Shows every game mode that can be passed to 'racer play'.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No game modes available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	// Stats are optional
	var stats map[string]*storage.GameStats
	if store := openStore(); store != nil {
		all, err := store.GetAllGamesStats()
		if err != nil {
			logger.Warn("could not load run stats", "error", err)
		}
		stats = all
		closeStore(store)
	}

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Runs  Top")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----  ---")
	for _, g := range games {
		runs, top := "-", "-"
		if st, ok := stats[g.ID]; ok {
			runs, top = fmt.Sprint(st.RunsCount), fmt.Sprint(st.HighScore)
		}
		fmt.Printf("  %-*s  %-*s  %-4s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, runs, top)
	}

	fmt.Println()
	fmt.Println("Run 'racer play <id>' to start driving.")
}
