package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

const defaultGameID = "racer"

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: racer).

Controls:
  Left/A, Right/D  - Change lane
  Space/Enter      - Start a run (also restarts after a crash)
  P                - Pause / resume
  Esc/B            - Leave (when idle, paused or crashed)
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot to ~/.racer/screenshots

Difficulty options:
  easy   - Slower road, sparser traffic
  normal - The default curve
  hard   - Faster road, denser traffic
  fixed  - No speed-up and no traffic build-up

Examples:
  racer play
  racer play racer_wide
  racer play --difficulty hard
  racer play --config ./my-racer.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := defaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'racer list' to see available modes)", err)
	}

	store := openStore()
	defer closeStore(store)

	logger.Debug("starting game", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
