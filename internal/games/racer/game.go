// Package racer implements a lane-dodge racing game.
// The player steers a car between lanes to avoid obstacles falling down the road;
// the road speeds up and obstacles arrive faster the longer the run lasts.
package racer

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

// hudRows is the number of screen rows reserved above the board.
const hudRows = 1

// Game adapts a Sim to the platform's registry.Game interface.
type Game struct {
	id      string
	title   string
	lanes   int // Overrides the configured lane count when non-zero
	sim     *Sim
	runtime core.RuntimeConfig
	cfg     config.RacerConfig
	ticks   int // Platform ticks since Reset, used when frames are unstamped
}

var (
	loadedConfig     *config.RacerConfig // Set by SetConfigPath
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath loads the config used by every game reset afterwards.
// When loading fails the defaults are used and the error is returned so the
// caller can report it.
func SetConfigPath(path string) error {
	cfg, err := config.LoadRacer(path)
	if err != nil {
		cfg = config.DefaultRacerConfig()
	}
	loadedConfig = &cfg
	return err
}

// baseConfig returns the loaded config, or the default search path result
// when SetConfigPath was never called.
func baseConfig() config.RacerConfig {
	if loadedConfig != nil {
		return *loadedConfig
	}
	cfg, err := config.LoadRacer("")
	if err != nil {
		return config.DefaultRacerConfig()
	}
	return cfg
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates a classic three-lane game.
func New() *Game {
	return &Game{id: "racer", title: "Lane Racer"}
}

// NewWide creates a five-lane variant with its own best score.
func NewWide() *Game {
	return &Game{id: "racer_wide", title: "Lane Racer: Highway", lanes: 5}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads configuration and best score and leaves the game idle.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg := baseConfig()
	if difficultyPreset != "" {
		config.ApplyRacerPreset(&cfg, difficultyPreset)
	}
	if g.lanes > 0 {
		cfg.Board.Lanes = g.lanes
	}
	g.cfg = cfg
	g.ticks = 0

	g.sim = NewSim(cfg, runtime.Seed, NewKVBestScore(runtime.Prefs, g.bestKey(cfg)))
}

// BestScoreKey returns the Prefs key this mode keeps its best score under.
func (g *Game) BestScoreKey() string {
	return g.bestKey(baseConfig())
}

func (g *Game) bestKey(cfg config.RacerConfig) string {
	if g.lanes > 0 {
		return fmt.Sprintf("%s.lanes%d", cfg.Persistence.BestScoreKey, g.lanes)
	}
	return cfg.Persistence.BestScoreKey
}

// Step applies this frame's input and advances the simulation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionStart) {
		g.sim.Start()
	}
	if in.Has(core.ActionPause) {
		g.sim.PauseToggle()
	}
	if in.Has(core.ActionLeft) {
		g.sim.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		g.sim.MoveRight()
	}

	g.ticks++
	g.sim.Frame(g.frameTime(in))

	return core.StepResult{State: g.State()}
}

// frameTime returns the frame timestamp in milliseconds. Unstamped frames
// advance a virtual clock by one tick so replays are deterministic.
func (g *Game) frameTime(in core.InputFrame) float64 {
	elapsed := in.Elapsed
	if elapsed == 0 {
		rate := g.runtime.TickRate
		if rate <= 0 {
			rate = 60
		}
		elapsed = time.Duration(g.ticks) * time.Second / time.Duration(rate)
	}
	return float64(elapsed) / float64(time.Millisecond)
}

// Render draws the board, the HUD row and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	Draw(g.sim, NewScreenCanvas(dst, g.sim.Board(), hudRows))

	hud := g.sim.HUD()
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", hud.Score), core.ColorBrightYellow)
	bestText := fmt.Sprintf(" Best: %d ", hud.Best)
	dst.DrawText(dst.Width()-len(bestText)-2, 0, bestText)

	if title, subtitle, ok := g.sim.Overlay(); ok {
		drawCenteredMessage(dst, title, subtitle)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	hud := g.sim.HUD()
	return core.GameState{
		Score:    hud.Score,
		Best:     hud.Best,
		Running:  g.sim.Running(),
		GameOver: g.sim.GameOver(),
		Paused:   g.sim.Paused(),
	}
}

// Sim exposes the simulation for inspection.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Register the games with the registry
func init() {
	registry.Register("racer", func() registry.Game {
		return New()
	})
	registry.Register("racer_wide", func() registry.Game {
		return NewWide()
	})
}
