package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// GameModel is the Bubble Tea model for one game on screen.
// It collects key presses between ticks, feeds them to the game as a single
// input frame stamped with the frame time, and records finished runs.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      GameKeyMap
	repeats   *RepeatFilter
	input     core.InputFrame
	gameState core.GameState

	started  time.Time     // Wall clock origin for frame timestamps
	elapsed  time.Duration // Frame time of the last tick
	runStart time.Duration // Frame time when the current run began
	runSaved bool          // Whether the finished run has been recorded

	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if store != nil {
		cfg.Prefs = store
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:    store,
		logger:   logger,
		config:   cfg,
		keys:     DefaultGameKeyMap(),
		repeats:  NewRepeatFilter(DefaultRepeatDelay, DefaultRepeatWindow),
		input:    core.NewInputFrame(),
		started:  time.Now(),
		runSaved: true,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		// Only the screen follows the terminal; the board rescales on render
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Debug("screenshot saved", "path", path)
		}
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		// Leaving is only offered when no run is moving on screen
		if m.gameState.Running && !m.gameState.Paused {
			return m, nil
		}
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if !m.repeats.Allow(msg.String(), now) {
		return m, nil
	}
	m.input.Set(action)
	return m, nil
}

// handleTick steps the game with the input gathered since the last tick.
func (m GameModel) handleTick(tick TickMsg) (tea.Model, tea.Cmd) {
	m.elapsed = since(m.started, tick)
	m.input.Elapsed = m.elapsed

	prev := m.gameState
	result := m.game.Step(m.input)
	m.gameState = result.State

	if m.gameState.Running && !prev.Running {
		m.runStart = m.elapsed
		m.runSaved = false
	}
	if m.gameState.GameOver && !m.runSaved {
		m.recordRun()
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run in the history table, once per run.
func (m *GameModel) recordRun() {
	m.runSaved = true
	if m.store == nil {
		return
	}
	duration := m.elapsed - m.runStart
	runID, err := m.store.SaveRun(m.game.ID(), m.gameState.Score, duration)
	if err != nil {
		m.logger.Debug("could not record run", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Debug("run recorded",
		"game", m.game.ID(),
		"run", runID,
		"score", m.gameState.Score,
		"duration", duration.Round(time.Millisecond),
	)
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".racer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the current terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
