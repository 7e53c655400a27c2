// Package registry provides a global registry for game factories.
// Game modes register themselves in init() functions, so the CLI and the
// SSH server can list and start them without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Game is the contract between a game mode and the terminal platform.
// Implementations hold pure logic with no Bubble Tea dependency; the platform
// maps keys to actions, drives the tick and paints the screen.
type Game interface {
	// ID returns a unique identifier (e.g., "racer", "racer_wide").
	// Used for CLI arguments and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh game and reads durable state from cfg.Prefs.
	// The game is left idle, waiting for a start action.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick of input and advances the simulation.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst.
	Render(dst *core.Screen)

	// State returns the current score and run state.
	State() core.GameState
}

// BestScorer is implemented by games that keep their best score in
// cfg.Prefs, so tools can find or clear it.
type BestScorer interface {
	BestScoreKey() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, not yet reset, game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return e.factory(), nil
}

// Get is Create without the error, for callers that only need a yes or no.
func Get(id string) (Game, bool) {
	g, err := Create(id)
	if err != nil {
		return nil, false
	}
	return g, true
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Title returns the display name of a registered game, or the ID itself
// when the game is unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if e, ok := entries[id]; ok {
		return e.title
	}
	return id
}

// BestScoreKey returns the Prefs key holding a registered game's best score.
// ok is false for unknown games and games that keep none.
func BestScoreKey(id string) (key string, ok bool) {
	g, found := Get(id)
	if !found {
		return "", false
	}
	bs, ok := g.(BestScorer)
	if !ok {
		return "", false
	}
	return bs.BestScoreKey(), true
}
