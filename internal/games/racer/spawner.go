package racer

import (
	"math/rand"

	"github.com/vovakirdan/tui-racer/internal/config"
)

// Spawner emits obstacles on a time accumulator.
// Lanes are drawn uniformly at random; nothing prevents the same lane twice in
// a row or a pattern that blocks every lane.
type Spawner struct {
	rng     *rand.Rand
	board   Board
	width   float64
	height  float64
	elapsed float64 // Milliseconds since the last spawn
}

// NewSpawner creates a spawner with a deterministic RNG.
func NewSpawner(seed int64, board Board, cfg config.ObstacleConfig) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed)),
		board:  board,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Reset clears the accumulator. The RNG keeps its sequence so restarts differ.
func (sp *Spawner) Reset() {
	sp.elapsed = 0
}

// Elapsed returns the accumulated time since the last spawn.
func (sp *Spawner) Elapsed() float64 {
	return sp.elapsed
}

// TrySpawn adds elapsedMs to the accumulator and returns a new obstacle once
// the accumulator reaches intervalMs. The accumulator restarts from zero rather
// than carrying the remainder.
func (sp *Spawner) TrySpawn(elapsedMs, intervalMs float64) (Obstacle, bool) {
	sp.elapsed += elapsedMs
	if sp.elapsed < intervalMs {
		return Obstacle{}, false
	}
	sp.elapsed = 0

	lane := sp.rng.Intn(sp.board.Lanes)
	return Obstacle{
		X:      sp.board.LaneCenterX(lane) - sp.width/2,
		Y:      -sp.height,
		Width:  sp.width,
		Height: sp.height,
		Lane:   lane,
		Color:  ObstacleColor,
	}, true
}
