package racer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
)

// Phase is the run state of a simulation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// HUD holds the values shown in the heads-up display.
type HUD struct {
	Score int
	Best  int
}

// Sim is the simulation context for one game instance. All state mutation
// happens through its methods; callers must serialize them.
type Sim struct {
	cfg     config.RacerConfig
	board   Board
	store   BestScoreStore
	spawner *Spawner
	clock   FrameClock

	phase     Phase
	vehicle   Vehicle
	obstacles []Obstacle
	speed     float64 // Pixels per second
	interval  float64 // Milliseconds between spawns
	score     float64
	best      int
	hud       HUD
}

// NewSim creates an idle simulation and reads the best score from store.
// A nil store disables persistence.
func NewSim(cfg config.RacerConfig, seed int64, store BestScoreStore) *Sim {
	board := NewBoard(cfg.Board)
	s := &Sim{
		cfg:     cfg,
		board:   board,
		store:   store,
		spawner: NewSpawner(seed, board, cfg.Obstacles),
		clock:   NewFrameClock(cfg.Loop.FrameClamp),
		vehicle: Vehicle{
			Width:  cfg.Vehicle.Width,
			Height: cfg.Vehicle.Height,
			Color:  VehicleColor,
		},
		obstacles: make([]Obstacle, 0, 16),
		best:      loadBest(store),
	}
	s.reset()
	return s
}

// reset restores every per-run field. The best score survives.
func (s *Sim) reset() {
	s.speed = s.cfg.Speed.Base
	s.interval = s.cfg.Obstacles.SpawnInterval
	s.spawner.Reset()
	s.obstacles = s.obstacles[:0]
	s.score = 0
	s.clock.Invalidate()
	s.vehicle.Lane = s.board.CenterLane()
	s.refreshHUD()
}

// Start begins a fresh run from Idle or GameOver. The best score is read
// again so runs finished in other sessions count.
// It does nothing while a run is in progress, paused or not.
func (s *Sim) Start() {
	if s.phase == PhaseRunning || s.phase == PhasePaused {
		return
	}
	s.best = max(s.best, loadBest(s.store))
	s.reset()
	s.phase = PhaseRunning
}

// PauseToggle switches between Running and Paused. Resuming drops the frame
// anchor so time spent paused is never simulated.
func (s *Sim) PauseToggle() {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhaseRunning
		s.clock.Invalidate()
	}
}

// MoveLeft shifts the vehicle one lane left, stopping at the edge.
func (s *Sim) MoveLeft() {
	s.vehicle.Lane = s.board.ClampLane(s.vehicle.Lane - 1)
}

// MoveRight shifts the vehicle one lane right, stopping at the edge.
func (s *Sim) MoveRight() {
	s.vehicle.Lane = s.board.ClampLane(s.vehicle.Lane + 1)
}

// Update advances the run by dtMs milliseconds. It only acts while Running.
// The steps run in a fixed order: speed, time score, spawn, movement, cleanup,
// collision, HUD.
func (s *Sim) Update(dtMs float64) {
	if s.phase != PhaseRunning {
		return
	}
	if dtMs < 0 {
		dtMs = 0
	}

	s.speed += s.cfg.Speed.Increase * dtMs
	s.score += dtMs * s.cfg.Scoring.TimeRate

	if o, ok := s.spawner.TrySpawn(dtMs, s.interval); ok {
		s.obstacles = append(s.obstacles, o)
		s.interval = math.Max(s.cfg.Obstacles.MinInterval, s.interval-s.cfg.Obstacles.IntervalDecrement)
	}

	dy := s.speed * (dtMs / 1000)
	for i := range s.obstacles {
		s.obstacles[i].Y += dy
	}

	// Drop obstacles past the bottom margin; each one counts as dodged
	limit := s.board.Height + s.cfg.Obstacles.OffscreenMargin
	kept := s.obstacles[:0]
	dodged := 0
	for _, o := range s.obstacles {
		if o.Y < limit {
			kept = append(kept, o)
		} else {
			dodged++
		}
	}
	s.obstacles = kept
	s.score += float64(dodged) * s.cfg.Scoring.PointsPerDodge

	vr := s.VehicleRect()
	for _, o := range s.obstacles {
		if vr.Intersects(o.Rect()) {
			s.collide()
			break
		}
	}

	s.refreshHUD()
}

// collide records a new best score if earned and ends the run.
func (s *Sim) collide() {
	if s.score > float64(s.best) {
		s.best = int(math.Floor(s.score))
		if s.store != nil {
			//nolint:errcheck // Best-effort save, losing a best score is acceptable
			s.store.SaveBestScore(s.best)
			s.best = max(s.best, loadBest(s.store))
		}
	}
	s.phase = PhaseGameOver
}

// refreshHUD copies score values into the display snapshot.
func (s *Sim) refreshHUD() {
	s.hud = HUD{
		Score: int(math.Floor(s.score)),
		Best:  s.best,
	}
}

// VehicleRect returns the vehicle's collision rectangle.
func (s *Sim) VehicleRect() core.Rect {
	cx := s.board.LaneCenterX(s.vehicle.Lane)
	return core.NewRect(
		cx-s.vehicle.Width/2,
		s.board.Height-s.vehicle.Height-s.cfg.Vehicle.BottomMargin,
		s.vehicle.Width,
		s.vehicle.Height,
	)
}

// Overlay returns the message box for the current phase.
// visible is false while a run is in progress.
func (s *Sim) Overlay() (title, subtitle string, visible bool) {
	switch s.phase {
	case PhaseIdle:
		return "Lane Racer", "Press Space to start", true
	case PhasePaused:
		return "Paused", "Press P to resume", true
	case PhaseGameOver:
		return "Game Over", fmt.Sprintf("Score: %d  /  Best: %d", s.hud.Score, s.hud.Best), true
	default:
		return "", "", false
	}
}

// Phase returns the current run state.
func (s *Sim) Phase() Phase { return s.phase }

// Running reports whether a run is in progress, including while paused.
func (s *Sim) Running() bool { return s.phase == PhaseRunning || s.phase == PhasePaused }

// Paused reports whether the run is paused.
func (s *Sim) Paused() bool { return s.phase == PhasePaused }

// GameOver reports whether the last run ended in a collision.
func (s *Sim) GameOver() bool { return s.phase == PhaseGameOver }

// Board returns the playfield geometry.
func (s *Sim) Board() Board { return s.board }

// Vehicle returns the player vehicle.
func (s *Sim) Vehicle() Vehicle { return s.vehicle }

// Obstacles returns the live obstacles in spawn order. Callers must not modify it.
func (s *Sim) Obstacles() []Obstacle { return s.obstacles }

// Score returns the unrounded score.
func (s *Sim) Score() float64 { return s.score }

// Best returns the best score.
func (s *Sim) Best() int { return s.best }

// Speed returns the obstacle speed in pixels per second.
func (s *Sim) Speed() float64 { return s.speed }

// Interval returns the current spawn interval in milliseconds.
func (s *Sim) Interval() float64 { return s.interval }

// HUD returns the display values as of the last update.
func (s *Sim) HUD() HUD { return s.hud }
