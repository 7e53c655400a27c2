package racer

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
)

// memBest is an in-memory BestScoreStore that records saves.
type memBest struct {
	best    int
	loadErr error
	saveErr error
	saves   []int
}

func (m *memBest) LoadBestScore() (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.best, nil
}

func (m *memBest) SaveBestScore(score int) error {
	m.saves = append(m.saves, score)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.best = score
	return nil
}

func newTestSim(t *testing.T, store BestScoreStore) *Sim {
	t.Helper()
	return NewSim(config.DefaultRacerConfig(), 1, store)
}

// blockVehicle places an obstacle exactly on top of the vehicle.
func blockVehicle(s *Sim) {
	vr := s.VehicleRect()
	s.obstacles = append(s.obstacles, Obstacle{
		X: vr.X, Y: vr.Y, Width: vr.W, Height: vr.H,
		Lane:  s.vehicle.Lane,
		Color: ObstacleColor,
	})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewSimIsIdle(t *testing.T) {
	s := newTestSim(t, &memBest{best: 42})

	if s.Phase() != PhaseIdle {
		t.Errorf("expected Idle, got %v", s.Phase())
	}
	if s.Running() || s.Paused() || s.GameOver() {
		t.Error("fresh sim should not be running, paused or over")
	}
	if s.Best() != 42 {
		t.Errorf("expected best 42 from store, got %d", s.Best())
	}
	if s.HUD().Best != 42 {
		t.Errorf("HUD should show loaded best, got %d", s.HUD().Best)
	}
	if s.Vehicle().Lane != 1 {
		t.Errorf("vehicle should start in center lane 1, got %d", s.Vehicle().Lane)
	}
	if len(s.Obstacles()) != 0 {
		t.Errorf("expected no obstacles, got %d", len(s.Obstacles()))
	}
}

func TestNewSimBestScoreFallback(t *testing.T) {
	tests := []struct {
		name  string
		store BestScoreStore
	}{
		{"nil store", nil},
		{"load error", &memBest{best: 99, loadErr: errors.New("disk gone")}},
		{"negative", &memBest{best: -7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, tt.store)
			if s.Best() != 0 {
				t.Errorf("expected best 0, got %d", s.Best())
			}
		})
	}
}

func TestUpdateFirstSpawn(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()
	s.Update(1100)

	if len(s.Obstacles()) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(s.Obstacles()))
	}
	if !approx(s.Interval(), 1088) {
		t.Errorf("expected interval 1088, got %f", s.Interval())
	}
	if !approx(s.Score(), 55) {
		t.Errorf("expected score 55, got %f", s.Score())
	}
	if s.HUD().Score != 55 {
		t.Errorf("expected HUD score 55, got %d", s.HUD().Score)
	}
	if !approx(s.Speed(), 180+0.04*1100) {
		t.Errorf("expected speed 224, got %f", s.Speed())
	}

	// Spawned at y=-56 then moved by speed*dt in the same step
	o := s.Obstacles()[0]
	wantY := -56 + s.Speed()*1.1
	if !approx(o.Y, wantY) {
		t.Errorf("expected obstacle y %f, got %f", wantY, o.Y)
	}
	wantX := s.Board().LaneCenterX(o.Lane) - 28
	if !approx(o.X, wantX) {
		t.Errorf("expected obstacle x %f, got %f", wantX, o.X)
	}
	if s.GameOver() {
		t.Error("first obstacle should not reach the vehicle")
	}
}

func TestUpdateOnlyWhileRunning(t *testing.T) {
	s := newTestSim(t, nil)

	s.Update(500)
	if s.Score() != 0 || s.Speed() != 180 {
		t.Error("update while idle should not change state")
	}

	s.Start()
	s.PauseToggle()
	s.Update(500)
	if s.Score() != 0 || s.Speed() != 180 {
		t.Error("update while paused should not change state")
	}
}

func TestUpdateNegativeDelta(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()
	s.Update(-200)

	if s.Score() != 0 {
		t.Errorf("negative delta should not reduce score, got %f", s.Score())
	}
	if s.Speed() != 180 {
		t.Errorf("negative delta should not change speed, got %f", s.Speed())
	}
}

func TestCollisionEndsRun(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()
	blockVehicle(s)
	s.Update(0)

	if !s.GameOver() {
		t.Fatal("full overlap should end the run")
	}
	if s.Running() {
		t.Error("running and game over must not both be true")
	}

	// Frozen after game over
	obstacles := len(s.Obstacles())
	score := s.Score()
	s.Update(1000)
	if len(s.Obstacles()) != obstacles || s.Score() != score {
		t.Error("state should be frozen after game over")
	}
}

func TestCollisionNewBest(t *testing.T) {
	store := &memBest{best: 10}
	s := newTestSim(t, store)
	s.Start()
	s.score = 15
	blockVehicle(s)
	s.Update(0)

	if s.Best() != 15 {
		t.Errorf("expected best 15, got %d", s.Best())
	}
	if len(store.saves) != 1 || store.saves[0] != 15 {
		t.Errorf("expected one save of 15, got %v", store.saves)
	}
	title, subtitle, ok := s.Overlay()
	if !ok || title != "Game Over" || subtitle != "Score: 15  /  Best: 15" {
		t.Errorf("unexpected overlay %q / %q (visible=%v)", title, subtitle, ok)
	}
}

func TestCollisionFloorsBest(t *testing.T) {
	store := &memBest{best: 10}
	s := newTestSim(t, store)
	s.Start()
	s.score = 17.9
	blockVehicle(s)
	s.Update(0)

	if s.Best() != 17 {
		t.Errorf("expected floored best 17, got %d", s.Best())
	}
}

func TestCollisionNoBest(t *testing.T) {
	tests := []struct {
		name  string
		score float64
	}{
		{"lower", 5},
		{"equal", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memBest{best: 10}
			s := newTestSim(t, store)
			s.Start()
			s.score = tt.score
			blockVehicle(s)
			s.Update(0)

			if !s.GameOver() {
				t.Fatal("expected game over")
			}
			if s.Best() != 10 {
				t.Errorf("best should stay 10, got %d", s.Best())
			}
			if len(store.saves) != 0 {
				t.Errorf("no save expected, got %v", store.saves)
			}
		})
	}
}

func TestCollisionSaveErrorIgnored(t *testing.T) {
	store := &memBest{best: 1, saveErr: errors.New("read-only")}
	s := newTestSim(t, store)
	s.Start()
	s.score = 30
	blockVehicle(s)
	s.Update(0)

	if !s.GameOver() {
		t.Error("save failure must not prevent game over")
	}
	if s.Best() != 30 {
		t.Errorf("in-memory best should update to 30, got %d", s.Best())
	}
}

func TestNoCollisionInOtherLane(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()
	vr := s.VehicleRect()
	s.obstacles = append(s.obstacles, Obstacle{
		X: s.Board().LaneCenterX(0) - 28, Y: vr.Y, Width: 56, Height: 56, Lane: 0,
	})
	s.Update(0)

	if s.GameOver() {
		t.Error("obstacle in another lane should not collide")
	}
}

func TestOffscreenCleanup(t *testing.T) {
	tests := []struct {
		name     string
		offset   float64
		wantKept bool
	}{
		{"just inside margin", 79, true},
		{"at margin", 80, false},
		{"past margin", 81, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, nil)
			s.Start()
			s.obstacles = append(s.obstacles, Obstacle{
				X: 0, Y: s.Board().Height + tt.offset, Width: 56, Height: 56,
			})
			s.Update(0)

			kept := len(s.Obstacles()) == 1
			if kept != tt.wantKept {
				t.Errorf("kept=%v, want %v", kept, tt.wantKept)
			}
			wantScore := 0.0
			if !tt.wantKept {
				wantScore = 5
			}
			if s.Score() != wantScore {
				t.Errorf("expected score %f, got %f", wantScore, s.Score())
			}
		})
	}
}

func TestOffscreenKeepsOrder(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()
	h := s.Board().Height
	s.obstacles = append(s.obstacles,
		Obstacle{Y: h + 100, Lane: 0},
		Obstacle{Y: -10, Lane: 1},
		Obstacle{Y: h + 200, Lane: 2},
		Obstacle{Y: -20, Lane: 2},
	)
	s.Update(0)

	got := s.Obstacles()
	if len(got) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(got))
	}
	if got[0].Y != -10 || got[1].Y != -20 {
		t.Errorf("survivors out of order: %+v", got)
	}
	if s.Score() != 10 {
		t.Errorf("expected 10 points for two dodges, got %f", s.Score())
	}
}

func TestPauseToggle(t *testing.T) {
	s := newTestSim(t, nil)

	// No-op while idle
	s.PauseToggle()
	if s.Phase() != PhaseIdle {
		t.Errorf("pause while idle should be ignored, got %v", s.Phase())
	}

	s.Start()
	s.Update(200)
	snapshot := s.Score()

	s.PauseToggle()
	if !s.Paused() || !s.Running() {
		t.Error("paused implies running")
	}
	s.PauseToggle()
	if s.Phase() != PhaseRunning {
		t.Errorf("expected Running after double toggle, got %v", s.Phase())
	}
	if s.Score() != snapshot {
		t.Error("pause toggle should not change simulation state")
	}

	// No-op after game over
	blockVehicle(s)
	s.Update(0)
	s.PauseToggle()
	if s.Phase() != PhaseGameOver {
		t.Errorf("pause after game over should be ignored, got %v", s.Phase())
	}
}

func TestStartIgnoredWhileRunning(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()
	s.Update(1100)
	before := s.Score()

	s.Start()
	if s.Score() != before || len(s.Obstacles()) != 1 {
		t.Error("start while running should not reset")
	}

	s.PauseToggle()
	s.Start()
	if !s.Paused() {
		t.Error("start while paused should be ignored")
	}
}

func TestStartResets(t *testing.T) {
	store := &memBest{best: 3}
	s := newTestSim(t, store)
	s.Start()
	s.Update(1100)
	s.MoveLeft()
	s.score = 40
	blockVehicle(s)
	s.Update(0)
	if !s.GameOver() {
		t.Fatal("expected game over")
	}

	s.Start()
	if s.Phase() != PhaseRunning {
		t.Errorf("expected Running, got %v", s.Phase())
	}
	if s.Score() != 0 || s.HUD().Score != 0 {
		t.Errorf("score should reset, got %f", s.Score())
	}
	if len(s.Obstacles()) != 0 {
		t.Errorf("obstacles should reset, got %d", len(s.Obstacles()))
	}
	if s.Speed() != 180 || s.Interval() != 1100 {
		t.Errorf("speed and interval should reset, got %f / %f", s.Speed(), s.Interval())
	}
	if s.spawner.Elapsed() != 0 {
		t.Errorf("spawn accumulator should reset, got %f", s.spawner.Elapsed())
	}
	if s.Vehicle().Lane != 1 {
		t.Errorf("vehicle should recenter, got lane %d", s.Vehicle().Lane)
	}
	if s.Best() != 40 {
		t.Errorf("best should survive restart, got %d", s.Best())
	}
}

func TestLaneBounds(t *testing.T) {
	s := newTestSim(t, nil)

	for i := 0; i < 5; i++ {
		s.MoveLeft()
	}
	if s.Vehicle().Lane != 0 {
		t.Errorf("expected lane 0, got %d", s.Vehicle().Lane)
	}

	for i := 0; i < 5; i++ {
		s.MoveRight()
	}
	if s.Vehicle().Lane != 2 {
		t.Errorf("expected lane 2, got %d", s.Vehicle().Lane)
	}
}

func TestMoveSymmetry(t *testing.T) {
	s := newTestSim(t, nil)
	start := s.Vehicle().Lane

	s.MoveLeft()
	s.MoveRight()
	if s.Vehicle().Lane != start {
		t.Errorf("left then right from an inner lane should return to %d, got %d", start, s.Vehicle().Lane)
	}
}

func TestIntervalFloorAndMonotonic(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()

	prevInterval := s.Interval()
	prevScore := s.Score()
	for i := 0; i < 2000 && !s.GameOver(); i++ {
		// Keep the road clear so the run lasts
		s.obstacles = s.obstacles[:0]
		s.Update(50)

		if s.Interval() > prevInterval {
			t.Fatalf("interval increased from %f to %f", prevInterval, s.Interval())
		}
		if s.Interval() < 450 {
			t.Fatalf("interval fell below floor: %f", s.Interval())
		}
		if s.Score() < prevScore {
			t.Fatalf("score decreased from %f to %f", prevScore, s.Score())
		}
		prevInterval = s.Interval()
		prevScore = s.Score()
	}

	if s.Interval() != 450 {
		t.Errorf("expected interval to reach floor 450, got %f", s.Interval())
	}
}

func TestSpeedRamp(t *testing.T) {
	s := newTestSim(t, nil)
	s.Start()
	s.Update(50)
	s.Update(50)

	if !approx(s.Speed(), 184) {
		t.Errorf("expected speed 184 after 100ms, got %f", s.Speed())
	}
}

func TestOverlay(t *testing.T) {
	s := newTestSim(t, nil)

	tests := []struct {
		name      string
		prepare   func()
		wantTitle string
		wantSub   string
		wantShown bool
	}{
		{"idle", func() {}, "Lane Racer", "Press Space to start", true},
		{"running", s.Start, "", "", false},
		{"paused", s.PauseToggle, "Paused", "Press P to resume", true},
		{"resumed", s.PauseToggle, "", "", false},
	}

	for _, tt := range tests {
		tt.prepare()
		title, sub, shown := s.Overlay()
		if title != tt.wantTitle || sub != tt.wantSub || shown != tt.wantShown {
			t.Errorf("%s: got %q / %q (%v), want %q / %q (%v)",
				tt.name, title, sub, shown, tt.wantTitle, tt.wantSub, tt.wantShown)
		}
	}
}

func TestSimDeterminism(t *testing.T) {
	run := func() []Obstacle {
		s := NewSim(config.DefaultRacerConfig(), 12345, nil)
		s.Start()
		var lanes []Obstacle
		for i := 0; i < 400 && !s.GameOver(); i++ {
			n := len(s.Obstacles())
			s.Update(16)
			if len(s.Obstacles()) > n {
				lanes = append(lanes, s.Obstacles()[len(s.Obstacles())-1])
			}
		}
		return lanes
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("spawn counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Lane != b[i].Lane {
			t.Errorf("spawn %d lane differs: %d vs %d", i, a[i].Lane, b[i].Lane)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "Idle"},
		{PhaseRunning, "Running"},
		{PhasePaused, "Paused"},
		{PhaseGameOver, "GameOver"},
		{Phase(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
