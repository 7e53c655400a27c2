// Package config provides YAML-based game configuration loading and
// difficulty presets for the racer platform.
package config

// RacerConfig contains all configuration for the lane racer game.
type RacerConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Vehicle     VehicleConfig     `yaml:"vehicle"`
	Obstacles   ObstacleConfig    `yaml:"obstacles"`
	Speed       SpeedConfig       `yaml:"speed"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Loop        LoopConfig        `yaml:"loop"`
	Persistence PersistenceConfig `yaml:"persistence"`
}

// BoardConfig defines the logical playfield in pixels.
type BoardConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Lanes       int     `yaml:"lanes"`
	RoadPadding float64 `yaml:"road_padding"` // Width of the dark side borders
}

// VehicleConfig defines the player vehicle.
type VehicleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between vehicle and board bottom
}

// ObstacleConfig defines obstacle size and spawn cadence.
type ObstacleConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	SpawnInterval     float64 `yaml:"spawn_interval_ms"`     // Initial interval between spawns
	IntervalDecrement float64 `yaml:"interval_decrement_ms"` // Applied after every spawn
	MinInterval       float64 `yaml:"min_interval_ms"`       // Floor for the interval
	OffscreenMargin   float64 `yaml:"offscreen_margin"`      // Distance below the board before removal
}

// SpeedConfig defines obstacle fall speed.
type SpeedConfig struct {
	Base     float64 `yaml:"base"`     // Pixels per second at run start
	Increase float64 `yaml:"increase"` // Added per elapsed millisecond
}

// ScoringConfig defines how score accumulates.
type ScoringConfig struct {
	TimeRate       float64 `yaml:"time_rate"`        // Points per elapsed millisecond
	PointsPerDodge float64 `yaml:"points_per_dodge"` // Points per obstacle leaving the board
}

// LoopConfig defines frame timing.
type LoopConfig struct {
	FrameClamp float64 `yaml:"frame_clamp_ms"` // Largest simulated step per frame
}

// PersistenceConfig defines where durable game state lives.
type PersistenceConfig struct {
	BestScoreKey string `yaml:"best_score_key"`
}

// LaneWidth returns the width of a single lane.
func (b BoardConfig) LaneWidth() float64 {
	if b.Lanes <= 0 {
		return b.Width
	}
	return b.Width / float64(b.Lanes)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
// Unknown or empty values return "" which means the config file decides.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
