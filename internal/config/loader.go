package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRacer loads lane racer configuration.
// Search order: customPath -> ~/.racer/configs/racer.yaml -> ./configs/racer.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadRacer(customPath string) (RacerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRacerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeRacer(data)
		if err != nil {
			return DefaultRacerConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("racer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeRacer(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/racer.yaml"); err == nil {
		if cfg, err := decodeRacer(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeRacer(defaultRacerYAML)
	if err != nil {
		return DefaultRacerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeRacer parses YAML on top of the defaults and validates the result.
func decodeRacer(data []byte) (RacerConfig, error) {
	cfg := DefaultRacerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every field that would make the simulation misbehave.
func (c RacerConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	positive("board.width", c.Board.Width)
	positive("board.height", c.Board.Height)
	if c.Board.Lanes < 1 {
		errs = append(errs, fmt.Errorf("board.lanes must be at least 1, got %d", c.Board.Lanes))
	}
	nonNegative("board.road_padding", c.Board.RoadPadding)
	positive("vehicle.width", c.Vehicle.Width)
	positive("vehicle.height", c.Vehicle.Height)
	nonNegative("vehicle.bottom_margin", c.Vehicle.BottomMargin)
	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.height", c.Obstacles.Height)
	positive("obstacles.spawn_interval_ms", c.Obstacles.SpawnInterval)
	nonNegative("obstacles.interval_decrement_ms", c.Obstacles.IntervalDecrement)
	positive("obstacles.min_interval_ms", c.Obstacles.MinInterval)
	if c.Obstacles.MinInterval > c.Obstacles.SpawnInterval {
		errs = append(errs, fmt.Errorf("obstacles.min_interval_ms (%v) exceeds spawn_interval_ms (%v)",
			c.Obstacles.MinInterval, c.Obstacles.SpawnInterval))
	}
	nonNegative("obstacles.offscreen_margin", c.Obstacles.OffscreenMargin)
	nonNegative("speed.base", c.Speed.Base)
	nonNegative("speed.increase", c.Speed.Increase)
	nonNegative("scoring.time_rate", c.Scoring.TimeRate)
	nonNegative("scoring.points_per_dodge", c.Scoring.PointsPerDodge)
	positive("loop.frame_clamp_ms", c.Loop.FrameClamp)
	if c.Persistence.BestScoreKey == "" {
		errs = append(errs, errors.New("persistence.best_score_key must not be empty"))
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".racer", "configs", filename)
}
