package config

import (
	_ "embed"
)

//go:embed defaults/racer.yaml
var defaultRacerYAML []byte

// DefaultRacerConfig returns the default lane racer configuration.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Board: BoardConfig{
			Width:       480,
			Height:      640,
			Lanes:       3,
			RoadPadding: 16,
		},
		Vehicle: VehicleConfig{
			Width:        52,
			Height:       96,
			BottomMargin: 24,
		},
		Obstacles: ObstacleConfig{
			Width:             56,
			Height:            56,
			SpawnInterval:     1100,
			IntervalDecrement: 12,
			MinInterval:       450,
			OffscreenMargin:   80,
		},
		Speed: SpeedConfig{
			Base:     180,
			Increase: 0.04,
		},
		Scoring: ScoringConfig{
			TimeRate:       0.05,
			PointsPerDodge: 5,
		},
		Loop: LoopConfig{
			FrameClamp: 50,
		},
		Persistence: PersistenceConfig{
			BestScoreKey: "carRace.bestScore",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "racer":
		return defaultRacerYAML
	default:
		return nil
	}
}
