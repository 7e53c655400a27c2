package config

// ApplyRacerPreset modifies the config based on a difficulty preset.
// Easy and hard shift the starting speed and spawn cadence; fixed keeps the
// starting values for the whole run.
func ApplyRacerPreset(cfg *RacerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base = cfg.Speed.Base * 5 / 6
		cfg.Obstacles.SpawnInterval = cfg.Obstacles.SpawnInterval * 13 / 11
	case DifficultyHard:
		cfg.Speed.Base = cfg.Speed.Base * 4 / 3
		cfg.Obstacles.SpawnInterval = cfg.Obstacles.SpawnInterval * 9 / 11
	case DifficultyFixed:
		cfg.Speed.Increase = 0
		cfg.Obstacles.IntervalDecrement = 0
	}

	// Keep the floor reachable from the (possibly lowered) start
	if cfg.Obstacles.MinInterval > cfg.Obstacles.SpawnInterval {
		cfg.Obstacles.MinInterval = cfg.Obstacles.SpawnInterval
	}
}
