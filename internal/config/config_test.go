package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decodeRacer(GetDefaultYAML("racer"))
	if err != nil {
		t.Fatalf("embedded YAML failed to decode: %v", err)
	}
	if cfg != DefaultRacerConfig() {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, DefaultRacerConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultRacerConfig().Validate(); err != nil {
		t.Errorf("DefaultRacerConfig().Validate() = %v", err)
	}
}

func TestLoadRacerFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRacer("")
	if err != nil {
		t.Fatalf("LoadRacer() failed: %v", err)
	}
	if cfg != DefaultRacerConfig() {
		t.Errorf("LoadRacer() = %+v, expected defaults", cfg)
	}
}

func TestLoadRacerUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".racer", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte("board:\n  lanes: 4\n")
	if err := os.WriteFile(filepath.Join(dir, "racer.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRacer("")
	if err != nil {
		t.Fatalf("LoadRacer() failed: %v", err)
	}
	if cfg.Board.Lanes != 4 {
		t.Errorf("Lanes = %d, expected 4 from user config", cfg.Board.Lanes)
	}
}

func TestLoadRacerCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "racer.yaml")
	data := []byte("speed:\n  base: 240\nobstacles:\n  min_interval_ms: 300\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRacer(path)
	if err != nil {
		t.Fatalf("LoadRacer() failed: %v", err)
	}
	if cfg.Speed.Base != 240 {
		t.Errorf("Speed.Base = %v, expected 240", cfg.Speed.Base)
	}
	if cfg.Obstacles.MinInterval != 300 {
		t.Errorf("MinInterval = %v, expected 300", cfg.Obstacles.MinInterval)
	}
	// Untouched keys keep their defaults
	if cfg.Board.Lanes != 3 || cfg.Obstacles.SpawnInterval != 1100 {
		t.Errorf("Partial config should keep defaults, got lanes=%d interval=%v",
			cfg.Board.Lanes, cfg.Obstacles.SpawnInterval)
	}
}

func TestLoadRacerCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRacer(filepath.Join(dir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config") {
		t.Errorf("Missing file should fail to read, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [not, a, map]"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = LoadRacer(bad)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("Malformed file should fail to parse, got %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("board:\n  lanes: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = LoadRacer(invalid)
	if err == nil || !strings.Contains(err.Error(), "board.lanes") {
		t.Errorf("Invalid lanes should be reported, got %v", err)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultRacerConfig()
	cfg.Vehicle.Width = 0
	cfg.Obstacles.MinInterval = 2000
	cfg.Persistence.BestScoreKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, field := range []string{"vehicle.width", "min_interval_ms", "best_score_key"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error should mention %s: %v", field, err)
		}
	}
}

func TestApplyRacerPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		wantBase     float64
		wantInterval float64
		wantIncrease float64
		wantDecr     float64
	}{
		{DifficultyEasy, 150, 1300, 0.04, 12},
		{DifficultyNormal, 180, 1100, 0.04, 12},
		{DifficultyHard, 240, 900, 0.04, 12},
		{DifficultyFixed, 180, 1100, 0, 0},
		{"", 180, 1100, 0.04, 12},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRacerConfig()
			ApplyRacerPreset(&cfg, tc.preset)

			if cfg.Speed.Base != tc.wantBase {
				t.Errorf("Speed.Base = %v, expected %v", cfg.Speed.Base, tc.wantBase)
			}
			if cfg.Obstacles.SpawnInterval != tc.wantInterval {
				t.Errorf("SpawnInterval = %v, expected %v", cfg.Obstacles.SpawnInterval, tc.wantInterval)
			}
			if cfg.Speed.Increase != tc.wantIncrease {
				t.Errorf("Speed.Increase = %v, expected %v", cfg.Speed.Increase, tc.wantIncrease)
			}
			if cfg.Obstacles.IntervalDecrement != tc.wantDecr {
				t.Errorf("IntervalDecrement = %v, expected %v", cfg.Obstacles.IntervalDecrement, tc.wantDecr)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("Unknown preset should map to empty")
	}
	if !IsFixedPreset(ParsePreset("fixed")) {
		t.Error("fixed should disable progression")
	}
}

func TestLaneWidth(t *testing.T) {
	b := DefaultRacerConfig().Board
	if b.LaneWidth() != 160 {
		t.Errorf("LaneWidth() = %v, expected 160", b.LaneWidth())
	}
}
