package racer

import (
	"errors"
	"strconv"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
)

// mapKV is an in-memory core.KVStore.
type mapKV struct {
	data   map[string]string
	getErr error
	setErr error
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]string)}
}

func (m *mapKV) Get(key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func TestKVBestScoreLoad(t *testing.T) {
	tests := []struct {
		name    string
		stored  *string
		getErr  error
		want    int
		wantErr bool
	}{
		{"missing", nil, nil, 0, false},
		{"valid", ptr("120"), nil, 120, false},
		{"whitespace", ptr(" 7\n"), nil, 7, false},
		{"zero", ptr("0"), nil, 0, false},
		{"garbage", ptr("fast"), nil, 0, true},
		{"fractional", ptr("12.5"), nil, 0, true},
		{"negative", ptr("-3"), nil, 0, true},
		{"backend error", nil, errors.New("locked"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMapKV()
			kv.getErr = tt.getErr
			if tt.stored != nil {
				kv.data["carRace.bestScore"] = *tt.stored
			}

			store := NewKVBestScore(kv, "carRace.bestScore")
			got, err := store.LoadBestScore()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
			if loadBest(store) != tt.want {
				t.Errorf("loadBest should fall back to %d", tt.want)
			}
		})
	}
}

func TestKVBestScoreSave(t *testing.T) {
	kv := newMapKV()
	store := NewKVBestScore(kv, "carRace.bestScore")

	if err := store.SaveBestScore(88); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if kv.data["carRace.bestScore"] != "88" {
		t.Errorf("expected stored \"88\", got %q", kv.data["carRace.bestScore"])
	}

	kv.setErr = errors.New("read-only")
	if err := store.SaveBestScore(90); err == nil {
		t.Error("expected save error to surface from the adapter")
	}
}

// maxKV is a mapKV that also raises values in one step.
type maxKV struct {
	*mapKV
	raises int
}

func (m *maxKV) SetMax(key string, value int) error {
	m.raises++
	if cur, err := strconv.Atoi(m.data[key]); err == nil && cur >= value {
		return nil
	}
	return m.Set(key, strconv.Itoa(value))
}

func TestKVBestScoreSaveKeepsHigher(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		save   int
		want   string
	}{
		{"empty", nil, 40, "40"},
		{"higher", ptr("30"), 40, "40"},
		{"equal", ptr("40"), 40, "40"},
		{"lower", ptr("90"), 40, "90"},
		{"corrupt", ptr("fast"), 40, "40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := newMapKV()
			raising := &maxKV{mapKV: newMapKV()}
			for _, kv := range []*mapKV{plain, raising.mapKV} {
				if tt.stored != nil {
					kv.data["k"] = *tt.stored
				}
			}

			if err := NewKVBestScore(plain, "k").SaveBestScore(tt.save); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			if got := plain.data["k"]; got != tt.want {
				t.Errorf("plain store: got %q, want %q", got, tt.want)
			}

			if err := NewKVBestScore(raising, "k").SaveBestScore(tt.save); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			if raising.raises != 1 {
				t.Errorf("expected SetMax to be used once, got %d", raising.raises)
			}
			if got := raising.data["k"]; got != tt.want {
				t.Errorf("raising store: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBestScoreNeverDecreases(t *testing.T) {
	kv := newMapKV()
	cfg := config.DefaultRacerConfig()
	key := cfg.Persistence.BestScoreKey

	// Both runs start before either has a best score
	first := NewSim(cfg, 1, NewKVBestScore(kv, key))
	second := NewSim(cfg, 2, NewKVBestScore(kv, key))

	first.Start()
	second.Start()
	second.score = 100
	blockVehicle(second)
	second.Update(0)

	first.score = 50
	blockVehicle(first)
	first.Update(0)

	if kv.data[key] != "100" {
		t.Errorf("stored best after 100 then 50: got %q, want \"100\"", kv.data[key])
	}
	if first.Best() != 100 {
		t.Errorf("stale session should pick up best 100, got %d", first.Best())
	}

	// Best reloads on start, not on resume
	third := NewSim(cfg, 3, NewKVBestScore(kv, key))
	third.Start()
	kv.data[key] = "120"
	third.PauseToggle()
	third.PauseToggle()
	if third.Best() != 100 {
		t.Errorf("best only reloads on start, got %d", third.Best())
	}
	third.score = 1
	blockVehicle(third)
	third.Update(0)
	third.Start()
	if third.Best() != 120 {
		t.Errorf("start should reload best 120, got %d", third.Best())
	}
}

func TestNewKVBestScoreNil(t *testing.T) {
	if store := NewKVBestScore(nil, "k"); store != nil {
		t.Errorf("expected nil store for nil kv, got %#v", store)
	}
}

func TestBestScoreSurvivesSims(t *testing.T) {
	kv := newMapKV()
	cfg := config.DefaultRacerConfig()

	s := NewSim(cfg, 1, NewKVBestScore(kv, cfg.Persistence.BestScoreKey))
	s.Start()
	s.score = 64.7
	blockVehicle(s)
	s.Update(0)

	again := NewSim(cfg, 2, NewKVBestScore(kv, cfg.Persistence.BestScoreKey))
	if again.Best() != 64 {
		t.Errorf("expected persisted best 64, got %d", again.Best())
	}
}

func ptr(s string) *string { return &s }
