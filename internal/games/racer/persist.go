package racer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// BestScoreStore persists the best score between runs and restarts.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// KVBestScore stores the best score as a decimal string under one key.
type KVBestScore struct {
	kv  core.KVStore
	key string
}

// NewKVBestScore returns a store backed by kv, or nil when kv is nil.
func NewKVBestScore(kv core.KVStore, key string) BestScoreStore {
	if kv == nil {
		return nil
	}
	return &KVBestScore{kv: kv, key: key}
}

// LoadBestScore returns 0 when the key is absent.
// Unparseable or negative values are reported as errors.
func (b *KVBestScore) LoadBestScore() (int, error) {
	raw, ok, err := b.kv.Get(b.key)
	if err != nil {
		return 0, fmt.Errorf("racer: cannot load best score: %w", err)
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("racer: corrupt best score %q: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("racer: negative best score %d", n)
	}
	return n, nil
}

// SaveBestScore writes the score under the configured key unless the stored
// best is already as high. Several sessions may share one store, each with
// its own cached best.
func (b *KVBestScore) SaveBestScore(score int) error {
	if m, ok := b.kv.(core.MaxStore); ok {
		if err := m.SetMax(b.key, score); err != nil {
			return fmt.Errorf("racer: cannot save best score: %w", err)
		}
		return nil
	}
	// A corrupt stored value is overwritten
	if stored, err := b.LoadBestScore(); err == nil && stored >= score {
		return nil
	}
	if err := b.kv.Set(b.key, strconv.Itoa(score)); err != nil {
		return fmt.Errorf("racer: cannot save best score: %w", err)
	}
	return nil
}

// loadBest reads the best score, treating any failure as no score yet.
func loadBest(store BestScoreStore) int {
	if store == nil {
		return 0
	}
	n, err := store.LoadBestScore()
	if err != nil || n < 0 {
		return 0
	}
	return n
}
