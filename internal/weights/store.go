// Package weights stores the multiplicative scoring weights that the
// feedback loop adapts.
package weights

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultWeight is the weight of any key that has never been written.
const DefaultWeight = 1.0

// Signal types recorded alongside a weight.
const (
	TypeIndustry = "industry"
	TypeSignal   = "signal"
)

// Record is one stored weight.
type Record struct {
	Key        string    `json:"key"`
	Weight     float64   `json:"weight"`
	SignalType string    `json:"signal_type"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store persists weights. Get returns DefaultWeight for absent keys and
// Upsert replaces or inserts atomically per key.
type Store interface {
	Get(ctx context.Context, key string) (float64, error)
	Upsert(ctx context.Context, key string, weight float64) error
	All(ctx context.Context) ([]Record, error)
}

// TypeOf derives the signal type from a weight key's prefix.
func TypeOf(key string) string {
	if strings.HasPrefix(key, TypeIndustry+"_") {
		return TypeIndustry
	}
	return TypeSignal
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.records[key]; ok {
		return r.Weight, nil
	}
	return DefaultWeight, nil
}

func (s *MemoryStore) Upsert(_ context.Context, key string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = Record{
		Key:        key,
		Weight:     weight,
		SignalType: TypeOf(key),
		UpdatedAt:  s.now(),
	}
	return nil
}

// All returns every record ordered by key.
func (s *MemoryStore) All(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
