package weights

import (
	"context"

	"github.com/Dany7865/IITR-esummit07/internal/logger"
)

// Source yields the weight for a key and never fails.
type Source interface {
	Weight(ctx context.Context, key string) float64
}

// Resolver adapts a Store to a Source. A store error yields DefaultWeight
// and a warning.
type Resolver struct {
	store  Store
	logger logger.Logger
}

func NewResolver(store Store, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{store: store, logger: log}
}

func (r *Resolver) Weight(ctx context.Context, key string) float64 {
	if r.store == nil {
		return DefaultWeight
	}
	w, err := r.store.Get(ctx, key)
	if err != nil {
		r.logger.Warn("weight store unavailable, using default weight",
			logger.String("key", key),
			logger.Error(err),
		)
		return DefaultWeight
	}
	return w
}

// Map is a fixed Source, handy for tests and dry runs.
type Map map[string]float64

func (m Map) Weight(_ context.Context, key string) float64 {
	if w, ok := m[key]; ok {
		return w
	}
	return DefaultWeight
}
