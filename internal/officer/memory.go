package officer

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps officers in process memory, in insertion order.
type MemoryRepository struct {
	mu       sync.RWMutex
	officers []*Officer
	byID     map[string]*Officer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*Officer)}
}

func (r *MemoryRepository) Create(_ context.Context, o *Officer) error {
	if err := o.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if _, exists := r.byID[o.ID]; exists {
		return fmt.Errorf("officer %s already exists", o.ID)
	}
	cp := *o
	r.officers = append(r.officers, &cp)
	r.byID[o.ID] = &cp
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*Officer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *MemoryRepository) List(_ context.Context, activeOnly bool) ([]*Officer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Officer, 0, len(r.officers))
	for _, o := range r.officers {
		if activeOnly && !o.Active {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

// Active reports whether id names an active officer.
func (r *MemoryRepository) Active(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	return ok && o.Active, nil
}
