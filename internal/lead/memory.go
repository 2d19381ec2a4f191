package lead

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
)

// MemoryRepository keeps leads in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*Lead
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		leads: make(map[string]*Lead),
		now:   time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, l *Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		l.ID = NewID()
	}
	if _, exists := r.leads[l.ID]; exists {
		return fmt.Errorf("lead %s already exists", l.ID)
	}
	if l.Key == "" {
		l.Key = CanonicalKey(l.Dossier.Company, l.Dossier.RawText)
	}
	cp := *l
	r.leads[l.ID] = &cp
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *MemoryRepository) List(_ context.Context, f Filter) ([]*Lead, error) {
	f = f.Normalize()

	r.mu.RLock()
	var out []*Lead
	for _, l := range r.leads {
		if f.Match(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Dossier.Score != out[j].Dossier.Score {
			return out[i].Dossier.Score > out[j].Dossier.Score
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status feedback.Outcome, officerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leads[id]
	if !ok {
		return ErrNotFound
	}
	l.Status = status
	if officerID != "" {
		l.AssignedOfficerID = officerID
	}
	l.UpdatedAt = r.now().UTC()
	return nil
}

func (r *MemoryRepository) Status(_ context.Context, id string) (feedback.Outcome, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return "", "", ErrNotFound
	}
	return l.Status, l.AssignedOfficerID, nil
}

// RestoreStatus sets the status and assignment exactly, clearing the
// assignment when officerID is empty.
func (r *MemoryRepository) RestoreStatus(_ context.Context, id string, status feedback.Outcome, officerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leads[id]
	if !ok {
		return ErrNotFound
	}
	l.Status = status
	l.AssignedOfficerID = officerID
	l.UpdatedAt = r.now().UTC()
	return nil
}

func (r *MemoryRepository) Industry(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return "", ErrNotFound
	}
	return string(l.Dossier.Industry), nil
}

func (r *MemoryRepository) CanonicalKeys(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.leads))
	for _, l := range r.leads {
		keys = append(keys, l.Key)
	}
	sort.Strings(keys)
	return keys, nil
}
