// Package officer holds the sales officers leads are routed to and their
// repository.
package officer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("officer not found")
	ErrInvalid  = errors.New("invalid officer")
)

// Officer is a sales officer who can be assigned leads and receives alerts.
type Officer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Region    string    `json:"region,omitempty"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// New returns an active officer with a fresh id.
func New(name, phone, email, region string, now time.Time) *Officer {
	return &Officer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
		Region:    strings.TrimSpace(region),
		Active:    true,
		CreatedAt: now.UTC(),
	}
}

// Default is the catch-all officer a fresh install routes alerts to.
func Default(now time.Time) *Officer {
	return New("Default Officer", "91XXXXXXXXXX", "", "All", now)
}

// Validate reports ErrInvalid when the officer cannot be stored.
func (o *Officer) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.Join(ErrInvalid, errors.New("name is required"))
	}
	return nil
}

// Repository persists officers. List orders by creation time, oldest first,
// so the first active officer is stable.
type Repository interface {
	Create(ctx context.Context, o *Officer) error
	Get(ctx context.Context, id string) (*Officer, error)
	List(ctx context.Context, activeOnly bool) ([]*Officer, error)
}

type Lister interface {
	List(ctx context.Context, activeOnly bool) ([]*Officer, error)
}

// FirstActive returns the longest-serving active officer, or ErrNotFound
// when there is none.
func FirstActive(ctx context.Context, r Lister) (*Officer, error) {
	officers, err := r.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(officers) == 0 {
		return nil, ErrNotFound
	}
	return officers[0], nil
}

// EnsureDefault stores the Default officer when the repository is empty. It
// reports whether one was created.
func EnsureDefault(ctx context.Context, r Repository, now time.Time) (bool, error) {
	officers, err := r.List(ctx, false)
	if err != nil {
		return false, err
	}
	if len(officers) > 0 {
		return false, nil
	}
	if err := r.Create(ctx, Default(now)); err != nil {
		return false, err
	}
	return true, nil
}
