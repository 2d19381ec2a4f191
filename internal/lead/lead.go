// Package lead holds the persisted lead record and its repository.
package lead

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dany7865/IITR-esummit07/internal/dossier"
	"github.com/Dany7865/IITR-esummit07/internal/feedback"
)

var ErrNotFound = errors.New("lead not found")

// Lead is a stored dossier plus its lifecycle state.
type Lead struct {
	ID                string           `json:"id"`
	Key               string           `json:"key"`
	Dossier           dossier.Dossier  `json:"dossier"`
	Status            feedback.Outcome `json:"status"`
	AssignedOfficerID string           `json:"assigned_officer_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// New wraps a dossier as a fresh lead.
func New(d dossier.Dossier, now time.Time) *Lead {
	now = now.UTC()
	return &Lead{
		ID:        NewID(),
		Key:       CanonicalKey(d.Company, d.RawText),
		Dossier:   d,
		Status:    feedback.OutcomeNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether s is a well-formed lead id.
func ValidID(s string) bool {
	return uuid.Validate(s) == nil
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Filter narrows a listing. Zero values match everything; Company and
// Industry are case-insensitive substring matches.
type Filter struct {
	Company  string
	Industry string
	Priority string
	Status   feedback.Outcome
	MinScore *int
	MaxScore *int
	Limit    int
	Offset   int
}

// Normalize clamps the page window.
func (f Filter) Normalize() Filter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	f.Limit = min(f.Limit, MaxLimit)
	f.Offset = max(f.Offset, 0)
	f.Priority = strings.ToUpper(f.Priority)
	return f
}

func (f Filter) Match(l *Lead) bool {
	d := l.Dossier
	if f.Company != "" && !containsFold(d.Company, f.Company) {
		return false
	}
	if f.Industry != "" && !containsFold(string(d.Industry), f.Industry) {
		return false
	}
	if f.Priority != "" && !strings.EqualFold(string(d.Priority), f.Priority) {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.MinScore != nil && d.Score < *f.MinScore {
		return false
	}
	if f.MaxScore != nil && d.Score > *f.MaxScore {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Repository persists leads. List orders by score, then newest first.
type Repository interface {
	Create(ctx context.Context, l *Lead) error
	Get(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, f Filter) ([]*Lead, error)
	UpdateStatus(ctx context.Context, id string, status feedback.Outcome, officerID string) error
	Industry(ctx context.Context, id string) (string, error)
	// CanonicalKeys returns the dedup keys of every stored lead.
	CanonicalKeys(ctx context.Context) ([]string, error)
}
