package notify

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	DefaultInboxLimit = 50
	MaxInboxLimit     = 500
)

// Record is one delivered message as kept for its recipient.
type Record struct {
	ID        int64     `json:"id"`
	OfficerID string    `json:"officer_id"`
	LeadID    string    `json:"lead_id,omitempty"`
	Channel   string    `json:"channel"`
	Kind      Kind      `json:"notification_type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// Inbox stores delivered messages. ForOfficer returns newest first.
type Inbox interface {
	Append(ctx context.Context, r Record) (Record, error)
	ForOfficer(ctx context.Context, officerID string, limit int) ([]Record, error)
}

// ClampLimit applies the inbox page defaults.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultInboxLimit
	}
	return min(limit, MaxInboxLimit)
}

// MemoryInbox keeps records in process memory.
type MemoryInbox struct {
	mu      sync.Mutex
	records []Record
	nextID  int64
	now     func() time.Time
}

func NewMemoryInbox() *MemoryInbox {
	return &MemoryInbox{now: time.Now}
}

func (in *MemoryInbox) Append(_ context.Context, r Record) (Record, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.nextID++
	r.ID = in.nextID
	if r.SentAt.IsZero() {
		r.SentAt = in.now().UTC()
	}
	in.records = append(in.records, r)
	return r, nil
}

func (in *MemoryInbox) ForOfficer(_ context.Context, officerID string, limit int) ([]Record, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	var out []Record
	for _, r := range in.records {
		if r.OfficerID == officerID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].SentAt.After(out[j].SentAt)
		}
		return out[i].ID > out[j].ID
	})
	return out[:min(len(out), ClampLimit(limit))], nil
}
