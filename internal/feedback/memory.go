package feedback

import (
	"context"
	"fmt"
	"sync"
)

// IndustryLookup resolves a lead id to the industry it was classified as.
type IndustryLookup func(ctx context.Context, leadID string) (string, error)

// MemoryLog is an in-process Log. Outcomes resolves industries through the
// lookup at read time, like a join against the leads table.
type MemoryLog struct {
	mu     sync.Mutex
	events []Event
	lookup IndustryLookup
}

func NewMemoryLog(lookup IndustryLookup) *MemoryLog {
	return &MemoryLog{lookup: lookup}
}

func (l *MemoryLog) Append(_ context.Context, ev Event) (Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev.ID = int64(len(l.events) + 1)
	l.events = append(l.events, ev)
	return ev, nil
}

// Events returns a copy of every appended event in order.
func (l *MemoryLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

func (l *MemoryLog) Outcomes(ctx context.Context) ([]IndustryOutcome, error) {
	events := l.Events()

	out := make([]IndustryOutcome, 0, len(events))
	for _, ev := range events {
		industry := ""
		if l.lookup != nil {
			ind, err := l.lookup(ctx, ev.LeadID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve industry for lead %s: %w", ev.LeadID, err)
			}
			industry = ind
		}
		out = append(out, IndustryOutcome{Industry: industry, Outcome: ev.Outcome})
	}
	return out, nil
}
