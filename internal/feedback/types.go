// Package feedback records lead outcomes and adapts the industry scoring
// weights from the outcome history.
package feedback

import (
	"context"
	"errors"
	"time"
)

type Outcome string

const (
	OutcomeNew       Outcome = "New"
	OutcomeAssigned  Outcome = "Assigned"
	OutcomeAccepted  Outcome = "Accepted"
	OutcomeRejected  Outcome = "Rejected"
	OutcomeConverted Outcome = "Converted"
)

var ValidOutcomes = map[Outcome]string{
	OutcomeNew:       "Lead created, not yet actioned",
	OutcomeAssigned:  "Lead assigned to a sales officer",
	OutcomeAccepted:  "Officer accepted the lead",
	OutcomeRejected:  "Lead judged not relevant",
	OutcomeConverted: "Lead converted into business",
}

func (o Outcome) IsValid() bool {
	_, ok := ValidOutcomes[o]
	return ok
}

// Positive reports whether the outcome counts as an accepted lead.
func (o Outcome) Positive() bool {
	return o == OutcomeAssigned || o == OutcomeAccepted || o == OutcomeConverted
}

var (
	ErrInvalidOutcome = errors.New("invalid outcome")
	ErrUnknownOfficer = errors.New("unknown or inactive officer")
)

// Event is one recorded outcome. Events are append-only.
type Event struct {
	ID        int64     `json:"id"`
	LeadID    string    `json:"lead_id"`
	Outcome   Outcome   `json:"outcome"`
	OfficerID string    `json:"officer_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IndustryOutcome pairs an event's outcome with the industry of its lead.
type IndustryOutcome struct {
	Industry string
	Outcome  Outcome
}

// Log stores outcome events and resolves them against their leads'
// industries.
type Log interface {
	Append(ctx context.Context, ev Event) (Event, error)
	Outcomes(ctx context.Context) ([]IndustryOutcome, error)
}

// StatusUpdater moves a lead to the status named by an outcome. An empty
// officerID leaves the assignment unchanged.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, leadID string, status Outcome, officerID string) error
}

// Recorder is a Log that can apply an event's status to its lead and append
// the event in one transaction. The adapter prefers it over a separate
// StatusUpdater.
type Recorder interface {
	Record(ctx context.Context, ev Event) (Event, error)
}

// StatusRestorer lets the adapter put a lead back when the event for its
// status change could not be appended.
type StatusRestorer interface {
	Status(ctx context.Context, leadID string) (Outcome, string, error)
	RestoreStatus(ctx context.Context, leadID string, status Outcome, officerID string) error
}

// OfficerDirectory reports whether an officer id may be assigned leads.
type OfficerDirectory interface {
	Active(ctx context.Context, officerID string) (bool, error)
}
