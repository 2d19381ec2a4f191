package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

const (
	baseWeight       = 0.85
	weightSpan       = 0.35
	unknownIndustry  = "Unknown"
	industryKeyStart = weights.TypeIndustry + "_"
)

// Adapter records outcomes and keeps the industry weights in line with the
// outcome history.
type Adapter struct {
	log      Log
	leads    StatusUpdater
	store    weights.Store
	officers OfficerDirectory
	logger   logger.Logger
	now      func() time.Time
}

type Option func(*Adapter)

// WithOfficers rejects outcomes naming an officer the directory does not
// list as active.
func WithOfficers(d OfficerDirectory) Option {
	return func(a *Adapter) { a.officers = d }
}

// NewAdapter wires an adapter. leads may be nil when lead status is tracked
// elsewhere or the log is a Recorder.
func NewAdapter(log Log, leads StatusUpdater, store weights.Store, l logger.Logger, opts ...Option) *Adapter {
	if l == nil {
		l = logger.NewNop()
	}
	a := &Adapter{
		log:    log,
		leads:  leads,
		store:  store,
		logger: l,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RecordOutcome moves the lead to the outcome's status, appends the event
// and refreshes the weights. The status change and the event land together
// or not at all.
func (a *Adapter) RecordOutcome(ctx context.Context, leadID string, outcome Outcome, officerID, notes string) (Event, error) {
	if !outcome.IsValid() {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
	if leadID == "" {
		return Event{}, errors.New("lead id is required")
	}
	if err := a.checkOfficer(ctx, officerID); err != nil {
		return Event{}, err
	}

	ev, err := a.write(ctx, Event{
		LeadID:    leadID,
		Outcome:   outcome,
		OfficerID: officerID,
		Notes:     notes,
		CreatedAt: a.now().UTC(),
	})
	if err != nil {
		return Event{}, err
	}

	a.logger.Info("feedback recorded",
		logger.String("lead_id", leadID),
		logger.String("outcome", string(outcome)),
	)

	a.Refresh(ctx)
	return ev, nil
}

func (a *Adapter) checkOfficer(ctx context.Context, officerID string) error {
	if officerID == "" || a.officers == nil {
		return nil
	}
	ok, err := a.officers.Active(ctx, officerID)
	if err != nil {
		return fmt.Errorf("failed to look up officer %s: %w", officerID, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOfficer, officerID)
	}
	return nil
}

func (a *Adapter) write(ctx context.Context, ev Event) (Event, error) {
	if rec, ok := a.log.(Recorder); ok {
		out, err := rec.Record(ctx, ev)
		if err != nil {
			return Event{}, fmt.Errorf("failed to record feedback: %w", err)
		}
		return out, nil
	}

	if a.leads == nil {
		out, err := a.log.Append(ctx, ev)
		if err != nil {
			return Event{}, fmt.Errorf("failed to record feedback: %w", err)
		}
		return out, nil
	}

	restorer, canRestore := a.leads.(StatusRestorer)
	var prevStatus Outcome
	var prevOfficer string
	if canRestore {
		var err error
		prevStatus, prevOfficer, err = restorer.Status(ctx, ev.LeadID)
		if err != nil {
			return Event{}, fmt.Errorf("failed to update lead status: %w", err)
		}
	}

	if err := a.leads.UpdateStatus(ctx, ev.LeadID, ev.Outcome, ev.OfficerID); err != nil {
		return Event{}, fmt.Errorf("failed to update lead status: %w", err)
	}

	out, err := a.log.Append(ctx, ev)
	if err == nil {
		return out, nil
	}

	if !canRestore {
		a.logger.Error("Lead status changed without a feedback event",
			logger.String("lead_id", ev.LeadID), logger.Error(err))
		return Event{}, fmt.Errorf("failed to record feedback: %w", err)
	}
	if rerr := restorer.RestoreStatus(ctx, ev.LeadID, prevStatus, prevOfficer); rerr != nil {
		a.logger.Error("Failed to restore lead status",
			logger.String("lead_id", ev.LeadID), logger.Error(rerr))
		return Event{}, fmt.Errorf("failed to record feedback: %w", errors.Join(err, rerr))
	}
	return Event{}, fmt.Errorf("failed to record feedback: %w", err)
}

// Refresh recomputes the weights, leaving them untouched when the outcome
// history cannot be read.
func (a *Adapter) Refresh(ctx context.Context) {
	if _, err := a.RecomputeWeights(ctx); err != nil {
		a.logger.Warn("weight refresh skipped", logger.Error(err))
	}
}

// RecomputeWeights recomputes every industry weight from the full outcome
// history and upserts the results.
func (a *Adapter) RecomputeWeights(ctx context.Context) ([]weights.Record, error) {
	outcomes, err := a.log.Outcomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	records := Recompute(outcomes)
	for i, r := range records {
		if err := a.store.Upsert(ctx, r.Key, r.Weight); err != nil {
			return nil, fmt.Errorf("failed to upsert weight %s: %w", r.Key, err)
		}
		records[i].UpdatedAt = a.now().UTC()
		a.logger.Debug("weight updated", logger.String("key", r.Key), logger.Float64("weight", r.Weight))
	}

	a.logger.Debug("weights recomputed", logger.Int("industries", len(records)))
	return records, nil
}

// Recompute derives one weight per industry:
// round(0.85 + 0.35*accepted/total, 2). Records are ordered by key.
func Recompute(outcomes []IndustryOutcome) []weights.Record {
	type tally struct{ accepted, total int }
	groups := make(map[string]*tally)

	for _, o := range outcomes {
		industry := o.Industry
		if industry == "" {
			industry = unknownIndustry
		}
		t, ok := groups[industry]
		if !ok {
			t = &tally{}
			groups[industry] = t
		}
		t.total++
		if o.Outcome.Positive() {
			t.accepted++
		}
	}

	records := make([]weights.Record, 0, len(groups))
	for industry, t := range groups {
		ratio := float64(t.accepted) / float64(t.total)
		records = append(records, weights.Record{
			Key:        industryKeyStart + industry,
			Weight:     round2(baseWeight + weightSpan*ratio),
			SignalType: weights.TypeIndustry,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
