// Package pipeline turns raw discovery items into stored, scored leads.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/dossier"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/notify"
	"github.com/Dany7865/IITR-esummit07/internal/parser"
	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/telemetry"
)

const unknownCompany = "Unknown"

type Discovery struct {
	scorer   *scoring.Scorer
	leads    lead.Repository
	notifier *notify.Service
	metrics  *telemetry.Provider
	logger   logger.Logger
	now      func() time.Time
}

// Config wires a Discovery. Notifier and Metrics are optional.
type Config struct {
	Scorer   *scoring.Scorer
	Leads    lead.Repository
	Notifier *notify.Service
	Metrics  *telemetry.Provider
	Logger   logger.Logger
}

func New(cfg Config) (*Discovery, error) {
	if cfg.Scorer == nil {
		return nil, errors.New("scorer is required")
	}
	if cfg.Leads == nil {
		return nil, errors.New("lead repository is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}

	return &Discovery{
		scorer:   cfg.Scorer,
		leads:    cfg.Leads,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		now:      time.Now,
	}, nil
}

type Stats struct {
	Read       int
	Duplicates int
	Stored     int
	Notified   int
	Failed     int
}

// Process dedupes the items against stored leads and each other, then
// scores, assembles and stores the rest. A failure on one item is logged
// and counted; only a failure to load existing keys aborts the run.
func (d *Discovery) Process(ctx context.Context, items []parser.Item) ([]*lead.Lead, Stats, error) {
	stats := Stats{Read: len(items)}

	keys, err := d.leads.CanonicalKeys(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to load lead keys: %w", err)
	}

	fresh, dups := NewFilter(keys).Filter(items)
	stats.Duplicates = dups
	if d.metrics != nil {
		d.metrics.RecordIngest(stats.Read, stats.Duplicates)
	}

	var stored []*lead.Lead
	for _, it := range fresh {
		if err := ctx.Err(); err != nil {
			return stored, stats, err
		}

		l, notified, err := d.Ingest(ctx, it)
		if err != nil {
			stats.Failed++
			d.logger.Warn("failed to ingest item",
				logger.String("company", it.Company),
				logger.String("source", it.Source),
				logger.Error(err),
			)
			continue
		}

		stored = append(stored, l)
		stats.Stored++
		if notified {
			stats.Notified++
		}
	}

	d.logger.Info("discovery run complete",
		logger.Int("read", stats.Read),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("stored", stats.Stored),
		logger.Int("notified", stats.Notified),
		logger.Int("failed", stats.Failed),
	)

	return stored, stats, nil
}

// Ingest scores and stores one item without dedup. A failed notification
// is logged; the lead stays stored.
func (d *Discovery) Ingest(ctx context.Context, it parser.Item) (*lead.Lead, bool, error) {
	started := d.now()
	res := d.scorer.Score(ctx, it.RawText)
	if d.metrics != nil {
		d.metrics.RecordScore(string(res.Industry), string(res.Priority), res.Score, d.now().Sub(started))
	}

	company := displayName(it.Company, res)
	doc := dossier.Assemble(company, it.RawText, it.Source, it.SourceURL, res)

	l := lead.New(doc, d.now())
	// dedup keys use the name as received so reruns of the same file match
	l.Key = lead.CanonicalKey(it.Company, it.RawText)
	if err := d.leads.Create(ctx, l); err != nil {
		return nil, false, fmt.Errorf("failed to store lead: %w", err)
	}
	if d.metrics != nil {
		d.metrics.RecordLeadStored(it.Source)
	}

	if d.notifier == nil {
		return l, false, nil
	}

	notified, err := d.notifier.NewLead(ctx, l.ID, doc)
	if err != nil {
		d.logger.Warn("notification failed", logger.String("lead_id", l.ID), logger.Error(err))
		return l, false, nil
	}
	if notified && d.metrics != nil {
		d.metrics.RecordNotification(string(notify.KindNewLead))
	}
	return l, notified, nil
}

// displayName prefers the normalised given name, then the first organisation
// found in the text.
func displayName(company string, res scoring.Result) string {
	if name := lead.NormalizeCompanyName(company); name != "" {
		return name
	}
	if len(res.Organizations) > 0 {
		return lead.NormalizeCompanyName(res.Organizations[0])
	}
	return unknownCompany
}
