// Package aggregator rolls stored leads up into per-industry pipeline
// statistics.
package aggregator

import (
	"math"
	"sort"
	"time"

	"github.com/Dany7865/IITR-esummit07/internal/feedback"
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

type Config struct {
	// TopProducts caps the products listed per industry.
	TopProducts int
	// MinActioned is how many actioned leads an industry needs before a
	// conversion rate is reported for it.
	MinActioned int
}

func DefaultConfig() Config {
	return Config{
		TopProducts: 3,
		MinActioned: 1,
	}
}

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IndustryStats summarises the leads of one industry.
type IndustryStats struct {
	Industry       signals.Industry `json:"industry"`
	Leads          int              `json:"leads"`
	High           int              `json:"high_priority"`
	AverageScore   float64          `json:"average_score"`
	MaxScore       int              `json:"max_score"`
	Actioned       int              `json:"actioned"`
	Converted      int              `json:"converted"`
	Rejected       int              `json:"rejected"`
	ConversionRate *float64         `json:"conversion_rate,omitempty"`
	TopProducts    []string         `json:"top_products"`
}

// Report is the whole-pipeline summary.
type Report struct {
	GeneratedAt  time.Time       `json:"generated_at"`
	TotalLeads   int             `json:"total_leads"`
	AverageScore float64         `json:"average_score"`
	ByPriority   map[string]int  `json:"by_priority"`
	ByStatus     map[string]int  `json:"by_status"`
	TimeRange    TimeRange       `json:"time_range"`
	Industries   []IndustryStats `json:"industries"`
}

type Aggregator struct {
	config Config
	now    func() time.Time
}

func NewAggregator(cfg Config) *Aggregator {
	if cfg.TopProducts <= 0 {
		cfg.TopProducts = DefaultConfig().TopProducts
	}
	return &Aggregator{
		config: cfg,
		now:    time.Now,
	}
}

func (a *Aggregator) Aggregate(leads []*lead.Lead) *Report {
	report := &Report{
		GeneratedAt: a.now().UTC(),
		TotalLeads:  len(leads),
		ByPriority:  make(map[string]int),
		ByStatus:    make(map[string]int),
		Industries:  []IndustryStats{},
	}
	if len(leads) == 0 {
		return report
	}

	total := 0
	for _, l := range leads {
		total += l.Dossier.Score
		report.ByPriority[string(l.Dossier.Priority)]++
		report.ByStatus[string(l.Status)]++
		a.extendRange(&report.TimeRange, l.CreatedAt)
	}
	report.AverageScore = round1(float64(total) / float64(len(leads)))

	for industry, group := range a.groupByIndustry(leads) {
		report.Industries = append(report.Industries, a.aggregateGroup(industry, group))
	}
	a.sortIndustries(report.Industries)

	return report
}

func (a *Aggregator) extendRange(r *TimeRange, t time.Time) {
	if r.Start.IsZero() || t.Before(r.Start) {
		r.Start = t
	}
	if t.After(r.End) {
		r.End = t
	}
}

func (a *Aggregator) groupByIndustry(leads []*lead.Lead) map[signals.Industry][]*lead.Lead {
	groups := make(map[signals.Industry][]*lead.Lead)

	for _, l := range leads {
		industry := l.Dossier.Industry
		if industry == "" {
			industry = signals.IndustryUnknown
		}
		groups[industry] = append(groups[industry], l)
	}

	return groups
}

func (a *Aggregator) aggregateGroup(industry signals.Industry, leads []*lead.Lead) IndustryStats {
	stats := IndustryStats{Industry: industry, Leads: len(leads)}

	total := 0
	products := make(map[string]int)
	for _, l := range leads {
		d := l.Dossier
		total += d.Score
		stats.MaxScore = max(stats.MaxScore, d.Score)
		if d.Priority == scoring.PriorityHigh {
			stats.High++
		}
		for _, p := range d.Products {
			products[string(p)]++
		}

		switch l.Status {
		case feedback.OutcomeNew, "":
		case feedback.OutcomeConverted:
			stats.Actioned++
			stats.Converted++
		case feedback.OutcomeRejected:
			stats.Actioned++
			stats.Rejected++
		default:
			stats.Actioned++
		}
	}

	stats.AverageScore = round1(float64(total) / float64(len(leads)))
	if stats.Actioned > 0 && stats.Actioned >= a.config.MinActioned {
		rate := round1(float64(stats.Converted) / float64(stats.Actioned) * 100)
		stats.ConversionRate = &rate
	}
	stats.TopProducts = a.topProducts(products)

	return stats
}

func (a *Aggregator) topProducts(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > a.config.TopProducts {
		names = names[:a.config.TopProducts]
	}
	return names
}

func (a *Aggregator) sortIndustries(stats []IndustryStats) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Leads != stats[j].Leads {
			return stats[i].Leads > stats[j].Leads
		}
		if stats[i].AverageScore != stats[j].AverageScore {
			return stats[i].AverageScore > stats[j].AverageScore
		}
		return stats[i].Industry < stats[j].Industry
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
