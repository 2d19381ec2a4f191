// Package telemetry exports Prometheus metrics for scoring, discovery and
// feedback.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leadscope"

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Scoring
	TextsScored     *prometheus.CounterVec
	ScoreValue      prometheus.Histogram
	ScoringDuration prometheus.Histogram

	// Discovery
	ItemsIngested   prometheus.Counter
	ItemsDuplicated prometheus.Counter
	LeadsStored     *prometheus.CounterVec
	Notifications   *prometheus.CounterVec

	// Feedback
	FeedbackRecorded *prometheus.CounterVec
	WeightRefreshes  prometheus.Counter
	IndustryWeight   *prometheus.GaugeVec
}

// Provider owns a registry and the metrics registered on it.
type Provider struct {
	Registry *prometheus.Registry
	Metrics  *Metrics
}

// NewProvider registers every metric on reg, or on a fresh registry when reg
// is nil.
func NewProvider(reg *prometheus.Registry) *Provider {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Provider{
		Registry: reg,
		Metrics:  initMetrics(promauto.With(reg)),
	}
}

// Handler serves the registry at /metrics.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})
}

func initMetrics(f promauto.Factory) *Metrics {
	m := &Metrics{}
	initScoringMetrics(f, m)
	initDiscoveryMetrics(f, m)
	initFeedbackMetrics(f, m)
	return m
}

func initScoringMetrics(f promauto.Factory, m *Metrics) {
	m.TextsScored = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "texts_scored_total",
		Help:      "Total texts scored, by industry and priority",
	}, []string{"industry", "priority"})

	m.ScoreValue = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "score",
		Help:      "Distribution of opportunity scores",
		Buckets:   []float64{10, 25, 50, 75, 90, 100},
	})

	m.ScoringDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scoring_duration_seconds",
		Help:      "Time to score a single text",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
}

func initDiscoveryMetrics(f promauto.Factory, m *Metrics) {
	m.ItemsIngested = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_ingested_total",
		Help:      "Total raw items read by discovery",
	})

	m.ItemsDuplicated = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_duplicate_total",
		Help:      "Total raw items skipped as duplicates",
	})

	m.LeadsStored = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_stored_total",
		Help:      "Total leads stored, by source",
	}, []string{"source"})

	m.Notifications = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total notifications sent, by kind",
	}, []string{"kind"})
}

func initFeedbackMetrics(f promauto.Factory, m *Metrics) {
	m.FeedbackRecorded = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_recorded_total",
		Help:      "Total outcome events recorded, by outcome",
	}, []string{"outcome"})

	m.WeightRefreshes = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "weight_recomputes_total",
		Help:      "Total weight recomputations",
	})

	m.IndustryWeight = f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "industry_weight",
		Help:      "Current adapted weight per weight key",
	}, []string{"key"})
}

// RecordScore records one scoring run.
func (p *Provider) RecordScore(industry, priority string, score int, duration time.Duration) {
	p.Metrics.TextsScored.WithLabelValues(industry, priority).Inc()
	p.Metrics.ScoreValue.Observe(float64(score))
	p.Metrics.ScoringDuration.Observe(duration.Seconds())
}

// RecordIngest records one discovery batch.
func (p *Provider) RecordIngest(read, duplicates int) {
	p.Metrics.ItemsIngested.Add(float64(read))
	p.Metrics.ItemsDuplicated.Add(float64(duplicates))
}

func (p *Provider) RecordLeadStored(source string) {
	p.Metrics.LeadsStored.WithLabelValues(source).Inc()
}

func (p *Provider) RecordNotification(kind string) {
	p.Metrics.Notifications.WithLabelValues(kind).Inc()
}

func (p *Provider) RecordFeedback(outcome string) {
	p.Metrics.FeedbackRecorded.WithLabelValues(outcome).Inc()
}

// RecordWeights publishes a recomputed weight set.
func (p *Provider) RecordWeights(weights map[string]float64) {
	p.Metrics.WeightRefreshes.Inc()
	for key, w := range weights {
		p.Metrics.IndustryWeight.WithLabelValues(key).Set(w)
	}
}
