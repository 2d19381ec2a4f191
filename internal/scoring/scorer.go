// Package scoring turns raw text into a 0-100 sales-opportunity score with
// priority, confidence and the classification that produced it.
package scoring

import (
	"context"
	"math"
	"strings"

	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/nlp"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

var ValidPriorities = map[Priority]string{
	PriorityHigh:   "Contact within 48 hours",
	PriorityMedium: "Contact this week",
	PriorityLow:    "Nurture",
}

func (p Priority) IsValid() bool {
	_, ok := ValidPriorities[p]
	return ok
}

const (
	procurementPoints = 15
	expansionPoints   = 25
	tenderPoints      = 20
	industryPoints    = 30
	phraseBoost       = 3
	orgBoost          = 2
	maxNLPBoost       = 5
	maxScore          = 100
	maxConfidence     = 95
	confidenceMargin  = 10

	expansionWeightKey = "signal_expansion"
	tenderWeightKey    = "signal_tender"
)

type Config struct {
	HighThreshold   int
	MediumThreshold int
}

func DefaultConfig() Config {
	return Config{
		HighThreshold:   75,
		MediumThreshold: 50,
	}
}

// Component is one named contribution to a score.
type Component struct {
	Name   string  `json:"name"`
	Key    string  `json:"key,omitempty"`
	Weight float64 `json:"weight,omitempty"`
	Points int     `json:"points"`
}

type Result struct {
	Industry         signals.Industry           `json:"industry"`
	Products         []signals.Product          `json:"product_recommendations"`
	RequirementClues []string                   `json:"requirement_clues"`
	MatchedSignals   []string                   `json:"matched_signals"`
	KeyPhrases       []string                   `json:"key_phrases"`
	Organizations    []string                   `json:"organizations"`
	Score            int                        `json:"score"`
	Confidence       int                        `json:"confidence"`
	Priority         Priority                   `json:"priority"`
	IntentScore      int                        `json:"intent_score"`
	Summary          string                     `json:"summary"`
	Fingerprint      []signals.FingerprintEntry `json:"fingerprint"`
	Components       []Component                `json:"components"`
}

type Scorer struct {
	config      Config
	detector    *signals.Detector
	weights     weights.Source
	logger      logger.Logger
	procurement *nlp.Matcher
	expansion   *nlp.Matcher
	tender      *nlp.Matcher
}

// NewScorer builds a scorer. A nil detector gets the default analyzer and a
// nil weight source scores every key at weights.DefaultWeight.
func NewScorer(cfg Config, detector *signals.Detector, source weights.Source, log logger.Logger) *Scorer {
	if detector == nil {
		detector = signals.NewDetector(nil)
	}
	if source == nil {
		source = weights.Map{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Scorer{
		config:      cfg,
		detector:    detector,
		weights:     source,
		logger:      log,
		procurement: nlp.NewMatcher(signals.ProcurementSignals...),
		expansion:   nlp.NewMatcher(signals.ExpansionTriggers...),
		tender:      nlp.NewMatcher(signals.TenderTriggers...),
	}
}

// Detector returns the detector the scorer classifies with.
func (s *Scorer) Detector() *signals.Detector {
	return s.detector
}

// Score analyses raw text. For fixed weights and thresholds the result is a
// pure function of the text.
func (s *Scorer) Score(ctx context.Context, raw string) Result {
	summary := s.detector.Analyzer().Summarize(ctx, raw)
	class := s.detector.Classify(raw)

	res := Result{
		Industry:         class.Industry,
		Products:         class.Products,
		RequirementClues: s.detector.RequirementClues(raw),
		MatchedSignals:   class.MatchedSignals,
		KeyPhrases:       summary.KeyPhrases,
		Organizations:    summary.Organizations,
		IntentScore:      summary.IntentScore,
		Summary:          summary.Summary,
		Fingerprint:      s.detector.Fingerprint(raw),
	}

	text := strings.ToLower(summary.Cleaned)

	if kw, ok := s.procurement.First(text); ok {
		res.add(s.weighted(ctx, "procurement", "signal_"+kw, procurementPoints))
	}
	if s.expansion.Any(text) {
		res.add(s.weighted(ctx, "expansion", expansionWeightKey, expansionPoints))
	}
	if s.tender.Any(text) {
		res.add(s.weighted(ctx, "tender", tenderWeightKey, tenderPoints))
	}
	if class.Industry != signals.IndustryUnknown {
		res.add(s.weighted(ctx, "industry", class.Industry.WeightKey(), industryPoints))
	}

	if boost := nlpBoost(summary); boost > 0 {
		res.add(Component{Name: "nlp_boost", Points: boost})
	}
	if intent := summary.IntentScore / 10; intent > 0 {
		res.add(Component{Name: "intent", Points: intent})
	}

	res.Score = clamp(res.Score, 0, maxScore)
	res.Confidence = Confidence(res.Score)
	res.Priority = s.Priority(res.Score)

	s.logger.Debug("scored text",
		logger.String("industry", string(res.Industry)),
		logger.String("primary_product", string(class.Primary())),
		logger.Int("score", res.Score),
		logger.String("priority", string(res.Priority)),
	)

	return res
}

func (r *Result) add(c Component) {
	r.Components = append(r.Components, c)
	r.Score += c.Points
}

func (s *Scorer) weighted(ctx context.Context, name, key string, base int) Component {
	w := s.weights.Weight(ctx, key)
	return Component{
		Name:   name,
		Key:    key,
		Weight: w,
		Points: int(math.Round(float64(base) * w)),
	}
}

func nlpBoost(summary nlp.Summary) int {
	boost := 0
	if len(summary.KeyPhrases) >= 2 {
		boost += phraseBoost
	}
	if len(summary.Organizations) > 0 {
		boost += orgBoost
	}
	return min(maxNLPBoost, boost)
}

// Priority buckets a score by the configured thresholds.
func (s *Scorer) Priority(score int) Priority {
	switch {
	case score >= s.config.HighThreshold:
		return PriorityHigh
	case score >= s.config.MediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Confidence is the score plus a fixed margin, capped at 95.
func Confidence(score int) int {
	return min(maxConfidence, score+confidenceMargin)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
