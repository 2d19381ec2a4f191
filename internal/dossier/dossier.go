// Package dossier assembles the sales-facing lead dossier from a scoring
// result.
package dossier

import (
	"strings"

	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

// Dossier is everything a sales officer needs about one lead. Score fields
// are a snapshot taken when the dossier was assembled.
type Dossier struct {
	Company          string                     `json:"company"`
	RawText          string                     `json:"raw_text"`
	Source           string                     `json:"source"`
	SourceURL        string                     `json:"source_url"`
	Industry         signals.Industry           `json:"industry"`
	Products         []signals.Product          `json:"product_recommendations"`
	RequirementClues []string                   `json:"requirement_clues"`
	Score            int                        `json:"score"`
	Confidence       int                        `json:"confidence"`
	Priority         scoring.Priority           `json:"priority"`
	IntentScore      int                        `json:"intent_score"`
	Summary          string                     `json:"summary"`
	SuggestedActions []string                   `json:"suggested_actions"`
	Fingerprint      []signals.FingerprintEntry `json:"signal_fingerprint"`
	ProductReasoning string                     `json:"product_reasoning"`
	WhyUs            WhyUs                      `json:"why_hpcl"`
	PitchScript      string                     `json:"sales_pitch_script"`
}

// Primary returns the primary recommended product.
func (d Dossier) Primary() signals.Product {
	if len(d.Products) == 0 {
		return signals.ProductIndustrialFuels
	}
	return d.Products[0]
}

// Assemble builds a dossier from a scoring result. It does no I/O.
func Assemble(company, raw, source, sourceURL string, res scoring.Result) Dossier {
	products := res.Products
	if len(products) == 0 {
		products = append([]signals.Product(nil), signals.DefaultProducts...)
	}

	return Dossier{
		Company:          company,
		RawText:          raw,
		Source:           source,
		SourceURL:        sourceURL,
		Industry:         res.Industry,
		Products:         products,
		RequirementClues: res.RequirementClues,
		Score:            res.Score,
		Confidence:       res.Confidence,
		Priority:         res.Priority,
		IntentScore:      res.IntentScore,
		Summary:          res.Summary,
		SuggestedActions: SuggestedActions(res.Priority, products),
		Fingerprint:      res.Fingerprint,
		ProductReasoning: signals.ProductReasoning(products),
		WhyUs:            BuildWhyUs(products),
		PitchScript:      PitchScript(company, res.Industry, products, res.Summary),
	}
}

// SuggestedActions lists next steps for the priority, always ending with the
// products to lead with.
func SuggestedActions(priority scoring.Priority, products []signals.Product) []string {
	var actions []string
	switch priority {
	case scoring.PriorityHigh:
		actions = append(actions,
			"Contact within 24–48 hours with product sheet",
			"Prepare quote for primary product(s)",
		)
	case scoring.PriorityMedium:
		actions = append(actions,
			"Reach out this week; share case studies",
			"Identify decision-maker",
		)
	default:
		actions = append(actions, "Add to nurture list; periodic check")
	}

	top := signals.ProductNames(products[:min(pitchProducts, len(products))])
	return append(actions, "Highlight HPCL capability in: "+strings.Join(top, ", "))
}
