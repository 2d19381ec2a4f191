package dossier

import (
	"strings"

	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

const (
	maxBattlecards    = 5
	pitchProducts     = 3
	pitchSummaryRunes = 150
)

// Battlecard is a competitive talking-point card for one product.
type Battlecard struct {
	Product  signals.Product `json:"product"`
	Headline string          `json:"headline"`
	Points   []string        `json:"points"`
	CTA      string          `json:"cta"`
}

// WhyUs is the dossier's competitive section: the primary product's card
// plus every card relevant to the recommended products.
type WhyUs struct {
	PrimaryHeadline string       `json:"primary_headline"`
	PrimaryPoints   []string     `json:"primary_points"`
	PrimaryCTA      string       `json:"primary_cta"`
	Battlecards     []Battlecard `json:"all_battlecards"`
}

var battlecards = map[signals.Product]Battlecard{
	signals.ProductMarineFuel: {
		Headline: "HPCL Marine Fuels vs industry",
		Points: []string{
			"HPCL supplies IMO 2020-compliant low-sulphur marine fuels at major Indian ports (Mumbai, Kochi, Chennai, Vizag).",
			"Quality conforms to ISO 8217; consistent supply for bunkering and long-term contracts.",
			"Strong logistics and storage at port locations reduces delivery risk for shipping lines.",
		},
		CTA: "Position HPCL’s port infrastructure and compliance for marine tenders.",
	},
	signals.ProductBitumen: {
		Headline: "HPCL Bitumen for roads and paving",
		Points: []string{
			"VG-30 and VG-40 grades supplied to NHAI and state highway projects; proven track record.",
			"Meets IS 73 and MORTH specs; suitable for hot-mix and paving applications.",
			"Pan-India supply chain supports timely delivery for project schedules.",
		},
		CTA: "Lead with NHAI/state project references and VG-30 availability for highway tenders.",
	},
	signals.ProductPetcoke: {
		Headline: "HPCL Petcoke for cement and industrial",
		Points: []string{
			"Petcoke suitable for cement kilns and industrial furnaces; quality specs as per offtake requirements.",
			"Sourcing from HPCL refineries ensures consistent quality and supply security.",
			"Competitive pricing and volume flexibility for large cement/steel customers.",
		},
		CTA: "Emphasise refinery-backed supply and quality consistency for expansion/new plant discussions.",
	},
	signals.ProductFurnaceOil: {
		Headline: "HPCL Furnace Oil and industrial fuels",
		Points: []string{
			"Furnace oil and LSHS for boilers, kilns, and process heating; meets industrial specs.",
			"Reliable supply from HPCL refineries; supports both spot and contract requirements.",
			"Technical support available for combustion and efficiency optimisation.",
		},
		CTA: "Offer furnace oil/LSHS for expansion and captive power needs.",
	},
	signals.ProductIndustrialFuels: {
		Headline: "HPCL Industrial Fuels",
		Points: []string{
			"Wide range of industrial fuels for manufacturing, power backup, and process use.",
			"Supply chain and safety standards aligned with large industrial customers.",
			"Flexible delivery and contract options for bulk offtake.",
		},
		CTA: "Position full product range and logistics for multi-site industrials.",
	},
	signals.ProductATF: {
		Headline: "HPCL ATF and jet fuel",
		Points: []string{
			"ATF supplied to major airports; meets DGCA and international specs.",
			"Into-plane and storage infrastructure at key airports.",
			"Quality and compliance documentation for aviation tenders.",
		},
		CTA: "Lead with airport presence and compliance for aviation contracts.",
	},
	signals.ProductLSHS: {
		Headline: "HPCL LSHS",
		Points: []string{
			"Low-sulphur heavy stock for industrial boilers and marine applications.",
			"Meets environmental norms; suitable for long-term supply agreements.",
			"Available at select locations; discuss logistics for your geography.",
		},
		CTA: "Position LSHS for boiler and marine segments with compliance focus.",
	},
	signals.ProductBunker: {
		Headline: "HPCL Bunker fuels",
		Points: []string{
			"Bunker fuels at key ports; IMO 2020 compliant options.",
			"Competitive pricing and reliable supply for shipping lines.",
			"Coordination with port authorities for smooth bunkering.",
		},
		CTA: "Use port coverage and compliance as differentiators in marine tenders.",
	},
	signals.ProductVGB: {
		Headline: "HPCL VGB (Viscosity Grade Bitumen)",
		Points: []string{
			"VGB grades for specialised paving and industrial applications.",
			"Consistent quality from refinery production.",
			"Suitable for state and private road projects.",
		},
		CTA: "Recommend VGB where spec requires viscosity-grade bitumen.",
	},
	signals.ProductPavingGrade: {
		Headline: "HPCL Paving-grade bitumen",
		Points: []string{
			"Paving-grade bitumen (VG-10, VG-30, VG-40) for roads and runways.",
			"Widely used in NHAI and state projects.",
			"Supply and logistics aligned to project timelines.",
		},
		CTA: "Lead with VG-30 for highway projects and project references.",
	},
	signals.ProductSpecialtyProducts: {
		Headline: "HPCL Specialty products",
		Points: []string{
			"Specialty and value-added products for refinery and petrochemical offtake.",
			"Quality and specs as per customer and application.",
			"Technical engagement for custom requirements.",
		},
		CTA: "Position specialty range for refinery/petrochemical tenders.",
	},
}

// CardFor returns the battlecard for a product.
func CardFor(p signals.Product) (Battlecard, bool) {
	c, ok := battlecards[p]
	if !ok {
		return Battlecard{}, false
	}
	c.Product = p
	c.Points = append([]string(nil), c.Points...)
	return c, true
}

// BuildWhyUs picks the primary product's card, falling back to the
// Industrial Fuels card, and collects cards for up to five products.
func BuildWhyUs(products []signals.Product) WhyUs {
	primary := signals.ProductIndustrialFuels
	if len(products) > 0 {
		primary = products[0]
	}

	card, ok := CardFor(primary)
	if !ok {
		card, _ = CardFor(signals.ProductIndustrialFuels)
		card.Product = primary
	}

	var cards []Battlecard
	seen := make(map[signals.Product]bool)
	for _, p := range products[:min(maxBattlecards, len(products))] {
		if seen[p] {
			continue
		}
		seen[p] = true
		if c, ok := CardFor(p); ok {
			cards = append(cards, c)
		}
	}
	if len(cards) == 0 {
		cards = []Battlecard{card}
	}

	return WhyUs{
		PrimaryHeadline: card.Headline,
		PrimaryPoints:   card.Points,
		PrimaryCTA:      card.CTA,
		Battlecards:     cards,
	}
}

// PitchScript is a short opening script a sales officer can read out.
func PitchScript(company string, industry signals.Industry, products []signals.Product, summary string) string {
	offer := "industrial fuels"
	if len(products) > 0 {
		offer = strings.Join(signals.ProductNames(products[:min(pitchProducts, len(products))]), ", ")
	}

	opener := "We would like to discuss how HPCL can support your needs."
	if summary != "" {
		opener = truncate(summary, pitchSummaryRunes)
	}

	return "Hi, I'm from HPCL Direct Sales. We noticed " + company +
		" may have requirements in " + offer + " (" + string(industry) + "). " +
		opener + " We supply to leading players in the segment and would welcome a short conversation. " +
		"Would you be open to a 15-minute call this week?"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
