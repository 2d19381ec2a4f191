package dossier

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dany7865/IITR-esummit07/internal/scoring"
	"github.com/Dany7865/IITR-esummit07/internal/signals"
)

func TestAssemble_HighPriority(t *testing.T) {
	text := "Cement expansion tender fuel supply"
	res := scoring.NewScorer(scoring.DefaultConfig(), nil, nil, nil).Score(context.Background(), text)

	d := Assemble("ABC Cement Ltd", text, "news", "https://example.com/a", res)

	assert.Equal(t, "ABC Cement Ltd", d.Company)
	assert.Equal(t, "https://example.com/a", d.SourceURL)
	assert.Equal(t, signals.IndustryCement, d.Industry)
	assert.Equal(t, res.Score, d.Score)
	assert.Equal(t, scoring.PriorityHigh, d.Priority)
	assert.Equal(t, signals.ProductPetcoke, d.Primary())

	assert.Equal(t, []string{
		"Contact within 24–48 hours with product sheet",
		"Prepare quote for primary product(s)",
		"Highlight HPCL capability in: Petcoke, Furnace Oil, Industrial Fuels",
	}, d.SuggestedActions)

	assert.Equal(t, "HPCL Petcoke for cement and industrial", d.WhyUs.PrimaryHeadline)
	assert.Len(t, d.WhyUs.Battlecards, 3)
	assert.Len(t, d.Fingerprint, 3)
	assert.Contains(t, d.ProductReasoning, "Petcoke and Furnace Oil")
	assert.True(t, strings.HasPrefix(d.PitchScript, "Hi, I'm from HPCL Direct Sales. We noticed ABC Cement Ltd"))
	assert.Contains(t, d.PitchScript, "(Cement)")
}

func TestAssemble_Unknown(t *testing.T) {
	res := scoring.NewScorer(scoring.DefaultConfig(), nil, nil, nil).Score(context.Background(), "Hello world")

	d := Assemble("Acme", "Hello world", "news", "", res)

	assert.Equal(t, signals.IndustryUnknown, d.Industry)
	assert.Equal(t, []signals.Product{signals.ProductIndustrialFuels}, d.Products)
	assert.Equal(t, []string{
		"Add to nurture list; periodic check",
		"Highlight HPCL capability in: Industrial Fuels",
	}, d.SuggestedActions)
	assert.Equal(t, "HPCL Industrial Fuels", d.WhyUs.PrimaryHeadline)
	assert.Empty(t, d.Fingerprint)
}

func TestAssemble_EmptyProductsFallBack(t *testing.T) {
	d := Assemble("Acme", "", "news", "", scoring.Result{Priority: scoring.PriorityLow})
	assert.Equal(t, signals.DefaultProducts, d.Products)
}

func TestSuggestedActions_Medium(t *testing.T) {
	actions := SuggestedActions(scoring.PriorityMedium, []signals.Product{
		signals.ProductMarineFuel, signals.ProductLSHS, signals.ProductBunker,
	})
	assert.Equal(t, []string{
		"Reach out this week; share case studies",
		"Identify decision-maker",
		"Highlight HPCL capability in: Marine Fuel, LSHS, Bunker",
	}, actions)
}

func TestBuildWhyUs(t *testing.T) {
	w := BuildWhyUs(nil)
	assert.Equal(t, "HPCL Industrial Fuels", w.PrimaryHeadline)
	require.Len(t, w.Battlecards, 1)
	assert.Equal(t, signals.ProductIndustrialFuels, w.Battlecards[0].Product)

	// no card for Lubes or Feedstocks
	w = BuildWhyUs([]signals.Product{signals.ProductLubes, signals.ProductFeedstocks})
	assert.Equal(t, "HPCL Industrial Fuels", w.PrimaryHeadline)
	require.Len(t, w.Battlecards, 1)
	assert.Equal(t, signals.ProductLubes, w.Battlecards[0].Product)

	w = BuildWhyUs([]signals.Product{signals.ProductBitumen, signals.ProductVGB, signals.ProductPavingGrade})
	assert.Equal(t, "HPCL Bitumen for roads and paving", w.PrimaryHeadline)
	assert.Len(t, w.PrimaryPoints, 3)
	assert.Len(t, w.Battlecards, 3)
}

func TestPitchScript(t *testing.T) {
	script := PitchScript("Acme", signals.IndustryUnknown, nil, "")
	assert.Equal(t,
		"Hi, I'm from HPCL Direct Sales. We noticed Acme may have requirements in industrial fuels (Unknown). "+
			"We would like to discuss how HPCL can support your needs. "+
			"We supply to leading players in the segment and would welcome a short conversation. "+
			"Would you be open to a 15-minute call this week?",
		script)

	long := strings.Repeat("a", 400)
	script = PitchScript("Acme", signals.IndustryMarine, []signals.Product{signals.ProductMarineFuel}, long)
	assert.Contains(t, script, strings.Repeat("a", 150)+" We supply")
	assert.NotContains(t, script, strings.Repeat("a", 151))
}
