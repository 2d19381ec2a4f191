package signals

import "strings"

// Vertical is an industry together with the keywords that indicate it.
type Vertical struct {
	Industry Industry
	Keywords []string
}

// verticals is ordered; classification tie-breaks on this order.
var verticals = []Vertical{
	{IndustryCement, []string{"cement", "clinker", "kiln", "grinding", "limestone"}},
	{IndustryMarine, []string{"marine", "shipping", "vessel", "port", "bunker", "maritime"}},
	{IndustryConstruction, []string{"road", "highway", "bitumen", "asphalt", "paving", "construction", "infrastructure"}},
	{IndustryPower, []string{"power", "generation", "furnace", "boiler", "industrial fuel", "dg set"}},
	{IndustryRefinery, []string{"refinery", "petrochemical", "cracker", "lube", "specialty product"}},
	{IndustryMining, []string{"mining", "steel", "iron", "ore", "pellet"}},
	{IndustryAviation, []string{"aviation", "atf", "airport", "jet fuel"}},
	{IndustryGeneral, []string{"industrial", "manufacturing", "tender", "procurement", "supply"}},
}

var productMapping = map[Industry][]Product{
	IndustryCement:       {ProductPetcoke, ProductFurnaceOil, ProductIndustrialFuels},
	IndustryMarine:       {ProductMarineFuel, ProductLSHS, ProductBunker},
	IndustryConstruction: {ProductBitumen, ProductVGB, ProductPavingGrade},
	IndustryPower:        {ProductFurnaceOil, ProductLSHS, ProductIndustrialFuels},
	IndustryRefinery:     {ProductSpecialtyProducts, ProductLubes, ProductFeedstocks},
	IndustryMining:       {ProductIndustrialFuels, ProductFurnaceOil, ProductPetcoke},
	IndustryAviation:     {ProductATF, ProductJetFuel},
	IndustryGeneral:      {ProductIndustrialFuels, ProductFurnaceOil, ProductLSHS},
}

// DefaultProducts is recommended when no vertical matched.
var DefaultProducts = []Product{ProductIndustrialFuels}

// ProcurementSignals is ordered; the first present keyword is the one scored.
var ProcurementSignals = []string{
	"tender", "rfp", "rfi", "contract", "procurement", "supply", "requirement",
	"expansion", "capacity", "new plant", "order", "bid", "purchase",
}

var (
	ExpansionTriggers = []string{"expansion", "new plant", "capacity"}
	TenderTriggers    = []string{"tender", "rfp", "contract"}
)

var signalGraph = []SignalEntry{
	{
		Trigger:   "expansion",
		Category:  "event",
		Products:  []Product{ProductBitumen, ProductIndustrialFuels, ProductFurnaceOil},
		Reasoning: "Expansion = new construction (paving, bitumen) and increased boiler/furnace load (industrial fuels).",
		Strength:  StrengthStrong,
	},
	{
		Trigger:   "new plant",
		Category:  "event",
		Products:  []Product{ProductIndustrialFuels, ProductFurnaceOil, ProductPetcoke},
		Reasoning: "New plant typically requires captive power and process fuel (Furnace Oil, Petcoke for cement/steel).",
		Strength:  StrengthStrong,
	},
	{
		Trigger:   "tender",
		Category:  "event",
		Products:  []Product{ProductIndustrialFuels, ProductBitumen, ProductMarineFuel},
		Reasoning: "Tender indicates active procurement; product mix depends on industry (inferred from text).",
		Strength:  StrengthStrong,
	},
	{
		Trigger:   "marine",
		Category:  "segment",
		Products:  []Product{ProductMarineFuel, ProductLSHS, ProductBunker},
		Reasoning: "Marine/shipping segment requires bunker fuel and marine-grade LSHS per IMO specs.",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "shipping",
		Category:  "segment",
		Products:  []Product{ProductMarineFuel, ProductBunker},
		Reasoning: "Shipping and vessel operations use marine fuels and bunkering.",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "road",
		Category:  "segment",
		Products:  []Product{ProductBitumen, ProductVGB, ProductPavingGrade},
		Reasoning: "Road/highway projects use bitumen (VG-30, VG-40) for paving and overlay.",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "highway",
		Category:  "segment",
		Products:  []Product{ProductBitumen, ProductVGB, ProductPavingGrade},
		Reasoning: "Highway construction requires paving-grade bitumen (VG-30 typical for highways).",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "cement",
		Category:  "segment",
		Products:  []Product{ProductPetcoke, ProductFurnaceOil, ProductIndustrialFuels},
		Reasoning: "Cement industry uses Petcoke and furnace oil for kiln and grinding.",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "construction",
		Category:  "segment",
		Products:  []Product{ProductBitumen, ProductIndustrialFuels, ProductFurnaceOil},
		Reasoning: "Construction sector needs bitumen (roads/sites) and fuels for equipment and temporary power.",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "power",
		Category:  "segment",
		Products:  []Product{ProductFurnaceOil, ProductLSHS, ProductIndustrialFuels},
		Reasoning: "Power generation and DG sets use furnace oil and LSHS.",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "refinery",
		Category:  "segment",
		Products:  []Product{ProductSpecialtyProducts, ProductLubes, ProductFeedstocks},
		Reasoning: "Refinery/petrochemical segment uses specialty products and feedstocks.",
		Strength:  StrengthMedium,
	},
	{
		Trigger:   "aviation",
		Category:  "segment",
		Products:  []Product{ProductATF, ProductJetFuel},
		Reasoning: "Aviation segment requires ATF and jet fuel to spec.",
		Strength:  StrengthMedium,
	},
}

// Verticals returns the vertical registry in classification order.
func Verticals() []Vertical {
	out := make([]Vertical, len(verticals))
	for i, v := range verticals {
		out[i] = Vertical{Industry: v.Industry, Keywords: append([]string(nil), v.Keywords...)}
	}
	return out
}

// ProductsFor returns the products recommended for an industry, or
// DefaultProducts when it has no mapping.
func ProductsFor(industry Industry) []Product {
	if p, ok := productMapping[industry]; ok {
		return append([]Product(nil), p...)
	}
	return append([]Product(nil), DefaultProducts...)
}

// SignalGraph returns the trigger-to-product graph in detection order.
func SignalGraph() []SignalEntry {
	out := make([]SignalEntry, len(signalGraph))
	for i, e := range signalGraph {
		e.Products = append([]Product(nil), e.Products...)
		out[i] = e
	}
	return out
}

// ProductReasoning is a one-line rationale for recommending the primary product.
func ProductReasoning(products []Product) string {
	if len(products) == 0 {
		return "General industrial fuels opportunity."
	}
	p := string(products[0])
	switch {
	case strings.Contains(p, "Bitumen") || strings.Contains(p, "VGB"):
		return "Highway/road and paving projects drive Bitumen (VG-30/VG-40) demand. HPCL supplies to NHAI and state highways."
	case strings.Contains(p, "Marine") || strings.Contains(p, "Bunker"):
		return "Marine/shipping segment requires compliant bunker fuel. HPCL offers marine fuels at key Indian ports."
	case strings.Contains(p, "Petcoke") || strings.Contains(p, "Furnace"):
		return "Cement/industrial expansion increases demand for Petcoke and Furnace Oil for kilns and boilers."
	case strings.Contains(p, "ATF") || strings.Contains(p, "Jet"):
		return "Aviation segment requires ATF to spec. HPCL supplies major airports."
	}
	return "Industrial demand signals align with " + p + ". HPCL has supply and logistics capability."
}
