package signals

// Industry is a sales vertical a text can be classified into.
type Industry string

const (
	IndustryCement       Industry = "Cement"
	IndustryMarine       Industry = "Marine"
	IndustryConstruction Industry = "Construction / Roads"
	IndustryPower        Industry = "Power / Utilities"
	IndustryRefinery     Industry = "Refinery / Petrochemical"
	IndustryMining       Industry = "Mining / Steel"
	IndustryAviation     Industry = "Aviation"
	IndustryGeneral      Industry = "General Industrial"
	IndustryUnknown      Industry = "Unknown"
)

var ValidIndustries = map[Industry]string{
	IndustryCement:       "Cement plants, kilns and grinding units",
	IndustryMarine:       "Shipping lines, ports and bunkering",
	IndustryConstruction: "Road, highway and infrastructure projects",
	IndustryPower:        "Power generation, boilers and DG sets",
	IndustryRefinery:     "Refinery and petrochemical offtake",
	IndustryMining:       "Mining, steel and iron ore",
	IndustryAviation:     "Airports and airlines",
	IndustryGeneral:      "Generic industrial procurement",
	IndustryUnknown:      "No vertical keyword present",
}

func (i Industry) IsValid() bool {
	_, ok := ValidIndustries[i]
	return ok
}

// WeightKey is the scoring weight key for the vertical.
func (i Industry) WeightKey() string {
	return "industry_" + string(i)
}

// Product is a sellable product line.
type Product string

const (
	ProductPetcoke           Product = "Petcoke"
	ProductFurnaceOil        Product = "Furnace Oil"
	ProductIndustrialFuels   Product = "Industrial Fuels"
	ProductMarineFuel        Product = "Marine Fuel"
	ProductLSHS              Product = "LSHS"
	ProductBunker            Product = "Bunker"
	ProductBitumen           Product = "Bitumen"
	ProductVGB               Product = "VGB"
	ProductPavingGrade       Product = "Paving Grade"
	ProductSpecialtyProducts Product = "Specialty Products"
	ProductLubes             Product = "Lubes"
	ProductFeedstocks        Product = "Feedstocks"
	ProductATF               Product = "ATF"
	ProductJetFuel           Product = "Jet Fuel"
)

// Strength grades how directly a trigger implies demand.
type Strength string

const (
	StrengthStrong Strength = "strong"
	StrengthMedium Strength = "medium"
	StrengthWeak   Strength = "weak"
)

// SignalEntry maps a trigger keyword to the products it implies.
type SignalEntry struct {
	Trigger   string
	Category  string
	Products  []Product
	Reasoning string
	Strength  Strength
}

// Classification is the outcome of industry detection. Products is never
// empty; the first product is the primary recommendation.
type Classification struct {
	Industry       Industry
	Products       []Product
	MatchedSignals []string
}

// Primary returns the primary product.
func (c Classification) Primary() Product {
	if len(c.Products) == 0 {
		return ProductIndustrialFuels
	}
	return c.Products[0]
}

// FingerprintEntry is one detected event and the products it maps to.
type FingerprintEntry struct {
	Event     string    `json:"event"`
	Products  []Product `json:"products"`
	Reasoning string    `json:"reasoning"`
}

// ProductNames converts products to plain strings.
func ProductNames(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = string(p)
	}
	return out
}
