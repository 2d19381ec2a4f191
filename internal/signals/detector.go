package signals

import (
	"sort"
	"strings"

	"github.com/Dany7865/IITR-esummit07/internal/nlp"
)

const (
	classifyPhrases = 10
	cluePhrases     = 6
	maxClues        = 14
	maxFingerprint  = 10
)

// Detector classifies text into a vertical and extracts requirement clues
// and the signal fingerprint.
type Detector struct {
	analyzer    *nlp.Analyzer
	verticals   []verticalMatcher
	general     verticalMatcher
	procurement *nlp.Matcher
	graph       *nlp.Matcher
}

type verticalMatcher struct {
	industry Industry
	matcher  *nlp.Matcher
}

// NewDetector builds a detector over the compiled-in catalog. A nil analyzer
// gets the default one.
func NewDetector(analyzer *nlp.Analyzer) *Detector {
	if analyzer == nil {
		analyzer = nlp.NewAnalyzer(nlp.Config{})
	}

	d := &Detector{
		analyzer:    analyzer,
		procurement: nlp.NewMatcher(ProcurementSignals...),
	}

	for _, v := range verticals {
		vm := verticalMatcher{industry: v.Industry, matcher: nlp.NewMatcher(v.Keywords...)}
		if v.Industry == IndustryGeneral {
			d.general = vm
			continue
		}
		d.verticals = append(d.verticals, vm)
	}

	triggers := make([]string, len(signalGraph))
	for i, e := range signalGraph {
		triggers[i] = e.Trigger
	}
	d.graph = nlp.NewMatcher(triggers...)

	return d
}

// Analyzer exposes the analyzer the detector extracts phrases with.
func (d *Detector) Analyzer() *nlp.Analyzer {
	return d.analyzer
}

// Classify picks the vertical with the most distinct keyword hits. Ties go
// to the vertical listed first; General Industrial is only considered when
// no specific vertical matched.
func (d *Detector) Classify(raw string) Classification {
	text := d.classificationText(raw)

	best := Classification{Industry: IndustryUnknown}
	bestScore := 0
	for _, v := range d.verticals {
		hits := v.matcher.Hits(text)
		if len(hits) > bestScore {
			bestScore = len(hits)
			best.Industry = v.industry
			best.MatchedSignals = hits
		}
	}

	if best.Industry == IndustryUnknown {
		if hits := d.general.matcher.Hits(text); len(hits) > 0 {
			best.Industry = IndustryGeneral
			best.MatchedSignals = hits
		}
	}

	best.Products = ProductsFor(best.Industry)
	return best
}

func (d *Detector) classificationText(raw string) string {
	text := strings.ToLower(nlp.Clean(raw))
	if text == "" {
		return ""
	}
	text = nlp.ExpandSynonyms(text)
	if phrases := d.analyzer.KeyPhrases(raw, classifyPhrases); len(phrases) > 0 {
		text += " " + strings.Join(phrases, " ")
	}
	return text
}

// RequirementClues lists short human-readable hints about what the text is
// asking for.
func (d *Detector) RequirementClues(raw string) []string {
	text := strings.ToLower(nlp.Clean(raw))
	if text == "" {
		return nil
	}

	var clues []string
	for _, kw := range d.procurement.Hits(text) {
		clues = append(clues, "Procurement signal: "+kw)
	}

	// General Industrial is last in the catalog, so this keeps catalog order.
	all := append(append([]verticalMatcher(nil), d.verticals...), d.general)
	for _, v := range all {
		if kw, ok := v.matcher.First(text); ok {
			clues = append(clues, "Industry signal: "+string(v.industry)+" ("+kw+")")
		}
	}

	for _, p := range d.analyzer.KeyPhrases(raw, cluePhrases) {
		clues = append(clues, "Phrase: "+p)
	}

	if len(clues) > maxClues {
		clues = clues[:maxClues]
	}
	return clues
}

// Fingerprint returns the signal graph entries triggered by the text, one
// per distinct product set.
func (d *Detector) Fingerprint(raw string) []FingerprintEntry {
	hits := d.graph.Hits(raw)
	if len(hits) == 0 {
		return nil
	}

	present := make(map[string]bool, len(hits))
	for _, h := range hits {
		present[h] = true
	}

	seen := make(map[string]bool)
	var out []FingerprintEntry
	for _, e := range signalGraph {
		if !present[e.Trigger] {
			continue
		}
		key := productSetKey(e.Products)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, FingerprintEntry{
			Event:     e.Trigger,
			Products:  append([]Product(nil), e.Products...),
			Reasoning: e.Reasoning,
		})
		if len(out) >= maxFingerprint {
			break
		}
	}
	return out
}

func productSetKey(products []Product) string {
	names := ProductNames(products)
	sort.Strings(names)
	return strings.Join(names, "|")
}
