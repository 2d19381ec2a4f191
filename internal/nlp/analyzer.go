package nlp

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Dany7865/IITR-esummit07/internal/logger"
)

const (
	DefaultMaxPhrases       = 12
	DefaultSummarySentences = 2
	DefaultSummaryLength    = 280
	ellipsis                = "…"
)

// phraseSignalWords decide which n-grams count as key phrases.
var phraseSignalWords = toSet(
	"fuel", "cement", "marine", "bitumen", "tender", "supply", "contract",
	"expansion", "industrial", "road", "construction", "shipping", "vessel",
	"procurement", "refinery", "power", "aviation", "mining", "steel",
	"bunkering", "vessels", "bituminous", "asphalt", "petcoke", "furnace",
	"bunker", "maritime", "highway", "paving", "lube", "ore",
)

var summarySignals = NewMatcher(
	"fuel", "cement", "marine", "bitumen", "tender", "supply", "contract",
	"expansion", "industrial", "construction", "shipping", "vessel",
	"procurement", "refinery", "power", "aviation", "mining", "steel",
)

// Config selects the analyzer's optional capabilities. Zero values fall back
// to the rich tokenizer, no entity extraction and a no-op logger.
type Config struct {
	Tokenizer Tokenizer
	Entities  EntityExtractor
	Logger    logger.Logger
}

// Analyzer bundles tokenisation and entity extraction behind one API.
type Analyzer struct {
	tokenizer Tokenizer
	entities  EntityExtractor
	logger    logger.Logger
}

// Summary is the one-call NLP view of a text used by scoring.
type Summary struct {
	Cleaned       string
	Tokens        []string
	KeyPhrases    []string
	Organizations []string
	IntentScore   int
	Summary       string
}

func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.Tokenizer == nil {
		cfg.Tokenizer = RichTokenizer{}
	}
	if cfg.Entities == nil {
		cfg.Entities = NopExtractor{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	return &Analyzer{
		tokenizer: cfg.Tokenizer,
		entities:  cfg.Entities,
		logger:    cfg.Logger,
	}
}

// Tokenize cleans text and returns its tokens, optionally without stopwords.
func (a *Analyzer) Tokenize(text string, removeStopwords bool) []string {
	text = Clean(text)
	if text == "" {
		return nil
	}
	tokens := a.tokenizer.Tokens(text)
	if !removeStopwords {
		return tokens
	}
	kept := tokens[:0]
	for _, t := range tokens {
		if !a.tokenizer.IsStopword(t) {
			kept = append(kept, t)
		}
	}
	return kept
}

// KeyPhrases returns up to maxPhrases 2- and 3-word phrases that contain at
// least one signal word, best first. Phrases without a signal word are dropped.
func (a *Analyzer) KeyPhrases(raw string, maxPhrases int) []string {
	tokens := a.Tokenize(raw, true)
	if len(tokens) < 2 || maxPhrases <= 0 {
		return nil
	}

	type candidate struct {
		phrase string
		score  int
	}

	var candidates []candidate
	for _, n := range []int{2, 3} {
		for _, p := range ngrams(tokens, n) {
			if s := phraseScore(p); s > 0 {
				candidates = append(candidates, candidate{p, s})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, maxPhrases)
	for _, c := range candidates {
		if seen[c.phrase] {
			continue
		}
		seen[c.phrase] = true
		out = append(out, c.phrase)
		if len(out) >= maxPhrases {
			break
		}
	}
	return out
}

func ngrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

func phraseScore(phrase string) int {
	words := toSet(strings.Fields(phrase)...)
	score := 0
	for w := range words {
		if _, ok := phraseSignalWords[w]; ok {
			score++
		}
	}
	return score
}

// ExtractiveSummary picks the maxSentences sentences with the most signal
// words (ties keep text order) and truncates the result to maxLength runes.
func (a *Analyzer) ExtractiveSummary(raw string, maxSentences, maxLength int) string {
	maxSentences = max(maxSentences, 0)
	maxLength = max(maxLength, 0)

	text := Clean(raw)
	if text == "" {
		return ""
	}

	sentences := a.tokenizer.Sentences(text)
	if len(sentences) == 0 {
		return truncateRunes(text, maxLength)
	}

	type scored struct {
		sentence string
		score    int
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		ranked[i] = scored{s, summarySignals.Count(s)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	n := min(maxSentences, len(ranked))
	chosen := make([]string, 0, n)
	for _, r := range ranked[:n] {
		chosen = append(chosen, r.sentence)
	}
	return truncateRunes(strings.TrimSpace(strings.Join(chosen, " ")), maxLength)
}

func truncateRunes(s string, maxLength int) string {
	maxLength = max(maxLength, 0)
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	return string([]rune(s)[:maxLength]) + ellipsis
}

// Organizations runs the configured entity extractor. Failures are logged and
// yield no organisations.
func (a *Analyzer) Organizations(ctx context.Context, raw string) []string {
	orgs, err := a.entities.Organizations(ctx, raw)
	if err != nil {
		a.logger.Warn("entity extraction unavailable", logger.Error(err))
		return nil
	}
	return orgs
}

// Summarize computes every NLP feature scoring needs in one call.
func (a *Analyzer) Summarize(ctx context.Context, raw string) Summary {
	cleaned := Clean(raw)
	return Summary{
		Cleaned:       cleaned,
		Tokens:        a.Tokenize(cleaned, true),
		KeyPhrases:    a.KeyPhrases(raw, DefaultMaxPhrases),
		Organizations: a.Organizations(ctx, raw),
		IntentScore:   IntentScore(raw),
		Summary:       a.ExtractiveSummary(raw, DefaultSummarySentences, DefaultSummaryLength),
	}
}
