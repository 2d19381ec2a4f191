package nlp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tags and whitespace", "<p>Hello   <b>world</b></p>\n", "Hello world"},
		{"only whitespace", " \t\n ", ""},
		{"plain", "Cement expansion", "Cement expansion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestExpandSynonyms(t *testing.T) {
	assert.Equal(t,
		"marine fuel maritime bunker vessel shipping fuels petcoke furnace bunker",
		ExpandSynonyms("marine fuel"))
	assert.Equal(t, "hello world", ExpandSynonyms("hello world"))
	assert.True(t, strings.HasPrefix(ExpandSynonyms("Cement plant"), "Cement plant"))
}

func TestTokenizers(t *testing.T) {
	for _, tok := range []Tokenizer{BasicTokenizer{}, RichTokenizer{}} {
		t.Run(tok.Name(), func(t *testing.T) {
			a := NewAnalyzer(Config{Tokenizer: tok})

			assert.Equal(t, []string{"the", "cement", "kiln", "tonnes"},
				a.Tokenize("The Cement, a kiln & 5 tonnes", false))
			assert.Equal(t, []string{"cement", "kiln", "tonnes"},
				a.Tokenize("The Cement, a kiln & 5 tonnes", true))
			assert.Empty(t, a.Tokenize("", true))
		})
	}
}

func TestNewTokenizer(t *testing.T) {
	assert.Equal(t, "rich", NewTokenizer("rich").Name())
	assert.Equal(t, "basic", NewTokenizer("basic").Name())
	assert.Equal(t, "basic", NewTokenizer("nltk").Name())
}

func TestKeyPhrases(t *testing.T) {
	a := NewAnalyzer(Config{})

	got := a.KeyPhrases("Cement expansion tender fuel supply", DefaultMaxPhrases)
	assert.Equal(t, []string{
		"cement expansion tender",
		"expansion tender fuel",
		"tender fuel supply",
		"cement expansion",
		"expansion tender",
		"tender fuel",
		"fuel supply",
	}, got)

	assert.Len(t, a.KeyPhrases("Cement expansion tender fuel supply", 3), 3)
	assert.Empty(t, a.KeyPhrases("Hello world", DefaultMaxPhrases))
	assert.Empty(t, a.KeyPhrases("quarterly results were strong", DefaultMaxPhrases))
	assert.Empty(t, a.KeyPhrases("cement", DefaultMaxPhrases))
}

func TestKeyPhrases_Deduplicates(t *testing.T) {
	a := NewAnalyzer(Config{})

	got := a.KeyPhrases("marine fuel marine fuel", DefaultMaxPhrases)
	seen := map[string]bool{}
	for _, p := range got {
		assert.False(t, seen[p], "duplicate phrase %q", p)
		seen[p] = true
	}
	assert.Contains(t, got, "marine fuel")
}

func TestIntentScore(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"no signal", "Hello world", 0},
		{"scenario", "Cement expansion tender fuel supply", 25 + 12*3},
		{"repetition counts once", "tender tender tender", 25},
		{"weak", "company plans to invite", 5 + 5},
		{"capped", "tender rfp rfi contract procurement bid order purchase", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntentScore(tt.in))
		})
	}
}

func TestExtractiveSummary(t *testing.T) {
	text := "The weather is nice. Cement plant tender for fuel supply issued. Meeting later."

	basic := NewAnalyzer(Config{Tokenizer: BasicTokenizer{}})
	assert.Equal(t,
		"Cement plant tender for fuel supply issued The weather is nice",
		basic.ExtractiveSummary(text, 2, 280))

	rich := NewAnalyzer(Config{Tokenizer: RichTokenizer{}})
	got := rich.ExtractiveSummary(text, 2, 280)
	assert.True(t, strings.HasPrefix(got, "Cement plant tender for fuel supply issued"), got)

	assert.Equal(t, "", basic.ExtractiveSummary("", 2, 280))
}

func TestExtractiveSummary_Truncates(t *testing.T) {
	a := NewAnalyzer(Config{Tokenizer: BasicTokenizer{}})

	got := a.ExtractiveSummary("Bitumen supply for the national highway program", 2, 10)
	assert.Equal(t, "Bitumen su…", got)
}

func TestExtractiveSummary_NegativeLimits(t *testing.T) {
	a := NewAnalyzer(Config{Tokenizer: BasicTokenizer{}})
	text := "Cement plant tender for fuel supply issued. Meeting later."

	tests := []struct {
		name         string
		maxSentences int
		maxLength    int
		want         string
	}{
		{"negative sentences", -1, 280, ""},
		{"negative length", 2, -5, "…"},
		{"both negative", -3, -3, ""},
		{"zero length", 1, 0, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, a.ExtractiveSummary(text, tt.maxSentences, tt.maxLength))
			})
		})
	}

	assert.Equal(t, "…", truncateRunes("no sentences", -1))
}

func TestMatcher(t *testing.T) {
	m := NewMatcher("tender", "port", "Tender", "", "new plant")

	assert.Equal(t, []string{"tender", "port", "new plant"}, m.Hits("NEW PLANT near the port, TENDER out"))
	assert.Equal(t, []string{"tender", "port"}, m.Hits("We SUPPORT the tender, tender again"))
	assert.Equal(t, []string{"new plant"}, m.Hits("a new plant"))
	assert.Empty(t, m.Hits(""))

	first, ok := m.First("port tender")
	require.True(t, ok)
	assert.Equal(t, "tender", first, "first is by keyword order, not text order")

	_, ok = m.First("nothing here")
	assert.False(t, ok)

	assert.False(t, NewMatcher().Any("anything"))
}

func TestPatternExtractor(t *testing.T) {
	orgs, err := PatternExtractor{}.Organizations(context.Background(), "news: ABC Cement Ltd. signs deal")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC Cement Ltd"}, orgs)

	orgs, err = NopExtractor{}.Organizations(context.Background(), "news: ABC Cement Ltd.")
	require.NoError(t, err)
	assert.Empty(t, orgs)

	assert.Empty(t, CompanyCandidates("hello world"))
}

type failingExtractor struct{}

func (failingExtractor) Organizations(context.Context, string) ([]string, error) {
	return nil, assert.AnError
}

func TestSummarize_DegradesOnExtractorFailure(t *testing.T) {
	a := NewAnalyzer(Config{Entities: failingExtractor{}})

	s := a.Summarize(context.Background(), "Cement expansion tender fuel supply")
	assert.Empty(t, s.Organizations)
	assert.Equal(t, 61, s.IntentScore)
	assert.Len(t, s.KeyPhrases, 7)
	assert.Equal(t, "Cement expansion tender fuel supply", s.Cleaned)
	assert.NotEmpty(t, s.Summary)
}
