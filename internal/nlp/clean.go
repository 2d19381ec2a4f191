// Package nlp holds the text normalisation and lightweight keyword NLP used
// for lead extraction: cleaning, tokenisation, key phrases, procurement
// intent, extractive summaries and optional entity extraction.
package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Clean strips markup tags, collapses whitespace and trims. It never fails;
// empty input yields "".
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	text := norm.NFKC.String(raw)
	text = tagPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

type synonymGroup struct {
	canonical string
	expansion string
}

var synonymGroups = []synonymGroup{
	{"marine", "maritime bunker vessel shipping"},
	{"fuel", "fuels petcoke furnace bunker"},
	{"bitumen", "bituminous asphalt paving"},
	{"cement", "clinker kiln"},
	{"tender", "tenders rfq rfp bid"},
	{"construction", "infrastructure highway road"},
}

// ExpandSynonyms appends the synonym group of every canonical term present in
// text. It only ever adds text.
func ExpandSynonyms(text string) string {
	lower := strings.ToLower(text)
	var extra []string
	for _, g := range synonymGroups {
		if strings.Contains(lower, g.canonical) {
			extra = append(extra, g.expansion)
		}
	}
	if len(extra) == 0 {
		return text
	}
	return text + " " + strings.Join(extra, " ")
}
