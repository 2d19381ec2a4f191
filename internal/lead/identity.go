package lead

import (
	"regexp"
	"strings"
)

const keySnippetRunes = 80

// Applied in order, each anchored at the end of the name.
var companySuffixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+(?:Pvt\.?|Private)\s+Limited\.?$`),
	regexp.MustCompile(`(?i)\s+Ltd\.?$`),
	regexp.MustCompile(`(?i)\s+Limited$`),
	regexp.MustCompile(`(?i)\s+Corp\.?$`),
	regexp.MustCompile(`(?i)\s+Corporation\.?$`),
	regexp.MustCompile(`(?i)\s+Inc\.?$`),
	regexp.MustCompile(`(?i)\s+Incorporated\.?$`),
	regexp.MustCompile(`(?i)\s+Co\.?$`),
	regexp.MustCompile(`(?i)\s+India$`),
	regexp.MustCompile(`(?i)\s+Ind\.?$`),
}

var spaces = regexp.MustCompile(`\s+`)

// NormalizeCompanyName strips legal suffixes so "Tata Motors Ltd" and
// "Tata Motors" compare equal.
func NormalizeCompanyName(name string) string {
	s := strings.TrimSpace(name)
	for _, re := range companySuffixes {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// CanonicalKey identifies a lead for deduplication: the normalised company
// name and the first 80 characters of its text, both lowercased.
func CanonicalKey(company, text string) string {
	snippet := []rune(text)
	if len(snippet) > keySnippetRunes {
		snippet = snippet[:keySnippetRunes]
	}
	return strings.ToLower(NormalizeCompanyName(company)) + "|" + strings.ToLower(string(snippet))
}
