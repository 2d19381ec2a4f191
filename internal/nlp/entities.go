package nlp

import (
	"context"
	"regexp"
	"strings"
)

const maxOrganizations = 10

// EntityExtractor finds organisation names in text. Implementations may be
// unavailable at runtime; callers treat an error as "no organisations".
type EntityExtractor interface {
	Organizations(ctx context.Context, text string) ([]string, error)
}

// NopExtractor never finds anything.
type NopExtractor struct{}

func (NopExtractor) Organizations(context.Context, string) ([]string, error) {
	return nil, nil
}

var companyPattern = regexp.MustCompile(
	`\b([A-Z][A-Za-z0-9\s&]+(?:Ltd|Limited|Corp|Corporation|India|Pvt|Co\.?|Inc\.?)\b)`,
)

// PatternExtractor picks up names ending in a company suffix
// ("ABC Cement Ltd", "Oceanic Shipping Corp").
type PatternExtractor struct{}

func (PatternExtractor) Organizations(_ context.Context, text string) ([]string, error) {
	return CompanyCandidates(text), nil
}

// CompanyCandidates returns up to ten distinct company-like names from raw
// text, in order of appearance. Case matters, so pass uncleaned text.
func CompanyCandidates(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range companyPattern.FindAllStringSubmatch(raw, -1) {
		name := strings.TrimSpace(m[1])
		if len(name) <= 2 || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
		if len(out) >= maxOrganizations {
			break
		}
	}
	return out
}
