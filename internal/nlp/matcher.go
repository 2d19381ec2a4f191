package nlp

import (
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Matcher finds which of a fixed keyword set occur as substrings of a text in
// a single Aho-Corasick pass. Each keyword is reported at most once.
type Matcher struct {
	mu       sync.Mutex // the automaton mutates its hit counter on every Match
	keywords []string
	ac       *ahocorasick.Matcher
}

// NewMatcher builds a matcher over keywords. Keywords are lowercased and
// deduplicated; their order is kept and is the order Hits reports in.
func NewMatcher(keywords ...string) *Matcher {
	seen := make(map[string]struct{}, len(keywords))
	kept := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		kept = append(kept, kw)
	}

	m := &Matcher{keywords: kept}
	if len(kept) > 0 {
		m.ac = ahocorasick.NewStringMatcher(kept)
	}
	return m
}

// Hits returns the keywords present in text, in keyword order.
func (m *Matcher) Hits(text string) []string {
	if m.ac == nil || text == "" {
		return nil
	}

	m.mu.Lock()
	idx := m.ac.Match([]byte(strings.ToLower(text)))
	m.mu.Unlock()

	if len(idx) == 0 {
		return nil
	}

	found := make(map[int]bool, len(idx))
	for _, i := range idx {
		found[i] = true
	}

	hits := make([]string, 0, len(found))
	for i, kw := range m.keywords {
		if found[i] {
			hits = append(hits, kw)
		}
	}
	return hits
}

// Count returns the number of distinct keywords present in text.
func (m *Matcher) Count(text string) int {
	return len(m.Hits(text))
}

// Any reports whether any keyword is present in text.
func (m *Matcher) Any(text string) bool {
	return m.Count(text) > 0
}

// First returns the first keyword, in keyword order, present in text.
func (m *Matcher) First(text string) (string, bool) {
	hits := m.Hits(text)
	if len(hits) == 0 {
		return "", false
	}
	return hits[0], true
}
