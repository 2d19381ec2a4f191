package pipeline

import (
	"github.com/Dany7865/IITR-esummit07/internal/lead"
	"github.com/Dany7865/IITR-esummit07/internal/parser"
)

// Filter drops items whose canonical key has already been seen, either in
// storage or earlier in the same run.
type Filter struct {
	seen map[string]struct{}
}

// NewFilter seeds the filter with the keys of already stored leads.
func NewFilter(existing []string) *Filter {
	seen := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		seen[k] = struct{}{}
	}
	return &Filter{seen: seen}
}

// Admit reports whether the item is new and, if so, remembers it.
func (f *Filter) Admit(it parser.Item) bool {
	key := lead.CanonicalKey(it.Company, it.RawText)
	if _, dup := f.seen[key]; dup {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}

// Filter returns the new items, in order, and the number dropped.
func (f *Filter) Filter(items []parser.Item) ([]parser.Item, int) {
	var kept []parser.Item
	for _, it := range items {
		if f.Admit(it) {
			kept = append(kept, it)
		}
	}
	return kept, len(items) - len(kept)
}
