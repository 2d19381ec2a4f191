package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Tokenizer splits cleaned text into lowercase alphanumeric tokens of at
// least two characters and into sentences.
type Tokenizer interface {
	Name() string
	Tokens(text string) []string
	Sentences(text string) []string
	IsStopword(token string) bool
}

// NewTokenizer returns the tokenizer registered under name, falling back to
// the basic tokenizer for unknown names.
func NewTokenizer(name string) Tokenizer {
	if name == "rich" {
		return RichTokenizer{}
	}
	return BasicTokenizer{}
}

var (
	basicTokenPattern    = regexp.MustCompile(`\b[a-z0-9]{2,}\b`)
	basicSentencePattern = regexp.MustCompile(`[.!?]+`)
)

var basicStopwords = toSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
	"for", "of", "is", "are", "was", "were",
)

// BasicTokenizer is the regex fallback with a small stopword list.
type BasicTokenizer struct{}

func (BasicTokenizer) Name() string { return "basic" }

func (BasicTokenizer) Tokens(text string) []string {
	return basicTokenPattern.FindAllString(strings.ToLower(text), -1)
}

func (BasicTokenizer) Sentences(text string) []string {
	return trimNonEmpty(basicSentencePattern.Split(text, -1))
}

func (BasicTokenizer) IsStopword(token string) bool {
	_, ok := basicStopwords[token]
	return ok
}

// RichTokenizer segments on Unicode word and sentence boundaries (UAX #29)
// and removes a full English stopword list.
type RichTokenizer struct{}

func (RichTokenizer) Name() string { return "rich" }

func (RichTokenizer) Tokens(text string) []string {
	var tokens []string
	rest := strings.ToLower(text)
	state := -1
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if utf8.RuneCountInString(word) >= 2 && isAlnum(word) {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func (RichTokenizer) Sentences(text string) []string {
	var out []string
	rest := text
	state := -1
	for len(rest) > 0 {
		var sentence string
		sentence, rest, state = uniseg.FirstSentenceInString(rest, state)
		out = append(out, sentence)
	}
	return trimNonEmpty(out)
}

func (RichTokenizer) IsStopword(token string) bool {
	_, ok := englishStopwords[token]
	return ok
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func trimNonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

var englishStopwords = toSet(
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your",
	"yours", "yourself", "yourselves", "he", "him", "his", "himself", "she", "her",
	"hers", "herself", "it", "its", "itself", "they", "them", "their", "theirs",
	"themselves", "what", "which", "who", "whom", "this", "that", "these", "those",
	"am", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for", "with",
	"about", "against", "between", "into", "through", "during", "before", "after",
	"above", "below", "to", "from", "up", "down", "in", "out", "on", "off", "over",
	"under", "again", "further", "then", "once", "here", "there", "when", "where",
	"why", "how", "all", "any", "both", "each", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so", "than", "too",
	"very", "can", "will", "just", "don", "should", "now", "ll", "re", "ve", "ain",
	"aren", "couldn", "didn", "doesn", "hadn", "hasn", "haven", "isn", "ma",
	"mightn", "mustn", "needn", "shan", "shouldn", "wasn", "weren", "won", "wouldn",
)
