package nlp

const (
	strongIntentPoints = 25
	mediumIntentPoints = 12
	weakIntentPoints   = 5
	maxIntentScore     = 100
)

var (
	strongIntent = NewMatcher("tender", "rfp", "rfi", "contract", "procurement", "bid", "order", "purchase")
	mediumIntent = NewMatcher("expansion", "capacity", "new plant", "supply", "requirement", "fuel supply")
	weakIntent   = NewMatcher("announce", "plan", "consider", "seek", "invite", "float")
)

// IntentScore rates 0-100 how strongly text signals buying intent. Each
// keyword counts once however often it repeats.
func IntentScore(raw string) int {
	text := Clean(raw)
	if text == "" {
		return 0
	}

	score := strongIntent.Count(text)*strongIntentPoints +
		mediumIntent.Count(text)*mediumIntentPoints +
		weakIntent.Count(text)*weakIntentPoints

	return min(maxIntentScore, score)
}
