package ai

import "time"

type Config struct {
	Model       string
	Temperature float64
	Timeout     time.Duration
	// APIKey and BaseURL fall back to OPENROUTER_API_KEY and
	// OPENROUTER_BASE_URL.
	APIKey  string
	BaseURL string
}

// Output is the JSON object the model is asked to return.
type Output struct {
	Organizations []string `json:"organizations"`
}
