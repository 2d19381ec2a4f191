package config

import "fmt"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return &ValidationError{Field: "database.path", Message: "is required"}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: "must be between 1 and 65535"}
	}

	s := c.Scoring
	if s.MediumThreshold < 0 || s.HighThreshold > 100 || s.MediumThreshold > s.HighThreshold {
		return &ValidationError{
			Field:   "scoring",
			Message: fmt.Sprintf("thresholds must satisfy 0 <= medium (%d) <= high (%d) <= 100", s.MediumThreshold, s.HighThreshold),
		}
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "log.level", Message: "must be one of: debug, info, warn, error"}
	}

	switch c.NLP.Tokenizer {
	case "rich", "basic":
	default:
		return &ValidationError{Field: "nlp.tokenizer", Message: "must be one of: rich, basic"}
	}

	switch c.NLP.Entities {
	case "none", "pattern", "llm":
	default:
		return &ValidationError{Field: "nlp.entities", Message: "must be one of: none, pattern, llm"}
	}

	if c.Notify.MaxBody <= 0 {
		return &ValidationError{Field: "notify.max_body", Message: "must be positive"}
	}
	return nil
}
