package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const maxOrganizations = 10

// EntityExtractor asks the model for the organisations named in a text. It
// satisfies nlp.EntityExtractor.
type EntityExtractor struct {
	client *Client
}

func NewEntityExtractor(cfg Config) (*EntityExtractor, error) {
	if cfg.Model == "" {
		return nil, errors.New("model is required")
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &EntityExtractor{client: client}, nil
}

func (e *EntityExtractor) Organizations(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	systemPrompt, userPrompt, err := BuildPrompt(text)
	if err != nil {
		return nil, err
	}

	content, err := e.client.Chat(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	parsed, err := parseOutput(content)
	if err != nil {
		return nil, err
	}

	return cleanNames(parsed.Organizations), nil
}

func parseOutput(content string) (*Output, error) {
	jsonPayload := extractJSON(content)
	if jsonPayload == "" {
		return nil, errors.New("no JSON object found in model output")
	}

	var parsed Output
	if err := json.Unmarshal([]byte(jsonPayload), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	return &parsed, nil
}

func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

// cleanNames trims, drops blanks and case-insensitive duplicates, and caps
// the list.
func cleanNames(names []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, n := range names {
		n = strings.Join(strings.Fields(n), " ")
		key := strings.ToLower(n)
		if len(n) <= 2 || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
		if len(out) == maxOrganizations {
			break
		}
	}
	return out
}
