// Package ai extracts organisation names with an LLM served over the
// OpenRouter chat-completions API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	openRouterURL    = "https://openrouter.ai/api/v1/chat/completions"
	defaultTimeout   = 20 * time.Second
	maxResponseBytes = 1 << 20
	maxAttempts      = 2
	retryWait        = 500 * time.Millisecond
)

var errMissingAPIKey = errors.New("OPENROUTER_API_KEY is required")

// APIError is a non-2xx reply or an error object in the reply body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openrouter: status %d: %s", e.StatusCode, e.Message)
}

// retryable reports whether the request may succeed when sent again.
func (e *APIError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	http        *http.Client
	wait        time.Duration
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model          string    `json:"model"`
	Messages       []message `json:"messages"`
	Temperature    float64   `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type completionReply struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient builds a client. APIKey and BaseURL fall back to
// OPENROUTER_API_KEY and OPENROUTER_BASE_URL.
func NewClient(cfg Config) (*Client, error) {
	c := &Client{
		endpoint:    firstNonEmpty(cfg.BaseURL, os.Getenv("OPENROUTER_BASE_URL"), openRouterURL),
		apiKey:      firstNonEmpty(cfg.APIKey, os.Getenv("OPENROUTER_API_KEY")),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		http:        &http.Client{Timeout: defaultTimeout},
		wait:        retryWait,
	}
	if c.apiKey == "" {
		return nil, errMissingAPIKey
	}
	if cfg.Timeout > 0 {
		c.http.Timeout = cfg.Timeout
	}
	return c, nil
}

// Chat sends a system and a user message in JSON mode and returns the first
// choice. Rate limits and server errors are retried once.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	body := completionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	body.ResponseFormat.Type = "json_object"

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.wait):
			}
		}

		content, err := c.post(ctx, payload)
		if err == nil {
			return content, nil
		}
		lastErr = err

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.retryable() {
			break
		}
	}
	return "", lastErr
}

func (c *Client) post(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return decodeReply(resp.StatusCode, raw)
}

func decodeReply(status int, raw []byte) (string, error) {
	var reply completionReply
	parseErr := json.Unmarshal(raw, &reply)

	if status < 200 || status >= 300 {
		msg := string(raw)
		if parseErr == nil && reply.Error != nil {
			msg = reply.Error.Message
		}
		return "", &APIError{StatusCode: status, Message: msg}
	}
	if parseErr != nil {
		return "", fmt.Errorf("failed to parse response: %w", parseErr)
	}
	if reply.Error != nil {
		return "", &APIError{StatusCode: status, Message: reply.Error.Message}
	}
	if len(reply.Choices) == 0 {
		return "", errors.New("openrouter returned no choices")
	}
	return reply.Choices[0].Message.Content, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
