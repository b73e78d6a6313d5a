package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ytnote/internal/logger"
)

// Client is a thin wrapper over the Gemini API that rotates through
// multiple API keys when one runs into quota limits.
type Client struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// New creates a Client that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) *Client {
	return &Client{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

// Generate sends the prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(c.apiKeys)
	if attempts == 0 {
		return "", fmt.Errorf("no API keys configured")
	}
	var lastErr error

	for range attempts {
		key := c.apiKeys[c.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", c.currentKey+1)
				c.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *Client) rotateKey() {
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// ExtractJSON pulls the first JSON value out of a model response that
// may be wrapped in prose or code fences.
func ExtractJSON(response string) (string, error) {
	start := strings.IndexAny(response, "[{")
	if start == -1 {
		return "", fmt.Errorf("no JSON found in response")
	}

	var closer byte
	if response[start] == '[' {
		closer = ']'
	} else {
		closer = '}'
	}

	end := strings.LastIndexByte(response, closer)
	if end <= start {
		return "", fmt.Errorf("unterminated JSON in response")
	}

	return response[start : end+1], nil
}
