package summarizer

import (
	"context"

	"ytnote/internal/gemini"
	"ytnote/internal/logger"
)

// generator is the part of the Gemini client the summarizer needs.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type implSummarizer struct {
	gen    generator
	logger logger.Logger
}

// New creates a Summarizer backed by the given Gemini client.
func New(client *gemini.Client, log logger.Logger) Summarizer {
	return &implSummarizer{
		gen:    client,
		logger: log,
	}
}
