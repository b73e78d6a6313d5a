package screenshot

import (
	"context"

	"ytnote/internal/config"
	"ytnote/internal/gemini"
	"ytnote/internal/logger"
	"ytnote/pkg/executor"
)

// generator is the part of the Gemini client the selector needs.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type implSelector struct {
	cfg      *config.Config
	gen      generator
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Selector that picks timestamps with Gemini and captures
// frames with ffmpeg.
func New(cfg *config.Config, client *gemini.Client, exec executor.Executor, log logger.Logger) Selector {
	return &implSelector{
		cfg:      cfg,
		gen:      client,
		executor: exec,
		logger:   log,
	}
}
