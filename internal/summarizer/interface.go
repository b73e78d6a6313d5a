package summarizer

import (
	"context"

	"ytnote/internal/downloader"
	"ytnote/internal/transcriber"
)

// Summarizer wraps the language-model service that turns a transcript
// into a markdown note.
type Summarizer interface {
	Summarize(ctx context.Context, info *downloader.VideoInfo, segments []transcriber.Segment) (string, error)
}
