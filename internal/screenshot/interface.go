package screenshot

import (
	"context"

	"ytnote/internal/bundle"
	"ytnote/internal/downloader"
	"ytnote/internal/transcriber"
)

// Selector chooses key moments of the video and captures a frame for
// each into the bundle's screenshots directory.
type Selector interface {
	// SelectAndCapture returns the captured screenshots in timestamp
	// order, plus warnings for any frames that were skipped.
	SelectAndCapture(ctx context.Context, b *bundle.Bundle, info *downloader.VideoInfo, summary string, segments []transcriber.Segment) ([]bundle.Screenshot, []string, error)
}
