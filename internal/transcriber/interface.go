package transcriber

import "context"

// Transcriber wraps the external speech-to-text engine.
type Transcriber interface {
	// Transcribe converts a media file into ordered, timestamped
	// transcript segments.
	Transcribe(ctx context.Context, videoPath string) ([]Segment, error)
}

// Segment is one timestamped piece of the transcript. Times are in
// seconds from the start of the media.
type Segment struct {
	Start float64
	End   float64
	Text  string
}
