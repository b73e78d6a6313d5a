package errs

import "errors"

// Sentinel errors for every failure class the pipeline can produce.
// Adapters wrap these with fmt.Errorf("...: %w", ...) so callers can
// classify failures with errors.Is without depending on adapter internals.
var (
	// ErrInvalidInput means the supplied URL is not a valid video URL.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration means required configuration (e.g. the Gemini API
	// key) is missing; raised before any pipeline stage runs.
	ErrConfiguration = errors.New("configuration error")

	// ErrDownload means yt-dlp failed to fetch the video or its metadata.
	ErrDownload = errors.New("download failed")

	// ErrTranscription means audio extraction or whisper failed.
	ErrTranscription = errors.New("transcription failed")

	// ErrEmptyInput means a stage received an empty transcript.
	ErrEmptyInput = errors.New("empty input")

	// ErrSummarization means the language model call failed.
	ErrSummarization = errors.New("summarization failed")

	// ErrCapture means a single screenshot could not be taken. Non-fatal:
	// the pipeline logs a warning and continues with the remaining shots.
	ErrCapture = errors.New("screenshot capture failed")

	// ErrFilesystem means an output directory or artifact could not be
	// created or written.
	ErrFilesystem = errors.New("filesystem error")
)
