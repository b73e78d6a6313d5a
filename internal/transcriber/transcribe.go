package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"ytnote/internal/errs"
)

// Transcribe extracts audio from the video, runs whisper on it and
// returns the parsed segments in start-time order.
func (t *implTranscriber) Transcribe(ctx context.Context, videoPath string) ([]Segment, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("%w: media file not found: %s", errs.ErrTranscription, videoPath)
	}

	audioPath, err := t.extractAudio(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	defer t.cleanupTempFile(ctx, audioPath)

	srtPath, err := t.runWhisper(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	defer t.cleanupTempFile(ctx, srtPath)

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read whisper output: %v", errs.ErrTranscription, err)
	}

	segments := ParseSRT(string(data))
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: whisper produced no segments", errs.ErrTranscription)
	}

	return segments, nil
}

// extractAudio converts the video's audio track to 16kHz mono WAV,
// the format whisper expects.
func (t *implTranscriber) extractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := filepath.Join(os.TempDir(), "ytnote-"+uuid.NewString()+".wav")

	t.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn: no video
	// -ar 16000 -ac 1: 16kHz mono, optimal for whisper
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("%w: ffmpeg extract audio: %v", errs.ErrTranscription, err)
	}

	t.logger.Debug(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}

// runWhisper transcribes the WAV file into an SRT next to it.
func (t *implTranscriber) runWhisper(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := audioPath[:len(audioPath)-len(filepath.Ext(audioPath))]

	t.logger.Info(ctx, "Transcribing with %d threads: %s", t.cfg.Whisper.Threads, audioPath)

	args := []string{
		"-m", t.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("%w: whisper transcribe: %v", errs.ErrTranscription, err)
	}

	srtPath := outputPrefix + ".srt"
	t.logger.Info(ctx, "Transcription completed: %s", srtPath)
	return srtPath, nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (t *implTranscriber) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		t.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
