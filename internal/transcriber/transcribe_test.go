package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ytnote/internal/config"
	"ytnote/internal/errs"
	"ytnote/internal/logger"
)

// fakeExecutor simulates ffmpeg and whisper: the whisper call writes an
// SRT file at the requested output prefix.
type fakeExecutor struct {
	srtContent string
	failOn     string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	if name == f.failOn {
		return "", fmt.Errorf("%s exploded", name)
	}

	for i, a := range args {
		if a == "--output-file" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1]+".srt", []byte(f.srtContent), 0644); err != nil {
				return "", err
			}
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteRaw(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := f.Execute(ctx, name, args...)
	return []byte(out), err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Whisper.ModelPath = "model.bin"
	cfg.Gemini.APIKeys = []string{"k"}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func fakeVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(path, []byte("not really a video"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	exec := &fakeExecutor{srtContent: sampleSRT}
	tr := New(testConfig(), exec, logger.New("error"))

	segments, err := tr.Transcribe(context.Background(), fakeVideo(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if len(segments) != 3 {
		t.Fatalf("Transcribe() = %d segments, want 3", len(segments))
	}
	if segments[0].Text != "hello there" {
		t.Errorf("segments[0].Text = %q", segments[0].Text)
	}
}

func TestTranscribeMissingVideo(t *testing.T) {
	tr := New(testConfig(), &fakeExecutor{}, logger.New("error"))

	_, err := tr.Transcribe(context.Background(), "/nonexistent/video.mp4")
	if !errors.Is(err, errs.ErrTranscription) {
		t.Errorf("Transcribe() error = %v, want ErrTranscription", err)
	}
}

func TestTranscribeFFmpegFailure(t *testing.T) {
	cfg := testConfig()
	exec := &fakeExecutor{failOn: cfg.FFmpeg.BinaryPath}
	tr := New(cfg, exec, logger.New("error"))

	_, err := tr.Transcribe(context.Background(), fakeVideo(t))
	if !errors.Is(err, errs.ErrTranscription) {
		t.Errorf("Transcribe() error = %v, want ErrTranscription", err)
	}
}

func TestTranscribeWhisperFailure(t *testing.T) {
	cfg := testConfig()
	exec := &fakeExecutor{failOn: cfg.Whisper.BinaryPath}
	tr := New(cfg, exec, logger.New("error"))

	_, err := tr.Transcribe(context.Background(), fakeVideo(t))
	if !errors.Is(err, errs.ErrTranscription) {
		t.Errorf("Transcribe() error = %v, want ErrTranscription", err)
	}
}

func TestTranscribeEmptyOutput(t *testing.T) {
	exec := &fakeExecutor{srtContent: ""}
	tr := New(testConfig(), exec, logger.New("error"))

	_, err := tr.Transcribe(context.Background(), fakeVideo(t))
	if !errors.Is(err, errs.ErrTranscription) {
		t.Errorf("Transcribe() error = %v, want ErrTranscription", err)
	}
}
