package summarizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"ytnote/internal/downloader"
	"ytnote/internal/errs"
	"ytnote/internal/logger"
	"ytnote/internal/transcriber"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

var testInfo = &downloader.VideoInfo{
	ID:       "abc123",
	Title:    "Test Video",
	Channel:  "Test Channel",
	Duration: 120,
}

var testSegments = []transcriber.Segment{
	{Start: 0, End: 5, Text: "hello"},
	{Start: 5, End: 10, Text: "world"},
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{response: "# Test Video\n\nA note.\n"}
	s := &implSummarizer{gen: gen, logger: logger.New("error")}

	got, err := s.Summarize(context.Background(), testInfo, testSegments)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "# Test Video\n\nA note." {
		t.Errorf("Summarize() = %q, want trimmed markdown", got)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "title: Test Video") {
		t.Error("prompt missing video metadata")
	}
	if !strings.Contains(prompt, "[0.00s - 5.00s] hello") {
		t.Error("prompt missing timestamped transcript")
	}
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	gen := &fakeGenerator{response: "should not be called"}
	s := &implSummarizer{gen: gen, logger: logger.New("error")}

	_, err := s.Summarize(context.Background(), testInfo, nil)
	if !errors.Is(err, errs.ErrEmptyInput) {
		t.Errorf("Summarize() error = %v, want ErrEmptyInput", err)
	}
	if len(gen.prompts) != 0 {
		t.Error("model should not be called for an empty transcript")
	}
}

func TestSummarizeModelFailure(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("all API keys exhausted")}
	s := &implSummarizer{gen: gen, logger: logger.New("error")}

	_, err := s.Summarize(context.Background(), testInfo, testSegments)
	if !errors.Is(err, errs.ErrSummarization) {
		t.Errorf("Summarize() error = %v, want ErrSummarization", err)
	}
}

func TestSummarizeEmptyResponse(t *testing.T) {
	gen := &fakeGenerator{response: "   \n"}
	s := &implSummarizer{gen: gen, logger: logger.New("error")}

	_, err := s.Summarize(context.Background(), testInfo, testSegments)
	if !errors.Is(err, errs.ErrSummarization) {
		t.Errorf("Summarize() error = %v, want ErrSummarization", err)
	}
}

func TestVideoInfoBlock(t *testing.T) {
	info := &downloader.VideoInfo{
		Title:      "Test",
		Channel:    "Chan",
		Categories: []string{"Education", "Tech"},
		Duration:   61,
	}

	block := VideoInfoBlock(info)
	for _, want := range []string{"title: Test", "channel: Chan", "categories: Education, Tech", "duration: 61 seconds"} {
		if !strings.Contains(block, want) {
			t.Errorf("VideoInfoBlock() missing %q:\n%s", want, block)
		}
	}

	if VideoInfoBlock(nil) != "" {
		t.Error("VideoInfoBlock(nil) should be empty")
	}
}

func TestExportDocx(t *testing.T) {
	markdown := strings.Join([]string{
		"# Heading",
		"",
		"Some **bold** text.",
		"- bullet one",
		"1. numbered",
		"![Screenshot at 5.00s](./screenshots/5.00.jpg)",
		"---",
	}, "\n")

	path := filepath.Join(t.TempDir(), "note.docx")
	if err := ExportDocx("Test Video", markdown, path); err != nil {
		t.Fatalf("ExportDocx() error = %v", err)
	}
}
