package screenshot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ytnote/internal/bundle"
	"ytnote/internal/config"
	"ytnote/internal/downloader"
	"ytnote/internal/logger"
	"ytnote/internal/transcriber"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

// fakeExecutor returns a canned JPEG payload per ffmpeg call, failing
// for timestamps listed in failAt.
type fakeExecutor struct {
	failAt map[string]bool
	calls  int
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	out, err := f.ExecuteRaw(ctx, name, args...)
	return string(out), err
}

func (f *fakeExecutor) ExecuteRaw(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls++
	if len(args) > 1 && f.failAt[args[1]] {
		return nil, fmt.Errorf("ffmpeg exploded at %s", args[1])
	}
	return []byte("\xff\xd8fakejpeg"), nil
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

func testSelector(gen generator, exec *fakeExecutor) *implSelector {
	return &implSelector{
		cfg:      testConfig(),
		gen:      gen,
		executor: exec,
		logger:   logger.New("error"),
	}
}

var testSegments = []transcriber.Segment{
	{Start: 0, End: 30, Text: "intro"},
	{Start: 30, End: 60, Text: "middle"},
	{Start: 60, End: 90, Text: "end"},
}

var testInfo = &downloader.VideoInfo{ID: "abc123", Title: "Test", Duration: 90}

func TestSelectAndCapture(t *testing.T) {
	b, err := bundle.Prepare(t.TempDir(), "abc123")
	if err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{response: "```json\n[10.0, 45.5, 80.0]\n```"}
	sel := testSelector(gen, &fakeExecutor{})

	shots, warnings, err := sel.SelectAndCapture(context.Background(), b, testInfo, "# Note", testSegments)
	if err != nil {
		t.Fatalf("SelectAndCapture() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(shots) != 3 {
		t.Fatalf("shots = %d, want 3", len(shots))
	}
	if shots[1].Seconds != 45.5 {
		t.Errorf("shots[1].Seconds = %v, want 45.5", shots[1].Seconds)
	}
	if !b.Exists(shots[0].Path) {
		t.Errorf("screenshot file %s not written", shots[0].Path)
	}
}

func TestSelectAndCaptureSkipsOutOfRange(t *testing.T) {
	b, err := bundle.Prepare(t.TempDir(), "abc123")
	if err != nil {
		t.Fatal(err)
	}

	// 500s exceeds the 90s duration; only the two valid frames survive.
	gen := &fakeGenerator{response: "[10.0, 500.0, 80.0]"}
	sel := testSelector(gen, &fakeExecutor{})

	shots, warnings, err := sel.SelectAndCapture(context.Background(), b, testInfo, "# Note", testSegments)
	if err != nil {
		t.Fatalf("SelectAndCapture() error = %v", err)
	}
	if len(shots) != 2 {
		t.Errorf("shots = %d, want 2", len(shots))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "500.00s") {
		t.Errorf("warnings = %v, want one mentioning 500.00s", warnings)
	}
}

func TestSelectAndCaptureSkipsFailedFrame(t *testing.T) {
	b, err := bundle.Prepare(t.TempDir(), "abc123")
	if err != nil {
		t.Fatal(err)
	}

	gen := &fakeGenerator{response: "[10.0, 45.5]"}
	exec := &fakeExecutor{failAt: map[string]bool{"45.50": true}}
	sel := testSelector(gen, exec)

	shots, warnings, err := sel.SelectAndCapture(context.Background(), b, testInfo, "# Note", testSegments)
	if err != nil {
		t.Fatalf("SelectAndCapture() error = %v", err)
	}
	if len(shots) != 1 || shots[0].Seconds != 10 {
		t.Errorf("shots = %+v, want only the 10s frame", shots)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want 1", warnings)
	}
}

func TestSelectTimesFallbackOnModelFailure(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("all API keys exhausted")}
	sel := testSelector(gen, &fakeExecutor{})

	times := sel.selectTimes(context.Background(), testInfo, "# Note", testSegments)
	if len(times) == 0 {
		t.Fatal("selectTimes() should fall back to heuristic timestamps")
	}
	for _, ts := range times {
		if ts <= 0 || ts >= 90 {
			t.Errorf("fallback timestamp %v outside the transcript span", ts)
		}
	}
}

func TestSelectTimesFallbackOnGarbage(t *testing.T) {
	gen := &fakeGenerator{response: "I am unable to provide timestamps."}
	sel := testSelector(gen, &fakeExecutor{})

	times := sel.selectTimes(context.Background(), testInfo, "# Note", testSegments)
	if len(times) == 0 {
		t.Fatal("selectTimes() should fall back on unusable model output")
	}
}

func TestNormalizeTimes(t *testing.T) {
	got := normalizeTimes([]float64{80, 10, 10, -5, 45.5}, 2)
	if len(got) != 2 {
		t.Fatalf("normalizeTimes() = %v, want 2 entries", got)
	}
	if got[0] != 10 || got[1] != 45.5 {
		t.Errorf("normalizeTimes() = %v, want [10 45.5]", got)
	}
}

func TestFallbackTimes(t *testing.T) {
	times := FallbackTimes(testSegments, 3)
	if len(times) != 3 {
		t.Fatalf("FallbackTimes() = %v, want 3 entries", times)
	}
	for i, ts := range times {
		if ts <= 0 || ts >= 90 {
			t.Errorf("timestamp %v outside span", ts)
		}
		if i > 0 && times[i] <= times[i-1] {
			t.Errorf("timestamps not increasing: %v", times)
		}
	}

	if got := FallbackTimes(nil, 3); got != nil {
		t.Errorf("FallbackTimes(nil) = %v, want nil", got)
	}
}
