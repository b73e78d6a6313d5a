package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ytnote/internal/errs"
)

// Bundle holds the per-video output layout. Every artifact of one run
// lives under Root; no stage writes outside it.
type Bundle struct {
	VideoID        string
	Root           string
	VideoPath      string
	TranscriptPath string
	RawSummaryPath string
	SummaryPath    string
	DocxPath       string
	ScreenshotsDir string
}

// Screenshot is one captured frame, named by its timestamp in seconds.
type Screenshot struct {
	Seconds float64
	Path    string
}

// Prepare creates the output directory tree for the given video ID.
// Safe to call repeatedly for the same ID.
func Prepare(resultsRoot, videoID string) (*Bundle, error) {
	root := filepath.Join(resultsRoot, videoID)
	screenshotsDir := filepath.Join(root, "screenshots")

	for _, dir := range []string{root, screenshotsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create directory %s: %v", errs.ErrFilesystem, dir, err)
		}
	}

	return &Bundle{
		VideoID:        videoID,
		Root:           root,
		VideoPath:      filepath.Join(root, "video.mp4"),
		TranscriptPath: filepath.Join(root, "transcription.txt"),
		RawSummaryPath: filepath.Join(root, "summary-raw.md"),
		SummaryPath:    filepath.Join(root, "summary.md"),
		DocxPath:       filepath.Join(root, "summary.docx"),
		ScreenshotsDir: screenshotsDir,
	}, nil
}

// ScreenshotPath returns the image path for a timestamp, e.g.
// screenshots/12.50.jpg for 12.5 seconds.
func (b *Bundle) ScreenshotPath(seconds float64) string {
	return filepath.Join(b.ScreenshotsDir, FormatSeconds(seconds)+".jpg")
}

// Exists reports whether an artifact file is present and non-empty.
func (b *Bundle) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// WriteText persists a text artifact.
func (b *Bundle) WriteText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", errs.ErrFilesystem, path, err)
	}
	return nil
}

// ReadText loads a text artifact.
func (b *Bundle) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", errs.ErrFilesystem, path, err)
	}
	return string(data), nil
}

// Screenshots lists previously captured frames, ordered by timestamp.
// Files whose names are not timestamps are ignored.
func (b *Bundle) Screenshots() ([]Screenshot, error) {
	entries, err := os.ReadDir(b.ScreenshotsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", errs.ErrFilesystem, b.ScreenshotsDir, err)
	}

	var shots []Screenshot
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".jpg" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		seconds, err := strconv.ParseFloat(stem, 64)
		if err != nil {
			continue
		}
		shots = append(shots, Screenshot{
			Seconds: seconds,
			Path:    filepath.Join(b.ScreenshotsDir, e.Name()),
		})
	}

	sort.Slice(shots, func(i, j int) bool { return shots[i].Seconds < shots[j].Seconds })
	return shots, nil
}

// FormatSeconds renders a timestamp the way screenshot files are named.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64)
}
