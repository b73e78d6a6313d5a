package screenshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"ytnote/internal/bundle"
	"ytnote/internal/downloader"
	"ytnote/internal/gemini"
	"ytnote/internal/summarizer"
	"ytnote/internal/transcriber"
)

const timePickerPrompt = `You are a professional content analyst. Based on the provided
summary and video transcript, identify the timestamps (in seconds) of key moments in
the video where a screenshot would most enhance or supplement the summary.

Pick at most %d timestamps, all within the video's duration.
Respond with a JSON array of numbers only, e.g. [12.5, 64.0, 180.25].

%s
Summary:
---
%s
---

Transcript with timestamps:
---
%s
---`

// SelectAndCapture picks key-moment timestamps and writes one JPEG per
// timestamp into the bundle. A frame that cannot be captured is skipped
// with a warning; only the selection as a whole failing is fatal.
func (s *implSelector) SelectAndCapture(ctx context.Context, b *bundle.Bundle, info *downloader.VideoInfo, summary string, segments []transcriber.Segment) ([]bundle.Screenshot, []string, error) {
	times := s.selectTimes(ctx, info, summary, segments)

	duration := videoDuration(info, segments)

	var shots []bundle.Screenshot
	var warnings []string

	for _, ts := range times {
		img, err := s.capture(ctx, b.VideoPath, ts, duration)
		if err != nil {
			warning := fmt.Sprintf("skipping screenshot at %.2fs: %v", ts, err)
			s.logger.Warn(ctx, "%s", warning)
			warnings = append(warnings, warning)
			continue
		}

		path := b.ScreenshotPath(ts)
		if err := writeImage(path, img); err != nil {
			warning := fmt.Sprintf("skipping screenshot at %.2fs: %v", ts, err)
			s.logger.Warn(ctx, "%s", warning)
			warnings = append(warnings, warning)
			continue
		}

		shots = append(shots, bundle.Screenshot{Seconds: ts, Path: path})
	}

	s.logger.Info(ctx, "Captured %d of %d screenshots", len(shots), len(times))
	return shots, warnings, nil
}

// selectTimes asks the model for key moments; if the model fails or
// returns nothing usable, falls back to evenly spaced timestamps.
func (s *implSelector) selectTimes(ctx context.Context, info *downloader.VideoInfo, summary string, segments []transcriber.Segment) []float64 {
	maxCount := s.cfg.Screenshots.MaxCount
	prompt := fmt.Sprintf(timePickerPrompt, maxCount,
		summarizer.VideoInfoBlock(info), summary, transcriber.FormatSegments(segments))

	response, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn(ctx, "Time picker failed, using evenly spaced timestamps: %v", err)
		return FallbackTimes(segments, maxCount)
	}

	times, err := parseTimes(response)
	if err != nil {
		s.logger.Warn(ctx, "Time picker returned unusable output, using evenly spaced timestamps: %v", err)
		return FallbackTimes(segments, maxCount)
	}

	times = normalizeTimes(times, maxCount)
	if len(times) == 0 {
		return FallbackTimes(segments, maxCount)
	}
	return times
}

func parseTimes(response string) ([]float64, error) {
	jsonStr, err := gemini.ExtractJSON(response)
	if err != nil {
		return nil, err
	}

	var times []float64
	if err := json.Unmarshal([]byte(jsonStr), &times); err != nil {
		return nil, fmt.Errorf("parse timestamps: %w", err)
	}
	return times, nil
}

// normalizeTimes drops negatives, de-duplicates, sorts and caps the list.
func normalizeTimes(times []float64, maxCount int) []float64 {
	seen := make(map[string]bool)
	var out []float64
	for _, ts := range times {
		if ts < 0 {
			continue
		}
		key := bundle.FormatSeconds(ts)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ts)
	}

	sort.Float64s(out)
	if maxCount > 0 && len(out) > maxCount {
		out = out[:maxCount]
	}
	return out
}

// FallbackTimes spaces n timestamps evenly across the transcript span.
func FallbackTimes(segments []transcriber.Segment, n int) []float64 {
	if len(segments) == 0 || n <= 0 {
		return nil
	}

	start, end := transcriber.Span(segments)
	if end <= start {
		return []float64{start}
	}

	if n > len(segments) {
		n = len(segments)
	}

	step := (end - start) / float64(n+1)
	times := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		times = append(times, start+step*float64(i))
	}
	return times
}

func videoDuration(info *downloader.VideoInfo, segments []transcriber.Segment) float64 {
	if info != nil && info.Duration > 0 {
		return info.Duration
	}
	_, end := transcriber.Span(segments)
	return end
}
