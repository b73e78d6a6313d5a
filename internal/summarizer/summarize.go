package summarizer

import (
	"context"
	"fmt"
	"strings"

	"ytnote/internal/downloader"
	"ytnote/internal/errs"
	"ytnote/internal/transcriber"
)

const summaryPrompt = `You are a professional video summarizer who creates concise,
informative markdown summaries that capture the key insights, main points,
and essential context of the video.

Requirements:
- Start with a one-sentence overview of what the video is about
- Cover the main points in the order they appear, using markdown headings and bullet points
- Bold the important keywords
- Keep technical terms as-is
- When a point refers to a specific moment, cite its timestamp in the
  bracketed form from the transcript, e.g. [62.25s]
- Do not mention that this is a summary; just write the note itself
- Respond with the markdown content only, no preamble

%s
Transcript with timestamps:
---
%s
---`

// Summarize sends the transcript to the language model and returns the
// raw markdown note.
func (s *implSummarizer) Summarize(ctx context.Context, info *downloader.VideoInfo, segments []transcriber.Segment) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: transcript has no segments", errs.ErrEmptyInput)
	}

	prompt := fmt.Sprintf(summaryPrompt, VideoInfoBlock(info), transcriber.FormatSegments(segments))

	s.logger.Info(ctx, "Generating summary for %q", info.Title)

	summary, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrSummarization, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%w: model returned empty summary", errs.ErrSummarization)
	}

	return summary, nil
}

// VideoInfoBlock renders video metadata for inclusion in a prompt.
func VideoInfoBlock(info *downloader.VideoInfo) string {
	if info == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("Video information:\n```\n")
	fmt.Fprintf(&b, "title: %s\n", info.Title)
	fmt.Fprintf(&b, "channel: %s\n", info.Channel)
	if len(info.Categories) > 0 {
		fmt.Fprintf(&b, "categories: %s\n", strings.Join(info.Categories, ", "))
	}
	fmt.Fprintf(&b, "duration: %.0f seconds\n", info.Duration)
	if info.Description != "" {
		fmt.Fprintf(&b, "description: %s\n", info.Description)
	}
	b.WriteString("```\n")
	return b.String()
}
