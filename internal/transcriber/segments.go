package transcriber

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	reSrtTime        = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)
	reSrtIndex       = regexp.MustCompile(`^\d+$`)
	reTranscriptLine = regexp.MustCompile(`^\[(\d+(?:\.\d+)?)s - (\d+(?:\.\d+)?)s\]\s?(.*)$`)
)

// ParseSRT converts SRT subtitle content into segments sorted by start
// time. Malformed blocks are skipped.
func ParseSRT(content string) []Segment {
	var segments []Segment

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		m := reSrtTime.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}

		start := srtSeconds(m[1], m[2], m[3], m[4])
		end := srtSeconds(m[5], m[6], m[7], m[8])

		var text []string
		for i++; i < len(lines); i++ {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed == "" || reSrtIndex.MatchString(trimmed) {
				break
			}
			text = append(text, trimmed)
		}

		if len(text) > 0 {
			segments = append(segments, Segment{
				Start: start,
				End:   end,
				Text:  strings.Join(text, " "),
			})
		}
	}

	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return segments
}

func srtSeconds(h, m, s, ms string) float64 {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)
	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000
}

// FormatSegments renders segments as the persisted transcript format,
// one "[12.34s - 56.78s] text" line per segment.
func FormatSegments(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "[%.2fs - %.2fs] %s\n", seg.Start, seg.End, seg.Text)
	}
	return strings.TrimSpace(b.String())
}

// ParseTranscript reads a persisted transcript back into segments.
// Lines that do not match the transcript format are ignored.
func ParseTranscript(content string) []Segment {
	var segments []Segment
	for _, line := range strings.Split(content, "\n") {
		m := reTranscriptLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		start, err1 := strconv.ParseFloat(m[1], 64)
		end, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		segments = append(segments, Segment{Start: start, End: end, Text: m[3]})
	}

	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return segments
}

// Span returns the time range covered by the segments.
func Span(segments []Segment) (start, end float64) {
	if len(segments) == 0 {
		return 0, 0
	}
	start = segments[0].Start
	end = segments[0].End
	for _, seg := range segments[1:] {
		if seg.Start < start {
			start = seg.Start
		}
		if seg.End > end {
			end = seg.End
		}
	}
	return start, end
}
