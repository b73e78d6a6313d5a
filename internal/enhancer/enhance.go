package enhancer

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"ytnote/internal/bundle"
)

var (
	reHeading   = regexp.MustCompile(`^#{1,6}\s+`)
	reTimestamp = regexp.MustCompile(`\[(\d+(?:\.\d+)?)s\b`)
)

// Enhance merges screenshot references into the markdown summary. Each
// screenshot is inserted after the summary line whose cited timestamp is
// nearest to the screenshot's; when the summary cites no timestamps the
// screenshots are spread across its sections instead. With no
// screenshots the summary is returned unchanged, byte for byte.
func Enhance(summary string, shots []bundle.Screenshot) string {
	if len(shots) == 0 {
		return summary
	}

	lines := strings.Split(summary, "\n")

	insertions := make(map[int][]string, len(shots))
	anchors := timestampAnchors(lines)

	if len(anchors) > 0 {
		for _, shot := range shots {
			line := nearestAnchor(anchors, shot.Seconds)
			insertions[line] = append(insertions[line], imageRef(shot))
		}
	} else {
		spreadAcrossSections(lines, shots, insertions)
	}

	var out []string
	for i, line := range lines {
		out = append(out, line)
		for _, ref := range insertions[i] {
			out = append(out, "", ref)
		}
	}
	for _, ref := range insertions[len(lines)] {
		out = append(out, "", ref)
	}

	return strings.Join(out, "\n")
}

func imageRef(shot bundle.Screenshot) string {
	ts := bundle.FormatSeconds(shot.Seconds)
	return fmt.Sprintf("![Screenshot at %ss](./screenshots/%s.jpg)", ts, ts)
}

type anchor struct {
	line    int
	seconds float64
}

// timestampAnchors finds non-heading summary lines that cite a
// bracketed timestamp like "[12.5s]" or "[30.00s - 45.00s]". Bare
// digits followed by "s" in prose ("the 1990s") are not anchors.
func timestampAnchors(lines []string) []anchor {
	var anchors []anchor
	for i, line := range lines {
		if reHeading.MatchString(strings.TrimSpace(line)) {
			continue
		}
		m := reTimestamp.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var seconds float64
		fmt.Sscanf(m[1], "%f", &seconds)
		anchors = append(anchors, anchor{line: i, seconds: seconds})
	}
	return anchors
}

func nearestAnchor(anchors []anchor, seconds float64) int {
	best := anchors[0]
	for _, a := range anchors[1:] {
		if math.Abs(a.seconds-seconds) < math.Abs(best.seconds-seconds) {
			best = a
		}
	}
	return best.line
}

// spreadAcrossSections assigns screenshots to section ends in order;
// leftovers go to the end of the document.
func spreadAcrossSections(lines []string, shots []bundle.Screenshot, insertions map[int][]string) {
	ends := sectionEnds(lines)

	for i, shot := range shots {
		pos := len(lines)
		if i < len(ends) {
			pos = ends[i]
		}
		insertions[pos] = append(insertions[pos], imageRef(shot))
	}
}

// sectionEnds returns, for each heading, the index of the last content
// line of its section.
func sectionEnds(lines []string) []int {
	var headings []int
	for i, line := range lines {
		if reHeading.MatchString(strings.TrimSpace(line)) {
			headings = append(headings, i)
		}
	}

	var ends []int
	for i := range headings {
		end := len(lines) - 1
		if i+1 < len(headings) {
			end = headings[i+1] - 1
		}
		// Walk back over trailing blank lines of the section.
		for end > headings[i] && strings.TrimSpace(lines[end]) == "" {
			end--
		}
		ends = append(ends, end)
	}
	return ends
}
