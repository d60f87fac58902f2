package transcribe

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"meetingflow/internal/meeting"
)

var reTimestamps = regexp.MustCompile(
	`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)

// ParseSRT converts SRT subtitle content into timed segments sorted by
// start time. Blank blocks and bare index lines are skipped.
func ParseSRT(content string) ([]meeting.Segment, error) {
	var segments []meeting.Segment

	blocks := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// First line is the sequence index; the timing line follows.
		timing := lines[0]
		textStart := 1
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
			if len(lines) < 3 {
				continue
			}
			timing = lines[1]
			textStart = 2
		}

		m := reTimestamps.FindStringSubmatch(timing)
		if m == nil {
			return nil, fmt.Errorf("malformed timing line: %q", timing)
		}

		text := strings.TrimSpace(strings.Join(lines[textStart:], " "))
		if text == "" {
			continue
		}

		segments = append(segments, meeting.Segment{
			Start: srtSeconds(m[1], m[2], m[3], m[4]),
			End:   srtSeconds(m[5], m[6], m[7], m[8]),
			Text:  text,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments, nil
}

func srtSeconds(h, m, s, ms string) float64 {
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	ss, _ := strconv.Atoi(s)
	mss, _ := strconv.Atoi(ms)
	return float64(hh)*3600 + float64(mm)*60 + float64(ss) + float64(mss)/1000
}
