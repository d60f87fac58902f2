package integrations

import (
	"strings"
	"time"
)

// Accepted event date layouts, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

const defaultEventHour = 10

// ResolveEventWindow turns an event's date and optional time strings into a
// concrete [start, end) window. Bare dates start at 10:00; a missing or
// unparseable date falls back to tomorrow at 10:00 local time. The end is
// always start plus one hour.
func ResolveEventWindow(date, clock string, now time.Time) (time.Time, time.Time) {
	start := parseEventStart(date, clock, now)
	return start, start.Add(time.Hour)
}

func parseEventStart(date, clock string, now time.Time) time.Time {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if date != "" {
		for _, layout := range dateLayouts {
			t, err := time.ParseInLocation(layout, date, now.Location())
			if err != nil {
				continue
			}
			if layout == "2006-01-02" {
				hour, minute := defaultEventHour, 0
				if hm, ok := parseClock(clock); ok {
					hour, minute = hm[0], hm[1]
				}
				return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, now.Location())
			}
			return t
		}
	}

	// Documented fallback: tomorrow at 10:00 local.
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(),
		defaultEventHour, 0, 0, 0, now.Location())
}

func parseClock(clock string) ([2]int, bool) {
	if clock == "" {
		return [2]int{}, false
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return [2]int{}, false
	}
	return [2]int{t.Hour(), t.Minute()}, true
}
