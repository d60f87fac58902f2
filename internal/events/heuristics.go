package events

import "strings"

// Keyword sets the gate matches against. Deliberately conservative: high
// recall is fine, the extractor downstream tolerates false positives.
var (
	englishKeywords = []string{
		"meeting", "schedule", "calendar", "appointment",
		"zoom", "google meet", "reminder", "deadline",
	}
	arabicKeywords = []string{
		"اجتماع", "موعد", "تقويم", "تذكير", "مقابلة", "ميعاد", "جدول",
	}
)

// ShouldExtract reports whether the text looks like it mentions a meeting or
// appointment. Pure function, case-insensitive, used as a cost-control
// filter ahead of the generative extraction call.
func ShouldExtract(text string) bool {
	lower := strings.ToLower(text)

	for _, kw := range englishKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range arabicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
