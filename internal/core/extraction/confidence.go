package extraction

import (
	"regexp"
	"strconv"
)

var confidencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"confidence"\s*:\s*(\d+)`),
	regexp.MustCompile(`(?i)\bconfidence\s*:\s*(\d+)`),
	regexp.MustCompile(`(?i)\brated\s*:?\s*(\d+)\s*%`),
	regexp.MustCompile(`(?i)(\d+)\s*%\s*confidence`),
}

var matchConfidence = func() matcher[int] {
	ms := make([]matcher[int], 0, len(confidencePatterns))
	for _, re := range confidencePatterns {
		ms = append(ms, percentage(re))
	}
	return firstOf(ms...)
}()

// percentage accepts the first match of re whose number lies in [0, 100].
func percentage(re *regexp.Regexp) matcher[int] {
	return func(text string) (int, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return 0, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || !InRange(n) {
			return 0, false
		}
		return n, true
	}
}

// ExtractConfidence returns an overall confidence score phrased either as a
// JSON field or in prose, or nil when no pattern yields a value in [0, 100].
func ExtractConfidence(text string) *int {
	n, ok := matchConfidence(text)
	if !ok {
		return nil
	}
	return &n
}

// InRange reports whether n is a valid confidence score.
func InRange(n int) bool {
	return n >= 0 && n <= 100
}
