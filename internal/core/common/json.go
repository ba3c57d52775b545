package common

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var codeFence = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")

// Prefix is the longest leading JSON object found in a text.
type Prefix struct {
	Value gjson.Result
	Raw   string
	// Consumed counts the bytes of the original text up to and including the
	// object and any whitespace that follows it.
	Consumed int
}

// ParsePrefix finds the longest prefix of text, starting at its first '{',
// that is a complete JSON object. The window shrinks one byte at a time from
// the end, so a stream cut off mid-token still yields any complete object
// that precedes the cut. Not finding one is a normal outcome.
func ParsePrefix(text string) (Prefix, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return Prefix{}, false
	}
	body := text[start:]

	for end := len(body); end > 0; end-- {
		// A JSON object can only end on a closing brace.
		if body[end-1] != '}' {
			continue
		}
		candidate := body[:end]
		if !gjson.Valid(candidate) {
			continue
		}

		consumed := end
		for consumed < len(body) && isSpace(body[consumed]) {
			consumed++
		}
		return Prefix{
			Value:    gjson.Parse(candidate),
			Raw:      candidate,
			Consumed: start + consumed,
		}, true
	}

	return Prefix{}, false
}

// ParseJSON cleans and unmarshals a model response into a type T.
// It handles common LLM quirks like surrounding markdown, extra text and
// trailing garbage after the object.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	prefix, ok := ParsePrefix(StripCodeFences(response))
	if !ok {
		return zero, fmt.Errorf("no complete JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(prefix.Raw), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, Truncate(prefix.Raw, 300))
	}

	return result, nil
}

// StripCodeFences returns the body of the first markdown code block in s.
// An opening fence without a closing one (a stream still in progress) is
// dropped and the rest of the text kept.
func StripCodeFences(s string) string {
	if m := codeFence.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}

	i := strings.Index(s, "```")
	if i == -1 {
		return s
	}
	rest := s[i+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 && !strings.Contains(rest[:nl], "{") {
		rest = rest[nl+1:]
	}
	return rest
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
