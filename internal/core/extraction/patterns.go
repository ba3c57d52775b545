package extraction

import (
	"encoding/json"
	"regexp"
)

// quoted matches the body of a JSON string literal, escapes included.
const quoted = `((?:[^"\\]|\\.)*)`

// matcher pulls one value out of text. ok is false when the pattern does not apply.
type matcher[T any] func(text string) (value T, ok bool)

// firstOf tries each matcher in order and returns the first value found.
func firstOf[T any](ms ...matcher[T]) matcher[T] {
	return func(text string) (T, bool) {
		for _, m := range ms {
			if v, ok := m(text); ok {
				return v, true
			}
		}
		var zero T
		return zero, false
	}
}

// quotedValue matches `"key": "value"` and returns the unescaped value.
func quotedValue(key string) matcher[string] {
	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"` + quoted + `"`)
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		v := unescape(m[1])
		return v, v != ""
	}
}

// unescape decodes JSON string escapes, keeping the raw body if they are malformed.
func unescape(body string) string {
	var s string
	if err := json.Unmarshal([]byte(`"`+body+`"`), &s); err != nil {
		return body
	}
	return s
}
