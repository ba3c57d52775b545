package common

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrefix(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantRaw  string
		consumed int
		found    bool
	}{
		{
			name:     "whole object",
			text:     `{"a": 1}`,
			wantRaw:  `{"a": 1}`,
			consumed: 8,
			found:    true,
		},
		{
			name:     "trailing garbage",
			text:     `{"a": 1}  and some prose`,
			wantRaw:  `{"a": 1}`,
			consumed: 10,
			found:    true,
		},
		{
			name:     "leading commentary",
			text:     `Here it is: {"a": {"b": [1, 2]}}`,
			wantRaw:  `{"a": {"b": [1, 2]}}`,
			consumed: 32,
			found:    true,
		},
		{
			name:  "truncated",
			text:  `{"sentence":"Kissa ju`,
			found: false,
		},
		{
			name:  "truncated after nested object",
			text:  `{"a": {"b": 1}, "c": "tail`,
			found: false,
		},
		{
			name:  "no brace",
			text:  "no json here",
			found: false,
		},
		{
			name:  "empty",
			text:  "",
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, ok := ParsePrefix(tt.text)
			require.Equal(t, tt.found, ok)
			if !tt.found {
				return
			}
			assert.Equal(t, tt.wantRaw, prefix.Raw)
			assert.Equal(t, tt.consumed, prefix.Consumed)
			assert.True(t, prefix.Value.IsObject())
		})
	}
}

func TestParsePrefixPrefersLongestObject(t *testing.T) {
	text := `{"a": 1} {"b": 2}`
	prefix, ok := ParsePrefix(text)
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, prefix.Raw)

	// Two objects back to back are not one valid document, so the first wins
	// even though a later brace closes the text.
	assert.Equal(t, int64(1), prefix.Value.Get("a").Int())
}

// Any truncation of a serialized object that still holds a complete leading
// object yields exactly that object.
func TestParsePrefixMonotonicity(t *testing.T) {
	inner := map[string]any{
		"sentence":   "Kissa juoksee",
		"confidence": 80,
		"words": []any{
			map[string]any{"fi": "kissa", "en": "cat", "type": "noun"},
		},
	}
	innerJSON, err := json.Marshal(inner)
	require.NoError(t, err)

	text := string(innerJSON) + `{"sentence": "Koira haukkuu", "words": [{"fi": "koira", "en": "dog"}]}`

	for k := len(innerJSON); k < len(text); k++ {
		prefix, ok := ParsePrefix(text[:k])
		require.True(t, ok, "truncation at %d", k)
		assert.JSONEq(t, string(innerJSON), prefix.Raw, "truncation at %d", k)
	}
}

func TestParsePrefixStopsOnlyAtBraces(t *testing.T) {
	// Valid JSON scalars and arrays are not objects.
	for _, text := range []string{`42`, `"str"`, `[1, 2]`, `{`} {
		_, ok := ParsePrefix(text)
		assert.False(t, ok, "text %q", text)
	}
}

type summary struct {
	Summary string `json:"summary"`
}

func TestParseJSON(t *testing.T) {
	t.Run("fenced", func(t *testing.T) {
		resp := "```json\n{\"summary\": \"ok\"}\n```"
		got, err := ParseJSON[summary](resp)
		require.NoError(t, err)
		assert.Equal(t, "ok", got.Summary)
	})

	t.Run("surrounded by prose", func(t *testing.T) {
		got, err := ParseJSON[summary](`Sure: {"summary": "ok"} hope that helps`)
		require.NoError(t, err)
		assert.Equal(t, "ok", got.Summary)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := ParseJSON[summary](`{"summary": "cut off`)
		assert.EqualError(t, err, "no complete JSON object found in response")
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := ParseJSON[summary](`{"summary": 12}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal JSON")
	})
}

func TestStripCodeFences(t *testing.T) {
	tests := map[string]struct {
		in, want string
	}{
		"json fence":     {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":     {"text\n```\n{\"a\":1}\n```\nmore", `{"a":1}`},
		"upper case tag": {"```JSON\n{}\n```", `{}`},
		"no fence":       {`{"a":1}`, `{"a":1}`},
		"unterminated":   {"```json\n{\"sentence\": \"Kis", `{"sentence": "Kis`},
		"inline open":    {"```{\"a\":1", `{"a":1`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abc", 0))
	assert.Equal(t, "ab", Truncate("abc", 2))

	// "ä" is two bytes; cutting inside it backs off to the rune start.
	assert.Equal(t, "k", Truncate("kä", 2))
	assert.True(t, strings.HasPrefix("hyvää", Truncate("hyvää", 4)))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "kissa", NormalizeText("  Kissa \n"))
	assert.Equal(t, "ääni", NormalizeText("ÄÄNI"))
}
