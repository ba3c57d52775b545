package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func parsed(raw string) *gjson.Result {
	v := gjson.Parse(raw)
	return &v
}

func TestResolvePrefersParsedField(t *testing.T) {
	raw := `{"confidence": 91} I rated: 40%`

	score, details := Resolve(parsed(`{"confidence": 91}`), raw)

	require.NotNil(t, score)
	assert.Equal(t, 91, *score)
	assert.Nil(t, details)
}

func TestResolveFallsBackToPatterns(t *testing.T) {
	t.Run("no parsed object", func(t *testing.T) {
		score, _ := Resolve(nil, `{"sentence": "x", "confidence": 150} rated: 82%`)
		require.NotNil(t, score)
		assert.Equal(t, 82, *score)
	})

	t.Run("parsed object without field", func(t *testing.T) {
		score, _ := Resolve(parsed(`{"sentence": "x"}`), `{"sentence": "x"} Confidence: 70`)
		require.NotNil(t, score)
		assert.Equal(t, 70, *score)
	})

	t.Run("parsed field out of range", func(t *testing.T) {
		score, _ := Resolve(parsed(`{"confidence": 140}`), `{"confidence": 140}`)
		assert.Nil(t, score)
	})
}

func TestResolveDetails(t *testing.T) {
	t.Run("sub-object", func(t *testing.T) {
		obj := `{"confidence": 88, "confidenceDetails": {"accuracy": 90, "completeness": "85%", "naturalness": 80.6, "grammar": 120, "concerns": ["idiom", " "]}, "concerns": ["ignored"]}`
		_, details := Resolve(parsed(obj), obj)

		require.NotNil(t, details)
		assert.Equal(t, 90, *details.Accuracy)
		assert.Equal(t, 85, *details.Completeness)
		assert.Equal(t, 81, *details.Naturalness)
		assert.Nil(t, details.Grammar, "out of range sub-score dropped")
		assert.Equal(t, []string{"idiom"}, details.Concerns)
	})

	t.Run("sub-object without concerns uses top level", func(t *testing.T) {
		obj := `{"confidenceDetails": {"accuracy": 90}, "concerns": ["word order"]}`
		_, details := Resolve(parsed(obj), obj)

		require.NotNil(t, details)
		assert.Equal(t, []string{"word order"}, details.Concerns)
	})

	t.Run("only top-level concerns", func(t *testing.T) {
		obj := `{"confidence": 60, "concerns": ["ambiguous subject"]}`
		_, details := Resolve(parsed(obj), obj)

		require.NotNil(t, details)
		assert.Nil(t, details.Accuracy)
		assert.Nil(t, details.Completeness)
		assert.Equal(t, []string{"ambiguous subject"}, details.Concerns)
	})

	t.Run("nothing", func(t *testing.T) {
		obj := `{"confidence": 60}`
		_, details := Resolve(parsed(obj), obj)
		assert.Nil(t, details)
	})

	t.Run("recovered from unparsed text", func(t *testing.T) {
		raw := `{"sentence": "x", "confidenceDetails": {"accuracy": 75, "concerns": ["tone"]}, "words": [{"fi": "ki`
		score, details := Resolve(nil, raw)

		assert.Nil(t, score)
		require.NotNil(t, details)
		assert.Equal(t, 75, *details.Accuracy)
		assert.Equal(t, []string{"tone"}, details.Concerns)
	})

	t.Run("nested under a wrapper object", func(t *testing.T) {
		raw := `{"result": {"sentence": "x", "confidence": 80, "confidenceDetails": {"grammar": 70, "concerns": ["register"]}}}`
		score, details := Resolve(parsed(raw), raw)

		require.NotNil(t, score)
		assert.Equal(t, 80, *score)
		require.NotNil(t, details)
		assert.Equal(t, 70, *details.Grammar)
		assert.Equal(t, []string{"register"}, details.Concerns)
	})

	t.Run("truncated details", func(t *testing.T) {
		_, details := Resolve(nil, `{"confidenceDetails": {"accuracy": 7`)
		assert.Nil(t, details)
	})
}

func TestScore(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{`82`, 82, true},
		{`82.4`, 82, true},
		{`"82%"`, 82, true},
		{`" 64 "`, 64, true},
		{`0`, 0, true},
		{`100`, 100, true},
		{`100.4`, 0, false},
		{`-1`, 0, false},
		{`"high"`, 0, false},
		{`true`, 0, false},
		{`null`, 0, false},
	}
	for _, tt := range tests {
		got, ok := Score(gjson.Parse(tt.raw))
		assert.Equal(t, tt.ok, ok, "score %s", tt.raw)
		assert.Equal(t, tt.want, got, "score %s", tt.raw)
	}
}
