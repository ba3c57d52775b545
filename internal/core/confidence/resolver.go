package confidence

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/padwhen/language-learning-app/internal/core/common"
	"github.com/padwhen/language-learning-app/internal/core/extraction"
	"github.com/padwhen/language-learning-app/internal/core/model"
)

var detailsKey = regexp.MustCompile(`"confidenceDetails"\s*:\s*\{`)

// Resolve extracts the overall confidence and its breakdown. A confidence
// field on the parsed object wins; otherwise the raw text is searched with
// the prose patterns. A nil breakdown means no rationale was given, not zero
// confidence.
func Resolve(parsed *gjson.Result, raw string) (*int, *model.ConfidenceBreakdown) {
	var obj gjson.Result
	if parsed != nil && parsed.IsObject() {
		obj = *parsed
	}

	score := fromObject(obj)
	if score == nil {
		score = extraction.ExtractConfidence(raw)
	}

	details := obj.Get("confidenceDetails")
	if !details.IsObject() {
		details = recoverDetails(raw)
	}

	return score, breakdown(details, obj.Get("concerns"))
}

func fromObject(obj gjson.Result) *int {
	v := obj.Get("confidence")
	if !v.Exists() {
		return nil
	}
	n, ok := Score(v)
	if !ok {
		return nil
	}
	return &n
}

// recoverDetails finds a complete confidenceDetails object inside text that
// does not parse as a whole.
func recoverDetails(raw string) gjson.Result {
	loc := detailsKey.FindStringIndex(raw)
	if loc == nil {
		return gjson.Result{}
	}
	prefix, ok := common.ParsePrefix(raw[loc[1]-1:])
	if !ok {
		return gjson.Result{}
	}
	return prefix.Value
}

func breakdown(details, topConcerns gjson.Result) *model.ConfidenceBreakdown {
	if !details.IsObject() {
		if !topConcerns.IsArray() {
			return nil
		}
		return &model.ConfidenceBreakdown{Concerns: concerns(topConcerns)}
	}

	b := &model.ConfidenceBreakdown{
		Accuracy:     optionalScore(details.Get("accuracy")),
		Completeness: optionalScore(details.Get("completeness")),
		Naturalness:  optionalScore(details.Get("naturalness")),
		Grammar:      optionalScore(details.Get("grammar")),
	}
	if c := details.Get("concerns"); c.IsArray() {
		b.Concerns = concerns(c)
	} else if topConcerns.IsArray() {
		b.Concerns = concerns(topConcerns)
	}
	return b
}

func optionalScore(v gjson.Result) *int {
	n, ok := Score(v)
	if !ok {
		return nil
	}
	return &n
}

func concerns(v gjson.Result) []string {
	out := []string{}
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Score reads a 0..100 score from a number or a numeric string such as "82%".
func Score(v gjson.Result) (int, bool) {
	var n int
	switch v.Type {
	case gjson.Number:
		f := v.Float()
		if math.IsNaN(f) || f < 0 || f > 100 {
			return 0, false
		}
		n = int(math.Round(f))
	case gjson.String:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v.Str), "%"))
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if !extraction.InRange(n) {
		return 0, false
	}
	return n, true
}
