package interpret

import (
	"github.com/tidwall/gjson"

	"github.com/padwhen/language-learning-app/internal/core/common"
	"github.com/padwhen/language-learning-app/internal/core/confidence"
	"github.com/padwhen/language-learning-app/internal/core/dedupe"
	"github.com/padwhen/language-learning-app/internal/core/extraction"
	"github.com/padwhen/language-learning-app/internal/core/model"
)

// DefaultMaxBytes bounds the text the interpreter looks at. The prefix scan
// is quadratic in the text length.
const DefaultMaxBytes = 32 << 10

// Interpreter turns raw model output into a TranslationResult. It holds no
// state between calls and never fails: unusable text yields an empty result.
type Interpreter struct {
	MaxBytes int
}

// Interpret runs Interpreter{}.Interpret.
func Interpret(raw string) model.TranslationResult {
	return Interpreter{}.Interpret(raw)
}

// ApplyChunk runs Interpreter{}.ApplyChunk.
func ApplyChunk(prev model.TranslationResult, chunk model.RawChunk) model.TranslationResult {
	return Interpreter{}.ApplyChunk(prev, chunk)
}

// Interpret recovers a sentence, words and confidence from raw. The result
// is not marked complete; that is the caller's decision.
func (in Interpreter) Interpret(raw string) model.TranslationResult {
	result := model.NewResult(raw)
	text := common.Truncate(raw, in.maxBytes())
	body := common.StripCodeFences(text)

	var parsed *gjson.Result
	if prefix, ok := common.ParsePrefix(body); ok && isTranslation(prefix.Value) {
		v := prefix.Value
		parsed = &v
		result.Sentence = sentenceOf(v)
		result.Words = wordsOf(v)
	}

	if result.Sentence == nil {
		result.Sentence = extraction.ExtractSentence(body)
	}
	if len(result.Words) == 0 {
		result.Words = dedupe.Merge(
			extraction.ExtractPartialWords(body),
			extraction.ExtractCompleteWords(body),
		)
	}

	result.Confidence, result.ConfidenceDetails = confidence.Resolve(parsed, text)
	return result
}

// ApplyChunk folds one more piece of a streamed response into prev. The new
// result is a function of the accumulated text and prev alone: words already
// recovered keep their position and completeness, and a sentence or
// confidence seen earlier survives a chunk that temporarily hides it.
func (in Interpreter) ApplyChunk(prev model.TranslationResult, chunk model.RawChunk) model.TranslationResult {
	next := in.Interpret(prev.OriginalText + chunk.Text)
	next.Words = dedupe.Fold(prev.Words, next.Words)

	if next.Sentence == nil {
		next.Sentence = prev.Sentence
	}
	if next.Confidence == nil {
		next.Confidence = prev.Confidence
	}
	if next.ConfidenceDetails == nil {
		next.ConfidenceDetails = prev.ConfidenceDetails
	}

	next.IsComplete = chunk.Final
	if chunk.Final {
		next.CurrentWordIndex = -1
	} else {
		next.CurrentWordIndex = len(next.Words) - 1
	}
	return next
}

func (in Interpreter) maxBytes() int {
	if in.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return in.MaxBytes
}

func isTranslation(v gjson.Result) bool {
	if !v.IsObject() {
		return false
	}
	if v.Get("words").Exists() {
		return true
	}
	for _, k := range extraction.SentenceKeys() {
		if v.Get(k).Exists() {
			return true
		}
	}
	return false
}

func sentenceOf(v gjson.Result) *string {
	for _, k := range extraction.SentenceKeys() {
		s := v.Get(k)
		if s.Type == gjson.String && s.Str != "" {
			sentence := s.Str
			return &sentence
		}
	}
	return nil
}

func wordsOf(v gjson.Result) []model.WordRecord {
	var partial, complete []model.WordRecord
	for _, item := range v.Get("words").Array() {
		if !item.IsObject() {
			continue
		}
		if w, ok := extraction.CompleteRecord(item); ok {
			complete = append(complete, w)
		} else if w, ok := extraction.PartialRecord(item); ok {
			partial = append(partial, w)
		}
	}
	return dedupe.Merge(partial, complete)
}
