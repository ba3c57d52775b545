package model

// LoadingPlaceholder marks a comment that has not been produced yet.
const LoadingPlaceholder = "Loading..."

// UnknownType is the part-of-speech given to partial records without a type.
const UnknownType = "unknown"

// TranslationResult is the structured result recovered from one model response.
type TranslationResult struct {
	Sentence          *string              `json:"sentence"`
	Words             []WordRecord         `json:"words"`
	Confidence        *int                 `json:"confidence"`
	ConfidenceDetails *ConfidenceBreakdown `json:"confidenceDetails"`
	IsComplete        bool                 `json:"isComplete"`
	OriginalText      string               `json:"originalText"`
	CurrentWordIndex  int                  `json:"currentWordIndex"`
}

// HasContent reports whether the result carries a sentence and at least one word.
func (r TranslationResult) HasContent() bool {
	return r.Sentence != nil && *r.Sentence != "" && len(r.Words) > 0
}

// WordRecord is one vocabulary entry aligned to the translated sentence.
type WordRecord struct {
	Fi            string `json:"fi"`
	En            string `json:"en"`
	EnBase        string `json:"en_base,omitempty"`
	Type          string `json:"type"`
	OriginalWord  string `json:"original_word"`
	Pronunciation string `json:"pronunciation"`
	Comment       string `json:"comment"`
	IsPartial     bool   `json:"isPartial"`
	SentenceText  string `json:"sentenceText,omitempty"`
}

// ConfidenceBreakdown is the rationale behind an overall confidence score.
type ConfidenceBreakdown struct {
	Accuracy     *int     `json:"accuracy,omitempty"`
	Completeness *int     `json:"completeness,omitempty"`
	Naturalness  *int     `json:"naturalness,omitempty"`
	Grammar      *int     `json:"grammar,omitempty"`
	Concerns     []string `json:"concerns,omitempty"`
}

// RawChunk is one piece of a streamed model response.
type RawChunk struct {
	Text  string
	Final bool
}

// NewResult returns an empty result for text that has not been interpreted yet.
func NewResult(text string) TranslationResult {
	return TranslationResult{
		Words:            []WordRecord{},
		OriginalText:     text,
		CurrentWordIndex: -1,
	}
}
