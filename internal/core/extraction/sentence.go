package extraction

// Keys tried for the translated sentence, highest priority first.
var sentenceKeys = []string{"sentence", "translation", "translated", "result"}

var matchSentence = func() matcher[string] {
	ms := make([]matcher[string], 0, len(sentenceKeys))
	for _, k := range sentenceKeys {
		ms = append(ms, quotedValue(k))
	}
	return firstOf(ms...)
}()

// SentenceKeys returns the keys recognized as the translated sentence, in priority order.
func SentenceKeys() []string {
	return append([]string(nil), sentenceKeys...)
}

// ExtractSentence returns the first non-empty, fully quoted sentence value in
// text, or nil. "sentence" wins over its aliases when several are present.
func ExtractSentence(text string) *string {
	s, ok := matchSentence(text)
	if !ok {
		return nil
	}
	return &s
}
