package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/padwhen/language-learning-app/internal/core/common"
	"github.com/padwhen/language-learning-app/internal/core/model"
)

// field matches `"key": "..."` without capturing.
func field(key string) string {
	return `"` + key + `"\s*:\s*"(?:[^"\\]|\\.)*"`
}

// wordObject matches a brace-delimited object whose three keys appear in the given order.
func wordObject(first, second, third string) *regexp.Regexp {
	const gap = `[^{}]*`
	return regexp.MustCompile(`\{` + gap + field(first) + gap + field(second) + gap + field(third) + gap + `\}`)
}

// Models do not keep object keys in a fixed order.
var completeWordPatterns = []*regexp.Regexp{
	wordObject("fi", "en", "type"),
	wordObject("en", "fi", "type"),
	wordObject("type", "fi", "en"),
}

// ExtractCompleteWords scans text for self-contained word objects carrying a
// surface form, a meaning and a type. Records come back in order of
// appearance; a repeated surface+meaning pair keeps its first occurrence.
func ExtractCompleteWords(text string) []model.WordRecord {
	type hit struct{ start, end int }
	var hits []hit
	for _, re := range completeWordPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			hits = append(hits, hit{loc[0], loc[1]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	seen := make(map[string]bool)
	words := make([]model.WordRecord, 0, len(hits))
	for _, h := range hits {
		prefix, ok := common.ParsePrefix(text[h.start:h.end])
		if !ok {
			continue
		}
		w, ok := CompleteRecord(prefix.Value)
		if !ok {
			continue
		}
		key := pairKey(w.Fi, w.En)
		if seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, w)
	}
	return words
}

// CompleteRecord builds a non-partial record from a parsed word object. It
// fails when the surface form, meaning or type is missing.
func CompleteRecord(v gjson.Result) (model.WordRecord, bool) {
	w := recordFromJSON(v)
	if w.Fi == "" || w.En == "" || w.Type == "" {
		return model.WordRecord{}, false
	}
	if w.OriginalWord == "" {
		w.OriginalWord = w.Fi
	}
	return w, true
}

// PartialRecord builds a partial record from a parsed word object that has a
// surface form and meaning but may lack a type. Missing fields get the
// placeholders the merge step knows to replace.
func PartialRecord(v gjson.Result) (model.WordRecord, bool) {
	w := recordFromJSON(v)
	if w.Fi == "" || w.En == "" {
		return model.WordRecord{}, false
	}
	if w.Type == "" {
		w.Type = model.UnknownType
	}
	if w.Comment == "" {
		w.Comment = model.LoadingPlaceholder
	}
	if w.OriginalWord == "" {
		w.OriginalWord = w.Fi
	}
	w.IsPartial = true
	return w, true
}

func recordFromJSON(v gjson.Result) model.WordRecord {
	str := func(key string) string {
		return strings.TrimSpace(v.Get(key).String())
	}
	return model.WordRecord{
		Fi:            str("fi"),
		En:            str("en"),
		EnBase:        str("en_base"),
		Type:          str("type"),
		OriginalWord:  str("original_word"),
		Pronunciation: str("pronunciation"),
		Comment:       str("comment"),
		SentenceText:  str("sentenceText"),
	}
}

func pairKey(fi, en string) string {
	return common.NormalizeText(fi) + "\x00" + common.NormalizeText(en)
}
