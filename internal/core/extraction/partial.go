package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/padwhen/language-learning-app/internal/core/model"
)

var (
	partialSurfaceFirst = regexp.MustCompile(`\{[^{}]*?"fi"\s*:\s*"` + quoted + `"[^{}]*?"en"\s*:\s*"` + quoted + `"`)
	partialMeaningFirst = regexp.MustCompile(`\{[^{}]*?"en"\s*:\s*"` + quoted + `"[^{}]*?"fi"\s*:\s*"` + quoted + `"`)
	partialType         = regexp.MustCompile(`"type"\s*:\s*"` + quoted + `"`)
)

// ExtractPartialWords recovers word fragments that have at least a surface
// form and a meaning, even when the enclosing object is still being written.
// Every record is marked partial and carries placeholder values that the
// merge step knows to replace.
func ExtractPartialWords(text string) []model.WordRecord {
	type hit struct {
		start  int
		fi, en string
		typ    string
	}
	var hits []hit

	collect := func(re *regexp.Regexp, fiGroup, enGroup int) {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			fi := unescape(text[m[2*fiGroup]:m[2*fiGroup+1]])
			en := unescape(text[m[2*enGroup]:m[2*enGroup+1]])
			hits = append(hits, hit{
				start: m[0],
				fi:    fi,
				en:    en,
				typ:   typeWithin(objectBody(text, m[0])),
			})
		}
	}
	collect(partialSurfaceFirst, 1, 2)
	collect(partialMeaningFirst, 2, 1)
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	seen := make(map[string]bool)
	words := make([]model.WordRecord, 0, len(hits))
	for _, h := range hits {
		fi, en := strings.TrimSpace(h.fi), strings.TrimSpace(h.en)
		if fi == "" || en == "" {
			continue
		}
		key := pairKey(fi, en)
		if seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, newPartial(fi, en, h.typ))
	}
	return words
}

func newPartial(fi, en, typ string) model.WordRecord {
	if typ == "" {
		typ = model.UnknownType
	}
	return model.WordRecord{
		Fi:            fi,
		En:            en,
		Type:          typ,
		OriginalWord:  fi,
		Pronunciation: "",
		Comment:       model.LoadingPlaceholder,
		IsPartial:     true,
	}
}

// objectBody returns text from the '{' at start up to the next brace or the end.
func objectBody(text string, start int) string {
	rest := text[start+1:]
	if end := strings.IndexAny(rest, "{}"); end != -1 {
		rest = rest[:end]
	}
	return rest
}

func typeWithin(body string) string {
	m := partialType.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(unescape(m[1]))
}
