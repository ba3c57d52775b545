package dedupe

import (
	"strings"

	"github.com/padwhen/language-learning-app/internal/core/common"
	"github.com/padwhen/language-learning-app/internal/core/model"
)

// Merge combines the records of one extraction into a list holding a single
// record per normalized surface form. Complete records seed the result; a
// partial record for a known surface form only fills the gaps of the record
// already there. Order is the order in which surface forms were first seen.
func Merge(partial, complete []model.WordRecord) []model.WordRecord {
	idx := newIndex(len(partial) + len(complete))
	for _, w := range complete {
		w.IsPartial = false
		idx.add(w)
	}
	for _, w := range partial {
		idx.add(w)
	}
	return idx.records()
}

// Fold merges the words recovered from a longer text into the words recovered
// from an earlier, shorter one. Earlier records keep their position.
func Fold(prev, next []model.WordRecord) []model.WordRecord {
	idx := newIndex(len(prev) + len(next))
	for _, w := range prev {
		idx.add(w)
	}
	for _, w := range next {
		idx.add(w)
	}
	return idx.records()
}

// MergeRecord merges two records describing the same surface form. A field of
// base survives unless it is empty or a placeholder, in which case extra's
// value is taken. The result is complete if either side is.
func MergeRecord(base, extra model.WordRecord) model.WordRecord {
	merged := base
	if merged.Fi == "" {
		merged.Fi = extra.Fi
	}
	merged.En = pick(base.En, extra.En)
	merged.EnBase = pick(base.EnBase, extra.EnBase)
	merged.Type = pickType(base.Type, extra.Type)
	merged.OriginalWord = pick(base.OriginalWord, extra.OriginalWord)
	merged.Pronunciation = pick(base.Pronunciation, extra.Pronunciation)
	merged.Comment = pick(base.Comment, extra.Comment)
	merged.SentenceText = pick(base.SentenceText, extra.SentenceText)
	merged.IsPartial = base.IsPartial && extra.IsPartial

	if merged.OriginalWord == "" {
		merged.OriginalWord = merged.Fi
	}
	return merged
}

// Key returns the merge key of a record.
func Key(w model.WordRecord) string {
	return common.NormalizeText(w.Fi)
}

func pick(current, incoming string) string {
	if isPlaceholder(current) {
		return incoming
	}
	return current
}

// pickType also treats the type synthesized for partial records as a placeholder.
func pickType(current, incoming string) string {
	if current == model.UnknownType && !isPlaceholder(incoming) {
		return incoming
	}
	return pick(current, incoming)
}

func isPlaceholder(v string) bool {
	return strings.TrimSpace(v) == "" || v == model.LoadingPlaceholder
}

// index keeps records keyed by surface form in first-seen order.
type index struct {
	pos   map[string]int
	words []model.WordRecord
}

func newIndex(capacity int) *index {
	return &index{
		pos:   make(map[string]int, capacity),
		words: make([]model.WordRecord, 0, capacity),
	}
}

func (x *index) add(w model.WordRecord) {
	key := Key(w)
	if key == "" {
		return
	}
	i, ok := x.pos[key]
	if !ok {
		x.pos[key] = len(x.words)
		x.words = append(x.words, w)
		return
	}

	existing := x.words[i]
	if existing.IsPartial && !w.IsPartial {
		// The complete record takes precedence; the partial one only fills its gaps.
		x.words[i] = MergeRecord(w, existing)
		return
	}
	x.words[i] = MergeRecord(existing, w)
}

func (x *index) records() []model.WordRecord {
	return x.words
}
