package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padwhen/language-learning-app/internal/core/model"
)

func complete(fi, en, typ, comment string) model.WordRecord {
	return model.WordRecord{Fi: fi, En: en, Type: typ, OriginalWord: fi, Comment: comment}
}

func partial(fi, en string) model.WordRecord {
	return model.WordRecord{
		Fi:           fi,
		En:           en,
		Type:         model.UnknownType,
		OriginalWord: fi,
		Comment:      model.LoadingPlaceholder,
		IsPartial:    true,
	}
}

func TestMerge(t *testing.T) {
	merged := Merge(
		[]model.WordRecord{partial("kissa", "cat"), partial("juoksee", "runs")},
		[]model.WordRecord{complete("Kissa", "cat", "noun", "nominative")},
	)

	require.Len(t, merged, 2)
	assert.Equal(t, "Kissa", merged[0].Fi)
	assert.Equal(t, "noun", merged[0].Type)
	assert.Equal(t, "nominative", merged[0].Comment)
	assert.False(t, merged[0].IsPartial)

	assert.Equal(t, "juoksee", merged[1].Fi)
	assert.True(t, merged[1].IsPartial)
}

func TestMergeStampsCompleteRecords(t *testing.T) {
	w := complete("kissa", "cat", "noun", "")
	w.IsPartial = true

	merged := Merge(nil, []model.WordRecord{w})

	require.Len(t, merged, 1)
	assert.False(t, merged[0].IsPartial)
}

func TestMergeFillsGapsOnly(t *testing.T) {
	base := model.WordRecord{Fi: "kissa", En: "cat", Type: "noun", Comment: model.LoadingPlaceholder}
	extra := model.WordRecord{
		Fi:            "kissa",
		En:            "kitty",
		EnBase:        "cat",
		Type:          "verb",
		Pronunciation: "ˈkisːa",
		Comment:       "nominative",
		SentenceText:  "The cat",
	}

	got := MergeRecord(base, extra)

	assert.Equal(t, "cat", got.En, "existing value kept")
	assert.Equal(t, "noun", got.Type)
	assert.Equal(t, "cat", got.EnBase, "empty value filled")
	assert.Equal(t, "ˈkisːa", got.Pronunciation)
	assert.Equal(t, "nominative", got.Comment, "placeholder replaced")
	assert.Equal(t, "The cat", got.SentenceText)
	assert.Equal(t, "kissa", got.OriginalWord, "defaults to surface form")
}

func TestMergeUnknownTypeIsPlaceholder(t *testing.T) {
	got := MergeRecord(partial("kissa", "cat"), complete("kissa", "cat", "noun", ""))
	assert.Equal(t, "noun", got.Type)

	got = MergeRecord(complete("kissa", "cat", "noun", ""), partial("kissa", "cat"))
	assert.Equal(t, "noun", got.Type)
}

func TestMergeIdempotent(t *testing.T) {
	words := []model.WordRecord{
		complete("kissa", "cat", "noun", "nominative"),
		complete("juoksee", "runs", "verb", ""),
	}

	once := Merge(nil, words)
	twice := Merge(once, once)

	assert.Equal(t, once, twice)
	assert.Equal(t, once, Merge(words, words))
}

func TestMergePlaceholderDisplacement(t *testing.T) {
	p := partial("kissa", "cat")
	c := complete("kissa", "cat", "noun", "nominative")

	orders := map[string][]model.WordRecord{
		"partial then complete": Fold([]model.WordRecord{p}, []model.WordRecord{c}),
		"complete then partial": Fold([]model.WordRecord{c}, []model.WordRecord{p}),
		"merge":                 Merge([]model.WordRecord{p}, []model.WordRecord{c}),
	}
	for name, merged := range orders {
		t.Run(name, func(t *testing.T) {
			require.Len(t, merged, 1)
			assert.Equal(t, "nominative", merged[0].Comment)
			assert.Equal(t, "noun", merged[0].Type)
			assert.False(t, merged[0].IsPartial)
		})
	}
}

func TestMergeCompletenessIsSticky(t *testing.T) {
	words := []model.WordRecord{complete("kissa", "cat", "noun", "nominative")}

	for i := 0; i < 3; i++ {
		words = Fold(words, []model.WordRecord{partial("KISSA ", "kitten")})
	}

	require.Len(t, words, 1)
	assert.False(t, words[0].IsPartial)
	assert.Equal(t, "cat", words[0].En)
	assert.Equal(t, "nominative", words[0].Comment)
}

func TestFoldKeepsFirstSeenOrder(t *testing.T) {
	prev := []model.WordRecord{partial("kissa", "cat"), partial("juoksee", "runs")}
	next := []model.WordRecord{
		complete("juoksee", "runs", "verb", ""),
		complete("kissa", "cat", "noun", ""),
		complete("kotiin", "home", "adverb", ""),
	}

	folded := Fold(prev, next)

	require.Len(t, folded, 3)
	assert.Equal(t, []string{"kissa", "juoksee", "kotiin"}, []string{folded[0].Fi, folded[1].Fi, folded[2].Fi})
	for _, w := range folded {
		assert.False(t, w.IsPartial)
	}
}

func TestMergeSkipsEmptySurfaceForm(t *testing.T) {
	merged := Merge([]model.WordRecord{partial("  ", "blank")}, nil)
	assert.Empty(t, merged)
	assert.NotNil(t, merged)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "kissa", Key(model.WordRecord{Fi: " Kissa "}))
}
