package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/padwhen/language-learning-app/internal/core/common"
	"github.com/padwhen/language-learning-app/internal/core/model"
)

// DefaultHistoryLimit caps RecentTranslations when the caller gives no limit.
const DefaultHistoryLimit = 20

// TranslationRecord is one finished translation to persist.
type TranslationRecord struct {
	Language string
	Input    string
	Result   model.TranslationResult
}

// TranslationEntry is a stored translation read back from the graph.
type TranslationEntry struct {
	UUID       string             `json:"uuid"`
	Language   string             `json:"language"`
	Input      string             `json:"input"`
	Sentence   string             `json:"sentence"`
	Confidence *int               `json:"confidence,omitempty"`
	CreatedAt  string             `json:"created_at"`
	Words      []model.WordRecord `json:"words"`
}

// HistoryStore keeps finished translations and the vocabulary they taught as
// a graph: (:Translation)-[:HAS_WORD]->(:Word). Words are shared across
// translations by normalized surface form and language; the surface form,
// meaning and type seen in each translation are kept on HAS_WORD.
type HistoryStore struct {
	Driver GraphDriver
	now    func() time.Time
}

func NewHistoryStore(driver GraphDriver) *HistoryStore {
	return &HistoryStore{Driver: driver, now: time.Now}
}

func (h *HistoryStore) BuildIndices(ctx context.Context) error {
	return h.Driver.BuildIndices(ctx)
}

// SaveTranslation stores rec and its words in a single query and returns the
// new translation's uuid. Partial words are not stored.
func (h *HistoryStore) SaveTranslation(ctx context.Context, rec TranslationRecord) (string, error) {
	id := uuid.New().String()

	var sentence string
	if rec.Result.Sentence != nil {
		sentence = *rec.Result.Sentence
	}
	var confidence interface{}
	if rec.Result.Confidence != nil {
		confidence = int64(*rec.Result.Confidence)
	}

	words := make([]interface{}, 0, len(rec.Result.Words))
	for i, w := range rec.Result.Words {
		if w.IsPartial {
			continue
		}
		comment := w.Comment
		if comment == model.LoadingPlaceholder {
			comment = ""
		}
		words = append(words, map[string]interface{}{
			"key":           common.NormalizeText(w.Fi),
			"fi":            w.Fi,
			"en":            w.En,
			"en_base":       w.EnBase,
			"type":          w.Type,
			"original_word": w.OriginalWord,
			"pronunciation": w.Pronunciation,
			"position":      int64(i),
			"comment":       comment,
			"sentence_text": w.SentenceText,
		})
	}

	params := map[string]interface{}{
		"uuid":       id,
		"language":   rec.Language,
		"input":      rec.Input,
		"sentence":   sentence,
		"confidence": confidence,
		"created_at": h.now().UTC().Format(time.RFC3339),
		"words":      words,
	}
	if _, err := h.Driver.ExecuteQuery(ctx, SaveTranslationQuery, params); err != nil {
		return "", fmt.Errorf("failed to save translation: %w", err)
	}

	return id, nil
}

// RecentTranslations lists stored translations, newest first. An empty
// language lists every language.
func (h *HistoryStore) RecentTranslations(ctx context.Context, language string, limit int) ([]TranslationEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	res, err := h.Driver.ExecuteQuery(ctx, GetRecentTranslationsQuery, map[string]interface{}{
		"language": language,
		"limit":    int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}

	entries := make([]TranslationEntry, 0, len(res.Records))
	for _, record := range res.Records {
		entries = append(entries, entryFromRecord(record))
	}
	return entries, nil
}

func entryFromRecord(record *neo4j.Record) TranslationEntry {
	entry := TranslationEntry{
		UUID:      stringValue(record, "uuid"),
		Language:  stringValue(record, "language"),
		Input:     stringValue(record, "input"),
		Sentence:  stringValue(record, "sentence"),
		CreatedAt: stringValue(record, "created_at"),
		Words:     []model.WordRecord{},
	}

	if v, ok := record.Get("confidence"); ok {
		if n, ok := v.(int64); ok {
			c := int(n)
			entry.Confidence = &c
		}
	}

	if v, ok := record.Get("words"); ok {
		items, _ := v.([]interface{})
		for _, item := range items {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			entry.Words = append(entry.Words, model.WordRecord{
				Fi:            mapString(m, "fi"),
				En:            mapString(m, "en"),
				EnBase:        mapString(m, "en_base"),
				Type:          mapString(m, "type"),
				OriginalWord:  mapString(m, "original_word"),
				Pronunciation: mapString(m, "pronunciation"),
				Comment:       mapString(m, "comment"),
				SentenceText:  mapString(m, "sentence_text"),
			})
		}
	}

	return entry
}

func stringValue(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func mapString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}
