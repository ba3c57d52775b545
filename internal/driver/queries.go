package driver

var IndexQueries = []string{
	"CREATE INDEX ON :Translation(uuid);",
	"CREATE INDEX ON :Translation(language);",
	"CREATE INDEX ON :Translation(created_at);",
	"CREATE INDEX ON :Word(key);",
	"CREATE INDEX ON :Word(language);",
}

const (
	// SaveTranslationQuery writes a translation and all of its words in one
	// statement. Meanings in context live on HAS_WORD; :Word holds only what
	// is shared by every use of the surface form.
	SaveTranslationQuery = `
		MERGE (t:Translation {uuid: $uuid})
		SET t.language = $language,
			t.input = $input,
			t.sentence = $sentence,
			t.confidence = $confidence,
			t.created_at = $created_at
		WITH t
		FOREACH (word IN $words |
			MERGE (w:Word {key: word.key, language: $language})
			SET w.en_base = word.en_base,
				w.original_word = word.original_word,
				w.pronunciation = word.pronunciation
			MERGE (t)-[r:HAS_WORD]->(w)
			SET r.position = word.position,
				r.fi = word.fi,
				r.en = word.en,
				r.type = word.type,
				r.comment = word.comment,
				r.sentence_text = word.sentence_text
		)
		RETURN t.uuid AS uuid
	`

	GetRecentTranslationsQuery = `
		MATCH (t:Translation)
		WHERE $language = '' OR t.language = $language
		OPTIONAL MATCH (t)-[r:HAS_WORD]->(w:Word)
		WITH t, r, w
		ORDER BY r.position
		WITH t, collect(CASE WHEN w IS NULL THEN NULL ELSE {
			fi: r.fi,
			en: r.en,
			en_base: w.en_base,
			type: r.type,
			original_word: w.original_word,
			pronunciation: w.pronunciation,
			comment: r.comment,
			sentence_text: r.sentence_text
		} END) AS words
		RETURN t.uuid AS uuid, t.language AS language, t.input AS input,
			t.sentence AS sentence, t.confidence AS confidence,
			t.created_at AS created_at, words
		ORDER BY created_at DESC
		LIMIT $limit
	`
)
