package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/padwhen/language-learning-app/internal/config"
	"github.com/padwhen/language-learning-app/internal/core/interpret"
	"github.com/padwhen/language-learning-app/internal/core/model"
	"github.com/padwhen/language-learning-app/internal/core/review"
	"github.com/padwhen/language-learning-app/internal/core/validation"
	"github.com/padwhen/language-learning-app/internal/driver"
	"github.com/padwhen/language-learning-app/internal/llm"
)

// Request is one piece of text to translate.
type Request struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"required"`
}

// HistorySaver persists finished translations.
type HistorySaver interface {
	SaveTranslation(ctx context.Context, rec driver.TranslationRecord) (string, error)
}

// Translator runs the two-pass translation: a first pass that produces the
// sentence and words, then an optional review pass that may replace it.
type Translator struct {
	LLM         llm.LLMClient
	Prompt      string
	Validator   *validation.Validator
	Interpreter interpret.Interpreter
	Reviewer    *review.Reviewer
	History     HistorySaver
	Logger      *slog.Logger
}

func NewTranslator(llmClient llm.LLMClient, cfg *config.Config, history HistorySaver, logger *slog.Logger) *Translator {
	interpreter := interpret.Interpreter{MaxBytes: cfg.Interpreter.MaxResponseBytes}

	t := &Translator{
		LLM:    llmClient,
		Prompt: cfg.Prompts.Translate,
		Validator: validation.NewValidator(validation.Options{
			MinLength: cfg.Validation.MinLength,
			MaxLength: cfg.Validation.MaxLength,
			Strict:    cfg.Validation.StrictLanguage,
		}),
		Interpreter: interpreter,
		History:     history,
		Logger:      logger,
	}
	if cfg.Interpreter.ReviewEnabled {
		t.Reviewer = review.NewReviewer(llmClient, cfg.Prompts.Review, interpreter)
	}
	return t
}

// Validate checks req without calling the model.
func (t *Translator) Validate(req Request) (validation.Language, error) {
	return t.Validator.Validate(req.Text, req.Language)
}

// Translate validates req, runs both passes and returns the final result.
// Only validation and first-pass failures are returned as errors.
func (t *Translator) Translate(ctx context.Context, req Request) (model.TranslationResult, error) {
	lang, err := t.Validate(req)
	if err != nil {
		return model.TranslationResult{}, err
	}
	log := t.requestLogger(lang)

	response, err := t.LLM.Generate(ctx, t.prompt(lang, req.Text))
	if err != nil {
		log.Error("first pass failed", "error", err)
		return model.TranslationResult{}, fmt.Errorf("first pass: %w", err)
	}

	first := t.Interpreter.Interpret(response)
	first.IsComplete = true
	log.Debug("first pass interpreted", "words", len(first.Words), "has_sentence", first.Sentence != nil)

	final := t.review(ctx, log, req.Text, lang, first)
	t.save(ctx, log, lang, req.Text, final)
	return final, nil
}

// TranslateStream is Translate with progress: emit receives every
// intermediate result while the first pass streams in, then the final
// result. Clients that cannot stream produce a single intermediate result.
func (t *Translator) TranslateStream(ctx context.Context, req Request, emit func(model.TranslationResult)) (model.TranslationResult, error) {
	lang, err := t.Validate(req)
	if err != nil {
		return model.TranslationResult{}, err
	}
	log := t.requestLogger(lang)
	prompt := t.prompt(lang, req.Text)

	acc := newAccumulator(t.Interpreter, emit)
	if sc, ok := t.LLM.(llm.StreamClient); ok {
		_, err = sc.GenerateStream(ctx, prompt, acc.add)
	} else {
		var response string
		if response, err = t.LLM.Generate(ctx, prompt); err == nil {
			acc.add(response)
		}
	}
	if err != nil {
		log.Error("first pass failed", "error", err, "received_bytes", len(acc.result.OriginalText)+len(acc.pending))
		return model.TranslationResult{}, fmt.Errorf("first pass: %w", err)
	}

	first := acc.finish()
	log.Debug("first pass streamed", "words", len(first.Words), "has_sentence", first.Sentence != nil)

	final := t.review(ctx, log, req.Text, lang, first)
	emit(final)
	t.save(ctx, log, lang, req.Text, final)
	return final, nil
}

// review returns the review pass result when it has content, and first
// otherwise. Review failures are logged, never returned.
func (t *Translator) review(ctx context.Context, log *slog.Logger, text string, lang validation.Language, first model.TranslationResult) model.TranslationResult {
	if t.Reviewer == nil {
		return first
	}
	if !first.HasContent() {
		log.Debug("review pass skipped", "reason", "first pass has no content")
		return first
	}

	reviewed, err := t.Reviewer.Review(ctx, review.Input{Text: text, Language: lang.Name, FirstPass: first})
	if err != nil {
		log.Warn("review pass failed, keeping first pass", "error", err)
		return first
	}
	if !reviewed.HasContent() {
		log.Warn("review pass returned no content, keeping first pass")
		return first
	}

	if reviewed.Confidence == nil {
		reviewed.Confidence = first.Confidence
	}
	reviewed.IsComplete = true
	reviewed.CurrentWordIndex = -1
	return reviewed
}

func (t *Translator) save(ctx context.Context, log *slog.Logger, lang validation.Language, text string, result model.TranslationResult) {
	if t.History == nil || !result.HasContent() {
		return
	}
	id, err := t.History.SaveTranslation(ctx, driver.TranslationRecord{Language: lang.Code, Input: text, Result: result})
	if err != nil {
		log.Warn("failed to save translation history", "error", err)
		return
	}
	log.Debug("translation saved", "translation_uuid", id)
}

func (t *Translator) prompt(lang validation.Language, text string) string {
	return fmt.Sprintf(t.Prompt, lang.Name, strings.TrimSpace(text))
}

func (t *Translator) requestLogger(lang validation.Language) *slog.Logger {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("request_id", uuid.New().String(), "language", lang.Code)
}

// interpretStride bounds how often the accumulator re-interprets: the
// buffered text must be at least 1/interpretStride of the text already
// interpreted, so the total work stays within a constant factor of one
// interpretation of the whole response.
const interpretStride = 8

// accumulator folds streamed deltas into a running result. Deltas are
// buffered until one closes a string or an object, since nothing the
// interpreter recovers can change before that.
type accumulator struct {
	interpreter interpret.Interpreter
	emit        func(model.TranslationResult)
	result      model.TranslationResult
	pending     string
	boundary    bool
}

func newAccumulator(interpreter interpret.Interpreter, emit func(model.TranslationResult)) *accumulator {
	return &accumulator{
		interpreter: interpreter,
		emit:        emit,
		result:      model.NewResult(""),
	}
}

func (a *accumulator) add(delta string) {
	a.pending += delta
	if strings.ContainsAny(delta, `"}`) {
		a.boundary = true
	}
	if !a.boundary || len(a.pending) < len(a.result.OriginalText)/interpretStride {
		return
	}
	next := a.interpreter.ApplyChunk(a.result, model.RawChunk{Text: a.pending})
	a.pending = ""
	a.boundary = false
	if changed(a.result, next) {
		a.emit(next)
	}
	a.result = next
}

func (a *accumulator) finish() model.TranslationResult {
	a.result = a.interpreter.ApplyChunk(a.result, model.RawChunk{Text: a.pending, Final: true})
	a.pending = ""
	a.boundary = false
	return a.result
}

func changed(prev, next model.TranslationResult) bool {
	return !equalPtr(prev.Sentence, next.Sentence) ||
		!equalPtr(prev.Confidence, next.Confidence) ||
		!slices.Equal(prev.Words, next.Words)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
