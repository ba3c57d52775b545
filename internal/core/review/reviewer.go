package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/padwhen/language-learning-app/internal/core/interpret"
	"github.com/padwhen/language-learning-app/internal/core/model"
	"github.com/padwhen/language-learning-app/internal/llm"
)

// ErrNoContent is returned when the first pass has nothing worth reviewing.
var ErrNoContent = errors.New("first pass has no sentence or words")

// Input is what the review pass sees: the user's text and the first pass.
type Input struct {
	Text      string
	Language  string
	FirstPass model.TranslationResult
}

// Reviewer asks the model to correct a first-pass translation and to rate it.
type Reviewer struct {
	LLM         llm.LLMClient
	Prompt      string
	Interpreter interpret.Interpreter
}

func NewReviewer(llmClient llm.LLMClient, prompt string, interpreter interpret.Interpreter) *Reviewer {
	return &Reviewer{
		LLM:         llmClient,
		Prompt:      prompt,
		Interpreter: interpreter,
	}
}

// Review returns the interpreted review response. The caller decides whether
// it is good enough to replace the first pass.
func (r *Reviewer) Review(ctx context.Context, in Input) (model.TranslationResult, error) {
	if !in.FirstPass.HasContent() {
		return model.TranslationResult{}, ErrNoContent
	}

	firstPass, err := json.Marshal(reviewView(in.FirstPass))
	if err != nil {
		return model.TranslationResult{}, fmt.Errorf("failed to encode first pass: %w", err)
	}

	prompt := fmt.Sprintf(r.Prompt, in.Language, in.Text, firstPass)

	response, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.TranslationResult{}, fmt.Errorf("failed to generate review: %w", err)
	}

	return r.Interpreter.Interpret(response), nil
}

type firstPassWord struct {
	Fi            string `json:"fi"`
	En            string `json:"en"`
	EnBase        string `json:"en_base,omitempty"`
	Type          string `json:"type"`
	OriginalWord  string `json:"original_word"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

type firstPassView struct {
	Sentence string          `json:"sentence"`
	Words    []firstPassWord `json:"words"`
}

// reviewView drops bookkeeping fields, partial words and placeholders the
// model should not echo back.
func reviewView(r model.TranslationResult) firstPassView {
	view := firstPassView{Words: make([]firstPassWord, 0, len(r.Words))}
	if r.Sentence != nil {
		view.Sentence = *r.Sentence
	}
	for _, w := range r.Words {
		if w.IsPartial {
			continue
		}
		comment := w.Comment
		if comment == model.LoadingPlaceholder {
			comment = ""
		}
		typ := w.Type
		if typ == model.UnknownType {
			typ = ""
		}
		view.Words = append(view.Words, firstPassWord{
			Fi:            w.Fi,
			En:            w.En,
			EnBase:        w.EnBase,
			Type:          typ,
			OriginalWord:  w.OriginalWord,
			Pronunciation: w.Pronunciation,
			Comment:       comment,
		})
	}
	return view
}
