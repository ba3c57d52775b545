package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// Options tunes the input gate.
type Options struct {
	MinLength int
	MaxLength int
	// Strict adds a statistical language check for languages written in
	// Latin script, where the script alone cannot tell them apart.
	Strict bool
}

// DefaultOptions returns the gate used when nothing is configured.
func DefaultOptions() Options {
	return Options{MinLength: 3, MaxLength: 1000}
}

type Validator struct {
	opts Options
}

func NewValidator(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Validate checks text against the expected language and returns that
// language. Any rejection is a *ValidationError.
func (v *Validator) Validate(text, language string) (Language, error) {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)

	if n < v.opts.MinLength {
		return Language{}, &ValidationError{
			Reason:  ReasonTooShort,
			Message: fmt.Sprintf("Text is too short to translate. Please enter at least %d characters.", v.opts.MinLength),
		}
	}
	if v.opts.MaxLength > 0 && n > v.opts.MaxLength {
		return Language{}, &ValidationError{
			Reason:  ReasonTooLong,
			Message: fmt.Sprintf("Text is too long to translate. Please keep it under %d characters.", v.opts.MaxLength),
		}
	}

	lang, ok := Lookup(language)
	if !ok {
		return Language{}, &ValidationError{
			Reason:  ReasonUnsupportedLanguage,
			Message: fmt.Sprintf("Unsupported language %q. Choose one of: %s.", language, supportedNames()),
		}
	}

	if script := whatlanggo.DetectScript(trimmed); script != lang.script {
		return Language{}, mismatch(lang)
	}

	if v.opts.Strict && lang.script == unicode.Latin {
		info := whatlanggo.Detect(trimmed)
		if info.IsReliable() && info.Lang != lang.lang {
			return Language{}, mismatch(lang)
		}
	}

	return lang, nil
}

func mismatch(lang Language) *ValidationError {
	return &ValidationError{
		Reason:  ReasonLanguageMismatch,
		Message: fmt.Sprintf("The text does not look like %s. Please check the selected language.", lang.Name),
	}
}
