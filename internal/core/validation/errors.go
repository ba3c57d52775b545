package validation

import "errors"

// Reason classifies why input text was rejected.
type Reason string

const (
	ReasonTooShort            Reason = "too_short"
	ReasonTooLong             Reason = "too_long"
	ReasonUnsupportedLanguage Reason = "unsupported_language"
	ReasonLanguageMismatch    Reason = "language_mismatch"
)

// ValidationError rejects user input before any model call. Its message is
// meant to be shown to the user as is.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError unwraps err into a *ValidationError if it holds one.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
