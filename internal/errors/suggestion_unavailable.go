package errors

import (
	"errors"
	"fmt"
)

// SuggestionUnavailableError indicates the suggestion service could not be
// reached or answered with an error status. It is fatal to the request that
// triggered it; there is nothing to enrich without suggestions.
type SuggestionUnavailableError struct {
	StatusCode int
	Err        error
}

func (e *SuggestionUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("suggestion service unavailable: status %d", e.StatusCode)
	}
	return fmt.Sprintf("suggestion service unavailable: %v", e.Err)
}

func (e *SuggestionUnavailableError) Unwrap() error {
	return e.Err
}

// NewSuggestionUnavailableError wraps a transport error from the suggestion service.
func NewSuggestionUnavailableError(err error) *SuggestionUnavailableError {
	return &SuggestionUnavailableError{Err: err}
}

// NewSuggestionStatusError records an error status returned by the suggestion service.
func NewSuggestionStatusError(status int) *SuggestionUnavailableError {
	return &SuggestionUnavailableError{StatusCode: status}
}

// IsSuggestionUnavailable reports whether err is a SuggestionUnavailableError (even when wrapped).
func IsSuggestionUnavailable(err error) bool {
	var unavailable *SuggestionUnavailableError
	return errors.As(err, &unavailable)
}
