package errors

import (
	"errors"
	"fmt"
)

// ImageLookupError records a failed image search for a single product.
// Callers recover from it locally; one missing image never fails a batch.
type ImageLookupError struct {
	Query string
	Err   error
}

func (e *ImageLookupError) Error() string {
	return fmt.Sprintf("image lookup failed for %q: %v", e.Query, e.Err)
}

func (e *ImageLookupError) Unwrap() error {
	return e.Err
}

// NewImageLookupError wraps an upstream image search failure.
func NewImageLookupError(query string, err error) *ImageLookupError {
	return &ImageLookupError{Query: query, Err: err}
}

// IsImageLookupError reports whether err is an ImageLookupError (even when wrapped).
func IsImageLookupError(err error) bool {
	var lookupErr *ImageLookupError
	return errors.As(err, &lookupErr)
}
