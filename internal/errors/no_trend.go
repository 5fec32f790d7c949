// Package errors defines typed errors shared across the enrichment pipeline.
package errors

import "errors"

// NoTrendError indicates that trend extraction produced no usable token,
// so there is nothing to ask the suggestion service about.
type NoTrendError struct {
	Titles int
}

func (e *NoTrendError) Error() string {
	return "no trend found"
}

// NewNoTrendError creates a NoTrendError noting how many titles were scanned.
func NewNoTrendError(titles int) *NoTrendError {
	return &NoTrendError{Titles: titles}
}

// IsNoTrendError reports whether err is a NoTrendError (even when wrapped).
func IsNoTrendError(err error) bool {
	var noTrend *NoTrendError
	return errors.As(err, &noTrend)
}
