package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoTrendError(t *testing.T) {
	err := NewNoTrendError(12)
	assert.Equal(t, "no trend found", err.Error())
	assert.True(t, IsNoTrendError(err))
	assert.True(t, IsNoTrendError(fmt.Errorf("pipeline: %w", err)))
	assert.False(t, IsNoTrendError(errors.New("no trend found")))
}

func TestSuggestionUnavailableError(t *testing.T) {
	transport := NewSuggestionUnavailableError(errors.New("connection refused"))
	assert.Contains(t, transport.Error(), "connection refused")
	assert.True(t, IsSuggestionUnavailable(transport))

	status := NewSuggestionStatusError(503)
	assert.Contains(t, status.Error(), "503")
	assert.True(t, IsSuggestionUnavailable(fmt.Errorf("suggest: %w", status)))
	assert.False(t, IsSuggestionUnavailable(errors.New("boom")))
}

func TestImageLookupError(t *testing.T) {
	cause := errors.New("timeout")
	err := NewImageLookupError("Nike Footwear product packaging", cause)
	assert.Contains(t, err.Error(), "Nike Footwear")
	assert.True(t, IsImageLookupError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsImageLookupError(cause))
}
