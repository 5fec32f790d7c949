// Package images resolves a representative image URL for a product name.
package images

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/storegenius/storegenius/internal/errors"
	"github.com/storegenius/storegenius/internal/serpapi"
)

const defaultLookupTimeout = 10 * time.Second

// Searcher runs a free-text image search and returns candidates in API order.
type Searcher interface {
	SearchImages(ctx context.Context, query string) ([]serpapi.ImageResult, error)
}

// Resolver selects one representative thumbnail per product. It is
// best-effort by contract: a failed lookup degrades to "no image" and must
// never fail the batch it belongs to.
type Resolver struct {
	searcher Searcher
	timeout  time.Duration
}

// NewResolver creates a Resolver backed by the given image searcher.
func NewResolver(searcher Searcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		searcher: searcher,
		timeout:  defaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithTimeout bounds each lookup; an expired lookup resolves to no image.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// Resolve looks up one image for the product, biased toward packaging shots
// via a fixed query qualifier. It returns the chosen thumbnail URL, an empty
// string when the search succeeded but produced no candidates, or an
// ImageLookupError when the search itself failed. Exactly one upstream call
// is made; there is no caching and no retry.
func (r *Resolver) Resolve(ctx context.Context, productName, categoryHint string) (string, error) {
	query := buildQuery(productName, categoryHint)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	candidates, err := r.searcher.SearchImages(ctx, query)
	if err != nil {
		return "", apperrors.NewImageLookupError(query, err)
	}

	return pickThumbnail(productName, candidates), nil
}

// BestEffort collapses Resolve's error to "no image". Failures are logged and
// never propagated; this is the public contract of image resolution.
func (r *Resolver) BestEffort(ctx context.Context, productName, categoryHint string) string {
	thumbnail, err := r.Resolve(ctx, productName, categoryHint)
	if err != nil {
		slog.Warn("Image lookup failed", "product", productName, "error", err)
		return ""
	}
	return thumbnail
}

func buildQuery(productName, categoryHint string) string {
	parts := make([]string, 0, 3)
	if productName != "" {
		parts = append(parts, productName)
	}
	if categoryHint != "" {
		parts = append(parts, categoryHint)
	}
	parts = append(parts, "product packaging")
	return strings.Join(parts, " ")
}

// pickThumbnail prefers the first candidate whose link, canonical URL or
// title mentions the product name; otherwise it falls back to the first
// candidate, and to nothing when there are no candidates at all.
func pickThumbnail(productName string, candidates []serpapi.ImageResult) string {
	if len(candidates) == 0 {
		return ""
	}

	needle := strings.ToLower(productName)
	for _, candidate := range candidates {
		if strings.Contains(candidate.Link, needle) ||
			strings.Contains(candidate.Original, needle) ||
			strings.Contains(strings.ToLower(candidate.Title), needle) {
			return candidate.Thumbnail
		}
	}

	return candidates[0].Thumbnail
}
