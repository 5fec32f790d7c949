// Package enrich composes trend extraction, category suggestions and image
// resolution into the trend-to-catalog enrichment pipeline.
package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/storegenius/storegenius/internal/errors"
	"github.com/storegenius/storegenius/internal/suggest"
	"github.com/storegenius/storegenius/internal/trends"
)

const (
	defaultProductsPerCategory = 3
	defaultImageConcurrency    = 8

	// Substituted by the flat search path when no image was found, matching
	// the dashboard's expectation of an always-renderable image URL.
	noImagePlaceholder = "https://dummyimage.com/300x300/eee/555.png&text=No+Image"
)

// TrendSource supplies raw trending-item titles.
type TrendSource interface {
	TrendingTitles(ctx context.Context) ([]string, error)
}

// Suggester is the category-suggestion service surface the pipeline needs.
type Suggester interface {
	Suggest(ctx context.Context, trends []string) (*suggest.Suggestion, error)
	Search(ctx context.Context, prompt string) ([]suggest.Product, error)
}

// ImageLookup resolves one representative image per product. An error means
// the lookup itself failed; an empty string means it found no candidates.
type ImageLookup interface {
	Resolve(ctx context.Context, productName, categoryHint string) (string, error)
}

// Service runs the enrichment pipeline.
type Service struct {
	source      TrendSource
	strategy    trends.Strategy
	suggester   Suggester
	images      ImageLookup
	perCategory int
	concurrency int
}

// NewService wires the pipeline stages together.
func NewService(source TrendSource, strategy trends.Strategy, suggester Suggester, images ImageLookup, opts ...ServiceOption) *Service {
	s := &Service{
		source:      source,
		strategy:    strategy,
		suggester:   suggester,
		images:      images,
		perCategory: defaultProductsPerCategory,
		concurrency: defaultImageConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServiceOption is a functional option for configuring the Service.
type ServiceOption func(*Service)

// WithProductsPerCategory caps how many suggested products are enriched per
// category.
func WithProductsPerCategory(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.perCategory = n
		}
	}
}

// WithImageConcurrency bounds how many image lookups run at once.
func WithImageConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Enrich runs the full pipeline: trending titles, trend extraction, one
// suggestion call, then a concurrent image fan-out. Output preserves the
// suggestion service's category order and, within each category, its product
// order, regardless of image lookup completion timing.
func (s *Service) Enrich(ctx context.Context) ([]EnrichedCategory, error) {
	titles, err := s.source.TrendingTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending titles: %w", err)
	}

	tokens := s.strategy.Extract(titles)
	if len(tokens) == 0 {
		return nil, apperrors.NewNoTrendError(len(titles))
	}
	slog.Info("Extracted trend tokens", "tokens", tokens, "titles", len(titles))

	return s.EnrichTrend(ctx, tokens)
}

// EnrichTrend enriches an already-extracted trend token set. The suggestion
// service is called exactly once for the whole set; a failure there aborts
// the request with no partial data. Individual image failures degrade to a
// null image and never abort sibling lookups.
func (s *Service) EnrichTrend(ctx context.Context, tokens []string) ([]EnrichedCategory, error) {
	suggestion, err := s.suggester.Suggest(ctx, tokens)
	if err != nil {
		return nil, err
	}

	categories := make([]EnrichedCategory, len(suggestion.Keywords))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for ci, keyword := range suggestion.Keywords {
		products := suggestion.Results[keyword]
		if len(products) > s.perCategory {
			products = products[:s.perCategory]
		}

		categories[ci] = EnrichedCategory{
			Category: keyword,
			Products: make([]EnrichedProduct, len(products)),
		}

		for pi, product := range products {
			categories[ci].Products[pi].Name = product.ProductName

			ci, pi, keyword, name := ci, pi, keyword, product.ProductName
			g.Go(func() error {
				thumbnail, err := s.images.Resolve(gctx, name, keyword)
				if err != nil {
					slog.Warn("Image lookup failed", "product", name, "category", keyword, "error", err)
					return nil
				}
				if thumbnail != "" {
					categories[ci].Products[pi].Image = &thumbnail
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return categories, nil
}

// EnrichFlat bypasses trend extraction: it searches the catalog with a free
// text prompt and attaches an image to each returned record, substituting a
// placeholder when none was found.
func (s *Service) EnrichFlat(ctx context.Context, prompt string) ([]FlatProduct, error) {
	items, err := s.suggester.Search(ctx, prompt)
	if err != nil {
		return nil, err
	}

	enriched := make([]FlatProduct, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, item := range items {
		enriched[i].Product = item

		i, name := i, item.ProductName
		g.Go(func() error {
			thumbnail, err := s.images.Resolve(gctx, name, "")
			if err != nil {
				slog.Warn("Image lookup failed", "product", name, "error", err)
			}
			if thumbnail == "" {
				thumbnail = noImagePlaceholder
			}
			enriched[i].Image = thumbnail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}
