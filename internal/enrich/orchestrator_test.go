package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/storegenius/storegenius/internal/errors"
	"github.com/storegenius/storegenius/internal/suggest"
	"github.com/storegenius/storegenius/internal/trends"
)

type stubSource struct {
	titles []string
	err    error
}

func (s *stubSource) TrendingTitles(context.Context) ([]string, error) {
	return s.titles, s.err
}

type stubSuggester struct {
	suggestion *suggest.Suggestion
	suggestErr error
	products   []suggest.Product
	searchErr  error
	gotTrends  [][]string
}

func (s *stubSuggester) Suggest(_ context.Context, trends []string) (*suggest.Suggestion, error) {
	s.gotTrends = append(s.gotTrends, trends)
	return s.suggestion, s.suggestErr
}

func (s *stubSuggester) Search(context.Context, string) ([]suggest.Product, error) {
	return s.products, s.searchErr
}

// latencyResolver resolves images with per-product latency so completion
// order can be forced to differ from input order.
type latencyResolver struct {
	mu      sync.Mutex
	latency map[string]time.Duration
	fail    map[string]bool
	empty   map[string]bool
	calls   []string
}

func (r *latencyResolver) Resolve(ctx context.Context, name, hint string) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()

	if d, ok := r.latency[name]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if r.fail[name] {
		return "", apperrors.NewImageLookupError(name, errors.New("upstream down"))
	}
	if r.empty[name] {
		return "", nil
	}
	return "https://thumbs.example/" + name + ".jpg", nil
}

func products(names ...string) []suggest.Product {
	out := make([]suggest.Product, len(names))
	for i, name := range names {
		out[i] = suggest.Product{ProductName: name}
	}
	return out
}

func TestEnrich_PreservesOrderUnderReversedLatency(t *testing.T) {
	suggester := &stubSuggester{suggestion: &suggest.Suggestion{
		Keywords: []string{"Footwear", "Audio", "Home"},
		Results: map[string][]suggest.Product{
			"Footwear": products("Running Shoes", "Sandals"),
			"Audio":    products("Earbuds"),
			"Home":     products("Desk Lamp"),
		},
	}}
	// earlier products finish later
	resolver := &latencyResolver{latency: map[string]time.Duration{
		"Running Shoes": 80 * time.Millisecond,
		"Sandals":       60 * time.Millisecond,
		"Earbuds":       40 * time.Millisecond,
		"Desk Lamp":     time.Millisecond,
	}}

	svc := NewService(&stubSource{titles: []string{"Nike Air Max"}}, trends.PrefixStrategy{}, suggester, resolver)

	categories, err := svc.Enrich(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 3)
	assert.Equal(t, "Footwear", categories[0].Category)
	assert.Equal(t, "Audio", categories[1].Category)
	assert.Equal(t, "Home", categories[2].Category)

	require.Len(t, categories[0].Products, 2)
	assert.Equal(t, "Running Shoes", categories[0].Products[0].Name)
	assert.Equal(t, "Sandals", categories[0].Products[1].Name)
	require.NotNil(t, categories[0].Products[0].Image)
	assert.Equal(t, "https://thumbs.example/Running Shoes.jpg", *categories[0].Products[0].Image)
}

func TestEnrich_CapsProductsPerCategory(t *testing.T) {
	suggester := &stubSuggester{suggestion: &suggest.Suggestion{
		Keywords: []string{"Footwear"},
		Results: map[string][]suggest.Product{
			"Footwear": products("Running Shoes", "Sandals", "Boots", "Slippers"),
		},
	}}
	resolver := &latencyResolver{}

	svc := NewService(&stubSource{titles: []string{"Nike Air Max"}}, trends.PrefixStrategy{}, suggester, resolver)

	categories, err := svc.Enrich(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 1)
	require.Len(t, categories[0].Products, 3)
	assert.Equal(t, "Running Shoes", categories[0].Products[0].Name)
	assert.Equal(t, "Boots", categories[0].Products[2].Name)
	for _, product := range categories[0].Products {
		assert.NotNil(t, product.Image)
	}
	assert.NotContains(t, resolver.calls, "Slippers")
}

func TestEnrich_ImageFailureIsolatedPerProduct(t *testing.T) {
	suggester := &stubSuggester{suggestion: &suggest.Suggestion{
		Keywords: []string{"Footwear"},
		Results: map[string][]suggest.Product{
			"Footwear": products("Running Shoes", "Sandals", "Boots"),
		},
	}}
	resolver := &latencyResolver{
		fail:  map[string]bool{"Sandals": true},
		empty: map[string]bool{"Boots": true},
	}

	svc := NewService(&stubSource{titles: []string{"Nike Air Max"}}, trends.PrefixStrategy{}, suggester, resolver)

	categories, err := svc.Enrich(context.Background())
	require.NoError(t, err)

	require.Len(t, categories[0].Products, 3)
	assert.NotNil(t, categories[0].Products[0].Image)
	assert.Nil(t, categories[0].Products[1].Image, "errored lookup degrades to null")
	assert.Nil(t, categories[0].Products[2].Image, "no candidates degrades to null")
}

func TestEnrich_SuggestFailureProducesNoPartialData(t *testing.T) {
	suggester := &stubSuggester{suggestErr: apperrors.NewSuggestionStatusError(502)}
	resolver := &latencyResolver{}

	svc := NewService(&stubSource{titles: []string{"Nike Air Max"}}, trends.PrefixStrategy{}, suggester, resolver)

	categories, err := svc.Enrich(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsSuggestionUnavailable(err))
	assert.Nil(t, categories)
	assert.Empty(t, resolver.calls)
}

func TestEnrich_ZeroKeywordsIsEmptyNotError(t *testing.T) {
	suggester := &stubSuggester{suggestion: &suggest.Suggestion{}}

	svc := NewService(&stubSource{titles: []string{"Nike Air Max"}}, trends.PrefixStrategy{}, suggester, &latencyResolver{})

	categories, err := svc.Enrich(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestEnrich_NoTrendShortCircuits(t *testing.T) {
	suggester := &stubSuggester{}
	strategy := trends.AllowlistStrategy{Brands: []string{"Nike"}}

	svc := NewService(&stubSource{titles: []string{"Generic widget"}}, strategy, suggester, &latencyResolver{})

	_, err := svc.Enrich(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNoTrendError(err))
	assert.Empty(t, suggester.gotTrends, "suggestion service must not be called")
}

func TestEnrich_SingleBrandModePicksFrequentBrand(t *testing.T) {
	suggester := &stubSuggester{suggestion: &suggest.Suggestion{}}
	strategy := trends.AllowlistStrategy{Brands: []string{"Nike", "Adidas"}}
	source := &stubSource{titles: []string{
		"Nike Air Max Shoes",
		"Nike Running Socks",
		"Adidas Ultraboost",
	}}

	svc := NewService(source, strategy, suggester, &latencyResolver{})

	_, err := svc.Enrich(context.Background())
	require.NoError(t, err)
	require.Len(t, suggester.gotTrends, 1)
	assert.Equal(t, []string{"Nike"}, suggester.gotTrends[0])
}

func TestEnrich_TrendSourceFailureIsFatal(t *testing.T) {
	svc := NewService(&stubSource{err: errors.New("serpapi down")}, trends.PrefixStrategy{}, &stubSuggester{}, &latencyResolver{})

	_, err := svc.Enrich(context.Background())
	require.Error(t, err)
	assert.False(t, apperrors.IsNoTrendError(err))
}

func TestEnrichFlat_AttachesImagesAndPlaceholder(t *testing.T) {
	items := []suggest.Product{
		{ProductName: "Desk Lamp", Extra: map[string]json.RawMessage{"final_price": json.RawMessage(`19.5`)}},
		{ProductName: "Broken Widget"},
	}
	suggester := &stubSuggester{products: items}
	resolver := &latencyResolver{fail: map[string]bool{"Broken Widget": true}}

	svc := NewService(&stubSource{}, trends.PrefixStrategy{}, suggester, resolver)

	enriched, err := svc.EnrichFlat(context.Background(), "lamps under 500")
	require.NoError(t, err)
	require.Len(t, enriched, 2)
	assert.Equal(t, "https://thumbs.example/Desk Lamp.jpg", enriched[0].Image)
	assert.Equal(t, noImagePlaceholder, enriched[1].Image)

	data, err := json.Marshal(enriched[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"product_name":"Desk Lamp"`)
	assert.Contains(t, string(data), `"final_price":19.5`)
	assert.Contains(t, string(data), `"image":"https://thumbs.example/Desk Lamp.jpg"`)
}

func TestEnrichFlat_SearchFailureIsFatal(t *testing.T) {
	suggester := &stubSuggester{searchErr: apperrors.NewSuggestionUnavailableError(fmt.Errorf("refused"))}

	svc := NewService(&stubSource{}, trends.PrefixStrategy{}, suggester, &latencyResolver{})

	_, err := svc.EnrichFlat(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, apperrors.IsSuggestionUnavailable(err))
}
