package serpapi

import (
	"context"
	"fmt"
	"net/url"
)

// TrendingShopping fetches the current trending shopping results using the
// configured query template.
func (c *Client) TrendingShopping(ctx context.Context) ([]ShoppingResult, error) {
	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", c.trendingQuery)
	params.Set("google_domain", c.googleDomain)
	params.Set("gl", c.country)
	params.Set("hl", c.language)
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var response struct {
		ShoppingResults []ShoppingResult `json:"shopping_results"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return response.ShoppingResults, nil
}

// TrendingTitles fetches trending shopping results and returns their titles
// in API order. A response with no results yields an empty slice, not an error.
func (c *Client) TrendingTitles(ctx context.Context) ([]string, error) {
	results, err := c.TrendingShopping(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(results))
	for _, item := range results {
		titles = append(titles, item.Title)
	}
	return titles, nil
}
