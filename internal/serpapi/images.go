package serpapi

import (
	"context"
	"fmt"
	"net/url"
)

// SearchImages runs an image search for the given free-text query and returns
// the candidates in API order. An empty result set is not an error.
func (c *Client) SearchImages(ctx context.Context, query string) ([]ImageResult, error) {
	params := url.Values{}
	params.Set("engine", "google_images")
	params.Set("q", query)
	params.Set("ijn", "0")
	params.Set("api_key", c.apiKey)

	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var response struct {
		ImagesResults []ImageResult `json:"images_results"`
	}

	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return response.ImagesResults, nil
}
