package serpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchImages_ReturnsCandidatesInOrder(t *testing.T) {
	var capturedQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.Query()
		response := map[string]any{
			"images_results": []map[string]any{
				{
					"link":      "https://store.example/nike-air-max",
					"original":  "https://cdn.example/nike.jpg",
					"title":     "Nike Air Max packaging",
					"thumbnail": "https://thumbs.example/1.jpg",
				},
				{
					"link":      "https://other.example/page",
					"thumbnail": "https://thumbs.example/2.jpg",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	results, err := client.SearchImages(context.Background(), "Nike Footwear product packaging")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "https://thumbs.example/1.jpg", results[0].Thumbnail)
	assert.Equal(t, "Nike Air Max packaging", results[0].Title)
	assert.Equal(t, "https://thumbs.example/2.jpg", results[1].Thumbnail)

	assert.Equal(t, "google_images", capturedQuery.Get("engine"))
	assert.Equal(t, "Nike Footwear product packaging", capturedQuery.Get("q"))
	assert.Equal(t, "0", capturedQuery.Get("ijn"))
}

func TestSearchImages_MissingResultsField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"search_metadata":{"status":"Success"}}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	results, err := client.SearchImages(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, results)
}
