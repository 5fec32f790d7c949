// Package serpapi provides a client for the SerpAPI search engines used by
// the enrichment pipeline: google_shopping for trending products and
// google_images for product image lookups.
package serpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/storegenius/storegenius/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://serpapi.com"
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 4

	// Query template for the trending-products source. The original deployment
	// targeted the Indian storefront; the values are configurable via options.
	defaultTrendingQuery = "trending products"
	defaultGoogleDomain  = "google.co.in"
	defaultCountry       = "in"
	defaultLanguage      = "en"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a SerpAPI client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int

	trendingQuery string
	googleDomain  string
	country       string
	language      string
}

// NewClient creates a new SerpAPI client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.New("SerpAPI", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		trendingQuery: defaultTrendingQuery,
		googleDomain:  defaultGoogleDomain,
		country:       defaultCountry,
		language:      defaultLanguage,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for SerpAPI.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithTrendingQuery overrides the query template for the trending source.
func WithTrendingQuery(query, googleDomain, country, language string) Option {
	return func(client *Client) {
		if query != "" {
			client.trendingQuery = query
		}
		if googleDomain != "" {
			client.googleDomain = googleDomain
		}
		if country != "" {
			client.country = country
		}
		if language != "" {
			client.language = language
		}
	}
}
