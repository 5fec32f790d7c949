// Package suggest provides a client for the category-suggestion service.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/storegenius/storegenius/internal/errors"
)

const defaultMaxAttempts = 3

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a suggestion-service client.
type Client struct {
	baseURL       string
	httpClient    HTTPDoer
	retryAttempts int
}

// NewClient creates a client for the suggestion service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		retryAttempts: defaultMaxAttempts,
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

// WithRetryAttempts sets the number of retry attempts for transport failures.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// Suggest asks the service for category suggestions for one or more trend
// tokens. Multiple tokens are encoded as repeated trend= parameters. A
// response missing keywords or results decodes as empty, not as an error.
func (c *Client) Suggest(ctx context.Context, trends []string) (*Suggestion, error) {
	params := url.Values{}
	for _, trend := range trends {
		params.Add("trend", trend)
	}
	endpoint := fmt.Sprintf("%s/suggest?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var suggestion Suggestion
	if err := json.Unmarshal(body, &suggestion); err != nil {
		// The service answered 2xx with a body we cannot read. Treat it as
		// an empty suggestion set rather than a failure.
		slog.Warn("Malformed suggestion response, treating as empty", "error", err)
		return &Suggestion{}, nil
	}
	return &suggestion, nil
}

// Search runs the free-text catalog search and returns raw product records
// in service order.
func (c *Client) Search(ctx context.Context, prompt string) ([]Product, error) {
	params := url.Values{}
	params.Set("prompt", prompt)
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, apperrors.NewSuggestionUnavailableError(fmt.Errorf("malformed search response: %w", err))
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		body, err := c.doRequest(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == c.retryAttempts {
			break
		}
		time.Sleep(backoffDelay(attempt))
	}

	var unavailable *apperrors.SuggestionUnavailableError
	if errors.As(lastErr, &unavailable) {
		return nil, lastErr
	}
	return nil, apperrors.NewSuggestionUnavailableError(lastErr)
}

func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewSuggestionStatusError(resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func isRetryable(err error) bool {
	var unavailable *apperrors.SuggestionUnavailableError
	if errors.As(err, &unavailable) {
		// error statuses are the service's answer, not a transient fault
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > 10*time.Second {
		return 10 * time.Second
	}
	return delay
}
