// Package clockify is a small client for the clockify REST api: api key auth,
// client side rate limiting, retries on throttling and server errors, and
// page based pagination.
package clockify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/datazip-inc/tap-clockify/constants"
	"github.com/datazip-inc/tap-clockify/types"
	"github.com/datazip-inc/tap-clockify/utils"
	"github.com/datazip-inc/tap-clockify/utils/logger"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

type ClientConfig struct {
	BaseURL           string
	APIKey            string
	UserAgent         string
	RequestsPerSecond float64
	RateBurst         int
	MaxRetries        int
	RetryDelay        time.Duration
	PageSize          int
	Timeout           time.Duration

	// Transport allows injecting a custom HTTP transport (for tests/stubs)
	Transport http.RoundTripper
}

// Client is a rate-limited, retry-capable clockify api client
type Client struct {
	config      ClientConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = constants.DefaultAPIURL
	}
	if config.UserAgent == "" {
		config.UserAgent = constants.DefaultUserAgent
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = constants.DefaultRequestsPerSecond
	}
	if config.RateBurst <= 0 {
		config.RateBurst = constants.DefaultRateBurst
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 500 * time.Millisecond
	}
	if config.PageSize <= 0 || config.PageSize > constants.MaxPerPage {
		config.PageSize = constants.DefaultPerPage
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.RateBurst),
	}
}

// Get fetches path and decodes the json response into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return utils.RetryExec(ctx, c.config.MaxRetries, c.config.RetryDelay, isRetryable, func() error {
		body, err := c.doOnce(ctx, http.MethodGet, path, query)
		if err != nil {
			return err
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: failed to decode response of %s: %s", constants.ErrNonRetryable, path, err)
		}

		return nil
	})
}

// Paginate walks the pages of a list endpoint calling fn with every page;
// iteration stops at the first page shorter than the page size.
func (c *Client) Paginate(ctx context.Context, path string, query url.Values, fn func(page []types.Record) error) error {
	params := url.Values{}
	for key, values := range query {
		params[key] = append([]string(nil), values...)
	}
	params.Set("page-size", strconv.Itoa(c.config.PageSize))

	for page := 1; ; page++ {
		params.Set("page", strconv.Itoa(page))

		var records []types.Record
		if err := c.Get(ctx, path, params, &records); err != nil {
			return err
		}

		logger.Debugf("fetched page %d of %s with %d records", page, path, len(records))
		if len(records) > 0 {
			if err := fn(records); err != nil {
				return err
			}
		}

		if len(records) < c.config.PageSize {
			return nil
		}
	}
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	fullURL := strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %s", constants.ErrNonRetryable, err)
	}
	req.Header.Set("X-Api-Key", c.config.APIKey)
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s: %w", path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Message:    string(body),
		}
	}

	return body, nil
}
