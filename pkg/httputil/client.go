package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/censusplot/pkg/observability"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// Client fetches remote resources with caching and retry.
type Client struct {
	http    *http.Client
	cache   *Cache
	headers map[string]string
	policy  Policy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPolicy overrides the retry policy (default [DefaultPolicy]).
func WithPolicy(p Policy) ClientOption { return func(c *Client) { c.policy = p } }

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) ClientOption { return func(c *Client) { c.http = h } }

// NewClient creates a Client with the given cache and default headers.
// A nil cache disables caching.
func NewClient(cache *Cache, headers map[string]string, opts ...ClientOption) *Client {
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache,
		headers: headers,
		policy:  DefaultPolicy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
// It reports whether the value came from the cache.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) (bool, error) {
	if !refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			observability.Cache().OnCacheHit(ctx, "http")
			return true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}
	if err := RetryWithPolicy(ctx, c.policy, fetch); err != nil {
		return false, err
	}
	if err := c.cache.Set(key, v); err == nil && c.cache != nil {
		observability.Cache().OnCacheSet(ctx, "http", 0)
	}
	return false, nil
}

// GetBytes performs a single HTTP GET and returns the response body.
// Transient failures are returned as [RetryableError] so callers can pass
// GetBytes to [Retry] or [Client.Cached].
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	return body, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500 || code == http.StatusTooManyRequests:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
