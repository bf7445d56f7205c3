// Package integrations provides shared HTTP plumbing for API clients.
//
// The [Client] layers retries (via httputil) and optional byte caching (via
// cache) under a small request surface. Listing requests are never cached
// because change detection depends on fresh data, while avatar payloads are cached
// aggressively since a user's avatar URL is content-addressed upstream.
package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/contribwall/pkg/cache"
	pkgerrors "github.com/matzehuels/contribwall/pkg/errors"
	"github.com/matzehuels/contribwall/pkg/httputil"
	"github.com/matzehuels/contribwall/pkg/pagination"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a requested resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Client provides shared HTTP functionality for API clients.
// It handles retry logic, response caching, and common request headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client with the given cache and default headers.
// Headers are applied to all requests made through this client. Pass a
// NullCache to disable caching and nil for headers if none are needed.
func NewClient(c cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   c,
		ttl:     ttl,
		headers: headers,
	}
}

// GetJSON performs an HTTP GET, decodes the response body into v, and returns
// the pagination hint parsed from the Link response header. Transient failures
// are retried with backoff. Responses are not cached.
func (c *Client) GetJSON(ctx context.Context, url string, v any) (pagination.Hint, error) {
	var hint pagination.Hint
	err := httputil.RetryWithBackoff(ctx, func() error {
		body, link, err := c.doRequest(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()
		hint = pagination.ParseLink(link)
		return json.NewDecoder(body).Decode(v)
	})
	return hint, err
}

// GetBytes performs an HTTP GET and returns the raw response body and its
// Content-Type. Successful responses are cached by URL for the client's TTL.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, string, error) {
	var entry bytesEntry
	if hit, err := c.cacheGet(ctx, url, &entry); err == nil && hit {
		return entry.Data, entry.ContentType, nil
	}

	err := httputil.RetryWithBackoff(ctx, func() error {
		body, _, err := c.doRequestHeaders(ctx, url, func(resp *http.Response) {
			entry.ContentType = resp.Header.Get("Content-Type")
		})
		if err != nil {
			return err
		}
		defer body.Close()
		entry.Data, err = io.ReadAll(body)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	c.cacheSet(ctx, url, entry)
	return entry.Data, entry.ContentType, nil
}

// Do performs an arbitrary HTTP request with the client's default headers and
// retry policy, returning the response body. Used for non-GET verbs (the
// contents API PUT). The caller owns body interpretation; status handling
// matches GET requests.
func (c *Client) Do(ctx context.Context, method, url string, reqBody []byte, build func(*http.Request)) ([]byte, error) {
	var out []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := newRequest(ctx, method, url, reqBody)
		if err != nil {
			return err
		}
		c.applyHeaders(req)
		if build != nil {
			build(req)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		defer resp.Body.Close()

		if err := checkStatus(resp); err != nil {
			return err
		}
		out, err = io.ReadAll(resp.Body)
		return err
	})
	return out, err
}

type bytesEntry struct {
	Data        []byte `json:"data"`
	ContentType string `json:"content_type"`
}

func (c *Client) cacheGet(ctx context.Context, key string, v any) (bool, error) {
	data, hit, err := c.cache.Get(ctx, key)
	if err != nil || !hit {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

func (c *Client) cacheSet(ctx context.Context, key string, v any) {
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, string, error) {
	return c.doRequestHeaders(ctx, url, nil)
}

func (c *Client) doRequestHeaders(ctx context.Context, url string, inspect func(*http.Response)) (io.ReadCloser, string, error) {
	req, err := newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, "", err
	}
	if inspect != nil {
		inspect(resp)
	}
	return resp.Body, resp.Header.Get("Link"), nil
}

func (c *Client) applyHeaders(req *http.Request) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

func newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	return http.NewRequestWithContext(ctx, method, url, r)
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return pkgerrors.Wrap(pkgerrors.ErrCodeNotFound, ErrNotFound, "resource not found")
	case code == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.ErrCodeUnauthorized, "authentication failed (check GITHUB_TOKEN)")
	case code == http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return rateLimited(resp)
		}
		return pkgerrors.New(pkgerrors.ErrCodeForbidden, "access forbidden")
	case code >= 500:
		return &httputil.RetryableError{Err: pkgerrors.Wrap(pkgerrors.ErrCodeNetwork, ErrNetwork, "status %d", code)}
	default:
		return pkgerrors.Wrap(pkgerrors.ErrCodeNetwork, ErrNetwork, "unexpected status %d", code)
	}
}

func rateLimited(resp *http.Response) error {
	retryAfter := 0
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if ts, err := strconv.ParseInt(reset, 10, 64); err == nil {
			if wait := time.Until(time.Unix(ts, 0)); wait > 0 {
				retryAfter = int(wait.Seconds())
			}
		}
	}
	return &pkgerrors.RateLimitedError{RetryAfter: retryAfter}
}
