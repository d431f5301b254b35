// Package yahoo is a minimal Yahoo Finance client: the per-symbol info
// snapshot, fundamentals time series and the streaming quote feed.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/bobmcallan/yfinance-mcp/internal/common"
)

const (
	defaultBaseURL   = "https://query2.finance.yahoo.com"
	defaultCookieURL = "https://fc.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	defaultTimeout   = 30 * time.Second

	// maxErrorBody caps how much of a failed response is kept in HTTPError.
	maxErrorBody = 512
)

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Yahoo Finance query endpoints. It is safe for
// concurrent use; the only shared state is the session crumb.
type Client struct {
	baseURL    string
	cookieURL  string
	userAgent  string
	httpClient HTTPClient
	logger     *common.Logger
	timeout    time.Duration
	now        func() time.Time

	mu    sync.Mutex
	crumb string
	group singleflight.Group
}

// Option is a configuration option for Client.
type Option func(*Client)

// WithBaseURL sets the query API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCookieURL sets the URL visited to obtain the session cookie.
func WithCookieURL(cookieURL string) Option {
	return func(c *Client) {
		c.cookieURL = cookieURL
	}
}

// WithHTTPClient sets the HTTP client. It must keep cookies between
// requests for the crumb handshake to work.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *common.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds each request made by the default HTTP client and the
// shared crumb handshake. A client passed with WithHTTPClient keeps its
// own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a Yahoo Finance client.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		cookieURL: defaultCookieURL,
		userAgent: defaultUserAgent,
		logger:    common.NewSilentLogger(),
		timeout:   defaultTimeout,
		now:       time.Now,
	}
	for _, option := range options {
		option(c)
	}
	if c.httpClient == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient = &http.Client{Timeout: c.timeout, Jar: jar}
	}
	return c
}

// getJSON performs an authenticated GET against the query API and decodes
// the response into dest.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	crumb, err := c.ensureCrumb(ctx)
	if err != nil {
		return err
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("crumb", crumb)

	u := c.baseURL + path + "?" + query.Encode()
	body, status, err := c.get(ctx, u)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		// Yahoo rotates crumbs; the next call performs a fresh handshake.
		c.resetCrumb()
	}
	if status >= 400 {
		if apiErr := parseAPIError(body); apiErr != nil {
			return apiErr
		}
		return &HTTPError{StatusCode: status, URL: path, Body: truncate(string(body), maxErrorBody)}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parse JSON from %s: %w", path, err)
	}
	return nil
}

// get performs a GET request and returns the body and status code.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Str("url", req.URL.Path).Dur("duration", duration).Msg("Yahoo request failed")
		return nil, 0, fmt.Errorf("yahoo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("url", req.URL.Path).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Int("bytes", len(body)).
		Msg("Yahoo response")

	return body, resp.StatusCode, nil
}

// parseAPIError looks for {"<envelope>":{"error":{...}}} in a response body.
func parseAPIError(body []byte) *APIError {
	var envelopes map[string]struct {
		Error *APIError `json:"error"`
	}
	if json.Unmarshal(body, &envelopes) != nil {
		return nil
	}
	for _, env := range envelopes {
		if env.Error != nil && (env.Error.Code != "" || env.Error.Description != "") {
			return env.Error
		}
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
