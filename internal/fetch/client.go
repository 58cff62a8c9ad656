// Package fetch provides the HTTP client for the categorized job search API.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobMarket/1.0)"

// DefaultBaseURL is the root of the search API.
const DefaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

// MaxResultsPerPage is the largest page size the API accepts.
const MaxResultsPerPage = 50

// ErrMissingCredentials is returned before any request when the app id or key is empty.
var ErrMissingCredentials = errors.New("missing APP_ID or APP_KEY")

// Error represents a failed search request.
type Error struct {
	URL        string // Credentials are redacted
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// SearchParams are the query parameters of one category search.
type SearchParams struct {
	Country        string
	What           string
	Category       string
	ResultsPerPage int
	MaxDaysOld     int
}

// Client issues search requests against the API.
type Client struct {
	baseURL    string
	appID      string
	appKey     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header. An empty ua keeps the default.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimit spaces requests to at most rps per second. Zero disables spacing.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client for the given credentials.
func NewClient(appID, appKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		appID:      appID,
		appKey:     appKey,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckCredentials returns ErrMissingCredentials when either credential is empty.
func (c *Client) CheckCredentials() error {
	if c.appID == "" || c.appKey == "" {
		return ErrMissingCredentials
	}
	return nil
}

// SearchPage fetches one page (1-based) of results.
// Any transport failure, non-200 status or undecodable body is returned as *Error.
func (c *Client) SearchPage(ctx context.Context, params SearchParams, page int) (*SearchResponse, error) {
	if err := c.CheckCredentials(); err != nil {
		return nil, err
	}

	reqURL := c.pageURL(params, page)
	safeURL := c.redact(reqURL)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{URL: safeURL, Message: "rate limiter wait failed", Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{URL: safeURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: safeURL, Message: "HTTP request failed", Cause: c.scrub(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, &Error{
			URL:        safeURL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{URL: safeURL, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}

	return &out, nil
}

func (c *Client) pageURL(params SearchParams, page int) string {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("what", params.What)
	q.Set("category", params.Category)
	q.Set("results_per_page", strconv.Itoa(params.ResultsPerPage))
	q.Set("max_days_old", strconv.Itoa(params.MaxDaysOld))
	return fmt.Sprintf("%s/%s/search/%d?%s", c.baseURL, url.PathEscape(params.Country), page, q.Encode())
}

// redact replaces credential values in a URL string.
func (c *Client) redact(s string) string {
	for _, secret := range []string{c.appKey, c.appID} {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, url.QueryEscape(secret), "REDACTED")
		s = strings.ReplaceAll(s, secret, "REDACTED")
	}
	return s
}

// scrub wraps a transport error so its message carries no credentials.
// url.Error embeds the full request URL.
func (c *Client) scrub(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: c.redact(urlErr.URL), Err: urlErr.Err}
	}
	return err
}
