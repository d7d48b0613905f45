// Package apod implements a client for the NASA Astronomy Picture of the
// Day API: fetching the daily entry and downloading its image payload.
package apod

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/apodwall/apodwall/pkg/errors"
	"github.com/apodwall/apodwall/pkg/httputil"
)

// DefaultBaseURL is the production APOD endpoint.
const DefaultBaseURL = "https://api.nasa.gov/planetary/apod"

// DefaultTimeout bounds every request so a run never hangs indefinitely.
const DefaultTimeout = 30 * time.Second

// Client talks to the APOD API. One attempt per call by default; retries
// are opt-in via WithAttempts and only apply to transient failures.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	attempts int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithAttempts sets the number of attempts for transient failures.
// Values below 1 are treated as 1.
func WithAttempts(n int) Option {
	return func(c *Client) { c.attempts = max(n, 1) }
}

// NewClient creates a Client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		attempts: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchEntry retrieves the entry for the given date (empty means today).
// It returns AUTH_ERROR when the key is rejected, NETWORK_ERROR on
// transport failure or timeout, and UPSTREAM_ERROR on any other non-2xx
// status or a response missing required fields.
func (c *Client) FetchEntry(ctx context.Context, date string) (*Entry, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	if date != "" {
		q.Set("date", date)
	}

	var entry Entry
	err := httputil.Retry(ctx, c.attempts, time.Second, func() error {
		body, err := c.get(ctx, c.baseURL+"?"+q.Encode())
		if err != nil {
			return err
		}
		defer body.Close()
		if err := json.NewDecoder(body).Decode(&entry); err != nil {
			return errors.Wrap(errors.ErrCodeUpstream, err, "decode APOD response")
		}
		return nil
	})
	if err != nil {
		return nil, unwrapRetryable(err)
	}

	if entry.MediaType == "" || (entry.IsImage() && entry.ImageURL() == "") {
		return nil, errors.New(errors.ErrCodeUpstream, "APOD response missing media fields for %s", entry.Date)
	}
	return &entry, nil
}

// Download retrieves the raw media payload at the given URL. The bytes are
// not decoded here; the compositor validates them as a raster image.
func (c *Client) Download(ctx context.Context, mediaURL string) ([]byte, error) {
	var data []byte
	err := httputil.Retry(ctx, c.attempts, time.Second, func() error {
		body, err := c.get(ctx, mediaURL)
		if err != nil {
			return err
		}
		defer body.Close()
		data, err = io.ReadAll(body)
		if err != nil {
			return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read media body")}
		}
		return nil
	})
	if err != nil {
		return nil, unwrapRetryable(err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "request %s", redact(rawURL))}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeAuth, "API key rejected (status %d)", code)
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeUpstream, "upstream status %d", code)}
	default:
		return errors.New(errors.ErrCodeUpstream, "upstream status %d", code)
	}
}

// unwrapRetryable strips the retry marker so callers see the coded error.
func unwrapRetryable(err error) error {
	var re *httputil.RetryableError
	if stderrors.As(err, &re) {
		return re.Err
	}
	return err
}

// redact masks the API key in URLs destined for logs and error messages.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
