// Package fetch is the HTTP client for the football data API.
//
// A Client issues one GET per call against a configured base URL and hands the
// raw JSON body back to the caller. It does not retry, cache or deduplicate:
// decoding and defaulting of the body is the caller's job.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abelbrown/touchline/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is sent when ClientConfig.UserAgent is empty.
const DefaultUserAgent = "touchline/0.1 (+https://github.com/abelbrown/touchline)"

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL           string        // e.g. "http://localhost:5000/api"
	Timeout           time.Duration // 0 leaves the transport default in place
	UserAgent         string
	RequestsPerSecond float64 // 0 disables pacing
}

// Client retrieves JSON documents from the API.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	recorder  Recorder
	now       func() time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithRecorder reports every attempt to rec after it completes.
func WithRecorder(rec Recorder) Option {
	return func(c *Client) {
		c.recorder = rec
	}
}

// NewClient creates a Client for the given configuration.
func NewClient(cfg ClientConfig, opts ...Option) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: ua,
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(limit, 1),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins the base URL and an endpoint path.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// Get performs a single GET of endpoint and returns the body as raw JSON.
//
// The body is checked for JSON syntax only; its shape is not validated.
// Every failure is a *FetchError.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, newFetchError(NetworkFailure, endpoint, 0, err)
	}

	reqID := uuid.NewString()
	start := c.now()

	body, status, err := c.do(ctx, endpoint, reqID)

	c.record(ctx, Attempt{
		RequestID: reqID,
		Endpoint:  endpoint,
		Status:    status,
		Outcome:   outcomeOf(err),
		Bytes:     len(body),
		Duration:  c.now().Sub(start),
		At:        start,
	})

	if err != nil {
		logging.Warn("fetch failed", "endpoint", endpoint, "request_id", reqID, "error", err)
		return nil, err
	}
	logging.Debug("fetch ok", "endpoint", endpoint, "request_id", reqID, "bytes", len(body))
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint, reqID string) (json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint), nil)
	if err != nil {
		return nil, 0, newFetchError(NetworkFailure, endpoint, 0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, newFetchError(NetworkFailure, endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, newFetchError(ServerFailure, endpoint, resp.StatusCode,
			fmt.Errorf("HTTP error: %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, newFetchError(NetworkFailure, endpoint, resp.StatusCode,
			fmt.Errorf("read body: %w", err))
	}

	if !json.Valid(body) {
		return body, resp.StatusCode, newFetchError(ParseFailure, endpoint, resp.StatusCode,
			fmt.Errorf("response is not valid JSON"))
	}

	return json.RawMessage(body), resp.StatusCode, nil
}

func (c *Client) record(ctx context.Context, a Attempt) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordAttempt(ctx, a); err != nil {
		logging.Warn("journal write failed", "endpoint", a.Endpoint, "error", err)
	}
}
