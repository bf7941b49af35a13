package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"
)

// RetryBaseDelay is the first backoff on HTTP 429. It doubles per attempt.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 3
	userAgent         = "go-cfp"
)

// HTTPFetcher loads sources over http(s).
type HTTPFetcher struct {
	client     *http.Client
	maxRetries int
	logger     *slog.Logger
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithClient sets the underlying HTTP client.
func WithClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout sets the per-request timeout on a copy of the current client,
// so a client set by WithClient keeps its other settings. Zero keeps the
// default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			c := *f.client
			c.Timeout = d
			f.client = &c
		}
	}
}

// WithMaxRetries sets how often a 429 response is retried. Zero disables retries.
func WithMaxRetries(n int) HTTPOption {
	return func(f *HTTPFetcher) {
		if n >= 0 {
			f.maxRetries = n
		}
	}
}

// WithHTTPLogger sets the logger for retry events.
func WithHTTPLogger(logger *slog.Logger) HTTPOption {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher with a 15s timeout and 3 retries.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:     &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs rawURL. Any non-2xx status is a failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q: %v", ErrNotAvailable, rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.doWithRetry(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrNotAvailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %w: %s returned %d", ErrNotAvailable, ErrHTTPStatus, rawURL, resp.StatusCode)
	}

	data, err := readLimited(resp.Body, rawURL)
	if err != nil {
		return nil, err
	}
	if err := checkPayload(rawURL, data); err != nil {
		return nil, err
	}

	return &Document{Markdown: string(data), Source: rawURL, BaseURL: base}, nil
}

// doWithRetry executes req and retries on HTTP 429 with exponential backoff
// starting at RetryBaseDelay. On each 429 the body is drained and closed
// before sleeping. After exhausting retries the last 429 response is
// returned so the caller reports its status.
func (f *HTTPFetcher) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := f.client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= f.maxRetries {
			return resp, nil
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		f.logger.Info("rate limited, retrying",
			"url", req.URL.String(), "backoff", backoff, "attempt", attempt+1, "max", f.maxRetries)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
