package fetch

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Default fetcher settings, used when no option overrides them.
const (
	defaultTimeout      = 15 * time.Second
	defaultUserAgent    = "spokes-crawler/1.0"
	defaultMaxBodySize  = 5 * 1024 * 1024 // 5MB
	defaultMaxRetries   = 2
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 5 * time.Second
)

// Fetcher issues HTTP GET requests for catalog pages.
//
// Design decision: We build on resty rather than a bare http.Client
// because it gives us bounded retry with exponential backoff in
// configuration rather than code. The retry policy is fixed at
// construction: retry on transport errors and 5xx/429 responses only,
// since 4xx statuses are stable properties of the URL.
type Fetcher struct {
	client      *resty.Client
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*settings)

// settings collects option values before the resty client is built.
type settings struct {
	timeout      time.Duration
	userAgent    string
	maxBodySize  int64
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *settings) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
// Larger responses are truncated.
func WithMaxBodySize(size int64) Option {
	return func(s *settings) {
		s.maxBodySize = size
	}
}

// WithRetry configures the bounded retry policy. A count of zero
// disables retries entirely.
func WithRetry(count int, waitMin, waitMax time.Duration) Option {
	return func(s *settings) {
		s.maxRetries = count
		s.retryWaitMin = waitMin
		s.retryWaitMax = waitMax
	}
}

// New creates a Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	s := &settings{
		timeout:      defaultTimeout,
		userAgent:    defaultUserAgent,
		maxBodySize:  defaultMaxBodySize,
		maxRetries:   defaultMaxRetries,
		retryWaitMin: defaultRetryWaitMin,
		retryWaitMax: defaultRetryWaitMax,
	}
	for _, opt := range opts {
		opt(s)
	}

	client := resty.New().
		SetTimeout(s.timeout).
		SetHeader("User-Agent", s.userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetRetryCount(s.maxRetries).
		SetRetryWaitTime(s.retryWaitMin).
		SetRetryMaxWaitTime(s.retryWaitMax).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= 500 || r.StatusCode() == 429
		})

	return &Fetcher{
		client:      client,
		maxBodySize: s.maxBodySize,
	}
}

// Get fetches the given URL and returns the response body as text.
// On network error, timeout, or non-success status it returns a
// *FetchError; retries have already been exhausted at that point.
func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	if !resp.IsSuccess() {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	body := resp.Body()
	if f.maxBodySize > 0 && int64(len(body)) > f.maxBodySize {
		body = body[:f.maxBodySize]
	}

	return string(body), nil
}
