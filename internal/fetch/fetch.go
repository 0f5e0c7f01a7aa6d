// Package fetch retrieves source documents over HTTP with a bounded timeout
// and a browser-like client identity.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/showatlas/showatlas/internal/resilience"
)

// maxBodyBytes caps the response body read so a runaway page cannot exhaust
// memory.
const maxBodyBytes = 2 * 1024 * 1024

// Fetcher retrieves documents for source URLs. Failures are classified as
// network errors; retry policy belongs to the caller, not this layer.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	minBodyBytes int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent overrides the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithMinBodyBytes sets the threshold below which a response body is treated
// as an empty page.
func WithMinBodyBytes(n int) Option {
	return func(f *Fetcher) {
		f.minBodyBytes = n
	}
}

// New creates a Fetcher with sensible defaults.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		minBodyBytes: 256,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the document at targetURL. Non-success status, transport
// failure, timeout, and bodies below the minimum size all return a
// resilience.NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/csv,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", resilience.NewNetworkError(eris.Wrap(err, "fetch: request"), 0)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", resilience.NewNetworkError(eris.Wrap(err, "fetch: read body"), resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return "", resilience.NewNetworkError(eris.Errorf("fetch: status %d for %s", resp.StatusCode, targetURL), resp.StatusCode)
	}

	if len(body) < f.minBodyBytes {
		return "", resilience.NewNetworkError(eris.Errorf("fetch: empty page (%d bytes) for %s", len(body), targetURL), resp.StatusCode)
	}

	return string(body), nil
}
