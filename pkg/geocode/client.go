// Package geocode resolves addresses to coordinates via the Google Geocoding
// API. Missing results are never errors: an unmatched address simply yields
// no coordinates.
package geocode

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client geocodes addresses.
type Client interface {
	// Geocode resolves a single address. A nil Result with a nil error means
	// the input had no usable components and no call was made.
	Geocode(ctx context.Context, addr AddressInput) (*Result, error)
}

// AddressInput represents an address to geocode. Empty components are
// omitted from the query.
type AddressInput struct {
	Address string
	City    string
	State   string
}

// Result holds the geocoding output for an address.
type Result struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	Matched          bool
}

var zipRe = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// ZipFromFormatted extracts a ZIP code from a formatted address, for
// backfilling candidates whose source never carried one.
func (r *Result) ZipFromFormatted() string {
	if r == nil {
		return ""
	}
	return zipRe.FindString(r.FormattedAddress)
}

// Query builds the single query string sent to the geocoder from the
// non-empty address components.
func (a AddressInput) Query() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Address, a.City, a.State} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(g *geocoder) {
		g.baseURL = u
	}
}

// WithCallDelay sets the minimum spacing between successive API calls.
func WithCallDelay(d time.Duration) Option {
	return func(g *geocoder) {
		g.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

type geocoder struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a geocoding Client with the given options.
func NewClient(apiKey string, opts ...Option) Client {
	g := &geocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    googleGeocodeURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(1100*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
