package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithBaseURL(srv.URL), WithCallDelay(time.Millisecond))
}

func TestGeocode_Match(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("address")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"geometry": {"location": {"lat": 32.7767, "lng": -96.797}},
				"formatted_address": "123 Main St, Dallas, TX 75201, USA"
			}]
		}`))
	})

	result, err := client.Geocode(context.Background(), AddressInput{
		Address: "123 Main St",
		City:    "Dallas",
		State:   "TX",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Matched)
	assert.InDelta(t, 32.7767, result.Latitude, 0.0001)
	assert.InDelta(t, -96.797, result.Longitude, 0.0001)
	assert.Equal(t, "123 Main St, Dallas, TX", gotQuery)
	assert.Equal(t, "75201", result.ZipFromFormatted())
}

func TestGeocode_ZeroResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	result, err := client.Geocode(context.Background(), AddressInput{City: "Nowhereville"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Matched)
}

func TestGeocode_ServerErrorIsSoft(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})

	result, err := client.Geocode(context.Background(), AddressInput{City: "Dallas"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Matched)
}

func TestGeocode_EmptyInputSkipsCall(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	result, err := client.Geocode(context.Background(), AddressInput{})

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.False(t, called)
}

func TestAddressInput_Query(t *testing.T) {
	assert.Equal(t, "123 Main St, Dallas, TX", AddressInput{Address: "123 Main St", City: "Dallas", State: "TX"}.Query())
	assert.Equal(t, "Dallas, TX", AddressInput{City: " Dallas ", State: "TX"}.Query())
	assert.Equal(t, "", AddressInput{}.Query())
}

func TestZipFromFormatted_NineDigit(t *testing.T) {
	r := &Result{FormattedAddress: "1 Elm St, Springfield, IL 62701-1234, USA"}
	assert.Equal(t, "62701-1234", r.ZipFromFormatted())

	var nilResult *Result
	assert.Equal(t, "", nilResult.ZipFromFormatted())
}
