package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showatlas/showatlas/internal/model"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestNormalize_FullCandidate(t *testing.T) {
	n := New(fixedClock())

	show := n.Normalize(model.RawCandidate{
		Name:         "  Tri-County Gun & Knife Show ",
		StartDate:    "August 2",
		EndDate:      "August 3",
		VenueName:    "Expo Hall",
		Address:      "100 Fairgrounds Rd",
		City:         "Waco",
		State:        "Texas",
		ZipCode:      "76701",
		EntryFee:     "$10",
		ShowHours:    "9am-5pm",
		ContactName:  "Jim Hall",
		ContactPhone: "254-555-0101",
		URL:          "https://example.com/shows",
	})

	assert.Equal(t, "Tri-County Gun & Knife Show", show.Name)
	assert.Equal(t, "2026-08-02", show.StartDate.ISO)
	assert.True(t, show.StartDate.Valid)
	assert.Equal(t, "2026-08-03", show.EndDate.ISO)
	assert.Equal(t, "Expo Hall", show.VenueName)
	assert.Equal(t, "Waco", show.City)
	assert.Equal(t, "TX", show.State)
	assert.Equal(t, "76701", show.ZipCode)
	require.NotNil(t, show.EntryFee.Amount)
	assert.Equal(t, 10.0, *show.EntryFee.Amount)
	assert.Equal(t, "9:00 AM", show.StartTime)
	assert.Equal(t, "5:00 PM", show.EndTime)
	assert.Equal(t, "Jim Hall", show.Contact.Name)
	assert.Equal(t, "254-555-0101", show.Contact.Phone)
	assert.Equal(t, "https://example.com/shows", show.SourceURL)
}

func TestNormalize_EndDateDefaultsToStart(t *testing.T) {
	n := New(fixedClock())

	show := n.Normalize(model.RawCandidate{
		Name:      "One Day Show",
		StartDate: "July 4",
	})

	assert.Equal(t, show.StartDate, show.EndDate)
	assert.Equal(t, "2026-07-04", show.EndDate.ISO)
}

func TestNormalize_CombinedAddressDecomposed(t *testing.T) {
	n := New(fixedClock())

	show := n.Normalize(model.RawCandidate{
		Name:      "Club Show",
		StartDate: "Sep 12",
		Address:   "Elks Lodge, 123 Main St, Springfield, OH 45501",
	})

	assert.Equal(t, "Elks Lodge", show.VenueName)
	assert.Equal(t, "123 Main St", show.Address)
	assert.Equal(t, "Springfield", show.City)
	assert.Equal(t, "OH", show.State)
	assert.Equal(t, "45501", show.ZipCode)
}

func TestNormalize_ContactBlobDecomposed(t *testing.T) {
	n := New(fixedClock())

	show := n.Normalize(model.RawCandidate{
		Name:      "Blob Contact Show",
		StartDate: "Oct 1",
		Contact:   "John Smith 214-555-0123",
	})

	assert.Equal(t, "John Smith", show.Contact.Name)
	assert.Equal(t, "214-555-0123", show.Contact.Phone)
	assert.Empty(t, show.Contact.Email)
}

func TestNormalize_SplitContactTakesPrecedence(t *testing.T) {
	n := New(fixedClock())

	show := n.Normalize(model.RawCandidate{
		Name:        "Split Contact Show",
		StartDate:   "Oct 1",
		Contact:     "ignored blob 111-555-0000",
		ContactName: "Sue Reed",
	})

	assert.Equal(t, "Sue Reed", show.Contact.Name)
	assert.Empty(t, show.Contact.Phone)
}

func TestNormalize_ZipFallbackFromRawField(t *testing.T) {
	n := New(fixedClock())

	show := n.Normalize(model.RawCandidate{
		Name:      "Zip Fallback Show",
		StartDate: "Nov 7",
		Address:   "Armory, 40 Depot St, Barre, VT",
		ZipCode:   "05641",
	})

	assert.Equal(t, "VT", show.State)
	assert.Equal(t, "05641", show.ZipCode)
}

func TestNormalize_UnparseableDateKeptAsInvalid(t *testing.T) {
	n := New(fixedClock())

	show := n.Normalize(model.RawCandidate{
		Name:      "Bad Date Show",
		StartDate: "sometime this fall",
	})

	assert.False(t, show.StartDate.Valid)
	assert.Empty(t, show.StartDate.ISO)
	assert.Equal(t, "sometime this fall", show.StartDate.Original)
}

func TestNew_NilClockDefaultsToNow(t *testing.T) {
	n := New(nil)
	require.NotNil(t, n.now)
}
