package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation_FourSegments(t *testing.T) {
	loc := ParseLocation("Elks Lodge, 123 Main St, Springfield, IL")

	assert.Equal(t, "Elks Lodge", loc.VenueName)
	assert.Equal(t, "123 Main St", loc.Address)
	assert.Equal(t, "Springfield", loc.City)
	assert.Equal(t, "IL", loc.State)
}

func TestParseLocation_WithZip(t *testing.T) {
	loc := ParseLocation("VFW Hall, 45 Oak Ave, Des Moines, Iowa 50309")

	assert.Equal(t, "VFW Hall", loc.VenueName)
	assert.Equal(t, "45 Oak Ave", loc.Address)
	assert.Equal(t, "Des Moines", loc.City)
	assert.Equal(t, "IA", loc.State)
	assert.Equal(t, "50309", loc.ZipCode)
}

func TestParseLocation_MultiSegmentAddress(t *testing.T) {
	loc := ParseLocation("Fairgrounds, Gate 2, 900 Expo Dr, Tulsa, OK")

	assert.Equal(t, "Fairgrounds", loc.VenueName)
	assert.Equal(t, "Gate 2, 900 Expo Dr", loc.Address)
	assert.Equal(t, "Tulsa", loc.City)
	assert.Equal(t, "OK", loc.State)
}

func TestParseLocation_TwoSegments(t *testing.T) {
	loc := ParseLocation("Armory, 12 Depot Rd")

	assert.Equal(t, "Armory", loc.VenueName)
	assert.Equal(t, "12 Depot Rd", loc.Address)
	assert.Empty(t, loc.City)
	assert.Empty(t, loc.State)
}

func TestParseLocation_SingleSegmentIsVenue(t *testing.T) {
	loc := ParseLocation("Riverside Convention Center")

	assert.Equal(t, "Riverside Convention Center", loc.VenueName)
	assert.Empty(t, loc.Address)
}

func TestParseLocation_StateInsideLastSegment(t *testing.T) {
	loc := ParseLocation("Moose Lodge, 7 Hill Rd, Akron OH")

	assert.Equal(t, "Moose Lodge", loc.VenueName)
	assert.Equal(t, "7 Hill Rd", loc.Address)
	assert.Equal(t, "Akron", loc.City)
	assert.Equal(t, "OH", loc.State)
}

func TestParseLocation_OnlyStateAndZip(t *testing.T) {
	loc := ParseLocation("TX 75201")

	assert.Equal(t, "TX", loc.State)
	assert.Equal(t, "75201", loc.ZipCode)
	assert.Empty(t, loc.VenueName)
}

func TestParseLocation_Empty(t *testing.T) {
	loc := ParseLocation("   ")
	assert.Equal(t, Location{}, loc)
}

func TestCanonicalState(t *testing.T) {
	assert.Equal(t, "IL", CanonicalState("il"))
	assert.Equal(t, "IL", CanonicalState("Illinois"))
	assert.Equal(t, "NM", CanonicalState("new mexico"))
	assert.Empty(t, CanonicalState("Springfield"))
	assert.Empty(t, CanonicalState(""))
}
