package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource_HeaderMapping(t *testing.T) {
	src := NewCSVSource("csv")

	body := "Show Name,Start Date,End Date,Venue,Address,City,State,Zip,Admission,Phone\n" +
		"Spring Collectors Show,Apr 4,Apr 5,Armory,12 Depot St,Barre,VT,05641,$8,802-555-0134\n"

	cands, err := src.Parse(body, "https://example.com/feed.csv")
	require.NoError(t, err)
	require.Len(t, cands, 1)

	c := cands[0]
	assert.Equal(t, "Spring Collectors Show", c.Name)
	assert.Equal(t, "Apr 4", c.StartDate)
	assert.Equal(t, "Apr 5", c.EndDate)
	assert.Equal(t, "Armory", c.VenueName)
	assert.Equal(t, "12 Depot St", c.Address)
	assert.Equal(t, "Barre", c.City)
	assert.Equal(t, "VT", c.State)
	assert.Equal(t, "05641", c.ZipCode)
	assert.Equal(t, "$8", c.EntryFee)
	assert.Equal(t, "802-555-0134", c.ContactPhone)
	assert.Equal(t, "https://example.com/feed.csv", c.URL)
}

func TestCSVSource_UnderscoreAndCamelHeaders(t *testing.T) {
	src := NewCSVSource("csv")

	body := "start_date,venueName,entry_fee\nMay 9,Fair Hall,free\n"

	cands, err := src.Parse(body, "u")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "May 9", cands[0].StartDate)
	assert.Equal(t, "Fair Hall", cands[0].VenueName)
	assert.Equal(t, "free", cands[0].EntryFee)
}

func TestCSVSource_UnknownColumnsIgnored(t *testing.T) {
	src := NewCSVSource("csv")

	body := "name,booth_count,city\nBig Show,120,Reno\n"

	cands, err := src.Parse(body, "u")
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "Big Show", cands[0].Name)
	assert.Equal(t, "Reno", cands[0].City)
}

func TestCSVSource_EmptyRowsDropped(t *testing.T) {
	src := NewCSVSource("csv")

	body := "name,city\nBig Show,Reno\n,\n"

	cands, err := src.Parse(body, "u")
	require.NoError(t, err)
	assert.Len(t, cands, 1)
}

func TestCSVSource_EmptyDocument(t *testing.T) {
	src := NewCSVSource("csv")

	cands, err := src.Parse("", "u")
	require.NoError(t, err)
	assert.Empty(t, cands)
}
