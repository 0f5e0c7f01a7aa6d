package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/showatlas/showatlas/internal/model"
)

// isoDate is the canonical output layout for resolved dates.
const isoDate = "2006-01-02"

var (
	ordinalRe    = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Layouts tried against the input exactly as given (after cleanup).
var fullLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
}

// Layouts tried with the current year appended ("Aug 2" → "Aug 2 2026").
var appendYearLayouts = []string{
	"January 2 2006",
	"Jan 2 2006",
	"1/2 2006",
	"1-2 2006",
}

// Layouts tried with the current year inserted after a comma
// ("Aug 2" → "Aug 2, 2026") — the third token arrangement.
var commaYearLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
}

// Date resolves a free-text date to a NormalizedDate relative to today.
// Cleanup strips a trailing two-letter region code and ordinal suffixes and
// collapses whitespace; resolution then tries the input as given, with the
// current year appended, and with the current year inserted comma-separated.
// A resolved date whose month has already elapsed this year is assumed to
// mean next year's occurrence. Unparseable input yields a disabled record.
func Date(raw string, today time.Time) model.NormalizedDate {
	nd := model.NormalizedDate{Original: raw}

	cleaned := cleanDateText(raw)
	if cleaned == "" {
		return nd
	}

	parsed, ok := resolveDate(cleaned, today)
	if !ok {
		return nd
	}

	// A date earlier than today whose month has already passed this year is
	// assumed to mean next year's occurrence. Listings in the first weeks of
	// January that omit the year can still be mis-dated; the source material
	// gives no better rule.
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(todayDate) && parsed.Month() < today.Month() {
		parsed = parsed.AddDate(1, 0, 0)
	}

	nd.ISO = parsed.Format(isoDate)
	nd.Valid = true
	return nd
}

// cleanDateText strips a trailing region-code token and ordinal suffixes and
// collapses whitespace.
func cleanDateText(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Sources sometimes append the state code to the date column
	// ("Aug 2 AL"). Drop a trailing two-letter token that names a state.
	fields := strings.Fields(s)
	if len(fields) > 1 {
		last := fields[len(fields)-1]
		if len(last) == 2 && IsStateToken(last) {
			s = strings.Join(fields[:len(fields)-1], " ")
		}
	}

	s = ordinalRe.ReplaceAllString(s, "$1")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// resolveDate tries the three interpretations in order.
func resolveDate(cleaned string, today time.Time) (time.Time, bool) {
	for _, layout := range fullLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}

	year := fmt.Sprintf("%d", today.Year())
	withYear := cleaned + " " + year
	for _, layout := range appendYearLayouts {
		if t, err := time.Parse(layout, withYear); err == nil {
			return t, true
		}
	}

	withCommaYear := cleaned + ", " + year
	for _, layout := range commaYearLayouts {
		if t, err := time.Parse(layout, withCommaYear); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
