package normalize

import (
	"regexp"
	"strings"
)

// Location is a decomposed free-text location string.
type Location struct {
	VenueName string
	Address   string
	City      string
	State     string
	ZipCode   string
}

var locationZipRe = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// ParseLocation decomposes a combined location string such as
// "Elks Lodge, 123 Main St, Springfield, IL 62701". The ZIP token is
// extracted first, then a state name or abbreviation, then the remaining
// comma segments are assigned venue/address/city positionally. A string
// that defeats decomposition entirely survives as the venue name.
func ParseLocation(raw string) Location {
	var loc Location

	s := strings.TrimSpace(raw)
	if s == "" {
		return loc
	}

	// ZIP first, so a trailing "IL 62701" segment reduces to a state token.
	if zip := locationZipRe.FindString(s); zip != "" {
		loc.ZipCode = zip
		s = strings.Replace(s, zip, "", 1)
	}

	segments := splitSegments(s)
	segments = takeState(segments, &loc)

	switch {
	case len(segments) >= 3:
		loc.City = segments[len(segments)-1]
		loc.VenueName = segments[0]
		loc.Address = strings.Join(segments[1:len(segments)-1], ", ")
	case len(segments) == 2:
		loc.VenueName = segments[0]
		loc.Address = segments[1]
	case len(segments) == 1:
		loc.VenueName = segments[0]
	default:
		// Nothing recognizable at all: keep the original string as the
		// venue name rather than dropping it.
		if loc.State == "" && loc.ZipCode == "" {
			loc.VenueName = strings.TrimSpace(raw)
		}
	}

	return loc
}

// splitSegments splits on commas and drops empty segments.
func splitSegments(s string) []string {
	parts := strings.Split(s, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			segments = append(segments, t)
		}
	}
	return segments
}

// takeState finds and removes the state token, scanning segments from the
// end. A whole segment naming a state is removed; otherwise a trailing state
// word inside the last segment is stripped from it.
func takeState(segments []string, loc *Location) []string {
	for i := len(segments) - 1; i >= 0; i-- {
		if st := CanonicalState(segments[i]); st != "" {
			loc.State = st
			return append(segments[:i:i], segments[i+1:]...)
		}
	}

	if len(segments) > 0 {
		last := segments[len(segments)-1]
		fields := strings.Fields(last)
		if len(fields) > 1 {
			if st := CanonicalState(fields[len(fields)-1]); st != "" {
				loc.State = st
				segments[len(segments)-1] = strings.Join(fields[:len(fields)-1], " ")
			}
		}
	}
	return segments
}
