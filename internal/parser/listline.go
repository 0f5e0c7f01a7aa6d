package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/showatlas/showatlas/internal/model"
	"github.com/showatlas/showatlas/internal/normalize"
)

var (
	// A listing line opens with a date or a date range: "Aug 2", "Aug 2-3",
	// "Aug 30 - Sep 1". The end day may repeat the month or omit it.
	lineDateRe = regexp.MustCompile(`^([A-Za-z]{3,9}\.?\s+\d{1,2}(?:st|nd|rd|th)?)(?:\s*[-–]\s*((?:[A-Za-z]{3,9}\.?\s+)?\d{1,2}(?:st|nd|rd|th)?))?\b`)

	parenRe     = regexp.MustCompile(`\(([^)]*)\)`)
	linePhoneRe = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	nameWordRe  = regexp.MustCompile(`^[A-Z][a-z]+\.?$`)
)

// streetSuffixes are capitalized words that end address fragments, not
// people's names. They stop the backward name scan.
var streetSuffixes = map[string]bool{
	"St": true, "Street": true, "Rd": true, "Road": true,
	"Ave": true, "Avenue": true, "Blvd": true, "Boulevard": true,
	"Dr": true, "Drive": true, "Ln": true, "Lane": true,
	"Hwy": true, "Highway": true, "Pkwy": true, "Parkway": true,
	"Ct": true, "Court": true, "Way": true, "Pl": true, "Place": true,
}

// nameWindow bounds how far back from a phone number the name scan looks.
const nameWindow = 40

// ListLineSource parses line-oriented listing pages where each show is one
// line: a leading date range, a "city, venue - address" composite, an
// optional parenthetical hours token, and optional trailing contact text.
type ListLineSource struct {
	name        string
	titleSuffix string
	now         func() time.Time
}

// NewListLineSource creates a list-line parser registered under name. Lines
// carry no show title of their own, so one is composed from the city and
// titleSuffix. A nil now falls back to time.Now.
func NewListLineSource(name, titleSuffix string, now func() time.Time) *ListLineSource {
	if titleSuffix == "" {
		titleSuffix = "Show"
	}
	if now == nil {
		now = time.Now
	}
	return &ListLineSource{name: name, titleSuffix: titleSuffix, now: now}
}

func (s *ListLineSource) Name() string { return s.name }

// Parse walks the document line by line, keeping lines that open with a
// date range. Duplicate listings within one document are dropped by the
// city|address|ISO-start composite key.
func (s *ListLineSource) Parse(body, sourceURL string) ([]model.RawCandidate, error) {
	today := s.now().UTC()

	var out []model.RawCandidate
	seen := make(map[string]bool)

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := lineDateRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		cand := s.parseLine(line, m, sourceURL)
		if cand == nil {
			continue
		}

		iso := normalize.Date(cand.StartDate, today).ISO
		key := cand.City + "|" + cand.Address + "|" + iso
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, *cand)
	}

	return out, nil
}

func (s *ListLineSource) parseLine(line string, dateMatch []string, sourceURL string) *model.RawCandidate {
	cand := model.RawCandidate{
		StartDate: strings.TrimSpace(dateMatch[1]),
		URL:       sourceURL,
	}

	if end := strings.TrimSpace(dateMatch[2]); end != "" {
		// An end day without its own month reuses the start month:
		// "Aug 2-3" → "Aug 3".
		if end[0] >= '0' && end[0] <= '9' {
			fields := strings.Fields(cand.StartDate)
			end = strings.Join(fields[:len(fields)-1], " ") + " " + end
		}
		cand.EndDate = end
	}

	rest := strings.TrimSpace(line[len(dateMatch[0]):])
	rest = strings.TrimLeft(rest, " \t-–—:")

	rest = s.takeHours(rest, &cand)
	rest = s.takeContact(rest, &cand)

	// Composite location: "city, venue - address".
	locPart := rest
	if idx := strings.Index(rest, " - "); idx >= 0 {
		locPart = rest[:idx]
		cand.Address = strings.TrimSpace(rest[idx+3:])
	}
	if idx := strings.Index(locPart, ","); idx >= 0 {
		cand.City = strings.TrimSpace(locPart[:idx])
		cand.VenueName = strings.TrimSpace(locPart[idx+1:])
	} else {
		cand.City = strings.TrimSpace(locPart)
	}

	if cand.City == "" {
		return nil
	}

	cand.Name = cand.City + " " + s.titleSuffix
	return &cand
}

// takeHours removes a parenthetical token when it reads as an hour range.
// Other parentheticals ("(rain or shine)") are left in place.
func (s *ListLineSource) takeHours(rest string, cand *model.RawCandidate) string {
	for _, m := range parenRe.FindAllStringSubmatch(rest, -1) {
		if normalize.IsHourRange(m[1]) {
			cand.ShowHours = strings.TrimSpace(m[1])
			return strings.TrimSpace(strings.Replace(rest, m[0], "", 1))
		}
	}
	return rest
}

// takeContact extracts a trailing contact phone and, scanning a bounded
// window of text before it, a short capitalized name. Street-suffix words
// stop the scan so an address fragment is never mistaken for a person.
func (s *ListLineSource) takeContact(rest string, cand *model.RawCandidate) string {
	loc := linePhoneRe.FindStringIndex(rest)
	if loc == nil {
		return rest
	}
	cand.ContactPhone = strings.TrimSpace(rest[loc[0]:loc[1]])

	windowStart := loc[0] - nameWindow
	if windowStart < 0 {
		windowStart = 0
	}
	window := rest[windowStart:loc[0]]

	words := strings.Fields(window)
	var nameWords []string
	for i := len(words) - 1; i >= 0 && len(nameWords) < 3; i-- {
		w := strings.Trim(words[i], ",.:;")
		if streetSuffixes[w] || !nameWordRe.MatchString(w) {
			break
		}
		nameWords = append([]string{w}, nameWords...)
	}
	cand.ContactName = strings.Join(nameWords, " ")

	cut := loc[0]
	if cand.ContactName != "" {
		if idx := strings.LastIndex(rest[:loc[0]], cand.ContactName); idx >= 0 {
			cut = idx
		}
	}
	return strings.TrimSpace(strings.Trim(rest[:cut], " ,-–"))
}
