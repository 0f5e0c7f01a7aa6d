package normalize

import (
	"regexp"
	"strings"

	"github.com/showatlas/showatlas/internal/model"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Tolerant phone pattern: optional area-code parentheses, dots, dashes,
	// or spaces as separators.
	phoneRe = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
)

// ParseContact decomposes a contact blob into name, phone, and email. Any
// text preceding the first matched email or phone is treated as a candidate
// name after connector words are trimmed.
func ParseContact(raw string) model.Contact {
	var c model.Contact

	s := strings.TrimSpace(raw)
	if s == "" {
		return c
	}

	nameEnd := len(s)

	if loc := emailRe.FindStringIndex(s); loc != nil {
		c.Email = s[loc[0]:loc[1]]
		if loc[0] < nameEnd {
			nameEnd = loc[0]
		}
	}

	// Search for the phone outside the email, so digits in an address-like
	// email local part are not misread as a number.
	phoneSearch := s
	if c.Email != "" {
		phoneSearch = strings.Replace(s, c.Email, strings.Repeat(" ", len(c.Email)), 1)
	}
	if loc := phoneRe.FindStringIndex(phoneSearch); loc != nil {
		c.Phone = strings.TrimSpace(phoneSearch[loc[0]:loc[1]])
		if loc[0] < nameEnd {
			nameEnd = loc[0]
		}
	}

	c.Name = trimConnectors(s[:nameEnd])
	return c
}

// trimConnectors strips connector words and punctuation left behind between
// a name and its contact details ("John Smith at ..." → "John Smith").
func trimConnectors(s string) string {
	s = strings.TrimSpace(s)
	for {
		trimmed := strings.TrimRight(s, " \t,;:-@")
		lower := strings.ToLower(trimmed)
		switch {
		case strings.HasSuffix(lower, " at"):
			trimmed = trimmed[:len(trimmed)-3]
		case trimmed == "at":
			trimmed = ""
		}
		if trimmed == s {
			return s
		}
		s = strings.TrimSpace(trimmed)
	}
}
