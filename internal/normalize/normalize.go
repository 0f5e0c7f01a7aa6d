// Package normalize converts raw extracted candidates into canonical show
// records. Everything here is pure: no I/O, no mutable package state, and
// the clock is injected so date resolution is deterministic under test.
package normalize

import (
	"strings"
	"time"

	"github.com/showatlas/showatlas/internal/model"
)

// Normalizer resolves raw candidate fields against an injected clock.
type Normalizer struct {
	now func() time.Time
}

// New creates a Normalizer. A nil now falls back to time.Now.
func New(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize converts a RawCandidate to its canonical form.
func (n *Normalizer) Normalize(raw model.RawCandidate) model.NormalizedShow {
	today := n.now().UTC()

	show := model.NormalizedShow{
		Name:        trimmed(raw.Name),
		Description: trimmed(raw.Description),
		SourceURL:   trimmed(raw.URL),
	}

	show.StartDate = Date(raw.StartDate, today)

	// End date defaults to the start date for single-day shows.
	if trimmed(raw.EndDate) == "" {
		show.EndDate = show.StartDate
	} else {
		show.EndDate = Date(raw.EndDate, today)
	}

	n.normalizeLocation(raw, &show)
	n.normalizeContact(raw, &show)

	show.EntryFee = ParseEntryFee(raw.EntryFee)
	show.StartTime, show.EndTime = ParseHours(raw.ShowHours)

	return show
}

// normalizeLocation uses explicit fields when the source provided them and
// falls back to decomposing the address as a combined location string.
func (n *Normalizer) normalizeLocation(raw model.RawCandidate, show *model.NormalizedShow) {
	if trimmed(raw.VenueName) != "" || trimmed(raw.City) != "" || trimmed(raw.State) != "" {
		show.VenueName = trimmed(raw.VenueName)
		show.Address = trimmed(raw.Address)
		show.City = trimmed(raw.City)
		show.ZipCode = trimmed(raw.ZipCode)
		if st := CanonicalState(raw.State); st != "" {
			show.State = st
		} else {
			show.State = trimmed(raw.State)
		}
		return
	}

	loc := ParseLocation(raw.Address)
	show.VenueName = loc.VenueName
	show.Address = loc.Address
	show.City = loc.City
	show.State = loc.State
	show.ZipCode = loc.ZipCode
	if show.ZipCode == "" {
		show.ZipCode = trimmed(raw.ZipCode)
	}
}

// normalizeContact prefers split fields and decomposes the contact blob
// otherwise.
func (n *Normalizer) normalizeContact(raw model.RawCandidate, show *model.NormalizedShow) {
	if trimmed(raw.ContactName) != "" || trimmed(raw.ContactPhone) != "" || trimmed(raw.ContactEmail) != "" {
		show.Contact = model.Contact{
			Name:  trimmed(raw.ContactName),
			Phone: trimmed(raw.ContactPhone),
			Email: trimmed(raw.ContactEmail),
		}
		return
	}

	show.Contact = ParseContact(raw.Contact)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
