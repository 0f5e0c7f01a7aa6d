// Package validate checks normalized shows before they are staged. Errors
// reject a record; warnings flag it but let it through.
package validate

import (
	"time"

	"github.com/showatlas/showatlas/internal/model"
)

// Result is the outcome of validating one normalized show.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// HasWarnings reports whether the record was flagged.
func (r Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Check validates a normalized show against today's date. A missing name,
// a missing or unparseable start date, or a start date strictly before today
// rejects the record. A missing venue, a missing city and state pair, or an
// end date earlier than the start date only flags it.
func Check(show model.NormalizedShow, today time.Time) Result {
	var res Result

	if show.Name == "" {
		res.Errors = append(res.Errors, "missing show name")
	}

	switch {
	case show.StartDate.Original == "" && !show.StartDate.Valid:
		res.Errors = append(res.Errors, "missing start date")
	case !show.StartDate.Valid:
		res.Errors = append(res.Errors, "unparseable start date: "+show.StartDate.Original)
	default:
		start, err := time.Parse("2006-01-02", show.StartDate.ISO)
		if err != nil {
			res.Errors = append(res.Errors, "malformed start date: "+show.StartDate.ISO)
		} else {
			todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
			if start.Before(todayDate) {
				res.Errors = append(res.Errors, "start date already passed: "+show.StartDate.ISO)
			}
			if show.EndDate.Valid {
				if end, err := time.Parse("2006-01-02", show.EndDate.ISO); err == nil && end.Before(start) {
					res.Warnings = append(res.Warnings, "end date precedes start date")
				}
			}
		}
	}

	if show.VenueName == "" {
		res.Warnings = append(res.Warnings, "missing venue name")
	}
	if show.City == "" && show.State == "" {
		res.Warnings = append(res.Warnings, "missing city and state")
	}

	res.Valid = len(res.Errors) == 0
	return res
}
