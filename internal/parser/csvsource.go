package parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/showatlas/showatlas/internal/model"
)

// csvColumns maps canonicalized header names to candidate field setters.
// Headers are lowercased with spaces and underscores removed before lookup,
// so "Start Date", "start_date", and "startDate" all land on the same field.
var csvColumns = map[string]func(*model.RawCandidate, string){
	"name":         func(c *model.RawCandidate, v string) { c.Name = v },
	"show":         func(c *model.RawCandidate, v string) { c.Name = v },
	"showname":     func(c *model.RawCandidate, v string) { c.Name = v },
	"startdate":    func(c *model.RawCandidate, v string) { c.StartDate = v },
	"start":        func(c *model.RawCandidate, v string) { c.StartDate = v },
	"date":         func(c *model.RawCandidate, v string) { c.StartDate = v },
	"enddate":      func(c *model.RawCandidate, v string) { c.EndDate = v },
	"end":          func(c *model.RawCandidate, v string) { c.EndDate = v },
	"venue":        func(c *model.RawCandidate, v string) { c.VenueName = v },
	"venuename":    func(c *model.RawCandidate, v string) { c.VenueName = v },
	"location":     func(c *model.RawCandidate, v string) { c.VenueName = v },
	"address":      func(c *model.RawCandidate, v string) { c.Address = v },
	"city":         func(c *model.RawCandidate, v string) { c.City = v },
	"state":        func(c *model.RawCandidate, v string) { c.State = v },
	"zip":          func(c *model.RawCandidate, v string) { c.ZipCode = v },
	"zipcode":      func(c *model.RawCandidate, v string) { c.ZipCode = v },
	"entryfee":     func(c *model.RawCandidate, v string) { c.EntryFee = v },
	"fee":          func(c *model.RawCandidate, v string) { c.EntryFee = v },
	"admission":    func(c *model.RawCandidate, v string) { c.EntryFee = v },
	"description":  func(c *model.RawCandidate, v string) { c.Description = v },
	"contact":      func(c *model.RawCandidate, v string) { c.Contact = v },
	"contactname":  func(c *model.RawCandidate, v string) { c.ContactName = v },
	"contactphone": func(c *model.RawCandidate, v string) { c.ContactPhone = v },
	"phone":        func(c *model.RawCandidate, v string) { c.ContactPhone = v },
	"contactemail": func(c *model.RawCandidate, v string) { c.ContactEmail = v },
	"email":        func(c *model.RawCandidate, v string) { c.ContactEmail = v },
	"hours":        func(c *model.RawCandidate, v string) { c.ShowHours = v },
	"showhours":    func(c *model.RawCandidate, v string) { c.ShowHours = v },
	"url":          func(c *model.RawCandidate, v string) { c.URL = v },
}

// CSVSource parses sources that publish their listings as a CSV document
// with a header row. Unrecognized columns are ignored; rows with no
// recognized values are dropped.
type CSVSource struct {
	name string
}

// NewCSVSource creates a CSV parser registered under name.
func NewCSVSource(name string) *CSVSource {
	return &CSVSource{name: name}
}

func (s *CSVSource) Name() string { return s.name }

func (s *CSVSource) Parse(body, sourceURL string) ([]model.RawCandidate, error) {
	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "parser: read csv header")
	}

	setters := make([]func(*model.RawCandidate, string), len(header))
	for i, h := range header {
		setters[i] = csvColumns[canonicalHeader(h)]
	}

	var out []model.RawCandidate
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "parser: read csv row")
		}

		cand := model.RawCandidate{URL: sourceURL}
		mapped := false
		for i, v := range record {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			setters[i](&cand, v)
			mapped = true
		}
		if mapped {
			out = append(out, cand)
		}
	}

	return out, nil
}

func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}
