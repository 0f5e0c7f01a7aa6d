// Package model defines the data types shared across the ingestion pipeline.
package model

import "time"

// RawCandidate is a single show listing as extracted from a source document,
// before any normalization. Field values are free text exactly as the parser
// or the extraction model produced them. Candidates are ephemeral: they live
// for one run and are only persisted as the raw payload of a staging record.
type RawCandidate struct {
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	VenueName   string `json:"venueName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	EntryFee    string `json:"entryFee"`
	Description string `json:"description"`
	URL         string `json:"url"`

	// Contact is the unsplit contact blob when the source merges name,
	// phone, and email into one string. The split fields take precedence
	// when present.
	Contact      string `json:"contact,omitempty"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`

	ShowHours string `json:"showHours"`
}

// NormalizedDate is the result of resolving a free-text date.
// ISO is empty and Valid is false when the input could not be parsed.
type NormalizedDate struct {
	Original string `json:"original"`
	ISO      string `json:"iso"`
	Valid    bool   `json:"valid"`
}

// Contact holds a decomposed contact blob.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// EntryFee holds a parsed entry fee. Amount is nil when no numeric fee could
// be extracted; Description preserves the original text in that case.
type EntryFee struct {
	Amount      *float64 `json:"amount"`
	Description string   `json:"description,omitempty"`
}

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NormalizedShow is the canonical form of a candidate, produced by the
// normalizer and owned by the staging store once persisted.
type NormalizedShow struct {
	Name        string         `json:"name"`
	StartDate   NormalizedDate `json:"start_date"`
	EndDate     NormalizedDate `json:"end_date"`
	VenueName   string         `json:"venue_name"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	ZipCode     string         `json:"zip_code"`
	Contact     Contact        `json:"contact"`
	EntryFee    EntryFee       `json:"entry_fee"`
	StartTime   string         `json:"start_time,omitempty"`
	EndTime     string         `json:"end_time,omitempty"`
	Description string         `json:"description,omitempty"`
	SourceURL   string         `json:"source_url"`
}

// StagingStatus is the lifecycle state of a staging record.
type StagingStatus string

const (
	StatusPending     StagingStatus = "PENDING"
	StatusTransferred StagingStatus = "TRANSFERRED"
)

// GeocodedPayload is the geocoding result attached to a staging record.
type GeocodedPayload struct {
	Coordinates Coordinates `json:"coordinates"`
	GeocodedAt  time.Time   `json:"geocoded_at"`
}

// StagingRecord is one staged candidate: raw extraction output plus the
// normalized and geocoded payloads, gated by a lifecycle status. A record is
// mutated only by the promoter (status flip) or a re-normalization pass
// (normalized payload overwrite).
type StagingRecord struct {
	ID         string
	SourceURL  string
	Raw        RawCandidate
	Normalized *NormalizedShow
	Geocoded   *GeocodedPayload
	Status     StagingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductionShow is a row in the production show catalog. StartDate and
// EndDate are ISO date strings. EntryFee is nil when the source never
// announced a fee.
type ProductionShow struct {
	ID          int64
	Title       string
	Description string
	Location    string // venue name; part of the dedup key
	Address     string
	StartDate   string
	EndDate     string
	EntryFee    *float64
	Features    []string
	Categories  []string
	StartTime   string
	EndTime     string
	Status      string
}

// SourceScore is the per-source reliability signal, updated once per URL per
// run independently of the staging lifecycle.
type SourceScore struct {
	URL           string
	PriorityScore int
	ErrorStreak   int
	LastSuccessAt *time.Time
	LastErrorAt   *time.Time
}

// Source is one configured listing source. Parser selects a deterministic
// parser by registry name; empty means AI extraction.
type Source struct {
	URL    string `yaml:"url" mapstructure:"url"`
	Parser string `yaml:"parser" mapstructure:"parser"`
}
