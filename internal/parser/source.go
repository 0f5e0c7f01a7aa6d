// Package parser holds deterministic candidate parsers for known, stable
// page templates. Sources with a registered parser skip AI extraction
// entirely; everything else goes through the extractor.
package parser

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/showatlas/showatlas/internal/model"
)

// CandidateSource parses one fetched document into raw candidates.
type CandidateSource interface {
	// Name is the registry key a source configuration refers to.
	Name() string
	// Parse extracts candidates from the document body. sourceURL is
	// recorded on each candidate for provenance.
	Parse(body, sourceURL string) ([]model.RawCandidate, error)
}

// Registry maps parser names to their implementations.
type Registry struct {
	sources map[string]CandidateSource
}

// NewRegistry creates a registry pre-populated with the given sources.
func NewRegistry(sources ...CandidateSource) *Registry {
	r := &Registry{sources: make(map[string]CandidateSource, len(sources))}
	for _, s := range sources {
		r.sources[s.Name()] = s
	}
	return r
}

// Register adds a source, replacing any existing source of the same name.
func (r *Registry) Register(s CandidateSource) {
	r.sources[s.Name()] = s
}

// Lookup returns the source registered under name.
func (r *Registry) Lookup(name string) (CandidateSource, error) {
	s, ok := r.sources[name]
	if !ok {
		return nil, eris.Errorf("parser: no source registered as %q", name)
	}
	return s, nil
}

// Names returns the registered parser names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
