package model

// URLResult captures the per-URL outcome of an ingestion run.
type URLResult struct {
	URL        string
	Fetched    bool
	Candidates int
	Valid      int
	Warned     int
	Invalid    int
	Geocoded   int
	Staged     int
	Err        string
}

// RunSummary aggregates counts across one ingestion run. Failures are
// isolated to their unit of work and surface here as counts, never as an
// aborted batch.
type RunSummary struct {
	URLs          int
	Fetched       int
	FetchErrors   int
	Candidates    int
	Valid         int
	Warned        int
	Invalid       int
	Geocoded      int
	Staged        int
	StagingErrors int
	Results       []URLResult
}

// Add folds a per-URL result into the run totals.
func (s *RunSummary) Add(r URLResult) {
	s.URLs++
	if r.Fetched {
		s.Fetched++
	}
	if r.Err != "" && !r.Fetched {
		s.FetchErrors++
	}
	s.Candidates += r.Candidates
	s.Valid += r.Valid
	s.Warned += r.Warned
	s.Invalid += r.Invalid
	s.Geocoded += r.Geocoded
	s.Staged += r.Staged
	s.StagingErrors += r.Valid - r.Staged
	s.Results = append(s.Results, r)
}

// TransferSummary aggregates counts for one promoter pass.
type TransferSummary struct {
	Eligible    int
	Inserted    int
	Updated     int
	Skipped     int
	Failed      int
	FailureMsgs []string
}
