// Package pipeline orchestrates one ingestion run: fetch each source,
// produce candidates deterministically or via AI extraction, normalize,
// validate, geocode under budget, and stage the survivors.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/showatlas/showatlas/internal/chunk"
	"github.com/showatlas/showatlas/internal/config"
	"github.com/showatlas/showatlas/internal/model"
	"github.com/showatlas/showatlas/internal/normalize"
	"github.com/showatlas/showatlas/internal/parser"
	"github.com/showatlas/showatlas/internal/validate"
	"github.com/showatlas/showatlas/pkg/geocode"
)

// Fetcher retrieves one source document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor produces candidates from document chunks via the AI model.
type Extractor interface {
	ExtractAll(ctx context.Context, chunks []chunk.Chunk, sourceURL string) []model.RawCandidate
}

// StagingWriter is the staging surface the runner needs.
type StagingWriter interface {
	Insert(ctx context.Context, rec *model.StagingRecord) error
	InsertBatch(ctx context.Context, recs []*model.StagingRecord) (int64, error)
	ListPending(ctx context.Context) ([]*model.StagingRecord, error)
	UpdateNormalized(ctx context.Context, id string, show *model.NormalizedShow) error
}

// ScoreRecorder adjusts per-source reliability, once per URL per run.
type ScoreRecorder interface {
	RecordSuccess(ctx context.Context, url string) error
	RecordFailure(ctx context.Context, url string) error
}

// Runner executes ingestion runs. URLs are processed strictly sequentially
// to bound load on the sources and the rate-limited external services.
type Runner struct {
	cfg        *config.Config
	fetcher    Fetcher
	registry   *parser.Registry
	extractor  Extractor
	normalizer *normalize.Normalizer
	geocoder   geocode.Client
	staging    StagingWriter
	scorer     ScoreRecorder

	geoUsed int
	now     func() time.Time
}

// New creates a Runner. A nil now falls back to time.Now.
func New(
	cfg *config.Config,
	fetcher Fetcher,
	registry *parser.Registry,
	extractor Extractor,
	geocoder geocode.Client,
	staging StagingWriter,
	scorer ScoreRecorder,
	now func() time.Time,
) *Runner {
	if now == nil {
		now = time.Now
	}
	return &Runner{
		cfg:        cfg,
		fetcher:    fetcher,
		registry:   registry,
		extractor:  extractor,
		normalizer: normalize.New(now),
		geocoder:   geocoder,
		staging:    staging,
		scorer:     scorer,
		now:        now,
	}
}

// Run processes every source in order and returns the aggregated summary.
// A source failure is isolated to that source; the batch never aborts.
func (r *Runner) Run(ctx context.Context, sources []model.Source) model.RunSummary {
	var sum model.RunSummary

	for _, src := range sources {
		result := r.ProcessURL(ctx, src)
		sum.Add(result)

		if result.Fetched && result.Err == "" {
			if err := r.scorer.RecordSuccess(ctx, src.URL); err != nil {
				zap.L().Warn("score update failed", zap.String("url", src.URL), zap.Error(err))
			}
		} else {
			if err := r.scorer.RecordFailure(ctx, src.URL); err != nil {
				zap.L().Warn("score update failed", zap.String("url", src.URL), zap.Error(err))
			}
		}
	}

	zap.L().Info("ingestion run complete",
		zap.Int("urls", sum.URLs),
		zap.Int("fetched", sum.Fetched),
		zap.Int("fetch_errors", sum.FetchErrors),
		zap.Int("candidates", sum.Candidates),
		zap.Int("valid", sum.Valid),
		zap.Int("warned", sum.Warned),
		zap.Int("invalid", sum.Invalid),
		zap.Int("geocoded", sum.Geocoded),
		zap.Int("staged", sum.Staged),
		zap.Int("staging_errors", sum.StagingErrors),
	)
	return sum
}

// ProcessURL runs the full per-source flow and reports its counts.
func (r *Runner) ProcessURL(ctx context.Context, src model.Source) model.URLResult {
	result := model.URLResult{URL: src.URL}
	log := zap.L().With(zap.String("url", src.URL))

	body, err := r.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		result.Err = err.Error()
		log.Error("fetch failed", zap.Error(err))
		return result
	}
	result.Fetched = true

	candidates, err := r.produceCandidates(ctx, src, body)
	if err != nil {
		result.Err = err.Error()
		log.Error("candidate production failed", zap.Error(err))
		return result
	}
	result.Candidates = len(candidates)

	today := r.now().UTC()
	var batch []*model.StagingRecord

	for _, raw := range candidates {
		norm := r.normalizer.Normalize(raw)

		check := validate.Check(norm, today)
		if !check.Valid {
			result.Invalid++
			log.Info("candidate rejected",
				zap.String("name", norm.Name),
				zap.Strings("errors", check.Errors),
			)
			continue
		}
		if check.HasWarnings() {
			result.Warned++
			log.Info("candidate flagged",
				zap.String("name", norm.Name),
				zap.Strings("warnings", check.Warnings),
			)
		}
		result.Valid++

		rec := &model.StagingRecord{
			SourceURL:  src.URL,
			Raw:        raw,
			Normalized: &norm,
		}
		if geo := r.geocodeCandidate(ctx, &norm, log); geo != nil {
			rec.Geocoded = geo
			result.Geocoded++
		}
		batch = append(batch, rec)
	}

	result.Staged = r.stage(ctx, batch, log)
	return result
}

func (r *Runner) produceCandidates(ctx context.Context, src model.Source, body string) ([]model.RawCandidate, error) {
	if src.Parser != "" {
		source, err := r.registry.Lookup(src.Parser)
		if err != nil {
			return nil, err
		}
		return source.Parse(body, src.URL)
	}

	chunks := chunk.Split(body, r.cfg.Chunk.MaxSize, r.cfg.Chunk.MaxChunks)
	return r.extractor.ExtractAll(ctx, chunks, src.URL), nil
}

// geocodeCandidate attempts geocoding under the per-run call budget. Every
// failure path is soft: the candidate is staged without coordinates.
func (r *Runner) geocodeCandidate(ctx context.Context, norm *model.NormalizedShow, log *zap.Logger) *model.GeocodedPayload {
	addr := geocode.AddressInput{
		Address: norm.Address,
		City:    norm.City,
		State:   norm.State,
	}
	if addr.Query() == "" {
		return nil
	}

	if r.geoUsed >= r.cfg.Geocode.MaxCallsPerRun {
		log.Info("geocode budget exhausted, staging without coordinates",
			zap.String("name", norm.Name),
		)
		return nil
	}
	r.geoUsed++

	res, err := r.geocoder.Geocode(ctx, addr)
	if err != nil {
		log.Warn("geocode error", zap.String("name", norm.Name), zap.Error(err))
		return nil
	}
	if res == nil || !res.Matched {
		return nil
	}

	if norm.ZipCode == "" {
		norm.ZipCode = res.ZipFromFormatted()
	}

	return &model.GeocodedPayload{
		Coordinates: model.Coordinates{Lat: res.Latitude, Lng: res.Longitude},
		GeocodedAt:  r.now().UTC(),
	}
}

// stage writes the batch through the COPY fast path, falling back to
// per-record inserts when the batch fails so one bad record cannot sink
// its siblings.
func (r *Runner) stage(ctx context.Context, batch []*model.StagingRecord, log *zap.Logger) int {
	if len(batch) == 0 {
		return 0
	}

	n, err := r.staging.InsertBatch(ctx, batch)
	if err == nil {
		return int(n)
	}
	log.Warn("batch staging failed, retrying per record", zap.Error(err))

	staged := 0
	for _, rec := range batch {
		if err := r.staging.Insert(ctx, rec); err != nil {
			log.Error("staging insert failed",
				zap.String("name", rec.Normalized.Name),
				zap.Error(err),
			)
			continue
		}
		staged++
	}
	return staged
}

// Renormalize re-runs the normalizer over the raw payloads of PENDING
// records and overwrites their normalized payloads. Used after normalizer
// rule changes, without re-fetching or re-extracting anything.
func (r *Runner) Renormalize(ctx context.Context) (int, error) {
	recs, err := r.staging.ListPending(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, rec := range recs {
		norm := r.normalizer.Normalize(rec.Raw)
		if err := r.staging.UpdateNormalized(ctx, rec.ID, &norm); err != nil {
			zap.L().Error("renormalize update failed",
				zap.String("id", rec.ID),
				zap.Error(err),
			)
			continue
		}
		updated++
	}

	zap.L().Info("renormalization pass complete",
		zap.Int("pending", len(recs)),
		zap.Int("updated", updated),
	)
	return updated, nil
}
