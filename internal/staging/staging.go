// Package staging persists processed candidates as PENDING records until
// the promoter transfers them to the production catalog.
package staging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/showatlas/showatlas/internal/db"
	"github.com/showatlas/showatlas/internal/model"
)

// Migration creates the staging table. Idempotent.
const Migration = `
CREATE TABLE IF NOT EXISTS staging_shows (
	id              TEXT PRIMARY KEY,
	source_url      TEXT NOT NULL,
	raw_payload     JSONB NOT NULL,
	normalized_json JSONB,
	geocoded_json   JSONB,
	status          TEXT NOT NULL DEFAULT 'PENDING',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_staging_shows_status ON staging_shows(status);
CREATE INDEX IF NOT EXISTS idx_staging_shows_source_url ON staging_shows(source_url);
`

// Store reads and writes staging records.
type Store struct {
	pool db.Pool
}

// NewStore creates a Store over pool.
func NewStore(pool db.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the staging table.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Migration)
	return eris.Wrap(err, "staging: migrate")
}

// Insert stages one candidate as PENDING. The normalized and geocoded
// payloads may be nil.
func (s *Store) Insert(ctx context.Context, rec *model.StagingRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Status == "" {
		rec.Status = model.StatusPending
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	rawJSON, normJSON, geoJSON, err := marshalPayloads(rec)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO staging_shows (id, source_url, raw_payload, normalized_json, geocoded_json, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.SourceURL, rawJSON, normJSON, geoJSON, string(rec.Status), rec.CreatedAt, rec.UpdatedAt,
	)
	return eris.Wrap(err, "staging: insert record")
}

// InsertBatch stages a whole batch via the COPY protocol. All records get
// the same timestamps; IDs are assigned where missing.
func (s *Store) InsertBatch(ctx context.Context, recs []*model.StagingRecord) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(recs))

	for _, rec := range recs {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.Status == "" {
			rec.Status = model.StatusPending
		}
		rec.CreatedAt = now
		rec.UpdatedAt = now

		rawJSON, normJSON, geoJSON, err := marshalPayloads(rec)
		if err != nil {
			return 0, err
		}
		rows = append(rows, []any{rec.ID, rec.SourceURL, rawJSON, normJSON, geoJSON, string(rec.Status), now, now})
	}

	return db.CopyFrom(ctx, s.pool, "staging_shows",
		[]string{"id", "source_url", "raw_payload", "normalized_json", "geocoded_json", "status", "created_at", "updated_at"},
		rows,
	)
}

// ListPending returns PENDING records whose normalized payload is present,
// oldest first, so repeated promoter runs converge on the same order.
func (s *Store) ListPending(ctx context.Context) ([]*model.StagingRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, source_url, raw_payload, normalized_json, geocoded_json, status, created_at, updated_at
		 FROM staging_shows
		 WHERE status = $1 AND normalized_json IS NOT NULL
		 ORDER BY created_at ASC`,
		string(model.StatusPending),
	)
	if err != nil {
		return nil, eris.Wrap(err, "staging: list pending")
	}
	defer rows.Close()

	var out []*model.StagingRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, eris.Wrap(rows.Err(), "staging: iterate pending")
}

// MarkTransferred flips a record to TRANSFERRED after a successful
// production write.
func (s *Store) MarkTransferred(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE staging_shows SET status = $1, updated_at = $2 WHERE id = $3`,
		string(model.StatusTransferred), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "staging: mark transferred %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("staging: record not found: %s", id)
	}
	return nil
}

// UpdateNormalized overwrites a record's normalized payload. Used by the
// re-normalization pass over PENDING rows.
func (s *Store) UpdateNormalized(ctx context.Context, id string, show *model.NormalizedShow) error {
	normJSON, err := json.Marshal(show)
	if err != nil {
		return eris.Wrap(err, "staging: marshal normalized payload")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE staging_shows SET normalized_json = $1, updated_at = $2 WHERE id = $3`,
		normJSON, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "staging: update normalized %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("staging: record not found: %s", id)
	}
	return nil
}

// CountByStatus reports how many records sit in each lifecycle state.
func (s *Store) CountByStatus(ctx context.Context) (map[model.StagingStatus]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT status, count(*) FROM staging_shows GROUP BY status`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "staging: count by status")
	}
	defer rows.Close()

	counts := make(map[model.StagingStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, eris.Wrap(err, "staging: scan count")
		}
		counts[model.StagingStatus(status)] = n
	}
	return counts, eris.Wrap(rows.Err(), "staging: iterate counts")
}

func marshalPayloads(rec *model.StagingRecord) (raw, norm, geo []byte, err error) {
	raw, err = json.Marshal(rec.Raw)
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "staging: marshal raw payload")
	}
	if rec.Normalized != nil {
		norm, err = json.Marshal(rec.Normalized)
		if err != nil {
			return nil, nil, nil, eris.Wrap(err, "staging: marshal normalized payload")
		}
	}
	if rec.Geocoded != nil {
		geo, err = json.Marshal(rec.Geocoded)
		if err != nil {
			return nil, nil, nil, eris.Wrap(err, "staging: marshal geocoded payload")
		}
	}
	return raw, norm, geo, nil
}

func scanRecord(rows pgx.Rows) (*model.StagingRecord, error) {
	var rec model.StagingRecord
	var status string
	var rawJSON, normJSON, geoJSON []byte

	if err := rows.Scan(&rec.ID, &rec.SourceURL, &rawJSON, &normJSON, &geoJSON, &status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, eris.Wrap(err, "staging: scan record")
	}
	rec.Status = model.StagingStatus(status)

	if err := json.Unmarshal(rawJSON, &rec.Raw); err != nil {
		return nil, eris.Wrap(err, "staging: unmarshal raw payload")
	}
	if len(normJSON) > 0 {
		rec.Normalized = &model.NormalizedShow{}
		if err := json.Unmarshal(normJSON, rec.Normalized); err != nil {
			return nil, eris.Wrap(err, "staging: unmarshal normalized payload")
		}
	}
	if len(geoJSON) > 0 {
		rec.Geocoded = &model.GeocodedPayload{}
		if err := json.Unmarshal(geoJSON, rec.Geocoded); err != nil {
			return nil, eris.Wrap(err, "staging: unmarshal geocoded payload")
		}
	}
	return &rec, nil
}
