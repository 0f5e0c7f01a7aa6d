// Package scorer tracks per-source reliability. Every URL gets one score
// adjustment per run: fetch-and-stage success bumps its priority, failure
// drops it and extends the error streak.
package scorer

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/showatlas/showatlas/internal/db"
	"github.com/showatlas/showatlas/internal/model"
)

const (
	successDelta = 1
	failureDelta = 5
	maxPriority  = 100
	minPriority  = 0
)

// Migration creates the source score table. Idempotent.
const Migration = `
CREATE TABLE IF NOT EXISTS source_scores (
	url             TEXT PRIMARY KEY,
	priority_score  INTEGER NOT NULL DEFAULT 50,
	error_streak    INTEGER NOT NULL DEFAULT 0,
	last_success_at TIMESTAMPTZ,
	last_error_at   TIMESTAMPTZ
);
`

// Store reads and writes source scores.
type Store struct {
	pool db.Pool
}

// NewStore creates a Store over pool.
func NewStore(pool db.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the source score table.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Migration)
	return eris.Wrap(err, "scorer: migrate")
}

// RecordSuccess bumps a source's priority by one (capped at 100), resets
// its error streak, and stamps the success time. Unknown URLs are created.
func (s *Store) RecordSuccess(ctx context.Context, url string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO source_scores (url, priority_score, error_streak, last_success_at)
		 VALUES ($1, LEAST($2 + $3, $4), 0, $5)
		 ON CONFLICT (url) DO UPDATE SET
			priority_score  = LEAST(source_scores.priority_score + $3, $4),
			error_streak    = 0,
			last_success_at = $5`,
		url, 50, successDelta, maxPriority, time.Now().UTC(),
	)
	return eris.Wrapf(err, "scorer: record success %s", url)
}

// RecordFailure drops a source's priority by five (floored at 0), extends
// its error streak, and stamps the failure time. Unknown URLs are created.
func (s *Store) RecordFailure(ctx context.Context, url string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO source_scores (url, priority_score, error_streak, last_error_at)
		 VALUES ($1, GREATEST($2 - $3, $4), 1, $5)
		 ON CONFLICT (url) DO UPDATE SET
			priority_score = GREATEST(source_scores.priority_score - $3, $4),
			error_streak   = source_scores.error_streak + 1,
			last_error_at  = $5`,
		url, 50, failureDelta, minPriority, time.Now().UTC(),
	)
	return eris.Wrapf(err, "scorer: record failure %s", url)
}

// List returns all source scores, highest priority first.
func (s *Store) List(ctx context.Context) ([]*model.SourceScore, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT url, priority_score, error_streak, last_success_at, last_error_at
		 FROM source_scores
		 ORDER BY priority_score DESC, url ASC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "scorer: list scores")
	}
	defer rows.Close()

	var out []*model.SourceScore
	for rows.Next() {
		var sc model.SourceScore
		if err := rows.Scan(&sc.URL, &sc.PriorityScore, &sc.ErrorStreak, &sc.LastSuccessAt, &sc.LastErrorAt); err != nil {
			return nil, eris.Wrap(err, "scorer: scan score")
		}
		out = append(out, &sc)
	}
	return out, eris.Wrap(rows.Err(), "scorer: iterate scores")
}
