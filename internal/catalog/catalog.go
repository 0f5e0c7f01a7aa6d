// Package catalog is the production show store. Rows are deduplicated by
// the (title, start_date, location) key the promoter looks up before
// deciding between update and insert.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/showatlas/showatlas/internal/db"
	"github.com/showatlas/showatlas/internal/model"
)

// Migration creates the production table. Idempotent.
const Migration = `
CREATE TABLE IF NOT EXISTS production_shows (
	id          BIGSERIAL PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	address     TEXT NOT NULL DEFAULT '',
	start_date  DATE NOT NULL,
	end_date    DATE,
	entry_fee   NUMERIC,
	features    TEXT[] NOT NULL DEFAULT '{}',
	categories  TEXT[] NOT NULL DEFAULT '{}',
	start_time  TEXT NOT NULL DEFAULT '',
	end_time    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'active',
	latitude    DOUBLE PRECISION,
	longitude   DOUBLE PRECISION,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_production_shows_dedup
	ON production_shows(title, start_date, location);
`

// Store reads and writes production shows.
type Store struct {
	pool db.Pool
}

// NewStore creates a Store over pool.
func NewStore(pool db.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the production table.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Migration)
	return eris.Wrap(err, "catalog: migrate")
}

// FindByKey looks up a show by its dedup key. Returns (nil, nil) when no
// row matches.
func (s *Store) FindByKey(ctx context.Context, title, startDate, location string) (*model.ProductionShow, error) {
	var show model.ProductionShow
	var start time.Time
	var end *time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, location, address, start_date, end_date, entry_fee,
		        features, categories, start_time, end_time, status
		 FROM production_shows
		 WHERE title = $1 AND start_date = $2 AND location = $3`,
		title, startDate, location,
	).Scan(&show.ID, &show.Title, &show.Description, &show.Location, &show.Address,
		&start, &end, &show.EntryFee, &show.Features, &show.Categories,
		&show.StartTime, &show.EndTime, &show.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: find show %q", title)
	}

	show.StartDate = start.Format("2006-01-02")
	if end != nil {
		show.EndDate = end.Format("2006-01-02")
	}
	return &show, nil
}

// Insert adds a new production show, attaching coordinates when available,
// and returns the new row's id.
func (s *Store) Insert(ctx context.Context, show *model.ProductionShow, coords *model.Coordinates) (int64, error) {
	var lat, lng *float64
	if coords != nil {
		lat, lng = &coords.Lat, &coords.Lng
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO production_shows
		   (title, description, location, address, start_date, end_date, entry_fee,
		    features, categories, start_time, end_time, status, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id`,
		show.Title, show.Description, show.Location, show.Address,
		show.StartDate, nullableDate(show.EndDate), show.EntryFee,
		show.Features, show.Categories, show.StartTime, show.EndTime,
		statusOrActive(show.Status), lat, lng,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "catalog: insert show %q", show.Title)
	}
	return id, nil
}

// Update overwrites an existing row's mutable fields. The dedup key columns
// are written too, so repeated updates with the same key are safe.
func (s *Store) Update(ctx context.Context, id int64, show *model.ProductionShow) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE production_shows
		 SET title = $1, description = $2, location = $3, address = $4,
		     start_date = $5, end_date = $6, entry_fee = $7, features = $8,
		     categories = $9, start_time = $10, end_time = $11, updated_at = now()
		 WHERE id = $12`,
		show.Title, show.Description, show.Location, show.Address,
		show.StartDate, nullableDate(show.EndDate), show.EntryFee,
		show.Features, show.Categories, show.StartTime, show.EndTime, id,
	)
	if err != nil {
		return eris.Wrapf(err, "catalog: update show %d", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("catalog: show not found: %d", id)
	}
	return nil
}

func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func statusOrActive(s string) string {
	if s == "" {
		return "active"
	}
	return s
}
