package staging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showatlas/showatlas/internal/model"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewStore(mock), mock
}

func sampleRecord() *model.StagingRecord {
	return &model.StagingRecord{
		SourceURL: "https://example.com/list",
		Raw:       model.RawCandidate{Name: "Waco Gun Show", StartDate: "Aug 2"},
		Normalized: &model.NormalizedShow{
			Name:      "Waco Gun Show",
			StartDate: model.NormalizedDate{Original: "Aug 2", ISO: "2026-08-02", Valid: true},
		},
	}
}

func TestInsert_AssignsIDAndPendingStatus(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO staging_shows`).
		WithArgs(pgxmock.AnyArg(), "https://example.com/list", pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), "PENDING", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec := sampleRecord()
	require.NoError(t, s.Insert(context.Background(), rec))

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, model.StatusPending, rec.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatch_UsesCopy(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"staging_shows"},
		[]string{"id", "source_url", "raw_payload", "normalized_json", "geocoded_json", "status", "created_at", "updated_at"}).
		WillReturnResult(2)

	n, err := s.InsertBatch(context.Background(), []*model.StagingRecord{sampleRecord(), sampleRecord()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPending_ScansPayloads(t *testing.T) {
	s, mock := newMockStore(t)

	rec := sampleRecord()
	rawJSON, _ := json.Marshal(rec.Raw)
	normJSON, _ := json.Marshal(rec.Normalized)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, source_url, raw_payload, normalized_json, geocoded_json, status, created_at, updated_at\s+FROM staging_shows`).
		WithArgs("PENDING").
		WillReturnRows(pgxmock.NewRows([]string{"id", "source_url", "raw_payload", "normalized_json", "geocoded_json", "status", "created_at", "updated_at"}).
			AddRow("rec-1", "https://example.com/list", rawJSON, normJSON, []byte(nil), "PENDING", now, now))

	recs, err := s.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	got := recs[0]
	assert.Equal(t, "rec-1", got.ID)
	assert.Equal(t, "Waco Gun Show", got.Raw.Name)
	require.NotNil(t, got.Normalized)
	assert.Equal(t, "2026-08-02", got.Normalized.StartDate.ISO)
	assert.Nil(t, got.Geocoded)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkTransferred(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE staging_shows SET status = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs("TRANSFERRED", pgxmock.AnyArg(), "rec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, s.MarkTransferred(context.Background(), "rec-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkTransferred_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE staging_shows SET status`).
		WithArgs("TRANSFERRED", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.MarkTransferred(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNormalized(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE staging_shows SET normalized_json = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "rec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	show := &model.NormalizedShow{Name: "Renamed Show"}
	require.NoError(t, s.UpdateNormalized(context.Background(), "rec-1", show))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT status, count\(\*\) FROM staging_shows GROUP BY status`).
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow("PENDING", 4).
			AddRow("TRANSFERRED", 9))

	counts, err := s.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, counts[model.StatusPending])
	assert.Equal(t, 9, counts[model.StatusTransferred])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS staging_shows`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
