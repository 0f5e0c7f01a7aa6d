// Package promote transfers staged candidates into the production catalog.
// The pass is idempotent: TRANSFERRED records are excluded by the status
// filter and dedup-key updates are safe to repeat.
package promote

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/showatlas/showatlas/internal/model"
)

// StagingStore is the staging surface the promoter needs.
type StagingStore interface {
	ListPending(ctx context.Context) ([]*model.StagingRecord, error)
	MarkTransferred(ctx context.Context, id string) error
}

// CatalogStore is the production surface the promoter needs.
type CatalogStore interface {
	FindByKey(ctx context.Context, title, startDate, location string) (*model.ProductionShow, error)
	Insert(ctx context.Context, show *model.ProductionShow, coords *model.Coordinates) (int64, error)
	Update(ctx context.Context, id int64, show *model.ProductionShow) error
}

// Promoter runs the staging-to-production pass.
type Promoter struct {
	staging StagingStore
	catalog CatalogStore
}

// New creates a Promoter.
func New(staging StagingStore, catalog CatalogStore) *Promoter {
	return &Promoter{staging: staging, catalog: catalog}
}

// Run promotes every eligible PENDING record. Records without a resolved
// start date are skipped and logged. A production write failure leaves the
// record PENDING for the next pass; it never stops the rest of the batch.
func (p *Promoter) Run(ctx context.Context) (model.TransferSummary, error) {
	var sum model.TransferSummary

	recs, err := p.staging.ListPending(ctx)
	if err != nil {
		return sum, err
	}

	for _, rec := range recs {
		if rec.Normalized == nil || !rec.Normalized.StartDate.Valid {
			sum.Skipped++
			zap.L().Info("skipping staging record without start date",
				zap.String("id", rec.ID),
				zap.String("source_url", rec.SourceURL),
			)
			continue
		}
		sum.Eligible++

		if err := p.promoteRecord(ctx, rec, &sum); err != nil {
			sum.Failed++
			sum.FailureMsgs = append(sum.FailureMsgs, rec.ID+": "+err.Error())
			zap.L().Error("promotion failed, record stays pending",
				zap.String("id", rec.ID),
				zap.Error(err),
			)
		}
	}

	zap.L().Info("promoter pass complete",
		zap.Int("eligible", sum.Eligible),
		zap.Int("inserted", sum.Inserted),
		zap.Int("updated", sum.Updated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

func (p *Promoter) promoteRecord(ctx context.Context, rec *model.StagingRecord, sum *model.TransferSummary) error {
	show := mapToProduction(rec)

	existing, err := p.catalog.FindByKey(ctx, show.Title, show.StartDate, show.Location)
	if err != nil {
		return err
	}

	if existing != nil {
		if err := p.catalog.Update(ctx, existing.ID, show); err != nil {
			return err
		}
		sum.Updated++
	} else {
		var coords *model.Coordinates
		if rec.Geocoded != nil {
			coords = &rec.Geocoded.Coordinates
		}
		if _, err := p.catalog.Insert(ctx, show, coords); err != nil {
			return err
		}
		sum.Inserted++
	}

	return p.staging.MarkTransferred(ctx, rec.ID)
}

// mapToProduction converts a normalized staging payload to the production
// schema. A ZIP the address string lacks is merged in, and an unannounced
// entry fee stays nil rather than becoming zero.
func mapToProduction(rec *model.StagingRecord) *model.ProductionShow {
	n := rec.Normalized

	address := n.Address
	if loc := joinNonEmpty(", ", n.City, n.State); loc != "" {
		address = joinNonEmpty(", ", address, loc)
	}
	if n.ZipCode != "" && !strings.Contains(address, n.ZipCode) {
		address = joinNonEmpty(" ", address, n.ZipCode)
	}

	show := &model.ProductionShow{
		Title:       n.Name,
		Description: n.Description,
		Location:    n.VenueName,
		Address:     address,
		StartDate:   n.StartDate.ISO,
		EntryFee:    n.EntryFee.Amount,
		StartTime:   n.StartTime,
		EndTime:     n.EndTime,
	}
	if n.EndDate.Valid {
		show.EndDate = n.EndDate.ISO
	}
	return show
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
