package pricing

import (
	"context"
	"log/slog"

	"cardkeep/internal/cards"
	"cardkeep/internal/catalog"
	"cardkeep/internal/logging"
	"cardkeep/internal/resolve"
	"cardkeep/internal/services"
)

// Resolver is the lookup surface the refresher drives.
type Resolver interface {
	Resolve(ctx context.Context, rec *cards.Record) resolve.PriceQuote
}

// Store is the slice of the catalog store the refresher needs.
type Store interface {
	ListByCatalog(ctx context.Context, catalogID int64) ([]*catalog.Row, error)
	UpdatePrice(ctx context.Context, id int64, price float64) error
}

// Summary aggregates one refresh pass over a catalog.
type Summary struct {
	Examined int
	Updated  int
	// Skipped counts rows whose lookup produced no quote. Their stored
	// price is left untouched.
	Skipped   int
	Unchanged int
	Failed    int
}

// Refresher re-resolves market prices for stored inventory rows.
type Refresher struct {
	resolver Resolver
	store    Store
	logger   *slog.Logger
}

// NewRefresher builds a refresher over the given resolver and store.
func NewRefresher(resolver Resolver, store Store, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Refresher{
		resolver: resolver,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "pricing"),
	}
}

// RefreshCatalog walks every row of a catalog and rewrites its price from a
// fresh lookup. Rows the lookup cannot price keep their last known price.
// The pass keeps going past individual row failures and reports them in the
// summary; it stops only when the context is cancelled.
func (r *Refresher) RefreshCatalog(ctx context.Context, catalogID int64) (*Summary, error) {
	if catalogID <= 0 {
		return nil, services.Wrap(services.ErrValidation, "pricing", "refresh", "catalog id must be positive", nil)
	}

	rows, err := r.store.ListByCatalog(ctx, catalogID)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "pricing", "refresh", "listing catalog", err)
	}

	ctx = services.WithCatalogID(ctx, catalogID)
	summary := &Summary{}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Examined++

		rec := row.Record
		quote := r.resolver.Resolve(services.WithExternalID(ctx, rec.ExternalID), &rec)
		if !quote.Found {
			summary.Skipped++
			r.logger.Debug("no quote for row",
				logging.Int64("row_id", row.ID),
				logging.String("name", row.Name))
			continue
		}
		if quote.Value == row.Price {
			summary.Unchanged++
			continue
		}

		if err := r.store.UpdatePrice(ctx, row.ID, quote.Value); err != nil {
			summary.Failed++
			r.logger.Warn("price update failed",
				logging.Int64("row_id", row.ID),
				logging.Error(err))
			continue
		}
		summary.Updated++
		r.logger.Info("price updated",
			logging.Int64("row_id", row.ID),
			logging.String("name", row.Name),
			logging.Float64("old_price", row.Price),
			logging.Float64("new_price", quote.Value))
	}

	return summary, nil
}
