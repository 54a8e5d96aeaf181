package ingest

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"cardkeep/internal/cards"
	"cardkeep/internal/catalog"
	"cardkeep/internal/logging"
	"cardkeep/internal/resolve"
	"cardkeep/internal/services"
)

// Resolver enriches a record from the remote card database and returns a
// market price quote. Implementations fail softly and never return an error.
type Resolver interface {
	Resolve(ctx context.Context, rec *cards.Record) resolve.PriceQuote
}

// Store is the slice of the catalog store the ingestor needs.
type Store interface {
	Reconcile(ctx context.Context, catalogID int64, rec cards.Record) (*catalog.ReconcileResult, error)
}

// Request carries one scan through the pipeline.
type Request struct {
	CatalogID int64
	Scan      cards.RawScan

	// PriorPrice is the last known price for this card, used when the remote
	// lookup yields no quote. Nil means no prior price is known.
	PriorPrice *float64
}

// Result reports what a single ingestion did.
type Result struct {
	RunID    string
	Record   cards.Record
	Action   catalog.Action
	RowID    int64
	Quantity int

	// PriceResolved is true when the stored price came from the remote
	// lookup rather than a prior price or the zero fallback.
	PriceResolved bool
}

// Ingestor runs the full pipeline for one scan at a time. It is safe for
// concurrent use; the store serializes writes underneath.
type Ingestor struct {
	resolver      Resolver
	store         Store
	logger        *slog.Logger
	lookupEnabled bool
}

// NewIngestor wires the pipeline stages together. A nil resolver disables the
// remote lookup regardless of the lookupEnabled flag.
func NewIngestor(resolver Resolver, store Store, logger *slog.Logger, lookupEnabled bool) *Ingestor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Ingestor{
		resolver:      resolver,
		store:         store,
		logger:        logging.NewComponentLogger(logger, "ingest"),
		lookupEnabled: lookupEnabled,
	}
}

// Ingest validates, normalizes, enriches, prices, and reconciles one scan.
// Validation failures wrap services.ErrValidation; store failures wrap
// services.ErrStore. Lookup failures never fail the ingestion.
func (i *Ingestor) Ingest(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithCatalogID(ctx, req.CatalogID)
	if id := strings.TrimSpace(req.Scan.ID); id != "" {
		ctx = services.WithExternalID(ctx, id)
	}
	logger := logging.WithContext(ctx, i.logger)

	rec := cards.Normalize(req.Scan)

	var quote resolve.PriceQuote
	if i.lookupEnabled && i.resolver != nil {
		quote = i.resolver.Resolve(ctx, &rec)
	}

	switch {
	case quote.Found:
		rec.Price = quote.Value
	case req.PriorPrice != nil:
		rec.Price = *req.PriorPrice
		logger.Info("lookup yielded no price, keeping prior",
			logging.Float64("price", rec.Price))
	default:
		rec.Price = 0
	}

	outcome, err := i.store.Reconcile(ctx, req.CatalogID, rec)
	if err != nil {
		return nil, services.Wrap(services.ErrStore, "ingest", "reconcile", "persisting card", err)
	}

	logger.Info("card ingested",
		logging.String("name", rec.Name),
		logging.String("action", string(outcome.Action)),
		logging.Int("quantity", outcome.Quantity),
		logging.Float64("price", rec.Price))

	return &Result{
		RunID:         runID,
		Record:        rec,
		Action:        outcome.Action,
		RowID:         outcome.RowID,
		Quantity:      outcome.Quantity,
		PriceResolved: quote.Found,
	}, nil
}

func validate(req Request) error {
	if req.CatalogID <= 0 {
		return services.Wrap(services.ErrValidation, "ingest", "validate", "catalog id must be positive", nil)
	}
	if strings.TrimSpace(req.Scan.ID) == "" && strings.TrimSpace(req.Scan.Name) == "" {
		return services.Wrap(services.ErrValidation, "ingest", "validate", "scan needs a card id or a name", nil)
	}
	return nil
}
