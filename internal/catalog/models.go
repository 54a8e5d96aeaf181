package catalog

import (
	"time"

	"cardkeep/internal/cards"
)

// Action describes the reconciliation outcome for one ingested card.
type Action string

const (
	// ActionInserted means a new inventory row was created with quantity 1.
	ActionInserted Action = "inserted"
	// ActionQuantityBumped means an existing row's quantity was incremented.
	ActionQuantityBumped Action = "quantity_bumped"
)

// Row represents one persisted inventory row.
type Row struct {
	ID        int64
	CatalogID int64
	cards.Record
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReconcileResult reports what Reconcile did and the resulting row state.
type ReconcileResult struct {
	Action   Action
	RowID    int64
	Quantity int
}

// Counts aggregates inventory totals for health reporting.
type Counts struct {
	Rows   int
	Copies int
}
