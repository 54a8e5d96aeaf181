package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cardkeep/internal/cards"
	"cardkeep/internal/services"
)

// ErrInvalidCatalog is returned when a caller supplies a non-positive catalog id.
var ErrInvalidCatalog = errors.New("catalog id must be positive")

// Reconcile merges one card into a catalog. Cards with a known external id
// upsert against the (catalog_id, external_id) dedup key: a conflict
// increments the existing row's quantity instead of inserting. Cards without
// an external id carry no dedup key and always insert. The whole decision is
// a single statement, so concurrent ingestions of the same id serialize in
// SQLite rather than racing the check-then-act.
func (s *Store) Reconcile(ctx context.Context, catalogID int64, rec cards.Record) (*ReconcileResult, error) {
	if catalogID <= 0 {
		return nil, ErrInvalidCatalog
	}
	if rec.Name == "" && rec.ExternalID == "" {
		return nil, errors.New("card must carry a name or an external id")
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	const query = `INSERT INTO cards (
            catalog_id, external_id, name, set_name, hp, stage, typing,
            rarity, image_url, price, quantity, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
        ON CONFLICT (catalog_id, external_id) WHERE external_id IS NOT NULL
        DO UPDATE SET quantity = quantity + 1, updated_at = excluded.updated_at
        RETURNING id, quantity`

	args := []any{
		catalogID,
		nullableString(rec.ExternalID),
		rec.Name,
		rec.SetName,
		rec.HP,
		rec.Stage,
		rec.Typing,
		rec.Rarity,
		rec.ImageURL,
		rec.Price,
		timestamp,
		timestamp,
	}

	var (
		rowID    int64
		quantity int
	)
	err := s.queryRowWithRetry(ctx, query, args, func(row *sql.Row) error {
		return row.Scan(&rowID, &quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile card: %w", err)
	}

	action := ActionQuantityBumped
	if quantity == 1 {
		action = ActionInserted
	}
	return &ReconcileResult{Action: action, RowID: rowID, Quantity: quantity}, nil
}

// GetByID fetches an inventory row by identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Row, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+rowColumns+` FROM cards WHERE id = ?`, id)
	result, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return result, nil
}

// FindByExternalID returns the row matching an external id within a catalog,
// or nil when the catalog holds no such card.
func (s *Store) FindByExternalID(ctx context.Context, catalogID int64, externalID string) (*Row, error) {
	if externalID == "" {
		return nil, errors.New("external id must not be empty")
	}
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT `+rowColumns+` FROM cards WHERE catalog_id = ? AND external_id = ? LIMIT 1`,
		catalogID,
		externalID,
	)
	result, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by external id: %w", err)
	}
	return result, nil
}

// ListByCatalog returns all inventory rows for a catalog, newest first.
func (s *Store) ListByCatalog(ctx context.Context, catalogID int64) ([]*Row, error) {
	if catalogID <= 0 {
		return nil, ErrInvalidCatalog
	}
	rows, err := s.db.QueryContext(
		ensureContext(ctx),
		`SELECT `+rowColumns+` FROM cards WHERE catalog_id = ? ORDER BY id DESC`,
		catalogID,
	)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()

	var result []*Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog: %w", err)
	}
	return result, nil
}

// Latest returns the most recently inserted row in a catalog, or nil when the
// catalog is empty.
func (s *Store) Latest(ctx context.Context, catalogID int64) (*Row, error) {
	row := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT `+rowColumns+` FROM cards WHERE catalog_id = ? ORDER BY id DESC LIMIT 1`,
		catalogID,
	)
	result, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest card: %w", err)
	}
	return result, nil
}

// UpdatePrice overwrites the stored price for one row.
func (s *Store) UpdatePrice(ctx context.Context, id int64, price float64) error {
	if price < 0 {
		return errors.New("price must not be negative")
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx, `UPDATE cards SET price = ?, updated_at = ? WHERE id = ?`, price, timestamp, id)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update price rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: card %d", services.ErrNotFound, id)
	}
	return nil
}

// Remove deletes one inventory row.
func (s *Store) Remove(ctx context.Context, id int64) error {
	res, err := s.execWithRetry(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: card %d", services.ErrNotFound, id)
	}
	return nil
}

// TotalCounts aggregates distinct rows and total copies across all catalogs.
func (s *Store) TotalCounts(ctx context.Context) (*Counts, error) {
	var counts Counts
	err := s.db.QueryRowContext(
		ensureContext(ctx),
		`SELECT COUNT(1), COALESCE(SUM(quantity), 0) FROM cards`,
	).Scan(&counts.Rows, &counts.Copies)
	if err != nil {
		return nil, fmt.Errorf("count cards: %w", err)
	}
	return &counts, nil
}
