package catalog

import (
	"database/sql"
	"errors"
	"time"

	"cardkeep/internal/cards"
)

const rowColumns = "id, catalog_id, external_id, name, set_name, hp, stage, typing, rarity, image_url, price, quantity, created_at, updated_at"

func scanRow(scanner interface{ Scan(dest ...any) error }) (*Row, error) {
	var (
		id         int64
		catalogID  int64
		externalID sql.NullString
		name       string
		setName    sql.NullString
		hp         sql.NullInt64
		stage      sql.NullString
		typing     sql.NullString
		rarity     sql.NullString
		imageURL   sql.NullString
		price      sql.NullFloat64
		quantity   int
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&catalogID,
		&externalID,
		&name,
		&setName,
		&hp,
		&stage,
		&typing,
		&rarity,
		&imageURL,
		&price,
		&quantity,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	row := &Row{
		ID:        id,
		CatalogID: catalogID,
		Record: cards.Record{
			ExternalID: externalID.String,
			Name:       name,
			SetName:    setName.String,
			HP:         int(hp.Int64),
			Stage:      stage.String,
			Typing:     typing.String,
			Rarity:     rarity.String,
			ImageURL:   imageURL.String,
			Price:      price.Float64,
		},
		Quantity: quantity,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		row.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		row.UpdatedAt = updated
	}
	return row, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
