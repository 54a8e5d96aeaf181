package api

import (
	"time"

	"cardkeep/internal/cards"
	"cardkeep/internal/catalog"
)

// HealthResponse reports service liveness and inventory totals.
type HealthResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
	Copies int    `json:"copies"`
}

// IngestRequest carries one scan submitted over HTTP.
type IngestRequest struct {
	CatalogID  int64         `json:"catalog_id"`
	Scan       cards.RawScan `json:"scan"`
	PriorPrice *float64      `json:"prior_price,omitempty"`
}

// IngestResponse reports the outcome of one ingestion.
type IngestResponse struct {
	RunID         string  `json:"run_id"`
	Action        string  `json:"action"`
	RowID         int64   `json:"row_id"`
	Quantity      int     `json:"quantity"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PriceResolved bool    `json:"price_resolved"`
}

// CardView is the wire shape of one inventory row.
type CardView struct {
	ID         int64     `json:"id"`
	CatalogID  int64     `json:"catalog_id"`
	ExternalID string    `json:"external_id,omitempty"`
	Name       string    `json:"name"`
	SetName    string    `json:"set_name,omitempty"`
	HP         int       `json:"hp"`
	Stage      string    `json:"stage"`
	Typing     string    `json:"typing"`
	Rarity     string    `json:"rarity"`
	ImageURL   string    `json:"image_url,omitempty"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CardListResponse wraps a catalog listing.
type CardListResponse struct {
	Cards []CardView `json:"cards"`
}

// RefreshResponse reports one price refresh pass.
type RefreshResponse struct {
	Examined  int `json:"examined"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

func viewFromRow(row *catalog.Row) CardView {
	return CardView{
		ID:         row.ID,
		CatalogID:  row.CatalogID,
		ExternalID: row.ExternalID,
		Name:       row.Name,
		SetName:    row.SetName,
		HP:         row.HP,
		Stage:      row.Stage,
		Typing:     row.Typing,
		Rarity:     row.Rarity,
		ImageURL:   row.ImageURL,
		Price:      row.Price,
		Quantity:   row.Quantity,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
