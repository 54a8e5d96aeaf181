package pricing

import (
	"context"
	"errors"
	"testing"

	"cardkeep/internal/cards"
	"cardkeep/internal/catalog"
	"cardkeep/internal/resolve"
	"cardkeep/internal/services"
)

type quoteByID map[string]resolve.PriceQuote

type fakeResolver struct {
	quotes quoteByID
}

func (f *fakeResolver) Resolve(_ context.Context, rec *cards.Record) resolve.PriceQuote {
	return f.quotes[rec.ExternalID]
}

type fakeStore struct {
	rows      []*catalog.Row
	listErr   error
	updateErr map[int64]error
	updates   map[int64]float64
}

func (f *fakeStore) ListByCatalog(_ context.Context, _ int64) ([]*catalog.Row, error) {
	return f.rows, f.listErr
}

func (f *fakeStore) UpdatePrice(_ context.Context, id int64, price float64) error {
	if err := f.updateErr[id]; err != nil {
		return err
	}
	if f.updates == nil {
		f.updates = make(map[int64]float64)
	}
	f.updates[id] = price
	return nil
}

func row(id int64, externalID string, price float64) *catalog.Row {
	return &catalog.Row{
		ID: id,
		Record: cards.Record{
			ExternalID: externalID,
			Name:       "Card " + externalID,
			Price:      price,
		},
	}
}

func TestRefreshCatalogUpdatesAndSkips(t *testing.T) {
	store := &fakeStore{rows: []*catalog.Row{
		row(1, "base1-58", 1.00),
		row(2, "base1-4", 50.00),
		row(3, "fossil-1", 2.00),
	}}
	resolver := &fakeResolver{quotes: quoteByID{
		"base1-58": {Found: true, Value: 1.75},
		"base1-4":  {Found: true, Value: 50.00},
		// fossil-1 has no quote: stored price must survive.
	}}

	summary, err := NewRefresher(resolver, store, nil).RefreshCatalog(context.Background(), 1)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if summary.Examined != 3 || summary.Updated != 1 || summary.Unchanged != 1 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if got := store.updates[1]; got != 1.75 {
		t.Fatalf("expected row 1 repriced to 1.75, got %f", got)
	}
	if _, touched := store.updates[3]; touched {
		t.Fatal("row without quote must not be repriced")
	}
}

func TestRefreshCatalogContinuesPastRowFailures(t *testing.T) {
	store := &fakeStore{
		rows: []*catalog.Row{
			row(1, "a-1", 1.00),
			row(2, "a-2", 1.00),
		},
		updateErr: map[int64]error{1: errors.New("locked")},
	}
	resolver := &fakeResolver{quotes: quoteByID{
		"a-1": {Found: true, Value: 2.00},
		"a-2": {Found: true, Value: 3.00},
	}}

	summary, err := NewRefresher(resolver, store, nil).RefreshCatalog(context.Background(), 1)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if summary.Failed != 1 || summary.Updated != 1 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if got := store.updates[2]; got != 3.00 {
		t.Fatalf("expected row 2 repriced despite row 1 failing, got %f", got)
	}
}

func TestRefreshCatalogValidation(t *testing.T) {
	ref := NewRefresher(&fakeResolver{}, &fakeStore{}, nil)

	if _, err := ref.RefreshCatalog(context.Background(), 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	failing := NewRefresher(&fakeResolver{}, &fakeStore{listErr: errors.New("gone")}, nil)
	if _, err := failing.RefreshCatalog(context.Background(), 1); !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRefreshCatalogHonorsCancellation(t *testing.T) {
	store := &fakeStore{rows: []*catalog.Row{row(1, "a-1", 1.00)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := NewRefresher(&fakeResolver{}, store, nil).RefreshCatalog(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if summary.Examined != 0 {
		t.Fatalf("expected no rows examined, got %d", summary.Examined)
	}
}
