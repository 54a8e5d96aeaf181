package testsupport

import (
	"context"
	"testing"

	"cardkeep/internal/cards"
	"cardkeep/internal/catalog"
	"cardkeep/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustReconcile merges a card into a catalog for tests.
func MustReconcile(t testing.TB, store *catalog.Store, catalogID int64, rec cards.Record) *catalog.ReconcileResult {
	t.Helper()

	result, err := store.Reconcile(context.Background(), catalogID, rec)
	if err != nil {
		t.Fatalf("store.Reconcile: %v", err)
	}
	return result
}
